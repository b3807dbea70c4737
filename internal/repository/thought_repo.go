package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"happy_thoughts/internal/models"

	"github.com/google/uuid"
)

type ThoughtSQLite struct {
	db *sql.DB
}

func NewThoughtSQLite(db *sql.DB) *ThoughtSQLite { return &ThoughtSQLite{db: db} }

var _ Thoughts = (*ThoughtSQLite)(nil)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"; lexicographic order
// matches chronological order, which the date sort relies on.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	insertThoughtSQL    = `INSERT INTO thoughts (id, message, hearts, category, created_by, created_at) VALUES (?, ?, 0, ?, ?, ?)`
	selectThoughtSQL    = `SELECT id, message, hearts, category, created_by, created_at FROM thoughts WHERE id = ?`
	deleteThoughtSQL    = `DELETE FROM thoughts WHERE id = ?`
	incrementHeartsSQL  = `UPDATE thoughts SET hearts = hearts + 1 WHERE id = ?`
	countThoughtsPrefix = `SELECT COUNT(*) FROM thoughts`
	listThoughtsPrefix  = `SELECT id, message, hearts, category, created_by, created_at FROM thoughts`
)

// buildListConds turns the filter predicates into a WHERE fragment and args.
func buildListConds(f ThoughtFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.MinHearts > 0 {
		conds = append(conds, "hearts >= ?")
		args = append(args, f.MinHearts)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		conds = append(conds, "category = ? COLLATE NOCASE")
		args = append(args, c)
	}
	return conds, args
}

// orderClause maps the sort order onto SQL. SortNone keeps insertion
// order (rowid), so pagination stays stable without an explicit sort.
func orderClause(s SortOrder) string {
	switch s {
	case SortHearts:
		return " ORDER BY hearts DESC"
	case SortDate:
		return " ORDER BY created_at DESC"
	default:
		return ""
	}
}

// List returns the filtered page plus the total size of the filtered
// set before pagination.
func (r *ThoughtSQLite) List(ctx context.Context, f ThoughtFilter) ([]models.Thought, int, error) {
	conds, args := buildListConds(f)

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countThoughtsPrefix+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count thoughts: %w", err)
	}

	q := listThoughtsPrefix + where + orderClause(f.Sort)
	listArgs := args
	if f.Limit > 0 {
		q += " LIMIT ? OFFSET ?"
		listArgs = append(listArgs, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, q, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list thoughts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Thought, 0, 16)
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ThoughtSQLite) GetByID(ctx context.Context, id string) (models.Thought, error) {
	t, err := scanThought(r.db.QueryRowContext(ctx, selectThoughtSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Thought{}, ErrNotFound
		}
		return models.Thought{}, fmt.Errorf("select thought %q: %w", id, err)
	}
	return t, nil
}

// Create assigns the id and creation time if unset and inserts the row.
// Hearts always start at zero.
func (r *ThoughtSQLite) Create(ctx context.Context, t models.Thought) (models.Thought, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	} else {
		t.CreatedAt = t.CreatedAt.UTC()
	}
	t.Hearts = 0

	_, err := r.db.ExecContext(ctx, insertThoughtSQL,
		t.ID,
		t.Message,
		t.Category,
		t.CreatedBy,
		t.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return models.Thought{}, fmt.Errorf("insert thought: %w", err)
	}
	return t, nil
}

// Update applies the non-nil patch fields in a single statement.
func (r *ThoughtSQLite) Update(ctx context.Context, id string, patch ThoughtPatch) (models.Thought, error) {
	var (
		sets []string
		args []any
	)
	if patch.Message != nil {
		sets = append(sets, "message = ?")
		args = append(args, *patch.Message)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	q := "UPDATE thoughts SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return models.Thought{}, fmt.Errorf("update thought %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Thought{}, fmt.Errorf("update thought %q rows affected: %w", id, err)
	}
	if n == 0 {
		return models.Thought{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ThoughtSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteThoughtSQL, id)
	if err != nil {
		return fmt.Errorf("delete thought %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete thought %q rows affected: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementHearts adds exactly 1 in a single statement, so concurrent
// likes never lose updates.
func (r *ThoughtSQLite) IncrementHearts(ctx context.Context, id string) (models.Thought, error) {
	res, err := r.db.ExecContext(ctx, incrementHeartsSQL, id)
	if err != nil {
		return models.Thought{}, fmt.Errorf("increment hearts for %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Thought{}, fmt.Errorf("increment hearts for %q rows affected: %w", id, err)
	}
	if n == 0 {
		return models.Thought{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanThought(s scanner) (models.Thought, error) {
	var t models.Thought
	if err := s.Scan(&t.ID, &t.Message, &t.Hearts, &t.Category, &t.CreatedBy, &t.CreatedAt); err != nil {
		return models.Thought{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
