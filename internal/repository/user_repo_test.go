package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		passwordHash   string
		token          string
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        bool
		wantDuplicate  bool
		errContainsStr string
	}{
		{
			name:         "success",
			username:     "alice",
			passwordHash: "h123",
			token:        "tok-1",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123", "tok-1").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:         "duplicate username",
			username:     "alice",
			passwordHash: "h123",
			token:        "tok-2",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123", "tok-2").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"))
			},
			wantErr:       true,
			wantDuplicate: true,
		},
		{
			name:         "exec error",
			username:     "bob",
			passwordHash: "h456",
			token:        "tok-3",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob", "h456", "tok-3").
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
		{
			name:         "last insert id error",
			username:     "carol",
			passwordHash: "h789",
			token:        "tok-4",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol", "h789", "tok-4").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			wantErr:        true,
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.Create(tt.username, tt.passwordHash, tt.token)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantDuplicate && !errors.Is(err, ErrDuplicate) {
					t.Fatalf("expected ErrDuplicate, got %v", err)
				}
				if tt.errContainsStr != "" && !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID != tt.wantID {
				t.Fatalf("expected id=%d, got %d", tt.wantID, u.ID)
			}
			if u.Username != tt.username || u.PasswordHash != tt.passwordHash || u.AccessToken != tt.token {
				t.Fatalf("returned user does not echo inputs: %+v", u)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "access_token"}).
		AddRow(7, "ada", "hash", "tok")
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("ada").
		WillReturnRows(rows)

	u, err := repo.GetByUsername("ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.ID != 7 || u.Username != "ada" || u.AccessToken != "tok" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByUsername("ghost")
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUserRepository_GetByToken(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "access_token"}).
		AddRow(3, "bob", "hash", "tok-b")
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByTokenSQL)).
		WithArgs("tok-b").
		WillReturnRows(rows)

	u, err := repo.GetByToken("tok-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Username != "bob" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_GetByToken_Unknown(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByTokenSQL)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByToken("nope")
	if err != nil {
		t.Fatalf("expected nil error for unknown token, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}
