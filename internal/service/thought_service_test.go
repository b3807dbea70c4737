package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"happy_thoughts/internal/models"
	"happy_thoughts/internal/repository"
)

const testID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

// mockThoughtRepo is a lightweight in-test mock for repository.Thoughts.
type mockThoughtRepo struct {
	ListFn            func(ctx context.Context, f repository.ThoughtFilter) ([]models.Thought, int, error)
	GetByIDFn         func(ctx context.Context, id string) (models.Thought, error)
	CreateFn          func(ctx context.Context, t models.Thought) (models.Thought, error)
	UpdateFn          func(ctx context.Context, id string, patch repository.ThoughtPatch) (models.Thought, error)
	DeleteFn          func(ctx context.Context, id string) error
	IncrementHeartsFn func(ctx context.Context, id string) (models.Thought, error)

	lastFilter  repository.ThoughtFilter
	updateCalls int
	deleteCalls int
}

func (m *mockThoughtRepo) List(ctx context.Context, f repository.ThoughtFilter) ([]models.Thought, int, error) {
	m.lastFilter = f
	return m.ListFn(ctx, f)
}

func (m *mockThoughtRepo) GetByID(ctx context.Context, id string) (models.Thought, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockThoughtRepo) Create(ctx context.Context, t models.Thought) (models.Thought, error) {
	return m.CreateFn(ctx, t)
}

func (m *mockThoughtRepo) Update(ctx context.Context, id string, patch repository.ThoughtPatch) (models.Thought, error) {
	m.updateCalls++
	return m.UpdateFn(ctx, id, patch)
}

func (m *mockThoughtRepo) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return m.DeleteFn(ctx, id)
}

func (m *mockThoughtRepo) IncrementHearts(ctx context.Context, id string) (models.Thought, error) {
	return m.IncrementHeartsFn(ctx, id)
}

func TestThoughtService_Create_MessageBounds(t *testing.T) {
	cases := []struct {
		name    string
		message string
		wantErr bool
	}{
		{"minimum length", "12345", false},
		{"maximum length", strings.Repeat("x", 140), false},
		{"too short", "1234", true},
		{"too long", strings.Repeat("x", 141), true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockThoughtRepo{
				CreateFn: func(ctx context.Context, th models.Thought) (models.Thought, error) {
					th.ID = testID
					return th, nil
				},
			}
			svc := NewThoughtService(mock)

			_, err := svc.Create(context.Background(), NewThought{Message: tc.message}, nil)
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestThoughtService_Create_DefaultsAndAttribution(t *testing.T) {
	var stored models.Thought
	mock := &mockThoughtRepo{
		CreateFn: func(ctx context.Context, th models.Thought) (models.Thought, error) {
			stored = th
			th.ID = testID
			return th, nil
		},
	}
	svc := NewThoughtService(mock)

	got, err := svc.Create(context.Background(), NewThought{Message: "hello world"}, &models.User{Username: "ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Category != "General" {
		t.Fatalf("expected default category General, got %q", stored.Category)
	}
	if stored.CreatedBy != "ada" || got.CreatedBy != "ada" {
		t.Fatalf("expected attribution to ada, got %q", stored.CreatedBy)
	}
	if got.Hearts != 0 {
		t.Fatalf("hearts must start at 0, got %d", got.Hearts)
	}

	// anonymous create leaves CreatedBy empty
	if _, err := svc.Create(context.Background(), NewThought{Message: "hello again"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.CreatedBy != "" {
		t.Fatalf("expected anonymous thought, got createdBy=%q", stored.CreatedBy)
	}
}

func TestThoughtService_List_Pagination(t *testing.T) {
	mock := &mockThoughtRepo{
		ListFn: func(ctx context.Context, f repository.ThoughtFilter) ([]models.Thought, int, error) {
			return []models.Thought{{ID: testID}}, 25, nil
		},
	}
	svc := NewThoughtService(mock)

	page, err := svc.List(context.Background(), ListQuery{MinHearts: 3, Category: "Fun", Sort: repository.SortHearts, Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 2 || page.Total != 25 || len(page.Results) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	f := mock.lastFilter
	if f.Offset != 10 || f.Limit != 10 {
		t.Fatalf("expected offset=10 limit=10, got offset=%d limit=%d", f.Offset, f.Limit)
	}
	if f.MinHearts != 3 || f.Category != "Fun" || f.Sort != repository.SortHearts {
		t.Fatalf("filter not passed through: %+v", f)
	}
}

func TestThoughtService_List_NormalizesDefaults(t *testing.T) {
	mock := &mockThoughtRepo{
		ListFn: func(ctx context.Context, f repository.ThoughtFilter) ([]models.Thought, int, error) {
			return nil, 0, nil
		},
	}
	svc := NewThoughtService(mock)

	page, err := svc.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("expected page 1, got %d", page.Page)
	}
	if mock.lastFilter.Offset != 0 || mock.lastFilter.Limit != DefaultPageSize {
		t.Fatalf("expected offset=0 limit=%d, got %+v", DefaultPageSize, mock.lastFilter)
	}
}

func TestThoughtService_Get_InvalidID(t *testing.T) {
	svc := NewThoughtService(&mockThoughtRepo{})

	if _, err := svc.Get(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestThoughtService_Get_NotFound(t *testing.T) {
	mock := &mockThoughtRepo{
		GetByIDFn: func(ctx context.Context, id string) (models.Thought, error) {
			return models.Thought{}, repository.ErrNotFound
		},
	}
	svc := NewThoughtService(mock)

	if _, err := svc.Get(context.Background(), testID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestThoughtService_Update_Ownership(t *testing.T) {
	owned := models.Thought{ID: testID, Message: "hello world", CreatedBy: "ada"}
	msg := "hello edited"

	cases := []struct {
		name      string
		requester *models.User
		wantErr   error
	}{
		{"owner may edit", &models.User{Username: "ada"}, nil},
		{"other user forbidden", &models.User{Username: "bob"}, ErrForbidden},
		{"nil requester forbidden", nil, ErrForbidden},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockThoughtRepo{
				GetByIDFn: func(ctx context.Context, id string) (models.Thought, error) {
					return owned, nil
				},
				UpdateFn: func(ctx context.Context, id string, patch repository.ThoughtPatch) (models.Thought, error) {
					updated := owned
					updated.Message = *patch.Message
					return updated, nil
				},
			}
			svc := NewThoughtService(mock)

			got, err := svc.Update(context.Background(), testID, ThoughtEdit{Message: &msg}, tc.requester)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if mock.updateCalls != 0 {
					t.Fatalf("update must not reach the store when forbidden")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Message != msg {
				t.Fatalf("expected updated message, got %q", got.Message)
			}
		})
	}
}

func TestThoughtService_Update_EmptyPatch(t *testing.T) {
	svc := NewThoughtService(&mockThoughtRepo{})

	_, err := svc.Update(context.Background(), testID, ThoughtEdit{}, &models.User{Username: "ada"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty patch, got %v", err)
	}
}

func TestThoughtService_Delete_Ownership(t *testing.T) {
	owned := models.Thought{ID: testID, Message: "hello world", CreatedBy: "ada"}

	mock := &mockThoughtRepo{
		GetByIDFn: func(ctx context.Context, id string) (models.Thought, error) {
			return owned, nil
		},
		DeleteFn: func(ctx context.Context, id string) error { return nil },
	}
	svc := NewThoughtService(mock)

	if err := svc.Delete(context.Background(), testID, &models.User{Username: "bob"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if mock.deleteCalls != 0 {
		t.Fatalf("delete must not reach the store when forbidden")
	}

	if err := svc.Delete(context.Background(), testID, &models.User{Username: "ada"}); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if mock.deleteCalls != 1 {
		t.Fatalf("expected 1 store delete, got %d", mock.deleteCalls)
	}
}

func TestThoughtService_Delete_AnonymousThoughtHasNoOwner(t *testing.T) {
	mock := &mockThoughtRepo{
		GetByIDFn: func(ctx context.Context, id string) (models.Thought, error) {
			return models.Thought{ID: testID, Message: "hello world"}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error { return nil },
	}
	svc := NewThoughtService(mock)

	if err := svc.Delete(context.Background(), testID, &models.User{Username: "ada"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous thought, got %v", err)
	}
}

func TestThoughtService_Like(t *testing.T) {
	hearts := 0
	mock := &mockThoughtRepo{
		IncrementHeartsFn: func(ctx context.Context, id string) (models.Thought, error) {
			hearts++
			return models.Thought{ID: id, Message: "hello world", Hearts: hearts}, nil
		},
	}
	svc := NewThoughtService(mock)

	for want := 1; want <= 3; want++ {
		got, err := svc.Like(context.Background(), testID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Hearts != want {
			t.Fatalf("expected hearts=%d, got %d", want, got.Hearts)
		}
	}

	if _, err := svc.Like(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
