package handlers

import (
	"context"

	"happy_thoughts/internal/models"
	"happy_thoughts/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginUser    *models.User
	loginErr     error
	resolveUser  *models.User
	resolveErr   error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastResolveToken     string
	resolveCalls         int
}

func (m *mockAuth) Register(username, password string) (*models.User, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(username, password string) (*models.User, error) {
	m.lastLoginUsername = username
	return m.loginUser, m.loginErr
}

func (m *mockAuth) ResolveToken(token string) (*models.User, error) {
	m.resolveCalls++
	m.lastResolveToken = token
	return m.resolveUser, m.resolveErr
}

type mockThoughts struct {
	listPage service.ThoughtPage
	listErr  error
	thought  models.Thought
	err      error

	lastListQuery    service.ListQuery
	lastID           string
	lastCreateInput  service.NewThought
	lastCreateAuthor *models.User
	lastEdit         service.ThoughtEdit
	lastRequester    *models.User
	likeCalls        int
	deleteCalls      int
}

func (m *mockThoughts) List(ctx context.Context, q service.ListQuery) (service.ThoughtPage, error) {
	m.lastListQuery = q
	return m.listPage, m.listErr
}

func (m *mockThoughts) Get(ctx context.Context, id string) (models.Thought, error) {
	m.lastID = id
	return m.thought, m.err
}

func (m *mockThoughts) Create(ctx context.Context, in service.NewThought, author *models.User) (models.Thought, error) {
	m.lastCreateInput = in
	m.lastCreateAuthor = author
	return m.thought, m.err
}

func (m *mockThoughts) Update(ctx context.Context, id string, edit service.ThoughtEdit, requester *models.User) (models.Thought, error) {
	m.lastID = id
	m.lastEdit = edit
	m.lastRequester = requester
	return m.thought, m.err
}

func (m *mockThoughts) Delete(ctx context.Context, id string, requester *models.User) error {
	m.deleteCalls++
	m.lastID = id
	m.lastRequester = requester
	return m.err
}

func (m *mockThoughts) Like(ctx context.Context, id string) (models.Thought, error) {
	m.likeCalls++
	m.lastID = id
	return m.thought, m.err
}

// newTestRouter builds the full route table around mocked services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
