package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPostTestServer(repo *MockPostRepository) (*Server, *fiber.App) {
	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		postRepo: repo,
	}
	app := fiber.New()
	return s, app
}

func samplePost(id uint) *models.BlogPost {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &models.BlogPost{
		ID:           id,
		Title:        "First Light",
		Description:  "A launch writeup.",
		GithubLink:   "https://github.com/octavia/first-light",
		CreationDate: created,
		LastUpdated:  created,
		UserID:       1,
		User:         models.User{ID: 1, Username: "octavia"},
	}
}

func TestListPosts(t *testing.T) {
	t.Run("Returns Views", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Get("/posts", s.ListPosts)

		mockRepo.On("List", mock.Anything).Return([]*models.BlogPost{samplePost(1), samplePost(2)}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
		require.Len(t, views, 2)
		assert.Equal(t, "octavia", views[0]["author"])
		assert.Equal(t, "2025-06-01", views[0]["creation_date"])
	})

	t.Run("Empty Is JSON Array", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Get("/posts", s.ListPosts)

		mockRepo.On("List", mock.Anything).Return([]*models.BlogPost{}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})
}

func TestGetPost(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(repo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			path: "/posts/1",
			mockSetup: func(repo *MockPostRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(samplePost(1), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			path: "/posts/99",
			mockSetup: func(repo *MockPostRepository) {
				repo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Post", uint(99)))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			path:           "/posts/abc",
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			s, app := newPostTestServer(mockRepo)
			app.Get("/posts/:id", s.GetPost)
			tt.mockSetup(mockRepo)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreatePost(t *testing.T) {
	withUser := func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	}

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(repo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"title":       "First Light",
				"description": "A launch writeup.",
				"github_link": "https://github.com/octavia/first-light",
			},
			mockSetup: func(repo *MockPostRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.BlogPost).ID = 1
				}).Return(nil)
				repo.On("GetByID", mock.Anything, uint(1)).Return(samplePost(1), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]any{"description": "body"},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Description",
			body:           map[string]any{"title": "First Light"},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Title Too Long",
			body: map[string]any{
				"title":       string(bytes.Repeat([]byte("a"), 151)),
				"description": "body",
			},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Link",
			body: map[string]any{
				"title":       "First Light",
				"description": "body",
				"github_link": "not a url",
			},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Photo Filename With Path",
			body: map[string]any{
				"title":          "First Light",
				"description":    "body",
				"photo_filename": "../../etc/passwd",
			},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			s, app := newPostTestServer(mockRepo)
			app.Post("/posts", withUser, s.CreatePost)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCreatePost_StampsDatesAndAuthor(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s, app := newPostTestServer(mockRepo)
	app.Post("/posts", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return c.Next()
	}, s.CreatePost)

	var created *models.BlogPost
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.BlogPost)
		created.ID = 5
	}).Return(nil)
	mockRepo.On("GetByID", mock.Anything, uint(5)).Return(samplePost(5), nil)

	body, _ := json.Marshal(map[string]any{"title": "T", "description": "D"})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.UserID)
	assert.False(t, created.CreationDate.IsZero())
	assert.Equal(t, created.CreationDate, created.LastUpdated)
}

func TestUpdatePost(t *testing.T) {
	t.Run("Partial Merge", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Put("/posts/:id", s.UpdatePost)

		existing := samplePost(1)
		mockRepo.On("GetByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.BlogPost) bool {
			// Only the title changes; the description and author survive,
			// and last_updated moves forward.
			return p.Title == "Renamed" &&
				p.Description == "A launch writeup." &&
				p.UserID == 1 &&
				p.LastUpdated.After(p.CreationDate)
		})).Return(nil)

		body, _ := json.Marshal(map[string]any{"title": "Renamed"})
		req := httptest.NewRequest(http.MethodPut, "/posts/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Clearing Optional Link", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Put("/posts/:id", s.UpdatePost)

		existing := samplePost(1)
		mockRepo.On("GetByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.BlogPost) bool {
			return p.GithubLink == ""
		})).Return(nil)

		body, _ := json.Marshal(map[string]any{"github_link": ""})
		req := httptest.NewRequest(http.MethodPut, "/posts/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Put("/posts/:id", s.UpdatePost)

		mockRepo.On("GetByID", mock.Anything, uint(42)).Return(nil, models.NewNotFoundError("Post", uint(42)))

		body, _ := json.Marshal(map[string]any{"title": "x"})
		req := httptest.NewRequest(http.MethodPut, "/posts/42", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Empty Title Rejected", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Put("/posts/:id", s.UpdatePost)

		mockRepo.On("GetByID", mock.Anything, uint(1)).Return(samplePost(1), nil)

		body, _ := json.Marshal(map[string]any{"title": ""})
		req := httptest.NewRequest(http.MethodPut, "/posts/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Delete("/posts/:id", s.DeletePost)

		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/1", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Post deleted successfully", body["message"])
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		s, app := newPostTestServer(mockRepo)
		app.Delete("/posts/:id", s.DeletePost)

		mockRepo.On("Delete", mock.Anything, uint(99)).Return(models.NewNotFoundError("Post", uint(99)))

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/99", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
