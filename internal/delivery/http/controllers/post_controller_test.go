package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shaadicircle/internal/delivery/http/helpers"
	"shaadicircle/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePostService implements domain.PostService for handler tests.
type fakePostService struct {
	post  *domain.Post
	feed  []*domain.PostWithMeta
	total int
	err   error

	lastParams domain.PaginationParams
}

func (f *fakePostService) CreatePost(ctx context.Context, shaadiID, userID string, input domain.CreatePostInput) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post, nil
}

func (f *fakePostService) ListPosts(ctx context.Context, shaadiID, userID string, params domain.PaginationParams) ([]*domain.PostWithMeta, int, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.feed, f.total, nil
}

func (f *fakePostService) LikeToggle(ctx context.Context, postID, shaadiID, userID string) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post, nil
}

func (f *fakePostService) UpdatePost(ctx context.Context, postID, userID, caption string, tags []string) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post, nil
}

func (f *fakePostService) DeletePost(ctx context.Context, postID, userID string) error {
	return f.err
}

func TestPostController_List(t *testing.T) {
	t.Run("success with pagination meta", func(t *testing.T) {
		fake := &fakePostService{
			feed: []*domain.PostWithMeta{
				{Post: &domain.Post{ID: "post-1"}, CommentCount: 2, AuthorName: "asha"},
			},
			total: 45,
		}
		ctrl := NewPostController(testLogger(), fake)

		req := authedRequest(http.MethodGet, "http://test/posts?shaadiId=shaadi-1&page=2&page_size=10", "")
		rr := httptest.NewRecorder()

		ctrl.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2, fake.lastParams.Page)
		assert.Equal(t, 10, fake.lastParams.PageSize)

		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var resp ListPostsResponse
		require.NoError(t, json.Unmarshal(dataBytes, &resp))
		require.Len(t, resp.Posts, 1)
		assert.Equal(t, 45, resp.Pagination.Total)
		assert.Equal(t, 5, resp.Pagination.TotalPages)
	})

	t.Run("missing shaadiId", func(t *testing.T) {
		ctrl := NewPostController(testLogger(), &fakePostService{})
		rr := httptest.NewRecorder()

		ctrl.List(rr, authedRequest(http.MethodGet, "http://test/posts", ""))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("blocked member", func(t *testing.T) {
		ctrl := NewPostController(testLogger(), &fakePostService{err: domain.ErrMemberBlocked})
		rr := httptest.NewRecorder()

		ctrl.List(rr, authedRequest(http.MethodGet, "http://test/posts?shaadiId=shaadi-1", ""))
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestPostController_Create(t *testing.T) {
	validBody := `{"shaadi_id":"shaadi-1","media_urls":["https://media.example.com/1.jpg"],"media_types":["image"],"caption":"haldi"}`

	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "missing media",
			body:         `{"shaadi_id":"shaadi-1"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "media type mismatch",
			body:         `{"shaadi_id":"shaadi-1","media_urls":["a","b"],"media_types":["image"]}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "bad media type",
			body:         `{"shaadi_id":"shaadi-1","media_urls":["a"],"media_types":["document"]}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "non-member",
			body:         validBody,
			fakeErr:      domain.ErrForbidden,
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePostService{post: &domain.Post{ID: "post-1"}, err: tt.fakeErr}
			ctrl := NewPostController(testLogger(), fake)
			rr := httptest.NewRecorder()

			ctrl.Create(rr, authedRequest(http.MethodPost, "http://test/posts", tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestPostController_Like(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"shaadi_id":"shaadi-1"}`, wantStatus: http.StatusOK},
		{name: "missing shaadi_id", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "post not in shaadi", body: `{"shaadi_id":"shaadi-1"}`, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakePostService{post: &domain.Post{ID: "post-1", Likes: []string{"user-1"}}, err: tt.fakeErr}
			ctrl := NewPostController(testLogger(), fake)

			req := authedRequest(http.MethodPost, "http://test/posts/post-1/like", tt.body)
			req.SetPathValue("postID", "post-1")
			rr := httptest.NewRecorder()

			ctrl.Like(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestPostController_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakePostService{post: &domain.Post{ID: "post-1", Caption: "new"}}
		ctrl := NewPostController(testLogger(), fake)

		req := authedRequest(http.MethodPatch, "http://test/posts/post-1", `{"caption":"new","tags":["mehndi"]}`)
		req.SetPathValue("postID", "post-1")
		rr := httptest.NewRecorder()

		ctrl.Update(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("non-author", func(t *testing.T) {
		ctrl := NewPostController(testLogger(), &fakePostService{err: domain.ErrForbidden})

		req := authedRequest(http.MethodPatch, "http://test/posts/post-1", `{"caption":"x"}`)
		req.SetPathValue("postID", "post-1")
		rr := httptest.NewRecorder()

		ctrl.Update(rr, req)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestPostController_Delete(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusNoContent},
		{name: "non-author", fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "unknown post", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewPostController(testLogger(), &fakePostService{err: tt.fakeErr})

			req := authedRequest(http.MethodDelete, "http://test/posts/post-1", "")
			req.SetPathValue("postID", "post-1")
			rr := httptest.NewRecorder()

			ctrl.Delete(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
