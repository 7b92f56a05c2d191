package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/mocks"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestBlogService(t *testing.T) (*BlogService, *mocks.MockPostRepository) {
	t.Helper()

	repo := mocks.NewMockPostRepository(t)
	svc := NewBlogService(BlogServiceConfig{
		Posts:  repo,
		Logger: discardLogger(),
		Clock:  func() time.Time { return fixedNow },
	})

	return svc, repo
}

func ptr[T any](v T) *T { return &v }

func TestNewBlogService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewBlogService(BlogServiceConfig{})
	})
}

func TestBlogService_CreatePost(t *testing.T) {
	t.Run("derives slug and stamps fields", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.Slug == "lonas-para-eventos" && p.ID != ""
		})).Return(nil)

		post, err := svc.CreatePost(context.Background(), domain.Post{
			Title:   "  Lonas para eventos ",
			Content: "Contenido",
		})

		require.NoError(t, err)
		assert.Equal(t, "Lonas para eventos", post.Title)
		assert.Equal(t, "lonas-para-eventos", post.Slug)
		assert.Equal(t, fixedNow, post.CreatedAt)
		assert.Equal(t, fixedNow, post.UpdatedAt)
		assert.Len(t, post.ID, 36)
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)

		post, err := svc.CreatePost(context.Background(), domain.Post{
			Title:   "Vinil",
			Slug:    "guia-vinil",
			Content: "Contenido",
		})

		require.NoError(t, err)
		assert.Equal(t, "guia-vinil", post.Slug)
	})

	t.Run("invalid post never reaches the store", func(t *testing.T) {
		svc, _ := newTestBlogService(t)

		_, err := svc.CreatePost(context.Background(), domain.Post{Title: "Sin contenido"})

		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().Create(mock.Anything, mock.Anything).
			Return(domain.NewConflictError("post", "slug already exists"))

		_, err := svc.CreatePost(context.Background(), domain.Post{Title: "Vinil", Content: "x"})

		assert.True(t, domain.IsConflict(err))
	})
}

func TestBlogService_GetPublishedPostBySlug(t *testing.T) {
	tests := []struct {
		name      string
		stored    *domain.Post
		storeErr  error
		wantFound bool
	}{
		{name: "published", stored: &domain.Post{Slug: "vinil", Published: true}, wantFound: true},
		{name: "draft is hidden", stored: &domain.Post{Slug: "vinil"}},
		{name: "missing", storeErr: domain.NewNotFoundError("post", "vinil")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestBlogService(t)
			repo.EXPECT().GetBySlug(mock.Anything, "vinil").Return(tt.stored, tt.storeErr)

			post, err := svc.GetPublishedPostBySlug(context.Background(), "vinil")

			if tt.wantFound {
				require.NoError(t, err)
				assert.Equal(t, "vinil", post.Slug)

				return
			}

			assert.True(t, domain.IsNotFound(err))
			assert.Nil(t, post)
		})
	}
}

func TestBlogService_UpdatePost(t *testing.T) {
	stored := func() *domain.Post {
		return &domain.Post{
			ID:        "p1",
			Title:     "Vinil",
			Slug:      "vinil",
			Content:   "Contenido",
			CreatedAt: fixedNow.Add(-time.Hour),
			UpdatedAt: fixedNow.Add(-time.Hour),
		}
	}

	t.Run("applies patch", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().GetByID(mock.Anything, "p1").Return(stored(), nil)
		repo.EXPECT().Update(mock.Anything, mock.AnythingOfType("*domain.Post")).Return(nil)

		post, err := svc.UpdatePost(context.Background(), "p1", domain.PostPatch{
			Title:     ptr("Vinil adhesivo"),
			Published: ptr(true),
		})

		require.NoError(t, err)
		assert.Equal(t, "Vinil adhesivo", post.Title)
		assert.Equal(t, "vinil", post.Slug)
		assert.True(t, post.Published)
		assert.Equal(t, fixedNow, post.UpdatedAt)
	})

	t.Run("empty patch", func(t *testing.T) {
		svc, _ := newTestBlogService(t)

		_, err := svc.UpdatePost(context.Background(), "p1", domain.PostPatch{})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("invalid slug", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().GetByID(mock.Anything, "p1").Return(stored(), nil)

		_, err := svc.UpdatePost(context.Background(), "p1", domain.PostPatch{Slug: ptr("Not A Slug")})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "slug", ve.Field)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().GetByID(mock.Anything, "nope").Return(nil, domain.NewNotFoundError("post", "nope"))

		_, err := svc.UpdatePost(context.Background(), "nope", domain.PostPatch{Title: ptr("x")})

		assert.True(t, domain.IsNotFound(err))
	})
}

func TestBlogService_DeletePost(t *testing.T) {
	svc, repo := newTestBlogService(t)

	repo.EXPECT().Delete(mock.Anything, "p1").Return(nil).Once()
	repo.EXPECT().Delete(mock.Anything, "p2").Return(domain.NewNotFoundError("post", "p2")).Once()

	require.NoError(t, svc.DeletePost(context.Background(), "p1"))
	assert.True(t, domain.IsNotFound(svc.DeletePost(context.Background(), "p2")))
}

func TestBlogService_ListPublishedPosts(t *testing.T) {
	svc, repo := newTestBlogService(t)

	isPublishedFilter := mock.MatchedBy(func(f domain.PostFilter) bool {
		return f.Published != nil && *f.Published && f.Limit == domain.MaxPostLimit && f.Search == "lona"
	})

	repo.EXPECT().List(mock.Anything, isPublishedFilter).
		Return([]domain.Post{{ID: "p1"}, {ID: "p2"}}, nil)
	repo.EXPECT().Count(mock.Anything, isPublishedFilter).Return(int64(5), nil)

	page, err := svc.ListPublishedPosts(context.Background(), domain.PostFilter{
		Search:    " lona ",
		Published: ptr(false),
		Limit:     1000,
	})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, domain.MaxPostLimit, page.Limit)
	assert.True(t, page.HasMore())
}

func TestBlogService_ListPosts(t *testing.T) {
	t.Run("all states with defaults", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		anyState := mock.MatchedBy(func(f domain.PostFilter) bool {
			return f.Published == nil && f.Limit == domain.DefaultPostLimit
		})

		repo.EXPECT().List(mock.Anything, anyState).Return(nil, nil)
		repo.EXPECT().Count(mock.Anything, anyState).Return(int64(0), nil)

		page, err := svc.ListPosts(context.Background(), domain.PostFilter{})

		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore())
	})

	t.Run("count failure", func(t *testing.T) {
		svc, repo := newTestBlogService(t)

		repo.EXPECT().List(mock.Anything, mock.Anything).Return([]domain.Post{}, nil).Maybe()
		repo.EXPECT().Count(mock.Anything, mock.Anything).
			Return(int64(0), domain.NewUnavailableError("postgres", "connection refused"))

		_, err := svc.ListPosts(context.Background(), domain.PostFilter{})

		assert.True(t, domain.IsUnavailable(err))
	})
}
