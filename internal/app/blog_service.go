package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/platform/logging"
	"github.com/printologia/printshop/internal/ports"
)

// BlogService manages blog posts for the admin panel and the public site.
type BlogService struct {
	posts  ports.PostRepository
	logger *slog.Logger
	now    func() time.Time
}

// BlogServiceConfig contains configuration for the blog service.
type BlogServiceConfig struct {
	Posts  ports.PostRepository
	Logger *slog.Logger

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// NewBlogService creates a blog service. It panics without a repository.
func NewBlogService(cfg BlogServiceConfig) *BlogService {
	if cfg.Posts == nil {
		panic("app: blog service requires a post repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &BlogService{posts: cfg.Posts, logger: logger, now: clock}
}

// CreatePost stores a new post. ID and timestamps are assigned here; an
// empty slug is derived from the title.
func (s *BlogService) CreatePost(ctx context.Context, draft domain.Post) (*domain.Post, error) {
	now := s.now().UTC()

	post := draft
	post.ID = uuid.NewString()
	post.Title = strings.TrimSpace(post.Title)
	post.Slug = strings.TrimSpace(post.Slug)
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.Slug == "" {
		post.Slug = domain.Slugify(post.Title)
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, err
	}

	s.log(ctx).InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.Published),
	)

	return &post, nil
}

// GetPost returns any post, draft or not, by id.
func (s *BlogService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// GetPublishedPostBySlug returns a published post. Drafts are reported as
// not found so their existence does not leak.
func (s *BlogService) GetPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !post.Published {
		return nil, domain.NewNotFoundError("post", slug)
	}

	return post, nil
}

// UpdatePost applies a partial update and re-validates the result.
func (s *BlogService) UpdatePost(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("", "at least one field must be provided")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(post, s.now().UTC())

	post.Title = strings.TrimSpace(post.Title)
	post.Slug = strings.TrimSpace(post.Slug)

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.log(ctx).InfoContext(ctx, "post updated",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
	)

	return post, nil
}

// DeletePost removes a post.
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log(ctx).InfoContext(ctx, "post deleted", slog.String("post_id", id))

	return nil
}

// ListPosts returns a page of posts in any state.
func (s *BlogService) ListPosts(ctx context.Context, filter domain.PostFilter) (domain.PostPage, error) {
	return s.list(ctx, filter.Normalize())
}

// ListPublishedPosts returns a page of published posts only.
func (s *BlogService) ListPublishedPosts(ctx context.Context, filter domain.PostFilter) (domain.PostPage, error) {
	published := true

	f := filter.Normalize()
	f.Published = &published

	return s.list(ctx, f)
}

func (s *BlogService) list(ctx context.Context, f domain.PostFilter) (domain.PostPage, error) {
	items, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Post, error) { return s.posts.List(ctx, f) },
		func(ctx context.Context) (int64, error) { return s.posts.Count(ctx, f) },
	)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "listing posts failed", slog.Any("error", err))

		return domain.PostPage{}, err
	}

	if items == nil {
		items = []domain.Post{}
	}

	return domain.PostPage{
		Items:  items,
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	}, nil
}

func (s *BlogService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
