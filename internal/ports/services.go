// Package ports defines the interfaces the application layer needs from the
// outside world. Adapters implement them; app services depend only on these.
//
// Every method takes a context first, speaks domain types and reports
// failures with the domain error taxonomy (ErrNotFound, ErrConflict,
// ErrUnavailable).
package ports

import (
	"context"

	"github.com/printologia/printshop/internal/domain"
)

// PostRepository stores blog posts.
type PostRepository interface {
	// Create inserts a new post. Returns domain.ErrConflict if the slug is taken.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID returns domain.ErrNotFound if no post has the id.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// GetBySlug returns domain.ErrNotFound if no post has the slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)

	// Update replaces a stored post. Returns domain.ErrNotFound if it does not
	// exist and domain.ErrConflict if the new slug belongs to another post.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns one page of posts matching the filter, newest update first.
	// The filter is already normalized.
	List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)

	// Count returns how many posts match the filter, ignoring limit and offset.
	Count(ctx context.Context, filter domain.PostFilter) (int64, error)
}

// SubmissionRepository archives delivered contact and quote submissions.
type SubmissionRepository interface {
	Save(ctx context.Context, submission *domain.Submission) error

	// Get returns domain.ErrNotFound if no submission has the id.
	Get(ctx context.Context, id string) (*domain.Submission, error)
}

// Notifier delivers e-mail. Implementations make a single attempt; the
// returned id is the provider's message id.
type Notifier interface {
	Send(ctx context.Context, msg domain.Notification) (string, error)
}
