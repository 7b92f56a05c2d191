package gormstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/ports"
)

var _ ports.PostRepository = (*PostRepository)(nil)

// PostRepository implements ports.PostRepository on the posts table.
type PostRepository struct {
	db *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	m := newPostModel(post)

	return translate(r.db.WithContext(ctx).Create(&m).Error, "post", post.Slug)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "post", id)
	}

	return m.toDomain(), nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translate(err, "post", slug)
	}

	return m.toDomain(), nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	m := newPostModel(post)

	res := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("id = ?", post.ID).
		Select("title", "slug", "content", "excerpt", "image_url", "meta_description", "published", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translate(res.Error, "post", post.Slug)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("post", post.ID)
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postModel{})
	if res.Error != nil {
		return translate(res.Error, "post", id)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("post", id)
	}

	return nil
}

func (r *PostRepository) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	var models []postModel

	err := r.filtered(ctx, filter).
		Order("updated_at DESC").
		Order("id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "post", "list")
	}

	posts := make([]domain.Post, 0, len(models))
	for _, m := range models {
		posts = append(posts, *m.toDomain())
	}

	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context, filter domain.PostFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, filter).Count(&n).Error; err != nil {
		return 0, translate(err, "post", "count")
	}

	return n, nil
}

func (r *PostRepository) filtered(ctx context.Context, filter domain.PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&postModel{})

	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
