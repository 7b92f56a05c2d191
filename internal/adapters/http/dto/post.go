package dto

import (
	"time"

	"github.com/printologia/printshop/internal/domain"
)

// PostListQuery filters a post listing.
type PostListQuery struct {
	PageQuery

	Search string `form:"search" json:"search" validate:"omitempty,max=200"`

	// Published filters by state on the admin listing. Ignored publicly.
	Published *bool `form:"published" json:"published"`
}

// Filter converts the query into a domain filter.
func (q PostListQuery) Filter() domain.PostFilter {
	return domain.PostFilter{
		Search:    q.Search,
		Published: q.Published,
		Limit:     q.GetLimit(),
		Offset:    q.Offset,
	}
}

// PostIDParam is the :id path parameter of admin post routes.
type PostIDParam struct {
	ID string `uri:"id" json:"id" validate:"required,uuid"`
}

// CreatePostRequest creates a post. An empty slug is derived from the title.
type CreatePostRequest struct {
	Title           string `json:"title"           validate:"required,notempty,max=200"`
	Slug            string `json:"slug"            validate:"omitempty,slug,max=100"`
	Content         string `json:"content"         validate:"required,notempty"`
	Excerpt         string `json:"excerpt"         validate:"omitempty,max=500"`
	ImageURL        string `json:"imageUrl"        validate:"omitempty,url"`
	MetaDescription string `json:"metaDescription" validate:"omitempty,max=160"`
	Published       bool   `json:"published"`
}

// Post converts the request into a draft for the service.
func (r CreatePostRequest) Post() domain.Post {
	return domain.Post{
		Title:           r.Title,
		Slug:            r.Slug,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		ImageURL:        r.ImageURL,
		MetaDescription: r.MetaDescription,
		Published:       r.Published,
	}
}

// UpdatePostRequest changes the fields that are present.
type UpdatePostRequest struct {
	Title           *string `json:"title"           validate:"omitempty,notempty,max=200"`
	Slug            *string `json:"slug"            validate:"omitempty,slug,max=100"`
	Content         *string `json:"content"         validate:"omitempty,notempty"`
	Excerpt         *string `json:"excerpt"         validate:"omitempty,max=500"`
	ImageURL        *string `json:"imageUrl"        validate:"omitempty,url"`
	MetaDescription *string `json:"metaDescription" validate:"omitempty,max=160"`
	Published       *bool   `json:"published"`
}

// Validate implements Validatable.
func (r *UpdatePostRequest) Validate() error {
	if r.Patch().IsEmpty() {
		return domain.NewValidationError("", "at least one field must be provided")
	}

	return nil
}

// Patch converts the request into a domain patch.
func (r *UpdatePostRequest) Patch() domain.PostPatch {
	return domain.PostPatch{
		Title:           r.Title,
		Slug:            r.Slug,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		ImageURL:        r.ImageURL,
		MetaDescription: r.MetaDescription,
		Published:       r.Published,
	}
}

// PostResponse is a post as returned by the API.
type PostResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewPostResponse converts a domain post.
func NewPostResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		ImageURL:        p.ImageURL,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewPostPage converts a domain page.
func NewPostPage(p domain.PostPage) Page[PostResponse] {
	return NewPage(p.Items, p.Total, p.Limit, p.Offset, NewPostResponse)
}
