package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Post field limits.
const (
	MaxTitleLength           = 200
	MaxSlugLength            = 100
	MaxExcerptLength         = 500
	MaxMetaDescriptionLength = 160
)

// Listing defaults for PostFilter.
const (
	DefaultPostLimit = 10
	MaxPostLimit     = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a blog article.
type Post struct {
	ID              string
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	ImageURL        string
	MetaDescription string
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks field constraints. The first violation is returned.
func (p *Post) Validate() error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return NewValidationError("title", "is required")
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 200 characters")
	}

	if err := ValidateSlug(p.Slug); err != nil {
		return err
	}

	if strings.TrimSpace(p.Content) == "" {
		return NewValidationError("content", "is required")
	}

	if utf8.RuneCountInString(p.Excerpt) > MaxExcerptLength {
		return NewValidationError("excerpt", "must be at most 500 characters")
	}

	if utf8.RuneCountInString(p.MetaDescription) > MaxMetaDescriptionLength {
		return NewValidationError("meta_description", "must be at most 160 characters")
	}

	if p.ImageURL != "" {
		u, err := url.ParseRequestURI(p.ImageURL)
		if err != nil || u.Host == "" {
			return NewValidationErrorWithValue("image_url", "must be an absolute URL", p.ImageURL)
		}
	}

	return nil
}

// ValidateSlug checks slug length and shape.
func ValidateSlug(slug string) error {
	if slug == "" {
		return NewValidationError("slug", "is required")
	}

	if len(slug) > MaxSlugLength {
		return NewValidationError("slug", "must be at most 100 characters")
	}

	if !slugPattern.MatchString(slug) {
		return NewValidationErrorWithValue("slug",
			"must contain only lowercase letters, digits and single hyphens", slug)
	}

	return nil
}

// Slugify derives a URL slug from a title: accents are folded, letters
// lowercased and every other run of characters collapsed into one hyphen.
func Slugify(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	var b strings.Builder

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingHyphen = false

			b.WriteRune(r)

			continue
		}

		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}

	return slug
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title           *string
	Slug            *string
	Content         *string
	Excerpt         *string
	ImageURL        *string
	MetaDescription *string
	Published       *bool
}

// IsEmpty reports whether the patch changes nothing.
func (pp PostPatch) IsEmpty() bool {
	return pp.Title == nil && pp.Slug == nil && pp.Content == nil && pp.Excerpt == nil &&
		pp.ImageURL == nil && pp.MetaDescription == nil && pp.Published == nil
}

// Apply copies the set fields onto p and stamps UpdatedAt.
func (pp PostPatch) Apply(p *Post, now time.Time) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}

	if pp.Slug != nil {
		p.Slug = *pp.Slug
	}

	if pp.Content != nil {
		p.Content = *pp.Content
	}

	if pp.Excerpt != nil {
		p.Excerpt = *pp.Excerpt
	}

	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}

	if pp.MetaDescription != nil {
		p.MetaDescription = *pp.MetaDescription
	}

	if pp.Published != nil {
		p.Published = *pp.Published
	}

	p.UpdatedAt = now
}

// PostFilter narrows a post listing.
type PostFilter struct {
	// Search matches title or content, case-insensitive.
	Search string

	// Published restricts by state; nil lists both drafts and published posts.
	Published *bool

	Limit  int
	Offset int
}

// Normalize applies the default limit and bounds limit and offset.
func (f PostFilter) Normalize() PostFilter {
	f.Search = strings.TrimSpace(f.Search)

	switch {
	case f.Limit <= 0:
		f.Limit = DefaultPostLimit
	case f.Limit > MaxPostLimit:
		f.Limit = MaxPostLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items  []Post
	Total  int64
	Limit  int
	Offset int
}

// HasMore reports whether posts exist past this page.
func (p PostPage) HasMore() bool {
	return int64(p.Offset+len(p.Items)) < p.Total
}
