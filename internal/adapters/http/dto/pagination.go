package dto

// Default and maximum page sizes. They mirror the domain's limits so the
// validator rejects what the service would otherwise clamp.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery is the offset pagination accepted by listing endpoints.
type PageQuery struct {
	// Limit is the page size (1-100, default 10).
	Limit int `form:"limit" json:"limit" validate:"omitempty,gte=1,lte=100"`

	// Offset is the number of items to skip.
	Offset int `form:"offset" json:"offset" validate:"omitempty,gte=0"`
}

// GetLimit returns the limit with the default applied.
func (p PageQuery) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// Page is a page of a listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// NewPage converts items with fn. A nil slice becomes an empty one.
func NewPage[S, T any](items []S, total int64, limit, offset int, fn func(S) T) Page[T] {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}

	return Page[T]{
		Items:   out,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(out)) < total,
	}
}
