package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printologia/printshop/internal/domain"
)

func TestQuoteRequest_Dimensions(t *testing.T) {
	width, height, material := QuoteRequest{Width: 120, Material: "Vinil"}.Dimensions()

	assert.True(t, width.IsSet())
	assert.InDelta(t, 120.0, width.CM(), 0)
	assert.False(t, height.IsSet(), "zero means not entered")
	assert.Equal(t, domain.MaterialVinyl, material)

	width, _, _ = QuoteRequest{Width: -5, Material: "vinyl"}.Dimensions()
	assert.True(t, width.IsSet(), "negatives are clamped, not dropped")
}

func TestNewQuoteResponse(t *testing.T) {
	q, err := domain.CalculateQuote(domain.DefaultPriceTable(), domain.Value(160), domain.Value(700), domain.MaterialVinyl)
	require.NoError(t, err)

	resp := NewQuoteResponse(q)

	assert.Equal(t, "11.2000", resp.Area)
	assert.Equal(t, "150.00", resp.UnitPrice)
	assert.Equal(t, "180.00", resp.BaseUnitPrice)
	assert.Equal(t, "1680.00", resp.Subtotal)
	assert.Equal(t, "268.80", resp.Tax)
	assert.Equal(t, "1948.80", resp.Total)
	assert.Equal(t, "336.00", resp.Savings)
	assert.Equal(t, "Vinil", resp.MaterialName)
	assert.True(t, resp.HasBulkDiscount)
}

func TestNewPricingResponse(t *testing.T) {
	resp := NewPricingResponse(domain.DefaultPriceTable())

	require.Len(t, resp.Materials, 2)
	assert.Equal(t, MaterialPriceResponse{
		Material:        "canvas",
		Name:            "Lona",
		BasePrice:       "80.00",
		DiscountedPrice: "65.00",
	}, resp.Materials[1])
	assert.Equal(t, "10", resp.DiscountThresholdM2)
	assert.Equal(t, RangeResponse{Min: 10, Max: 3600}, resp.Height)
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name    string
		items   []int
		total   int64
		offset  int
		hasMore bool
	}{
		{name: "first of two pages", items: []int{1, 2}, total: 3, offset: 0, hasMore: true},
		{name: "last page", items: []int{3}, total: 3, offset: 2, hasMore: false},
		{name: "past the end", items: nil, total: 3, offset: 10, hasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.items, tt.total, 2, tt.offset, func(i int) int { return i * 10 })

			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, len(tt.items))
			assert.Equal(t, tt.hasMore, page.HasMore)
		})
	}
}

func TestPostListQuery_Filter(t *testing.T) {
	published := false
	q := PostListQuery{PageQuery: PageQuery{Offset: 20}, Search: "lona", Published: &published}

	f := q.Filter()

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 20, f.Offset)
	assert.Equal(t, "lona", f.Search)
	require.NotNil(t, f.Published)
	assert.False(t, *f.Published)
}

func TestUpdatePostRequest_Patch(t *testing.T) {
	title := "Nuevo título"
	published := true

	req := UpdatePostRequest{Title: &title, Published: &published}

	require.NoError(t, req.Validate())

	patch := req.Patch()
	assert.Equal(t, &title, patch.Title)
	assert.Nil(t, patch.Slug)
	assert.Equal(t, &published, patch.Published)

	assert.True(t, domain.IsValidation((&UpdatePostRequest{}).Validate()))
}

func TestCreatePostRequest_Post(t *testing.T) {
	post := CreatePostRequest{
		Title:     "Lonas",
		Content:   "Contenido",
		ImageURL:  "https://cdn.printologia.com.mx/lonas.jpg",
		Published: true,
	}.Post()

	assert.Empty(t, post.ID)
	assert.Empty(t, post.Slug, "derived by the service")
	assert.Equal(t, "https://cdn.printologia.com.mx/lonas.jpg", post.ImageURL)
	assert.True(t, post.Published)
}

func TestQuoteSubmissionRequest_QuoteRequest(t *testing.T) {
	req := QuoteSubmissionRequest{
		Name:     "Ana López",
		Email:    "ana@example.com",
		Phone:    "5512345678",
		Width:    160,
		Height:   700,
		Material: "lona",
	}.QuoteRequest()

	assert.Equal(t, domain.MaterialCanvas, req.Material)
	assert.InDelta(t, 700.0, req.Height.CM(), 0)
	require.NoError(t, req.Validate())
}

func TestQuoteSubmissionRequest_Dimensions(t *testing.T) {
	var req QuoteSubmissionRequest

	require.NoError(t, BindAndValidate(jsonContext(
		`{"name":"Ana López","email":"ana@example.com","phone":"5512345678","width":-5,"height":100,"material":"vinyl"}`,
	), &req))
	assert.InDelta(t, -5.0, req.Width, 0)

	err := BindAndValidate(jsonContext(
		`{"name":"Ana López","email":"ana@example.com","phone":"5512345678","width":0,"height":100,"material":"vinyl"}`,
	), &req)
	require.Error(t, err)
	assert.Contains(t, ValidationErrors(err), "width")
}

func TestNewSubmissionResponse(t *testing.T) {
	q, err := domain.CalculateQuote(domain.DefaultPriceTable(), domain.Value(100), domain.Value(100), domain.MaterialCanvas)
	require.NoError(t, err)

	resp := NewSubmissionResponse(&domain.Submission{
		ID:    "s-1",
		Kind:  domain.SubmissionQuote,
		Name:  "Ana López",
		Email: "ana@example.com",
		Quote: &q,
	})

	require.NotNil(t, resp.Quote)
	assert.Equal(t, "92.80", resp.Quote.Total)
	assert.Equal(t, "quote", resp.Kind)

	assert.Nil(t, NewReceiptResponse(domain.SubmissionReceipt{Kind: domain.SubmissionContact}).Quote)
}
