package dynamostore

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/printologia/printshop/internal/domain"
)

const (
	keyAttr = "pk"

	postPrefix = "POST#"
	slugPrefix = "SLUG#"

	itemTypePost = "post"
	itemTypeSlug = "slug"
)

func postKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{keyAttr: &types.AttributeValueMemberS{Value: postPrefix + id}}
}

func slugKey(slug string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{keyAttr: &types.AttributeValueMemberS{Value: slugPrefix + slug}}
}

type postItem struct {
	PK              string `dynamodbav:"pk"`
	Type            string `dynamodbav:"type"`
	ID              string `dynamodbav:"id"`
	Title           string `dynamodbav:"title"`
	Slug            string `dynamodbav:"slug"`
	Content         string `dynamodbav:"content"`
	Excerpt         string `dynamodbav:"excerpt,omitempty"`
	ImageURL        string `dynamodbav:"image_url,omitempty"`
	MetaDescription string `dynamodbav:"meta_description,omitempty"`
	Published       bool   `dynamodbav:"published"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

type slugItem struct {
	PK     string `dynamodbav:"pk"`
	Type   string `dynamodbav:"type"`
	PostID string `dynamodbav:"post_id"`
}

func toPostItem(p *domain.Post) postItem {
	return postItem{
		PK:              postPrefix + p.ID,
		Type:            itemTypePost,
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		ImageURL:        p.ImageURL,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func (it postItem) toDomain() domain.Post {
	return domain.Post{
		ID:              it.ID,
		Title:           it.Title,
		Slug:            it.Slug,
		Content:         it.Content,
		Excerpt:         it.Excerpt,
		ImageURL:        it.ImageURL,
		MetaDescription: it.MetaDescription,
		Published:       it.Published,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}

func toSlugItem(p *domain.Post) slugItem {
	return slugItem{PK: slugPrefix + p.Slug, Type: itemTypeSlug, PostID: p.ID}
}

type submissionItem struct {
	ID             string     `dynamodbav:"id"`
	Kind           string     `dynamodbav:"kind"`
	Name           string     `dynamodbav:"name"`
	Email          string     `dynamodbav:"email"`
	Phone          string     `dynamodbav:"phone,omitempty"`
	Message        string     `dynamodbav:"message,omitempty"`
	Quote          *quoteItem `dynamodbav:"quote,omitempty"`
	NotificationID string     `dynamodbav:"notification_id"`
	CreatedAt      string     `dynamodbav:"created_at"`
}

// quoteItem stores amounts as decimal strings; DynamoDB numbers would
// round-trip through float64 in attributevalue.
type quoteItem struct {
	WidthCM         float64 `dynamodbav:"width_cm"`
	HeightCM        float64 `dynamodbav:"height_cm"`
	Material        string  `dynamodbav:"material"`
	AreaM2          string  `dynamodbav:"area_m2"`
	UnitPrice       string  `dynamodbav:"unit_price"`
	BaseUnitPrice   string  `dynamodbav:"base_unit_price"`
	Subtotal        string  `dynamodbav:"subtotal"`
	Tax             string  `dynamodbav:"tax"`
	TaxRate         string  `dynamodbav:"tax_rate"`
	Total           string  `dynamodbav:"total"`
	HasBulkDiscount bool    `dynamodbav:"has_bulk_discount"`
	Currency        string  `dynamodbav:"currency"`
}

func toSubmissionItem(s *domain.Submission) submissionItem {
	it := submissionItem{
		ID:             s.ID,
		Kind:           string(s.Kind),
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Message:        s.Message,
		NotificationID: s.NotificationID,
		CreatedAt:      formatTime(s.CreatedAt),
	}

	if q := s.Quote; q != nil {
		it.Quote = &quoteItem{
			WidthCM:         q.Width,
			HeightCM:        q.Height,
			Material:        string(q.Material),
			AreaM2:          q.Area.String(),
			UnitPrice:       q.UnitPrice.String(),
			BaseUnitPrice:   q.BaseUnitPrice.String(),
			Subtotal:        q.Subtotal.String(),
			Tax:             q.Tax.String(),
			TaxRate:         q.TaxRate.String(),
			Total:           q.Total.String(),
			HasBulkDiscount: q.HasBulkDiscount,
			Currency:        q.Currency,
		}
	}

	return it
}

func (it submissionItem) toDomain() *domain.Submission {
	s := &domain.Submission{
		ID:             it.ID,
		Kind:           domain.SubmissionKind(it.Kind),
		Name:           it.Name,
		Email:          it.Email,
		Phone:          it.Phone,
		Message:        it.Message,
		NotificationID: it.NotificationID,
		CreatedAt:      parseTime(it.CreatedAt),
	}

	if q := it.Quote; q != nil {
		s.Quote = &domain.Quote{
			Width:           q.WidthCM,
			Height:          q.HeightCM,
			Material:        domain.Material(q.Material),
			Area:            parseDecimal(q.AreaM2),
			UnitPrice:       parseDecimal(q.UnitPrice),
			BaseUnitPrice:   parseDecimal(q.BaseUnitPrice),
			Subtotal:        parseDecimal(q.Subtotal),
			Tax:             parseDecimal(q.Tax),
			TaxRate:         parseDecimal(q.TaxRate),
			Total:           parseDecimal(q.Total),
			HasBulkDiscount: q.HasBulkDiscount,
			Currency:        q.Currency,
		}
	}

	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t.UTC()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
