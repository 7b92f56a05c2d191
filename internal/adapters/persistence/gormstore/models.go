package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/printologia/printshop/internal/domain"
)

type postModel struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Title           string    `gorm:"size:200;not null"`
	Slug            string    `gorm:"size:100;not null;uniqueIndex"`
	Content         string    `gorm:"type:text;not null"`
	Excerpt         string    `gorm:"size:500"`
	ImageURL        string    `gorm:"size:2048"`
	MetaDescription string    `gorm:"size:160"`
	Published       bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false;not null;index"`
}

func (postModel) TableName() string { return "posts" }

func newPostModel(p *domain.Post) postModel {
	return postModel{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		ImageURL:        p.ImageURL,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (m postModel) toDomain() *domain.Post {
	return &domain.Post{
		ID:              m.ID,
		Title:           m.Title,
		Slug:            m.Slug,
		Content:         m.Content,
		Excerpt:         m.Excerpt,
		ImageURL:        m.ImageURL,
		MetaDescription: m.MetaDescription,
		Published:       m.Published,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type submissionModel struct {
	ID             string         `gorm:"primaryKey;size:36"`
	Kind           string         `gorm:"size:16;not null;index"`
	Name           string         `gorm:"size:100;not null"`
	Email          string         `gorm:"size:254;not null"`
	Phone          string         `gorm:"size:20"`
	Message        string         `gorm:"type:text"`
	Quote          *quoteSnapshot `gorm:"serializer:json"`
	NotificationID string         `gorm:"size:128"`
	CreatedAt      time.Time      `gorm:"autoCreateTime:false;not null;index"`
}

func (submissionModel) TableName() string { return "submissions" }

// quoteSnapshot freezes the priced quote alongside the submission so later
// price changes do not rewrite history.
type quoteSnapshot struct {
	WidthCM         float64         `json:"width_cm"`
	HeightCM        float64         `json:"height_cm"`
	Material        string          `json:"material"`
	AreaM2          decimal.Decimal `json:"area_m2"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	BaseUnitPrice   decimal.Decimal `json:"base_unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Total           decimal.Decimal `json:"total"`
	HasBulkDiscount bool            `json:"has_bulk_discount"`
	Currency        string          `json:"currency"`
}

func newQuoteSnapshot(q *domain.Quote) *quoteSnapshot {
	if q == nil {
		return nil
	}

	return &quoteSnapshot{
		WidthCM:         q.Width,
		HeightCM:        q.Height,
		Material:        string(q.Material),
		AreaM2:          q.Area,
		UnitPrice:       q.UnitPrice,
		BaseUnitPrice:   q.BaseUnitPrice,
		Subtotal:        q.Subtotal,
		Tax:             q.Tax,
		TaxRate:         q.TaxRate,
		Total:           q.Total,
		HasBulkDiscount: q.HasBulkDiscount,
		Currency:        q.Currency,
	}
}

func (s *quoteSnapshot) toDomain() *domain.Quote {
	if s == nil {
		return nil
	}

	return &domain.Quote{
		Width:           s.WidthCM,
		Height:          s.HeightCM,
		Material:        domain.Material(s.Material),
		Area:            s.AreaM2,
		UnitPrice:       s.UnitPrice,
		BaseUnitPrice:   s.BaseUnitPrice,
		Subtotal:        s.Subtotal,
		Tax:             s.Tax,
		TaxRate:         s.TaxRate,
		Total:           s.Total,
		HasBulkDiscount: s.HasBulkDiscount,
		Currency:        s.Currency,
	}
}

func newSubmissionModel(s *domain.Submission) submissionModel {
	return submissionModel{
		ID:             s.ID,
		Kind:           string(s.Kind),
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Message:        s.Message,
		Quote:          newQuoteSnapshot(s.Quote),
		NotificationID: s.NotificationID,
		CreatedAt:      s.CreatedAt.UTC(),
	}
}

func (m submissionModel) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:             m.ID,
		Kind:           domain.SubmissionKind(m.Kind),
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Message:        m.Message,
		Quote:          m.Quote.toDomain(),
		NotificationID: m.NotificationID,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}
