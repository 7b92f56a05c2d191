package dto

import (
	"github.com/printologia/printshop/internal/domain"
)

// QuoteRequest is accepted as query parameters on GET and as JSON on POST.
// Zero or missing dimensions mean "not entered yet".
type QuoteRequest struct {
	Width    float64 `form:"width"    json:"width"`
	Height   float64 `form:"height"   json:"height"`
	Material string  `form:"material" json:"material" validate:"required,material"`
}

// Dimensions converts the request into engine inputs. The material has
// already been checked by the validator.
func (r QuoteRequest) Dimensions() (width, height domain.Dimension, material domain.Material) {
	material, _ = domain.ParseMaterial(r.Material)

	return dimension(r.Width), dimension(r.Height), material
}

func dimension(cm float64) domain.Dimension {
	if cm == 0 {
		return domain.Unset()
	}

	return domain.Value(cm)
}

// QuoteResponse is an itemized quote. Amounts are decimal strings with two
// places; area has up to four.
type QuoteResponse struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Material        string  `json:"material"`
	MaterialName    string  `json:"materialName"`
	Area            string  `json:"area"`
	UnitPrice       string  `json:"unitPrice"`
	BaseUnitPrice   string  `json:"baseUnitPrice"`
	Subtotal        string  `json:"subtotal"`
	Tax             string  `json:"tax"`
	TaxRate         string  `json:"taxRate"`
	Total           string  `json:"total"`
	HasBulkDiscount bool    `json:"hasBulkDiscount"`
	Savings         string  `json:"savings"`
	Currency        string  `json:"currency"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		Width:           q.Width,
		Height:          q.Height,
		Material:        string(q.Material),
		MaterialName:    q.Material.DisplayName(),
		Area:            q.Area.StringFixed(4),
		UnitPrice:       q.UnitPrice.StringFixed(2),
		BaseUnitPrice:   q.BaseUnitPrice.StringFixed(2),
		Subtotal:        q.Subtotal.StringFixed(2),
		Tax:             q.Tax.StringFixed(2),
		TaxRate:         q.TaxRate.String(),
		Total:           q.Total.StringFixed(2),
		HasBulkDiscount: q.HasBulkDiscount,
		Savings:         q.Savings().StringFixed(2),
		Currency:        q.Currency,
	}
}

// MaterialPriceResponse is one row of the price table.
type MaterialPriceResponse struct {
	Material        string `json:"material"`
	Name            string `json:"name"`
	BasePrice       string `json:"basePrice"`
	DiscountedPrice string `json:"discountedPrice"`
}

// RangeResponse is an inclusive range in centimeters.
type RangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricingResponse is the active price table.
type PricingResponse struct {
	Currency            string                  `json:"currency"`
	Materials           []MaterialPriceResponse `json:"materials"`
	DiscountThresholdM2 string                  `json:"discountThresholdM2"`
	TaxRate             string                  `json:"taxRate"`
	Width               RangeResponse           `json:"width"`
	Height              RangeResponse           `json:"height"`
}

// NewPricingResponse converts a price table. Materials are listed in
// display order.
func NewPricingResponse(t domain.PriceTable) PricingResponse {
	resp := PricingResponse{
		Currency:            t.Currency,
		Materials:           make([]MaterialPriceResponse, 0, len(t.Prices)),
		DiscountThresholdM2: t.DiscountThresholdM2.String(),
		TaxRate:             t.TaxRate.String(),
		Width:               RangeResponse{Min: t.Width.Min, Max: t.Width.Max},
		Height:              RangeResponse{Min: t.Height.Min, Max: t.Height.Max},
	}

	for _, m := range domain.Materials() {
		p, ok := t.Prices[m]
		if !ok {
			continue
		}

		resp.Materials = append(resp.Materials, MaterialPriceResponse{
			Material:        string(m),
			Name:            m.DisplayName(),
			BasePrice:       p.BasePrice.StringFixed(2),
			DiscountedPrice: p.DiscountedPrice.StringFixed(2),
		})
	}

	return resp
}
