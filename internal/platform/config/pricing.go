package config

import (
	"github.com/shopspring/decimal"

	"github.com/printologia/printshop/internal/domain"
)

// PriceTable converts the pricing section into the quote engine's table.
func (p PricingConfig) PriceTable() domain.PriceTable {
	return domain.PriceTable{
		Currency: p.Currency,
		Prices: map[domain.Material]domain.MaterialPrice{
			domain.MaterialVinyl:  p.Vinyl.materialPrice(),
			domain.MaterialCanvas: p.Canvas.materialPrice(),
		},
		DiscountThresholdM2: decimal.NewFromFloat(p.DiscountThresholdM2),
		TaxRate:             decimal.NewFromFloat(p.TaxRate),
		Width:               domain.Range{Min: p.Width.Min, Max: p.Width.Max},
		Height:              domain.Range{Min: p.Height.Min, Max: p.Height.Max},
	}
}

func (m MaterialPriceConfig) materialPrice() domain.MaterialPrice {
	return domain.MaterialPrice{
		BasePrice:       decimal.NewFromFloat(m.Base),
		DiscountedPrice: decimal.NewFromFloat(m.Discounted),
	}
}
