package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaterialPrice holds the per-m² prices of one material.
type MaterialPrice struct {
	BasePrice       decimal.Decimal
	DiscountedPrice decimal.Decimal
}

// PriceTable is the configuration the quote engine prices against.
type PriceTable struct {
	Currency            string
	Prices              map[Material]MaterialPrice
	DiscountThresholdM2 decimal.Decimal
	TaxRate             decimal.Decimal
	Width               Range
	Height              Range
}

// DefaultPriceTable returns the shop's published prices in MXN.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		Currency: "MXN",
		Prices: map[Material]MaterialPrice{
			MaterialVinyl: {
				BasePrice:       decimal.NewFromInt(180),
				DiscountedPrice: decimal.NewFromInt(150),
			},
			MaterialCanvas: {
				BasePrice:       decimal.NewFromInt(80),
				DiscountedPrice: decimal.NewFromInt(65),
			},
		},
		DiscountThresholdM2: decimal.NewFromInt(10),
		TaxRate:             decimal.RequireFromString("0.16"),
		Width:               Range{Min: 1, Max: 160},
		Height:              Range{Min: 10, Max: 3600},
	}
}

// Validate checks the table is internally consistent.
func (t PriceTable) Validate() error {
	if t.Currency == "" {
		return NewValidationError("currency", "is required")
	}

	for _, m := range Materials() {
		p, ok := t.Prices[m]
		if !ok {
			return NewValidationError("prices."+string(m), "is required")
		}

		if !p.DiscountedPrice.IsPositive() {
			return NewValidationError("prices."+string(m)+".discounted", "must be positive")
		}

		if !p.DiscountedPrice.LessThan(p.BasePrice) {
			return NewValidationError("prices."+string(m)+".discounted", "must be lower than the base price")
		}
	}

	if !t.Prices[MaterialVinyl].BasePrice.GreaterThan(t.Prices[MaterialCanvas].BasePrice) {
		return NewValidationError("prices.vinyl.base", "must be higher than canvas")
	}

	if t.TaxRate.IsNegative() || t.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return NewValidationError("tax_rate", "must be in [0, 1)")
	}

	if !t.DiscountThresholdM2.IsPositive() {
		return NewValidationError("discount_threshold_m2", "must be positive")
	}

	if err := validateRange("width", t.Width); err != nil {
		return err
	}

	return validateRange("height", t.Height)
}

func validateRange(name string, r Range) error {
	if r.Min <= 0 || r.Min > r.Max {
		return NewValidationError(name, fmt.Sprintf("invalid range [%g, %g]", r.Min, r.Max))
	}

	return nil
}
