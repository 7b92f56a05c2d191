// Package domain contains the print shop's business entities and rules.
// Nothing in this package knows about HTTP, storage or e-mail.
package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Material is a printable substrate.
type Material string

const (
	// MaterialVinyl is adhesive vinyl ("vinil").
	MaterialVinyl Material = "vinyl"

	// MaterialCanvas is banner canvas ("lona").
	MaterialCanvas Material = "canvas"
)

// Materials returns the supported materials in display order.
func Materials() []Material {
	return []Material{MaterialVinyl, MaterialCanvas}
}

func materialList() string {
	names := make([]string, 0, len(Materials()))
	for _, m := range Materials() {
		names = append(names, string(m))
	}

	return strings.Join(names, ", ")
}

// ParseMaterial maps a wire value to a Material. English and Spanish
// spellings are accepted, case-insensitive.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vinyl", "vinil":
		return MaterialVinyl, nil
	case "canvas", "lona":
		return MaterialCanvas, nil
	default:
		return "", NewInvalidMaterialError(s)
	}
}

// Valid reports whether m is one of the supported materials.
func (m Material) Valid() bool {
	return m == MaterialVinyl || m == MaterialCanvas
}

// DisplayName returns the Spanish label used in customer-facing text.
func (m Material) DisplayName() string {
	switch m {
	case MaterialVinyl:
		return "Vinil"
	case MaterialCanvas:
		return "Lona"
	default:
		return string(m)
	}
}

// Dimension is a length in centimeters that may not have been entered yet.
// The zero value is unset.
type Dimension struct {
	cm  float64
	set bool
}

// Unset returns a dimension the customer has not entered.
func Unset() Dimension {
	return Dimension{}
}

// Value returns a dimension of cm centimeters. Zero and NaN behave as Unset;
// any other value, negatives included, is clamped when priced.
func Value(cm float64) Dimension {
	return Dimension{cm: cm, set: true}
}

// IsSet reports whether the dimension holds an entered, non-zero length.
func (d Dimension) IsSet() bool {
	return d.set && !math.IsNaN(d.cm) && d.cm != 0
}

// CM returns the raw length, or 0 when unset.
func (d Dimension) CM() float64 {
	if !d.IsSet() {
		return 0
	}

	return d.cm
}

// Range is an inclusive [Min, Max] interval in centimeters.
type Range struct {
	Min float64
	Max float64
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Quote is the itemized price for one print job. It is a value: the engine
// never mutates a Quote once returned.
type Quote struct {
	// Width and Height are the centimeters used for the area, after clamping.
	Width  float64
	Height float64

	Material Material

	// Area is in square meters.
	Area decimal.Decimal

	// UnitPrice is the per-m² price applied; BaseUnitPrice is the
	// undiscounted price for the same material.
	UnitPrice     decimal.Decimal
	BaseUnitPrice decimal.Decimal

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	TaxRate  decimal.Decimal
	Total    decimal.Decimal

	HasBulkDiscount bool
	Currency        string
}

// IsEmpty reports whether the quote is incomplete and must not be submitted.
func (q Quote) IsEmpty() bool {
	return q.Total.IsZero()
}

// DiscountPerM2 is the per-m² reduction granted by the bulk discount.
func (q Quote) DiscountPerM2() decimal.Decimal {
	if !q.HasBulkDiscount {
		return decimal.Zero
	}

	return q.BaseUnitPrice.Sub(q.UnitPrice)
}

// Savings is the pre-tax amount saved by the bulk discount.
func (q Quote) Savings() decimal.Decimal {
	return q.Area.Mul(q.DiscountPerM2()).Round(moneyPlaces)
}

const (
	moneyPlaces = 2
	cm2PerM2    = 10000
)

// CalculateQuote prices a print job of width × height centimeters in the
// given material.
//
// The material is checked first. When either dimension is unset the result
// is an empty quote carrying the base unit price. Otherwise both dimensions
// are clamped into the table's ranges, the bulk discount applies when the
// area reaches the threshold, and subtotal and tax are rounded to cents.
func CalculateQuote(table PriceTable, width, height Dimension, material Material) (Quote, error) {
	price, ok := table.Prices[material]
	if !material.Valid() || !ok {
		return Quote{}, NewInvalidMaterialError(string(material))
	}

	q := Quote{
		Material:      material,
		UnitPrice:     price.BasePrice,
		BaseUnitPrice: price.BasePrice,
		Area:          decimal.Zero,
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Total:         decimal.Zero,
		TaxRate:       table.TaxRate,
		Currency:      table.Currency,
	}

	if !width.IsSet() || !height.IsSet() {
		q.Width = width.CM()
		q.Height = height.CM()

		return q, nil
	}

	q.Width = table.Width.Clamp(width.CM())
	q.Height = table.Height.Clamp(height.CM())

	q.Area = decimal.NewFromFloat(q.Width).
		Mul(decimal.NewFromFloat(q.Height)).
		Div(decimal.NewFromInt(cm2PerM2))

	if q.Area.GreaterThanOrEqual(table.DiscountThresholdM2) {
		q.HasBulkDiscount = true
		q.UnitPrice = price.DiscountedPrice
	}

	q.Subtotal = q.Area.Mul(q.UnitPrice).Round(moneyPlaces)
	q.Tax = q.Subtotal.Mul(table.TaxRate).Round(moneyPlaces)
	q.Total = q.Subtotal.Add(q.Tax)

	return q, nil
}
