package domain_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/printologia/printshop/internal/domain"
)

// quoteScenario holds the state of one scenario.
type quoteScenario struct {
	table domain.PriceTable
	quote domain.Quote
	err   error
}

func (s *quoteScenario) theDefaultPriceTable() error {
	s.table = domain.DefaultPriceTable()
	return nil
}

func (s *quoteScenario) iQuote(width, height float64, material string) error {
	s.quote, s.err = domain.CalculateQuote(s.table, domain.Value(width), domain.Value(height), domain.Material(material))
	return nil
}

func (s *quoteScenario) noError() error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %w", s.err)
	}

	return nil
}

func (s *quoteScenario) decimalIs(name string, got decimal.Decimal, want string) error {
	if err := s.noError(); err != nil {
		return err
	}

	w, err := decimal.NewFromString(want)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", name, want, err)
	}

	if !got.Equal(w) {
		return fmt.Errorf("expected %s %s, got %s", name, w, got)
	}

	return nil
}

func (s *quoteScenario) theAreaIs(want string) error {
	return s.decimalIs("area", s.quote.Area, want)
}

func (s *quoteScenario) theUnitPriceIs(want string) error {
	return s.decimalIs("unit price", s.quote.UnitPrice, want)
}

func (s *quoteScenario) theTotalIs(want string) error {
	return s.decimalIs("total", s.quote.Total, want)
}

func (s *quoteScenario) theBulkDiscountIs(state string) error {
	if err := s.noError(); err != nil {
		return err
	}

	if want := state == "on"; s.quote.HasBulkDiscount != want {
		return fmt.Errorf("expected bulk discount %s, got %t", state, s.quote.HasBulkDiscount)
	}

	return nil
}

func (s *quoteScenario) theQuotedWidthIs(want float64) error {
	if s.quote.Width != want {
		return fmt.Errorf("expected width %g, got %g", want, s.quote.Width)
	}

	return nil
}

func (s *quoteScenario) theQuotedHeightIs(want float64) error {
	if s.quote.Height != want {
		return fmt.Errorf("expected height %g, got %g", want, s.quote.Height)
	}

	return nil
}

func (s *quoteScenario) theQuoteIsEmpty() error {
	if err := s.noError(); err != nil {
		return err
	}

	if !s.quote.IsEmpty() {
		return fmt.Errorf("expected an empty quote, got total %s", s.quote.Total)
	}

	return nil
}

func (s *quoteScenario) theQuoteFailsWithInvalidMaterial() error {
	var invalid *domain.InvalidMaterialError
	if !errors.As(s.err, &invalid) {
		return fmt.Errorf("expected an invalid material error, got %v", s.err)
	}

	return nil
}

func initializeQuoteScenario(ctx *godog.ScenarioContext) {
	s := &quoteScenario{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = quoteScenario{}
		return ctx, nil
	})

	ctx.Step(`^the default price table$`, s.theDefaultPriceTable)
	ctx.Step(`^I quote (-?[\d.]+) by (-?[\d.]+) cm in "([^"]*)"$`, s.iQuote)
	ctx.Step(`^the area is ([\d.]+) m²$`, s.theAreaIs)
	ctx.Step(`^the unit price is ([\d.]+)$`, s.theUnitPriceIs)
	ctx.Step(`^the total is ([\d.]+)$`, s.theTotalIs)
	ctx.Step(`^the bulk discount is (on|off)$`, s.theBulkDiscountIs)
	ctx.Step(`^the quoted width is ([\d.]+) cm$`, s.theQuotedWidthIs)
	ctx.Step(`^the quoted height is ([\d.]+) cm$`, s.theQuotedHeightIs)
	ctx.Step(`^the quote is empty$`, s.theQuoteIsEmpty)
	ctx.Step(`^the quote fails with an invalid material error$`, s.theQuoteFailsWithInvalidMaterial)
}

func TestQuoteFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeQuoteScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
