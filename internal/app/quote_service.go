// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/platform/logging"
)

const instrumentationName = "github.com/printologia/printshop/internal/app"

// QuoteService prices print jobs against a fixed price table.
type QuoteService struct {
	table      domain.PriceTable
	logger     *slog.Logger
	calculated metric.Int64Counter
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	PriceTable domain.PriceTable
	Logger     *slog.Logger
}

// NewQuoteService creates a quote service. It panics if the price table is
// invalid; configuration validation rejects such tables at startup.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if err := cfg.PriceTable.Validate(); err != nil {
		panic("app: invalid price table: " + err.Error())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	calculated, err := otel.Meter(instrumentationName).Int64Counter(
		"printshop.quotes.calculated",
		metric.WithDescription("Number of quotes priced, by material and discount"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &QuoteService{
		table:      cfg.PriceTable,
		logger:     logger,
		calculated: calculated,
	}
}

// PriceTable returns the table quotes are priced with.
func (s *QuoteService) PriceTable() domain.PriceTable {
	return s.table
}

// CalculateQuote prices a job. Unset dimensions give an empty quote; an
// unknown material fails with an InvalidMaterialError.
func (s *QuoteService) CalculateQuote(
	ctx context.Context,
	width, height domain.Dimension,
	material domain.Material,
) (domain.Quote, error) {
	q, err := domain.CalculateQuote(s.table, width, height, material)
	if err != nil {
		return domain.Quote{}, err
	}

	logger := logging.FromContextOr(ctx, s.logger)
	logger.Log(ctx, logging.LevelTrace, "quote calculated",
		slog.String("material", string(q.Material)),
		slog.Float64("width_cm", q.Width),
		slog.Float64("height_cm", q.Height),
		slog.String("area_m2", q.Area.String()),
		slog.String("total", q.Total.StringFixed(2)),
		slog.Bool("bulk_discount", q.HasBulkDiscount),
	)

	if s.calculated != nil && !q.IsEmpty() {
		s.calculated.Add(ctx, 1, metric.WithAttributes(
			attribute.String("material", string(q.Material)),
			attribute.String("bulk_discount", strconv.FormatBool(q.HasBulkDiscount)),
		))
	}

	return q, nil
}
