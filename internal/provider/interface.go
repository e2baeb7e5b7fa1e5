package provider

import (
	"context"
	"time"

	"tiingo-bronze/internal/model"
)

// DataProvider is the abstraction used by the application when accessing a data source.
// Implementations are responsible for their own transport and resource cleanup.
type DataProvider interface {
	GetName() string
	// FetchEOD returns the daily bars of ticker within [from, to], tagged with the ticker.
	// A ticker without data in the window yields an empty slice and no error.
	FetchEOD(ctx context.Context, ticker string, from, to time.Time) ([]model.PriceRow, error)
	Close() error
}
