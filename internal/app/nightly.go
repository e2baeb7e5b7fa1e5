package app

import (
	"fmt"
	"time"

	"tiingo-bronze/internal/ingest"
	"tiingo-bronze/internal/universe"
)

// YesterdayWindow returns the single-day window for the UTC day before now.
func YesterdayWindow(now time.Time) (from, to time.Time) {
	now = now.UTC()
	y := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return y, y
}

// NightlyJob builds yesterday's job for every ticker in the seed file.
func NightlyJob(now time.Time, seedPath string) (ingest.Job, error) {
	if seedPath == "" {
		seedPath = universe.DefaultSeedFile
	}
	tickers, err := universe.LoadFile(seedPath)
	if err != nil {
		return ingest.Job{}, err
	}
	if len(tickers) == 0 {
		return ingest.Job{}, fmt.Errorf("seed file %s has no tickers", seedPath)
	}
	from, to := YesterdayWindow(now)
	return ingest.Job{From: from, To: to, Tickers: tickers}, nil
}
