package ingest

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// PartitionResult describes one written partition.
type PartitionResult struct {
	Date     string
	Part     string
	Rows     int
	Location string
}

// Report summarises a run.
type Report struct {
	RunID      string
	From       time.Time
	To         time.Time
	Partitions []PartitionResult
	Skipped    []string // tickers without data in the window
}

// TotalRows sums rows across partitions.
func (r *Report) TotalRows() int {
	var n int
	for _, p := range r.Partitions {
		n += p.Rows
	}
	return n
}

// Wrote reports whether any partition was written.
func (r *Report) Wrote() bool { return len(r.Partitions) > 0 }

func (r *Report) log(logger *slog.Logger) {
	logger.Info("summary", "run_id", r.RunID, "partitions", len(r.Partitions), "rows", r.TotalRows(), "skipped", len(r.Skipped))
	if len(r.Skipped) > 0 {
		logger.Info("summary skipped", "tickers", joinTickers(r.Skipped))
	}
}

func appendUnique(list []string, ticker string) []string {
	for _, t := range list {
		if t == ticker {
			return list
		}
	}
	return append(list, ticker)
}

// joinTickers lists up to six tickers, then a count of the rest.
func joinTickers(tickers []string) string {
	if len(tickers) <= 6 {
		return strings.Join(tickers, ",")
	}
	return strings.Join(tickers[:5], ",") + fmt.Sprintf(" (+%d more)", len(tickers)-5)
}
