// Package ingest runs one end-of-day ingestion: fetch every ticker, tag the rows,
// split them into partitions and write each partition once.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/lineage"
	"tiingo-bronze/internal/model"
	"tiingo-bronze/internal/provider"
	"tiingo-bronze/internal/universe"
)

// Bronze coordinates of the EOD price table.
const (
	Domain = "equities"
	Source = "tiingo"
	Table  = "prices_eod"
)

// DailyPart is the partition id used when one file holds all tickers of a day.
const DailyPart = "0000"

// Layout is the partitioning policy.
type Layout string

const (
	// LayoutDaily writes one file per day holding every ticker (part-0000).
	LayoutDaily Layout = "daily"
	// LayoutPerTicker writes one file per ticker per day (part-<TICKER>).
	LayoutPerTicker Layout = "per-ticker"
)

// ParseLayout validates s; empty means LayoutDaily.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case "", LayoutDaily:
		return LayoutDaily, nil
	case LayoutPerTicker:
		return LayoutPerTicker, nil
	default:
		return "", &bronze.ConfigError{Key: "layout", Reason: fmt.Sprintf("unsupported layout %q (use daily or per-ticker)", s)}
	}
}

// Job is one invocation's input.
type Job struct {
	From    time.Time
	To      time.Time
	Tickers []string
}

// PartitionWriter persists one partition batch.
type PartitionWriter interface {
	Write(ctx context.Context, rows []model.PriceRow, loc bronze.Location) error
}

// Runner drives fetch, tag, partition and write. It is single-use per run id.
type Runner struct {
	dp       provider.DataProvider
	resolver *bronze.Resolver
	writer   PartitionWriter
	layout   Layout
	runID    string
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLayout sets the partitioning policy.
func WithLayout(l Layout) Option {
	return func(r *Runner) { r.layout = l }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a Runner; the run id is generated once here.
func NewRunner(dp provider.DataProvider, resolver *bronze.Resolver, writer PartitionWriter, opts ...Option) *Runner {
	r := &Runner{
		dp:       dp,
		resolver: resolver,
		writer:   writer,
		layout:   LayoutDaily,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = lineage.NewRunID()
	}
	return r
}

// RunID returns the id stamped on every row of this run.
func (r *Runner) RunID() string { return r.runID }

// Run fetches every ticker sequentially, then writes the partitions in order.
// A fetch error aborts the run before anything is written. A run without data
// writes nothing and returns an empty report.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	tickers := universe.Normalize(job.Tickers)
	dateRange := job.From.Format(bronze.DateLayout) + ".." + job.To.Format(bronze.DateLayout)
	report := &Report{RunID: r.runID, From: job.From, To: job.To}

	r.logger.Info("ingest start", "provider", r.dp.GetName(), "run_id", r.runID, "tickers", len(tickers), "date_range", dateRange, "layout", r.layout)

	var fetched []model.PriceRow
	for i, t := range tickers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rows, err := r.dp.FetchEOD(ctx, t, job.From, job.To)
		if err != nil {
			return report, fmt.Errorf("fetch %s: %w", t, err)
		}
		if len(rows) == 0 {
			r.logger.Info("no data for ticker", "ticker", t, "date_range", dateRange)
			report.Skipped = appendUnique(report.Skipped, t)
			continue
		}
		r.logger.Debug("fetched", "ticker", t, "rows", len(rows), "n", fmt.Sprintf("%d/%d", i+1, len(tickers)))
		fetched = append(fetched, rows...)
	}

	if len(fetched) == 0 {
		r.logger.Info("no data fetched for any ticker, nothing to write", "date_range", dateRange)
		return report, nil
	}

	if err := tagRows(fetched, r.runID, lineage.FormatUTC(r.now())); err != nil {
		return report, err
	}

	for _, p := range partition(fetched, r.layout, tickers) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		loc, err := r.resolver.Resolve(bronze.Coordinate{Domain: Domain, Source: Source, Table: Table, Date: p.date, Part: p.part})
		if err != nil {
			return report, fmt.Errorf("resolve partition %s/%s: %w", p.date, p.part, err)
		}
		if err := r.writer.Write(ctx, p.rows, loc); err != nil {
			return report, err
		}
		r.logger.Info("wrote partition", "rows", len(p.rows), "dest", loc.String())
		report.Partitions = append(report.Partitions, PartitionResult{Date: p.date, Part: p.part, Rows: len(p.rows), Location: loc.String()})
	}

	report.log(r.logger)
	return report, nil
}

// tagRows normalizes dates and stamps lineage columns in place.
func tagRows(rows []model.PriceRow, runID, ts string) error {
	for i := range rows {
		d, err := NormalizeDate(rows[i].Date)
		if err != nil {
			return fmt.Errorf("normalize %s row %d: %w", rows[i].Ticker, i, err)
		}
		rows[i].Date = d
		rows[i].Source = Source
		rows[i].IngestTSUTC = ts
		rows[i].IngestRunID = runID
	}
	return nil
}

type batch struct {
	date string
	part string
	rows []model.PriceRow
}

// partition groups rows by (date, part). Row order inside a group follows input order.
// Daily groups are sorted by date; per-ticker groups by ticker list position, then date.
func partition(rows []model.PriceRow, layout Layout, tickers []string) []batch {
	type key struct{ date, part string }
	idx := make(map[key]int)
	var out []batch
	for _, row := range rows {
		k := key{date: row.Date, part: DailyPart}
		if layout == LayoutPerTicker {
			k.part = row.Ticker
		}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, batch{date: k.date, part: k.part})
		}
		out[i].rows = append(out[i].rows, row)
	}

	order := make(map[string]int, len(tickers))
	for i, t := range tickers {
		order[t] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if layout == LayoutPerTicker && out[i].part != out[j].part {
			return order[out[i].part] < order[out[j].part]
		}
		return out[i].date < out[j].date
	})
	return out
}
