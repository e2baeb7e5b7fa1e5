// Command tiingo-eod lands Tiingo end-of-day prices as bronze partitions on local disk or S3.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tiingo-bronze/internal/app"
	"tiingo-bronze/internal/bronze"
	"tiingo-bronze/internal/ingest"
	"tiingo-bronze/internal/slogx"
	"tiingo-bronze/internal/universe"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	if path, err := app.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env", "path", path, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var from, to, tickers, layout string

	cmd := &cobra.Command{
		Use:   "tiingo-eod",
		Short: "Fetch Tiingo EOD prices and write them as bronze partitions",
		Long: `Fetch end-of-day prices for the given tickers and date range from Tiingo and
write them to bronze/equities/tiingo/prices_eod/date=<YYYY-MM-DD>/part-<id>.parquet
under DATA_ROOT (DATA_PROTOCOL=local) or in S3_BUCKET (DATA_PROTOCOL=s3).`,
		Example:       "  tiingo-eod --from 2025-09-22 --to 2025-09-22 --tickers AAPL,MSFT",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := parseJob(from, to, tickers)
			if err != nil {
				return err
			}
			l, err := ingest.ParseLayout(layout)
			if err != nil {
				return err
			}
			_, err = runIngest(cmd.Context(), job, l)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", "", "first day to fetch (YYYY-MM-DD)")
	f.StringVar(&to, "to", "", "last day to fetch, inclusive (YYYY-MM-DD)")
	f.StringVar(&tickers, "tickers", "", "comma-separated ticker symbols")
	f.StringVar(&layout, "layout", string(ingest.LayoutDaily), "partition layout: daily (part-0000) or per-ticker (part-<TICKER>)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("tickers")

	cmd.AddCommand(newNightlyCmd())
	return cmd
}

func newNightlyCmd() *cobra.Command {
	var seed, layout string

	cmd := &cobra.Command{
		Use:   "nightly",
		Short: "Ingest yesterday (UTC) for every ticker in the seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := ingest.ParseLayout(layout)
			if err != nil {
				return err
			}
			job, err := app.NightlyJob(time.Now(), seed)
			if err != nil {
				return err
			}
			slog.Info("nightly run", "date", job.From.Format(bronze.DateLayout), "tickers", len(job.Tickers), "seed", seed)
			_, err = runIngest(cmd.Context(), job, l)
			return err
		},
	}
	cmd.Flags().StringVar(&seed, "seed", universe.DefaultSeedFile, "ticker seed file (.txt one per line, or .json array)")
	cmd.Flags().StringVar(&layout, "layout", string(ingest.LayoutDaily), "partition layout: daily or per-ticker")
	return cmd
}

// parseJob validates the flag values before any config or network work.
func parseJob(from, to, tickers string) (ingest.Job, error) {
	f, err := time.Parse(bronze.DateLayout, strings.TrimSpace(from))
	if err != nil {
		return ingest.Job{}, &bronze.ConfigError{Key: "from", Reason: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", from)}
	}
	t, err := time.Parse(bronze.DateLayout, strings.TrimSpace(to))
	if err != nil {
		return ingest.Job{}, &bronze.ConfigError{Key: "to", Reason: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", to)}
	}
	if t.Before(f) {
		return ingest.Job{}, &bronze.ConfigError{Key: "to", Reason: fmt.Sprintf("%s is before --from %s", to, from)}
	}
	list := universe.ParseList(tickers)
	if len(list) == 0 {
		return ingest.Job{}, &bronze.ConfigError{Key: "tickers", Reason: "no ticker symbols given"}
	}
	return ingest.Job{From: f, To: t, Tickers: list}, nil
}

func runIngest(ctx context.Context, job ingest.Job, layout ingest.Layout) (*ingest.Report, error) {
	a, err := InitializeApp(ctx)
	if err != nil {
		return nil, err
	}
	defer a.DP.Close()

	slog.SetDefault(a.Logger)
	slog.Info("using data provider", "provider", a.DP.GetName(), "protocol", a.Config.DataProtocol, "format", a.Config.SaveFormat)

	runner := ingest.NewRunner(a.DP, a.Resolver, a.Writer,
		ingest.WithLayout(layout),
		ingest.WithLogger(a.Logger),
	)
	return runner.Run(ctx, job)
}
