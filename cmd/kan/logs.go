package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/logging"
)

var (
	logsProducers int
	logsCount     int
	logsHotDepth  int
	logsColdDepth int
	logsInterval  time.Duration
	logsLevel     string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Run producers against the in-memory logger and print what survived",
	Long: `logs starts --producers goroutines that each write --count records while a
drainer moves the hot ring into the cold ring every --interval. Records written
faster than the drainer runs are overwritten and reported as lost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(logsLevel)
		if err != nil {
			return err
		}
		res, err := runDemo(cmd.Context(), demoOptions{
			Producers: logsProducers,
			Count:     logsCount,
			HotDepth:  logsHotDepth,
			ColdDepth: logsColdDepth,
			Interval:  logsInterval,
			Level:     level,
		})
		if err != nil {
			return err
		}
		res.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logsProducers, "producers", "p", 4, "number of concurrent producers")
	logsCmd.Flags().IntVarP(&logsCount, "count", "n", 1000, "records written by each producer")
	logsCmd.Flags().IntVar(&logsHotDepth, "hot-depth", constants.DefaultHotDepth, "hot ring capacity")
	logsCmd.Flags().IntVar(&logsColdDepth, "cold-depth", constants.DefaultColdDepth, "cold ring capacity")
	logsCmd.Flags().DurationVar(&logsInterval, "interval", constants.DefaultTickRate, "drain interval")
	logsCmd.Flags().StringVar(&logsLevel, "level", "trace", "default level threshold")
}

type demoOptions struct {
	Producers int
	Count     int
	HotDepth  int
	ColdDepth int
	Interval  time.Duration
	Level     logging.Level
}

type demoResult struct {
	Seen   int
	Lost   int
	Drains int
	Cold   []logging.Record
}

// runDemo writes Producers*Count records from concurrent goroutines while
// draining on a ticker, then drains once more after the producers finish.
// Odd producers write through the slog adapter.
func runDemo(ctx context.Context, opts demoOptions) (demoResult, error) {
	l := logging.NewLogger(logging.Options{
		HotDepth:     opts.HotDepth,
		ColdDepth:    opts.ColdDepth,
		DefaultLevel: opts.Level,
	})

	g, gctx := errgroup.WithContext(ctx)
	for p := range opts.Producers {
		target := fmt.Sprintf("producer-%d", p)
		g.Go(func() error {
			slogger := logging.NewSlog(l, target)
			for i := range opts.Count {
				if err := gctx.Err(); err != nil {
					return err
				}
				if p%2 == 1 {
					slogger.Info("event", "n", i)
				} else {
					l.Logf(target, logging.LevelInfo, "event n=%d", i)
				}
			}
			return nil
		})
	}
	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()

	var res demoResult
	drain := func() {
		stats := l.DrainToCold()
		if stats.Total > 0 {
			res.Drains++
		}
		res.Lost += stats.Lost()
	}

	ticker := time.NewTicker(max(opts.Interval, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			drain()
		case err := <-waitErr:
			if err != nil {
				return res, err
			}
			drain()
			res.Seen = l.TotalEventsSeen()
			res.Cold = l.Cold()
			return res, nil
		}
	}
}

func (r demoResult) print(w io.Writer) {
	for _, rec := range r.Cold {
		fmt.Fprintln(w, rec.Format())
	}
	fmt.Fprintf(w, "seen %d, kept %d, lost %d in %d drains\n", r.Seen, r.Seen-r.Lost, r.Lost, r.Drains)
}
