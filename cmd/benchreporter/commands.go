package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hyp3rd/benchreporter"
	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/middleware"
	"github.com/hyp3rd/benchreporter/pkg/regression"
	"github.com/hyp3rd/benchreporter/pkg/result"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

const shutdownTimeout = 5 * time.Second

// errTestsFailed is returned by compare when at least one test regressed.
var errTestsFailed = ewrap.New("one or more tests regressed")

type cli struct {
	configPath  string
	sigFigs     uint
	aggregation string
	verbose     bool
	cfg         Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "benchreporter",
		Short:         "Aggregate benchmark runs and flag regressions against a baseline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	flags.UintVar(&c.sigFigs, "sigfig", 0, "significant figures used for comparison")
	flags.StringVar(&c.aggregation, "aggregation", "", "aggregation type (average, min, max, median, percentile, definition)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log service calls to stderr")

	rootCmd.AddCommand(c.aggregateCmd(), c.compareCmd(), c.serveCmd())

	return rootCmd
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("sigfig") {
		cfg.SigFigs = c.sigFigs
	}

	if cmd.Flags().Changed("aggregation") {
		cfg.Aggregation = c.aggregation
	}

	c.cfg = cfg

	return nil
}

// service builds the configured processor decorated with the requested middlewares.
func (c *cli) service(stderr io.Writer, mw ...benchreporter.Middleware) (benchreporter.Service, func() error, error) {
	opts, closer, err := c.cfg.options()
	if err != nil {
		return nil, nil, err
	}

	processor, err := benchreporter.New(opts...)
	if err != nil {
		_ = closer()

		return nil, nil, err
	}

	if c.verbose {
		logger := log.New(stderr, "benchreporter ", log.LstdFlags)
		mw = append(mw, func(next benchreporter.Service) benchreporter.Service {
			return middleware.NewLoggingMiddleware(next, logger)
		})
	}

	return benchreporter.ApplyMiddleware(processor, mw...), closer, nil
}

func (c *cli) readRun(path string) (*run.Run, error) {
	if path == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "run file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrapf(err, "read run %s", path)
	}

	ser, err := c.cfg.documentSerializer()
	if err != nil {
		return nil, err
	}

	return run.Decode(data, ser)
}

func (c *cli) aggregateCmd() *cobra.Command {
	var (
		runPath    string
		name       string
		isBaseline bool
		store      bool
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a raw run into per-test statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.readRun(runPath)
			if err != nil {
				return err
			}

			svc, closer, err := c.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer() //nolint:errcheck

			if store {
				baseline, err := svc.SaveBaseline(cmd.Context(), r, name)
				if err != nil {
					return err
				}

				return c.write(cmd.OutOrStdout(), outPath, baseline)
			}

			results, err := svc.Process(cmd.Context(), r)
			if err != nil {
				return err
			}

			return c.write(cmd.OutOrStdout(), outPath, svc.NewRunResult(r, results, name, isBaseline))
		},
	}

	cmd.Flags().StringVar(&runPath, "run", "", "raw run file")
	cmd.Flags().StringVar(&name, "name", "", "result name")
	cmd.Flags().BoolVar(&isBaseline, "baseline", false, "label the aggregated run as baseline")
	cmd.Flags().BoolVar(&store, "store", false, "save the aggregated run as baseline --name in the configured store")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (stdout when empty)")

	return cmd
}

func (c *cli) compareCmd() *cobra.Command {
	var (
		runPath      string
		baselinePath string
		baselineName string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a raw run against a raw baseline run or a stored baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (baselinePath == "") == (baselineName == "") {
				return ewrap.Wrap(sentinel.ErrInvalidInput, "exactly one of --baseline or --baseline-name is required")
			}

			r, err := c.readRun(runPath)
			if err != nil {
				return err
			}

			svc, closer, err := c.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer() //nolint:errcheck

			var report *benchreporter.Report
			if baselineName != "" {
				report, err = svc.CompareWithBaseline(cmd.Context(), r, baselineName, "")
			} else {
				report, err = c.compareFiles(cmd.Context(), svc, baselinePath, r)
			}

			if err != nil {
				return err
			}

			if outPath != "" {
				err = c.write(cmd.OutOrStdout(), outPath, report)
				if err != nil {
					return err
				}
			}

			printSummary(cmd.OutOrStdout(), report.Run.TestResults, report.Summary)

			if !report.Summary.Passed() {
				return errTestsFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&runPath, "run", "", "raw candidate run file")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "raw baseline run file")
	cmd.Flags().StringVar(&baselineName, "baseline-name", "", "name of a baseline kept in the configured store")
	cmd.Flags().StringVar(&outPath, "out", "", "write the full report to this file")

	return cmd
}

// compareFiles aggregates the raw baseline run at path and evaluates r against it.
func (c *cli) compareFiles(ctx context.Context, svc benchreporter.Service, path string, r *run.Run) (*benchreporter.Report, error) {
	baselineRun, err := c.readRun(path)
	if err != nil {
		return nil, err
	}

	baseline, err := svc.Process(ctx, baselineRun)
	if err != nil {
		return nil, err
	}

	candidate, err := svc.Process(ctx, r)
	if err != nil {
		return nil, err
	}

	return &benchreporter.Report{
		Run:     svc.NewRunResult(r, candidate, "", false),
		Summary: svc.Compare(ctx, baseline, candidate),
	}, nil
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve baselines and comparisons over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.HTTP.Addr = addr
			}

			tracing := func(next benchreporter.Service) benchreporter.Service {
				return middleware.NewOTelTracingMiddleware(next, otel.Tracer("benchreporter"), middleware.WithCommonAttributes(
					attribute.String("component", "benchreporter"),
				))
			}

			svc, closer, err := c.service(cmd.ErrOrStderr(), tracing)
			if err != nil {
				return err
			}
			defer closer() //nolint:errcheck

			svc, err = middleware.NewOTelMetricsMiddleware(svc, otel.Meter("benchreporter"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := benchreporter.NewManagementHTTPServer(c.cfg.HTTP.Addr)

			err = srv.Start(ctx, svc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", srv.Address())

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")

	return cmd
}

func (c *cli) write(stdout io.Writer, path string, v any) error {
	ser, err := c.cfg.documentSerializer()
	if err != nil {
		return err
	}

	data, err := ser.Marshal(v)
	if err != nil {
		return ewrap.Wrap(err, "encode output")
	}

	if path == "" {
		_, err = stdout.Write(append(data, '\n'))

		return err
	}

	return os.WriteFile(path, data, 0o600)
}

func printSummary(w io.Writer, results []*result.TestResult, summary regression.Summary) {
	for _, test := range results {
		fmt.Fprintf(w, "%-8s %s\n", test.State, test.TestName)

		for _, group := range test.SampleGroupResults {
			if group.Classification == result.Neutral && !group.Regressed {
				continue
			}

			fmt.Fprintf(w, "    %-11s %s: %v (baseline %v, threshold %v)\n",
				group.Classification, group.SampleGroupName, group.AggregatedValue, group.BaselineValue, group.Threshold)
		}
	}

	fmt.Fprintf(w, "tests: %d compared groups: %d regressions: %d progressions: %d unmatched: %d\n",
		summary.Tests, summary.Compared, summary.Regressions, summary.Progressions, summary.Unmatched)
}
