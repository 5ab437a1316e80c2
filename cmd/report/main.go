package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/okian/courtside/internal/adapters/chart"
	"github.com/okian/courtside/internal/adapters/export"
	"github.com/okian/courtside/internal/adapters/repository"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/internal/report"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// allOption disables a name or country filter, as in the dashboard.
const allOption = "All"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// boundFlag is an optional integer flag.
type boundFlag struct {
	value int
	set   bool
}

func (b *boundFlag) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.Itoa(b.value)
}

func (b *boundFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	b.value, b.set = v, true
	return nil
}

// rangeOf returns nil when neither side is set; a missing side is open.
func rangeOf(minFlag, maxFlag boundFlag) (*model.Range, error) {
	if !minFlag.set && !maxFlag.set {
		return nil, nil //nolint:nilnil // absent range means full observed range
	}
	r := model.Range{Min: math.MinInt, Max: math.MaxInt}
	if minFlag.set {
		r.Min = minFlag.value
	}
	if maxFlag.set {
		r.Max = maxFlag.value
	}
	if r.Empty() {
		return nil, fmt.Errorf("min %d exceeds max %d", r.Min, r.Max)
	}
	return &r, nil
}

type outputs struct {
	xlsx, csv, chart, topChart string
}

// run renders one pass as a terminal report on stdout and writes any
// requested files. Logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		rankMin, rankMax, pointsMin, pointsMax boundFlag
		out                                    outputs
	)
	name := fs.String("name", allOption, "Competitor name filter")
	country := fs.String("country", allOption, "Country filter")
	selected := fs.String("selected", "", "Competitor whose details are shown (default: first filtered)")
	fs.Var(&rankMin, "rank-min", "Lowest rank shown")
	fs.Var(&rankMax, "rank-max", "Highest rank shown")
	fs.Var(&pointsMin, "points-min", "Lowest points shown")
	fs.Var(&pointsMax, "points-max", "Highest points shown")
	fs.StringVar(&out.xlsx, "xlsx", "", "Write the workbook to this path")
	fs.StringVar(&out.csv, "csv", "", "Write the filtered competitors CSV to this path")
	fs.StringVar(&out.chart, "chart", "", "Write the country bar chart PNG to this path")
	fs.StringVar(&out.topChart, "top-chart", "", "Write the top-by-points bar chart PNG to this path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	rankRange, err := rangeOf(rankMin, rankMax)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	pointsRange, err := rangeOf(pointsMin, pointsMax)
	if err != nil {
		return fmt.Errorf("points: %w", err)
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}
	svc := app.New(
		app.WithLogger(logger.Named("report")),
		app.WithOpener(app.RepositoryOpener(cfg.DBDriver, dsn,
			repository.WithQueryTimeout(time.Duration(cfg.QueryTimeoutMS)*time.Millisecond))),
		app.WithTopN(cfg.TopN),
		app.WithAggregateScope(cfg.AggregateScope),
	)

	views, err := svc.Recompute(ctx, pipeline.Request{
		Criteria: model.FilterCriteria{
			Name:        choice(*name),
			Country:     choice(*country),
			RankRange:   rankRange,
			PointsRange: pointsRange,
		},
		Selected: *selected,
	})
	if err != nil {
		return err
	}

	if err := report.Write(stdout, views); err != nil {
		return err
	}
	return writeOutputs(ctx, out, views, chart.WithSize(cfg.ChartWidth, cfg.ChartHeight))
}

func choice(v string) string {
	if v == allOption {
		return ""
	}
	return v
}

func writeOutputs(ctx context.Context, out outputs, views model.Views, size chart.Option) error {
	files := []struct {
		path   string
		label  string
		render func(io.Writer) error
	}{
		{out.xlsx, "xlsx", func(w io.Writer) error { return export.Workbook(w, views) }},
		{out.csv, "csv", func(w io.Writer) error { return export.FilteredCSV(w, views.Filtered) }},
		{out.chart, "countries", func(w io.Writer) error { return chart.CountriesBar(w, views.Countries, size) }},
		{out.topChart, "top_points", func(w io.Writer) error { return chart.TopPointsBar(w, views.TopByPoints, size) }},
	}

	for _, f := range files {
		if f.path == "" {
			continue
		}
		err := writeFile(f.path, f.render)
		if errors.Is(err, chart.ErrNoData) {
			logger.Get().Warn(ctx, "chart skipped, no data", logger.String("path", f.path))
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
		switch f.label {
		case "xlsx", "csv":
			metrics.RecordExport(f.label)
		default:
			metrics.RecordChartRender(f.label)
		}
		logger.Get().Info(ctx, "file written", logger.String("path", f.path))
	}
	return nil
}

// writeFile renders into path. Nothing is left behind when render fails.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return render(f)
}
