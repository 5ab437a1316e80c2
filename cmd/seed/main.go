package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/internal/seed"
	"github.com/okian/courtside/pkg/logger"
)

// Default configuration constants.
const (
	defaultCompetitors = 200
	defaultUnranked    = 10
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run parses args, resolves database defaults from the courtside config and
// executes one seeding run.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		driver      = fs.String("driver", "", "Database driver (default from config)")
		dsn         = fs.String("dsn", "", "Connection string (default from config)")
		competitors = fs.Int("competitors", defaultCompetitors, "Number of competitors to generate")
		unranked    = fs.Int("unranked", defaultUnranked, "Competitors generated without a ranking")
		workers     = fs.Int("workers", runtime.NumCPU(), "Number of concurrent generator workers")
		reset       = fs.Bool("reset", false, "Delete existing rows first")
		baseURL     = fs.String("url", "", "Dashboard base URL to verify")
		timeout     = fs.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = fs.String("output", "", "Save the generated snapshot as JSON")
		logFile     = fs.String("log", "", "Log file (default: seed_log_TIMESTAMP.log)")
		verbose     = fs.Bool("verbose", false, "Log the served leaderboard")
		help        = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *help {
		seed.ShowHelp(stdout)
		return nil
	}

	file, err := seed.SetupLogging(*logFile)
	if err != nil {
		return err
	}
	defer file.Close()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *driver != "" {
		cfg.DBDriver = *driver
	}
	if *dsn != "" {
		cfg.DBDSN = *dsn
	}
	resolved, err := cfg.DSN()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	_, err = seed.Run(ctx, &seed.Config{
		Driver:      cfg.DBDriver,
		DSN:         resolved,
		Competitors: *competitors,
		Unranked:    *unranked,
		Workers:     *workers,
		Reset:       *reset,
		BaseURL:     *baseURL,
		TopN:        cfg.TopN,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	})
	if err != nil {
		logger.Get().Error(ctx, "seed run failed", logger.Error(err))
	}
	return err
}
