package seed

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/courtside/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging sends log output to stdout and to logFile. If logFile is
// empty, a timestamped filename is generated. The returned file must be
// closed by the caller.
func SetupLogging(logFile string) (*os.File, error) {
	if logFile == "" {
		logFile = "seed_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Courtside Seed Tool
===================

Fills the competitors and competitor_rankings tables with synthetic data and
optionally checks that a running dashboard serves the expected views.

Usage:
  go run ./cmd/seed [options]

Options:
  -driver string
        Database driver: mysql, postgres or sqlite (default from COURTSIDE_DB_DRIVER)
  -dsn string
        Connection string (default built from the COURTSIDE_DB_* settings)
  -competitors int
        Number of competitors to generate (default 200)
  -unranked int
        Competitors generated without a ranking (default 10)
  -workers int
        Number of concurrent generator workers (default CPU cores)
  -reset
        Delete existing rows first
  -url string
        Dashboard base URL to verify, e.g. http://localhost:8501 (default: no verification)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Save the generated snapshot as JSON
  -log string
        Log file (default: seed_log_TIMESTAMP.log)
  -verbose
        Log the served leaderboard
  -help
        Show this help message

Examples:
  # Seed a local SQLite file
  go run ./cmd/seed -driver sqlite -dsn tennis.db -reset

  # Seed MySQL and verify a running dashboard
  go run ./cmd/seed -reset -url http://localhost:8501
`)
}
