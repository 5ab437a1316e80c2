package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes a complete seeding run: generate, write, save and, when a
// base URL is configured, verify.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting courtside seed",
		logger.String("driver", cfg.Driver),
		logger.Int("competitors", cfg.Competitors),
		logger.Int("unranked", cfg.Unranked),
		logger.Int("workers", cfg.Workers),
		logger.Bool("reset", cfg.Reset),
		logger.String("baseURL", cfg.BaseURL))

	snap, err := Generate(ctx, cfg, stats)
	if err != nil {
		return stats, fmt.Errorf("generation failed: %w", err)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return stats, fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Get().Warn(ctx, "failed to close database", logger.Error(err))
		}
	}()

	written, err := Write(ctx, db, snap, cfg.Reset)
	stats.RowsWritten = written
	if err != nil {
		return stats, fmt.Errorf("write failed: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := saveSnapshot(ctx, cfg.OutputFile, snap); err != nil {
			logger.Get().Warn(ctx, "failed to save snapshot to file", logger.Error(err))
		}
	}

	if cfg.BaseURL != "" {
		if !cfg.Reset {
			logger.Get().Warn(ctx, "verifying without reset; pre-existing rows will cause mismatches")
		}
		if err := Verify(ctx, cfg, snap); err != nil {
			return stats, fmt.Errorf("verification failed: %w", err)
		}
		stats.ViewsVerified = true
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logFinalStats(ctx, stats)

	return stats, nil
}

// saveSnapshot writes snap as indented JSON.
func saveSnapshot(ctx context.Context, filename string, snap model.Snapshot) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "snapshot saved to file", logger.String("filename", filename))
	return nil
}

func logFinalStats(ctx context.Context, stats *Stats) {
	var rowsPerSecond float64
	if stats.Duration > 0 {
		rowsPerSecond = float64(stats.RowsWritten) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("competitorsGenerated", stats.CompetitorsGenerated),
		logger.Int("rankingsGenerated", stats.RankingsGenerated),
		logger.Int("rowsWritten", stats.RowsWritten),
		logger.Bool("viewsVerified", stats.ViewsVerified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("rowsPerSecond", rowsPerSecond))
}
