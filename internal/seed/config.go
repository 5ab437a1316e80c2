// Package seed fills a database with a synthetic tennis data set and checks
// that a running dashboard serves the views expected for it.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	Driver      string        // database/sql driver name
	DSN         string        // Connection string for Driver
	Competitors int           // Number of competitors to generate
	Unranked    int           // Competitors generated without a ranking row
	Workers     int           // Number of concurrent generator workers
	Reset       bool          // Delete existing rows before inserting
	BaseURL     string        // Dashboard to verify; empty skips verification
	TopN        int           // Leaderboard length configured on the dashboard
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for the generated snapshot
	Verbose     bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	CompetitorsGenerated int
	RankingsGenerated    int
	RowsWritten          int
	ViewsVerified        bool
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
