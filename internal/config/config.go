// Package config loads muster settings from defaults, an optional YAML file
// and MUSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/muster/internal/domain"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

type Config struct {
	// DBPath is the SQLite file. ":memory:" keeps everything in process.
	DBPath string `koanf:"db_path"`

	// Ranks is the rank ladder, lowest first.
	Ranks []string `koanf:"ranks"`

	// OfficerRank is the lowest rank the officers filter keeps.
	OfficerRank string `koanf:"officer_rank"`

	// Workers bounds concurrent member evaluations in a report.
	Workers int `koanf:"workers"`

	// NoResponseThreshold is the count of unanswered sessions at which a
	// member is flagged in listings and reports.
	NoResponseThreshold int `koanf:"no_response_threshold"`

	// LogUseCases writes a structured line per service use case to stderr.
	LogUseCases bool `koanf:"log_use_cases"`

	// ListenAddr is where `muster serve` listens.
	ListenAddr string `koanf:"listen_addr"`

	// MetricsFile, when set, receives a Prometheus textfile after each report.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns the defaults. The rank list is a copy so decoding into it never
// touches domain.DefaultRanks.
func New() *Config {
	return &Config{
		DBPath:      defaultDBPath(),
		Ranks:       append([]string(nil), domain.DefaultRanks...),
		OfficerRank: domain.DefaultOfficerRank,
		Workers:     8,
		ListenAddr:  "127.0.0.1:8088",

		NoResponseThreshold: domain.DefaultNoResponseThreshold,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".muster", "muster.db")
	}
	return filepath.Join(home, ".muster", "muster.db")
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	}
	order, err := domain.NewRankOrder(c.Ranks)
	if err != nil {
		return fmt.Errorf("%w: ranks: %v", ErrInvalidConfig, err)
	}
	if !order.Contains(c.OfficerRank) {
		return fmt.Errorf("%w: officer_rank %q is not in ranks", ErrInvalidConfig, c.OfficerRank)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.NoResponseThreshold <= 0 {
		return fmt.Errorf("%w: no_response_threshold must be positive, got %d", ErrInvalidConfig, c.NoResponseThreshold)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

// RankOrder builds the ladder from Ranks. Call Validate first.
func (c *Config) RankOrder() (domain.RankOrder, error) {
	return domain.NewRankOrder(c.Ranks)
}
