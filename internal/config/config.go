// Package config loads the runtime-tunable defaults for the perft driver:
// transposition cache size, worker count, default position, and logging
// level. Settings come from an optional TOML file; anything the file
// omits falls back to a documented default.
package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
)

// DefaultCacheBits is the default transposition cache size, in bits: the
// table holds 2^DefaultCacheBits slots.
const DefaultCacheBits = 19

// DefaultStartFEN is the position perft runs against when none is given.
const DefaultStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Config holds the ambient settings for the perft CLI.
type Config struct {
	CacheBits int
	Workers   int
	StartFEN  string
	LogLevel  logging.Level
}

// Default returns the documented defaults: a 2^19-slot cache, one worker
// per logical CPU, the standard starting position, and INFO-level logging.
func Default() Config {
	return Config{
		CacheBits: DefaultCacheBits,
		Workers:   runtime.NumCPU(),
		StartFEN:  DefaultStartFEN,
		LogLevel:  logging.INFO,
	}
}

// fileFormat is the on-disk TOML shape. Field names are lowercased and
// snake_cased independently of the in-memory Config so the file format can
// evolve without renaming the Go-facing struct.
type fileFormat struct {
	CacheBits int    `toml:"cache_bits"`
	Workers   int    `toml:"workers"`
	StartFEN  string `toml:"start_fen"`
	LogLevel  string `toml:"log_level"`
}

// Load reads path as a TOML config file and overlays it onto Default(),
// leaving any field the file omits at its default value. An empty path
// returns Default() unchanged; a file that cannot be read or decoded, or an
// unknown log_level, is reported as an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var ff fileFormat
	if _, err := toml.DecodeFile(path, &ff); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if ff.CacheBits > 0 {
		cfg.CacheBits = ff.CacheBits
	}
	if ff.Workers > 0 {
		cfg.Workers = ff.Workers
	}
	if ff.StartFEN != "" {
		cfg.StartFEN = ff.StartFEN
	}
	if ff.LogLevel != "" {
		level, err := logging.LogLevel(ff.LogLevel)
		if err != nil {
			return cfg, fmt.Errorf("config: log_level %q: %w", ff.LogLevel, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}
