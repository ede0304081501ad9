// Package config loads the settings for one lobkit/book.OrderBook from
// a YAML file, with select fields overridable via LOB_* environment
// variables — the same viper + mapstructure + env-override shape the
// teacher bot's internal/config/config.go uses, scaled down to the one
// thing this repository's Config actually needs to describe: how to
// construct a single book, not a registry of markets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"lobkit/book"
	"lobkit/sortedmap"
)

// Config is the top-level configuration: one book's construction
// parameters plus logging.
type Config struct {
	Book    BookConfig    `mapstructure:"book"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BookConfig mirrors book.Options in a YAML/env-friendly shape.
//
//   - MaxDepth: 0 means unbounded.
//   - Truncate: true evicts overflow eagerly on every write; false
//     (the default) only caps what read paths report.
//   - ChecksumFormat: one of KRAKEN, OKX, OKCOIN, FTX, or empty/NONE
//     to disable checksum.Compute.
type BookConfig struct {
	MaxDepth       int    `mapstructure:"max_depth"`
	Truncate       bool   `mapstructure:"truncate"`
	ChecksumFormat string `mapstructure:"checksum_format"`
}

// LoggingConfig controls the example CLI's logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads cfg from the YAML file at path, then applies environment
// overrides: LOB_BOOK_MAX_DEPTH, LOB_BOOK_TRUNCATE, LOB_BOOK_CHECKSUM_FORMAT,
// LOB_LOGGING_LEVEL, LOB_LOGGING_FORMAT.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("LOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if s := os.Getenv("LOB_BOOK_MAX_DEPTH"); s != "" {
		depth, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("LOB_BOOK_MAX_DEPTH: %w", err)
		}
		cfg.Book.MaxDepth = depth
	}
	if s := os.Getenv("LOB_BOOK_TRUNCATE"); s != "" {
		cfg.Book.Truncate = s == "true" || s == "1"
	}
	if s := os.Getenv("LOB_BOOK_CHECKSUM_FORMAT"); s != "" {
		cfg.Book.ChecksumFormat = s
	}
	if s := os.Getenv("LOB_LOGGING_LEVEL"); s != "" {
		cfg.Logging.Level = s
	}
	if s := os.Getenv("LOB_LOGGING_FORMAT"); s != "" {
		cfg.Logging.Format = s
	}

	return &cfg, nil
}

// Validate checks that Book's fields describe a constructible
// OrderBook before Options is called.
func (c *Config) Validate() error {
	if c.Book.MaxDepth < 0 {
		return fmt.Errorf("book.max_depth must be >= 0")
	}
	if c.Book.Truncate && c.Book.MaxDepth == 0 {
		return fmt.Errorf("book.truncate requires book.max_depth > 0")
	}
	if _, err := book.ParseChecksumFormat(c.Book.ChecksumFormat); err != nil {
		return fmt.Errorf("book.checksum_format: %w", err)
	}
	return nil
}

// Options translates BookConfig into book.Options.
func (b BookConfig) Options() (book.Options, error) {
	format, err := book.ParseChecksumFormat(b.ChecksumFormat)
	if err != nil {
		return book.Options{}, err
	}
	truncate := sortedmap.TruncateOff
	if b.Truncate {
		truncate = sortedmap.TruncateOn
	}
	return book.Options{
		MaxDepth:       b.MaxDepth,
		Truncate:       truncate,
		ChecksumFormat: format,
	}, nil
}
