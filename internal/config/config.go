package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"live-auction/internal/models"
)

const (
	DefaultTCPAddr         = ":12345"
	DefaultUDPAddr         = ":9876"
	DefaultHTTPAddr        = ":8080"
	DefaultDuration        = 60 * time.Second
	DefaultWarnWindow      = 10 * time.Second
	DefaultTickInterval    = time.Second
	DefaultMinIncrement    = 1
	DefaultSnapshotWorkers = 16
	DefaultSnapshotBurst   = 32
	DefaultWriteTimeout    = 5 * time.Second
	DefaultOutboxSize      = 64
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the server needs to run one auction
type Config struct {
	Lot models.Lot

	TCPAddr  string
	UDPAddr  string
	HTTPAddr string

	Duration     time.Duration
	WarnWindow   time.Duration
	TickInterval time.Duration
	MinIncrement int64

	MaxSessions  int
	WriteTimeout time.Duration
	OutboxSize   int

	SnapshotWorkers int
	SnapshotRate    float64
	SnapshotBurst   int

	LogLevel string
}

// Load reads the lot from command-line flags and the rest from the environment
func Load(args []string) (Config, error) {
	return LoadFrom(args, os.Getenv)
}

// LoadFrom is Load with an explicit environment lookup
func LoadFrom(args []string, getenv func(string) string) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("auction-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Lot.Name, "name", "", "Name of the lot under auction (required)")
	fs.StringVar(&cfg.Lot.Description, "description", "", "Description of the lot")
	fs.Int64Var(&cfg.Lot.StartingPrice, "starting-price", 0, "Lowest acceptable first bid")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Lot.Name = strings.TrimSpace(cfg.Lot.Name)

	env := envReader{getenv: getenv}
	cfg.TCPAddr = env.str("AUCTION_TCP_ADDR", DefaultTCPAddr)
	cfg.UDPAddr = env.str("AUCTION_UDP_ADDR", DefaultUDPAddr)
	cfg.HTTPAddr = env.str("AUCTION_HTTP_ADDR", httpAddrFromPort(getenv("PORT")))
	cfg.Duration = env.duration("AUCTION_DURATION", DefaultDuration)
	cfg.WarnWindow = env.duration("AUCTION_WARN_WINDOW", DefaultWarnWindow)
	cfg.TickInterval = env.duration("AUCTION_TICK_INTERVAL", DefaultTickInterval)
	cfg.MinIncrement = int64(env.integer("AUCTION_MIN_INCREMENT", DefaultMinIncrement))
	cfg.MaxSessions = env.integer("AUCTION_MAX_SESSIONS", 0)
	cfg.WriteTimeout = env.duration("AUCTION_WRITE_TIMEOUT", DefaultWriteTimeout)
	cfg.OutboxSize = env.integer("AUCTION_OUTBOX_SIZE", DefaultOutboxSize)
	cfg.SnapshotWorkers = env.integer("AUCTION_SNAPSHOT_WORKERS", DefaultSnapshotWorkers)
	cfg.SnapshotRate = env.float("AUCTION_SNAPSHOT_RATE", 0)
	cfg.SnapshotBurst = env.integer("AUCTION_SNAPSHOT_BURST", DefaultSnapshotBurst)
	cfg.LogLevel = getenv("LOG_LEVEL")

	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would make the auction impossible to run
func (c Config) Validate() error {
	var problems []string
	if c.Lot.Name == "" {
		problems = append(problems, "lot name is required")
	}
	if c.Lot.StartingPrice < 0 {
		problems = append(problems, "starting price must not be negative")
	}
	if c.Duration <= 0 {
		problems = append(problems, "duration must be positive")
	}
	if c.WarnWindow < 0 {
		problems = append(problems, "warn window must not be negative")
	}
	if c.TickInterval <= 0 {
		problems = append(problems, "tick interval must be positive")
	}
	if c.MinIncrement < 1 {
		problems = append(problems, "minimum increment must be at least 1")
	}
	if c.MaxSessions < 0 {
		problems = append(problems, "max sessions must not be negative")
	}
	if c.OutboxSize < 1 {
		problems = append(problems, "outbox size must be at least 1")
	}
	if c.SnapshotWorkers < 1 {
		problems = append(problems, "snapshot workers must be at least 1")
	}
	if c.SnapshotRate < 0 {
		problems = append(problems, "snapshot rate must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %w - %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func httpAddrFromPort(port string) string {
	if port != "" {
		return fmt.Sprintf(":%s", port)
	}
	return DefaultHTTPAddr
}

// envReader keeps the first parse failure so Load reports one error
type envReader struct {
	getenv func(string) string
	err    error
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) integer(key string, def int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *envReader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("config: %w - %s=%q: %v", ErrInvalidConfig, key, value, err)
	}
}
