package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

const DefaultPort = 8080

type AppConfig struct {
	ListenHost string
	Port       int

	// RedisURL enables the shared identifier directory. Empty keeps identifiers in memory.
	RedisURL      string
	IdentifierTTL time.Duration

	WriteTimeout time.Duration
	PingInterval time.Duration

	MessagesDir    string
	AllowedOrigins []string
}

// Load applies defaults, then environment variables, then command-line flags.
// It returns flag.ErrHelp when --help was requested.
func Load(args []string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          DefaultPort,
		IdentifierTTL: 24 * time.Hour,
		WriteTimeout:  5 * time.Second,
		PingInterval:  30 * time.Second,
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "TCP port to listen on")
	fs.StringVar(&cfg.ListenHost, "host", cfg.ListenHost, "Interface to bind (empty for all)")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "redis:// URL for the game identifier directory")
	fs.StringVar(&cfg.MessagesDir, "messages-dir", cfg.MessagesDir, "Directory of YAML files overriding notice texts")
	fs.DurationVar(&cfg.IdentifierTTL, "identifier-ttl", cfg.IdentifierTTL, "How long an identifier stays reserved in Redis")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CHESS_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESS_PORT: %w", err)
		}
		c.Port = n
	}
	c.ListenHost = strings.TrimSpace(os.Getenv("CHESS_LISTEN_HOST"))
	c.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	c.MessagesDir = strings.TrimSpace(os.Getenv("CHESS_MESSAGES_DIR"))

	var err error
	if c.IdentifierTTL, err = envDuration("CHESS_IDENTIFIER_TTL", c.IdentifierTTL); err != nil {
		return err
	}
	if c.WriteTimeout, err = envDuration("CHESS_WRITE_TIMEOUT", c.WriteTimeout); err != nil {
		return err
	}
	if c.PingInterval, err = envDuration("CHESS_PING_INTERVAL", c.PingInterval); err != nil {
		return err
	}

	if v := strings.TrimSpace(os.Getenv("CHESS_ALLOWED_ORIGINS")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, s)
			}
		}
	}
	return nil
}

// envDuration accepts Go durations ("90s") or a bare number of seconds.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.WriteTimeout <= 0 {
		return errors.New("write timeout must be positive")
	}
	if c.IdentifierTTL <= 0 {
		return errors.New("identifier ttl must be positive")
	}
	if c.PingInterval < 0 {
		return errors.New("ping interval must not be negative")
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("unsupported redis url scheme: %s", c.RedisURL)
	}
	return nil
}

// Addr is the host:port the HTTP server binds.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.Port))
}
