package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LinkConfig selects the flight-controller link.
type LinkConfig struct {
	// Port is a serial device path, e.g. /dev/ttyACM0.
	Port string `toml:"port"`
	Baud int    `toml:"baud"`
	// Addr is a TCP bridge address; takes precedence over Port when set.
	Addr string `toml:"addr"`
}

// MonitorConfig configures the telemetry HTTP server.
type MonitorConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type ClientConfig struct {
	Link             LinkConfig    `toml:"link"`
	RequestTimeoutMS int           `toml:"request_timeout_ms"`
	Framing          string        `toml:"framing"`
	Monitor          MonitorConfig `toml:"monitor"`
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Link.Baud == 0 {
		cfg.Link.Baud = 115200
	}
	if cfg.RequestTimeoutMS == 0 {
		cfg.RequestTimeoutMS = 2000
	}
	if cfg.Framing == "" {
		cfg.Framing = "stream"
	}
	if cfg.Monitor.Addr == "" {
		cfg.Monitor.Addr = ":9140"
	}
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	if strings.TrimSpace(cfg.Link.Port) == "" && strings.TrimSpace(cfg.Link.Addr) == "" {
		return fmt.Errorf("link config requires port or addr")
	}
	switch cfg.Framing {
	case "stream", "chunked":
	default:
		return fmt.Errorf("framing must be stream or chunked, got %q", cfg.Framing)
	}
	if cfg.RequestTimeoutMS < 0 {
		return fmt.Errorf("request_timeout_ms must be positive")
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
