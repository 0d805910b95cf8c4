package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// overrideFile is the flat key layout accepted by --overrides. Only keys
// actually present in the file are applied, so a sparse file leaves the
// base config untouched.
type overrideFile struct {
	Port             string `toml:"port"`
	Baud             int    `toml:"baud"`
	Addr             string `toml:"addr"`
	RequestTimeoutMS int    `toml:"request_timeout_ms"`
	Framing          string `toml:"framing"`
	MonitorAddr      string `toml:"monitor_addr"`
}

func applyOverrides(path string) error {
	var raw overrideFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}

	if meta.IsDefined("port") {
		cfg.Link.Port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("baud") {
		cfg.Link.Baud = raw.Baud
	}
	if meta.IsDefined("addr") {
		cfg.Link.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("request_timeout_ms") {
		cfg.RequestTimeoutMS = raw.RequestTimeoutMS
	}
	if meta.IsDefined("framing") {
		cfg.Framing = strings.TrimSpace(raw.Framing)
	}
	if meta.IsDefined("monitor_addr") {
		cfg.Monitor.Addr = strings.TrimSpace(raw.MonitorAddr)
	}
	return nil
}
