package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mspctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadClientConfig(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
request_timeout_ms = 1500
framing = "chunked"

[link]
port = "/dev/ttyACM0"
baud = 57600

[monitor]
enabled = true
addr = ":9999"
`)
	cfg, err := LoadClientConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Link.Port != "/dev/ttyACM0" || cfg.Link.Baud != 57600 {
		t.Fatalf("link: %+v", cfg.Link)
	}
	if cfg.RequestTimeoutMS != 1500 || cfg.Framing != "chunked" {
		t.Fatalf("cfg: %+v", cfg)
	}
	if !cfg.Monitor.Enabled || cfg.Monitor.Addr != ":9999" {
		t.Fatalf("monitor: %+v", cfg.Monitor)
	}
}

func TestLoadClientConfigDefaults(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
[link]
addr = "127.0.0.1:5761"
`)
	cfg, err := LoadClientConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Link.Baud != 115200 {
		t.Fatalf("default baud: %d", cfg.Link.Baud)
	}
	if cfg.RequestTimeoutMS != 2000 || cfg.Framing != "stream" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Monitor.Addr != ":9140" {
		t.Fatalf("monitor addr: %q", cfg.Monitor.Addr)
	}
}

func TestLoadClientConfigRejectsEmptyLink(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "request_timeout_ms = 100\n")
	if _, err := LoadClientConfig(path); err == nil {
		t.Fatalf("expected validation error for missing link")
	}
}

func TestLoadClientConfigRejectsBadFraming(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
framing = "datagram"

[link]
port = "/dev/ttyACM0"
`)
	if _, err := LoadClientConfig(path); err == nil {
		t.Fatalf("expected validation error for unknown framing")
	}
}

func TestLoadClientConfigMissingFile(t *testing.T) {
	testlog.Start(t)
	if _, err := LoadClientConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
