// Package cli implements the mspctl command tree.
//
// Ownership boundary:
//   - flag and config plumbing for every subcommand
//   - link construction (serial or tcp) from the merged config
//   - human-facing output; machine consumers use the monitor HTTP surface
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/config"
	"github.com/danmuck/mspctl/internal/logging"
	"github.com/danmuck/mspctl/internal/protocol/session"
	"github.com/danmuck/mspctl/internal/transport"
)

var (
	cfgFile       string
	overridesFile string
	portFlag      string
	baudFlag      int
	addrFlag      string
	timeoutMS     int

	cfg config.ClientConfig
)

var rootCmd = &cobra.Command{
	Use:           "mspctl",
	Short:         "Flight controller client for the MultiWii serial protocol",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.ConfigureRuntime()

		if cfgFile != "" {
			loaded, err := config.LoadClientConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.ClientConfig{
				Link:             config.LinkConfig{Baud: 115200},
				RequestTimeoutMS: 2000,
				Framing:          "stream",
				Monitor:          config.MonitorConfig{Addr: ":9140"},
			}
		}

		if overridesFile != "" {
			if err := applyOverrides(overridesFile); err != nil {
				return err
			}
		}

		// Flags override file values.
		if portFlag != "" {
			cfg.Link.Port = portFlag
		}
		if baudFlag != 0 {
			cfg.Link.Baud = baudFlag
		}
		if addrFlag != "" {
			cfg.Link.Addr = addrFlag
		}
		if timeoutMS != 0 {
			cfg.RequestTimeoutMS = timeoutMS
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to mspctl.toml")
	rootCmd.PersistentFlags().StringVar(&overridesFile, "overrides", "", "sparse TOML overlay applied over the base config")
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "serial device path, e.g. /dev/ttyACM0")
	rootCmd.PersistentFlags().IntVarP(&baudFlag, "baud", "b", 0, "serial baud rate")
	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "tcp bridge address, e.g. 127.0.0.1:5761")
	rootCmd.PersistentFlags().IntVar(&timeoutMS, "timeout-ms", 0, "request timeout in milliseconds")
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openSession builds a session over the configured link.
func openSession() (*session.Session, error) {
	if err := config.ValidateClientConfig(cfg); err != nil {
		return nil, err
	}

	var tr session.Transport
	var err error
	if cfg.Link.Addr != "" {
		tr, err = transport.NewTCP(cfg.Link.Addr, 5*time.Second)
	} else {
		tr, err = transport.NewSerial(cfg.Link.Port, cfg.Link.Baud)
	}
	if err != nil {
		return nil, err
	}

	sessCfg := session.Config{
		RequestTimeout: time.Duration(cfg.RequestTimeoutMS) * time.Millisecond,
	}
	if cfg.Framing == "chunked" {
		sessCfg.Framing = session.FramingChunked
	}
	return session.New(tr, sessCfg), nil
}
