package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/monitor"
	"github.com/danmuck/mspctl/internal/observability"
	"github.com/danmuck/mspctl/internal/protocol"
)

var monitorAddr string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Serve latest telemetry and process metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		observability.InitLogger("mspctl")
		observability.RegisterMetrics()

		sess, err := openSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := sess.Connect(ctx); err != nil {
			return err
		}
		defer sess.Disconnect()

		if _, err := sess.Handshake(ctx); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}

		// Keep telemetry flowing for the HTTP cache.
		go func() {
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					for _, code := range []protocol.Code{
						protocol.CmdAttitude,
						protocol.CmdAnalog,
						protocol.CmdAltitude,
						protocol.CmdBatteryState,
					} {
						_ = sess.Send(code, nil)
					}
				}
			}
		}()

		addr := monitorAddr
		if addr == "" {
			addr = cfg.Monitor.Addr
		}
		return monitor.NewServer(addr, sess).Run(ctx)
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorAddr, "listen", "", "http listen address (default from config)")
	rootCmd.AddCommand(monitorCmd)
}
