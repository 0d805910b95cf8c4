package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/protocol"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll attitude and analog telemetry and print every reply",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		out := cmd.OutOrStdout()
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg := <-sess.Messages():
				fmt.Fprintln(out, formatMessage(msg))
			case <-ticker.C:
				for _, code := range []protocol.Code{protocol.CmdAttitude, protocol.CmdAnalog} {
					if err := sess.Send(code, nil); err != nil {
						return err
					}
				}
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "poll interval")
	rootCmd.AddCommand(watchCmd)
}
