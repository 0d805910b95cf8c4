package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/protocol"
)

var requestPayload string

var requestCmd = &cobra.Command{
	Use:   "request <code>",
	Short: "Issue a raw request by numeric code and print the decoded reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return fmt.Errorf("bad code %q: %w", args[0], err)
		}
		code := protocol.Code(raw)

		var payload []byte
		if requestPayload != "" {
			payload, err = hex.DecodeString(requestPayload)
			if err != nil {
				return fmt.Errorf("bad payload hex: %w", err)
			}
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := sess.Connect(ctx); err != nil {
			return err
		}
		defer sess.Disconnect()

		msg, err := sess.Request(ctx, code, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %+v\n", code, msg)
		return nil
	},
}

func init() {
	requestCmd.Flags().StringVar(&requestPayload, "payload", "", "request payload as hex, e.g. 0a0b0c")
	rootCmd.AddCommand(requestCmd)
}
