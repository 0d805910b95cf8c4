package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/schema"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write device settings",
}

var setNameCmd = &cobra.Command{
	Use:   "name <craft-name>",
	Short: "Store the craft name on the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRequest(cmd, protocol.CmdSetName, schema.EncodeSetName(args[0]))
	},
}

var setRtcCmd = &cobra.Command{
	Use:   "rtc",
	Short: "Sync the device clock to the host clock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		payload := schema.EncodeSetRtc(uint32(now.Unix()), uint16(now.UnixMilli()%1000))
		return setRequest(cmd, protocol.CmdSetRtc, payload)
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "profile <index>",
	Short: "Select the active configuration profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var idx uint8
		if _, err := fmt.Sscanf(args[0], "%d", &idx); err != nil {
			return fmt.Errorf("bad profile index %q: %w", args[0], err)
		}
		return setRequest(cmd, protocol.CmdSelectSetting, schema.EncodeSelectSetting(idx))
	},
}

// setRequest issues one write and waits for the device ack.
func setRequest(cmd *cobra.Command, code protocol.Code, payload []byte) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := sess.Connect(ctx); err != nil {
		return err
	}
	defer sess.Disconnect()

	if _, err := sess.Request(ctx, code, payload); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s acknowledged\n", code.Name())
	return nil
}

func init() {
	setCmd.AddCommand(setNameCmd, setRtcCmd, setProfileCmd)
	rootCmd.AddCommand(setCmd)
}
