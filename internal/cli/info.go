package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/schema"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Connect, negotiate the api version, and dump device identity",
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

		api, err := sess.Handshake(ctx)
		if err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api version:  %s\n", api)

		printIdentity(ctx, cmd, sess)
		return nil
	},
}

// printIdentity requests the identity records one at a time; a device that
// rejects one of them still yields the rest.
func printIdentity(ctx context.Context, cmd *cobra.Command, sess sessioner) {
	out := cmd.OutOrStdout()
	for _, code := range []protocol.Code{
		protocol.CmdFcVariant,
		protocol.CmdFcVersion,
		protocol.CmdBoardInfo,
		protocol.CmdBuildInfo,
		protocol.CmdName,
		protocol.CmdUid,
	} {
		msg, err := sess.Request(ctx, code, nil)
		if err != nil {
			fmt.Fprintf(out, "%-13s %v\n", code.Name()+":", err)
			continue
		}
		switch m := msg.(type) {
		case schema.FcVariant:
			fmt.Fprintf(out, "fc variant:   %s\n", m.Ident)
		case schema.FcVersion:
			fmt.Fprintf(out, "fc version:   %s\n", m.Version)
		case schema.BoardInfo:
			fmt.Fprintf(out, "board:        %s (%s)\n", m.BoardName, m.BoardIdentifier)
			if m.ManufacturerID != "" {
				fmt.Fprintf(out, "manufacturer: %s\n", m.ManufacturerID)
			}
			if m.SampleRateHz != nil {
				fmt.Fprintf(out, "sample rate:  %d Hz\n", *m.SampleRateHz)
			}
		case schema.BuildInfo:
			fmt.Fprintf(out, "build:        %s %s (%s)\n", m.Date, m.Time, m.GitRevision)
		case schema.PilotName:
			fmt.Fprintf(out, "name:         %s\n", m.Name)
		case schema.Uid:
			fmt.Fprintf(out, "uid:          %08x%08x%08x\n", m.ID[0], m.ID[1], m.ID[2])
		}
	}
}

// sessioner narrows the session surface the identity dump needs; tests
// substitute a canned implementation.
type sessioner interface {
	Request(ctx context.Context, code protocol.Code, payload []byte) (schema.Message, error)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
