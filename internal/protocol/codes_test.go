package protocol

import (
	"testing"

	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func TestCodeNeedsV2(t *testing.T) {
	testlog.Start(t)
	if CmdApiVersion.NeedsV2() {
		t.Fatalf("low code must fit v1")
	}
	if MaxV1Code.NeedsV2() {
		t.Fatalf("254 must fit v1")
	}
	if !Code(255).NeedsV2() {
		t.Fatalf("255 requires v2")
	}
	if !Cmd2CommonTz.NeedsV2() {
		t.Fatalf("msp2 code requires v2")
	}
}

func TestCodeNames(t *testing.T) {
	testlog.Start(t)
	if got := CmdApiVersion.Name(); got != "MSP_API_VERSION" {
		t.Fatalf("name: %q", got)
	}
	if got := Cmd2GetText.Name(); got != "MSP2_GET_TEXT" {
		t.Fatalf("msp2 name: %q", got)
	}
	if got := Code(9999).Name(); got != "MSP_UNKNOWN(9999)" {
		t.Fatalf("unknown name: %q", got)
	}
}
