package cli

import (
	"strings"
	"testing"

	"github.com/danmuck/mspctl/internal/protocol/schema"
	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func TestFormatMessage(t *testing.T) {
	testlog.Start(t)
	got := formatMessage(schema.Attitude{Roll: -15.5, Pitch: 2, Yaw: 180})
	if !strings.Contains(got, "roll=-15.5") || !strings.Contains(got, "yaw=180") {
		t.Fatalf("attitude line: %q", got)
	}

	v := 16.84
	got = formatMessage(schema.Analog{BatteryVoltage: 16.8, Voltage: &v})
	if !strings.Contains(got, "vbat=16.8V") || !strings.Contains(got, "v=16.84V") {
		t.Fatalf("analog line: %q", got)
	}

	got = formatMessage(schema.Analog{BatteryVoltage: 16.8})
	if strings.Contains(got, " v=") {
		t.Fatalf("ungated voltage must not render: %q", got)
	}

	// unmodeled types still identify themselves
	got = formatMessage(schema.PilotName{Name: "QUAD"})
	if !strings.Contains(got, "MSP_NAME") {
		t.Fatalf("fallback line: %q", got)
	}
}
