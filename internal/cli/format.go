package cli

import (
	"fmt"

	"github.com/danmuck/mspctl/internal/protocol/schema"
)

// formatMessage renders one decoded message as a single log-style line.
func formatMessage(msg schema.Message) string {
	switch m := msg.(type) {
	case schema.Attitude:
		return fmt.Sprintf("attitude  roll=%.1f pitch=%.1f yaw=%.0f", m.Roll, m.Pitch, m.Yaw)
	case schema.Analog:
		line := fmt.Sprintf("analog    vbat=%.1fV rssi=%d amps=%.2fA mah=%d",
			m.BatteryVoltage, m.Rssi, m.Amperage, m.MAhDrawn)
		if m.Voltage != nil {
			line += fmt.Sprintf(" v=%.2fV", *m.Voltage)
		}
		return line
	case schema.Altitude:
		return fmt.Sprintf("altitude  est=%.2fm vario=%.2fm/s", m.Altitude, m.Vario)
	case schema.RawGps:
		return fmt.Sprintf("gps       fix=%d sats=%d lat=%.7f lon=%.7f alt=%dm",
			m.Fix, m.NumSat, m.Latitude, m.Longitude, m.Altitude)
	case schema.Status:
		return fmt.Sprintf("status    cycle=%dus i2cerr=%d sensors=%#04x mode=%#08x",
			m.CycleTime, m.I2cErrorCount, m.ActiveSensors, m.Mode)
	case schema.BatteryState:
		return fmt.Sprintf("battery   cells=%d vbat=%.1fV mah=%d", m.CellCount, m.BatteryVoltage, m.MAhDrawn)
	default:
		return fmt.Sprintf("%s %+v", msg.Code().Name(), msg)
	}
}
