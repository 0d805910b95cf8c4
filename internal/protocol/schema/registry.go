package schema

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/mspctl/internal/protocol"
)

// decodeFunc turns one payload byte range into a typed message. Decoders
// are pure functions of (payload, api version); they consume exactly the
// bytes of the fields the api version admits.
type decodeFunc func(r *Reader, api *protocol.ApiVersion) Message

// Version thresholds for gated fields.
var (
	api141 = protocol.MustParseApiVersion("1.41.0")
	api142 = protocol.MustParseApiVersion("1.42.0")
	api143 = protocol.MustParseApiVersion("1.43.0")
)

// Decode looks up the schema for code and decodes the payload with the
// session's current api version (nil while unknown; gated fields are then
// never read). A missing schema is recoverable: the frame is valid, just
// unmodeled, and UnknownCodeError says so.
func Decode(code protocol.Code, payload []byte, api *protocol.ApiVersion) (Message, error) {
	dec, ok := decoders[code]
	if !ok {
		return nil, &protocol.UnknownCodeError{Code: code}
	}
	r := NewReader(payload)
	msg := dec(r, api)
	if err := r.Err(); err != nil {
		log.Error().Str("code", code.Name()).Int("payload_len", len(payload)).Msg("schema decode overrun")
		return nil, fmt.Errorf("%s: %w", code, err)
	}
	return msg, nil
}

// Registered reports whether a schema exists for code.
func Registered(code protocol.Code) bool {
	_, ok := decoders[code]
	return ok
}

var decoders = map[protocol.Code]decodeFunc{
	protocol.CmdApiVersion: func(r *Reader, _ *protocol.ApiVersion) Message {
		return ApiVersion{
			MspProtocolVersion: r.U8(),
			Version:            protocol.NewApiVersion(r.U8(), r.U8()),
		}
	},
	protocol.CmdFcVariant: func(r *Reader, _ *protocol.ApiVersion) Message {
		return FcVariant{Ident: r.FixedText(4)}
	},
	protocol.CmdFcVersion: func(r *Reader, _ *protocol.ApiVersion) Message {
		return FcVersion{Version: fmt.Sprintf("%d.%d.%d", r.U8(), r.U8(), r.U8())}
	},
	protocol.CmdBoardInfo: decodeBoardInfo,
	protocol.CmdBuildInfo: func(r *Reader, _ *protocol.ApiVersion) Message {
		return BuildInfo{
			Date:        r.FixedText(11),
			Time:        r.FixedText(8),
			GitRevision: r.FixedText(7),
		}
	},
	protocol.CmdName: func(r *Reader, _ *protocol.ApiVersion) Message {
		return PilotName{Name: r.FixedText(r.Remaining())}
	},
	protocol.CmdIdent: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Ident{
			Version:    float64(r.U8()) / 100,
			MultiType:  r.U8(),
			MspVersion: r.U8(),
			Capability: r.U32(),
		}
	},
	protocol.CmdStatus: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Status{
			CycleTime:     r.U16(),
			I2cErrorCount: r.U16(),
			ActiveSensors: r.U16(),
			Mode:          r.U32(),
			Profile:       r.U8(),
		}
	},
	protocol.CmdStatusEx: func(r *Reader, _ *protocol.ApiVersion) Message {
		return StatusEx{
			CycleTime:     r.U16(),
			I2cErrorCount: r.U16(),
			ActiveSensors: r.U16(),
			Mode:          r.U32(),
			Profile:       r.U8(),
			CpuLoad:       r.U16(),
			ProfileCount:  r.U8(),
			RateProfile:   r.U8(),
		}
	},
	protocol.CmdRawImu: func(r *Reader, _ *protocol.ApiVersion) Message {
		var m RawImu
		for i := range m.Acc {
			m.Acc[i] = r.I16()
		}
		for i := range m.Gyro {
			m.Gyro[i] = r.I16()
		}
		for i := range m.Mag {
			m.Mag[i] = r.I16()
		}
		return m
	},
	protocol.CmdServo: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Servo{Positions: readU16Array(r)}
	},
	protocol.CmdMotor: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Motor{Values: readU16Array(r)}
	},
	protocol.CmdRc: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Rc{Channels: readU16Array(r)}
	},
	protocol.CmdRawGps: func(r *Reader, _ *protocol.ApiVersion) Message {
		return RawGps{
			Fix:          r.U8(),
			NumSat:       r.U8(),
			Latitude:     float64(r.I32()) / 1e7,
			Longitude:    float64(r.I32()) / 1e7,
			Altitude:     r.U16(),
			Speed:        r.U16(),
			GroundCourse: float64(r.U16()) / 10,
		}
	},
	protocol.CmdCompGps: func(r *Reader, _ *protocol.ApiVersion) Message {
		return CompGps{
			DistanceToHome:  r.U16(),
			DirectionToHome: r.U16(),
			Update:          r.U8(),
		}
	},
	protocol.CmdAttitude: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Attitude{
			Roll:  float64(r.I16()) / 10,
			Pitch: float64(r.I16()) / 10,
			Yaw:   float64(r.I16()) / 10,
		}
	},
	protocol.CmdAltitude: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Altitude{
			Altitude: float64(r.I32()) / 100,
			Vario:    float64(r.I16()) / 100,
		}
	},
	protocol.CmdSonarAltitude: func(r *Reader, _ *protocol.ApiVersion) Message {
		return SonarAltitude{Altitude: float64(r.I32()) / 100}
	},
	protocol.CmdAnalog:   decodeAnalog,
	protocol.CmdRcTuning: decodeRcTuning,
	protocol.CmdPid: func(r *Reader, _ *protocol.ApiVersion) Message {
		m := Pid{Controllers: make([]PidCoefficients, 0, r.Remaining()/3)}
		for r.Remaining() >= 3 {
			m.Controllers = append(m.Controllers, PidCoefficients{P: r.U8(), I: r.U8(), D: r.U8()})
		}
		return m
	},
	protocol.CmdBoxNames: func(r *Reader, _ *protocol.ApiVersion) Message {
		return BoxNames{Names: splitNames(r.FixedText(r.Remaining()))}
	},
	protocol.CmdPidNames: func(r *Reader, _ *protocol.ApiVersion) Message {
		return PidNames{Names: splitNames(r.FixedText(r.Remaining()))}
	},
	protocol.CmdBatteryState: decodeBatteryState,
	protocol.CmdVoltageMeters: func(r *Reader, _ *protocol.ApiVersion) Message {
		m := VoltageMeters{Meters: make([]VoltageMeter, 0, r.Remaining()/2)}
		for r.Remaining() >= 2 {
			m.Meters = append(m.Meters, VoltageMeter{
				ID:      r.U8(),
				Voltage: float64(r.U8()) / 10,
			})
		}
		return m
	},
	protocol.CmdCurrentMeters: func(r *Reader, _ *protocol.ApiVersion) Message {
		m := CurrentMeters{Meters: make([]CurrentMeter, 0, r.Remaining()/5)}
		for r.Remaining() >= 5 {
			m.Meters = append(m.Meters, CurrentMeter{
				ID:       r.U8(),
				MAhDrawn: r.U16(),
				Amperage: float64(r.U16()) / 1000,
			})
		}
		return m
	},
	protocol.CmdVoltageMeterConfig: decodeVoltageMeterConfig,
	protocol.CmdMotorConfig:        decodeMotorConfig,
	protocol.CmdUid: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Uid{ID: [3]uint32{r.U32(), r.U32(), r.U32()}}
	},
	protocol.Cmd2MotorOutputReordering: func(r *Reader, _ *protocol.ApiVersion) Message {
		n := int(r.U8())
		m := MotorOutputReordering{Order: make([]uint8, 0, n)}
		for i := 0; i < n; i++ {
			m.Order = append(m.Order, r.U8())
		}
		return m
	},
	protocol.Cmd2GetText: func(r *Reader, _ *protocol.ApiVersion) Message {
		return Text{TextType: r.U8(), Value: r.Text()}
	},

	// Set/action replies carry no payload; the code alone is the ack.
	protocol.CmdSetName:                ackDecoder(protocol.CmdSetName),
	protocol.CmdSetRawRc:               ackDecoder(protocol.CmdSetRawRc),
	protocol.CmdSetPid:                 ackDecoder(protocol.CmdSetPid),
	protocol.CmdSetRcTuning:            ackDecoder(protocol.CmdSetRcTuning),
	protocol.CmdAccCalibration:         ackDecoder(protocol.CmdAccCalibration),
	protocol.CmdMagCalibration:         ackDecoder(protocol.CmdMagCalibration),
	protocol.CmdResetConf:              ackDecoder(protocol.CmdResetConf),
	protocol.CmdSelectSetting:          ackDecoder(protocol.CmdSelectSetting),
	protocol.CmdSetHeading:             ackDecoder(protocol.CmdSetHeading),
	protocol.CmdSetMotor:               ackDecoder(protocol.CmdSetMotor),
	protocol.CmdSetRtc:                 ackDecoder(protocol.CmdSetRtc),
	protocol.CmdEepromWrite:            ackDecoder(protocol.CmdEepromWrite),
	protocol.Cmd2SetText:               ackDecoder(protocol.Cmd2SetText),
	protocol.Cmd2SetMotorOutputReorder: ackDecoder(protocol.Cmd2SetMotorOutputReorder),
}

func ackDecoder(code protocol.Code) decodeFunc {
	return func(_ *Reader, _ *protocol.ApiVersion) Message {
		return Ack{Cmd: code}
	}
}

func decodeBoardInfo(r *Reader, api *protocol.ApiVersion) Message {
	m := BoardInfo{
		BoardIdentifier:    r.FixedText(4),
		HardwareRevision:   r.U16(),
		FcType:             r.U8(),
		TargetCapabilities: r.U8(),
		TargetName:         r.Text(),
		BoardName:          r.Text(),
		ManufacturerID:     r.Text(),
		Signature:          r.Bytes(32),
		McuTypeID:          r.U8(),
	}
	if protocol.AtLeast(api, api142) {
		v := r.U8()
		m.ConfigurationState = &v
	}
	if protocol.AtLeast(api, api143) {
		hz := r.U16()
		problems := r.U32()
		m.SampleRateHz = &hz
		m.ConfigurationProblems = &problems
	}
	return m
}

func decodeAnalog(r *Reader, api *protocol.ApiVersion) Message {
	m := Analog{
		BatteryVoltage: float64(r.U8()) / 10,
		MAhDrawn:       r.U16(),
		Rssi:           r.U16(),
		Amperage:       float64(r.I16()) / 100,
	}
	if protocol.AtLeast(api, api141) {
		v := float64(r.U16()) / 100
		m.Voltage = &v
	}
	return m
}

func decodeRcTuning(r *Reader, _ *protocol.ApiVersion) Message {
	return RcTuning{
		RcRate:       float64(r.U8()) / 100,
		RcExpo:       float64(r.U8()) / 100,
		RollRate:     float64(r.U8()) / 100,
		PitchRate:    float64(r.U8()) / 100,
		YawRate:      float64(r.U8()) / 100,
		DynThrPid:    float64(r.U8()) / 100,
		ThrottleMid:  float64(r.U8()) / 100,
		ThrottleExpo: float64(r.U8()) / 100,
	}
}

func decodeBatteryState(r *Reader, api *protocol.ApiVersion) Message {
	m := BatteryState{
		CellCount:      r.U8(),
		Capacity:       r.U16(),
		BatteryVoltage: float64(r.U8()) / 10,
		MAhDrawn:       r.U16(),
		Amperage:       float64(r.I16()) / 100,
	}
	if protocol.AtLeast(api, api141) {
		state := r.U8()
		v := float64(r.U16()) / 100
		m.AlertState = &state
		m.Voltage = &v
	}
	return m
}

const voltageMeterConfigRecordLen = 5

// decodeVoltageMeterConfig reads a count byte, then per item a declared
// sub-record length. Items of unexpected length are skipped rather than
// parsed; firmware revisions disagree on the record size.
func decodeVoltageMeterConfig(r *Reader, _ *protocol.ApiVersion) Message {
	n := int(r.U8())
	m := VoltageMeterConfig{Configs: make([]VoltageMeterConfigEntry, 0, n)}
	for i := 0; i < n; i++ {
		recLen := int(r.U8())
		if recLen != voltageMeterConfigRecordLen {
			r.Skip(recLen)
			continue
		}
		m.Configs = append(m.Configs, VoltageMeterConfigEntry{
			ID:               r.U8(),
			SensorType:       r.U8(),
			VbatScale:        r.U8(),
			ResDivVal:        r.U8(),
			ResDivMultiplier: r.U8(),
		})
	}
	return m
}

func decodeMotorConfig(r *Reader, api *protocol.ApiVersion) Message {
	m := MotorConfig{
		MinThrottle: r.U16(),
		MaxThrottle: r.U16(),
		MinCommand:  r.U16(),
	}
	if protocol.AtLeast(api, api142) {
		count := r.U8()
		poles := r.U8()
		m.MotorCount = &count
		m.MotorPoles = &poles
	}
	return m
}

func readU16Array(r *Reader) []uint16 {
	out := make([]uint16, 0, r.Remaining()/2)
	for r.Remaining() >= 2 {
		out = append(out, r.U16())
	}
	return out
}

func splitNames(s string) []string {
	var names []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			if i > start {
				names = append(names, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		names = append(names, s[start:])
	}
	return names
}
