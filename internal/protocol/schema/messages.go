package schema

import "github.com/danmuck/mspctl/internal/protocol"

// Message is the decoded form of one frame payload. The concrete type is
// fixed per code; optional fields vary with the negotiated api version and
// are nil when the firmware did not send them.
type Message interface {
	Code() protocol.Code
}

// ApiVersion is the MSP_API_VERSION reply. Version carries major.minor
// from the wire with patch zero.
type ApiVersion struct {
	MspProtocolVersion uint8
	Version            *protocol.ApiVersion
}

func (ApiVersion) Code() protocol.Code { return protocol.CmdApiVersion }

// FcVariant is the four-character firmware identifier (e.g. "BTFL").
type FcVariant struct {
	Ident string
}

func (FcVariant) Code() protocol.Code { return protocol.CmdFcVariant }

// FcVersion is the firmware semantic version.
type FcVersion struct {
	Version string
}

func (FcVersion) Code() protocol.Code { return protocol.CmdFcVersion }

// BoardInfo describes the flight controller board. Fields past the
// signature block were introduced incrementally; pointers are nil when the
// api version gate did not admit them.
type BoardInfo struct {
	BoardIdentifier    string
	HardwareRevision   uint16
	FcType             uint8
	TargetCapabilities uint8
	TargetName         string
	BoardName          string
	ManufacturerID     string
	Signature          []byte
	McuTypeID          uint8

	// api >= 1.42
	ConfigurationState *uint8
	// api >= 1.43
	SampleRateHz          *uint16
	ConfigurationProblems *uint32
}

func (BoardInfo) Code() protocol.Code { return protocol.CmdBoardInfo }

// BuildInfo is the firmware build stamp.
type BuildInfo struct {
	Date        string
	Time        string
	GitRevision string
}

func (BuildInfo) Code() protocol.Code { return protocol.CmdBuildInfo }

// PilotName is the craft/pilot name stored on the device.
type PilotName struct {
	Name string
}

func (PilotName) Code() protocol.Code { return protocol.CmdName }

// Ident is the legacy MultiWii identification record.
type Ident struct {
	Version    float64
	MultiType  uint8
	MspVersion uint8
	Capability uint32
}

func (Ident) Code() protocol.Code { return protocol.CmdIdent }

// Status is the basic cycle/sensor/mode snapshot.
type Status struct {
	CycleTime     uint16
	I2cErrorCount uint16
	ActiveSensors uint16
	Mode          uint32
	Profile       uint8
}

func (Status) Code() protocol.Code { return protocol.CmdStatus }

// StatusEx extends Status with load and profile bookkeeping.
type StatusEx struct {
	CycleTime     uint16
	I2cErrorCount uint16
	ActiveSensors uint16
	Mode          uint32
	Profile       uint8
	CpuLoad       uint16
	ProfileCount  uint8
	RateProfile   uint8
}

func (StatusEx) Code() protocol.Code { return protocol.CmdStatusEx }

// RawImu carries the raw sensor triplets.
type RawImu struct {
	Acc  [3]int16
	Gyro [3]int16
	Mag  [3]int16
}

func (RawImu) Code() protocol.Code { return protocol.CmdRawImu }

// Servo is the servo output array.
type Servo struct {
	Positions []uint16
}

func (Servo) Code() protocol.Code { return protocol.CmdServo }

// Motor is the motor output array.
type Motor struct {
	Values []uint16
}

func (Motor) Code() protocol.Code { return protocol.CmdMotor }

// Rc is the received channel array.
type Rc struct {
	Channels []uint16
}

func (Rc) Code() protocol.Code { return protocol.CmdRc }

// RawGps is the GPS fix snapshot. Latitude/Longitude are degrees,
// GroundCourse is degrees.
type RawGps struct {
	Fix          uint8
	NumSat       uint8
	Latitude     float64
	Longitude    float64
	Altitude     uint16
	Speed        uint16
	GroundCourse float64
}

func (RawGps) Code() protocol.Code { return protocol.CmdRawGps }

// CompGps is the computed home vector.
type CompGps struct {
	DistanceToHome  uint16
	DirectionToHome uint16
	Update          uint8
}

func (CompGps) Code() protocol.Code { return protocol.CmdCompGps }

// Attitude is the craft orientation in degrees.
type Attitude struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

func (Attitude) Code() protocol.Code { return protocol.CmdAttitude }

// Altitude is the estimated altitude in meters and climb rate in m/s.
type Altitude struct {
	Altitude float64
	Vario    float64
}

func (Altitude) Code() protocol.Code { return protocol.CmdAltitude }

// SonarAltitude is the rangefinder altitude in meters.
type SonarAltitude struct {
	Altitude float64
}

func (SonarAltitude) Code() protocol.Code { return protocol.CmdSonarAltitude }

// Analog is the battery/rssi telemetry record. BatteryVoltage is the
// legacy 0.1V-resolution reading; Voltage is the 0.01V reading introduced
// in api 1.41.
type Analog struct {
	BatteryVoltage float64
	MAhDrawn       uint16
	Rssi           uint16
	Amperage       float64

	// api >= 1.41
	Voltage *float64
}

func (Analog) Code() protocol.Code { return protocol.CmdAnalog }

// RcTuning is the rate/expo tuning record, values scaled to unit fractions.
type RcTuning struct {
	RcRate       float64
	RcExpo       float64
	RollRate     float64
	PitchRate    float64
	YawRate      float64
	DynThrPid    float64
	ThrottleMid  float64
	ThrottleExpo float64
}

func (RcTuning) Code() protocol.Code { return protocol.CmdRcTuning }

// PidCoefficients is one P/I/D triple.
type PidCoefficients struct {
	P uint8
	I uint8
	D uint8
}

// Pid is the per-axis controller coefficient array.
type Pid struct {
	Controllers []PidCoefficients
}

func (Pid) Code() protocol.Code { return protocol.CmdPid }

// BoxNames is the flight mode name list.
type BoxNames struct {
	Names []string
}

func (BoxNames) Code() protocol.Code { return protocol.CmdBoxNames }

// PidNames is the controller name list.
type PidNames struct {
	Names []string
}

func (PidNames) Code() protocol.Code { return protocol.CmdPidNames }

// BatteryState is the battery summary record.
type BatteryState struct {
	CellCount      uint8
	Capacity       uint16
	BatteryVoltage float64
	MAhDrawn       uint16
	Amperage       float64

	// api >= 1.41
	AlertState *uint8
	Voltage    *float64
}

func (BatteryState) Code() protocol.Code { return protocol.CmdBatteryState }

// VoltageMeter is one meter reading in volts.
type VoltageMeter struct {
	ID      uint8
	Voltage float64
}

// VoltageMeters is the voltage meter array.
type VoltageMeters struct {
	Meters []VoltageMeter
}

func (VoltageMeters) Code() protocol.Code { return protocol.CmdVoltageMeters }

// CurrentMeter is one meter reading in amps.
type CurrentMeter struct {
	ID       uint8
	MAhDrawn uint16
	Amperage float64
}

// CurrentMeters is the current meter array.
type CurrentMeters struct {
	Meters []CurrentMeter
}

func (CurrentMeters) Code() protocol.Code { return protocol.CmdCurrentMeters }

// VoltageMeterConfigEntry is one configured voltage sensor.
type VoltageMeterConfigEntry struct {
	ID               uint8
	SensorType       uint8
	VbatScale        uint8
	ResDivVal        uint8
	ResDivMultiplier uint8
}

// VoltageMeterConfig is the count-prefixed sensor configuration list.
// Items whose declared sub-record length is unexpected are skipped, not
// parsed; firmware revisions disagree on the record size.
type VoltageMeterConfig struct {
	Configs []VoltageMeterConfigEntry
}

func (VoltageMeterConfig) Code() protocol.Code { return protocol.CmdVoltageMeterConfig }

// MotorConfig is the throttle/command range record.
type MotorConfig struct {
	MinThrottle uint16
	MaxThrottle uint16
	MinCommand  uint16

	// api >= 1.42
	MotorCount *uint8
	MotorPoles *uint8
}

func (MotorConfig) Code() protocol.Code { return protocol.CmdMotorConfig }

// Uid is the MCU unique id.
type Uid struct {
	ID [3]uint32
}

func (Uid) Code() protocol.Code { return protocol.CmdUid }

// MotorOutputReordering is the MSP2 motor output order table.
type MotorOutputReordering struct {
	Order []uint8
}

func (MotorOutputReordering) Code() protocol.Code { return protocol.Cmd2MotorOutputReordering }

// Text is one MSP2 text record (craft name, pid profile name, ...).
type Text struct {
	TextType uint8
	Value    string
}

func (Text) Code() protocol.Code { return protocol.Cmd2GetText }

// Ack is the reply to a client-originated set/action command; the device
// echoes the code with no payload.
type Ack struct {
	Cmd protocol.Code
}

func (a Ack) Code() protocol.Code { return a.Cmd }
