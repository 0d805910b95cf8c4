package protocol

import "fmt"

// Code identifies the semantic message type of one MSP frame.
//
// Codes up to 254 fit the v1 single-byte encoding; larger codes require
// the v2 extended framing. Decoding determines the version from the
// marker byte on the wire, never from the numeric value.
type Code uint16

// MaxV1Code is the largest code encodable in a v1 frame.
const MaxV1Code Code = 254

// NeedsV2 reports whether the code only fits the extended framing.
func (c Code) NeedsV2() bool {
	return c > MaxV1Code
}

// Name returns the canonical MSP name for the code, or "MSP_UNKNOWN(n)".
func (c Code) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("MSP_UNKNOWN(%d)", uint16(c))
}

func (c Code) String() string {
	return c.Name()
}

// MSP v1 command codes.
const (
	CmdApiVersion           Code = 1
	CmdFcVariant            Code = 2
	CmdFcVersion            Code = 3
	CmdBoardInfo            Code = 4
	CmdBuildInfo            Code = 5
	CmdName                 Code = 10
	CmdSetName              Code = 11
	CmdBatteryConfig        Code = 32
	CmdSetBatteryConfig     Code = 33
	CmdModeRanges           Code = 34
	CmdSetModeRange         Code = 35
	CmdFeatureConfig        Code = 36
	CmdSetFeatureConfig     Code = 37
	CmdBoardAlignment       Code = 38
	CmdSetBoardAlignment    Code = 39
	CmdCurrentMeterConfig   Code = 40
	CmdSetCurrentMeterCfg   Code = 41
	CmdMixerConfig          Code = 42
	CmdSetMixerConfig       Code = 43
	CmdRxConfig             Code = 44
	CmdSetRxConfig          Code = 45
	CmdLedColors            Code = 46
	CmdSetLedColors         Code = 47
	CmdLedStripConfig       Code = 48
	CmdSetLedStripConfig    Code = 49
	CmdRssiConfig           Code = 50
	CmdSetRssiConfig        Code = 51
	CmdAdjustmentRanges     Code = 52
	CmdSetAdjustmentRange   Code = 53
	CmdCfSerialConfig       Code = 54
	CmdSetCfSerialConfig    Code = 55
	CmdVoltageMeterConfig   Code = 56
	CmdSetVoltageMeterCfg   Code = 57
	CmdSonarAltitude        Code = 58
	CmdPidController        Code = 59
	CmdSetPidController     Code = 60
	CmdArmingConfig         Code = 61
	CmdSetArmingConfig      Code = 62
	CmdRxMap                Code = 64
	CmdSetRxMap             Code = 65
	CmdRebootFc             Code = 68
	CmdDataflashSummary     Code = 70
	CmdDataflashRead        Code = 71
	CmdDataflashErase       Code = 72
	CmdFailsafeConfig       Code = 75
	CmdSetFailsafeConfig    Code = 76
	CmdRxFailConfig         Code = 77
	CmdSetRxFailConfig      Code = 78
	CmdSdcardSummary        Code = 79
	CmdBlackboxConfig       Code = 80
	CmdSetBlackboxConfig    Code = 81
	CmdTransponderConfig    Code = 82
	CmdSetTransponderCfg    Code = 83
	CmdOsdConfig            Code = 84
	CmdSetOsdConfig         Code = 85
	CmdOsdCharRead          Code = 86
	CmdOsdCharWrite         Code = 87
	CmdVtxConfig            Code = 88
	CmdSetVtxConfig         Code = 89
	CmdAdvancedConfig       Code = 90
	CmdSetAdvancedConfig    Code = 91
	CmdFilterConfig         Code = 92
	CmdSetFilterConfig      Code = 93
	CmdPidAdvanced          Code = 94
	CmdSetPidAdvanced       Code = 95
	CmdSensorConfig         Code = 96
	CmdSetSensorConfig      Code = 97
	CmdIdent                Code = 100
	CmdStatus               Code = 101
	CmdRawImu               Code = 102
	CmdServo                Code = 103
	CmdMotor                Code = 104
	CmdRc                   Code = 105
	CmdRawGps               Code = 106
	CmdCompGps              Code = 107
	CmdAttitude             Code = 108
	CmdAltitude             Code = 109
	CmdAnalog               Code = 110
	CmdRcTuning             Code = 111
	CmdPid                  Code = 112
	CmdBox                  Code = 113
	CmdMisc                 Code = 114
	CmdMotorPins            Code = 115
	CmdBoxNames             Code = 116
	CmdPidNames             Code = 117
	CmdWp                   Code = 118
	CmdBoxIds               Code = 119
	CmdServoConfigurations  Code = 120
	CmdNavStatus            Code = 121
	CmdNavConfig            Code = 122
	CmdMotor3dConfig        Code = 124
	CmdRcDeadband           Code = 125
	CmdSensorAlignment      Code = 126
	CmdLedStripModecolor    Code = 127
	CmdVoltageMeters        Code = 128
	CmdCurrentMeters        Code = 129
	CmdBatteryState         Code = 130
	CmdMotorConfig          Code = 131
	CmdGpsConfig            Code = 132
	CmdCompassConfig        Code = 133
	CmdEscSensorData        Code = 134
	CmdGpsRescue            Code = 135
	CmdSetGpsRescue         Code = 136
	CmdStatusEx             Code = 150
	CmdUid                  Code = 160
	CmdGpsSvInfo            Code = 164
	CmdDisplayport          Code = 182
	CmdCopyProfile          Code = 183
	CmdBeeperConfig         Code = 184
	CmdSetBeeperConfig      Code = 185
	CmdSetRawRc             Code = 200
	CmdSetRawGps            Code = 201
	CmdSetPid               Code = 202
	CmdSetBox               Code = 203
	CmdSetRcTuning          Code = 204
	CmdAccCalibration       Code = 205
	CmdMagCalibration       Code = 206
	CmdSetMisc              Code = 207
	CmdResetConf            Code = 208
	CmdSetWp                Code = 209
	CmdSelectSetting        Code = 210
	CmdSetHeading           Code = 211
	CmdSetServoConfig       Code = 212
	CmdSetMotor             Code = 214
	CmdSetMotor3dConfig     Code = 217
	CmdSetRcDeadband        Code = 218
	CmdSetResetCurrPid      Code = 219
	CmdSetSensorAlignment   Code = 220
	CmdSetLedStripModecolor Code = 221
	CmdSetRtc               Code = 246
	CmdRtc                  Code = 247
	CmdEepromWrite          Code = 250
	CmdDebug                Code = 254
)

// MSP v2 extended command codes.
const (
	Cmd2CommonTz              Code = 0x1001
	Cmd2CommonSetTz           Code = 0x1002
	Cmd2CommonSetting         Code = 0x1003
	Cmd2CommonSetSetting      Code = 0x1004
	Cmd2CommonMotorMixer      Code = 0x1005
	Cmd2CommonSerialConfig    Code = 0x1009
	Cmd2CommonSetSerialConfig Code = 0x100A
	Cmd2BetaflightBind        Code = 0x3000
	Cmd2MotorOutputReordering Code = 0x3001
	Cmd2SetMotorOutputReorder Code = 0x3002
	Cmd2SendDshotCommand      Code = 0x3003
	Cmd2GetVtxDeviceStatus    Code = 0x3004
	Cmd2GetOsdWarnings        Code = 0x3005
	Cmd2GetText               Code = 0x3006
	Cmd2SetText               Code = 0x3007
	Cmd2GetLedStripConfigVal  Code = 0x3008
	Cmd2SetLedStripConfigVal  Code = 0x3009
	Cmd2SensorConfigActive    Code = 0x300A
	Cmd2SensorOpticalflow     Code = 0x300B
)

var codeNames = map[Code]string{
	CmdApiVersion:           "MSP_API_VERSION",
	CmdFcVariant:            "MSP_FC_VARIANT",
	CmdFcVersion:            "MSP_FC_VERSION",
	CmdBoardInfo:            "MSP_BOARD_INFO",
	CmdBuildInfo:            "MSP_BUILD_INFO",
	CmdName:                 "MSP_NAME",
	CmdSetName:              "MSP_SET_NAME",
	CmdBatteryConfig:        "MSP_BATTERY_CONFIG",
	CmdSetBatteryConfig:     "MSP_SET_BATTERY_CONFIG",
	CmdModeRanges:           "MSP_MODE_RANGES",
	CmdSetModeRange:         "MSP_SET_MODE_RANGE",
	CmdFeatureConfig:        "MSP_FEATURE_CONFIG",
	CmdSetFeatureConfig:     "MSP_SET_FEATURE_CONFIG",
	CmdBoardAlignment:       "MSP_BOARD_ALIGNMENT_CONFIG",
	CmdSetBoardAlignment:    "MSP_SET_BOARD_ALIGNMENT_CONFIG",
	CmdCurrentMeterConfig:   "MSP_CURRENT_METER_CONFIG",
	CmdSetCurrentMeterCfg:   "MSP_SET_CURRENT_METER_CONFIG",
	CmdMixerConfig:          "MSP_MIXER_CONFIG",
	CmdSetMixerConfig:       "MSP_SET_MIXER_CONFIG",
	CmdRxConfig:             "MSP_RX_CONFIG",
	CmdSetRxConfig:          "MSP_SET_RX_CONFIG",
	CmdLedColors:            "MSP_LED_COLORS",
	CmdSetLedColors:         "MSP_SET_LED_COLORS",
	CmdLedStripConfig:       "MSP_LED_STRIP_CONFIG",
	CmdSetLedStripConfig:    "MSP_SET_LED_STRIP_CONFIG",
	CmdRssiConfig:           "MSP_RSSI_CONFIG",
	CmdSetRssiConfig:        "MSP_SET_RSSI_CONFIG",
	CmdAdjustmentRanges:     "MSP_ADJUSTMENT_RANGES",
	CmdSetAdjustmentRange:   "MSP_SET_ADJUSTMENT_RANGE",
	CmdCfSerialConfig:       "MSP_CF_SERIAL_CONFIG",
	CmdSetCfSerialConfig:    "MSP_SET_CF_SERIAL_CONFIG",
	CmdVoltageMeterConfig:   "MSP_VOLTAGE_METER_CONFIG",
	CmdSetVoltageMeterCfg:   "MSP_SET_VOLTAGE_METER_CONFIG",
	CmdSonarAltitude:        "MSP_SONAR_ALTITUDE",
	CmdPidController:        "MSP_PID_CONTROLLER",
	CmdSetPidController:     "MSP_SET_PID_CONTROLLER",
	CmdArmingConfig:         "MSP_ARMING_CONFIG",
	CmdSetArmingConfig:      "MSP_SET_ARMING_CONFIG",
	CmdRxMap:                "MSP_RX_MAP",
	CmdSetRxMap:             "MSP_SET_RX_MAP",
	CmdRebootFc:             "MSP_REBOOT",
	CmdDataflashSummary:     "MSP_DATAFLASH_SUMMARY",
	CmdDataflashRead:        "MSP_DATAFLASH_READ",
	CmdDataflashErase:       "MSP_DATAFLASH_ERASE",
	CmdFailsafeConfig:       "MSP_FAILSAFE_CONFIG",
	CmdSetFailsafeConfig:    "MSP_SET_FAILSAFE_CONFIG",
	CmdRxFailConfig:         "MSP_RXFAIL_CONFIG",
	CmdSetRxFailConfig:      "MSP_SET_RXFAIL_CONFIG",
	CmdSdcardSummary:        "MSP_SDCARD_SUMMARY",
	CmdBlackboxConfig:       "MSP_BLACKBOX_CONFIG",
	CmdSetBlackboxConfig:    "MSP_SET_BLACKBOX_CONFIG",
	CmdTransponderConfig:    "MSP_TRANSPONDER_CONFIG",
	CmdSetTransponderCfg:    "MSP_SET_TRANSPONDER_CONFIG",
	CmdOsdConfig:            "MSP_OSD_CONFIG",
	CmdSetOsdConfig:         "MSP_SET_OSD_CONFIG",
	CmdOsdCharRead:          "MSP_OSD_CHAR_READ",
	CmdOsdCharWrite:         "MSP_OSD_CHAR_WRITE",
	CmdVtxConfig:            "MSP_VTX_CONFIG",
	CmdSetVtxConfig:         "MSP_SET_VTX_CONFIG",
	CmdAdvancedConfig:       "MSP_ADVANCED_CONFIG",
	CmdSetAdvancedConfig:    "MSP_SET_ADVANCED_CONFIG",
	CmdFilterConfig:         "MSP_FILTER_CONFIG",
	CmdSetFilterConfig:      "MSP_SET_FILTER_CONFIG",
	CmdPidAdvanced:          "MSP_PID_ADVANCED",
	CmdSetPidAdvanced:       "MSP_SET_PID_ADVANCED",
	CmdSensorConfig:         "MSP_SENSOR_CONFIG",
	CmdSetSensorConfig:      "MSP_SET_SENSOR_CONFIG",
	CmdIdent:                "MSP_IDENT",
	CmdStatus:               "MSP_STATUS",
	CmdRawImu:               "MSP_RAW_IMU",
	CmdServo:                "MSP_SERVO",
	CmdMotor:                "MSP_MOTOR",
	CmdRc:                   "MSP_RC",
	CmdRawGps:               "MSP_RAW_GPS",
	CmdCompGps:              "MSP_COMP_GPS",
	CmdAttitude:             "MSP_ATTITUDE",
	CmdAltitude:             "MSP_ALTITUDE",
	CmdAnalog:               "MSP_ANALOG",
	CmdRcTuning:             "MSP_RC_TUNING",
	CmdPid:                  "MSP_PID",
	CmdBox:                  "MSP_BOX",
	CmdMisc:                 "MSP_MISC",
	CmdMotorPins:            "MSP_MOTOR_PINS",
	CmdBoxNames:             "MSP_BOXNAMES",
	CmdPidNames:             "MSP_PIDNAMES",
	CmdWp:                   "MSP_WP",
	CmdBoxIds:               "MSP_BOXIDS",
	CmdServoConfigurations:  "MSP_SERVO_CONFIGURATIONS",
	CmdNavStatus:            "MSP_NAV_STATUS",
	CmdNavConfig:            "MSP_NAV_CONFIG",
	CmdMotor3dConfig:        "MSP_MOTOR_3D_CONFIG",
	CmdRcDeadband:           "MSP_RC_DEADBAND",
	CmdSensorAlignment:      "MSP_SENSOR_ALIGNMENT",
	CmdLedStripModecolor:    "MSP_LED_STRIP_MODECOLOR",
	CmdVoltageMeters:        "MSP_VOLTAGE_METERS",
	CmdCurrentMeters:        "MSP_CURRENT_METERS",
	CmdBatteryState:         "MSP_BATTERY_STATE",
	CmdMotorConfig:          "MSP_MOTOR_CONFIG",
	CmdGpsConfig:            "MSP_GPS_CONFIG",
	CmdCompassConfig:        "MSP_COMPASS_CONFIG",
	CmdEscSensorData:        "MSP_ESC_SENSOR_DATA",
	CmdGpsRescue:            "MSP_GPS_RESCUE",
	CmdSetGpsRescue:         "MSP_SET_GPS_RESCUE",
	CmdStatusEx:             "MSP_STATUS_EX",
	CmdUid:                  "MSP_UID",
	CmdGpsSvInfo:            "MSP_GPSSVINFO",
	CmdDisplayport:          "MSP_DISPLAYPORT",
	CmdCopyProfile:          "MSP_COPY_PROFILE",
	CmdBeeperConfig:         "MSP_BEEPER_CONFIG",
	CmdSetBeeperConfig:      "MSP_SET_BEEPER_CONFIG",
	CmdSetRawRc:             "MSP_SET_RAW_RC",
	CmdSetRawGps:            "MSP_SET_RAW_GPS",
	CmdSetPid:               "MSP_SET_PID",
	CmdSetBox:               "MSP_SET_BOX",
	CmdSetRcTuning:          "MSP_SET_RC_TUNING",
	CmdAccCalibration:       "MSP_ACC_CALIBRATION",
	CmdMagCalibration:       "MSP_MAG_CALIBRATION",
	CmdSetMisc:              "MSP_SET_MISC",
	CmdResetConf:            "MSP_RESET_CONF",
	CmdSetWp:                "MSP_SET_WP",
	CmdSelectSetting:        "MSP_SELECT_SETTING",
	CmdSetHeading:           "MSP_SET_HEADING",
	CmdSetServoConfig:       "MSP_SET_SERVO_CONFIGURATION",
	CmdSetMotor:             "MSP_SET_MOTOR",
	CmdSetMotor3dConfig:     "MSP_SET_MOTOR_3D_CONFIG",
	CmdSetRcDeadband:        "MSP_SET_RC_DEADBAND",
	CmdSetResetCurrPid:      "MSP_SET_RESET_CURR_PID",
	CmdSetSensorAlignment:   "MSP_SET_SENSOR_ALIGNMENT",
	CmdSetLedStripModecolor: "MSP_SET_LED_STRIP_MODECOLOR",
	CmdSetRtc:               "MSP_SET_RTC",
	CmdRtc:                  "MSP_RTC",
	CmdEepromWrite:          "MSP_EEPROM_WRITE",
	CmdDebug:                "MSP_DEBUG",

	Cmd2CommonTz:              "MSP2_COMMON_TZ",
	Cmd2CommonSetTz:           "MSP2_COMMON_SET_TZ",
	Cmd2CommonSetting:         "MSP2_COMMON_SETTING",
	Cmd2CommonSetSetting:      "MSP2_COMMON_SET_SETTING",
	Cmd2CommonMotorMixer:      "MSP2_COMMON_MOTOR_MIXER",
	Cmd2CommonSerialConfig:    "MSP2_COMMON_SERIAL_CONFIG",
	Cmd2CommonSetSerialConfig: "MSP2_COMMON_SET_SERIAL_CONFIG",
	Cmd2BetaflightBind:        "MSP2_BETAFLIGHT_BIND",
	Cmd2MotorOutputReordering: "MSP2_MOTOR_OUTPUT_REORDERING",
	Cmd2SetMotorOutputReorder: "MSP2_SET_MOTOR_OUTPUT_REORDERING",
	Cmd2SendDshotCommand:      "MSP2_SEND_DSHOT_COMMAND",
	Cmd2GetVtxDeviceStatus:    "MSP2_GET_VTX_DEVICE_STATUS",
	Cmd2GetOsdWarnings:        "MSP2_GET_OSD_WARNINGS",
	Cmd2GetText:               "MSP2_GET_TEXT",
	Cmd2SetText:               "MSP2_SET_TEXT",
	Cmd2GetLedStripConfigVal:  "MSP2_GET_LED_STRIP_CONFIG_VALUES",
	Cmd2SetLedStripConfigVal:  "MSP2_SET_LED_STRIP_CONFIG_VALUES",
	Cmd2SensorConfigActive:    "MSP2_SENSOR_CONFIG_ACTIVE",
	Cmd2SensorOpticalflow:     "MSP2_SENSOR_OPTIC_FLOW",
}
