package schema

import "encoding/binary"

// MaxNameLen bounds the craft name the device will store.
const MaxNameLen = 64

// EncodeSetName builds the MSP_SET_NAME payload: raw ASCII bytes truncated
// to the device limit, no padding, no terminator.
func EncodeSetName(name string) []byte {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return []byte(name)
}

// EncodeSelectSetting builds the MSP_SELECT_SETTING payload.
func EncodeSelectSetting(profile uint8) []byte {
	return []byte{profile}
}

// EncodeSetHeading builds the MSP_SET_HEADING payload (degrees).
func EncodeSetHeading(heading int16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, uint16(heading))
	return out
}

// EncodeSetMotor builds the MSP_SET_MOTOR payload from raw output values.
func EncodeSetMotor(values []uint16) []byte {
	out := make([]byte, 0, len(values)*2)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}

// EncodeSetRawRc builds the MSP_SET_RAW_RC payload from channel values.
func EncodeSetRawRc(channels []uint16) []byte {
	return EncodeSetMotor(channels)
}

// EncodeSetRtc builds the MSP_SET_RTC payload: unix seconds plus
// milliseconds.
func EncodeSetRtc(secs uint32, millis uint16) []byte {
	out := make([]byte, 0, 6)
	out = binary.LittleEndian.AppendUint32(out, secs)
	out = binary.LittleEndian.AppendUint16(out, millis)
	return out
}
