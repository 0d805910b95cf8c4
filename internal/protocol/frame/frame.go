package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/mspctl/internal/protocol"
)

// Wire marker bytes.
const (
	Preamble       byte = '$'
	MarkerV1       byte = 'M'
	MarkerV2       byte = 'X'
	DirRequest     byte = '<'
	DirResponse    byte = '>'
	DirUnsupported byte = '!'
)

// Version selects the wire format of one frame.
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

func (v Version) String() string {
	if v == V2 {
		return "v2"
	}
	return "v1"
}

// MaxV1Payload is the largest payload a v1 length byte can describe.
const MaxV1Payload = 255

// Frame is one complete decoded wire unit.
//
// Length is the declared length from the wire. For v1 the payload extent
// is taken from the buffer itself, so Length and len(Payload) can disagree
// when a peer understates the length byte.
type Frame struct {
	Version  Version
	Code     protocol.Code
	Payload  []byte
	Length   int
	Checksum byte
}

// Encode renders the frame for code and payload, selecting v2 whenever the
// code or payload size does not fit the short format.
func Encode(code protocol.Code, payload []byte) ([]byte, error) {
	if code.NeedsV2() || len(payload) > MaxV1Payload {
		return EncodeV2(code, payload)
	}
	return EncodeV1(code, payload)
}

// EncodeV1 renders a short frame: $ M < len code payload xor.
func EncodeV1(code protocol.Code, payload []byte) ([]byte, error) {
	if code.NeedsV2() {
		return nil, fmt.Errorf("%w: code %d does not fit v1", protocol.ErrMalformedFrame, code)
	}
	if len(payload) > MaxV1Payload {
		return nil, fmt.Errorf("%w: v1 payload %d exceeds %d bytes", protocol.ErrMalformedFrame, len(payload), MaxV1Payload)
	}
	buf := make([]byte, 0, len(payload)+6)
	buf = append(buf, Preamble, MarkerV1, DirRequest, byte(len(payload)), byte(code))
	buf = append(buf, payload...)
	buf = append(buf, ChecksumV1(buf[3:]))
	return buf, nil
}

// EncodeV2 renders an extended frame:
// $ X < flag codeLo codeHi lenLo lenHi payload crc.
func EncodeV2(code protocol.Code, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, fmt.Errorf("%w: v2 payload %d exceeds 65535 bytes", protocol.ErrMalformedFrame, len(payload))
	}
	buf := make([]byte, 0, len(payload)+9)
	buf = append(buf, Preamble, MarkerV2, DirRequest, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(code))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, CrcV2(buf[3:]))
	return buf, nil
}

// Decode parses one complete frame buffer. The marker byte selects the
// version; the unsupported direction marker yields UnsupportedError carrying
// the rejected code, distinct from structural failures. The checksum is
// verified before the payload is exposed.
func Decode(buf []byte) (Frame, error) {
	if len(buf) < 3 || buf[0] != Preamble {
		return Frame{}, fmt.Errorf("%w: missing preamble", protocol.ErrMalformedFrame)
	}
	switch buf[1] {
	case MarkerV1:
		return decodeV1(buf)
	case MarkerV2:
		return decodeV2(buf)
	default:
		return Frame{}, fmt.Errorf("%w: unknown version marker 0x%02X", protocol.ErrMalformedFrame, buf[1])
	}
}

func decodeV1(buf []byte) (Frame, error) {
	if len(buf) < 6 {
		return Frame{}, fmt.Errorf("%w: short v1 frame (%d bytes)", protocol.ErrMalformedFrame, len(buf))
	}
	code := protocol.Code(buf[4])
	if err := checkDirection(buf[2], code); err != nil {
		return Frame{}, err
	}
	// Payload extent follows the buffer, not the declared length byte:
	// some firmware understates the length while checksumming the full
	// payload, and the checksum below still has to hold.
	payload := buf[5 : len(buf)-1]
	checksum := buf[len(buf)-1]
	if sum := ChecksumV1(buf[3 : len(buf)-1]); sum != checksum {
		return Frame{}, fmt.Errorf("%w: v1 %s got 0x%02X want 0x%02X", protocol.ErrBadChecksum, code, checksum, sum)
	}
	return Frame{
		Version:  V1,
		Code:     code,
		Payload:  payload,
		Length:   int(buf[3]),
		Checksum: checksum,
	}, nil
}

func decodeV2(buf []byte) (Frame, error) {
	if len(buf) < 9 {
		return Frame{}, fmt.Errorf("%w: short v2 frame (%d bytes)", protocol.ErrMalformedFrame, len(buf))
	}
	code := protocol.Code(binary.LittleEndian.Uint16(buf[4:6]))
	if err := checkDirection(buf[2], code); err != nil {
		return Frame{}, err
	}
	length := int(binary.LittleEndian.Uint16(buf[6:8]))
	if len(buf) < 8+length+1 {
		return Frame{}, fmt.Errorf("%w: v2 %s truncated (declared %d, have %d payload bytes)",
			protocol.ErrMalformedFrame, code, length, len(buf)-9)
	}
	payload := buf[8 : 8+length]
	checksum := buf[8+length]
	if crc := CrcV2(buf[3 : 8+length]); crc != checksum {
		return Frame{}, fmt.Errorf("%w: v2 %s got 0x%02X want 0x%02X", protocol.ErrBadChecksum, code, checksum, crc)
	}
	return Frame{
		Version:  V2,
		Code:     code,
		Payload:  payload,
		Length:   length,
		Checksum: checksum,
	}, nil
}

func checkDirection(dir byte, code protocol.Code) error {
	switch dir {
	case DirRequest, DirResponse:
		return nil
	case DirUnsupported:
		return &protocol.UnsupportedError{Code: code}
	default:
		return fmt.Errorf("%w: unknown direction marker 0x%02X", protocol.ErrMalformedFrame, dir)
	}
}
