package frame

import "encoding/binary"

type scanState int

const (
	scanPreamble scanState = iota
	scanMarker
	scanDirection
	scanV1Len
	scanV1Code
	scanV1Payload
	scanV1Checksum
	scanV2Header
	scanV2Payload
	scanV2Crc
)

// Scanner re-frames an arbitrary byte stream into complete frame buffers.
// Transports rarely guarantee frame-aligned delivery: a chunk may hold a
// partial frame, several frames, or garbage between frames. The scanner
// buffers bytes, delimits frames by the declared length, and resynchronizes
// on the next preamble byte after anything unexpected.
//
// Zero value is ready to use. Not safe for concurrent use.
type Scanner struct {
	state scanState
	buf   []byte
	need  int
}

const v2HeaderLen = 8 // preamble, marker, direction, flag, code(2), length(2)

// Feed consumes one chunk and returns the complete frame buffers it
// finished, in arrival order. Returned buffers are freshly allocated and
// safe to retain.
func (s *Scanner) Feed(chunk []byte) [][]byte {
	var frames [][]byte
	for _, b := range chunk {
		if f := s.scan(b); f != nil {
			frames = append(frames, f)
		}
	}
	return frames
}

// Reset drops any partial frame state.
func (s *Scanner) Reset() {
	s.state = scanPreamble
	s.buf = nil
	s.need = 0
}

func (s *Scanner) scan(b byte) []byte {
	switch s.state {
	case scanPreamble:
		if b == Preamble {
			s.buf = append(s.buf[:0:0], b)
			s.state = scanMarker
		}
	case scanMarker:
		switch b {
		case MarkerV1:
			s.push(b, scanDirection)
		case MarkerV2:
			s.push(b, scanDirection)
		default:
			s.resync(b)
		}
	case scanDirection:
		switch b {
		case DirRequest, DirResponse, DirUnsupported:
			if s.buf[1] == MarkerV2 {
				s.push(b, scanV2Header)
			} else {
				s.push(b, scanV1Len)
			}
		default:
			s.resync(b)
		}
	case scanV1Len:
		s.need = int(b)
		s.push(b, scanV1Code)
	case scanV1Code:
		if s.need == 0 {
			s.push(b, scanV1Checksum)
		} else {
			s.push(b, scanV1Payload)
		}
	case scanV1Payload:
		s.buf = append(s.buf, b)
		if s.need--; s.need == 0 {
			s.state = scanV1Checksum
		}
	case scanV1Checksum:
		return s.emit(b)
	case scanV2Header:
		s.buf = append(s.buf, b)
		if len(s.buf) == v2HeaderLen {
			s.need = int(binary.LittleEndian.Uint16(s.buf[6:8]))
			if s.need == 0 {
				s.state = scanV2Crc
			} else {
				s.state = scanV2Payload
			}
		}
	case scanV2Payload:
		s.buf = append(s.buf, b)
		if s.need--; s.need == 0 {
			s.state = scanV2Crc
		}
	case scanV2Crc:
		return s.emit(b)
	}
	return nil
}

func (s *Scanner) push(b byte, next scanState) {
	s.buf = append(s.buf, b)
	s.state = next
}

func (s *Scanner) emit(checksum byte) []byte {
	f := append(s.buf, checksum)
	s.buf = nil
	s.state = scanPreamble
	return f
}

// resync drops the partial frame and re-examines b as a possible preamble.
func (s *Scanner) resync(b byte) {
	s.buf = nil
	s.state = scanPreamble
	s.scan(b)
}
