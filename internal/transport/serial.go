package transport

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tarm/serial"
)

var (
	ErrPortRequired = errors.New("transport: serial port name required")
	ErrNotOpen      = errors.New("transport: not open")
)

// DefaultBaud is the usual MSP serial rate.
const DefaultBaud = 115200

// Serial is a flight-controller link over a local serial port.
type Serial struct {
	Name string
	Baud int

	mu   sync.Mutex
	port *serial.Port
}

func NewSerial(name string, baud int) (*Serial, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPortRequired
	}
	if baud <= 0 {
		baud = DefaultBaud
	}
	return &Serial{Name: name, Baud: baud}, nil
}

func (s *Serial) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != nil {
		return nil
	}
	port, err := serial.OpenPort(&serial.Config{Name: s.Name, Baud: s.Baud})
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", s.Name, err)
	}
	s.port = port
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) Read(p []byte) (int, error) {
	port := s.get()
	if port == nil {
		return 0, ErrNotOpen
	}
	return port.Read(p)
}

func (s *Serial) Write(p []byte) (int, error) {
	port := s.get()
	if port == nil {
		return 0, ErrNotOpen
	}
	return port.Write(p)
}

func (s *Serial) get() *serial.Port {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}
