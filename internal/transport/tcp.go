package transport

import (
	"errors"
	"net"
	"sync"
	"time"
)

var ErrAddressRequired = errors.New("transport: tcp address required")

// TCP is a flight-controller link over a TCP bridge, e.g. a SITL build or
// a serial-to-TCP adapter.
type TCP struct {
	Address        string
	ConnectTimeout time.Duration

	mu   sync.Mutex
	conn net.Conn
}

func NewTCP(address string, connectTimeout time.Duration) (*TCP, error) {
	if address == "" {
		return nil, ErrAddressRequired
	}
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	return &TCP{Address: address, ConnectTimeout: connectTimeout}, nil
}

func (t *TCP) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}
	dialer := net.Dialer{Timeout: t.ConnectTimeout}
	conn, err := dialer.Dial("tcp", t.Address)
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *TCP) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *TCP) Read(p []byte) (int, error) {
	conn := t.get()
	if conn == nil {
		return 0, ErrNotOpen
	}
	return conn.Read(p)
}

func (t *TCP) Write(p []byte) (int, error) {
	conn := t.get()
	if conn == nil {
		return 0, ErrNotOpen
	}
	return conn.Write(p)
}

func (t *TCP) get() net.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
