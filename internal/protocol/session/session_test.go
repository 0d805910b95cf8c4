package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/frame"
	"github.com/danmuck/mspctl/internal/protocol/schema"
	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

// fakeTransport is an in-memory device link. The test plays the device:
// it reads request frames from sent and pushes response chunks into
// inbound.
type fakeTransport struct {
	inbound chan []byte
	sent    chan []byte

	mu     sync.Mutex
	closed chan struct{}
	isOpen bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		inbound: make(chan []byte, 16),
		sent:    make(chan []byte, 16),
	}
}

func (f *fakeTransport) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = make(chan struct{})
	f.isOpen = true
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.isOpen {
		f.isOpen = false
		close(f.closed)
	}
	return nil
}

func (f *fakeTransport) Read(p []byte) (int, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	select {
	case chunk := <-f.inbound:
		return copy(p, chunk), nil
	case <-closed:
		return 0, io.EOF
	}
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)
	f.sent <- buf
	return len(p), nil
}

// respond answers the next request frame with the given raw chunk.
func (f *fakeTransport) respond(t *testing.T, chunk []byte) {
	t.Helper()
	select {
	case <-f.sent:
		f.inbound <- chunk
	case <-time.After(time.Second):
		t.Fatalf("device saw no request frame")
	}
}

func connect(t *testing.T, tr *fakeTransport, cfg Config) *Session {
	t.Helper()
	s := New(tr, cfg)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Disconnect() })
	return s
}

func mustEncode(t *testing.T, code protocol.Code, payload []byte) []byte {
	t.Helper()
	buf, err := frame.Encode(code, payload)
	if err != nil {
		t.Fatalf("encode %v: %v", code, err)
	}
	return buf
}

func TestHandshakeLearnsApiVersion(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{Framing: FramingChunked})

	// Version reply with an understated length byte, exactly as some
	// firmware emits it.
	go tr.respond(t, []byte{36, 77, 60, 2, 1, 2, 1, 45, 45})

	api, err := s.Handshake(context.Background())
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if api == nil || api.String() != "1.45.0" {
		t.Fatalf("api version: %v", api)
	}
	if got := s.ApiVersion(); got == nil || got.String() != "1.45.0" {
		t.Fatalf("session did not retain the api version: %v", got)
	}
}

func TestRequestResolvesTypedMessage(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	// -15.5, 2.0, 180 over the stream framer
	reply := mustEncode(t, protocol.CmdAttitude, []byte{0x65, 0xFF, 0x14, 0x00, 0x08, 0x07})
	go tr.respond(t, reply)

	msg, err := s.Request(context.Background(), protocol.CmdAttitude, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	m, ok := msg.(schema.Attitude)
	if !ok {
		t.Fatalf("got %T", msg)
	}
	if m.Roll != -15.5 || m.Pitch != 2.0 || m.Yaw != 180 {
		t.Fatalf("attitude: %+v", m)
	}
}

func TestRequestSplitReplyReframed(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	reply := mustEncode(t, protocol.CmdStatus, []byte{0x10, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	go func() {
		<-tr.sent
		// deliver the reply one fragment at a time
		tr.inbound <- reply[:4]
		tr.inbound <- reply[4:9]
		tr.inbound <- reply[9:]
	}()

	msg, err := s.Request(context.Background(), protocol.CmdStatus, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if m := msg.(schema.Status); m.CycleTime != 16 {
		t.Fatalf("status: %+v", m)
	}
}

func TestRequestTimeout(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{RequestTimeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := s.Request(context.Background(), protocol.CmdStatus, nil)
	var timeout *protocol.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if timeout.Code != protocol.CmdStatus {
		t.Fatalf("timeout code: %v", timeout.Code)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}

	// the entry is gone; the same code is immediately usable again
	reply := mustEncode(t, protocol.CmdStatus, []byte{0x10, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	<-tr.sent // drain the timed-out request frame
	go tr.respond(t, reply)
	if _, err := s.Request(context.Background(), protocol.CmdStatus, nil); err != nil {
		t.Fatalf("request after timeout: %v", err)
	}
}

func TestRequestNotConnected(t *testing.T) {
	testlog.Start(t)
	s := New(newFakeTransport(), Config{})
	if _, err := s.Request(context.Background(), protocol.CmdStatus, nil); !errors.Is(err, protocol.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if err := s.Send(protocol.CmdStatus, nil); !errors.Is(err, protocol.ErrNotConnected) {
		t.Fatalf("send: expected ErrNotConnected, got %v", err)
	}
}

func TestRequestDuplicateCodeRefused(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Request(context.Background(), protocol.CmdStatus, nil)
		firstDone <- err
	}()
	req := <-tr.sent // first request is on the wire and pending

	_, err := s.Request(context.Background(), protocol.CmdStatus, nil)
	var dup *protocol.PendingError
	if !errors.As(err, &dup) {
		t.Fatalf("expected PendingError, got %v", err)
	}

	_ = req
	reply := mustEncode(t, protocol.CmdStatus, []byte{0x10, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	tr.inbound <- reply
	if err := <-firstDone; err != nil {
		t.Fatalf("first request: %v", err)
	}
}

func TestUnsupportedReplyRejectsRequest(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	// '!' direction marker on the status code
	go tr.respond(t, []byte{36, 77, 33, 0, byte(protocol.CmdStatus), 0})

	_, err := s.Request(context.Background(), protocol.CmdStatus, nil)
	var unsup *protocol.UnsupportedError
	if !errors.As(err, &unsup) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
	if unsup.Code != protocol.CmdStatus {
		t.Fatalf("rejected code: %v", unsup.Code)
	}
}

func TestUnsolicitedMessagePublished(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	tr.inbound <- mustEncode(t, protocol.CmdAttitude, []byte{0x00, 0x00, 0x14, 0x00, 0x00, 0x00})

	select {
	case msg := <-s.Messages():
		if m := msg.(schema.Attitude); m.Pitch != 2.0 {
			t.Fatalf("attitude: %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatalf("no unsolicited message delivered")
	}
}

func TestRequestedReplyAlsoPublished(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	reply := mustEncode(t, protocol.CmdAttitude, []byte{0x65, 0xFF, 0x14, 0x00, 0x08, 0x07})
	go tr.respond(t, reply)
	if _, err := s.Request(context.Background(), protocol.CmdAttitude, nil); err != nil {
		t.Fatalf("request: %v", err)
	}
	select {
	case msg := <-s.Messages():
		if _, ok := msg.(schema.Attitude); !ok {
			t.Fatalf("got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("matched reply was not republished")
	}
}

func TestBadChecksumSurfacesOnErrorChannel(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})

	bad := mustEncode(t, protocol.CmdAttitude, []byte{1, 0, 2, 0, 3, 0})
	bad[len(bad)-1] ^= 0xFF
	tr.inbound <- bad

	select {
	case err := <-s.Errors():
		if !errors.Is(err, protocol.ErrBadChecksum) {
			t.Fatalf("expected ErrBadChecksum, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("no error notification")
	}
}

func TestDisconnectFailsOutstandingRequests(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := New(tr, Config{RequestTimeout: 5 * time.Second})
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}

	reqErr := make(chan error, 1)
	go func() {
		_, err := s.Request(context.Background(), protocol.CmdStatus, nil)
		reqErr <- err
	}()
	<-tr.sent // request is on the wire

	if err := s.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	select {
	case err := <-reqErr:
		if !errors.Is(err, protocol.ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("outstanding request was not failed")
	}

	if err := s.Disconnect(); !errors.Is(err, protocol.ErrNotConnected) {
		t.Fatalf("second disconnect: expected ErrNotConnected, got %v", err)
	}
}

func TestConnectTwice(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{})
	if err := s.Connect(context.Background()); !errors.Is(err, ErrAlreadyConnected) {
		t.Fatalf("expected ErrAlreadyConnected, got %v", err)
	}
}

func TestRequestContextCanceled(t *testing.T) {
	testlog.Start(t)
	tr := newFakeTransport()
	s := connect(t, tr, Config{RequestTimeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-tr.sent
		cancel()
	}()
	if _, err := s.Request(ctx, protocol.CmdStatus, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
