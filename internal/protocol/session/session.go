package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/mspctl/internal/observability"
	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/frame"
	"github.com/danmuck/mspctl/internal/protocol/schema"
)

var ErrAlreadyConnected = errors.New("session: already connected")

// Transport is the byte-stream boundary the session consumes: open/close
// plus raw reads and writes. Implementations live in internal/transport.
type Transport interface {
	Open() error
	Close() error
	io.ReadWriter
}

// State is the session lifecycle state.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Session composes the framer, the schema registry, and the pending-request
// table against one transport. Requests may be issued concurrently; inbound
// frames are processed one at a time in arrival order.
type Session struct {
	cfg     Config
	tr      Transport
	pending *pendingTable
	api     atomic.Pointer[protocol.ApiVersion]

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
	done      chan struct{}

	writeMu sync.Mutex

	msgCh   chan schema.Message
	errCh   chan error
	stateCh chan State
}

func New(tr Transport, cfg Config) *Session {
	cfg = cfg.WithDefaults()
	return &Session{
		cfg:     cfg,
		tr:      tr,
		pending: newPendingTable(),
		msgCh:   make(chan schema.Message, cfg.MessageBuffer),
		errCh:   make(chan error, cfg.ErrorBuffer),
		stateCh: make(chan State, 4),
	}
}

// Messages delivers every successfully decoded inbound frame, requested or
// not; the device pushes telemetry the client never asked for.
func (s *Session) Messages() <-chan schema.Message {
	return s.msgCh
}

// Errors delivers session-level error notifications.
func (s *Session) Errors() <-chan error {
	return s.errCh
}

// States delivers lifecycle notifications.
func (s *Session) States() <-chan State {
	return s.stateCh
}

// ApiVersion returns the negotiated api version, nil while unknown.
func (s *Session) ApiVersion() *protocol.ApiVersion {
	return s.api.Load()
}

// Connect opens the transport and starts the inbound frame loop.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected {
		return ErrAlreadyConnected
	}
	if err := s.tr.Open(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})
	s.connected = true
	go s.readLoop(runCtx, s.done)
	s.notifyState(Connected)
	log.Info().Msg("session connected")
	return nil
}

// Disconnect closes the transport and rejects every outstanding request.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return protocol.ErrNotConnected
	}
	s.connected = false
	s.cancel()
	done := s.done
	err := s.tr.Close()
	s.mu.Unlock()

	<-done
	s.pending.failAll(protocol.ErrNotConnected)
	s.notifyState(Disconnected)
	log.Info().Msg("session disconnected")
	return err
}

func (s *Session) isConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	if s.isConnected() {
		return Connected
	}
	return Disconnected
}

// Request transmits the frame for code and suspends until the matching
// inbound frame, the request timeout, or ctx cancellation, whichever comes
// first. It fails fast with NotConnected before any I/O when disconnected,
// and with PendingError when a request for code is already outstanding.
func (s *Session) Request(ctx context.Context, code protocol.Code, payload []byte) (schema.Message, error) {
	if !s.isConnected() {
		return nil, protocol.ErrNotConnected
	}
	ch, err := s.pending.add(code)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.write(code, payload); err != nil {
		s.pending.abandon(code, ch)
		return nil, err
	}

	timer := time.NewTimer(s.cfg.RequestTimeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		s.recordOutcome(code, res.err, start)
		return res.msg, res.err
	case <-timer.C:
		if s.pending.abandon(code, ch) {
			observability.RecordRequest(code.Name(), "timeout", time.Since(start))
			return nil, &protocol.TimeoutError{Code: code}
		}
		// A resolver won the race; its result is already buffered.
		res := <-ch
		s.recordOutcome(code, res.err, start)
		return res.msg, res.err
	case <-ctx.Done():
		if s.pending.abandon(code, ch) {
			observability.RecordRequest(code.Name(), "canceled", time.Since(start))
			return nil, ctx.Err()
		}
		res := <-ch
		s.recordOutcome(code, res.err, start)
		return res.msg, res.err
	}
}

func (s *Session) recordOutcome(code protocol.Code, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	observability.RecordRequest(code.Name(), outcome, time.Since(start))
}

// Send transmits a frame without registering for a reply.
func (s *Session) Send(code protocol.Code, payload []byte) error {
	if !s.isConnected() {
		return protocol.ErrNotConnected
	}
	return s.write(code, payload)
}

// Handshake issues the version query and returns the learned api version.
func (s *Session) Handshake(ctx context.Context) (*protocol.ApiVersion, error) {
	msg, err := s.Request(ctx, protocol.CmdApiVersion, nil)
	if err != nil {
		return nil, err
	}
	reply, ok := msg.(schema.ApiVersion)
	if !ok {
		return nil, fmt.Errorf("session: unexpected %T reply to version query", msg)
	}
	return reply.Version, nil
}

func (s *Session) write(code protocol.Code, payload []byte) error {
	buf, err := frame.Encode(code, payload)
	if err != nil {
		return err
	}
	version := frame.V1
	if buf[1] == frame.MarkerV2 {
		version = frame.V2
	}
	s.writeMu.Lock()
	_, err = s.tr.Write(buf)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}
	observability.RecordFrameSent(version.String())
	log.Debug().Str("code", code.Name()).Int("payload_len", len(payload)).Msg("frame sent")
	return nil
}

// readLoop processes the inbound byte stream one frame at a time, strictly
// in arrival order.
func (s *Session) readLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	var scanner frame.Scanner
	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		n, err := s.tr.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.notifyErr(fmt.Errorf("session: transport read: %w", err))
			s.teardown()
			return
		}
		if n == 0 {
			continue
		}
		chunk := buf[:n]
		switch s.cfg.Framing {
		case FramingChunked:
			raw := make([]byte, n)
			copy(raw, chunk)
			s.handleRaw(raw)
		default:
			for _, raw := range scanner.Feed(chunk) {
				s.handleRaw(raw)
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// teardown flips to Disconnected after a transport failure.
func (s *Session) teardown() {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}
	s.connected = false
	s.cancel()
	_ = s.tr.Close()
	s.mu.Unlock()
	s.pending.failAll(protocol.ErrNotConnected)
	s.notifyState(Disconnected)
}

// handleRaw decodes one complete frame buffer and routes the result:
// matched requests resolve, unsupported/unknown reject, and every decoded
// message is also published as an unsolicited notification.
func (s *Session) handleRaw(raw []byte) {
	fr, err := frame.Decode(raw)
	if err != nil {
		var unsup *protocol.UnsupportedError
		switch {
		case errors.As(err, &unsup):
			observability.RecordFrameError("unsupported")
			if !s.pending.reject(unsup.Code, err) {
				s.notifyErr(err)
			}
		case errors.Is(err, protocol.ErrBadChecksum):
			observability.RecordFrameError("checksum")
			s.notifyErr(err)
		default:
			observability.RecordFrameError("malformed")
			s.notifyErr(err)
		}
		return
	}
	observability.RecordFrameReceived(fr.Version.String())

	msg, err := schema.Decode(fr.Code, fr.Payload, s.api.Load())
	if err != nil {
		// Recoverable: reject a matching pending request and surface the
		// condition on the error channel either way.
		s.pending.reject(fr.Code, err)
		s.notifyErr(err)
		return
	}

	if reply, ok := msg.(schema.ApiVersion); ok && reply.Version != nil {
		s.api.Store(reply.Version)
		log.Debug().Str("api_version", reply.Version.String()).Msg("api version learned")
	}

	if !s.pending.resolve(fr.Code, msg) {
		observability.RecordUnsolicited(fr.Code.Name())
	}
	s.publish(msg)
}

func (s *Session) publish(msg schema.Message) {
	select {
	case s.msgCh <- msg:
	default:
		observability.RecordDroppedMessage()
		log.Warn().Str("code", msg.Code().Name()).Msg("message notification dropped")
	}
}

func (s *Session) notifyErr(err error) {
	select {
	case s.errCh <- err:
	default:
		observability.RecordDroppedMessage()
		log.Warn().Err(err).Msg("error notification dropped")
	}
}

func (s *Session) notifyState(st State) {
	select {
	case s.stateCh <- st:
	default:
	}
}
