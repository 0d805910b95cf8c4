package monitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/mspctl/internal/observability"
	"github.com/danmuck/mspctl/internal/protocol/schema"
	"github.com/danmuck/mspctl/internal/protocol/session"
)

// Telemetry is the latest decoded snapshot served over HTTP.
type Telemetry struct {
	Attitude     *schema.Attitude     `json:"attitude,omitempty"`
	Analog       *schema.Analog       `json:"analog,omitempty"`
	Altitude     *schema.Altitude     `json:"altitude,omitempty"`
	RawGps       *schema.RawGps       `json:"raw_gps,omitempty"`
	BatteryState *schema.BatteryState `json:"battery_state,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Server caches unsolicited telemetry from one session and serves it with
// the process metrics over HTTP.
type Server struct {
	addr     string
	sess     *session.Session
	appeared time.Time

	mu        sync.RWMutex
	telemetry Telemetry

	httpSrv *http.Server
}

func NewServer(addr string, sess *session.Session) *Server {
	return &Server{
		addr:     addr,
		sess:     sess,
		appeared: time.Now(),
	}
}

// Run consumes session notifications and serves HTTP until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(log.Logger))
	router.Use(observability.RequestMetricsMiddleware())
	s.registerRoutes(router)

	s.httpSrv = &http.Server{Addr: s.addr, Handler: router}

	go s.consume(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", s.addr).Msg("monitor listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.sess.Messages():
			s.apply(msg)
		case err := <-s.sess.Errors():
			log.Warn().Err(err).Msg("session error")
		}
	}
}

func (s *Server) apply(msg schema.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch m := msg.(type) {
	case schema.Attitude:
		s.telemetry.Attitude = &m
	case schema.Analog:
		s.telemetry.Analog = &m
	case schema.Altitude:
		s.telemetry.Altitude = &m
	case schema.RawGps:
		s.telemetry.RawGps = &m
	case schema.BatteryState:
		s.telemetry.BatteryState = &m
	default:
		return
	}
	s.telemetry.UpdatedAt = time.Now()
}

// Snapshot returns the latest telemetry.
func (s *Server) Snapshot() Telemetry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.telemetry
}
