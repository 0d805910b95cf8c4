package session

import "time"

// Framing selects how inbound chunks become frames.
type Framing int

const (
	// FramingStream re-frames the byte stream through an incremental
	// scanner. Partial frames, several frames per chunk, and garbage
	// between frames are all handled. This is the default.
	FramingStream Framing = iota
	// FramingChunked treats one inbound chunk as exactly one frame. Only
	// valid when the transport guarantees frame-aligned delivery.
	FramingChunked
)

// Config defines session reliability defaults.
type Config struct {
	// RequestTimeout bounds each correlated request.
	RequestTimeout time.Duration
	// ReadBufferSize is the transport read chunk size.
	ReadBufferSize int
	// MessageBuffer sizes the unsolicited message channel; messages are
	// dropped (and counted) when the consumer falls behind.
	MessageBuffer int
	// ErrorBuffer sizes the error notification channel.
	ErrorBuffer int
	Framing     Framing
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 2 * time.Second,
		ReadBufferSize: 4096,
		MessageBuffer:  16,
		ErrorBuffer:    16,
		Framing:        FramingStream,
	}
}

func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.MessageBuffer <= 0 {
		c.MessageBuffer = def.MessageBuffer
	}
	if c.ErrorBuffer <= 0 {
		c.ErrorBuffer = def.ErrorBuffer
	}
	return c
}
