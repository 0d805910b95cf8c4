package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFrame = errors.New("protocol: malformed frame")
	ErrBadChecksum    = errors.New("protocol: checksum mismatch")
	ErrNotConnected   = errors.New("protocol: not connected")
)

// UnsupportedError reports that the device rejected a code. It is a
// per-request condition, distinct from a structural parse failure.
type UnsupportedError struct {
	Code Code
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("protocol: %s unsupported by device", e.Code)
}

// UnknownCodeError reports a structurally valid frame whose code has no
// registered schema. The frame itself is fine, just unmodeled.
type UnknownCodeError struct {
	Code Code
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("protocol: no schema registered for %s", e.Code)
}

// TimeoutError reports that no response arrived within the request deadline.
type TimeoutError struct {
	Code Code
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("protocol: %s timed out", e.Code)
}

// PendingError reports a second request issued for a code that already has
// an outstanding request. One outstanding request per code is the contract;
// matching order for duplicates would be undefined otherwise.
type PendingError struct {
	Code Code
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("protocol: request already pending for %s", e.Code)
}
