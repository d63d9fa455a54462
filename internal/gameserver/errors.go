package gameserver

import "errors"

var (
	// ErrProtocolViolation marks a malformed datagram or a command that is
	// not expected in the current stage. The datagram is dropped.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrUnknownPlayer marks a command from a uid that is not in the roster.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrIdleTimeout is returned by Run when no datagram arrived for the
	// configured idle timeout.
	ErrIdleTimeout = errors.New("idle timeout")
)
