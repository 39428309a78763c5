package rollup

import (
	"errors"
	"fmt"
)

// Errors returned when decoding or encoding an unknown enum value.
var (
	ErrInvalidMode        = errors.New("invalid node mode")
	ErrInvalidQueueOrigin = errors.New("invalid queue origin")
)

// Mode is the operating mode reported by a rollup node.
type Mode string

const (
	ModeSequencer Mode = "sequencer"
	ModeVerifier  Mode = "verifier"
)

// Valid reports whether m is ModeSequencer or ModeVerifier.
func (m Mode) Valid() bool {
	return m == ModeSequencer || m == ModeVerifier
}

// MarshalText rejects modes other than the two known ones.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
	}
	return []byte(m), nil
}

// UnmarshalText accepts exactly "sequencer" or "verifier".
func (m *Mode) UnmarshalText(text []byte) error {
	v := Mode(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(text))
	}
	*m = v
	return nil
}

// QueueOrigin tells whether a transaction entered the rollup through the
// sequencer or through the anchor-chain queue.
type QueueOrigin string

const (
	QueueOriginSequencer QueueOrigin = "sequencer"
	QueueOriginL1ToL2    QueueOrigin = "l1"
)

// Valid reports whether q is QueueOriginSequencer or QueueOriginL1ToL2.
func (q QueueOrigin) Valid() bool {
	return q == QueueOriginSequencer || q == QueueOriginL1ToL2
}

// MarshalText rejects origins other than the two known ones.
func (q QueueOrigin) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQueueOrigin, string(q))
	}
	return []byte(q), nil
}

// UnmarshalText accepts exactly "sequencer" or "l1".
func (q *QueueOrigin) UnmarshalText(text []byte) error {
	v := QueueOrigin(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidQueueOrigin, string(text))
	}
	*q = v
	return nil
}
