package payload

import (
	"encoding/json"
	"fmt"
	"time"
)

// Base is the envelope shared by every message kind. It is immutable once
// constructed except for sentAt, which the uploader re-stamps immediately
// before each transmission attempt.
//
// The server corrects client clock skew as receivedAt - sentAt and applies
// the delta to timestamp, so sentAt must never be stamped earlier than the
// actual send. Retries re-stamp sentAt and leave timestamp untouched.
//
// Base holds no locks. A message must have at most one send in flight.
type Base struct {
	kind        Kind
	anonymousID string
	userID      string
	context     Context
	timestamp   Time
	sentAt      *Time
}

// NewBase builds the envelope for a message of the given kind.
//
// At least one of anonymousID and userID should be set or the server cannot
// attribute the message. This is the caller's responsibility and is not
// checked here; see Identified.
func NewBase(kind Kind, anonymousID string, ctx Context, userID string, opts Options) Base {
	b := Base{
		kind:        kind,
		anonymousID: anonymousID,
		userID:      userID,
		context:     ctx,
	}
	if opts.Timestamp != 0 {
		b.timestamp = TimeFromMillis(opts.Timestamp)
	} else {
		b.timestamp = Now()
	}
	return b
}

// Type returns the message kind.
func (b *Base) Type() Kind {
	return b.kind
}

// Channel is always ChannelMobile.
func (b *Base) Channel() Channel {
	return ChannelMobile
}

func (b *Base) AnonymousID() string {
	return b.anonymousID
}

func (b *Base) UserID() string {
	return b.userID
}

func (b *Base) Context() Context {
	return b.context
}

// Timestamp returns when the message occurred on the device.
func (b *Base) Timestamp() Time {
	return b.timestamp
}

// SentAt returns when the message last left the device, if it has.
func (b *Base) SentAt() (Time, bool) {
	if b.sentAt == nil {
		return Time{}, false
	}
	return *b.sentAt, true
}

// SetSentAt records the transmission time. Call it right before every send
// attempt, including retries.
func (b *Base) SetSentAt(t time.Time) {
	sent := TimeFrom(t)
	b.sentAt = &sent
}

// Identified reports whether the message carries an anonymous or user ID.
func (b *Base) Identified() bool {
	return b.anonymousID != "" || b.userID != ""
}

func (b *Base) message() {}

// baseWire is the wire form of Base. Variants embed it so its fields are
// flattened into their own JSON object.
type baseWire struct {
	Type        Kind    `json:"type"`
	Channel     Channel `json:"channel"`
	AnonymousID string  `json:"anonymousId,omitempty"`
	UserID      string  `json:"userId,omitempty"`
	Context     Context `json:"context"`
	Timestamp   Time    `json:"timestamp"`
	SentAt      *Time   `json:"sentAt,omitempty"`
}

func (b *Base) wire() baseWire {
	return baseWire{
		Type:        b.kind,
		Channel:     b.Channel(),
		AnonymousID: b.anonymousID,
		UserID:      b.userID,
		Context:     b.context,
		Timestamp:   b.timestamp,
		SentAt:      b.sentAt,
	}
}

func (b *Base) fromWire(w baseWire) error {
	if !w.Type.Valid() {
		return fmt.Errorf("%q: %w", w.Type, ErrUnknownKind)
	}
	if w.Channel != ChannelMobile {
		return fmt.Errorf("%q: %w", w.Channel, ErrInvalidChannel)
	}
	if w.Timestamp.IsZero() {
		return fmt.Errorf("missing timestamp: %w", ErrInvalidTimestamp)
	}
	*b = Base{
		kind:        w.Type,
		anonymousID: w.AnonymousID,
		userID:      w.UserID,
		context:     w.Context,
		timestamp:   w.Timestamp,
		sentAt:      w.SentAt,
	}
	return nil
}

func (b Base) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.wire())
}

func (b *Base) UnmarshalJSON(data []byte) error {
	var w baseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return b.fromWire(w)
}
