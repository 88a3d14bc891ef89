package collector

import (
	"time"

	"github.com/Tap30/beacon-go/payload"
)

// Skew is how far the device clock lags behind the server clock, measured
// from the moment a message left the device until it arrived. Transit time
// is counted as skew.
func Skew(sentAt, receivedAt payload.Time) time.Duration {
	return receivedAt.Sub(sentAt)
}

// CorrectTimestamp maps a device timestamp onto the server clock. Both
// timestamp and sentAt were read from the same device clock, so their
// offset survives any skew. Without sentAt the timestamp is kept as sent.
func CorrectTimestamp(timestamp, sentAt, receivedAt payload.Time) payload.Time {
	if sentAt.IsZero() {
		return timestamp
	}
	return timestamp.Add(Skew(sentAt, receivedAt))
}
