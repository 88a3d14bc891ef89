package payload

import (
	"fmt"
	"time"
)

// isoLayout is RFC 3339 limited to milliseconds, trailing zeros trimmed.
const isoLayout = "2006-01-02T15:04:05.999Z07:00"

// Time is a UTC instant with millisecond precision that serializes as an
// ISO-8601 string. Every constructor funnels through TimeFromMillis so two
// values built from the same millisecond format identically.
type Time struct {
	t time.Time
}

// TimeFromMillis returns the instant ms milliseconds after the Unix epoch.
func TimeFromMillis(ms int64) Time {
	return Time{t: time.UnixMilli(ms).UTC()}
}

// TimeFrom truncates t to millisecond precision.
func TimeFrom(t time.Time) Time {
	return TimeFromMillis(t.UnixMilli())
}

// Now returns the current instant.
func Now() Time {
	return TimeFrom(time.Now())
}

// ParseTime parses an ISO-8601 (RFC 3339) string.
func ParseTime(s string) (Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Time{}, fmt.Errorf("%q: %w", s, ErrInvalidTimestamp)
	}
	return TimeFrom(t), nil
}

// Time returns the standard library representation.
func (t Time) Time() time.Time {
	return t.t
}

// UnixMilli returns t as milliseconds since the Unix epoch.
func (t Time) UnixMilli() int64 {
	return t.t.UnixMilli()
}

func (t Time) IsZero() bool {
	return t.t.IsZero()
}

func (t Time) Equal(u Time) bool {
	return t.t.Equal(u.t)
}

// Add returns t shifted by d, truncated to milliseconds.
func (t Time) Add(d time.Duration) Time {
	return TimeFrom(t.t.Add(d))
}

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration {
	return t.t.Sub(u.t)
}

// String returns the ISO-8601 form, e.g. 2023-11-14T22:13:20.123Z.
func (t Time) String() string {
	return t.t.Format(isoLayout)
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(data []byte) error {
	parsed, err := ParseTime(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
