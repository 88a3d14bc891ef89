package payload

// Context is a caller-supplied bag of environment metadata (device, locale,
// app version, ...). Messages keep a reference to it; callers must not
// mutate a Context after passing it to a constructor.
type Context map[string]any

// Properties are free-form attributes of a track, page or screen message.
type Properties map[string]any

// Traits describe a user or a group.
type Traits map[string]any

// Options carries per-message overrides.
type Options struct {
	// Timestamp is the occurrence time in milliseconds since the Unix epoch.
	// Zero means the message occurred at construction time.
	Timestamp int64
}
