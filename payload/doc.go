// Package payload defines the envelope of an analytics message sent from a
// mobile device to a collection endpoint.
//
// Every message kind (alias, group, identify, page, screen, track) embeds a
// Base carrying identity, context and two client-side timestamps:
//
//   - timestamp: when the event occurred on the device, fixed at construction
//   - sentAt: when the message left the device, re-stamped before each upload
//
// The server pairs sentAt with its own receivedAt to estimate the device's
// clock skew and corrects timestamp accordingly. Fields assigned by the server
// (projectId, receivedAt, messageId, version) are never produced here.
package payload
