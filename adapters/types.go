package adapters

import "github.com/Tap30/beacon-go/payload"

// Message is a single analytics message of any kind.
type Message = payload.Message

// Batch is the JSON-decodable form of a message slice.
type Batch = payload.Batch
