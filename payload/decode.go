package payload

import (
	"encoding/json"
	"fmt"
)

// New returns an empty message of kind k, ready to be unmarshalled into.
func New(k Kind) (Message, error) {
	switch k {
	case KindAlias:
		return &Alias{}, nil
	case KindGroup:
		return &Group{}, nil
	case KindIdentify:
		return &Identify{}, nil
	case KindPage:
		return &Page{}, nil
	case KindScreen:
		return &Screen{}, nil
	case KindTrack:
		return &Track{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", k, ErrUnknownKind)
	}
}

// Decode unmarshals a single wire message into its concrete kind.
func Decode(data []byte) (Message, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to read message type: %w", err)
	}
	m, err := New(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Batch is an ordered list of messages that round-trips through JSON.
type Batch []Message

func (b *Batch) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Batch, 0, len(raw))
	for i, r := range raw {
		m, err := Decode(r)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		out = append(out, m)
	}
	*b = out
	return nil
}
