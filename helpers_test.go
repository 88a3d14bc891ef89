package beacon

import "github.com/Tap30/beacon-go/payload"

func track(event string) Message {
	return payload.NewTrack("anon", payload.Context{}, "", payload.Options{}, event, nil)
}

func eventName(m Message) string {
	if t, ok := m.(*payload.Track); ok {
		return t.Event
	}
	return ""
}
