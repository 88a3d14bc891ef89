package adapters

import "github.com/Tap30/beacon-go/payload"

func sampleMessages() []Message {
	opts := payload.Options{Timestamp: 1700000000000}
	ctx := payload.Context{"locale": "en-US"}
	return []Message{
		payload.NewTrack("anon-1", ctx, "", opts, "Opened App", payload.Properties{"from_background": false}),
		payload.NewIdentify("anon-1", ctx, "user-1", opts, payload.Traits{"plan": "pro"}),
	}
}
