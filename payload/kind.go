package payload

import "fmt"

// Kind identifies the kind of an analytics message.
type Kind string

const (
	KindAlias    Kind = "alias"
	KindGroup    Kind = "group"
	KindIdentify Kind = "identify"
	KindPage     Kind = "page"
	KindScreen   Kind = "screen"
	KindTrack    Kind = "track"
)

// Kinds lists every kind in wire order.
var Kinds = []Kind{KindAlias, KindGroup, KindIdentify, KindPage, KindScreen, KindTrack}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAlias, KindGroup, KindIdentify, KindPage, KindScreen, KindTrack:
		return true
	}
	return false
}

// ParseKind converts a wire value into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

// Channel is the origin category of a message.
type Channel string

const (
	ChannelBrowser Channel = "browser"
	ChannelMobile  Channel = "mobile"
	ChannelServer  Channel = "server"
)

func (c Channel) String() string {
	return string(c)
}
