package payload

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is implemented by the six message kinds. The set is closed.
type Message interface {
	Type() Kind
	Channel() Channel
	AnonymousID() string
	UserID() string
	Context() Context
	Timestamp() Time
	SentAt() (Time, bool)
	SetSentAt(t time.Time)
	Identified() bool

	message()
}

var (
	_ Message = (*Alias)(nil)
	_ Message = (*Group)(nil)
	_ Message = (*Identify)(nil)
	_ Message = (*Page)(nil)
	_ Message = (*Screen)(nil)
	_ Message = (*Track)(nil)
)

func decodeBase(b *Base, w baseWire, want Kind) error {
	if err := b.fromWire(w); err != nil {
		return err
	}
	if b.kind != want {
		return fmt.Errorf("expected %s, got %q: %w", want, b.kind, ErrUnknownKind)
	}
	return nil
}

// Track records an action the user performed.
type Track struct {
	Base
	Event      string
	Properties Properties
}

func NewTrack(anonymousID string, ctx Context, userID string, opts Options, event string, properties Properties) *Track {
	return &Track{
		Base:       NewBase(KindTrack, anonymousID, ctx, userID, opts),
		Event:      event,
		Properties: properties,
	}
}

type trackWire struct {
	baseWire
	Event      string     `json:"event"`
	Properties Properties `json:"properties,omitempty"`
}

func (t Track) MarshalJSON() ([]byte, error) {
	return json.Marshal(trackWire{t.wire(), t.Event, t.Properties})
}

func (t *Track) UnmarshalJSON(data []byte) error {
	var w trackWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&t.Base, w.baseWire, KindTrack); err != nil {
		return err
	}
	t.Event, t.Properties = w.Event, w.Properties
	return nil
}

// Identify ties a user to their traits.
type Identify struct {
	Base
	Traits Traits
}

func NewIdentify(anonymousID string, ctx Context, userID string, opts Options, traits Traits) *Identify {
	return &Identify{
		Base:   NewBase(KindIdentify, anonymousID, ctx, userID, opts),
		Traits: traits,
	}
}

type identifyWire struct {
	baseWire
	Traits Traits `json:"traits,omitempty"`
}

func (i Identify) MarshalJSON() ([]byte, error) {
	return json.Marshal(identifyWire{i.wire(), i.Traits})
}

func (i *Identify) UnmarshalJSON(data []byte) error {
	var w identifyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&i.Base, w.baseWire, KindIdentify); err != nil {
		return err
	}
	i.Traits = w.Traits
	return nil
}

// Screen records a screen view in a mobile app.
type Screen struct {
	Base
	Category   string
	Name       string
	Properties Properties
}

func NewScreen(anonymousID string, ctx Context, userID string, opts Options, category, name string, properties Properties) *Screen {
	return &Screen{
		Base:       NewBase(KindScreen, anonymousID, ctx, userID, opts),
		Category:   category,
		Name:       name,
		Properties: properties,
	}
}

// viewWire is shared by screen and page messages.
type viewWire struct {
	baseWire
	Category   string     `json:"category,omitempty"`
	Name       string     `json:"name,omitempty"`
	Properties Properties `json:"properties,omitempty"`
}

func (s Screen) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewWire{s.wire(), s.Category, s.Name, s.Properties})
}

func (s *Screen) UnmarshalJSON(data []byte) error {
	var w viewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&s.Base, w.baseWire, KindScreen); err != nil {
		return err
	}
	s.Category, s.Name, s.Properties = w.Category, w.Name, w.Properties
	return nil
}

// Page records a page view in an embedded web view.
type Page struct {
	Base
	Category   string
	Name       string
	Properties Properties
}

func NewPage(anonymousID string, ctx Context, userID string, opts Options, category, name string, properties Properties) *Page {
	return &Page{
		Base:       NewBase(KindPage, anonymousID, ctx, userID, opts),
		Category:   category,
		Name:       name,
		Properties: properties,
	}
}

func (p Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewWire{p.wire(), p.Category, p.Name, p.Properties})
}

func (p *Page) UnmarshalJSON(data []byte) error {
	var w viewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&p.Base, w.baseWire, KindPage); err != nil {
		return err
	}
	p.Category, p.Name, p.Properties = w.Category, w.Name, w.Properties
	return nil
}

// Group associates the user with a company, team or account.
type Group struct {
	Base
	GroupID string
	Traits  Traits
}

func NewGroup(anonymousID string, ctx Context, userID string, opts Options, groupID string, traits Traits) *Group {
	return &Group{
		Base:    NewBase(KindGroup, anonymousID, ctx, userID, opts),
		GroupID: groupID,
		Traits:  traits,
	}
}

type groupWire struct {
	baseWire
	GroupID string `json:"groupId"`
	Traits  Traits `json:"traits,omitempty"`
}

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupWire{g.wire(), g.GroupID, g.Traits})
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var w groupWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&g.Base, w.baseWire, KindGroup); err != nil {
		return err
	}
	g.GroupID, g.Traits = w.GroupID, w.Traits
	return nil
}

// Alias merges a previous identity into the message's userId.
type Alias struct {
	Base
	PreviousID string
}

func NewAlias(anonymousID string, ctx Context, userID string, opts Options, previousID string) *Alias {
	return &Alias{
		Base:       NewBase(KindAlias, anonymousID, ctx, userID, opts),
		PreviousID: previousID,
	}
}

type aliasWire struct {
	baseWire
	PreviousID string `json:"previousId"`
}

func (a Alias) MarshalJSON() ([]byte, error) {
	return json.Marshal(aliasWire{a.wire(), a.PreviousID})
}

func (a *Alias) UnmarshalJSON(data []byte) error {
	var w aliasWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := decodeBase(&a.Base, w.baseWire, KindAlias); err != nil {
		return err
	}
	a.PreviousID = w.PreviousID
	return nil
}
