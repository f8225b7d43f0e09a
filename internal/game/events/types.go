package events

import (
	"time"
)

// Event is something that happened during a battle: a round boundary,
// a resolved or skipped attack, a casualty.
type Event interface {
	// Type is one of the dotted names in battle_events.go, e.g. "unit.killed"
	Type() string
	Timestamp() time.Time
	// GameID is the battle ID assigned by the simulator
	GameID() string
}

// BaseEvent carries the fields every battle event shares. Concrete events
// embed it so they serialise with "type", "timestamp" and "game_id" keys.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, battleID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: battleID}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventHandler reacts to a single battle event
type EventHandler func(Event)

// Subscriber receives the battle events it declares interest in.
// Battle log writers and test recorders implement it.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is what the simulator reports to, called inline from each turn
type Publisher interface {
	Publish(Event)
}

// Bus fans battle events out to subscribers and plain handler funcs
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
