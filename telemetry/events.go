// Package telemetry provides population tracking, windowed stats, bookmarks and CSV output.
package telemetry

import "github.com/pthm-cable/wator/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventEaten
	EventStarved
)

// String returns the event name used in CSV output.
func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventEaten:
		return "eaten"
	case EventStarved:
		return "starved"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Kind     components.Kind

	TargetID uint32 // parent for births, predator for eaten prey
	Age      int32  // ticks lived, for deaths
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int32, childID, parentID uint32, kind components.Kind) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Kind:     kind,
		TargetID: parentID,
	}
}

// NewEatenEvent creates an event for an ant eaten by a doodlebug.
func NewEatenEvent(tick int32, preyID, predatorID uint32, age int32) Event {
	return Event{
		Type:     EventEaten,
		Tick:     tick,
		EntityID: preyID,
		Kind:     components.KindPrey,
		TargetID: predatorID,
		Age:      age,
	}
}

// NewStarvedEvent creates an event for a doodlebug that starved.
func NewStarvedEvent(tick int32, predatorID uint32, age int32) Event {
	return Event{
		Type:     EventStarved,
		Tick:     tick,
		EntityID: predatorID,
		Kind:     components.KindPredator,
		Age:      age,
	}
}

// IsDeath reports whether the event removed an organism.
func (e Event) IsDeath() bool {
	return e.Type == EventEaten || e.Type == EventStarved
}
