package game

import "github.com/plus3/stacker/block"

// EventKind classifies an Event.
type EventKind string

const (
	EventSpawned  EventKind = "spawned"
	EventLanded   EventKind = "landed"
	EventToppled  EventKind = "toppled"
	EventLost     EventKind = "lost"
	EventLifeLost EventKind = "life_lost"
	EventRecord   EventKind = "record"
	EventSpeedUp  EventKind = "speed_up"
	EventPaused   EventKind = "paused"
	EventResumed  EventKind = "resumed"
	EventGameOver EventKind = "game_over"
)

// Event is emitted to the session observer as rules fire.
type Event struct {
	Kind   EventKind `json:"kind"`
	Time   float64   `json:"time"`
	Block  block.ID  `json:"block,omitempty"`
	Height float64   `json:"height,omitempty"`
	Score  int       `json:"score"`
	Lives  int       `json:"lives"`
}

// Observer receives session events. It must not call back into the session.
type Observer func(Event)

func (s *Session) emit(kind EventKind, b *block.Block) {
	if s.observer == nil {
		return
	}
	e := Event{
		Kind:  kind,
		Time:  s.clock,
		Score: s.State.Score,
		Lives: s.State.Lives,
	}
	if b != nil {
		e.Block = b.ID
		e.Height = b.Position.Y()
	}
	s.observer(e)
}
