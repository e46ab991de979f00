package view

import (
	"time"

	"github.com/zucenko/ancienttales/model"
)

// State is what a remote client remembers between server messages.
type State struct {
	SessionId  string
	Snapshot   model.Snapshot
	Selection  Selection
	Feedback   model.Outcome
	ReceivedAt time.Time
	Received   bool
}

func NewState() *State {
	return &State{Selection: Selection{}}
}

// Receive stores msg and reports whether the player is looking at a new
// screen, in which case old selections no longer apply.
func (s *State) Receive(msg model.ServerMessage, now time.Time) bool {
	prev := s.Snapshot
	first := !s.Received
	s.SessionId = msg.SessionId
	s.Snapshot = msg.Snapshot
	s.ReceivedAt = now
	s.Received = true
	for _, out := range msg.Feedback {
		if out.Result != model.RES_NOOP {
			s.Feedback = out
		}
	}

	changed := first || prev.Scene != msg.Snapshot.Scene || prev.Cursor != msg.Snapshot.Cursor
	if changed {
		s.Selection = Selection{}
		if prev.Scene != msg.Snapshot.Scene {
			s.Feedback = model.Outcome{}
		}
	}
	return changed
}

// Remaining counts the pearl game timer down locally between messages.
func (s *State) Remaining(now time.Time) int {
	left := s.Snapshot.Remaining - int(now.Sub(s.ReceivedAt)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

func (s *State) Buttons(width, height int) []Button {
	if !s.Received {
		return nil
	}
	return Layout(s.Snapshot, s.Selection, width, height)
}
