package model

import (
	"fmt"
	"time"
)

type ActionKind int

const (
	ACT_NONE ActionKind = iota
	ACT_SELECT
	ACT_SUBMIT
	ACT_NEXT
	ACT_PROCEED
	ACT_FINISH
	ACT_PLAY_AGAIN
)

func (a ActionKind) Name() string {
	switch a {
	case ACT_NONE:
		return "none"
	case ACT_SELECT:
		return "select"
	case ACT_SUBMIT:
		return "submit"
	case ACT_NEXT:
		return "next"
	case ACT_PROCEED:
		return "proceed"
	case ACT_FINISH:
		return "finish"
	case ACT_PLAY_AGAIN:
		return "play_again"
	default:
		return "n/a"
	}
}

func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.Name()), nil
}

func (a *ActionKind) UnmarshalText(b []byte) error {
	for k := ACT_NONE; k <= ACT_PLAY_AGAIN; k++ {
		if k.Name() == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", b)
}

// Action is one discrete player input. Question only matters on the
// seacoast where both questions are on screen at once.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Character Character  `json:"character,omitempty"`
	Question  int        `json:"question,omitempty"`
	Choice    string     `json:"choice,omitempty"`
}

type Result int

const (
	RES_NOOP Result = iota
	RES_MOVED
	RES_CORRECT
	RES_WRONG
)

func (r Result) Name() string {
	switch r {
	case RES_NOOP:
		return "noop"
	case RES_MOVED:
		return "moved"
	case RES_CORRECT:
		return "correct"
	case RES_WRONG:
		return "wrong"
	default:
		return "n/a"
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.Name()), nil
}

func (r *Result) UnmarshalText(b []byte) error {
	for k := RES_NOOP; k <= RES_WRONG; k++ {
		if k.Name() == string(b) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown result %q", b)
}

// Outcome tells the surface what an action did. Correct is set on
// answered questions so a wrong answer can reveal the right option.
type Outcome struct {
	Result  Result `json:"result"`
	Correct string `json:"correct,omitempty"`
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Machine holds no session state; every call works on the Session passed in.
type Machine struct {
	Content *Content
	Clock   Clock
}

func NewMachine(content *Content, clock Clock) *Machine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Machine{Content: content, Clock: clock}
}

var noop = Outcome{Result: RES_NOOP}
var moved = Outcome{Result: RES_MOVED}

func (m *Machine) Apply(s *Session, a Action) Outcome {
	switch s.Scene {
	case SC_MENU:
		return m.menu(s, a)
	case SC_SEACOAST:
		return m.seacoast(s, a)
	case SC_SHIP_INTRO:
		return m.shipIntro(s, a)
	case SC_DIVING:
		return m.diving(s, a)
	case SC_PEARL_GAME:
		return m.pearlGame(s, a)
	case SC_SHIP_QUIZ:
		return m.shipQuiz(s, a)
	case SC_SUMMARY:
		if a.Kind == ACT_PLAY_AGAIN {
			s.Reset()
			return moved
		}
	}
	return noop
}

func (m *Machine) menu(s *Session, a Action) Outcome {
	if a.Kind != ACT_SELECT {
		return noop
	}
	if _, ok := m.Content.Character(a.Character); !ok {
		return noop
	}
	s.Character = a.Character
	s.Scene = SC_SEACOAST
	return moved
}

func (m *Machine) seacoast(s *Session, a Action) Outcome {
	switch a.Kind {
	case ACT_PROCEED:
		s.Scene = SC_SHIP_INTRO
		return moved
	case ACT_SUBMIT:
		if a.Question < 0 || a.Question >= len(m.Content.Seacoast) {
			return noop
		}
		// no cursor here: the same question may be answered again
		return score(s, m.Content.Seacoast[a.Question], a.Choice)
	}
	return noop
}

func (m *Machine) shipIntro(s *Session, a Action) Outcome {
	if a.Kind != ACT_NEXT {
		return noop
	}
	crew := m.Content.CrewWalk()
	if crew.Last(s.CrewIndex) {
		s.CrewIndex = 0
		s.DivingStep = 0
		s.Scene = SC_DIVING
		return moved
	}
	if !crew.Advance(&s.CrewIndex) {
		return noop
	}
	return moved
}

func (m *Machine) diving(s *Session, a Action) Outcome {
	if a.Kind != ACT_NEXT {
		return noop
	}
	steps := m.Content.DivingWalk()
	if steps.Last(s.DivingStep) {
		s.Hearts = MAX_HEARTS
		s.TimerStart = m.Clock.Now()
		s.PearlIndex = 0
		s.Scene = SC_PEARL_GAME
		return moved
	}
	if !steps.Advance(&s.DivingStep) {
		return noop
	}
	return moved
}

func (m *Machine) pearlGame(s *Session, a Action) Outcome {
	pearls := m.Content.PearlWalk()
	switch a.Kind {
	case ACT_SUBMIT:
		p, ok := pearls.Current(s.PearlIndex)
		if !ok {
			return noop
		}
		out := score(s, p.Question, a.Choice)
		if out.Result != RES_NOOP {
			pearls.Advance(&s.PearlIndex)
		}
		return out
	case ACT_PROCEED:
		if !pearls.Exhausted(s.PearlIndex) {
			return noop
		}
		s.ShipQuestionIndex = 0
		s.Scene = SC_SHIP_QUIZ
		return moved
	}
	return noop
}

func (m *Machine) shipQuiz(s *Session, a Action) Outcome {
	quiz := m.Content.ShipQuizWalk()
	switch a.Kind {
	case ACT_SUBMIT:
		q, ok := quiz.Current(s.ShipQuestionIndex)
		if !ok {
			return noop
		}
		out := score(s, q, a.Choice)
		if out.Result != RES_NOOP {
			quiz.Advance(&s.ShipQuestionIndex)
		}
		return out
	case ACT_FINISH:
		if !quiz.Exhausted(s.ShipQuestionIndex) {
			return noop
		}
		s.Scene = SC_SUMMARY
		return moved
	}
	return noop
}

// score compares the choice with the correct option verbatim. A missing
// choice, or one the question never offered, counts as no selection.
func score(s *Session, q Question, choice string) Outcome {
	if choice == "" || !q.HasOption(choice) {
		return noop
	}
	if choice == q.Correct {
		s.Score++
		return Outcome{Result: RES_CORRECT, Correct: q.Correct}
	}
	return Outcome{Result: RES_WRONG, Correct: q.Correct}
}

// Remaining is the informational pearl game countdown in whole seconds.
// Nothing happens when it reaches zero.
func (m *Machine) Remaining(s Session) int {
	if s.TimerStart.IsZero() {
		return TIME_BUDGET
	}
	elapsed := int(m.Clock.Now().Sub(s.TimerStart) / time.Second)
	remaining := TIME_BUDGET - elapsed
	if remaining < 0 {
		return 0
	}
	if remaining > TIME_BUDGET {
		return TIME_BUDGET
	}
	return remaining
}

// Available lists the actions that would not be a no-op right now, ignoring
// whether a selection has been made.
func (m *Machine) Available(s Session) []ActionKind {
	switch s.Scene {
	case SC_MENU:
		return []ActionKind{ACT_SELECT}
	case SC_SEACOAST:
		if len(m.Content.Seacoast) == 0 {
			return []ActionKind{ACT_PROCEED}
		}
		return []ActionKind{ACT_SUBMIT, ACT_PROCEED}
	case SC_SHIP_INTRO, SC_DIVING:
		return []ActionKind{ACT_NEXT}
	case SC_PEARL_GAME:
		if m.Content.PearlWalk().Exhausted(s.PearlIndex) {
			return []ActionKind{ACT_PROCEED}
		}
		return []ActionKind{ACT_SUBMIT}
	case SC_SHIP_QUIZ:
		if m.Content.ShipQuizWalk().Exhausted(s.ShipQuestionIndex) {
			return []ActionKind{ACT_FINISH}
		}
		return []ActionKind{ACT_SUBMIT}
	case SC_SUMMARY:
		return []ActionKind{ACT_PLAY_AGAIN}
	}
	return nil
}
