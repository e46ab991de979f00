package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestMachine() (*Machine, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	return NewMachine(DefaultContent(), clock), clock
}

func submit(choice string) Action {
	return Action{Kind: ACT_SUBMIT, Choice: choice}
}

func wrongOption(q Question) string {
	for _, o := range q.Options {
		if o != q.Correct {
			return o
		}
	}
	return ""
}

// walkTo drives a fresh session to the requested scene without answering.
func walkTo(t *testing.T, m *Machine, s *Session, target Scene) {
	t.Helper()
	for s.Scene != target {
		var a Action
		switch s.Scene {
		case SC_MENU:
			a = Action{Kind: ACT_SELECT, Character: "nayhan"}
		case SC_SEACOAST:
			a = Action{Kind: ACT_PROCEED}
		case SC_SHIP_INTRO, SC_DIVING:
			a = Action{Kind: ACT_NEXT}
		case SC_PEARL_GAME:
			if p, ok := m.Content.PearlWalk().Current(s.PearlIndex); ok {
				a = submit(p.Options[0])
			} else {
				a = Action{Kind: ACT_PROCEED}
			}
		case SC_SHIP_QUIZ:
			if q, ok := m.Content.ShipQuizWalk().Current(s.ShipQuestionIndex); ok {
				a = submit(q.Options[0])
			} else {
				a = Action{Kind: ACT_FINISH}
			}
		case SC_SUMMARY:
			a = Action{Kind: ACT_PLAY_AGAIN}
		}
		out := m.Apply(s, a)
		require.NotEqual(t, RES_NOOP, out.Result, "stuck in %s", s.Scene)
	}
}

func TestFullCorrectPlaythrough(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()

	require.Equal(t, RES_MOVED, m.Apply(&s, Action{Kind: ACT_SELECT, Character: "nayhan"}).Result)
	require.Equal(t, SC_SEACOAST, s.Scene)
	require.Equal(t, Character("nayhan"), s.Character)

	for i, q := range m.Content.Seacoast {
		out := m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: i, Choice: q.Correct})
		assert.Equal(t, RES_CORRECT, out.Result)
	}
	m.Apply(&s, Action{Kind: ACT_PROCEED})
	require.Equal(t, SC_SHIP_INTRO, s.Scene)

	for s.Scene == SC_SHIP_INTRO || s.Scene == SC_DIVING {
		m.Apply(&s, Action{Kind: ACT_NEXT})
	}
	require.Equal(t, SC_PEARL_GAME, s.Scene)

	for _, p := range m.Content.Pearls {
		assert.Equal(t, RES_CORRECT, m.Apply(&s, submit(p.Correct)).Result)
	}
	m.Apply(&s, Action{Kind: ACT_PROCEED})
	require.Equal(t, SC_SHIP_QUIZ, s.Scene)

	for _, q := range m.Content.ShipQuiz {
		assert.Equal(t, RES_CORRECT, m.Apply(&s, submit(q.Correct)).Result)
	}
	m.Apply(&s, Action{Kind: ACT_FINISH})

	assert.Equal(t, SC_SUMMARY, s.Scene)
	assert.Equal(t, 2+4+5, s.Score)
	assert.Equal(t, "Well done, Nayhan! Your total score: 11", m.Snapshot(s).Text)
}

func TestPearlMixedAnswers(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_PEARL_GAME)
	before := s.Score

	out := m.Apply(&s, submit("Sakaria"))
	assert.Equal(t, RES_CORRECT, out.Result)

	out = m.Apply(&s, submit("Jiwan"))
	assert.Equal(t, RES_WRONG, out.Result)
	assert.Equal(t, "Danah", out.Correct)

	assert.Equal(t, before+1, s.Score)
	assert.Equal(t, 2, s.PearlIndex)
}

func TestRemainingTime(t *testing.T) {
	m, clock := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_PEARL_GAME)

	s.TimerStart = clock.now.Add(-30 * time.Second)
	assert.Equal(t, 90, m.Remaining(s))
	assert.Equal(t, 90, m.Snapshot(s).Remaining)

	s.TimerStart = clock.now.Add(-200 * time.Second)
	assert.Equal(t, 0, m.Remaining(s))

	// expiry is informational: answers still count
	out := m.Apply(&s, submit("Sakaria"))
	assert.Equal(t, RES_CORRECT, out.Result)
	assert.Equal(t, SC_PEARL_GAME, s.Scene)
}

func TestEnteringPearlGameStartsTimer(t *testing.T) {
	m, clock := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_DIVING)
	s.Hearts = 1

	for s.Scene == SC_DIVING {
		m.Apply(&s, Action{Kind: ACT_NEXT})
	}

	assert.Equal(t, SC_PEARL_GAME, s.Scene)
	assert.Equal(t, MAX_HEARTS, s.Hearts)
	assert.Equal(t, clock.now, s.TimerStart)
	assert.Equal(t, 0, s.PearlIndex)
	assert.Equal(t, len(m.Content.DivingSteps)-1, s.DivingStep)
}

func TestCrewTraversalWrapsOnExit(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_SHIP_INTRO)
	require.Len(t, m.Content.Crew, 8)

	for i := 0; i < 7; i++ {
		m.Apply(&s, Action{Kind: ACT_NEXT})
		require.Equal(t, SC_SHIP_INTRO, s.Scene)
		require.Equal(t, i+1, s.CrewIndex)
	}
	m.Apply(&s, Action{Kind: ACT_NEXT})

	assert.Equal(t, SC_DIVING, s.Scene)
	assert.Equal(t, 0, s.CrewIndex)
}

func TestPlayAgainResets(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_SUMMARY)
	require.NotZero(t, s.Score)

	out := m.Apply(&s, Action{Kind: ACT_PLAY_AGAIN})

	assert.Equal(t, RES_MOVED, out.Result)
	assert.Equal(t, NewSession(), s)
	assert.Equal(t, SC_MENU, s.Scene)
	assert.Equal(t, CHAR_NONE, s.Character)
	assert.Equal(t, MAX_HEARTS, s.Hearts)
}

func TestExhaustedCursorsAreNoops(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_PEARL_GAME)
	for _, p := range m.Content.Pearls {
		m.Apply(&s, submit(p.Correct))
	}
	require.Equal(t, len(m.Content.Pearls), s.PearlIndex)

	before := s
	assert.Equal(t, RES_NOOP, m.Apply(&s, submit("Sakaria")).Result)
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_NEXT}).Result)
	assert.Equal(t, before, s)

	m.Apply(&s, Action{Kind: ACT_PROCEED})
	for _, q := range m.Content.ShipQuiz {
		m.Apply(&s, submit(wrongOption(q)))
	}
	require.Equal(t, len(m.Content.ShipQuiz), s.ShipQuestionIndex)
	before = s
	assert.Equal(t, RES_NOOP, m.Apply(&s, submit("Skuni")).Result)
	assert.Equal(t, before, s)
}

func TestMissingSelectionIsNoop(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_SEACOAST)

	before := s
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: 0}).Result)
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: 5, Choice: "Tila"}).Result)
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: 0, Choice: "tila"}).Result)
	assert.Equal(t, before, s)

	walkTo(t, m, &s, SC_PEARL_GAME)
	before = s
	assert.Equal(t, RES_NOOP, m.Apply(&s, submit("")).Result)
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_PROCEED}).Result)
	assert.Equal(t, before, s)
}

func TestMenuRejectsUnknownCharacter(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()

	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_SELECT, Character: "sinbad"}).Result)
	assert.Equal(t, RES_NOOP, m.Apply(&s, Action{Kind: ACT_NEXT}).Result)
	assert.Equal(t, NewSession(), s)

	m.Apply(&s, Action{Kind: ACT_SELECT, Character: "dhabia"})
	assert.Equal(t, Character("dhabia"), s.Character)
}

func TestSeacoastAnswersAreRepeatable(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_SEACOAST)

	for i := 0; i < 3; i++ {
		m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: 1, Choice: "Khosah Biboosah"})
	}
	out := m.Apply(&s, Action{Kind: ACT_SUBMIT, Question: 0, Choice: "Qubba"})

	assert.Equal(t, RES_WRONG, out.Result)
	assert.Equal(t, "Tila", out.Correct)
	assert.Equal(t, 3, s.Score)
	assert.Equal(t, SC_SEACOAST, s.Scene)
}

func TestHeartsNeverDecrease(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	walkTo(t, m, &s, SC_PEARL_GAME)

	for _, p := range m.Content.Pearls {
		require.Equal(t, RES_WRONG, m.Apply(&s, submit(wrongOption(p.Question))).Result)
		assert.Equal(t, MAX_HEARTS, s.Hearts)
	}
}

// Drives every action kind from every scene and checks the session
// invariants after each step.
func TestInvariantsUnderArbitraryActions(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()
	choices := []string{"", "Tila", "Sakaria", "Danah", "Yaqooti", "Qimashi",
		"Skuni", "Main diver", "Pearl diving trips", "No reason", "Captain / Chief"}
	kinds := []ActionKind{ACT_SELECT, ACT_SUBMIT, ACT_NEXT, ACT_PROCEED, ACT_FINISH}

	prev := s
	for step := 0; step < 2000; step++ {
		a := Action{
			Kind:      kinds[step%len(kinds)],
			Character: "nayhan",
			Question:  step % 3,
			Choice:    choices[(step/len(kinds))%len(choices)],
		}
		m.Apply(&s, a)

		require.GreaterOrEqual(t, s.Score, prev.Score)
		require.True(t, s.Hearts >= 0 && s.Hearts <= MAX_HEARTS)
		require.True(t, s.CrewIndex >= 0 && s.CrewIndex <= len(m.Content.Crew))
		require.True(t, s.DivingStep >= 0 && s.DivingStep <= len(m.Content.DivingSteps))
		require.True(t, s.PearlIndex >= 0 && s.PearlIndex <= len(m.Content.Pearls))
		require.True(t, s.ShipQuestionIndex >= 0 && s.ShipQuestionIndex <= len(m.Content.ShipQuiz))
		if s.Scene == prev.Scene {
			require.GreaterOrEqual(t, s.DivingStep, prev.DivingStep)
			require.GreaterOrEqual(t, s.PearlIndex, prev.PearlIndex)
			require.GreaterOrEqual(t, s.ShipQuestionIndex, prev.ShipQuestionIndex)
			require.GreaterOrEqual(t, s.CrewIndex, prev.CrewIndex)
		}
		prev = s
	}
	assert.Equal(t, SC_SUMMARY, s.Scene)
}

func TestSnapshotPerScene(t *testing.T) {
	m, _ := newTestMachine()
	s := NewSession()

	snap := m.Snapshot(s)
	assert.Equal(t, SC_MENU, snap.Scene)
	assert.Len(t, snap.Characters, 2)
	assert.Equal(t, "menu_background.png", snap.Backdrop.Background)
	assert.True(t, snap.Can(ACT_SELECT))

	walkTo(t, m, &s, SC_SEACOAST)
	snap = m.Snapshot(s)
	assert.Len(t, snap.Questions, 2)
	assert.Equal(t, "nayhan.png", snap.Portrait)
	assert.ElementsMatch(t, []ActionKind{ACT_SUBMIT, ACT_PROCEED}, snap.Actions)

	walkTo(t, m, &s, SC_SHIP_INTRO)
	snap = m.Snapshot(s)
	assert.Equal(t, "naukhada.png", snap.CrewPortrait)
	assert.Equal(t, "nayhan.png", snap.Portrait)
	assert.Equal(t, "Naukhada - Leader of the ship.", snap.Text)
	assert.Equal(t, 8, snap.Total)

	walkTo(t, m, &s, SC_PEARL_GAME)
	snap = m.Snapshot(s)
	require.Len(t, snap.Questions, 1)
	assert.Equal(t, "pearl1.png", snap.Questions[0].Image)
	assert.Equal(t, TIME_BUDGET, snap.Remaining)
	assert.Equal(t, []ActionKind{ACT_SUBMIT}, snap.Actions)

	for _, p := range m.Content.Pearls {
		m.Apply(&s, submit(wrongOption(p.Question)))
	}
	snap = m.Snapshot(s)
	assert.Empty(t, snap.Questions)
	assert.Equal(t, []ActionKind{ACT_PROCEED}, snap.Actions)
}
