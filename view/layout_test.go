package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/ancienttales/model"
)

func snapshotAt(t *testing.T, steps ...model.Action) model.Snapshot {
	t.Helper()
	m := model.NewMachine(model.DefaultContent(), nil)
	s := model.NewSession()
	for _, a := range steps {
		m.Apply(&s, a)
	}
	return m.Snapshot(s)
}

func byKind(buttons []Button, kind ButtonKind) []Button {
	var out []Button
	for _, b := range buttons {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

func TestMenuLayoutOffersCharacters(t *testing.T) {
	buttons := Layout(snapshotAt(t), Selection{}, 800, 600)

	require.Len(t, buttons, 2)
	assert.Equal(t, "Play as Nayhan", buttons[0].Label)
	assert.Equal(t, "nayhan.png", buttons[0].Image)
	assert.Equal(t, "dhabia.png", buttons[1].Image)
	for _, b := range buttons {
		img := b.ImageRect()
		assert.Equal(t, b.Rect.X, img.X)
		assert.LessOrEqual(t, img.Y+img.H, b.Rect.Y, "portrait sits above its button")
		assert.GreaterOrEqual(t, img.Y, HEADER, "portrait stays below the title")
	}
	assert.Equal(t, model.Character("dhabia"), buttons[1].Action.Character)

	b, ok := HitTest(buttons, buttons[1].Rect.X+1, buttons[1].Rect.Y+1)
	require.True(t, ok)
	a, send := Click(b, Selection{})
	assert.True(t, send)
	assert.Equal(t, model.ACT_SELECT, a.Kind)
}

func TestSeacoastSubmitNeedsSelection(t *testing.T) {
	snap := snapshotAt(t, model.Action{Kind: model.ACT_SELECT, Character: "nayhan"})
	sel := Selection{}

	buttons := Layout(snap, sel, 800, 900)
	options := byKind(buttons, BTN_OPTION)
	assert.Len(t, options, 8)
	texts := byKind(buttons, BTN_TEXT)
	require.Len(t, texts, 2)
	_, ok := HitTest(buttons, texts[0].Rect.X+1, texts[0].Rect.Y+1)
	assert.False(t, ok)

	actions := byKind(buttons, BTN_ACTION)
	require.Len(t, actions, 3) // two submits and proceed
	assert.True(t, actions[0].Disabled)
	assert.Equal(t, "Proceed to Ship", actions[2].Label)

	_, ok = HitTest(buttons, actions[0].Rect.X+1, actions[0].Rect.Y+1)
	assert.False(t, ok)

	_, send := Click(options[0], sel)
	assert.False(t, send)
	assert.Equal(t, "Tila", sel[0])

	buttons = Layout(snap, sel, 800, 900)
	actions = byKind(buttons, BTN_ACTION)
	assert.False(t, actions[0].Disabled)
	assert.Equal(t, model.Action{Kind: model.ACT_SUBMIT, Question: 0, Choice: "Tila"}, actions[0].Action)
	assert.True(t, byKind(buttons, BTN_OPTION)[0].Selected)
}

func TestButtonsDoNotOverlap(t *testing.T) {
	snap := snapshotAt(t, model.Action{Kind: model.ACT_SELECT, Character: "nayhan"})
	buttons := Layout(snap, Selection{0: "Tila"}, 800, 900)

	for i, a := range buttons {
		for j, b := range buttons {
			if i >= j {
				continue
			}
			overlap := a.Rect.X < b.Rect.X+b.Rect.W && b.Rect.X < a.Rect.X+a.Rect.W &&
				a.Rect.Y < b.Rect.Y+b.Rect.H && b.Rect.Y < a.Rect.Y+a.Rect.H
			assert.False(t, overlap, "%q overlaps %q", a.Label, b.Label)
		}
	}
}

func TestOverlayText(t *testing.T) {
	assert.Equal(t, "❤️❤️❤️❤️", Hearts(4, 4))
	assert.Equal(t, "❤️🤍🤍🤍", Hearts(1, 4))
	assert.Equal(t, "🤍🤍", Hearts(-3, 2))
	assert.Equal(t, "Score: 3 | Time left: 90s", ScoreTime(3, 90))
	assert.Equal(t, "3 / 8", Progress(2, 8))
	assert.Equal(t, "4 / 4", Progress(4, 4))
	assert.Equal(t, "Wrong! Correct answer: Danah",
		Feedback(model.Outcome{Result: model.RES_WRONG, Correct: "Danah"}))
	assert.Empty(t, Feedback(model.Outcome{Result: model.RES_NOOP}))
	assert.Equal(t, "Finish Adventure", ActionLabel(model.ACT_FINISH, model.SC_SHIP_QUIZ))
}
