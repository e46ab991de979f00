package view

import (
	"github.com/zucenko/ancienttales/model"
)

type ButtonKind int

const (
	BTN_CHARACTER ButtonKind = iota + 1
	BTN_OPTION
	BTN_ACTION
	// BTN_TEXT is a question line; it is drawn but never hit
	BTN_TEXT
)

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Button is one clickable area. Option buttons only change the selection;
// action buttons produce Action.
type Button struct {
	Kind     ButtonKind
	Rect     Rect
	Label    string
	Question int
	Option   string
	Selected bool
	Disabled bool
	Action   model.Action
	// Image is drawn in ImageRect above the button
	Image    string
}

// ImageRect is the box above b reserved for its Image.
func (b Button) ImageRect() Rect {
	h := b.Rect.W
	if h > PORTRAIT_HEIGHT {
		h = PORTRAIT_HEIGHT
	}
	return Rect{X: b.Rect.X, Y: b.Rect.Y - GAP - h, W: b.Rect.W, H: h}
}

// Selection maps a question index to the option picked for it.
type Selection map[int]string

const (
	MARGIN     = 20
	ROW_HEIGHT = 36
	GAP        = 8
	HEADER     = 140

	PORTRAIT_HEIGHT = 320
)

// Layout places the buttons for a snapshot on a width x height screen.
// Questions stack from the header down, action buttons sit on the bottom row.
func Layout(snap model.Snapshot, sel Selection, width, height int) []Button {
	var buttons []Button

	if snap.Scene == model.SC_MENU {
		w := (width - 2*MARGIN - GAP) / 2
		for i, ch := range snap.Characters {
			buttons = append(buttons, Button{
				Kind:   BTN_CHARACTER,
				Rect:   Rect{X: MARGIN + i*(w+GAP), Y: height - MARGIN - ROW_HEIGHT, W: w, H: ROW_HEIGHT},
				Label:  "Play as " + ch.Name,
				Action: model.Action{Kind: model.ACT_SELECT, Character: ch.Id},
				Image:  ch.Portrait,
			})
		}
		return buttons
	}

	y := HEADER
	half := (width - 2*MARGIN) / 2
	for _, q := range snap.Questions {
		buttons = append(buttons, Button{
			Kind:     BTN_TEXT,
			Rect:     Rect{X: MARGIN, Y: y, W: width - 2*MARGIN, H: ROW_HEIGHT},
			Label:    q.Text,
			Question: q.Index,
		})
		y += ROW_HEIGHT
		for _, opt := range q.Options {
			buttons = append(buttons, Button{
				Kind:     BTN_OPTION,
				Rect:     Rect{X: MARGIN, Y: y, W: half, H: ROW_HEIGHT - GAP/2},
				Label:    opt,
				Question: q.Index,
				Option:   opt,
				Selected: sel[q.Index] == opt,
			})
			y += ROW_HEIGHT
		}
		if snap.Scene == model.SC_SEACOAST {
			// every seacoast question carries its own submit button
			buttons = append(buttons, submitButton(snap, sel, q.Index, Rect{X: MARGIN + half + GAP, Y: y - ROW_HEIGHT, W: half - GAP, H: ROW_HEIGHT - GAP/2}))
		}
		y += GAP
	}

	actions := snap.Actions
	x := MARGIN
	w := 220
	for _, a := range actions {
		if a == model.ACT_SUBMIT && snap.Scene == model.SC_SEACOAST {
			continue
		}
		r := Rect{X: x, Y: height - MARGIN - ROW_HEIGHT, W: w, H: ROW_HEIGHT}
		if a == model.ACT_SUBMIT && len(snap.Questions) > 0 {
			buttons = append(buttons, submitButton(snap, sel, snap.Questions[0].Index, r))
		} else {
			buttons = append(buttons, Button{
				Kind:   BTN_ACTION,
				Rect:   r,
				Label:  ActionLabel(a, snap.Scene),
				Action: model.Action{Kind: a},
			})
		}
		x += w + GAP
	}
	return buttons
}

func submitButton(snap model.Snapshot, sel Selection, question int, r Rect) Button {
	choice := sel[question]
	return Button{
		Kind:     BTN_ACTION,
		Rect:     r,
		Label:    ActionLabel(model.ACT_SUBMIT, snap.Scene),
		Question: question,
		Disabled: choice == "",
		Action:   model.Action{Kind: model.ACT_SUBMIT, Question: question, Choice: choice},
	}
}

// HitTest returns the enabled button under x, y.
func HitTest(buttons []Button, x, y int) (Button, bool) {
	for _, b := range buttons {
		if !b.Disabled && b.Kind != BTN_TEXT && b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

// Click applies a hit to the selection and returns the action to send, if any.
func Click(b Button, sel Selection) (model.Action, bool) {
	switch b.Kind {
	case BTN_OPTION:
		sel[b.Question] = b.Option
		return model.Action{}, false
	case BTN_CHARACTER, BTN_ACTION:
		return b.Action, true
	}
	return model.Action{}, false
}
