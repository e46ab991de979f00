package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/ancienttales/model"
)

// Anim is what happens while a tween runs and after it ends.
type Anim struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Anim) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// then queues t to start when the current tween finishes.
func (a *Anim) then(t *gween.Tween) *Anim {
	next := &Anim{}
	a.nexts = append(a.nexts, func(g *Game) {
		g.Tweens[t] = next
	})
	return next
}

// updateTweens advances every running tween by dt seconds.
func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

// fadeIn brings a new screen up from black.
func (g *Game) fadeIn() {
	g.sceneAlpha = 0
	g.Tweens[gween.New(0, 1, .4, ease.OutQuad)] = &Anim{
		onChange: func(v float32) { g.sceneAlpha = float64(v) },
	}
}

// flashFeedback shows the answer line, holds it and fades it out. A new
// answer restarts the sequence.
func (g *Game) flashFeedback() {
	for _, t := range g.feedbackTweens {
		delete(g.Tweens, t)
	}
	g.feedbackAlpha = 1
	holdTween := gween.New(0, 1, 1.5, ease.Linear)
	fadeTween := gween.New(1, 0, .8, ease.InQuad)
	g.feedbackTweens = []*gween.Tween{holdTween, fadeTween}

	hold := &Anim{}
	fade := hold.then(fadeTween)
	fade.onChange = func(v float32) { g.feedbackAlpha = float64(v) }
	fade.addOnFinish(func() { g.View.Feedback = model.Outcome{} })
	g.Tweens[holdTween] = hold
}
