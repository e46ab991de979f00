// Package view turns a model.Snapshot into screen geometry and overlay text.
// It knows nothing about the drawing library so both clients can share it.
package view

import (
	"fmt"
	"strings"

	"github.com/zucenko/ancienttales/model"
)

const (
	HEART_FULL  = "❤️"
	HEART_EMPTY = "🤍"
)

func Hearts(hearts, max int) string {
	if hearts < 0 {
		hearts = 0
	}
	if hearts > max {
		hearts = max
	}
	return strings.Repeat(HEART_FULL, hearts) + strings.Repeat(HEART_EMPTY, max-hearts)
}

func ScoreTime(score, remaining int) string {
	return fmt.Sprintf("Score: %d | Time left: %ds", score, remaining)
}

func Progress(cursor, total int) string {
	if total == 0 {
		return ""
	}
	n := cursor + 1
	if n > total {
		n = total
	}
	return fmt.Sprintf("%d / %d", n, total)
}

// Feedback is the line shown after an answer.
func Feedback(out model.Outcome) string {
	switch out.Result {
	case model.RES_CORRECT:
		return "Correct! +1 point"
	case model.RES_WRONG:
		return "Wrong! Correct answer: " + out.Correct
	}
	return ""
}

func ActionLabel(a model.ActionKind, scene model.Scene) string {
	switch a {
	case model.ACT_SUBMIT:
		return "Submit Answer"
	case model.ACT_NEXT:
		return "Next"
	case model.ACT_PROCEED:
		switch scene {
		case model.SC_SEACOAST:
			return "Proceed to Ship"
		case model.SC_PEARL_GAME:
			return "Proceed to Ship Quiz"
		}
		return "Proceed"
	case model.ACT_FINISH:
		return "Finish Adventure"
	case model.ACT_PLAY_AGAIN:
		return "Play Again"
	}
	return a.Name()
}
