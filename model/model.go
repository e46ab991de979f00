package model

import (
	"fmt"
	"time"
)

const (
	MAX_HEARTS  = 4
	TIME_BUDGET = 120 // seconds for the pearl game
)

type Scene int

const (
	SC_MENU Scene = iota
	SC_SEACOAST
	SC_SHIP_INTRO
	SC_DIVING
	SC_PEARL_GAME
	SC_SHIP_QUIZ
	SC_SUMMARY
)

var sceneNames = []string{
	"menu",
	"seacoast",
	"ship_intro",
	"diving_process",
	"pearl_game",
	"ship_quiz",
	"summary",
}

func (s Scene) String() string {
	if s < 0 || int(s) >= len(sceneNames) {
		return fmt.Sprintf("n/a:%d", s)
	}
	return sceneNames[s]
}

func (s Scene) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scene) UnmarshalText(b []byte) error {
	parsed, err := ParseScene(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseScene(name string) (Scene, error) {
	for i, n := range sceneNames {
		if n == name {
			return Scene(i), nil
		}
	}
	return SC_MENU, fmt.Errorf("unknown scene %q", name)
}

// Character is empty until the player picks one on the menu.
type Character string

const CHAR_NONE Character = ""

type Session struct {
	Scene      Scene
	Character  Character
	Score      int
	Hearts     int
	TimerStart time.Time

	CrewIndex         int
	DivingStep        int
	PearlIndex        int
	ShipQuestionIndex int
}

func NewSession() Session {
	return Session{
		Scene:  SC_MENU,
		Hearts: MAX_HEARTS,
	}
}

// Reset puts the session back to the state of a fresh playthrough.
func (s *Session) Reset() {
	*s = NewSession()
}
