package model

import "fmt"

type ServerMessage struct {
	SessionId string    `json:"sessionId"`
	Snapshot  Snapshot  `json:"snapshot"`
	Feedback  []Outcome `json:"feedback,omitempty"`
}

type QuestionView struct {
	Index   int      `json:"index"`
	Image   string   `json:"image,omitempty"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Snapshot is everything a render surface needs to draw the current scene.
type Snapshot struct {
	Scene        Scene           `json:"scene"`
	Character    Character       `json:"character,omitempty"`
	Score        int             `json:"score"`
	Hearts       int             `json:"hearts"`
	MaxHearts    int             `json:"maxHearts"`
	Remaining    int             `json:"remaining"`
	Cursor       int             `json:"cursor"`
	Total        int             `json:"total"`
	Backdrop     Backdrop        `json:"backdrop"`
	Portrait     string          `json:"portrait,omitempty"`
	// CrewPortrait is the crew member being introduced on the ship.
	CrewPortrait string          `json:"crewPortrait,omitempty"`
	Text         string          `json:"text,omitempty"`
	Questions    []QuestionView  `json:"questions,omitempty"`
	Characters   []CharacterInfo `json:"characters,omitempty"`
	Actions      []ActionKind    `json:"actions"`
}

func (s Snapshot) Can(a ActionKind) bool {
	for _, k := range s.Actions {
		if k == a {
			return true
		}
	}
	return false
}

func (m *Machine) Snapshot(s Session) Snapshot {
	snap := Snapshot{
		Scene:     s.Scene,
		Character: s.Character,
		Score:     s.Score,
		Hearts:    s.Hearts,
		MaxHearts: MAX_HEARTS,
		Remaining: TIME_BUDGET,
		Backdrop:  m.Content.Backdrop(s.Scene),
		Actions:   m.Available(s),
	}
	if ch, ok := m.Content.Character(s.Character); ok {
		snap.Portrait = ch.Portrait
	}

	switch s.Scene {
	case SC_MENU:
		snap.Characters = m.Content.Characters
	case SC_SEACOAST:
		for i, q := range m.Content.Seacoast {
			snap.Questions = append(snap.Questions, questionView(i, "", q))
		}
	case SC_SHIP_INTRO:
		crew := m.Content.CrewWalk()
		snap.Cursor, snap.Total = s.CrewIndex, crew.Len()
		if c, ok := crew.Current(s.CrewIndex); ok {
			snap.CrewPortrait = c.Portrait
			snap.Text = c.Description
		}
	case SC_DIVING:
		steps := m.Content.DivingWalk()
		snap.Cursor, snap.Total = s.DivingStep, steps.Len()
		snap.Text, _ = steps.Current(s.DivingStep)
	case SC_PEARL_GAME:
		pearls := m.Content.PearlWalk()
		snap.Cursor, snap.Total = s.PearlIndex, pearls.Len()
		snap.Remaining = m.Remaining(s)
		if p, ok := pearls.Current(s.PearlIndex); ok {
			snap.Questions = []QuestionView{questionView(s.PearlIndex, p.Image, p.Question)}
		}
	case SC_SHIP_QUIZ:
		quiz := m.Content.ShipQuizWalk()
		snap.Cursor, snap.Total = s.ShipQuestionIndex, quiz.Len()
		if q, ok := quiz.Current(s.ShipQuestionIndex); ok {
			snap.Questions = []QuestionView{questionView(s.ShipQuestionIndex, "", q)}
		}
	case SC_SUMMARY:
		name := string(s.Character)
		if ch, ok := m.Content.Character(s.Character); ok {
			name = ch.Name
		}
		snap.Text = fmt.Sprintf("Well done, %s! Your total score: %d", name, s.Score)
	}
	return snap
}

func questionView(i int, image string, q Question) QuestionView {
	return QuestionView{
		Index:   i,
		Image:   image,
		Text:    q.Text,
		Options: append([]string(nil), q.Options...),
	}
}
