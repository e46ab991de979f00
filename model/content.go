package model

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type CharacterInfo struct {
	Id       Character `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Portrait string    `yaml:"portrait" json:"portrait"`
}

type CrewMember struct {
	Portrait    string `yaml:"portrait"`
	Description string `yaml:"description"`
}

type Question struct {
	Text    string   `yaml:"question"`
	Options []string `yaml:"options"`
	Correct string   `yaml:"correct"`
}

type PearlQuestion struct {
	Image    string `yaml:"image"`
	Question `yaml:",inline"`
}

// Backdrop names the assets a render surface composes for one scene.
type Backdrop struct {
	Background string   `yaml:"background" json:"background"`
	Title      string   `yaml:"title" json:"title"`
	Props      []string `yaml:"props" json:"props,omitempty"`
}

type Content struct {
	Characters  []CharacterInfo     `yaml:"characters"`
	Crew        []CrewMember        `yaml:"crew"`
	DivingSteps []string            `yaml:"diving_steps"`
	Pearls      []PearlQuestion     `yaml:"pearls"`
	ShipQuiz    []Question          `yaml:"ship_quiz"`
	Seacoast    []Question          `yaml:"seacoast"`
	Backdrops   map[string]Backdrop `yaml:"backdrops"`
}

var (
	ErrNoCharacters = errors.New("content has no characters")
	ErrEmptyCrew    = errors.New("crew sequence is empty")
	ErrEmptyDiving  = errors.New("diving steps are empty")
)

// DefaultContent returns the tables shipped with the game.
func DefaultContent() *Content {
	c, err := DecodeContent(bytes.NewReader(defaultContent))
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return c
}

func DecodeContent(r io.Reader) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) Validate() error {
	if len(c.Characters) == 0 {
		return ErrNoCharacters
	}
	if len(c.Crew) == 0 {
		return ErrEmptyCrew
	}
	if len(c.DivingSteps) == 0 {
		return ErrEmptyDiving
	}
	for i, q := range c.Seacoast {
		if err := q.validate(); err != nil {
			return fmt.Errorf("seacoast question %d: %w", i, err)
		}
	}
	for i, p := range c.Pearls {
		if err := p.validate(); err != nil {
			return fmt.Errorf("pearl question %d: %w", i, err)
		}
	}
	for i, q := range c.ShipQuiz {
		if err := q.validate(); err != nil {
			return fmt.Errorf("ship question %d: %w", i, err)
		}
	}
	return nil
}

func (q Question) validate() error {
	if len(q.Options) == 0 {
		return errors.New("no options")
	}
	if !q.HasOption(q.Correct) {
		return fmt.Errorf("correct option %q is not among the options", q.Correct)
	}
	return nil
}

func (q Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

func (c *Content) Character(id Character) (CharacterInfo, bool) {
	for _, ch := range c.Characters {
		if ch.Id == id {
			return ch, true
		}
	}
	return CharacterInfo{}, false
}

func (c *Content) Backdrop(s Scene) Backdrop {
	return c.Backdrops[s.String()]
}

func (c *Content) CrewWalk() Walk[CrewMember]     { return NewWalk(c.Crew) }
func (c *Content) DivingWalk() Walk[string]       { return NewWalk(c.DivingSteps) }
func (c *Content) PearlWalk() Walk[PearlQuestion] { return NewWalk(c.Pearls) }
func (c *Content) ShipQuizWalk() Walk[Question]   { return NewWalk(c.ShipQuiz) }
