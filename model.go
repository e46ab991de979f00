package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten"
	"github.com/tanema/gween"
	"golang.org/x/image/font"

	"github.com/zucenko/ancienttales/client"
	"github.com/zucenko/ancienttales/config"
	"github.com/zucenko/ancienttales/view"
)

type GameState int

const (
	CONNECTING GameState = iota + 1
	PLAYING
	DISCONNECTED
)

func (s GameState) Name() string {
	switch s {
	case CONNECTING:
		return "CONNECTING"
	case PLAYING:
		return "PLAYING"
	case DISCONNECTED:
		return "DISCONNECTED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State  GameState
	Config *config.Client
	Conn   *client.Conn
	View   *view.State

	Assets    *Assets
	Font      font.Face
	TitleFont font.Face
	Panel     *Nine
	pixel     *ebiten.Image

	Buttons []view.Button
	strokes map[*Stroke]struct{}
	Tweens  map[*gween.Tween]*Anim

	feedbackTweens []*gween.Tween

	sceneAlpha    float64
	feedbackAlpha float64
	lastError     string
}
