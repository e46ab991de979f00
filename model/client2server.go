package model

// ClientMessage is what a surface sends for each player input.
type ClientMessage struct {
	Action Action `json:"action"`
}
