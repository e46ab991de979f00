package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/zucenko/ancienttales/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
	ErrBadAction       = errors.New("malformed action")
)

// ResponseCode is how a transport reports the fate of a request.
type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_CREATED
	GAME_DROPPED
	GAME_NOT_FOUND
	GAME_INVALIDE
	GAME_CLOSED
	GAME_TIMEOUT
)

var responseCodes = [...]struct {
	name   string
	status int
}{
	GAME_READY:     {"ready", http.StatusOK},
	GAME_CREATED:   {"created", http.StatusCreated},
	GAME_DROPPED:   {"dropped", http.StatusNoContent},
	GAME_NOT_FOUND: {"not_found", http.StatusNotFound},
	GAME_INVALIDE:  {"invalid", http.StatusBadRequest},
	GAME_CLOSED:    {"closed", http.StatusGone},
	GAME_TIMEOUT:   {"timeout", http.StatusRequestTimeout},
}

func (h ResponseCode) ToHttp() int {
	if h < 0 || int(h) >= len(responseCodes) {
		return http.StatusServiceUnavailable
	}
	return responseCodes[h].status
}

func (h ResponseCode) Name() string {
	if h < 0 || int(h) >= len(responseCodes) {
		return fmt.Sprintf("n/a:%d", h)
	}
	return responseCodes[h].name
}

// CodeFor classifies an error returned while serving a session.
func CodeFor(err error) ResponseCode {
	switch {
	case err == nil:
		return GAME_READY
	case errors.Is(err, ErrSessionNotFound):
		return GAME_NOT_FOUND
	case errors.Is(err, ErrBadAction):
		return GAME_INVALIDE
	case errors.Is(err, ErrSessionClosed):
		return GAME_CLOSED
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return GAME_TIMEOUT
	default:
		return GAME_INVALIDE
	}
}

var sessionStateNames = [...]string{GS_NEW: "GS_NEW", GS_PLAY: "GS_PLAY", GS_OVER: "GS_OVER"}

func (gss GameSessionState) Name() string {
	if gss < 0 || int(gss) >= len(sessionStateNames) {
		return fmt.Sprintf("n/a:%d", gss)
	}
	return sessionStateNames[gss]
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	}
	return "N/A"
}

// PlayerConnectRequest hands an upgraded connection to the session loop.
// GameOver is closed once the connection's writer has finished.
type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

// PlayerEvent is an action waiting for the session loop. Reply, when set,
// receives the resulting message; connected players always get it too.
type PlayerEvent struct {
	Player int32
	Action model.Action
	Reply  chan model.ServerMessage
}
