package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/ancienttales/model"
)

type GameServer struct {
	Machine  *model.Machine
	Upgrader *websocket.Upgrader
	Options  Options

	mutex    sync.RWMutex
	sessions map[string]*GameSession
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_OVER
)

// GameSession owns one player's Session. Only Loop touches Session and
// PlayerSessions, so actions are applied strictly one after another.
type GameSession struct {
	Id      string
	State   GameSessionState
	Session model.Session
	Machine *model.Machine

	PlayerSessions        []*PlayerSession
	Errors                chan int32
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest

	nextPlayer   int32
	lastActivity atomic.Int64
	done         chan struct{}
	stopOnce     sync.Once
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

// PlayerSession is one websocket connection attached to a GameSession.
type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
