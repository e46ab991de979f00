package server

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_API = "/api/session"

func (s *GameServer) Routes(router *way.Router) {
	router.HandleFunc("GET", URI_WS, s.HandleHttpCall())
	router.HandleFunc("GET", URI_WS+"/:id", s.HandleHttpCall())
	router.HandleFunc("POST", URI_API, s.handleNewSession)
	router.HandleFunc("GET", URI_API+"/:id", s.handleGetSession)
	router.HandleFunc("POST", URI_API+"/:id/action", s.handleAction)
	router.HandleFunc("DELETE", URI_API+"/:id", s.handleDeleteSession)
}
