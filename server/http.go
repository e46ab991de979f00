package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ancienttales/model"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func sessionParam(r *http.Request) string {
	return way.Param(r.Context(), "id")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON encode %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := CodeFor(err)
	writeJSON(w, code.ToHttp(), errorResponse{Code: code.Name(), Error: err.Error()})
}

func (s *GameServer) handleNewSession(w http.ResponseWriter, r *http.Request) {
	gs := s.Create()
	s.reply(w, r, gs, model.Action{}, GAME_CREATED)
}

func (s *GameServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	gs, err := s.Get(sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	s.reply(w, r, gs, model.Action{}, GAME_READY)
}

func (s *GameServer) handleAction(w http.ResponseWriter, r *http.Request) {
	gs, err := s.Get(sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	var cm model.ClientMessage
	if err := json.NewDecoder(r.Body).Decode(&cm); err != nil {
		writeError(w, fmt.Errorf("%w: %v", ErrBadAction, err))
		return
	}
	s.reply(w, r, gs, cm.Action, GAME_READY)
}

func (s *GameServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Remove(sessionParam(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(GAME_DROPPED.ToHttp())
}

func (s *GameServer) reply(w http.ResponseWriter, r *http.Request, gs *GameSession, a model.Action, ok ResponseCode) {
	ctx, cancel := context.WithTimeout(r.Context(), s.Options.Timeout)
	defer cancel()
	msg, err := gs.Do(ctx, a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ok.ToHttp(), msg)
}
