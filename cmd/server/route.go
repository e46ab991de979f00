package main

import (
	"net/http"

	"github.com/matryer/way"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.GameServer.Routes(s.router)
	s.router.HandleFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
