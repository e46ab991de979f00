package server

import (
	"context"
	"encoding/gob"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ancienttales/model"
)

// NewGameServer fills every zero field of opts from DefaultOptions.
func NewGameServer(opts Options) *GameServer {
	def := DefaultOptions()
	if opts.Content == nil {
		opts.Content = def.Content
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = def.SessionTTL
	}
	if opts.ReapEvery <= 0 {
		opts.ReapEvery = def.ReapEvery
	}
	return &GameServer{
		Machine:  model.NewMachine(opts.Content, opts.Clock),
		Upgrader: &websocket.Upgrader{},
		Options:  opts,
		sessions: make(map[string]*GameSession),
	}
}

func (s *GameServer) Create() *GameSession {
	gs := &GameSession{
		Id:                    uuid.NewString(),
		State:                 GS_NEW,
		Session:               model.NewSession(),
		Machine:               s.Machine,
		PlayerSessions:        make([]*PlayerSession, 0),
		Errors:                make(chan int32),
		Events:                make(chan PlayerEvent, 16),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		done:                  make(chan struct{}),
	}
	gs.touch()
	go gs.Loop()

	s.mutex.Lock()
	s.sessions[gs.Id] = gs
	s.mutex.Unlock()
	log.WithField("session", gs.Id).Info("session created")
	return gs
}

func (s *GameServer) Get(id string) (*GameSession, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	gs, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return gs, nil
}

func (s *GameServer) Remove(id string) error {
	s.mutex.Lock()
	gs, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mutex.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	gs.Stop()
	log.WithField("session", id).Info("session removed")
	return nil
}

func (s *GameServer) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// Loop reaps sessions nobody has touched for SessionTTL until ctx ends.
func (s *GameServer) Loop(ctx context.Context) {
	log.Printf("GameServer.Loop starting")
	ticker := time.NewTicker(s.Options.ReapEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case <-ticker.C:
			s.Reap(time.Now())
		}
	}
}

func (s *GameServer) Reap(now time.Time) int {
	var idle []*GameSession
	s.mutex.Lock()
	for id, gs := range s.sessions {
		if now.Sub(gs.LastActivity()) > s.Options.SessionTTL {
			idle = append(idle, gs)
			delete(s.sessions, id)
		}
	}
	s.mutex.Unlock()
	for _, gs := range idle {
		log.WithField("session", gs.Id).Info("reaping idle session")
		gs.Stop()
	}
	return len(idle)
}

func (s *GameServer) Shutdown() {
	s.mutex.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*GameSession)
	s.mutex.Unlock()
	for _, gs := range sessions {
		gs.Stop()
	}
}

// HandleHttpCall upgrades to a websocket bound to the session named by the
// id path parameter, or to a fresh session when there is none.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("HandleHttpCall - connection received")

		var gs *GameSession
		if id := sessionParam(r); id != "" {
			found, err := s.Get(id)
			if err != nil {
				w.WriteHeader(CodeFor(err).ToHttp())
				return
			}
			gs = found
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		if gs == nil {
			gs = s.Create()
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gs.PlayerConnectRequests <- PlayerConnectRequest{Con: con, GameOver: gameOver}:
		case <-gs.done:
			return
		case <-time.After(s.Options.Timeout):
			log.Warn("PlayerConnectRequests TIMEOUTED")
			return
		}

		log.WithField("session", gs.Id).Debug("HandleHttpCall waits for game over")
		select {
		case <-gameOver:
		case <-r.Context().Done():
		}
	}
}

// Do runs one action through the session loop and waits for its result.
func (gs *GameSession) Do(ctx context.Context, a model.Action) (model.ServerMessage, error) {
	reply := make(chan model.ServerMessage, 1)
	select {
	case gs.Events <- PlayerEvent{Action: a, Reply: reply}:
	case <-gs.done:
		return model.ServerMessage{}, ErrSessionClosed
	case <-ctx.Done():
		return model.ServerMessage{}, ctx.Err()
	}
	select {
	case msg := <-reply:
		return msg, nil
	case <-gs.done:
		return model.ServerMessage{}, ErrSessionClosed
	case <-ctx.Done():
		return model.ServerMessage{}, ctx.Err()
	}
}

func (gs *GameSession) Stop() {
	gs.stopOnce.Do(func() { close(gs.done) })
}

func (gs *GameSession) Done() <-chan struct{} {
	return gs.done
}

func (gs *GameSession) LastActivity() time.Time {
	return time.Unix(0, gs.lastActivity.Load())
}

func (gs *GameSession) touch() {
	gs.lastActivity.Store(time.Now().UnixNano())
}

func (gs *GameSession) setState(st GameSessionState) {
	if gs.State == st {
		return
	}
	log.WithFields(log.Fields{"session": gs.Id, "from": gs.State.Name(), "to": st.Name()}).Debug("session state")
	gs.State = st
}

func (ps *PlayerSession) setState(st PlayerSessionState) {
	log.WithFields(log.Fields{
		"session": ps.GameSession.Id,
		"player":  ps.Id,
		"from":    ps.State.Name(),
		"to":      st.Name(),
	}).Debug("player state")
	ps.State = st
}

func (gs *GameSession) Loop() {
	log.WithField("session", gs.Id).Debug("GameSession.Loop start")
	defer gs.closePlayers()
	for {
		select {
		case <-gs.done:
			gs.setState(GS_OVER)
			return
		case pcr := <-gs.PlayerConnectRequests:
			gs.touch()
			ps := gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.setState(GS_PLAY)
			ps.setState(PS_PLAY)
			ps.send(gs.message(nil))
		case errPlayer := <-gs.Errors:
			gs.dropPlayer(errPlayer)
		case pe := <-gs.Events:
			gs.touch()
			msg := gs.Turn(pe)
			if pe.Reply != nil {
				pe.Reply <- msg
			}
			for _, ps := range gs.PlayerSessions {
				ps.send(msg)
			}
		}
	}
}

// Turn applies one event to the session. ACT_NONE just reads the snapshot.
func (gs *GameSession) Turn(pe PlayerEvent) model.ServerMessage {
	if pe.Action.Kind == model.ACT_NONE {
		return gs.message(nil)
	}
	from := gs.Session.Scene
	out := gs.Machine.Apply(&gs.Session, pe.Action)
	fields := log.Fields{
		"session": gs.Id,
		"action":  pe.Action.Kind.Name(),
		"result":  out.Result.Name(),
	}
	if gs.Session.Scene != from {
		fields["from"] = from.String()
		fields["to"] = gs.Session.Scene.String()
		log.WithFields(fields).Debug("scene changed")
	} else {
		log.WithFields(fields).Debug("action applied")
	}
	return gs.message([]model.Outcome{out})
}

func (gs *GameSession) message(feedback []model.Outcome) model.ServerMessage {
	return model.ServerMessage{
		SessionId: gs.Id,
		Snapshot:  gs.Machine.Snapshot(gs.Session),
		Feedback:  feedback,
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) *PlayerSession {
	gs.nextPlayer++
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             gs.nextPlayer,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	log.WithFields(log.Fields{"session": gs.Id, "player": ps.Id}).Info("player connected")
	return ps
}

func (gs *GameSession) dropPlayer(id int32) {
	for i, ps := range gs.PlayerSessions {
		if ps.Id == id {
			ps.setState(PS_ERR)
			close(ps.MessagesToSend)
			gs.PlayerSessions = append(gs.PlayerSessions[:i], gs.PlayerSessions[i+1:]...)
			log.WithFields(log.Fields{"session": gs.Id, "player": id}).Info("player left")
			return
		}
	}
}

func (gs *GameSession) closePlayers() {
	for _, ps := range gs.PlayerSessions {
		ps.setState(PS_OVER)
		close(ps.MessagesToSend)
	}
	gs.PlayerSessions = nil
}

// send never blocks the session loop; a stalled client loses messages.
func (ps *PlayerSession) send(msg model.ServerMessage) {
	select {
	case ps.MessagesToSend <- msg:
	default:
		log.Warnf("Dropping message for player %d, MessagesToSend FULL", ps.Id)
	}
}

func (ps *PlayerSession) reportError() {
	select {
	case ps.GameSession.Errors <- ps.Id:
	case <-ps.GameSession.done:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Debug("LoopChannelRead STARTED")
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, net.ErrClosed) {
				log.Debugf("LoopChannelRead err reading message from Conn %v", err)
			}
			ps.reportError()
			break
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			ps.reportError()
			break
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{Player: ps.Id, Action: cm.Action}:
		case <-ps.GameSession.done:
			return
		}
	}
	log.Debug("LoopChannelRead ENDED")
}

// LoopChannelWrite runs until the session loop closes MessagesToSend, then
// releases the http handler through GameOver.
func (ps *PlayerSession) LoopChannelWrite() {
	log.Debug("PlayerSession.LoopChannelWrite STARTED")
	defer close(ps.GameOver)
	failed := false
	for mes := range ps.MessagesToSend {
		if failed {
			continue
		}
		if err := ps.write(mes); err != nil {
			log.Warnf("PlayerSession.LoopChannelWrite %v", err)
			failed = true
			ps.reportError()
			continue
		}
		ps.DebugOutMessages++
	}
	log.Debug("LoopChannelWrite ENDED")
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
