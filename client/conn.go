// Package client is the player end of the /play websocket.
package client

import (
	"encoding/gob"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/ancienttales/model"
	"github.com/zucenko/ancienttales/view"
)

var ErrSessionGone = errors.New("session no longer exists on the server")

type Conn struct {
	ws       *websocket.Conn
	Messages chan model.ServerMessage
	Closed   chan struct{}

	writeMu sync.Mutex
}

// Dial joins the session named by sessionId, or starts a new one when it is
// empty. The handshake response is returned whenever the server sent one.
func Dial(serverURL, sessionId string) (*Conn, *http.Response, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, nil, err
	}
	if sessionId != "" {
		u.Path = u.Path + "/" + url.PathEscape(sessionId)
	}
	ws, res, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if res != nil && res.StatusCode == http.StatusNotFound {
			err = ErrSessionGone
		}
		return nil, res, err
	}
	c := &Conn{
		ws:       ws,
		Messages: make(chan model.ServerMessage, 10),
		Closed:   make(chan struct{}),
	}
	go c.loopRead()
	log.WithField("url", u.String()).Info("connected")
	return c, res, nil
}

// Connect rejoins the session st remembers. When the server no longer knows
// it, st is cleared and a fresh session is started.
func Connect(serverURL string, st *view.State) (*Conn, error) {
	c, _, err := Dial(serverURL, st.SessionId)
	if errors.Is(err, ErrSessionGone) && st.SessionId != "" {
		log.WithField("session", st.SessionId).Info("session gone, starting a new one")
		*st = *view.NewState()
		c, _, err = Dial(serverURL, "")
	}
	return c, err
}

func (c *Conn) loopRead() {
	defer close(c.Closed)
	for {
		_, r, err := c.ws.NextReader()
		if err != nil {
			log.Warnf("Conn.loopRead %v", err)
			return
		}
		msg := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&msg); err != nil {
			log.Warnf("Conn.loopRead cant decode %v", err)
			return
		}
		select {
		case c.Messages <- msg:
		default:
			// the game only draws the newest snapshot
			select {
			case <-c.Messages:
			default:
			}
			c.Messages <- msg
		}
	}
}

func (c *Conn) Send(a model.Action) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	w, err := c.ws.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(model.ClientMessage{Action: a}); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
