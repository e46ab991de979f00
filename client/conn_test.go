package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/way"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/ancienttales/model"
	"github.com/zucenko/ancienttales/server"
	"github.com/zucenko/ancienttales/view"
)

func newTestServer(t *testing.T) (*server.GameServer, string) {
	t.Helper()
	gs := server.NewGameServer(server.DefaultOptions())
	router := way.NewRouter()
	gs.Routes(router)
	ts := httptest.NewServer(router)
	t.Cleanup(func() {
		gs.Shutdown()
		ts.Close()
	})
	return gs, "ws" + strings.TrimPrefix(ts.URL, "http") + server.URI_WS
}

func next(t *testing.T, c *Conn) model.ServerMessage {
	t.Helper()
	select {
	case msg := <-c.Messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message from server")
	}
	return model.ServerMessage{}
}

func TestDialUnknownSession(t *testing.T) {
	_, url := newTestServer(t)

	c, res, err := Dial(url, "reaped-long-ago")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrSessionGone)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDialSendAndReceive(t *testing.T) {
	_, url := newTestServer(t)

	c, _, err := Dial(url, "")
	require.NoError(t, err)
	defer c.Close()

	first := next(t, c)
	assert.NotEmpty(t, first.SessionId)
	assert.Equal(t, model.SC_MENU, first.Snapshot.Scene)

	require.NoError(t, c.Send(model.Action{Kind: model.ACT_SELECT, Character: "nayhan"}))
	assert.Equal(t, model.SC_SEACOAST, next(t, c).Snapshot.Scene)
}

func TestConnectStartsOverWhenSessionIsGone(t *testing.T) {
	gs, url := newTestServer(t)

	st := view.NewState()
	c, err := Connect(url, st)
	require.NoError(t, err)
	msg := next(t, c)
	st.Receive(msg, time.Now())
	c.Close()

	require.NoError(t, gs.Remove(st.SessionId))
	old := st.SessionId

	c, err = Connect(url, st)
	require.NoError(t, err)
	defer c.Close()
	assert.False(t, st.Received)
	assert.Empty(t, st.SessionId)

	msg = next(t, c)
	assert.NotEqual(t, old, msg.SessionId)
	assert.Equal(t, model.SC_MENU, msg.Snapshot.Scene)
}

func TestConnectRejoinsLiveSession(t *testing.T) {
	_, url := newTestServer(t)

	st := view.NewState()
	c, err := Connect(url, st)
	require.NoError(t, err)
	st.Receive(next(t, c), time.Now())
	require.NoError(t, c.Send(model.Action{Kind: model.ACT_SELECT, Character: "dhabia"}))
	st.Receive(next(t, c), time.Now())
	c.Close()

	again, err := Connect(url, st)
	require.NoError(t, err)
	defer again.Close()
	msg := next(t, again)
	assert.Equal(t, st.SessionId, msg.SessionId)
	assert.Equal(t, model.SC_SEACOAST, msg.Snapshot.Scene)
}
