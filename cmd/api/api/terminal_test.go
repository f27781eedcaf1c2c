package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlMessage(t *testing.T) {
	ctl, ok := controlMessage([]byte(`{"type":"resize","cols":120,"rows":40}`))
	require.True(t, ok)
	assert.Equal(t, uint(120), ctl.Cols)
	assert.Equal(t, uint(40), ctl.Rows)

	for _, input := range []string{"ls -la\n", `{"type":"paste"}`, `{broken`, ""} {
		_, ok := controlMessage([]byte(input))
		assert.False(t, ok, input)
	}
}

func TestTerminal(t *testing.T) {
	ts := newTestService(t)
	sb := createSandbox(t, ts)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/sandboxes/" + sb.ID + "/terminal"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"resize","cols":100,"rows":30}`)))
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("echo hi\n")))

	// The fake session echoes its input; resize frames are not forwarded
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	msgType, data, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, msgType)
	assert.Equal(t, "echo hi\n", string(data))

	sessions := ts.fake.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, [][2]uint{{100, 30}}, sessions[0].Sizes())
}

func TestTerminal_SandboxNotFound(t *testing.T) {
	ts := newTestService(t)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/sandboxes/missing/terminal"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
