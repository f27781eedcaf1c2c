package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/onkernel/sandboxd/lib/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TerminalControl is a JSON text frame that controls the session instead of
// being forwarded as input
type TerminalControl struct {
	Type string `json:"type"` // "resize"
	Cols uint   `json:"cols"`
	Rows uint   `json:"rows"`
}

// controlMessage reports whether data is a control frame
func controlMessage(data []byte) (*TerminalControl, bool) {
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	var msg TerminalControl
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "resize" {
		return nil, false
	}
	return &msg, true
}

// TerminalHandler attaches an interactive shell to a sandbox over a
// WebSocket. Text and binary frames are stdin; output is sent as binary
// frames.
func (s *ApiService) TerminalHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	id := chi.URLParam(r, "id")

	// Fail before the upgrade so clients get a JSON error
	if _, err := s.SandboxManager.GetSandbox(ctx, id); err != nil {
		ResponseError(w, r, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ErrorContext(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	session, err := s.SandboxManager.OpenTerminal(sessionCtx, id)
	if err != nil {
		log.ErrorContext(ctx, "failed to open terminal", "error", err, "id", id)
		ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to open terminal"))
		return
	}

	start := time.Now()
	log.InfoContext(ctx, "terminal session started", "id", id)

	var writeMu sync.Mutex
	outputDone := make(chan struct{})
	go func() {
		defer close(outputDone)
		buf := make([]byte, 32*1024)
		for {
			n, err := session.Read(buf)
			if n > 0 {
				writeMu.Lock()
				werr := ws.WriteMessage(websocket.BinaryMessage, buf[:n])
				writeMu.Unlock()
				if werr != nil {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.DebugContext(ctx, "terminal output ended", "error", err)
				}
				writeMu.Lock()
				ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				writeMu.Unlock()
				// Unblock the input loop
				ws.Close()
				return
			}
		}
	}()

	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.DebugContext(ctx, "terminal input ended", "error", err)
			}
			break
		}
		if msgType == websocket.TextMessage {
			if ctl, ok := controlMessage(data); ok {
				if err := session.Resize(sessionCtx, ctl.Cols, ctl.Rows); err != nil {
					log.WarnContext(ctx, "terminal resize failed", "error", err)
				}
				continue
			}
		}
		if _, err := session.Write(data); err != nil {
			break
		}
	}

	session.Close()
	cancel()
	<-outputDone
	log.InfoContext(ctx, "terminal session ended", "id", id, "duration", time.Since(start))
}
