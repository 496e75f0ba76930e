package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pot-code/regform/internal/domain"
	"github.com/pot-code/regform/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// WebsocketOption heartbeat and framing settings
type WebsocketOption struct {
	PongWait  time.Duration // peers silent for longer are dropped
	WriteWait time.Duration // deadline of a single write
	ReadLimit int64         // maximum frame size
}

// Websocket upgrades requests and keeps the connection alive with pings
type Websocket struct {
	upgrader     websocket.Upgrader
	pongWait     time.Duration
	writeWait    time.Duration
	pingInterval time.Duration
	readLimit    int64
}

// NewWebsocket zero values in option fall back to 30s pong wait, 10s write wait and 4KiB frames
func NewWebsocket(option *WebsocketOption) *Websocket {
	ws := &Websocket{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			HandshakeTimeout: 3 * time.Second,
		},
		pongWait:  30 * time.Second,
		writeWait: 10 * time.Second,
		readLimit: 4096,
	}
	if option != nil {
		if option.PongWait > 0 {
			ws.pongWait = option.PongWait
		}
		if option.WriteWait > 0 {
			ws.writeWait = option.WriteWait
		}
		if option.ReadLimit > 0 {
			ws.readLimit = option.ReadLimit
		}
	}
	ws.pingInterval = ws.pongWait * 9 / 10
	return ws
}

// IsUpgrade reports whether r asks for a websocket
func (ws *Websocket) IsUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// LiveConn connection handed to live handlers
type LiveConn struct {
	*websocket.Conn
	writeWait time.Duration
}

// WriteJSON write v as one text frame within the write deadline
func (lc *LiveConn) WriteJSON(v interface{}) error {
	lc.SetWriteDeadline(time.Now().Add(lc.writeWait))
	return lc.Conn.WriteJSON(v)
}

// WithHeartbeat wrap handler function with heartbeat probe
//
// handler is called in a loop until it returns an error, the request stays
// open for the whole session.
func (ws *Websocket) WithHeartbeat(handler func(context.Context, *LiveConn) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := ws.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// the upgrader already replied
			return nil
		}
		conn.SetReadLimit(ws.readLimit)
		conn.SetReadDeadline(time.Now().Add(ws.pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(ws.pongWait))
			return nil
		})

		done := make(chan struct{})
		go ws.heartbeatRoutine(conn, done)
		ws.processRoutine(c.Request().Context(), &LiveConn{conn, ws.writeWait}, handler)
		close(done)
		return nil
	}
}

func (ws *Websocket) heartbeatRoutine(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(ws.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ws.writeWait)); err != nil {
				return
			}
		}
	}
}

func (ws *Websocket) processRoutine(ctx context.Context, conn *LiveConn, handler func(context.Context, *LiveConn) error) {
	defer conn.Close()
	logger := logging.ExtractLoggerFromContext(ctx)
	for {
		if err := handler(ctx, conn); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Live session ended", zap.Error(err))
			}
			return
		}
	}
}

type liveFrame struct {
	Event    string          `json:"event"`
	Field    string          `json:"field"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

type liveReply struct {
	Results []*domain.Result `json:"results"`
}

type liveError struct {
	Error string `json:"error"`
}

// HandleLive answer one form event frame with the results of the fields it triggers.
//
// Malformed frames are answered with an error frame and the session goes on.
func (rh *RegistrationHandler) HandleLive(ctx context.Context, conn *LiveConn) error {
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return err
	}

	frame := new(liveFrame)
	if err := json.Unmarshal(payload, frame); err != nil {
		return conn.WriteJSON(&liveError{"malformed frame: " + err.Error()})
	}
	event, err := domain.ParseEvent(frame.Event)
	if err != nil {
		return conn.WriteJSON(&liveError{err.Error()})
	}
	var field domain.Field
	if event != domain.EventSubmit {
		if field, err = domain.ParseField(frame.Field); err != nil {
			return conn.WriteJSON(&liveError{err.Error()})
		}
	}

	results := rh.registrationUseCase.Live(ctx, event, field, &frame.Snapshot)
	if results == nil {
		results = []*domain.Result{}
	}
	return conn.WriteJSON(&liveReply{Results: results})
}
