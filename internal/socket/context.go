package socket

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Emitter pushes an event back down the server's socket.
type Emitter interface {
	Emit(event models.EventType, data any) error
}

// connEmitter serializes compressed frames onto a gorilla connection.
// gorilla permits one concurrent writer, hence the mutex.
type connEmitter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (e *connEmitter) Emit(event models.EventType, data any) error {
	frame, err := EncodePacket(event, data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn.WriteMessage(websocket.BinaryMessage, frame)
}

// ServerContext is the per-connection state for one game server.
type ServerContext struct {
	ID      string
	Emitter Emitter

	svc *Services
}

func NewServerContext(id string, emitter Emitter, svc *Services) *ServerContext {
	return &ServerContext{ID: id, Emitter: emitter, svc: svc}
}

// Call sends an event to the game server, logging rather than failing the
// event loop on a broken pipe.
func (s *ServerContext) Call(ctx context.Context, event models.EventType, data any) {
	if err := s.Emitter.Emit(event, data); err != nil {
		s.svc.Logger.Warnw("Failed to emit event to server", "serverId", s.ID, "event", event, "error", err)
	}
}

func (s *ServerContext) currentMatchIDKey() string {
	return "server:" + s.ID + ":current_match_id"
}

func (s *ServerContext) lastAliveTimeKey() string {
	return "server:" + s.ID + ":last_alive_time"
}

// Match resolves the server's current match through the match cache.
func (s *ServerContext) Match(ctx context.Context) (*models.Match, error) {
	id, ok, err := s.svc.KV.GetString(ctx, s.currentMatchIDKey())
	if err != nil || !ok {
		return nil, err
	}
	return s.svc.Matches.Get(ctx, id)
}

func (s *ServerContext) SetCurrentMatchID(ctx context.Context, matchID string) error {
	return s.svc.KV.SetString(ctx, s.currentMatchIDKey(), matchID)
}

func (s *ServerContext) LastAliveTime(ctx context.Context) (int64, bool, error) {
	raw, ok, err := s.svc.KV.GetString(ctx, s.lastAliveTimeKey())
	if err != nil || !ok {
		return 0, false, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return ms, true, nil
}

// TouchAlive stamps the liveness key; called after every handled event so
// startup reconciliation knows when the server was last seen.
func (s *ServerContext) TouchAlive(ctx context.Context) error {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return s.svc.KV.SetString(ctx, s.lastAliveTimeKey(), now)
}
