package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	socketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mars_socket_connections",
		Help: "Currently connected game servers",
	})
	socketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mars_socket_events_total",
		Help: "Events received per type",
	}, []string{"event"})
	socketDecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_socket_decode_failures_total",
		Help: "Frames that could not be inflated or parsed",
	})
)

// Server accepts game server connections at /minecraft and feeds decoded
// events through a per-connection router.
type Server struct {
	token    string
	svc      *Services
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

func NewServer(token string, svc *Services) *Server {
	return &Server{
		token: token,
		svc:   svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Game servers are authenticated by token, not origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: svc.Logger,
	}
}

// Handler exposes the websocket endpoint for mounting on an http.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/minecraft", s.handleMinecraft)
	return mux
}

func (s *Server) handleMinecraft(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	token := r.URL.Query().Get("token")
	if id == "" || token != s.token {
		s.logger.Warnw("Rejected socket handshake", "serverId", id, "remote", r.RemoteAddr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"code":    "UNAUTHORIZED_EXCEPTION",
			"message": "Invalid server credentials",
			"error":   true,
		})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("Websocket upgrade failed", "serverId", id, "error", err)
		return
	}

	go s.serve(conn, id)
}

// serve is the per-connection event loop. It owns the connection and runs
// until the peer disconnects or an event handler fails hard.
func (s *Server) serve(conn *websocket.Conn, id string) {
	defer conn.Close()
	socketConnections.Inc()
	defer socketConnections.Dec()

	server := NewServerContext(id, &connEmitter{conn: conn}, s.svc)
	router := NewRouter(server, s.svc)
	ctx := context.Background()

	s.logger.Infow("Game server connected", "serverId", id)
	defer s.logger.Infow("Game server disconnected", "serverId", id)

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Infow("Connection closed", "serverId", id)
			} else {
				s.logger.Warnw("Socket read failed", "serverId", id, "error", err)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		packet, err := DecodePacket(frame)
		if err != nil {
			socketDecodeFailures.Inc()
			s.logger.Warnw("Dropping undecodable frame", "serverId", id, "error", err)
			continue
		}
		socketEventsTotal.WithLabelValues(string(packet.Event)).Inc()

		if err := s.handle(ctx, server, router, packet); err != nil {
			s.logger.Errorw("Event handler failed, closing connection",
				"serverId", id, "event", packet.Event, "error", err)
			msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "event handling failed")
			conn.WriteMessage(websocket.CloseMessage, msg)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, server *ServerContext, router *Router, packet *Packet) error {
	if err := router.Route(ctx, packet.Event, packet.Data); err != nil {
		return fmt.Errorf("route %s: %w", packet.Event, err)
	}
	if err := server.TouchAlive(ctx); err != nil {
		s.logger.Warnw("Failed to stamp liveness", "serverId", server.ID, "error", err)
	}
	return nil
}
