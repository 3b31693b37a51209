// Package stream broadcasts live roll state over WebSockets.
package stream

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/roll"
)

const tickInterval = 50 * time.Millisecond

// Server steps one shared session and pushes its state to every
// connected client at a fixed cadence. Clients drive it with roll and
// clear commands.
type Server struct {
	session *roll.Session
	mu      sync.Mutex // guards session and impacts
	impacts []impactMessage

	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]*sync.Mutex
	clientsMu sync.RWMutex

	// TimeScale is simulated seconds per wall second. 1 plays rolls in
	// real time.
	TimeScale float64
}

func NewServer(params phys.Params, seed int64) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]*sync.Mutex),
		TimeScale: 1,
	}
	s.session = roll.NewSession(phys.NewWorld(params, seed), roll.SinkFunc(func(ev roll.Event) {
		s.impacts = append(s.impacts, impactMessage{
			Kind:  ev.Kind.String(),
			Speed: ev.Speed,
			X:     ev.X,
		})
	}))
	return s
}

type poseMessage struct {
	ID      int        `json:"id"`
	Kind    string     `json:"kind"`
	Pos     [3]float64 `json:"pos"`
	Rot     [4]float64 `json:"rot"`
	Settled bool       `json:"settled"`
}

type impactMessage struct {
	Kind  string  `json:"kind"`
	Speed float64 `json:"speed"`
	X     float64 `json:"x"`
}

type stateMessage struct {
	Type    string          `json:"type"`
	Phase   string          `json:"phase"`
	Elapsed float64         `json:"elapsed"`
	Poses   []poseMessage   `json:"poses"`
	Results []int           `json:"results,omitempty"`
	Impacts []impactMessage `json:"impacts,omitempty"`
}

type commandMessage struct {
	Action string `json:"action"`
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
}

// Handler returns the WebSocket upgrade handler, mountable at any path.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		connMu := &sync.Mutex{}
		s.clientsMu.Lock()
		s.clients[conn] = connMu
		s.clientsMu.Unlock()
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
		}()

		slog.Info("client connected", "remote", conn.RemoteAddr())
		s.send(conn, connMu, s.snapshot())

		for {
			var cmd commandMessage
			if err := conn.ReadJSON(&cmd); err != nil {
				slog.Info("client disconnected", "remote", conn.RemoteAddr())
				return
			}
			s.handleCommand(cmd)
		}
	}
}

func (s *Server) handleCommand(cmd commandMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Action {
	case "roll":
		slog.Info("roll requested", "kind", cmd.Kind, "count", cmd.Count)
		s.session.RollNamed(cmd.Kind, cmd.Count)
	case "clear":
		s.session.Clear()
	default:
		slog.Warn("unknown command", "action", cmd.Action)
	}
}

// Run steps the session and broadcasts until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.session.Step(tickInterval.Seconds() * s.TimeScale)
			msg := s.snapshotLocked()
			s.mu.Unlock()
			s.broadcast(msg)
		}
	}
}

// ListenAndServe mounts the handler at /ws, starts the step loop and
// serves until the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	go s.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", s.Handler())

	slog.Info("streaming rolls", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) snapshot() stateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() stateMessage {
	msg := stateMessage{
		Type:    "state",
		Phase:   s.session.Phase().String(),
		Elapsed: s.session.Elapsed(),
		Results: s.session.Results(),
		Impacts: s.impacts,
	}
	s.impacts = nil

	for _, p := range s.session.Poses() {
		msg.Poses = append(msg.Poses, poseMessage{
			ID:      p.ID,
			Kind:    p.Kind.String(),
			Pos:     [3]float64{p.Pos.X(), p.Pos.Y(), p.Pos.Z()},
			Rot:     [4]float64{p.Rot.W, p.Rot.V.X(), p.Rot.V.Y(), p.Rot.V.Z()},
			Settled: p.Settled,
		})
	}
	return msg
}

func (s *Server) send(conn *websocket.Conn, connMu *sync.Mutex, msg stateMessage) {
	connMu.Lock()
	err := conn.WriteJSON(msg)
	connMu.Unlock()
	if err != nil {
		slog.Error("websocket write failed", "err", err)
	}
}

func (s *Server) broadcast(msg stateMessage) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, connMu := range s.clients {
		connMu.Lock()
		err := conn.WriteJSON(msg)
		connMu.Unlock()
		if err != nil {
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}
}
