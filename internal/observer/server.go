// Package observer streams a foraging world to websocket clients and lets
// them drive it one turn at a time.
package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"forage/internal/sims/forage"
)

const (
	writeWait  = 5 * time.Second
	readWait   = 60 * time.Second
	sendBuffer = 16
)

type client struct {
	id   uint64
	send chan []byte
}

// Server owns a world and serializes every turn through one mutex. Frames are
// queued while the lock is held so clients see turns in order.
type Server struct {
	log *log.Logger

	mu    sync.Mutex
	world *forage.World
	seed  int64

	clientsMu sync.Mutex
	clients   map[*client]struct{}
	nextID    atomic.Uint64

	upgrader websocket.Upgrader
}

// NewServer wraps an already placed world. seed is reused by RESET.
func NewServer(w *forage.World, seed int64, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		log:     logger,
		world:   w,
		seed:    seed,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler exposes the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/state", s.stateHandler)
	mux.HandleFunc("/v1/schema", s.schemaHandler)
	mux.HandleFunc("/v1/ws", s.wsHandler)
	return mux
}

// Advance runs one turn and broadcasts the resulting frame.
func (s *Server) Advance() forage.TurnReport {
	s.mu.Lock()
	report := s.world.AdvanceTurn()
	frame := s.frameLocked(&report)
	s.broadcast(frame)
	s.mu.Unlock()

	if report.Advanced {
		for _, c := range report.Collections {
			s.log.Printf("turn %d: resource %d (value %d) collected by %v", report.Turn, c.ResourceID, c.Value, c.Credited)
		}
		if report.Status == forage.StatusFinished {
			s.log.Printf("turn %d: all resources collected, scores %v", report.Turn, frame.Scores)
		}
	}
	return report
}

// Reset replaces the world with a fresh placement.
func (s *Server) Reset(seed int64) error {
	s.mu.Lock()
	if seed == 0 {
		seed = s.seed
	}
	if err := s.world.Reset(seed); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reset world: %w", err)
	}
	s.seed = seed
	s.broadcast(s.frameLocked(nil))
	s.mu.Unlock()

	s.log.Printf("world reset with seed %d", seed)
	return nil
}

// Frame returns the current frame.
func (s *Server) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked(nil)
}

// Run advances a turn every interval until the world finishes or ctx ends.
func (s *Server) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if r := s.Advance(); r.Status == forage.StatusFinished {
				return nil
			}
		}
	}
}

func (s *Server) frameLocked(report *forage.TurnReport) Frame {
	return Frame{
		Type:            TypeFrame,
		ProtocolVersion: Version,
		Sim:             s.world.Name(),
		State:           s.world.State(),
		Scores:          s.world.Scores(),
		Report:          report,
	}
}

func (s *Server) broadcast(f Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		s.log.Printf("encode frame: %v", err)
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- b:
		default:
			// Slow client; it will catch up on the next frame.
		}
	}
}

func (s *Server) join() *client {
	c := &client{id: s.nextID.Add(1), send: make(chan []byte, sendBuffer)}
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	return c
}

func (s *Server) leave(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
}

func (s *Server) stateHandler(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(s.Frame())
}

func (s *Server) schemaHandler(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rw.Header().Set("Content-Type", "application/schema+json")
	_, _ = rw.Write([]byte(FrameSchema))
}

func (s *Server) wsHandler(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Joining under the world lock keeps the connect frame ahead of any turn frame.
	s.mu.Lock()
	c := s.join()
	first, err := json.Marshal(s.frameLocked(nil))
	if err == nil {
		c.send <- first
	}
	s.mu.Unlock()
	defer s.leave(c)
	if err != nil {
		return
	}
	s.log.Printf("observer O%d connected from %s", c.id, r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-c.send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var cmd ClientMsg
		if err := json.Unmarshal(msg, &cmd); err != nil {
			s.reject(c, "bad message")
			continue
		}
		switch cmd.Type {
		case TypeAdvance:
			s.Advance()
		case TypeReset:
			if err := s.Reset(cmd.Seed); err != nil {
				s.reject(c, err.Error())
			}
		default:
			s.reject(c, fmt.Sprintf("unknown message type %q", cmd.Type))
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	s.log.Printf("observer O%d disconnected", c.id)
}

func (s *Server) reject(c *client, message string) {
	b, err := json.Marshal(ErrorMsg{Type: TypeError, Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
