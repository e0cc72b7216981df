// Package stream runs a simulation in one goroutine and broadcasts its
// render state to websocket clients.
//
// Clients send [Command] values as JSON text messages. Commands are queued
// and applied by the simulation goroutine between frames, so the engine is
// never touched from a connection goroutine.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/orbit"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 16
)

var (
	ErrUnknownOp    = errors.New("stream: unknown op")
	ErrInvalidValue = errors.New("stream: invalid value")
)

type Options struct {
	// FrameInterval is the wall-clock time between frames.
	FrameInterval time.Duration
	// BroadcastRate caps snapshots per second. Command acknowledgements are
	// not limited.
	BroadcastRate float64
	// CommandQueue is the number of commands buffered between frames.
	CommandQueue int
}

func DefaultOptions() Options {
	return Options{
		FrameInterval: time.Second / 60,
		BroadcastRate: 30,
		CommandQueue:  64,
	}
}

type pending struct {
	cmd  Command
	from *client
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Server struct {
	sim      *engine.Simulation
	logger   *log.Logger
	opts     Options
	upgrader websocket.Upgrader
	limiter  *rate.Limiter
	commands chan pending

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

func New(sim *engine.Simulation, logger *log.Logger, opts Options) *Server {
	def := DefaultOptions()
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = def.FrameInterval
	}
	if opts.BroadcastRate <= 0 {
		opts.BroadcastRate = def.BroadcastRate
	}
	if opts.CommandQueue <= 0 {
		opts.CommandQueue = def.CommandQueue
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Server{
		sim:    sim,
		logger: logger,
		opts:   opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		limiter:  rate.NewLimiter(rate.Limit(opts.BroadcastRate), 1),
		commands: make(chan pending, opts.CommandQueue),
		clients:  make(map[*client]struct{}),
	}
}

// Handler upgrades requests to websocket connections.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Run drives the simulation until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.FrameInterval)
	defer ticker.Stop()

	s.publish()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()
		case now := <-ticker.C:
			changed := s.drainCommands()

			r := s.sim.Frame(now.Sub(last).Seconds())
			last = now

			if changed || (r.Integrated && s.limiter.Allow()) {
				s.publish()
			}
		}
	}
}

func (s *Server) drainCommands() bool {
	changed := false
	for {
		select {
		case p := <-s.commands:
			if err := s.Apply(p.cmd); err != nil {
				s.logger.Warn("rejected command", "op", p.cmd.Op, "err", err)
				if p.from != nil {
					s.sendTo(p.from, Message{Type: TypeError, Error: err.Error()})
				}
				continue
			}
			changed = true
		default:
			return changed
		}
	}
}

// Apply changes the simulation controls. It must only be called from the
// goroutine that runs frames.
func (s *Server) Apply(cmd Command) error {
	ctl := s.sim.Controls()
	switch cmd.Op {
	case OpPause:
		ctl.SetPaused(true)
	case OpResume:
		ctl.SetPaused(false)
	case OpSpeed:
		ctl.SetSpeed(cmd.Value)
	case OpSubSteps:
		if math.IsNaN(cmd.Value) || math.IsInf(cmd.Value, 0) {
			return fmt.Errorf("%w: substeps %v", ErrInvalidValue, cmd.Value)
		}
		// clamp before converting, out-of-range float to int is undefined
		ctl.SetSubSteps(int(math.Max(1, math.Min(cmd.Value, engine.MaxSubSteps))))
	case OpScheme:
		scheme, err := integrators.ParseScheme(cmd.Scheme)
		if err != nil {
			return err
		}
		ctl.SetScheme(scheme)
	case OpSelect:
		if cmd.ID == orbit.None && cmd.Body == "" {
			ctl.Deselect()
			break
		}
		id, err := s.resolve(cmd)
		if err != nil {
			return err
		}
		ctl.Select(id)
	case OpResetApsis:
		if cmd.ID == orbit.None && cmd.Body == "" {
			s.sim.ResetAllApsides()
			break
		}
		id, err := s.resolve(cmd)
		if err != nil {
			return err
		}
		s.sim.ResetApsis(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}

	if ctl.Paused {
		s.sim.Recenter()
	}
	return nil
}

func (s *Server) resolve(cmd Command) (orbit.ID, error) {
	store := s.sim.Store()
	if cmd.ID != orbit.None {
		if _, ok := store.Get(cmd.ID); !ok {
			return orbit.None, fmt.Errorf("body %d: %w", cmd.ID, orbit.ErrUnknownBody)
		}
		return cmd.ID, nil
	}
	id, ok := store.Lookup(cmd.Body)
	if !ok {
		return orbit.None, fmt.Errorf("body %q: %w", cmd.Body, orbit.ErrUnknownBody)
	}
	return id, nil
}

func (s *Server) publish() {
	snap := NewSnapshot(s.sim)
	data, err := json.Marshal(Message{Type: TypeSnapshot, Snapshot: &snap})
	if err != nil {
		s.logger.Error("encode snapshot", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// slow client, it catches up with the next snapshot
			s.logger.Debug("dropped snapshot", "remote", c.conn.RemoteAddr())
		}
	}
}

func (s *Server) sendTo(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c.send <- s.latest
	}
	s.mu.Unlock()

	s.logger.Info("client connected", "remote", conn.RemoteAddr())

	go s.writeLoop(c)
	s.readLoop(r.Context(), c)
}

func (s *Server) readLoop(ctx context.Context, c *client) {
	defer s.remove(c)

	c.conn.SetReadLimit(maxMessageSize)
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "remote", c.conn.RemoteAddr(), "err", err)
			}
			return
		}

		select {
		case s.commands <- pending{cmd: cmd, from: c}:
		case <-ctx.Done():
			return
		default:
			s.sendTo(c, Message{Type: TypeError, Error: "command queue full"})
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.write(websocket.TextMessage, data); err != nil {
			s.logger.Debug("write failed", "remote", c.conn.RemoteAddr(), "err", err)
			return
		}
	}
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.write(websocket.CloseMessage, closing); err != nil {
		s.logger.Debug("close frame failed", "remote", c.conn.RemoteAddr(), "err", err)
	}
}

func (c *client) write(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
		s.logger.Info("client disconnected", "remote", c.conn.RemoteAddr())
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}
