// Package ws serves Snake sessions over WebSocket. Each connection owns one
// session driven by wall-clock tickers.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/protocol"
)

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
	defaultVariant   = "snake"
)

// Server upgrades HTTP requests and runs one game per connection.
type Server struct {
	cfg    config.SnakeConfig
	logger *log.Logger
	seed   func() int64

	upgrader websocket.Upgrader
}

// NewServer creates a server that starts every session from cfg.
// A non-zero seed is used for every session; zero seeds each session from
// the clock.
func NewServer(cfg config.SnakeConfig, logger *log.Logger, seed int64) *Server {
	next := func() int64 { return time.Now().UnixNano() }
	if seed != 0 {
		next = func() int64 { return seed }
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		seed:   next,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ListenAndServe serves /ws on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())

	hs := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: handshakeTimeout,
		// Hijacked connections outlive Shutdown; tie them to ctx instead.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting WebSocket server", "address", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("ws: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ws: shutdown: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler that upgrades and plays one session.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ws, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		c := &conn{ws: ws, id: uuid.NewString()}
		defer c.close()

		l := s.logger.With("session", c.id, "remote", r.RemoteAddr)

		hello, session, ok := s.handshake(c, l)
		if !ok {
			return
		}
		l = l.With("variant", hello.Variant, "name", hello.Name)
		l.Info("session started")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go s.readLoop(ctx, cancel, c, l)

		start := time.Now()
		s.run(ctx, c, session, l)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second), "ticks", session.Tick())
	}
}

// handshake waits for HELLO, builds the session and answers WELCOME.
func (s *Server) handshake(c *conn, l *log.Logger) (protocol.HelloMsg, *snake.Session, bool) {
	_ = c.ws.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, raw, err := c.ws.ReadMessage()
	if err != nil {
		l.Debug("no hello", "error", err)
		return protocol.HelloMsg{}, nil, false
	}
	_ = c.ws.SetReadDeadline(time.Time{})

	msg, err := protocol.DecodeClient(raw)
	if err != nil {
		c.fail(errorMsg(err), l)
		return protocol.HelloMsg{}, nil, false
	}
	if msg.Hello == nil {
		c.fail(protocol.NewError(protocol.ErrUnexpected, "expected HELLO"), l)
		return protocol.HelloMsg{}, nil, false
	}

	hello := *msg.Hello
	if hello.Variant == "" {
		hello.Variant = defaultVariant
	}

	session, err := snake.NewSessionFor(hello.Variant, s.cfg, s.seed())
	if err != nil {
		code := protocol.ErrInternal
		if errors.Is(err, snake.ErrUnknownVariant) {
			code = protocol.ErrUnknownVariant
		}
		c.fail(protocol.NewError(code, err.Error()), l)
		return protocol.HelloMsg{}, nil, false
	}

	arena := session.Arena()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       c.id,
		Variant:         hello.Variant,
		Arena:           protocol.Arena{Width: arena.Width, Height: arena.Height},
		MoveIntervalMS:  s.cfg.Timing.MoveInterval.Milliseconds(),
		FoodIntervalMS:  s.cfg.Timing.FoodInterval.Milliseconds(),
	}
	if err := c.send(welcome); err != nil {
		return protocol.HelloMsg{}, nil, false
	}
	// Initial frame so clients can draw before the first tick.
	if err := c.send(frameFor(session, nil)); err != nil {
		return protocol.HelloMsg{}, nil, false
	}
	return hello, session, true
}

// readLoop stores the latest direction until the connection drops.
func (s *Server) readLoop(ctx context.Context, cancel context.CancelFunc, c *conn, l *log.Logger) {
	defer cancel()
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Debug("read failed", "error", err)
			}
			return
		}

		msg, err := protocol.DecodeClient(raw)
		if err != nil {
			l.Warn("dropped message", "error", err)
			if sendErr := c.send(errorMsg(err)); sendErr != nil {
				return
			}
			continue
		}
		if msg.Input == nil {
			if sendErr := c.send(protocol.NewError(protocol.ErrUnexpected, "HELLO already received")); sendErr != nil {
				return
			}
			continue
		}

		dir, err := snake.ParseDirection(msg.Input.Dir)
		if err != nil {
			// The schema only admits valid directions
			continue
		}
		c.setInput(snake.Hold(dir))
	}
}

// run drives the session from the movement and food tickers.
func (s *Server) run(ctx context.Context, c *conn, session *snake.Session, l *log.Logger) {
	var events []snake.Event
	session.Subscribe(func(ev snake.Event) {
		events = append(events, ev)
	})

	move := time.NewTicker(s.cfg.Timing.MoveInterval)
	defer move.Stop()
	food := time.NewTicker(s.cfg.Timing.FoodInterval)
	defer food.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-move.C:
			if _, err := session.Advance(c.takeInput()); err != nil {
				l.Error("session corrupted", "error", err)
				c.fail(protocol.NewError(protocol.ErrInternal, "internal error"), l)
				return
			}

		case <-food.C:
			if _, ok := session.SpawnFood(); !ok {
				continue
			}
		}

		for _, ev := range events {
			if ev.Kind == snake.EventGameOver {
				l.Info("game over", "collision", ev.Collision, "length", ev.Length, "tick", ev.Tick)
			}
		}
		err := c.send(frameFor(session, events))
		events = events[:0]
		if err != nil {
			return
		}
	}
}

// frameFor renders the session state as a FRAME message.
func frameFor(s *snake.Session, events []snake.Event) protocol.FrameMsg {
	f := protocol.FrameMsg{
		Type:     protocol.TypeFrame,
		Tick:     s.Tick(),
		Phase:    s.Phase().String(),
		Heading:  s.Heading().String(),
		Length:   s.Length(),
		Eaten:    s.Eaten(),
		Segments: cells(s.Segments()),
		Food:     cells(s.Food()),
	}
	for _, ev := range events {
		pe := protocol.Event{
			Kind:   ev.Kind.String(),
			Tick:   ev.Tick,
			At:     protocol.Cell{X: ev.At.X, Y: ev.At.Y},
			Length: ev.Length,
		}
		if ev.Kind == snake.EventGameOver {
			pe.Collision = ev.Collision.String()
		}
		f.Events = append(f.Events, pe)
	}
	return f
}

func cells(ps []snake.Position) []protocol.Cell {
	out := make([]protocol.Cell, len(ps))
	for i, p := range ps {
		out[i] = protocol.Cell{X: p.X, Y: p.Y}
	}
	return out
}

func errorMsg(err error) protocol.ErrorMsg {
	var perr *protocol.Error
	if errors.As(err, &perr) {
		return perr.Msg()
	}
	return protocol.NewError(protocol.ErrInternal, err.Error())
}

// conn serializes writes and holds the latest input.
type conn struct {
	ws *websocket.Conn
	id string

	writeMu sync.Mutex

	inputMu sync.Mutex
	input   snake.Input
}

func (c *conn) send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// fail reports a protocol error and asks the client to close.
func (c *conn) fail(msg protocol.ErrorMsg, l *log.Logger) {
	l.Warn("closing session", "code", msg.Code, "reason", msg.Message)
	_ = c.send(msg)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg.Code),
		time.Now().Add(time.Second))
}

func (c *conn) setInput(in snake.Input) {
	c.inputMu.Lock()
	defer c.inputMu.Unlock()
	c.input = in
}

// takeInput returns the latest input and clears it for the next tick.
func (c *conn) takeInput() snake.Input {
	c.inputMu.Lock()
	defer c.inputMu.Unlock()
	in := c.input
	c.input = snake.Input{}
	return in
}

func (c *conn) close() {
	_ = c.ws.Close()
}
