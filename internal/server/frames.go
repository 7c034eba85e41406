package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
	"github.com/kode4food/flagstaff/pkg/util"
)

type (
	// Format selects how frames are encoded on the wire
	Format string

	// FrameStream is an engine.Renderer that fans rendered frames out to
	// WebSocket clients. Slow clients skip frames rather than delaying the
	// engine loop
	FrameStream struct {
		clients util.Set[*frameClient]
		last    *api.Frame
		mu      sync.Mutex
	}

	frameClient struct {
		conn      *websocket.Conn
		format    Format
		frames    chan *api.Frame
		done      chan struct{}
		closeOnce sync.Once
	}
)

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

var (
	ErrUnknownFormat  = errors.New("unknown frame format")
	ErrFramesDisabled = errors.New("frame stream disabled")
)

var cborEncMode = mustEncMode()

var _ engine.Renderer = (*FrameStream)(nil)

// NewFrameStream creates a FrameStream with no clients
func NewFrameStream() *FrameStream {
	return &FrameStream{
		clients: util.Set[*frameClient]{},
	}
}

// RenderFrame implements engine.Renderer
func (s *FrameStream) RenderFrame(fr *api.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = fr
	for c := range s.clients {
		c.offer(fr)
	}
}

// Clients returns the number of connected frame clients
func (s *FrameStream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients.Len()
}

// Close disconnects every client
func (s *FrameStream) Close() {
	s.mu.Lock()
	clients := make([]*frameClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// EncodeFrame encodes a frame in the given format, returning the
// WebSocket message type to send it with
func EncodeFrame(f Format, fr *api.Frame) (int, []byte, error) {
	switch f {
	case FormatJSON, "":
		data, err := json.Marshal(fr)
		return websocket.TextMessage, data, err
	case FormatCBOR:
		data, err := cborEncMode.Marshal(fr)
		return websocket.BinaryMessage, data, err
	default:
		return 0, nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func (s *Server) handleFrames(c *gin.Context) {
	if s.frames == nil {
		errorResponse(c, http.StatusNotFound, ErrFramesDisabled)
		return
	}
	format := Format(c.DefaultQuery("format", string(FormatJSON)))
	if _, _, err := EncodeFrame(format, &api.Frame{}); err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed",
			log.Error(err))
		return
	}
	s.frames.serve(conn, format)
}

func (s *FrameStream) serve(conn *websocket.Conn, format Format) {
	fc := &frameClient{
		conn:   conn,
		format: format,
		frames: make(chan *api.Frame, 1),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.clients.Add(fc)
	if s.last != nil {
		fc.offer(s.last)
	}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.clients.Remove(fc)
			s.mu.Unlock()
		}()
		fc.run()
	}()
}

// offer queues the frame, replacing one the client has not yet sent
func (c *frameClient) offer(fr *api.Frame) {
	select {
	case c.frames <- fr:
		return
	default:
	}
	select {
	case <-c.frames:
	default:
	}
	select {
	case c.frames <- fr:
	default:
	}
}

func (c *frameClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *frameClient) run() {
	defer func() { _ = c.conn.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-gone:
			return

		case fr := <-c.frames:
			if !c.send(fr) {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *frameClient) send(fr *api.Frame) bool {
	typ, data, err := EncodeFrame(c.format, fr)
	if err != nil {
		slog.Error("Frame encoding failed",
			log.Frame(fr.Number),
			log.Error(err))
		return false
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(typ, data); err != nil {
		slog.Error("WebSocket write failed",
			log.Error(err))
		return false
	}
	return true
}

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("server: failed to create CBOR enc mode: %v", err))
	}
	return em
}
