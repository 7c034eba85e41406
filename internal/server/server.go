package server

import (
	"log/slog"
	"net/http"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/internal/input"
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/util"
)

// Server implements the HTTP control API for one engine
type Server struct {
	engine  *engine.Engine
	input   *input.Manual
	frames  *FrameStream
	sockets util.Set[*Client]
	mu      sync.Mutex
}

// NewServer creates a new HTTP API server. The input may be nil when the
// engine reads its input elsewhere, and frames may be nil when no frame
// stream is rendered
func NewServer(
	eng *engine.Engine, in *input.Manual, frames *FrameStream,
) *Server {
	return &Server{
		engine:  eng,
		input:   in,
		frames:  frames,
		sockets: util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods", "GET, POST, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers", "Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", s.handleHealth)

	// Engine endpoints
	eng := router.Group("/engine")
	{
		eng.GET("", s.handleEngine)
		eng.GET("/", s.handleEngine)
		eng.GET("/sprites", s.handleSprites)

		// Control endpoints
		eng.POST("/flag", s.handleFlag)
		eng.POST("/stop", s.handleStop)
		eng.POST("/broadcast/:name", s.handleBroadcast)
		eng.POST("/input", s.handleInput)
		eng.POST("/answer", s.handleAnswer)

		// WebSockets
		eng.GET("/ws", s.handleFrames)
		eng.GET("/events", s.handleWebSocket)
	}

	return router
}

func (s *Server) handleEngine(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Status())
}

func (s *Server) handleSprites(c *gin.Context) {
	fr := s.engine.LastFrame()
	if fr == nil {
		c.JSON(http.StatusOK, api.SpritesResponse{
			Sprites: []*api.SpriteState{},
		})
		return
	}
	c.JSON(http.StatusOK, api.SpritesResponse{
		Sprites: fr.Sprites,
		Count:   len(fr.Sprites),
	})
}

func (s *Server) registerWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	conns := make([]*Client, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
	if s.frames != nil {
		s.frames.Close()
	}
}

func errorResponse(c *gin.Context, status int, err error) {
	c.JSON(status, api.ErrorResponse{
		Error:  err.Error(),
		Status: status,
	})
}
