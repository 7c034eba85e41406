package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
)

var (
	ErrEngineStopped   = errors.New("engine stopped")
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrNoBroadcastName = errors.New("broadcast name is required")
	ErrInputDisabled   = errors.New("remote input is disabled")
)

func (s *Server) handleFlag(c *gin.Context) {
	s.post(c, engine.GreenFlagMessage{}, "green flag clicked")
}

func (s *Server) handleStop(c *gin.Context) {
	s.post(c, engine.StopMessage{}, "stopped")
}

func (s *Server) handleBroadcast(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		errorResponse(c, http.StatusBadRequest, ErrNoBroadcastName)
		return
	}
	s.post(c, engine.BroadcastMessage{Name: name},
		fmt.Sprintf("broadcast %s", name),
	)
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req api.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest,
			fmt.Errorf("%w: %w", ErrInvalidJSON, err),
		)
		return
	}
	s.post(c, engine.AnswerMessage{Text: req.Text}, "answered")
}

func (s *Server) handleInput(c *gin.Context) {
	if s.input == nil {
		errorResponse(c, http.StatusConflict, ErrInputDisabled)
		return
	}
	var req api.InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest,
			fmt.Errorf("%w: %w", ErrInvalidJSON, err),
		)
		return
	}

	snap := s.input.Snapshot()
	x, y, down := snap.MouseX, snap.MouseY, snap.MouseDown
	if req.MouseX != nil {
		x = *req.MouseX
	}
	if req.MouseY != nil {
		y = *req.MouseY
	}
	if req.MouseDown != nil {
		down = *req.MouseDown
	}
	s.input.SetMouse(x, y, down)
	for _, k := range req.Press {
		s.input.Press(k)
	}
	for _, k := range req.Release {
		s.input.Release(k)
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "input updated"})
}

func (s *Server) post(c *gin.Context, m engine.Message, msg string) {
	if s.engine.Stopped() {
		errorResponse(c, http.StatusConflict, ErrEngineStopped)
		return
	}
	s.engine.Post(m)
	c.JSON(http.StatusAccepted, api.MessageResponse{Message: msg})
}
