package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/flagstaff"
	"github.com/kode4food/flagstaff/pkg/api"
)

func (s *Server) handleHealth(c *gin.Context) {
	res := api.HealthResponse{
		Service: flagstaff.Name,
		Version: flagstaff.Version,
		Status:  api.HealthHealthy,
	}
	if st := s.engine.Status(); st != nil {
		res.Frame = st.Frame
		if st.Stopped {
			res.Status = api.HealthStopped
		}
	}
	if res.Status != api.HealthHealthy {
		c.JSON(http.StatusServiceUnavailable, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
