package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and whether a dataset snapshot is served
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	datasetStatus := "unknown"
	if s.Dataset != nil {
		datasetStatus = "loaded"
		if _, err := s.Dataset.Info(); err != nil {
			datasetStatus = "unavailable"
		}
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status":  "OK",
		"dataset": datasetStatus,
	})
}
