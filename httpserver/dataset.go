package httpserver

import (
	"net/http"

	"bechdel/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPrivateDatasetRoutes(g *echo.Group) {
	g.GET("/dataset", s.handleDatasetInfo)
	g.POST("/dataset/reload", s.handleDatasetReload)
}

// handleDatasetInfo godoc
// @Summary Dataset Info
// @Description Source, size and load time of the served snapshot
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataset.Info
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/dataset [get]
func (s *Server) handleDatasetInfo(c echo.Context) error {
	if s.Dataset == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "dataset admin not configured")
	}

	info, err := s.Dataset.Info()
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, info)
}

// handleDatasetReload godoc
// @Summary Reload Dataset
// @Description Re-read the source and swap in the new snapshot; the current one is kept on failure
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataset.Info
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/dataset/reload [post]
func (s *Server) handleDatasetReload(c echo.Context) error {
	if s.Dataset == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "dataset admin not configured")
	}

	if err := s.Dataset.Load(c.Request().Context()); err != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "dataset reload failed: %v", err)
	}

	info, err := s.Dataset.Info()
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, info)
}
