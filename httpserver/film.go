package httpserver

import (
	"net/http"

	"bechdel/errs"

	"github.com/labstack/echo/v4"
)

// Film query operations, as reported in metrics.
const (
	opLoadAll    = "load_all"
	opLoadByYear = "load_by_year"
	opLoadYears  = "load_years"
)

func (s *Server) RegisterPublicFilmRoutes(g *echo.Group) {
	cached := cacheControl(s.CacheMaxAge)
	g.GET("/films", s.handleListFilms, cached)
	g.GET("/films/:year", s.handleListFilmsByYear, cached)
	g.GET("/years", s.handleListYears, cached)
}

// handleListFilms godoc
// @Summary List Films
// @Description All films with their Bechdel test outcome, optionally paginated
// @Tags films
// @Produce json
// @Param page query int false "1-based page, default 1"
// @Param pageSize query int false "Films per page (1-10000), default all"
// @Success 200 {object} film.FilmResult
// @Failure 400 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/films [get]
func (s *Server) handleListFilms(c echo.Context) error {
	if s.FilmService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "film service not configured")
	}

	var req ListFilmsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.FilmService.LoadAll(c.Request().Context(), req.Pagination())
	s.observeFilmQuery(opLoadAll, err)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleListFilmsByYear godoc
// @Summary List Films By Year
// @Description Films released in the given year, optionally paginated
// @Tags films
// @Produce json
// @Param year path int true "Release year"
// @Param page query int false "1-based page, default 1"
// @Param pageSize query int false "Films per page (1-10000), default all"
// @Success 200 {object} film.FilmResult
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/films/{year} [get]
func (s *Server) handleListFilmsByYear(c echo.Context) error {
	if s.FilmService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "film service not configured")
	}

	var req FilmsByYearRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.FilmService.LoadByYear(c.Request().Context(), req.Year, req.Pagination())
	s.observeFilmQuery(opLoadByYear, err)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleListYears godoc
// @Summary List Years
// @Description Distinct release years present in the dataset, ascending
// @Tags films
// @Produce json
// @Success 200 {array} int
// @Failure 503 {object} APIResponse
// @Router /api/years [get]
func (s *Server) handleListYears(c echo.Context) error {
	if s.FilmService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "film service not configured")
	}

	years, err := s.FilmService.LoadYears(c.Request().Context())
	s.observeFilmQuery(opLoadYears, err)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, years)
}

func (s *Server) observeFilmQuery(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errs.ErrorCode(err)
	}
	s.Metrics.ObserveFilmQuery(operation, outcome)
}
