package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"bechdel/dataset"
	"bechdel/errs"
	"bechdel/film"
	"bechdel/pkg/config"
	"bechdel/pkg/metrics"
	"bechdel/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 20

// DatasetAdmin exposes snapshot management to operators.
type DatasetAdmin interface {
	Info() (dataset.Info, error)
	Load(ctx context.Context) error
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// CacheMaxAge is the max-age, in seconds, advertised on film responses.
	CacheMaxAge int

	RateLimit rate.Limit

	Metrics *metrics.Collector

	FilmService film.Service

	Dataset DatasetAdmin

	JWTSecret string
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		CacheMaxAge:  5000,
		RateLimit:    defaultRateLimit,
		Metrics:      metrics.New(),
		JWTSecret:    cfg.Auth.JWTSecret,
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		s.AllowOrigins = origins
	}
	if cfg.HTTP.CacheMaxAge > 0 {
		s.CacheMaxAge = cfg.HTTP.CacheMaxAge
	}
	if cfg.HTTP.RateLimit > 0 {
		s.RateLimit = rate.Limit(cfg.HTTP.RateLimit)
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.Router.JSONSerializer = new(JSONSerializer)
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE, only reachable with a configured signing secret
	if s.JWTSecret != "" {
		private := api.Group("")
		private.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(s.JWTSecret),
			SigningMethod: "HS256",
		}))
		s.RegisterPrivateRoutes(private)
	}

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(s.metricsMiddleware())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(s.RateLimit)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead},
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		// Map application error codes to HTTP status codes
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		case errs.EUNAVAILABLE:
			code = http.StatusServiceUnavailable
			message = errs.ErrorMessage(err)
		case errs.EINTERNAL:
			code = http.StatusInternalServerError
			message = "Internal server error"
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error(err.Error(),
			"request_id", requestID(c),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"request_id": requestID(c)}).
			Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if err := writeError(c, code, message, "", err); err != nil {
			c.Logger().Error(err)
		}
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterPublicFilmRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group) {
	s.RegisterPrivateDatasetRoutes(g)
}
