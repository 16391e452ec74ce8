package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// cacheControl marks successful responses as publicly cacheable for maxAge
// seconds. Errors are never cached.
func cacheControl(maxAge int) echo.MiddlewareFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := c.Response()
			res.Before(func() {
				if res.Status < http.StatusBadRequest {
					res.Header().Set(echo.HeaderCacheControl, value)
					res.Header().Add(echo.HeaderVary, echo.HeaderAcceptEncoding)
				}
			})
			return next(c)
		}
	}
}
