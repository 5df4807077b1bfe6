package middleware

import (
	"net/http"
	"strings"

	"github.com/deppfellow/emp-records/internal/errs"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/labstack/echo/v4"
)

var (
	corsAllowMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowHeaders = strings.Join([]string{echo.HeaderContentType, echo.HeaderAuthorization}, ", ")
)

// OriginGuard enforces the CORS allow-list.
//
// Echo's CORS middleware only omits headers for unknown origins and answers
// preflights with 204; this guard refuses unknown origins outright and
// answers every OPTIONS request with an empty 200.
type OriginGuard struct {
	server  *server.Server
	allowed map[string]struct{}
}

func NewOriginGuard(s *server.Server) *OriginGuard {
	allowed := make(map[string]struct{})
	for _, origin := range s.Config.Server.AllowedOrigins() {
		allowed[origin] = struct{}{}
	}
	return &OriginGuard{server: s, allowed: allowed}
}

// Allowed reports whether origin may call the API. Requests without an
// Origin header are not browser cross-origin calls and are always allowed.
func (g *OriginGuard) Allowed(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := g.allowed[origin]
	return ok
}

// CORS rejects disallowed origins with 403 before any handler runs, sets the
// CORS response headers for allowed ones and short-circuits OPTIONS.
func (g *OriginGuard) CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			header := c.Response().Header()
			header.Add(echo.HeaderVary, echo.HeaderOrigin)

			if !g.Allowed(origin) {
				g.RecordRejection(c, origin)
				return errs.NewForbiddenError("Origin not allowed", true)
			}

			if origin != "" {
				header.Set(echo.HeaderAccessControlAllowOrigin, origin)
				header.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
				header.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}

// RecordRejection reports a refused origin as a New Relic custom event.
func (g *OriginGuard) RecordRejection(c echo.Context, origin string) {
	g.server.LoggerService.RecordCustomEvent("CorsRejected", map[string]interface{}{
		"origin": origin,
		"method": c.Request().Method,
		"path":   c.Request().URL.Path,
	})
}
