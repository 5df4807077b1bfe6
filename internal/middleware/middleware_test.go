package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/errs"
	"github.com/deppfellow/emp-records/internal/logger"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server:        config.ServerConfig{Port: "5050", ClientOrigin: "https://records.example.com"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:        &log,
		LoggerService: logger.NewLoggerService(config.DefaultObservabilityConfig()),
	}
}

func newEcho(s *server.Server) *echo.Echo {
	mw := NewMiddlewares(s)
	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(RequestID(), mw.ContextEnhancer.EnhanceContext(), mw.Origins.CORS())
	e.GET("/record", func(c echo.Context) error { return c.JSON(http.StatusOK, []string{}) })
	e.GET("/fail", func(c echo.Context) error {
		return fmt.Errorf("list records: %w: %w", model.ErrStoreUnavailable, errors.New("dial tcp 10.0.0.1:27017: refused"))
	})
	e.GET("/missing", func(c echo.Context) error { return model.ErrNotFound })
	return e
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCORSAllowsListedOrigins(t *testing.T) {
	e := newEcho(newTestServer())

	for _, origin := range []string{"http://localhost:5173", "http://127.0.0.1:5174", "https://records.example.com"} {
		req := httptest.NewRequest(http.MethodGet, "/record", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, origin)
		assert.Equal(t, origin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPatch)
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderAuthorization)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	e := newEcho(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/record", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.net")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "Origin not allowed", decodeBody(t, rec)["error"])
}

func TestCORSAcceptsMissingOrigin(t *testing.T) {
	e := newEcho(newTestServer())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/record", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSPreflightIsEmpty200(t *testing.T) {
	e := newEcho(newTestServer())

	req := httptest.NewRequest(http.MethodOptions, "/record/65a1f0c2e4b0a1b2c3d4e5f6", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodDelete)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSPreflightFromUnknownOriginIsRejected(t *testing.T) {
	e := newEcho(newTestServer())

	req := httptest.NewRequest(http.MethodOptions, "/record", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestErrorHandlerHidesCause(t *testing.T) {
	e := newEcho(newTestServer())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.NotContains(t, rec.Body.String(), "refused")
	assert.NotContains(t, rec.Body.String(), "27017")
}

func TestErrorHandlerMapsDomainAndRouteErrors(t *testing.T) {
	e := newEcho(newTestServer())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Record not found", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["error"])
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	e := newEcho(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/record", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/record", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestToHTTPError(t *testing.T) {
	assert.Equal(t, http.StatusMethodNotAllowed, toHTTPError(echo.ErrMethodNotAllowed).Status)
	assert.Equal(t, http.StatusRequestEntityTooLarge, toHTTPError(echo.ErrStatusRequestEntityTooLarge).Status)
	assert.Equal(t, http.StatusBadRequest, toHTTPError(fmt.Errorf("%w", model.ErrInvalidID)).Status)

	forbidden := errs.NewForbiddenError("nope", true)
	assert.Same(t, forbidden, toHTTPError(forbidden))
}

func TestGetLoggerFallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}
