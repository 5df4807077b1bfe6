package web

import (
	"github.com/deppfellow/emp-records/internal/middleware"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the UI server. It shares the API's middleware chain
// except CORS: every page is same-origin.
func NewRouter(s *server.Server, ui *UI) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
	)

	router.GET("/", ui.List)
	router.GET("/create", ui.NewForm)
	router.POST("/create", ui.Submit)
	router.GET("/edit/:id", ui.EditForm)
	router.POST("/edit/:id", ui.Submit)
	router.POST("/delete/:id", ui.Delete)

	return router, nil
}
