package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	apiPrefix = "/api"

	newsPath    = apiPrefix + "/news"
	contactPath = apiPrefix + "/contact"
	bookingPath = apiPrefix + "/booking"
	horsesPath  = apiPrefix + "/horses"
	reviewsPath = apiPrefix + "/reviews"

	rootPath        = "/"
	diagnosticsPath = "/test"
	schemaPath      = "/schema"
	swaggerPath     = "/swagger/doc.json"
	rpcPath         = "/rpc"
)

// RegisterRoutes builds the echo instance serving every public route.
func (h *ContentHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))

	h.registerStatusRoutes(e)
	h.registerAPIRoutes(e)

	if h.rpc != nil {
		e.Any(rpcPath, echo.WrapHandler(h.rpc))
	}

	return e
}

func (h *ContentHandler) registerStatusRoutes(e *echo.Echo) {
	e.GET(rootPath, h.Root)
	e.GET(diagnosticsPath, h.Diagnostics)
	e.GET(schemaPath, h.Schema)
	e.GET(swaggerPath, h.SwaggerDoc)
}

func (h *ContentHandler) registerAPIRoutes(e *echo.Echo) {
	e.GET(newsPath, h.News)
	e.GET(horsesPath, h.Horses)
	e.GET(reviewsPath, h.Reviews)
	e.POST(contactPath, h.Contact)
	e.POST(bookingPath, h.Booking)
}

func (h *ContentHandler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			h.log.LogAttrs(c.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("path", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_addr", v.RemoteIP),
			)
			return nil
		},
	})
}
