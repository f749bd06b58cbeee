package webserver

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/orderkart/orderkart/config"
)

// WebServer hosts the HTTP API on a single echo instance.
type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

var server *WebServer

// Init creates the global web server instance.
func Init(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if cfg.System.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))
	e.Use(zapRequestLogger())

	server = &WebServer{cfg: cfg, root: e}
	return server
}

// Listen starts serving; blocks until the listener fails or is shut down.
func (ws *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.L().Info("webserver listening", zap.String("addr", addr))
	return ws.root.Start(addr)
}

// Echo exposes the underlying echo instance (used in tests).
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func zapRequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	}
}

// Route helpers mirror the registration style used across the API package.

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h)
}
