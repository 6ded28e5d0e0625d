// Package http hosts the two web surfaces: the localhost login server
// that catches the OAuth redirect, and the operational endpoints
// (metrics, pprof, status).
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gotwitcher/internal/app/adapters/http/handlers"
	"gotwitcher/internal/app/adapters/http/middlewares"
	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/pkg/logger"
)

type Router struct {
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	login *http.Server
	ops   *gin.Engine

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager, session handlers.TokenSetter) (*Router, error) {
	cfg := manager.Get()
	if cfg.App.GinMode != "" {
		gin.SetMode(cfg.App.GinMode)
	}

	h, err := handlers.New(log, manager, session)
	if err != nil {
		return nil, err
	}

	r := &Router{
		handlers:    h,
		middlewares: middlewares.New(),
		log:         log,
		manager:     manager,
	}

	loginEngine := gin.New()
	loginEngine.Use(gin.Recovery(), r.middlewares.LocalOnly())
	loginEngine.GET("/", h.ExtractHandler)
	loginEngine.POST("/", h.TokenHandler)
	loginEngine.GET("/success", h.SuccessHandler)
	r.login = newServer(cfg.Login.Addr, loginEngine)

	r.ops = gin.New()
	r.ops.Use(gin.Recovery())
	if cfg.App.MetricsUser != "" {
		auth := gin.BasicAuth(gin.Accounts{cfg.App.MetricsUser: cfg.App.MetricsPass})
		pprofGroup := r.ops.Group("/", auth)
		pprof.Register(pprofGroup)
		r.ops.GET("/metrics", auth, gin.WrapH(promhttp.Handler()))
	} else {
		pprof.Register(r.ops)
		r.ops.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.ops.GET("/status", h.StatusHandler)

	return r, nil
}

// AuthURL returns the url the user has to visit to authorize the
// application.
func (r *Router) AuthURL() string {
	return r.handlers.AuthURL()
}

// TokenReceived is closed once the login flow delivered a token.
func (r *Router) TokenReceived() <-chan struct{} {
	return r.handlers.TokenReceived()
}

// StartLoginServer serves the login redirect endpoint until
// ShutdownLoginServer is called.
func (r *Router) StartLoginServer() error {
	err := r.login.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ShutdownLoginServer stops the login server gracefully.
func (r *Router) ShutdownLoginServer(ctx context.Context) error {
	return r.login.Shutdown(ctx)
}

// RunOps serves the operational endpoints. It blocks.
func (r *Router) RunOps() error {
	return newServer(r.manager.Get().App.ListenAddr, r.ops).ListenAndServe()
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
