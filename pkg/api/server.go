// Package api serves the journal over HTTP in the shape the remote mirror
// expects: entry CRUD under /emotions and analysis under /ai.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/app"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of a Service.
type Server struct {
	svc    *app.Service
	log    *zap.Logger
	router *gin.Engine
}

// New builds the router. debug turns on gin's debug mode.
func New(svc *app.Service, logger *zap.Logger, debug bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc:  func(origin string) bool { return true },
	}))

	s := &Server{svc: svc, log: logger, router: router}
	router.NoRoute(func(c *gin.Context) { NotFound(c, "not found") })

	api := router.Group("/")
	(&emotionsHandler{svc: svc}).RegisterRoutes(api)
	(&aiHandler{svc: svc}).RegisterRoutes(api.Group("/ai"))
	return s
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.svc.Wait()
	s.log.Info("server exited")
	return nil
}
