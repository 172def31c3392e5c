// Package api exposes the sync server's HTTP surface: pull, push, delete
// and count per collection, plus an unauthenticated health probe.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/server/records"
)

type Server struct {
	router *gin.Engine
	repo   records.Repository
	secret []byte
	log    logging.Logger
}

func NewServer(repo records.Repository, secretKey string, log logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		repo:   repo,
		secret: []byte(secretKey),
		log:    log,
	}

	router.GET("/api/v1/health", s.handleHealth)

	api := router.Group("/api/v1", s.authRequired())
	{
		api.GET("/:collection/records", s.handleList)
		api.POST("/:collection/records", s.handleUpsert)
		api.DELETE("/:collection/records/:id", s.handleDelete)
		api.GET("/:collection/count", s.handleCount)
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info(ctx, "http server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
