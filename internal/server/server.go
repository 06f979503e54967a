// Package server exposes a taskstore.Store over the task collection HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasksync/internal/logging"
	"tasksync/internal/service"
	"tasksync/internal/taskerr"
	"tasksync/internal/taskstore"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server is the reference task store server.
type Server struct {
	store  *taskstore.Store
	router *gin.Engine
	logger *slog.Logger
}

// New creates a server for store.
// gin's route dump is kept only when the logger is at debug level.
func New(store *taskstore.Store, logger *slog.Logger) *Server {
	logger = logging.OrDiscard(logger)
	if gin.Mode() == gin.DebugMode && !logger.Enabled(context.Background(), slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		store:  store,
		router: gin.New(),
		logger: logger,
	}

	s.router.Use(gin.Recovery(), s.logRequests())

	tasks := s.router.Group("/tasks")
	{
		tasks.GET("", s.handleList)
		tasks.POST("", s.handleCreate)
		tasks.GET("/:id", s.handleGet)
		tasks.PUT("/:id", s.handleUpdate)
		tasks.DELETE("/:id", s.handleDelete)
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetHeader("X-Request-ID"),
		)
	}
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) handleGet(c *gin.Context) {
	task, err := s.store.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreate(c *gin.Context) {
	var input service.TaskCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, taskerr.Request("Malformed request body", err.Error()))
		return
	}

	task, err := s.store.Create(input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdate(c *gin.Context) {
	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, taskerr.Request("Malformed request body", err.Error()))
		return
	}
	patch.ID = c.Param("id")

	task, err := s.store.Update(patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError renders err as {"detail": message} with the status fixed by its kind.
func writeError(c *gin.Context, err error) {
	derr := taskerr.Coerce(err, "")
	c.JSON(derr.StatusCode(), gin.H{"detail": derr.Message})
}
