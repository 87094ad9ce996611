package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/hightemp/intltel/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with health check and the v1 API.
func NewRouter(h *Handler, l *log.Logger) *gin.Engine {
	l = logger.OrDiscard(l)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(l))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.RegisterRoutes(engine.Group("/v1"))
	return engine
}

// requestLogger logs HTTP requests with timing.
func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		l.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, l *log.Logger) error {
	l = logger.OrDiscard(l)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		l.Info("server listening", "addr", addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		l.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
