package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ibreez3/minivault/service"
	"github.com/oklog/ulid/v2"
)

const (
	HeaderRequestID = "X-Request-ID"
	loggerCtxKey    = "minivault.logger"
)

// requestID tags each request with an id (taken from the client header when
// present) and a logger carrying it.
func requestID(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Header(HeaderRequestID, id)

		l := base.With("request_id", id)
		c.Set(loggerCtxKey, l)
		c.Request = c.Request.WithContext(service.ContextWithLogger(c.Request.Context(), l))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqLogger(c).Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"elapsed", time.Since(start),
		)
	}
}

func reqLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerCtxKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
