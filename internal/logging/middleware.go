package logging

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

const redacted = "[REDACTED]"

// sensitiveHeaders are never written to logs in clear.
var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"x-llm-api-key": {},
	"cookie":        {},
}

// RedactHeaders flattens h for logging with secrets masked.
func RedactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if _, secret := sensitiveHeaders[strings.ToLower(name)]; secret {
			out[name] = redacted
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// RequestLogger logs one line per request with a fresh request id. Bodies are
// never logged; headers only at debug level and redacted.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		reqLog := log.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		if e := reqLog.Debug(); e.Enabled() {
			headers := zerolog.Dict()
			for k, v := range RedactHeaders(c.Request.Header) {
				headers.Str(k, v)
			}
			e.Str("method", c.Request.Method).Str("path", c.Request.URL.Path).
				Dict("headers", headers).Msg("request started")
		}

		c.Next()

		status := c.Writer.Status()
		event := reqLog.Info()
		if status >= http.StatusInternalServerError {
			event = reqLog.Error()
		} else if status >= http.StatusBadRequest {
			event = reqLog.Warn()
		}
		event.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}

// CORS allows browser clients from any origin, including the API key header.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-llm-api-key")
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
