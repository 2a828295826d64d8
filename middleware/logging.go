package middleware

import (
	"bytes"
	"io"
	"time"

	"ecom-admin/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoggerConfig struct {
	// SkipPaths lists url paths that are never logged.
	SkipPaths []string

	// EnableRequestBody enables logging of request bodies.
	EnableRequestBody bool

	// EnableResponseBody enables logging of response bodies.
	EnableResponseBody bool

	// MaxBodySize caps logged body size. Defaults to 4096 bytes.
	MaxBodySize int
}

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggingMiddleware logs every request with a level derived from the
// response status: 5xx error, 4xx warn, otherwise info.
func (m *middlewares) LoggingMiddleware(config ...LoggerConfig) gin.HandlerFunc {
	var conf LoggerConfig
	if len(config) > 0 {
		conf = config[0]
	}
	if conf.MaxBodySize == 0 {
		conf.MaxBodySize = 4096
	}

	skipPaths := make(map[string]bool)
	for _, path := range conf.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		var requestBody []byte
		if conf.EnableRequestBody && c.Request.Body != nil {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, int64(conf.MaxBodySize)))
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var responseBody *bytes.Buffer
		if conf.EnableResponseBody {
			responseBody = &bytes.Buffer{}
			c.Writer = &bodyLogWriter{
				ResponseWriter: c.Writer,
				body:           responseBody,
			}
		}

		c.Next()

		latency := time.Since(start)
		if latency > time.Minute {
			latency = latency.Truncate(time.Second)
		}
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []log.Field{
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.StatusCode(c.Writer.Status()),
			log.Duration("latency", latency),
			log.String("client_ip", c.ClientIP()),
			log.String("user_agent", c.Request.UserAgent()),
			log.Int("response_size", c.Writer.Size()),
		}

		if requestID := c.GetString("request_id"); requestID != "" {
			fields = append(fields, log.RequestID(requestID))
		}
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(string); ok {
				fields = append(fields, log.UserID(id))
			}
		}

		if conf.EnableRequestBody && len(requestBody) > 0 {
			fields = append(fields, log.String("request_body", string(requestBody)))
		}
		if conf.EnableResponseBody && responseBody != nil {
			body := responseBody.String()
			if len(body) > conf.MaxBodySize {
				body = body[:conf.MaxBodySize] + "...[truncated]"
			}
			fields = append(fields, log.String("response_body", body))
		}

		if len(c.Errors) > 0 {
			errorMsgs := make([]string, len(c.Errors))
			for i, err := range c.Errors {
				errorMsgs[i] = err.Error()
			}
			fields = append(fields, log.Any("errors", errorMsgs))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			m.logger.Error("HTTP request", fields...)
		case status >= 400:
			m.logger.Warn("HTTP request", fields...)
		default:
			m.logger.Info("HTTP request", fields...)
		}
	}
}

// RequestIDMiddleware tags every request with an id, honoring one the
// client already sent.
func (m *middlewares) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}
