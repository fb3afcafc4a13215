package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"TareasWeb/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ctxKey string

const (
	requestIDKey    ctxKey = "request_id"
	RequestIDHeader        = "X-Request-Id"
)

// RequestIDFromContext returns the request id if present.
func RequestIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey).(string); ok {
		return s
	}
	return ""
}

// WithRequestID reuses the caller's X-Request-Id or assigns a new one,
// and echoes it in the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		rid := req.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		res.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(res, req.WithContext(context.WithValue(req.Context(), requestIDKey, rid)))
	})
}

// Logging writes one access log entry per request.
func Logging(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: res, status: http.StatusOK}

			next.ServeHTTP(sw, req)

			log.WithFields(logrus.Fields{
				"request_id": RequestIDFromContext(req.Context()),
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     sw.status,
				"duration":   time.Since(start).String(),
			}).Info("request served")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RateLimiter is a middleware function that implements rate limiting for HTTP requests.
// If the request is not allowed, it returns a JSON response with an error message and HTTP status code 429 (Too Many Requests).
func RateLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				message := response.Message{
					Status: "Request Failed",
					Body:   response.CapacityExhausted,
				}
				res.Header().Set("Content-Type", "application/json")
				res.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(res).Encode(&message)
				return
			}
			next.ServeHTTP(res, req)
		})
	}
}
