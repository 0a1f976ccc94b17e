package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID возвращает идентификатор запроса из контекста
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logging проставляет X-Request-ID (генерирует, если клиент не передал) и логирует завершенный запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			writer := newStatusWriter(w)
			next.ServeHTTP(writer, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID)))

			duration := time.Since(start)
			switch {
			case writer.status >= http.StatusInternalServerError:
				logger.Error("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
					r.Method, r.URL.Path, writer.status, duration.Milliseconds(), requestID)
			case writer.status >= http.StatusBadRequest:
				logger.Warn("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
					r.Method, r.URL.Path, writer.status, duration.Milliseconds(), requestID)
			default:
				logger.Info("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
					r.Method, r.URL.Path, writer.status, duration.Milliseconds(), requestID)
			}
		})
	}
}
