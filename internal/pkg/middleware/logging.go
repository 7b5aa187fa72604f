package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"cadastro/internal/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger atribui um request id e registra método, rota, status e duração de cada requisição.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			rec := newStatusRecorder(w)
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			fields := map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"bytes":       rec.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if rec.status >= http.StatusInternalServerError {
				log.Warn("Requisição concluída com erro.", fields)
				return
			}
			log.Info("Requisição concluída.", fields)
		})
	}
}

// GetRequestID devolve o request id da requisição, se houver.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
