package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"cadastro/internal/pkg/cache"
	"cadastro/internal/pkg/logger"
)

// RateLimiter limita requisições por IP em janela fixa usando contadores no Redis.
// Se o Redis falhar a requisição segue (fail-open) e o erro é logado.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				log.Error("Falha ao consultar rate limit no Redis.", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, duration); err != nil {
					log.Error("Falha ao definir expiração do rate limit.", err)
				}
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if count > int64(limit) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				writeJSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Limite de requisições excedido.")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
