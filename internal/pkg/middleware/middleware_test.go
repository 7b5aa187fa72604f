package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/token"
)

// --- Auth ---

type stubResolver struct {
	user domain.UserPublic
	err  error
}

func (s stubResolver) ResolveToken(_ context.Context, _ *token.CustomClaims) (domain.UserPublic, error) {
	return s.user, s.err
}

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		assert.True(t, ok)
		w.Write([]byte(user.Username))
	})
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	validToken, err := tokens.GenerateToken(1, "admin")
	require.NoError(t, err)

	active := NewAuthMiddleware(tokens, stubResolver{user: domain.UserPublic{ID: 1, Username: "admin"}}, logger.NewNop())(protectedHandler(t))
	inactive := NewAuthMiddleware(tokens, stubResolver{err: apperror.NewUnauthorizedError("Usuário não encontrado ou inativo.")}, logger.NewNop())(protectedHandler(t))

	cases := []struct {
		name    string
		handler http.Handler
		header  string
		status  int
	}{
		{"token válido", active, "Bearer " + validToken, http.StatusOK},
		{"sem header", active, "", http.StatusUnauthorized},
		{"esquema errado", active, "Basic abc", http.StatusUnauthorized},
		{"token inválido", active, "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"usuário inativo", inactive, "Bearer " + validToken, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/pessoas", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			tc.handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin", rr.Body.String())
				return
			}
			body := decodeError(t, rr)
			assert.Equal(t, "UNAUTHORIZED", body.Category)
		})
	}
}

// --- Snapshot sync ---

type countingPusher struct {
	mu    sync.Mutex
	count int
}

func (p *countingPusher) PushAsync() {
	p.mu.Lock()
	p.count++
	p.mu.Unlock()
}

func TestSnapshotSync_PushesOnlyAfterSuccessfulMutation(t *testing.T) {
	cases := []struct {
		method string
		status int
		pushes int
	}{
		{http.MethodPost, http.StatusCreated, 1},
		{http.MethodPatch, http.StatusOK, 1},
		{http.MethodPut, http.StatusOK, 1},
		{http.MethodDelete, http.StatusOK, 1},
		{http.MethodPost, http.StatusConflict, 0},
		{http.MethodPatch, http.StatusBadRequest, 0},
		{http.MethodGet, http.StatusOK, 0},
	}

	for _, tc := range cases {
		pusher := &countingPusher{}
		handler := SnapshotSync(pusher)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(tc.method, "/api/v1/pessoas", nil))

		assert.Equal(t, tc.status, rr.Code)
		assert.Equal(t, tc.pushes, pusher.count, "%s %d", tc.method, tc.status)
	}
}

func TestSnapshotSync_NilPusher(t *testing.T) {
	handler := SnapshotSync(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/pessoas", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

// --- Request logger ---

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seen string
	handler := RequestLogger(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

// --- Rate limiter ---

type memoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCounter) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryCounter) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = expiration
	return nil
}

func (m *memoryCounter) Close() error { return nil }

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	counter := newMemoryCounter()
	handler := RateLimiter(counter, 2, time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pessoas", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		statuses = append(statuses, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, time.Minute, counter.expires["rate-limit:10.0.0.1"])

	// Outro IP tem o próprio contador.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pessoas", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_FailOpen(t *testing.T) {
	counter := newMemoryCounter()
	counter.err = errors.New("redis indisponível")
	handler := RateLimiter(counter, 1, time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
