package middleware

import (
	"context"
	"net/http"
	"strings"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/token"
)

// ContextKey é o tipo das chaves que o pacote grava no contexto da requisição.
type ContextKey int

const (
	UserKey ContextKey = iota
	RequestIDKey
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// UserResolver resolve as claims do token para o usuário ativo.
type UserResolver interface {
	ResolveToken(ctx context.Context, claims *token.CustomClaims) (domain.UserPublic, error)
}

// NewAuthMiddleware valida o Bearer token, resolve o usuário ativo e o anexa ao contexto.
func NewAuthMiddleware(tokenSvc TokenService, resolver UserResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				writeAppError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
				writeAppError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			user, err := resolver.ResolveToken(r.Context(), claims)
			if err != nil {
				writeAppError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext é uma função utilitária para extrair o usuário autenticado no handler.
func GetUserFromContext(ctx context.Context) (domain.UserPublic, bool) {
	user, ok := ctx.Value(UserKey).(domain.UserPublic)
	return user, ok
}
