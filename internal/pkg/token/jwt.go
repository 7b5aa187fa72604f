package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "Cadastro-Pessoas-API"

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(userID int64, username string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
	ExpiresIn() int64
}

// CustomClaims define as informações armazenadas no JWT.
// O ID do usuário vai em Subject (sub) como string.
type CustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID converte o sub do token para o ID numérico do usuário.
func (c *CustomClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sub inválido no token: %w", err)
	}
	return id, nil
}

// Service implementa a interface TokenService
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// ExpiresIn devolve a validade do token em segundos (campo expires_in do login).
func (s *Service) ExpiresIn() int64 {
	return int64(s.expiry / time.Second)
}

// GenerateToken cria um novo JWT HS256 contendo o ID e o username do usuário.
func (s *Service) GenerateToken(userID int64, username string) (string, error) {
	now := s.now()
	claims := CustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida assinatura, expiração e emissor, retornando as claims.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica se o método de assinatura é o esperado (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}
