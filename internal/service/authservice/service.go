package authservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/pkg/token"
)

// UserRepository é o contrato de persistência de credenciais esperado pelo serviço.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindActiveByUsername(ctx context.Context, username string) (domain.User, error)
	FindActiveByID(ctx context.Context, id int64) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(userID int64, username string) (string, error)
	ExpiresIn() int64
}

// DefaultUser descreve um usuário criado na inicialização quando ainda não existe.
type DefaultUser struct {
	Username string
	Password string
	Email    string
}

// DefaultUsers são os usuários padrão do sistema.
var DefaultUsers = []DefaultUser{
	{Username: "admin", Password: "admin123", Email: "admin@sistema.com"},
	{Username: "teste", Password: "teste123", Email: "teste@sistema.com"},
}

// Service é o serviço de credenciais: login, emissão e resolução de tokens.
type Service struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do serviço de credenciais.
func NewService(repo UserRepository, tokenSvc TokenService, log logger.Logger) *Service {
	return &Service{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   log,
		cost:     bcrypt.DefaultCost,
	}
}

// ValidateCredentials confere username e senha de um usuário ativo.
// Retorna nil em qualquer falha; nunca devolve erro nem o hash.
func (s *Service) ValidateCredentials(ctx context.Context, username, password string) *domain.UserPublic {
	if username == "" || password == "" {
		return nil
	}

	user, err := s.UserRepo.FindActiveByUsername(ctx, username)
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			s.logger.Error("Falha ao buscar usuário para login.", err)
		}
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"username": username})
		return nil
	}

	public := user.Public()
	return &public
}

// IssueToken assina o token do usuário autenticado.
func (s *Service) IssueToken(user domain.UserPublic) (domain.AuthResponse, error) {
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Username)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.AuthResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   s.TokenSvc.ExpiresIn(),
	}, nil
}

// Login combina ValidateCredentials e IssueToken. Credenciais inválidas viram UnauthorizedError.
func (s *Service) Login(ctx context.Context, username, password string) (domain.AuthResponse, error) {
	user := s.ValidateCredentials(ctx, username, password)
	if user == nil {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	resp, err := s.IssueToken(*user)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return resp, nil
}

// ResolveToken busca o usuário ativo dono do token (sub).
func (s *Service) ResolveToken(ctx context.Context, claims *token.CustomClaims) (domain.UserPublic, error) {
	if claims == nil {
		return domain.UserPublic{}, apperror.NewUnauthorizedError("Token sem claims.")
	}

	id, err := claims.UserID()
	if err != nil {
		return domain.UserPublic{}, apperror.NewUnauthorizedError("Token com sub inválido.")
	}

	user, err := s.UserRepo.FindActiveByID(ctx, id)
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.UserPublic{}, apperror.NewUnauthorizedError("Usuário não encontrado ou inativo.")
		}
		return domain.UserPublic{}, err
	}

	return user.Public(), nil
}

// SeedDefaultUsers cria os usuários padrão que ainda não existem (idempotente).
func (s *Service) SeedDefaultUsers(ctx context.Context) error {
	for _, du := range DefaultUsers {
		_, err := s.UserRepo.FindByUsername(ctx, du.Username)
		if err == nil {
			continue
		}
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), s.cost)
		if err != nil {
			return apperror.NewInternalError("Falha ao gerar hash da senha.", err)
		}

		if _, err := s.UserRepo.Save(ctx, domain.User{
			Username:     du.Username,
			PasswordHash: string(hash),
			Email:        du.Email,
			Ativo:        true,
		}); err != nil {
			return err
		}
		s.logger.Info("Usuário padrão criado.", map[string]interface{}{"username": du.Username})
	}
	return nil
}
