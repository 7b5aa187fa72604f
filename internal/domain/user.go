package domain

import "time"

// User representa a entidade de credencial (tabela usuarios).
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Email           string    `json:"email"`
	Ativo           bool      `json:"ativo"`
	DataCriacao     time.Time `json:"dataCriacao"`
	DataAtualizacao time.Time `json:"dataAtualizacao"`
}

// UserPublic são os campos do usuário que podem sair do serviço de credenciais.
type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public projeta o usuário sem o hash da senha.
func (u User) Public() UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email}
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin123"`
}

// AuthResponse é a resposta do login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}
