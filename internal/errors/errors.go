package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError é a interface central para todos os erros customizados do cadastro.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
// Details carrega a lista de problemas por campo, quando houver.
type ValidationError struct {
	Msg     string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("Erro de Validação: %s", e.Msg)
	}
	return fmt.Sprintf("Erro de Validação: %s (%s)", e.Msg, strings.Join(e.Details, "; "))
}
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewValidationErrorWithDetails cria um erro de validação com a lista de campos inválidos.
func NewValidationErrorWithDetails(msg string, details []string) AppError {
	return &ValidationError{Msg: msg, Details: details}
}

// UnauthorizedError representa falhas de autenticação (credenciais, token ausente/expirado, usuário inativo).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., CPF duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
// Erros tipados encapsulados com %w também são reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// DetailsOf extrai a lista de detalhes de um ValidationError (nil para os demais erros).
func DetailsOf(err error) []string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Details
	}
	return nil
}
