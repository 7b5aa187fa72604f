package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
)

// AuthService define o contrato de login esperado pelo Handler.
type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.AuthResponse, error)
}

// Handler agrupa os handlers de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de autenticação:", err)
	} else {
		h.Logger.Debug("Login rejeitado.", map[string]interface{}{"status": status, "path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
		Details:  apperror.DetailsOf(err),
	})
}

// LoginHandler lida com a requisição POST /auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe usuário e senha e emite um Bearer token com validade configurável.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário"
// @Success 201 {object} domain.AuthResponse "Token emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	resp, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// 401 para credenciais inválidas, 500 para falhas de infraestrutura
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, resp, nil, http.StatusCreated)
}
