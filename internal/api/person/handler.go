package person

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

// PersonService define o contrato que o Handler espera da camada de Serviço.
type PersonService interface {
	Create(ctx context.Context, input domain.CreatePersonInput) (domain.Person, error)
	FindAll(ctx context.Context, page, limit int, search string) (domain.PersonPage, error)
	FindOne(ctx context.Context, id int64) (domain.Person, error)
	Update(ctx context.Context, id int64, input domain.UpdatePersonInput) (domain.Person, error)
	Remove(ctx context.Context, id int64) (domain.Person, error)
	FindByCPF(ctx context.Context, cpf string) (*domain.Person, error)
	FindByAddress(ctx context.Context, term string) ([]domain.Person, error)
}

// Handler agrupa os handlers do recurso pessoas de uma versão da API.
type Handler struct {
	Service PersonService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PersonService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
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

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
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

// decodeJSON lê o corpo rejeitando campos desconhecidos.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return apperror.NewValidationError("Corpo da requisição vazio.")
		}
		return apperror.NewValidationErrorWithDetails("Payload inválido. Verifique o formato JSON.", []string{err.Error()})
	}
	if dec.More() {
		return apperror.NewValidationError("Payload inválido. Envie um único objeto JSON.")
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewValidationError("O ID da pessoa deve ser um inteiro positivo.")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("O parâmetro %s deve ser um número inteiro.", name))
	}
	return value, nil
}

// CreatePersonHandler lida com a requisição POST /api/v{1,2}/pessoas.
// @Summary Cria uma pessoa
// @Description Cadastra uma nova pessoa. Na v2 o endereço é obrigatório.
// @Tags pessoas
// @Accept json
// @Produce json
// @Param person body domain.CreatePersonInput true "Dados da pessoa"
// @Success 201 {object} domain.Person "Pessoa criada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 409 {object} domain.ErrorResponse "CPF já cadastrado"
// @Security BearerAuth
// @Router /api/v1/pessoas [post]
// @Router /api/v2/pessoas [post]
func (h *Handler) CreatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.CreatePersonInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, created, nil, http.StatusCreated)
}

// GetAllPeopleHandler lida com a requisição GET /api/v{1,2}/pessoas.
// @Summary Lista pessoas
// @Description Lista paginada, mais recentes primeiro, com busca opcional por substring.
// @Tags pessoas
// @Produce json
// @Param page query int false "Página (padrão 1)"
// @Param limit query int false "Itens por página (padrão 10, máximo 100)"
// @Param search query string false "Termo de busca"
// @Success 200 {object} domain.PersonPage "Página de pessoas"
// @Failure 400 {object} domain.ErrorResponse "Parâmetros inválidos"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Security BearerAuth
// @Router /api/v1/pessoas [get]
// @Router /api/v2/pessoas [get]
func (h *Handler) GetAllPeopleHandler(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.FindAll(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusOK)
}

// GetPersonByIDHandler lida com a requisição GET /api/v{1,2}/pessoas/{id}.
// @Summary Busca pessoa por ID
// @Tags pessoas
// @Produce json
// @Param id path int true "ID da pessoa"
// @Success 200 {object} domain.Person "Pessoa encontrada"
// @Failure 404 {object} domain.ErrorResponse "Pessoa não encontrada"
// @Security BearerAuth
// @Router /api/v1/pessoas/{id} [get]
// @Router /api/v2/pessoas/{id} [get]
func (h *Handler) GetPersonByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	person, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, person, nil, http.StatusOK)
}

// UpdatePersonHandler lida com a requisição PATCH /api/v{1,2}/pessoas/{id}.
// @Summary Atualiza parcialmente uma pessoa
// @Tags pessoas
// @Accept json
// @Produce json
// @Param id path int true "ID da pessoa"
// @Param person body domain.UpdatePersonInput true "Campos a alterar"
// @Success 200 {object} domain.Person "Pessoa atualizada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Pessoa não encontrada"
// @Failure 409 {object} domain.ErrorResponse "CPF já cadastrado"
// @Security BearerAuth
// @Router /api/v1/pessoas/{id} [patch]
// @Router /api/v2/pessoas/{id} [patch]
func (h *Handler) UpdatePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	var input domain.UpdatePersonInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, input)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// DeletePersonHandler lida com a requisição DELETE /api/v{1,2}/pessoas/{id}.
// @Summary Remove uma pessoa
// @Tags pessoas
// @Produce json
// @Param id path int true "ID da pessoa"
// @Success 200 {object} domain.Person "Pessoa removida"
// @Failure 404 {object} domain.ErrorResponse "Pessoa não encontrada"
// @Security BearerAuth
// @Router /api/v1/pessoas/{id} [delete]
// @Router /api/v2/pessoas/{id} [delete]
func (h *Handler) DeletePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	removed, err := h.Service.Remove(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, removed, nil, http.StatusOK)
}

// GetPersonByCPFHandler lida com a requisição GET /api/v{1,2}/pessoas/cpf/{cpf}.
// @Summary Busca pessoa por CPF
// @Description Aceita o CPF com ou sem pontuação.
// @Tags pessoas
// @Produce json
// @Param cpf path string true "CPF"
// @Success 200 {object} domain.Person "Pessoa encontrada"
// @Failure 404 {object} domain.ErrorResponse "Pessoa não encontrada"
// @Security BearerAuth
// @Router /api/v1/pessoas/cpf/{cpf} [get]
// @Router /api/v2/pessoas/cpf/{cpf} [get]
func (h *Handler) GetPersonByCPFHandler(w http.ResponseWriter, r *http.Request) {
	cpf := r.PathValue("cpf")

	person, err := h.Service.FindByCPF(r.Context(), cpf)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if person == nil {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError(fmt.Sprintf("Pessoa com CPF %s não encontrada", cpf)), http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, person, nil, http.StatusOK)
}

// GetPeopleByAddressHandler lida com a requisição GET /api/v2/pessoas/endereco/{endereco}.
// @Summary Busca pessoas por endereço
// @Description Retorna todas as pessoas cujo endereço contém o termo.
// @Tags pessoas
// @Produce json
// @Param endereco path string true "Trecho do endereço"
// @Success 200 {array} domain.Person "Pessoas encontradas"
// @Failure 400 {object} domain.ErrorResponse "Termo inválido"
// @Security BearerAuth
// @Router /api/v2/pessoas/endereco/{endereco} [get]
func (h *Handler) GetPeopleByAddressHandler(w http.ResponseWriter, r *http.Request) {
	people, err := h.Service.FindByAddress(r.Context(), r.PathValue("endereco"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, people, nil, http.StatusOK)
}
