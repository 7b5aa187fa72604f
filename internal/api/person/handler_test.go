package person

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
)

type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) Create(ctx context.Context, input domain.CreatePersonInput) (domain.Person, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonService) FindAll(ctx context.Context, page, limit int, search string) (domain.PersonPage, error) {
	args := m.Called(ctx, page, limit, search)
	return args.Get(0).(domain.PersonPage), args.Error(1)
}

func (m *MockPersonService) FindOne(ctx context.Context, id int64) (domain.Person, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonService) Update(ctx context.Context, id int64, input domain.UpdatePersonInput) (domain.Person, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonService) Remove(ctx context.Context, id int64) (domain.Person, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonService) FindByCPF(ctx context.Context, cpf string) (*domain.Person, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonService) FindByAddress(ctx context.Context, term string) ([]domain.Person, error) {
	args := m.Called(ctx, term)
	people, _ := args.Get(0).([]domain.Person)
	return people, args.Error(1)
}

func newTestHandler() (*Handler, *MockPersonService) {
	svc := new(MockPersonService)
	return NewHandler(svc, logger.NewNop()), svc
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestCreatePersonHandler_Created(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in domain.CreatePersonInput) bool {
		return in.Nome == "Ana" && in.CPF == "11144477735"
	})).Return(domain.Person{ID: 1, Nome: "Ana", CPF: "11144477735"}, nil)

	body := `{"nome":"Ana","dataDeNascimento":"1990-01-15","cpf":"11144477735"}`
	rr := httptest.NewRecorder()
	h.CreatePersonHandler(rr, httptest.NewRequest(http.MethodPost, "/api/v1/pessoas", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var created domain.Person
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, int64(1), created.ID)
}

func TestCreatePersonHandler_UnknownFieldIsBadRequest(t *testing.T) {
	h, svc := newTestHandler()

	body := `{"nome":"Ana","cpf":"11144477735","admin":true}`
	rr := httptest.NewRecorder()
	h.CreatePersonHandler(rr, httptest.NewRequest(http.MethodPost, "/api/v1/pessoas", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Category)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePersonHandler_ValidationDetails(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Create", mock.Anything, mock.Anything).
		Return(domain.Person{}, apperror.NewValidationErrorWithDetails("Dados inválidos.", []string{"cpf: CPF inválido"}))

	rr := httptest.NewRecorder()
	h.CreatePersonHandler(rr, httptest.NewRequest(http.MethodPost, "/api/v1/pessoas", strings.NewReader(`{"cpf":"1"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, []string{"cpf: CPF inválido"}, decodeError(t, rr).Details)
}

func TestCreatePersonHandler_Conflict(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Create", mock.Anything, mock.Anything).Return(domain.Person{}, apperror.NewConflictError("CPF já cadastrado no sistema"))

	rr := httptest.NewRecorder()
	h.CreatePersonHandler(rr, httptest.NewRequest(http.MethodPost, "/api/v1/pessoas", strings.NewReader(`{"cpf":"11144477735"}`)))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetAllPeopleHandler_Pagination(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("FindAll", mock.Anything, 2, 5, "ana").Return(domain.PersonPage{Data: []domain.Person{}, Total: 6, Page: 2, TotalPages: 2}, nil)

	rr := httptest.NewRecorder()
	h.GetAllPeopleHandler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/pessoas?page=2&limit=5&search=ana", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var page map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, []interface{}{}, page["data"])
}

func TestGetAllPeopleHandler_Defaults(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("FindAll", mock.Anything, 1, 10, "").Return(domain.PersonPage{Data: []domain.Person{}, Page: 1}, nil)

	rr := httptest.NewRecorder()
	h.GetAllPeopleHandler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/pessoas", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestGetAllPeopleHandler_NonNumericPage(t *testing.T) {
	h, svc := newTestHandler()

	rr := httptest.NewRecorder()
	h.GetAllPeopleHandler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/pessoas?page=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPersonByIDHandler(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("FindOne", mock.Anything, int64(7)).Return(domain.Person{ID: 7}, nil)
	svc.On("FindOne", mock.Anything, int64(8)).Return(domain.Person{}, apperror.NewNotFoundError("Pessoa com ID 8 não encontrada"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pessoas/7", nil)
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()
	h.GetPersonByIDHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/pessoas/8", nil)
	req.SetPathValue("id", "8")
	rr = httptest.NewRecorder()
	h.GetPersonByIDHandler(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/pessoas/abc", nil)
	req.SetPathValue("id", "abc")
	rr = httptest.NewRecorder()
	h.GetPersonByIDHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdatePersonHandler(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(in domain.UpdatePersonInput) bool {
		return in.Nome != nil && *in.Nome == "Ana Paula" && in.CPF == nil
	})).Return(domain.Person{ID: 3, Nome: "Ana Paula"}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/pessoas/3", strings.NewReader(`{"nome":"Ana Paula"}`))
	req.SetPathValue("id", "3")
	rr := httptest.NewRecorder()
	h.UpdatePersonHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDeletePersonHandler_ReturnsRemovedRecord(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("Remove", mock.Anything, int64(3)).Return(domain.Person{ID: 3, Nome: "Ana"}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/pessoas/3", nil)
	req.SetPathValue("id", "3")
	rr := httptest.NewRecorder()
	h.DeletePersonHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var removed domain.Person
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&removed))
	assert.Equal(t, "Ana", removed.Nome)
}

func TestGetPersonByCPFHandler_NilIsNotFound(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("FindByCPF", mock.Anything, "11144477735").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pessoas/cpf/11144477735", nil)
	req.SetPathValue("cpf", "11144477735")
	rr := httptest.NewRecorder()
	h.GetPersonByCPFHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rr).Category)
}

func TestGetPeopleByAddressHandler(t *testing.T) {
	h, svc := newTestHandler()
	svc.On("FindByAddress", mock.Anything, "Paulista").Return([]domain.Person{{ID: 1}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/pessoas/endereco/Paulista", nil)
	req.SetPathValue("endereco", "Paulista")
	rr := httptest.NewRecorder()
	h.GetPeopleByAddressHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var people []domain.Person
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&people))
	assert.Len(t, people, 1)
}
