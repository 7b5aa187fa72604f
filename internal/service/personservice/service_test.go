package personservice_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/service/personservice"
)

// MockPersonRepository é uma implementação mock da interface PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	args := m.Called(ctx, person)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id int64) (domain.Person, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByCPF(ctx context.Context, cpf string) (*domain.Person, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonRepository) FindAll(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, int, error) {
	args := m.Called(ctx, filter)
	people, _ := args.Get(0).([]domain.Person)
	return people, args.Int(1), args.Error(2)
}

func (m *MockPersonRepository) FindByAddress(ctx context.Context, term string) ([]domain.Person, error) {
	args := m.Called(ctx, term)
	people, _ := args.Get(0).([]domain.Person)
	return people, args.Error(1)
}

func (m *MockPersonRepository) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	args := m.Called(ctx, person)
	return args.Get(0).(domain.Person), args.Error(1)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewNop()
}

func strPtr(s string) *string { return &s }

func validInput(cpf string) domain.CreatePersonInput {
	return domain.CreatePersonInput{
		Nome:           "João Silva Santos",
		Sexo:           strPtr("masculino"),
		Email:          strPtr("joao@email.com"),
		DataNascimento: "1990-01-15",
		CPF:            cpf,
	}
}

// --- Create ---

func TestCreate_Success_NormalizesCPF(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByCPF", mock.Anything, "11144477735").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p domain.Person) bool {
		return p.CPF == "11144477735" && p.Endereco == nil && !p.DataCriacao.IsZero() && p.DataCriacao.Equal(p.DataAtualizacao)
	})).Return(domain.Person{ID: 1, Nome: "João Silva Santos", CPF: "11144477735"}, nil)

	created, err := svc.Create(context.Background(), validInput("111.444.777-35"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreate_Fail_DuplicateCPFWithPunctuation(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByCPF", mock.Anything, "11144477735").Return(&domain.Person{ID: 5, CPF: "11144477735"}, nil)

	_, err := svc.Create(context.Background(), validInput("111.444.777-35"))

	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Fail_InvalidCPF(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	_, err := svc.Create(context.Background(), validInput("12345678901"))

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByCPF", mock.Anything, mock.Anything)
}

func TestCreate_Fail_BlankName(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	input := validInput("11144477735")
	input.Nome = "   "
	_, err := svc.Create(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, apperror.DetailsOf(err), "nome: não pode ser vazio")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_V2RequiresAddress(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV2, newTestLogger())

	_, err := svc.Create(context.Background(), validInput("52998224725"))
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	input := validInput("52998224725")
	input.Endereco = strPtr("Rua das Flores, 123")
	mockRepo.On("FindByCPF", mock.Anything, "52998224725").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.Person{ID: 2, Endereco: input.Endereco}, nil)

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Rua das Flores, 123", *created.Endereco)
}

func TestCreate_RepositoryErrorIsPropagated(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	dbErr := apperror.NewDBError("Falha ao criar pessoa", errors.New("disk full"))
	mockRepo.On("FindByCPF", mock.Anything, "11144477735").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.Person{}, dbErr)

	_, err := svc.Create(context.Background(), validInput("11144477735"))
	assert.Equal(t, dbErr, err)
}

// --- FindAll ---

func TestFindAll_TotalPages(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV2, newTestLogger())

	expectedFilter := domain.PersonFilter{Page: 2, Limit: 10, Search: "ana", SearchFields: domain.PolicyV2.SearchFields}
	mockRepo.On("FindAll", mock.Anything, expectedFilter).Return([]domain.Person{{ID: 11}}, 21, nil)

	page, err := svc.FindAll(context.Background(), 2, 10, " ana ")

	require.NoError(t, err)
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 1)
}

func TestFindAll_Empty(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindAll", mock.Anything, mock.Anything).Return(nil, 0, nil)

	page, err := svc.FindAll(context.Background(), 1, 10, "")

	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestFindAll_LimitIsCapped(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f domain.PersonFilter) bool {
		return f.Limit == personservice.MaxLimit
	})).Return([]domain.Person{}, 250, nil)

	page, err := svc.FindAll(context.Background(), 1, 1000, "")

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
}

func TestFindAll_InvalidPagination(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	_, err := svc.FindAll(context.Background(), 0, 10, "")
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.FindAll(context.Background(), 1, -1, "")
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestFindAll_PageOffsetOverflow(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	_, err := svc.FindAll(context.Background(), math.MaxInt, 10, "")
	assert.IsType(t, &apperror.ValidationError{}, err)

	// Limite acima do máximo é reduzido antes da checagem.
	_, err = svc.FindAll(context.Background(), math.MaxInt/100+2, 1000, "")
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

// --- FindOne / Remove ---

func TestFindOne_NotFound(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, int64(9)).Return(domain.Person{}, apperror.NewNotFoundError("Pessoa com ID 9 não encontrada"))

	_, err := svc.FindOne(context.Background(), 9)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestRemove_ReturnsRemovedRecord(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	existing := domain.Person{ID: 3, Nome: "Ana"}
	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)
	mockRepo.On("Delete", mock.Anything, int64(3)).Return(nil)

	removed, err := svc.Remove(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, existing, removed)
	mockRepo.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, int64(3)).Return(domain.Person{}, apperror.NewNotFoundError("x"))

	_, err := svc.Remove(context.Background(), 3)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- Update ---

func TestUpdate_CPFOfAnotherPersonIsConflict(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(domain.Person{ID: 1, CPF: "11144477735"}, nil)
	mockRepo.On("FindByCPF", mock.Anything, "52998224725").Return(&domain.Person{ID: 2, CPF: "52998224725"}, nil)

	_, err := svc.Update(context.Background(), 1, domain.UpdatePersonInput{CPF: strPtr("529.982.247-25")})

	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_Fail_BlankName(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV2, newTestLogger())

	_, err := svc.Update(context.Background(), 1, domain.UpdatePersonInput{Nome: strPtr("  \t ")})

	require.Error(t, err)
	assert.Contains(t, apperror.DetailsOf(err), "nome: não pode ser vazio")
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_OwnCPFSucceeds(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(domain.Person{ID: 1, Nome: "Ana", CPF: "11144477735"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Person) bool {
		return p.CPF == "11144477735" && p.Nome == "Ana Paula" && !p.DataAtualizacao.IsZero()
	})).Return(domain.Person{ID: 1, Nome: "Ana Paula", CPF: "11144477735"}, nil)

	updated, err := svc.Update(context.Background(), 1, domain.UpdatePersonInput{
		Nome: strPtr("Ana Paula"),
		CPF:  strPtr("111.444.777-35"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", updated.Nome)
	mockRepo.AssertNotCalled(t, "FindByCPF", mock.Anything, mock.Anything)
}

func TestUpdate_MergesOnlySuppliedFields(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	existing := domain.Person{ID: 1, Nome: "Ana", CPF: "11144477735", Email: strPtr("ana@email.com"), Endereco: strPtr("Rua A")}
	mockRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Person) bool {
		return p.Nome == "Ana" && *p.Email == "ana@email.com" && p.Endereco == nil && *p.Naturalidade == "Recife, PE"
	})).Return(existing, nil)

	_, err := svc.Update(context.Background(), 1, domain.UpdatePersonInput{
		Naturalidade: strPtr("Recife, PE"),
		Endereco:     strPtr(""),
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, int64(42)).Return(domain.Person{}, apperror.NewNotFoundError("x"))

	_, err := svc.Update(context.Background(), 42, domain.UpdatePersonInput{Nome: strPtr("Ana")})
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// --- FindByCPF / FindByAddress ---

func TestFindByCPF_NormalizesAndReturnsNilWhenAbsent(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	svc := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())

	mockRepo.On("FindByCPF", mock.Anything, "11144477735").Return(nil, nil)

	person, err := svc.FindByCPF(context.Background(), "111.444.777-35")

	require.NoError(t, err)
	assert.Nil(t, person)
	mockRepo.AssertExpectations(t)
}

func TestFindByAddress_OnlyInV2(t *testing.T) {
	mockRepo := new(MockPersonRepository)

	v1 := personservice.NewService(mockRepo, domain.PolicyV1, newTestLogger())
	_, err := v1.FindByAddress(context.Background(), "Flores")
	assert.IsType(t, &apperror.ValidationError{}, err)

	v2 := personservice.NewService(mockRepo, domain.PolicyV2, newTestLogger())
	mockRepo.On("FindByAddress", mock.Anything, "Flores").Return([]domain.Person{{ID: 1}}, nil)

	people, err := v2.FindByAddress(context.Background(), "Flores")
	require.NoError(t, err)
	assert.Len(t, people, 1)

	_, err = v2.FindByAddress(context.Background(), "  ")
	assert.IsType(t, &apperror.ValidationError{}, err)
}
