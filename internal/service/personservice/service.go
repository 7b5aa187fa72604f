package personservice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/logger"
	"cadastro/internal/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PersonRepository define o contrato que o Serviço de Pessoas espera da camada de Persistência.
type PersonRepository interface {
	Create(ctx context.Context, person domain.Person) (domain.Person, error)
	FindByID(ctx context.Context, id int64) (domain.Person, error)
	FindByCPF(ctx context.Context, cpf string) (*domain.Person, error)
	FindAll(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, int, error)
	FindByAddress(ctx context.Context, term string) ([]domain.Person, error)
	Update(ctx context.Context, person domain.Person) (domain.Person, error)
	Delete(ctx context.Context, id int64) error
}

// Service é o cadastro de pessoas de uma versão da API.
// v1 e v2 usam o mesmo repositório e diferem apenas pela política de schema.
type Service struct {
	repo   PersonRepository
	policy domain.SchemaPolicy
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Pessoas para a política informada.
func NewService(repo PersonRepository, policy domain.SchemaPolicy, logger logger.Logger) *Service {
	return &Service{repo: repo, policy: policy, logger: logger, now: time.Now}
}

func (s *Service) logFields(fields map[string]interface{}) map[string]interface{} {
	fields["version"] = s.policy.Version
	return fields
}

// optional converte string em branco para nil (campo opcional não informado).
func optional(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

func toSexo(value *string) *domain.Sexo {
	if value == nil {
		return nil
	}
	sexo := domain.Sexo(*value)
	return &sexo
}

// Create valida o payload, garante CPF único e persiste a nova pessoa.
func (s *Service) Create(ctx context.Context, input domain.CreatePersonInput) (domain.Person, error) {
	s.logger.Debug("Iniciando criação de pessoa no serviço.", s.logFields(map[string]interface{}{"cpf": input.CPF}))

	if err := validation.ValidateCreatePerson(input, s.policy); err != nil {
		s.logger.Warn("Falha na validação do payload de pessoa.", s.logFields(map[string]interface{}{"error": err.Error()}))
		return domain.Person{}, err
	}

	cpf := validation.NormalizeCPF(input.CPF)
	existing, err := s.repo.FindByCPF(ctx, cpf)
	if err != nil {
		return domain.Person{}, err
	}
	if existing != nil {
		s.logger.Warn("CPF já cadastrado.", s.logFields(map[string]interface{}{"cpf": cpf, "id": existing.ID}))
		return domain.Person{}, apperror.NewConflictError("CPF já cadastrado no sistema")
	}

	now := s.now().UTC()
	person := domain.Person{
		Nome:            strings.TrimSpace(input.Nome),
		Sexo:            toSexo(input.Sexo),
		Email:           optional(input.Email),
		DataNascimento:  input.DataNascimento,
		Naturalidade:    optional(input.Naturalidade),
		Nacionalidade:   optional(input.Nacionalidade),
		CPF:             cpf,
		Endereco:        optional(input.Endereco),
		DataCriacao:     now,
		DataAtualizacao: now,
	}

	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return domain.Person{}, err
	}

	s.logger.Info("Pessoa criada com sucesso.", s.logFields(map[string]interface{}{"id": created.ID}))
	return created, nil
}

// FindAll lista uma página de pessoas, opcionalmente filtrada por um termo de busca.
func (s *Service) FindAll(ctx context.Context, page, limit int, search string) (domain.PersonPage, error) {
	s.logger.Debug("Iniciando listagem de pessoas no serviço.", s.logFields(map[string]interface{}{"page": page, "limit": limit, "search": search}))

	if page < 1 {
		return domain.PersonPage{}, apperror.NewValidationError("O parâmetro page deve ser um inteiro maior ou igual a 1.")
	}
	if limit < 1 {
		return domain.PersonPage{}, apperror.NewValidationError("O parâmetro limit deve ser um inteiro maior ou igual a 1.")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// O offset (page-1)*limit precisa caber em int.
	if page-1 > math.MaxInt/limit {
		return domain.PersonPage{}, apperror.NewValidationError("O parâmetro page está fora do intervalo permitido.")
	}

	filter := domain.PersonFilter{
		Page:         page,
		Limit:        limit,
		Search:       strings.TrimSpace(search),
		SearchFields: s.policy.SearchFields,
	}

	people, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return domain.PersonPage{}, err
	}
	if people == nil {
		people = []domain.Person{}
	}

	return domain.PersonPage{
		Data:       people,
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// FindOne busca uma pessoa pelo ID.
func (s *Service) FindOne(ctx context.Context, id int64) (domain.Person, error) {
	if id < 1 {
		return domain.Person{}, apperror.NewValidationError("O ID da pessoa deve ser um inteiro positivo.")
	}
	return s.repo.FindByID(ctx, id)
}

// Update aplica uma atualização parcial: só os campos enviados são alterados.
func (s *Service) Update(ctx context.Context, id int64, input domain.UpdatePersonInput) (domain.Person, error) {
	s.logger.Debug("Iniciando atualização de pessoa no serviço.", s.logFields(map[string]interface{}{"id": id}))

	if err := validation.ValidateUpdatePerson(input, s.policy); err != nil {
		s.logger.Warn("Falha na validação do payload de atualização.", s.logFields(map[string]interface{}{"id": id, "error": err.Error()}))
		return domain.Person{}, err
	}

	person, err := s.FindOne(ctx, id)
	if err != nil {
		return domain.Person{}, err
	}

	if input.CPF != nil {
		cpf := validation.NormalizeCPF(*input.CPF)
		if cpf != person.CPF {
			other, err := s.repo.FindByCPF(ctx, cpf)
			if err != nil {
				return domain.Person{}, err
			}
			if other != nil && other.ID != person.ID {
				s.logger.Warn("Atualização com CPF de outra pessoa.", s.logFields(map[string]interface{}{"id": id, "conflict_id": other.ID}))
				return domain.Person{}, apperror.NewConflictError("CPF já cadastrado no sistema")
			}
		}
		person.CPF = cpf
	}

	if input.Nome != nil {
		person.Nome = strings.TrimSpace(*input.Nome)
	}
	if input.Sexo != nil {
		person.Sexo = toSexo(input.Sexo)
	}
	if input.Email != nil {
		person.Email = optional(input.Email)
	}
	if input.DataNascimento != nil {
		person.DataNascimento = *input.DataNascimento
	}
	if input.Naturalidade != nil {
		person.Naturalidade = optional(input.Naturalidade)
	}
	if input.Nacionalidade != nil {
		person.Nacionalidade = optional(input.Nacionalidade)
	}
	if input.Endereco != nil {
		person.Endereco = optional(input.Endereco)
	}
	person.DataAtualizacao = s.now().UTC()

	updated, err := s.repo.Update(ctx, person)
	if err != nil {
		return domain.Person{}, err
	}

	s.logger.Info("Pessoa atualizada com sucesso.", s.logFields(map[string]interface{}{"id": updated.ID}))
	return updated, nil
}

// Remove apaga a pessoa e devolve o registro removido.
func (s *Service) Remove(ctx context.Context, id int64) (domain.Person, error) {
	person, err := s.FindOne(ctx, id)
	if err != nil {
		return domain.Person{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Person{}, err
	}

	s.logger.Info("Pessoa removida com sucesso.", s.logFields(map[string]interface{}{"id": id}))
	return person, nil
}

// FindByCPF normaliza o CPF e busca a pessoa. Retorna nil quando não existe.
func (s *Service) FindByCPF(ctx context.Context, cpf string) (*domain.Person, error) {
	normalized := validation.NormalizeCPF(cpf)
	if normalized == "" {
		return nil, nil
	}
	return s.repo.FindByCPF(ctx, normalized)
}

// FindByAddress lista as pessoas cujo endereço contém o termo (somente v2).
func (s *Service) FindByAddress(ctx context.Context, term string) ([]domain.Person, error) {
	if !s.policy.AddressLookup {
		return nil, apperror.NewValidationError(fmt.Sprintf("Busca por endereço não disponível na v%d.", s.policy.Version))
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.NewValidationError("O termo de endereço é obrigatório.")
	}

	people, err := s.repo.FindByAddress(ctx, term)
	if err != nil {
		return nil, err
	}
	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}
