package personrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cadastro/internal/domain"
	"cadastro/internal/errors"
	"cadastro/internal/pkg/database"
	"cadastro/internal/pkg/logger"
)

const personColumns = `id, nome, sexo, email, data_de_nascimento, naturalidade, nacionalidade, cpf, endereco, data_criacao, data_atualizacao`

// searchableColumns restringe as colunas que podem entrar no WHERE da busca.
var searchableColumns = map[string]bool{
	"nome":          true,
	"email":         true,
	"cpf":           true,
	"naturalidade":  true,
	"nacionalidade": true,
	"endereco":      true,
}

// PersonRepository implementa as operações de persistência de pessoas sobre o SQLite.
type PersonRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPersonRepository cria e retorna uma nova instância do Repositório de Pessoas.
func NewPersonRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PersonRepository {
	return &PersonRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// rowScanner é satisfeito por *sql.Row e *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (domain.Person, error) {
	var p domain.Person
	var sexo, email, naturalidade, nacionalidade, endereco sql.NullString
	var criacao, atualizacao string

	err := row.Scan(
		&p.ID, &p.Nome, &sexo, &email, &p.DataNascimento, &naturalidade,
		&nacionalidade, &p.CPF, &endereco, &criacao, &atualizacao,
	)
	if err != nil {
		return domain.Person{}, err
	}

	if sexo.Valid {
		s := domain.Sexo(sexo.String)
		p.Sexo = &s
	}
	p.Email = nullToPtr(email)
	p.Naturalidade = nullToPtr(naturalidade)
	p.Nacionalidade = nullToPtr(nacionalidade)
	p.Endereco = nullToPtr(endereco)

	if p.DataCriacao, err = database.ParseTime(criacao); err != nil {
		return domain.Person{}, fmt.Errorf("data_criacao inválida: %w", err)
	}
	if p.DataAtualizacao, err = database.ParseTime(atualizacao); err != nil {
		return domain.Person{}, fmt.Errorf("data_atualizacao inválida: %w", err)
	}
	return p, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func sexoArg(s *domain.Sexo) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func strArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// escapeLike escapa os curingas do LIKE para que o termo seja comparado literalmente.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// Create insere uma nova pessoa e devolve o registro com o ID gerado.
func (r *PersonRepository) Create(ctx context.Context, person domain.Person) (domain.Person, error) {
	r.logger.Debug("Iniciando Create de pessoa no repositório.", map[string]interface{}{"cpf": person.CPF})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO pessoas (nome, sexo, email, data_de_nascimento, naturalidade, nacionalidade, cpf, endereco, data_criacao, data_atualizacao)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctxTimeout, query,
		person.Nome, sexoArg(person.Sexo), strArg(person.Email), person.DataNascimento,
		strArg(person.Naturalidade), strArg(person.Nacionalidade), person.CPF, strArg(person.Endereco),
		database.FormatTime(person.DataCriacao), database.FormatTime(person.DataAtualizacao),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("CPF duplicado rejeitado pelo índice único.", map[string]interface{}{"cpf": person.CPF})
			return domain.Person{}, errors.NewConflictError("CPF já cadastrado no sistema")
		}
		r.logger.Error("Falha ao inserir pessoa no DB.", err)
		return domain.Person{}, errors.NewDBError("Falha ao criar pessoa", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("Falha ao obter ID da pessoa inserida.", err)
		return domain.Person{}, errors.NewDBError("Falha ao criar pessoa", err)
	}
	person.ID = id

	r.logger.Info("Pessoa criada com sucesso.", map[string]interface{}{"id": person.ID})
	return person, nil
}

// FindByID busca uma pessoa pelo ID.
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (domain.Person, error) {
	r.logger.Debug("Iniciando FindByID de pessoa no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM pessoas WHERE id = ?`

	person, err := scanPerson(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		r.logger.Info("Pessoa não encontrada.", map[string]interface{}{"id": id})
		return domain.Person{}, errors.NewNotFoundError(fmt.Sprintf("Pessoa com ID %d não encontrada", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar pessoa no DB.", err)
		return domain.Person{}, errors.NewDBError("Falha ao buscar pessoa", err)
	}

	return person, nil
}

// FindByCPF busca pelo CPF já normalizado. Retorna nil, nil quando não existe.
func (r *PersonRepository) FindByCPF(ctx context.Context, cpf string) (*domain.Person, error) {
	r.logger.Debug("Iniciando FindByCPF no repositório.", map[string]interface{}{"cpf": cpf})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM pessoas WHERE cpf = ?`

	person, err := scanPerson(r.DB.QueryRowContext(ctxTimeout, query, cpf))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar pessoa por CPF no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar pessoa por CPF", err)
	}

	return &person, nil
}

// FindAll devolve uma página de pessoas (mais recentes primeiro) e o total de registros do filtro.
func (r *PersonRepository) FindAll(ctx context.Context, filter domain.PersonFilter) ([]domain.Person, int, error) {
	r.logger.Debug("Iniciando FindAll de pessoas no repositório.", map[string]interface{}{
		"page": filter.Page, "limit": filter.Limit, "search": filter.Search,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := buildSearch(filter)

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM pessoas`+where, args...).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar pessoas no DB.", err)
		return nil, 0, errors.NewDBError("Falha ao contar pessoas", err)
	}

	query := `SELECT ` + personColumns + ` FROM pessoas` + where +
		` ORDER BY data_criacao DESC, id DESC LIMIT ? OFFSET ?`
	pageArgs := append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	people, err := r.queryPeople(ctxTimeout, query, pageArgs...)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll query.", err)
		return nil, 0, errors.NewDBError("Falha ao listar pessoas", err)
	}

	r.logger.Info("Pessoas listadas.", map[string]interface{}{"count": len(people), "total": total})
	return people, total, nil
}

// FindByAddress lista todas as pessoas cujo endereço contém o termo.
func (r *PersonRepository) FindByAddress(ctx context.Context, term string) ([]domain.Person, error) {
	r.logger.Debug("Iniciando FindByAddress no repositório.", map[string]interface{}{"endereco": term})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + personColumns + ` FROM pessoas WHERE endereco LIKE ? ESCAPE '\' ORDER BY data_criacao DESC, id DESC`

	people, err := r.queryPeople(ctxTimeout, query, escapeLike(term))
	if err != nil {
		r.logger.Error("Falha ao buscar pessoas por endereço no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar pessoas por endereço", err)
	}

	return people, nil
}

// Update grava todos os campos do registro informado.
func (r *PersonRepository) Update(ctx context.Context, person domain.Person) (domain.Person, error) {
	r.logger.Debug("Iniciando Update de pessoa no repositório.", map[string]interface{}{"id": person.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE pessoas
        SET nome = ?, sexo = ?, email = ?, data_de_nascimento = ?, naturalidade = ?,
            nacionalidade = ?, cpf = ?, endereco = ?, data_atualizacao = ?
        WHERE id = ?`

	result, err := r.DB.ExecContext(ctxTimeout, query,
		person.Nome, sexoArg(person.Sexo), strArg(person.Email), person.DataNascimento,
		strArg(person.Naturalidade), strArg(person.Nacionalidade), person.CPF, strArg(person.Endereco),
		database.FormatTime(person.DataAtualizacao), person.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Person{}, errors.NewConflictError("CPF já cadastrado no sistema")
		}
		r.logger.Error("Falha ao atualizar pessoa no DB.", err)
		return domain.Person{}, errors.NewDBError("Falha ao atualizar pessoa", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao obter linhas afetadas após atualização de pessoa.", err)
		return domain.Person{}, errors.NewDBError("Falha ao verificar atualização de pessoa", err)
	}
	if rowsAffected == 0 {
		return domain.Person{}, errors.NewNotFoundError(fmt.Sprintf("Pessoa com ID %d não encontrada", person.ID))
	}

	r.logger.Info("Pessoa atualizada com sucesso.", map[string]interface{}{"id": person.ID})
	return person, nil
}

// Delete remove a pessoa pelo ID.
func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando Delete de pessoa no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM pessoas WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar pessoa no DB.", err)
		return errors.NewDBError("Falha ao deletar pessoa", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao obter linhas afetadas após exclusão de pessoa.", err)
		return errors.NewDBError("Falha ao verificar exclusão de pessoa", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Pessoa com ID %d não encontrada", id))
	}

	r.logger.Info("Pessoa deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (r *PersonRepository) queryPeople(ctx context.Context, query string, args ...any) ([]domain.Person, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]domain.Person, 0)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return people, nil
}

// buildSearch monta o WHERE com OR entre as colunas pesquisáveis do filtro.
func buildSearch(filter domain.PersonFilter) (string, []any) {
	if filter.Search == "" {
		return "", nil
	}

	pattern := escapeLike(filter.Search)
	conditions := make([]string, 0, len(filter.SearchFields))
	args := make([]any, 0, len(filter.SearchFields))
	for _, column := range filter.SearchFields {
		if !searchableColumns[column] {
			continue
		}
		conditions = append(conditions, column+` LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE (" + strings.Join(conditions, " OR ") + ")", args
}
