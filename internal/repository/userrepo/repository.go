package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
	"cadastro/internal/pkg/database"
	"cadastro/internal/pkg/logger"
)

const userColumns = `id, username, password_hash, email, ativo, data_criacao, data_atualizacao`

// UserRepository persiste as credenciais (tabela usuarios).
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var criacao, atualizacao string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Ativo,
		&criacao,
		&atualizacao,
	)
	if err != nil {
		return domain.User{}, err
	}

	if user.DataCriacao, err = database.ParseTime(criacao); err != nil {
		return domain.User{}, err
	}
	if user.DataAtualizacao, err = database.ParseTime(atualizacao); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Save insere um novo usuário no banco de dados.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"username": user.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	if user.DataCriacao.IsZero() {
		user.DataCriacao = now
	}
	user.DataAtualizacao = now

	query := `
        INSERT INTO usuarios (username, password_hash, email, ativo, data_criacao, data_atualizacao)
        VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctxTimeout, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Ativo,
		database.FormatTime(user.DataCriacao),
		database.FormatTime(user.DataAtualizacao),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O username '%s' já está em uso.", user.Username))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	if user.ID, err = result.LastInsertId(); err != nil {
		r.logger.Error("Falha ao obter ID do usuário inserido.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// FindByUsername busca um usuário pelo username, ativo ou não.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, `WHERE username = ?`, username, fmt.Sprintf("Usuário '%s' não encontrado", username))
}

// FindActiveByUsername busca um usuário ativo pelo username.
func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, `WHERE username = ? AND ativo = 1`, username, fmt.Sprintf("Usuário ativo '%s' não encontrado", username))
}

// FindActiveByID busca um usuário ativo pelo ID (usado na resolução do token).
func (r *UserRepository) FindActiveByID(ctx context.Context, id int64) (domain.User, error) {
	return r.findOne(ctx, `WHERE id = ? AND ativo = 1`, id, fmt.Sprintf("Usuário ativo com ID %d não encontrado", id))
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any, notFoundMsg string) (domain.User, error) {
	r.logger.Debug("Buscando usuário no repositório.", map[string]interface{}{"filtro": where})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM usuarios ` + where

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("Usuário não encontrado no DB.", map[string]interface{}{"filtro": where})
			return domain.User{}, apperror.NewNotFoundError(notFoundMsg)
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}

	return user, nil
}
