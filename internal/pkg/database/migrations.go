package database

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// MigrationsDir é o diretório dentro de Migrations onde ficam os arquivos .sql.
const MigrationsDir = "migrations"

// Migrations contém os scripts goose embutidos no binário.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Prepare configura o goose para o dialeto SQLite com os scripts embutidos.
func Prepare() error {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "falha ao configurar dialeto do goose")
	}
	return nil
}

// Migrate aplica todas as migrações pendentes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := Prepare(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
		return errors.Wrap(err, "falha ao aplicar migrações")
	}
	return nil
}
