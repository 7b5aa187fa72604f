package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	// Driver SQLite puro Go (registra o driver "sqlite")
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// MemoryPath abre um banco somente em memória (usado nos testes).
const MemoryPath = ":memory:"

// Pragmas aplicados em toda conexão.
// journal_mode(DELETE) mantém todo o estado em um único arquivo, que é o que vai para o S3.
var pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(DELETE)"

// NewSQLiteDB abre o arquivo do banco local e configura o pool.
// O SQLite aceita um único escritor, então o pool fica limitado a uma conexão.
func NewSQLiteDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "falha ao criar diretório do banco %s", path)
		}
	}

	db, err := sql.Open(driverName, fmt.Sprintf("%s?%s", path, pragmas))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao abrir a conexão com o DB")
	}

	// Uma conexão que nunca expira: em ":memory:" fechar a conexão apaga o banco.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "falha ao realizar o ping inicial no DB")
	}

	return db, nil
}
