package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// SnapshotInto grava uma cópia consistente do banco em path com VACUUM INTO.
// A cópia passa pelo lock do SQLite, então nunca contém uma transação pela metade.
// path não pode existir ou precisa estar vazio.
func SnapshotInto(ctx context.Context, db *sql.DB, path string) error {
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return errors.Wrapf(err, "falha ao gerar snapshot do banco em %s", path)
	}
	return nil
}
