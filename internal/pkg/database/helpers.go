package database

import (
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// TimeLayout é o formato de largura fixa usado nas colunas de data (TEXT).
// Com largura fixa a ordenação lexicográfica coincide com a cronológica.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime converte para UTC no formato persistido.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime lê uma coluna de data gravada por FormatTime.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

// IsUniqueViolation indica se o erro do driver é violação de UNIQUE/PRIMARY KEY.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
