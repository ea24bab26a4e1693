package repository

import (
	"database/sql"
	"errors"
	"time"
)

var ErrNotFound = errors.New("registro não encontrado")

// TimestampLayout é o formato ISO com milissegundos usado nas confirmações.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
