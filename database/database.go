package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/lib/pq" // Driver PostgreSQL

	"CONVITE_GO/config"
)

var ErrNotConfigured = errors.New("DATABASE_URL não definida nas variáveis de ambiente")

// Connect cria uma conexão com o banco de dados PostgreSQL
func Connect() (*sql.DB, error) {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		return nil, ErrNotConfigured
	}

	dsn, err := withSSLMode(dbURL, config.GetDatabaseSSL())
	if err != nil {
		return nil, err
	}

	// Abre a conexão com o banco
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao banco de dados: %w", err)
	}

	// Testa a conexão
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar a conexão com o banco: %w", err)
	}

	return db, nil
}

// withSSLMode define o sslmode quando a URL não traz um.
// Bancos gerenciados (qualquer host fora de localhost) exigem TLS.
func withSSLMode(dbURL, ssl string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("DATABASE_URL inválida: %w", err)
	}

	q := u.Query()
	if q.Get("sslmode") != "" {
		return dbURL, nil
	}

	mode := "disable"
	switch ssl {
	case "true":
		mode = "require"
	case "false":
	default:
		if host := u.Hostname(); host != "" && host != "localhost" && host != "127.0.0.1" {
			mode = "require"
		}
	}

	q.Set("sslmode", mode)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Host devolve host/banco da URL para mensagens de log, sem credenciais
func Host(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return ""
	}
	return u.Host + u.Path
}
