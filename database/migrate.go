package database

import (
	"database/sql"
	"fmt"
)

var confirmationsTable = `CREATE TABLE IF NOT EXISTS confirmations (
			id UUID PRIMARY KEY,
			email VARCHAR(255),
			name TEXT,
			guest TEXT,
			plate_option TEXT,
			price TEXT,
			submitted_at TIMESTAMPTZ,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		);`

const confirmationsIndex = `CREATE INDEX IF NOT EXISTS confirmations_email_idx ON confirmations (lower(email));`

func RunMigrations(db *sql.DB) error {
	queries := []string{
		// Confirmações de presença (RSVP)
		confirmationsTable,

		confirmationsIndex,

		// Pagamentos de presentes (PIX, MB WAY, ...)
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			amount NUMERIC(12, 2) NOT NULL,
			payment_type VARCHAR(50) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			message TEXT,
			description TEXT,
			tx_id VARCHAR(100),
			raw_data JSONB,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);`,

		`CREATE INDEX IF NOT EXISTS payments_email_idx ON payments (email);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("erro ao executar a query: %w\n%v", err, query)
		}
	}

	return nil
}

// ResetConfirmations apaga e recria a tabela de confirmações
func ResetConfirmations(db *sql.DB) error {
	if _, err := db.Exec(`DROP TABLE IF EXISTS confirmations`); err != nil {
		return fmt.Errorf("erro ao apagar confirmations: %w", err)
	}
	if _, err := db.Exec(confirmationsTable); err != nil {
		return fmt.Errorf("erro ao recriar confirmations: %w", err)
	}
	if _, err := db.Exec(confirmationsIndex); err != nil {
		return fmt.Errorf("erro ao recriar índice de confirmations: %w", err)
	}
	return nil
}
