package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"CONVITE_GO/models"
)

type ConfirmationRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewConfirmationRepository(db *sql.DB) *ConfirmationRepository {
	return &ConfirmationRepository{db: db, now: utcNow}
}

// Save grava o JSON do formulário acrescentando o timestamp de envio.
func (r *ConfirmationRepository) Save(ctx context.Context, data map[string]any) (models.ConfirmationMeta, error) {
	submitted := r.now()
	meta := models.ConfirmationMeta{
		ID:        uuid.NewString(),
		Timestamp: submitted.Format(TimestampLayout),
	}

	doc := make(map[string]any, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	doc["timestamp"] = meta.Timestamp

	raw, err := json.Marshal(doc)
	if err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao serializar confirmação: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO confirmations (id, email, name, guest, plate_option, price, submitted_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		meta.ID,
		nullString(StringField(data, "email", "Email")),
		nullString(StringField(data, "Name", "name")),
		nullString(StringField(data, "Guest", "guest")),
		nullString(StringField(data, "PlateOption", "plateOption")),
		nullString(StringField(data, "Price", "price")),
		submitted,
		string(raw),
	)
	if err != nil {
		return models.ConfirmationMeta{}, fmt.Errorf("erro ao salvar confirmação: %w", err)
	}
	return meta, nil
}

const confirmationColumns = `id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(guest, ''),
			COALESCE(plate_option, ''), COALESCE(price, ''), submitted_at, created_at, data`

// FindByEmail busca as confirmações de um e-mail, mais recentes primeiro.
// Com timestamp informado, só a confirmação enviada naquele instante.
func (r *ConfirmationRepository) FindByEmail(ctx context.Context, email, timestamp string) ([]models.Confirmation, error) {
	query := `SELECT ` + confirmationColumns + `
		FROM confirmations
		WHERE lower(email) = lower($1)`
	args := []any{strings.TrimSpace(email)}
	if timestamp != "" {
		query += ` AND data->>'timestamp' = $2`
		args = append(args, timestamp)
	}
	query += ` ORDER BY created_at DESC`

	return r.query(ctx, query, args...)
}

// List devolve as últimas confirmações para o comando dump-confirmations.
func (r *ConfirmationRepository) List(ctx context.Context, limit int) ([]models.Confirmation, error) {
	return r.query(ctx, `SELECT `+confirmationColumns+`
		FROM confirmations
		ORDER BY created_at DESC
		LIMIT $1`, limit)
}

func (r *ConfirmationRepository) query(ctx context.Context, query string, args ...any) ([]models.Confirmation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar confirmações: %w", err)
	}
	defer rows.Close()

	var out []models.Confirmation
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler confirmações: %w", err)
	}
	return out, nil
}

func scanConfirmation(s scanner) (models.Confirmation, error) {
	var (
		c         models.Confirmation
		submitted sql.NullTime
		raw       []byte
	)
	if err := s.Scan(&c.ID, &c.Email, &c.Name, &c.Guest, &c.PlateOption, &c.Price, &submitted, &c.CreatedAt, &raw); err != nil {
		return models.Confirmation{}, fmt.Errorf("erro ao ler confirmação: %w", err)
	}
	if submitted.Valid {
		c.SubmittedAt = &submitted.Time
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Data); err != nil {
			return models.Confirmation{}, fmt.Errorf("erro ao decodificar confirmação %s: %w", c.ID, err)
		}
	}
	return c, nil
}

// StringField devolve o primeiro valor encontrado entre as chaves, como texto.
func StringField(data map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := data[k]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		default:
			return fmt.Sprint(val)
		}
	}
	return ""
}
