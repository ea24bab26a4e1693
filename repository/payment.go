package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"CONVITE_GO/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, email, amount, payment_type, status, COALESCE(message, ''),
			COALESCE(description, ''), COALESCE(tx_id, ''), raw_data, created_at, updated_at`

// Create registra o pagamento com status pending e devolve o registro salvo.
func (r *PaymentRepository) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = uuid.NewString()
	if p.Status == "" {
		p.Status = models.PaymentPending
	}

	var raw any
	if len(p.RawData) > 0 {
		raw = string(p.RawData)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (id, email, amount, payment_type, status, message, description, tx_id, raw_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+paymentColumns,
		p.ID,
		p.Email,
		p.Amount,
		p.PaymentType,
		p.Status,
		nullString(p.Message),
		nullString(p.Description),
		nullString(p.TxID),
		raw,
	)

	saved, err := scanPayment(row)
	if err != nil {
		return models.Payment{}, fmt.Errorf("erro ao salvar pagamento: %w", err)
	}
	return saved, nil
}

// List devolve os pagamentos, mais recentes primeiro. Com email, só os daquele convidado.
func (r *PaymentRepository) List(ctx context.Context, email string) ([]models.Payment, error) {
	if email == "" {
		return r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	}
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE email = $1 ORDER BY created_at DESC`, email)
}

// ListActive devolve os pagamentos não cancelados, usado na exportação CSV
func (r *PaymentRepository) ListActive(ctx context.Context) ([]models.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status != $1 ORDER BY created_at DESC`, models.PaymentCanceled)
}

// ListPendingWithTxID devolve pagamentos pendentes de um tipo que têm txid para consulta no PSP
func (r *PaymentRepository) ListPendingWithTxID(ctx context.Context, paymentType string) ([]models.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+`
		FROM payments
		WHERE status = $1 AND payment_type = $2 AND tx_id IS NOT NULL AND tx_id <> ''
		ORDER BY created_at`, models.PaymentPending, paymentType)
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (models.Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Payment{}, ErrNotFound
	}

	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, ErrNotFound
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}
	return p, nil
}

// UpdateStatus altera status e/ou mensagem. Campos nil ficam como estão.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, upd models.PaymentUpdate) (models.Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Payment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE payments
		SET status = COALESCE($2, status),
			message = COALESCE($3, message),
			updated_at = now()
		WHERE id = $1
		RETURNING `+paymentColumns,
		id,
		nullStringPtr(upd.Status),
		nullStringPtr(upd.Message),
	)

	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, ErrNotFound
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("erro ao atualizar pagamento: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) query(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pagamentos: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pagamento: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler pagamentos: %w", err)
	}
	return payments, nil
}

func scanPayment(s scanner) (models.Payment, error) {
	var (
		p   models.Payment
		raw []byte
	)
	err := s.Scan(&p.ID, &p.Email, &p.Amount, &p.PaymentType, &p.Status, &p.Message,
		&p.Description, &p.TxID, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Payment{}, err
	}
	if len(raw) > 0 {
		p.RawData = raw
	}
	return p, nil
}
