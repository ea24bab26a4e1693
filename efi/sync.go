package efi

import (
	"context"
	"errors"
	"fmt"

	"CONVITE_GO/models"
)

var ErrMissingTxID = errors.New("pagamento sem txId")

// StatusChecker é satisfeito por *ChargeChecker.
type StatusChecker interface {
	Status(txid string) (string, error)
}

type PaymentUpdater interface {
	UpdateStatus(ctx context.Context, id string, upd models.PaymentUpdate) (models.Payment, error)
}

// Sync consulta a cobrança do pagamento e grava o novo status quando ele mudou.
// Devolve o pagamento (atualizado ou não) e o status bruto da Efí.
func Sync(ctx context.Context, checker StatusChecker, store PaymentUpdater, p models.Payment) (models.Payment, string, error) {
	if p.TxID == "" {
		return p, "", ErrMissingTxID
	}

	chargeStatus, err := checker.Status(p.TxID)
	if err != nil {
		return p, "", err
	}

	status := PaymentStatus(chargeStatus)
	if status == p.Status {
		return p, chargeStatus, nil
	}

	updated, err := store.UpdateStatus(ctx, p.ID, models.PaymentUpdate{Status: &status})
	if err != nil {
		return p, chargeStatus, fmt.Errorf("erro ao atualizar pagamento %s: %w", p.ID, err)
	}
	return updated, chargeStatus, nil
}
