package efi

import (
	"context"
	"time"

	"go.uber.org/zap"

	"CONVITE_GO/models"
)

// PendingStore é satisfeito por *repository.PaymentRepository.
type PendingStore interface {
	ListPendingWithTxID(ctx context.Context, paymentType string) ([]models.Payment, error)
	PaymentUpdater
}

type SyncReport struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// SyncPending consulta todos os pagamentos pendentes com txid.
// A falha de um pagamento é registrada e não interrompe os demais.
func SyncPending(ctx context.Context, checker StatusChecker, store PendingStore, paymentType string, log *zap.Logger) (SyncReport, error) {
	payments, err := store.ListPendingWithTxID(ctx, paymentType)
	if err != nil {
		return SyncReport{}, err
	}

	var report SyncReport
	for _, p := range payments {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		res, chargeStatus, err := Sync(ctx, checker, store, p)
		if err != nil {
			report.Failed++
			log.Error("falha ao sincronizar pagamento", zap.String("id", p.ID), zap.String("txid", p.TxID), zap.Error(err))
			continue
		}
		if res.Status != p.Status {
			report.Updated++
		}
		log.Debug("pagamento consultado",
			zap.String("id", p.ID),
			zap.String("txid", p.TxID),
			zap.String("charge_status", chargeStatus),
			zap.String("status", res.Status),
		)
	}
	return report, nil
}

// Monitor roda SyncPending a cada intervalo até o contexto ser cancelado.
func Monitor(ctx context.Context, interval time.Duration, checker StatusChecker, store PendingStore, paymentType string, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("monitoramento de pagamentos iniciado", zap.Duration("interval", interval), zap.String("payment_type", paymentType))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := SyncPending(ctx, checker, store, paymentType, log)
			if err != nil {
				log.Error("erro no monitoramento de pagamentos", zap.Error(err))
				continue
			}
			if report.Checked > 0 {
				log.Info("monitoramento de pagamentos",
					zap.Int("checked", report.Checked),
					zap.Int("updated", report.Updated),
					zap.Int("failed", report.Failed),
				)
			}
		}
	}
}
