package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CONVITE_GO/config"
	"CONVITE_GO/efi"
	"CONVITE_GO/models"
	"CONVITE_GO/repository"
)

var (
	paymentsOut string
	syncType    string
)

var dumpPaymentsCmd = &cobra.Command{
	Use:   "dump-payments",
	Short: "Exporta os pagamentos não cancelados para CSV e lista no console",
	RunE:  runDumpPayments,
}

var syncPaymentsCmd = &cobra.Command{
	Use:   "sync-payments",
	Short: "Consulta na Efí os pagamentos PIX pendentes e atualiza o status",
	RunE:  runSyncPayments,
}

func init() {
	dumpPaymentsCmd.Flags().StringVarP(&paymentsOut, "out", "o", "payments.csv", "Arquivo CSV de saída")
	syncPaymentsCmd.Flags().StringVar(&syncType, "type", "pix", "Tipo de pagamento a sincronizar")
}

var paymentsHeader = []string{"id", "email", "amount", "payment_type", "status", "message", "description", "tx_id", "created_at", "updated_at"}

// writePaymentsCSV grava os pagamentos com cabeçalho, valores com duas casas
func writePaymentsCSV(w io.Writer, payments []models.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(paymentsHeader); err != nil {
		return err
	}
	for _, p := range payments {
		record := []string{
			p.ID,
			p.Email,
			p.Amount.StringFixed(2),
			p.PaymentType,
			p.Status,
			p.Message,
			p.Description,
			p.TxID,
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func printPayments(w io.Writer, payments []models.Payment) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATA\tEMAIL\tVALOR\tTIPO\tSTATUS\tTXID")
	for _, p := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.CreatedAt.Local().Format("02/01/2006 15:04"),
			p.Email,
			p.Amount.StringFixed(2),
			p.PaymentType,
			p.Status,
			p.TxID,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %d\n", len(payments))
}

func runDumpPayments(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := requireDatabase(log)
	if err != nil {
		return err
	}
	defer db.Close()

	payments, err := repository.NewPaymentRepository(db).ListActive(cmd.Context())
	if err != nil {
		return err
	}

	f, err := os.Create(paymentsOut)
	if err != nil {
		return fmt.Errorf("erro ao criar %s: %w", paymentsOut, err)
	}
	defer f.Close()

	if err := writePaymentsCSV(f, payments); err != nil {
		return fmt.Errorf("erro ao gravar %s: %w", paymentsOut, err)
	}

	printPayments(cmd.OutOrStdout(), payments)
	log.Info("pagamentos exportados", zap.String("file", paymentsOut), zap.Int("count", len(payments)))
	return nil
}

func runSyncPayments(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !config.EfiConfigured() {
		return fmt.Errorf("CLIENT_ID e CLIENT_SECRET da Efí não definidos")
	}

	db, err := requireDatabase(log)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := efi.SyncPending(cmd.Context(), efi.NewChargeChecker(config.GetCredentials()),
		repository.NewPaymentRepository(db), syncType, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Consultados: %d, atualizados: %d, falhas: %d\n", report.Checked, report.Updated, report.Failed)
	return nil
}
