package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"CONVITE_GO/database"
	"CONVITE_GO/models"
	"CONVITE_GO/repository"
)

var confirmationsLimit int

var dumpConfirmationsCmd = &cobra.Command{
	Use:   "dump-confirmations",
	Short: "Lista as últimas confirmações de presença gravadas no Postgres",
	RunE:  runDumpConfirmations,
}

var resetConfirmationsCmd = &cobra.Command{
	Use:   "reset-confirmations",
	Short: "Apaga e recria a tabela de confirmações",
	RunE:  runResetConfirmations,
}

func init() {
	dumpConfirmationsCmd.Flags().IntVarP(&confirmationsLimit, "limit", "n", 50, "Quantidade máxima de confirmações")
}

func printConfirmations(w io.Writer, rows []models.Confirmation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATA\tEMAIL\tNOME\tACOMPANHANTES\tPRATO\tVALOR")
	for _, c := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.CreatedAt.Local().Format("02/01/2006 15:04"),
			c.Email,
			c.Name,
			c.Guest,
			c.PlateOption,
			c.Price,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %d\n", len(rows))
}

func runDumpConfirmations(cmd *cobra.Command, args []string) error {
	if confirmationsLimit <= 0 {
		return fmt.Errorf("--limit deve ser maior que zero")
	}

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

	rows, err := repository.NewConfirmationRepository(db).List(cmd.Context(), confirmationsLimit)
	if err != nil {
		return err
	}
	printConfirmations(cmd.OutOrStdout(), rows)
	return nil
}

func runResetConfirmations(cmd *cobra.Command, args []string) error {
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

	if err := database.ResetConfirmations(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Tabela confirmations recriada")
	return nil
}
