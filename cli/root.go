package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"CONVITE_GO/config"
)

var (
	logLevel string
	rootCmd  *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "convite",
		Short: "Backend do convite: confirmações de presença e presentes via PIX/MB WAY",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Carregar configuração
			config.LoadEnv()
			if !cmd.Flags().Changed("log-level") {
				logLevel = config.GetLogLevel()
			}
		},
		RunE:          runServe, // sem subcomando sobe o servidor
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Nível de log (debug, info, warn, error)")
}

// Execute roda o comando raiz
func Execute() error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dumpPaymentsCmd)
	rootCmd.AddCommand(syncPaymentsCmd)
	rootCmd.AddCommand(dumpConfirmationsCmd)
	rootCmd.AddCommand(resetConfirmationsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		return err
	}
	return nil
}
