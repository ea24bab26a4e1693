package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CONVITE_GO/config"
	"CONVITE_GO/efi"
	"CONVITE_GO/metric"
	"CONVITE_GO/middleware"
	"CONVITE_GO/pix"
	"CONVITE_GO/qrcode"
	"CONVITE_GO/repository"
	"CONVITE_GO/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o servidor HTTP da API do convite",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	backend := config.GetConfirmationBackend()
	confirmations, err := buildConfirmationBackend(ctx, backend, db, log)
	if err != nil {
		return err
	}

	rps, burst := config.GetRateLimit()
	deps := routes.Deps{
		Log:               log,
		Metrics:           metric.New(),
		Backend:           backend,
		Confirmations:     confirmations.Store,
		Finder:            confirmations.Finder,
		Files:             confirmations.Files,
		Builder:           pix.NewBuilder(config.GetPixMerchant()),
		Renderer:          qrcode.NewRenderer(qrcode.DefaultSize),
		CorsOrigin:        config.GetCorsOrigin(),
		AdminPasswordHash: config.GetAdminPasswordHash(),
		TokenTTL:          config.GetTokenTTL(),
		RateLimit:         middleware.NewIPRateLimiter(rps, burst).TrustProxies(config.GetTrustedProxies()...),
	}
	if secret := config.GetJwtSecret(); secret != "" {
		deps.JwtSecret = []byte(secret)
	} else {
		log.Warn("JWT_SECRET não definida, rotas de pagamentos sem autenticação")
	}
	if db != nil {
		deps.Payments = repository.NewPaymentRepository(db)
	}
	if config.EfiConfigured() {
		checker := efi.NewChargeChecker(config.GetCredentials())
		deps.Charges = checker

		// Monitoramento automático dos PIX pendentes
		if interval := config.GetPixSyncInterval(); interval > 0 && db != nil {
			go efi.Monitor(ctx, interval, checker, repository.NewPaymentRepository(db), "pix", log)
		}
	}
	if config.GetPixMerchant().PixKey == "" {
		log.Warn("PIX_KEY não definida, os payloads PIX sairão sem chave")
	}

	// Configurar as rotas
	router := routes.SetupRoutes(deps)

	// Iniciar o servidor
	srv := &http.Server{
		Addr:              ":" + config.GetPortServerStart(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("servidor rodando",
			zap.String("addr", srv.Addr),
			zap.String("backend", backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
