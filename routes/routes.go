package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"CONVITE_GO/efi"
	"CONVITE_GO/handlers"
	"CONVITE_GO/metric"
	"CONVITE_GO/middleware"
	"CONVITE_GO/pix"
	"CONVITE_GO/qrcode"
)

// Deps reúne o que as rotas precisam. Os campos de interface ficam nil
// quando o recurso não está configurado e as rotas respondem 501.
type Deps struct {
	Log     *zap.Logger
	Metrics *metric.Metrics
	Backend string

	Confirmations handlers.ConfirmationStore
	Finder        handlers.ConfirmationFinder
	Files         handlers.FileStore
	Payments      handlers.PaymentStore
	Charges       efi.StatusChecker

	Builder  *pix.Builder
	Renderer *qrcode.Renderer

	CorsOrigin        string
	JwtSecret         []byte
	AdminPasswordHash string
	TokenTTL          time.Duration
	RateLimit         *middleware.IPRateLimiter
}

func SetupRoutes(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(d.Log, d.Metrics))
	router.Use(middleware.CorsMiddleware(d.CorsOrigin))

	// Métricas
	router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Health Check
	var latest handlers.LatestFileFinder
	if d.Files != nil {
		latest = d.Files
	}
	api.HandleFunc("/health", handlers.HealthCheckHandler(d.Backend, latest)).Methods("GET")

	// Rotas públicas do convite, com limite por IP
	public := func(h http.HandlerFunc) http.Handler {
		if d.RateLimit == nil {
			return h
		}
		return middleware.RateLimit(d.RateLimit)(h)
	}
	api.Handle("/save-data", public(handlers.SaveDataHandler(d.Confirmations, d.Backend, d.Metrics, d.Log))).Methods("POST", "OPTIONS")
	api.Handle("/pix", public(handlers.PixHandler(d.Builder, d.Renderer, d.Metrics, d.Log))).Methods("POST", "OPTIONS")
	api.Handle("/mbway", public(handlers.MbwayHandler(d.Renderer, d.Metrics, d.Log))).Methods("POST", "OPTIONS")
	api.Handle("/payments", public(handlers.CreatePaymentHandler(d.Payments, d.Log))).Methods("POST", "OPTIONS")
	api.Handle("/admin/login", public(handlers.AdminLoginHandler(d.AdminPasswordHash, d.JwtSecret, d.TokenTTL, d.Log))).Methods("POST", "OPTIONS")

	api.HandleFunc("/confirmations", handlers.ConfirmationsHandler(d.Finder, d.Log)).Methods("GET")

	// Arquivos CSV
	api.HandleFunc("/files", handlers.ListFilesHandler(d.Files, d.Log)).Methods("GET")
	api.HandleFunc("/latest", handlers.LatestFileHandler(d.Files, d.Log)).Methods("GET")
	api.HandleFunc("/download/{fileName}", handlers.DownloadFileHandler(d.Files, d.Log)).Methods("GET")

	// Página de pagamentos (admin)
	admin := middleware.RequireAdmin(d.JwtSecret)
	api.Handle("/payments", admin(handlers.ListPaymentsHandler(d.Payments, d.Log))).Methods("GET")
	api.Handle("/payments/sync", admin(handlers.SyncAllPaymentsHandler(d.Payments, d.Charges, d.Log))).Methods("POST", "OPTIONS")
	api.Handle("/payments/{id}", admin(handlers.UpdatePaymentHandler(d.Payments, d.Log))).Methods("PUT", "OPTIONS")
	api.Handle("/payments/{id}/sync", admin(handlers.SyncPaymentHandler(d.Payments, d.Charges, d.Log))).Methods("POST", "OPTIONS")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Rota não encontrada"}`))
	})

	return router
}
