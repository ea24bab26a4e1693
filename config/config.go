package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"CONVITE_GO/pix"
)

// Backends aceitos para guardar as confirmações de presença.
const (
	BackendPostgres = "postgres"
	BackendCSV      = "csv"
	BackendS3       = "s3"
	BackendEmail    = "email"
)

// LoadEnv carrega as variáveis de ambiente do arquivo .env.
// Retorna false quando o arquivo não existe e só as variáveis do processo são usadas.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetDatabaseURL retorna a URL de conexão com o banco de dados (vazia quando não configurada)
func GetDatabaseURL() string {
	return getEnv("DATABASE_URL", "")
}

// GetDatabaseSSL retorna "true", "false" ou "" (automático pelo host)
func GetDatabaseSSL() string {
	return getEnv("DATABASE_SSL", "")
}

// GetPortServerStart retorna a porta do servidor HTTP
func GetPortServerStart() string {
	return getEnv("SERVER_PORT", getEnv("PORT", "5000"))
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

// GetCorsOrigin retorna a origem liberada para o frontend
func GetCorsOrigin() string {
	return getEnv("CORS_ORIGIN", "*")
}

// GetPixMerchant monta os dados fixos do recebedor PIX
func GetPixMerchant() pix.Merchant {
	return pix.Merchant{
		PixKey: getEnv("PIX_KEY", ""),
		Name:   getEnv("PIX_MERCHANT_NAME", pix.DefaultMerchantName),
		City:   getEnv("PIX_MERCHANT_CITY", pix.DefaultMerchantCity),
	}
}

// GetConfirmationBackend escolhe onde as confirmações são gravadas.
// Sem CONFIRMATION_BACKEND usa postgres quando há DATABASE_URL e CSV caso contrário.
func GetConfirmationBackend() string {
	backend := strings.ToLower(getEnv("CONFIRMATION_BACKEND", ""))
	switch backend {
	case BackendPostgres, BackendCSV, BackendS3, BackendEmail:
		return backend
	}
	if GetDatabaseURL() != "" {
		return BackendPostgres
	}
	return BackendCSV
}

// GetDataDir retorna a pasta dos arquivos CSV
func GetDataDir() string {
	return getEnv("DATA_DIR", "data")
}

type EmailSettings struct {
	Host   string
	Port   int
	User   string
	Pass   string
	From   string
	To     string
	Secure bool
}

// Configured indica se há o mínimo para enviar e-mail.
func (e EmailSettings) Configured() bool {
	return e.Host != "" && e.To != "" && e.From != ""
}

func GetEmailSettings() EmailSettings {
	port := getInt("EMAIL_PORT", 587)
	user := getEnv("EMAIL_USER", "")
	secure, err := strconv.ParseBool(os.Getenv("EMAIL_SECURE"))
	if err != nil {
		secure = false
	}
	return EmailSettings{
		Host:   getEnv("EMAIL_HOST", "smtp.gmail.com"),
		Port:   port,
		User:   user,
		Pass:   getEnv("EMAIL_PASS", ""),
		From:   getEnv("EMAIL_FROM", user),
		To:     getEnv("EMAIL_TO", ""),
		Secure: secure || port == 465,
	}
}

func GetAwsRegion() string {
	return getEnv("AWS_REGION", "us-east-1")
}

func GetAwsBucket() string {
	return getEnv("AWS_BUCKET_NAME", "")
}

// GetAwsEndpoint permite apontar para MinIO/LocalStack
func GetAwsEndpoint() string {
	return getEnv("AWS_ENDPOINT", "")
}

func GetJwtSecret() string {
	return getEnv("JWT_SECRET", "")
}

// GetAdminPasswordHash retorna o hash bcrypt da senha da página de pagamentos
func GetAdminPasswordHash() string {
	return getEnv("ADMIN_PASSWORD_HASH", "")
}

func GetTokenTTL() time.Duration {
	return time.Duration(getInt("TOKEN_TTL_HOURS", 24)) * time.Hour
}

// GetRateLimit retorna requisições por segundo e burst por IP nas rotas públicas
func GetRateLimit() (float64, int) {
	return getFloat("RATE_LIMIT_RPS", 2), getInt("RATE_LIMIT_BURST", 10)
}

// GetTrustedProxies lê TRUSTED_PROXIES (IPs ou CIDRs separados por vírgula).
// Só atrás desses proxies o X-Forwarded-For identifica o cliente; entradas inválidas são ignoradas.
func GetTrustedProxies() []netip.Prefix {
	var prefixes []netip.Prefix
	for _, item := range strings.Split(getEnv("TRUSTED_PROXIES", ""), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if p, err := netip.ParsePrefix(item); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(item); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes
}

// GetCredentials retorna as credenciais da API Pix da Efí
func GetCredentials() map[string]interface{} {
	sandbox, err := strconv.ParseBool(os.Getenv("SANDBOX"))
	if err != nil {
		sandbox = false
	}

	return map[string]interface{}{
		"client_id":     os.Getenv("CLIENT_ID"),
		"client_secret": os.Getenv("CLIENT_SECRET"),
		"sandbox":       sandbox,
		"timeout":       getInt("TIMEOUT", 30),
		"CA":            os.Getenv("CA_PEM"),
		"Key":           os.Getenv("KEY_PEM"),
	}
}

// GetPixSyncInterval retorna o intervalo do monitoramento automático dos PIX pendentes (0 desativa)
func GetPixSyncInterval() time.Duration {
	return time.Duration(getInt("PIX_SYNC_INTERVAL_MINUTES", 0)) * time.Minute
}

// EfiConfigured indica se as credenciais da Efí foram informadas
func EfiConfigured() bool {
	return os.Getenv("CLIENT_ID") != "" && os.Getenv("CLIENT_SECRET") != ""
}
