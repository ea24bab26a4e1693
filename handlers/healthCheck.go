package handlers

import (
	"net/http"
	"time"

	"CONVITE_GO/repository"
)

// LatestFileFinder é satisfeito pelo backend CSV.
type LatestFileFinder interface {
	Latest() (string, error)
}

// HealthCheckHandler lida com a verificação de saúde do sistema.
// files pode ser nil quando o backend não usa arquivos.
func HealthCheckHandler(backend string, files LatestFileFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(repository.TimestampLayout),
			"backend":   backend,
		}
		if files != nil {
			latest, err := files.Latest()
			if err == nil && latest != "" {
				body["latestFile"] = latest
			} else {
				body["latestFile"] = nil
			}
		}
		writeJSON(w, http.StatusOK, body)
	}
}
