package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"CONVITE_GO/storage"
)

// FileStore é satisfeito por *storage.CSVStore.
type FileStore interface {
	Files() ([]storage.FileInfo, error)
	Latest() (string, error)
	Path(name string) (string, error)
}

// ListFilesHandler lista os CSVs de confirmações, mais recentes primeiro
func ListFilesHandler(files FileStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if files == nil {
			writeServiceError(w, r, log, "Erro ao listar arquivos", ErrNotSupported)
			return
		}

		list, err := files.Files()
		if err != nil {
			writeServiceError(w, r, log, "Erro ao listar arquivos", err)
			return
		}
		writeSuccess(w, map[string]interface{}{"files": list})
	}
}

// LatestFileHandler indica o CSV mais recente e o caminho para baixá-lo
func LatestFileHandler(files FileStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if files == nil {
			writeServiceError(w, r, log, "Erro ao buscar o arquivo mais recente", ErrNotSupported)
			return
		}

		latest, err := files.Latest()
		if err != nil {
			writeServiceError(w, r, log, "Erro ao buscar o arquivo mais recente", err)
			return
		}
		if latest == "" {
			writeSuccess(w, map[string]interface{}{
				"file":    nil,
				"message": "Nenhum arquivo CSV encontrado",
			})
			return
		}
		writeSuccess(w, map[string]interface{}{
			"file": latest,
			"path": "/api/download/" + latest,
		})
	}
}

// DownloadFileHandler envia um CSV da pasta de dados como anexo
func DownloadFileHandler(files FileStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if files == nil {
			writeServiceError(w, r, log, "Erro ao baixar arquivo", ErrNotSupported)
			return
		}

		path, err := files.Path(mux.Vars(r)["fileName"])
		if err != nil {
			writeServiceError(w, r, log, "Erro ao baixar arquivo", err)
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}
