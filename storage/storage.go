// Package storage guarda as confirmações de presença fora do Postgres:
// arquivo CSV local, objeto no S3 ou e-mail para os anfitriões.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"CONVITE_GO/models"
	"CONVITE_GO/repository"
)

var (
	ErrInvalidFileName = errors.New("nome de arquivo inválido")
	ErrFileNotFound    = errors.New("arquivo não encontrado")
)

func newMeta(now time.Time) models.ConfirmationMeta {
	return models.ConfirmationMeta{
		ID:        uuid.NewString(),
		Timestamp: now.UTC().Format(repository.TimestampLayout),
	}
}

// withMeta devolve id, timestamp e os campos do formulário, nesta ordem de chaves.
func withMeta(meta models.ConfirmationMeta, data map[string]any) ([]string, map[string]string) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == "id" || k == "timestamp" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]string, len(keys)+2)
	values["id"] = meta.ID
	values["timestamp"] = meta.Timestamp
	for _, k := range keys {
		values[k] = stringify(data[k])
	}
	return append([]string{"id", "timestamp"}, keys...), values
}

// stringify converte um valor do JSON para texto; listas e objetos viram JSON.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
