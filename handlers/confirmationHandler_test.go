package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CONVITE_GO/config"
	"CONVITE_GO/metric"
	"CONVITE_GO/models"
	"CONVITE_GO/storage"
)

type fakeFinder struct {
	email, timestamp string
	rows             []models.Confirmation
	err              error
}

func (f *fakeFinder) FindByEmail(_ context.Context, email, timestamp string) ([]models.Confirmation, error) {
	f.email, f.timestamp = email, timestamp
	return f.rows, f.err
}

type failingStore struct{}

func (failingStore) Save(context.Context, map[string]any) (models.ConfirmationMeta, error) {
	return models.ConfirmationMeta{}, errors.New("disco cheio")
}

func TestSaveDataHandler_CSV(t *testing.T) {
	store, err := storage.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	h := SaveDataHandler(store, config.BackendCSV, metric.New(), testLog)

	rec, resp := serve(t, "/api/save-data", h, http.MethodPost, "/api/save-data",
		`{"Name":"Ana","email":"ana@exemplo.com","Guest":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["id"])
	assert.NotEmpty(t, resp["timestamp"])

	latest, err := store.Latest()
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(store.Dir(), latest))
	require.NoError(t, err)
	assert.Contains(t, string(content), "id,timestamp,Guest,Name,email")
	assert.Contains(t, string(content), "Ana")
}

func TestSaveDataHandler_Empty(t *testing.T) {
	h := SaveDataHandler(failingStore{}, config.BackendCSV, metric.New(), testLog)

	for _, body := range []string{`{}`, `null`, `[1,2]`, `oops`} {
		rec, resp := serve(t, "/api/save-data", h, http.MethodPost, "/api/save-data", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Nenhum dado enviado", resp["error"])
	}
}

func TestSaveDataHandler_StoreError(t *testing.T) {
	h := SaveDataHandler(failingStore{}, config.BackendS3, metric.New(), testLog)

	rec, resp := serve(t, "/api/save-data", h, http.MethodPost, "/api/save-data", `{"Name":"Ana"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "disco cheio", resp["details"])
}

func TestConfirmationsHandler(t *testing.T) {
	finder := &fakeFinder{rows: []models.Confirmation{{ID: "c1", Email: "ana@exemplo.com", Name: "Ana"}}}
	h := ConfirmationsHandler(finder, testLog)

	rec, resp := serve(t, "/api/confirmations", h, http.MethodGet,
		"/api/confirmations?email=ana@exemplo.com&timestamp=2025-01-01T10:00:00.000Z", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@exemplo.com", finder.email)
	assert.Equal(t, "2025-01-01T10:00:00.000Z", finder.timestamp)
	assert.Len(t, resp["confirmations"], 1)
	assert.Equal(t, "2025-01-01T10:00:00.000Z", resp["timestamp"])
}

func TestConfirmationsHandler_Errors(t *testing.T) {
	rec, _ := serve(t, "/api/confirmations", ConfirmationsHandler(&fakeFinder{}, testLog), http.MethodGet, "/api/confirmations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, "/api/confirmations", ConfirmationsHandler(nil, testLog), http.MethodGet, "/api/confirmations?email=a@b.com", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec, resp := serve(t, "/api/confirmations", ConfirmationsHandler(&fakeFinder{}, testLog), http.MethodGet, "/api/confirmations?email=a@b.com", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, resp["confirmations"])
	assert.Nil(t, resp["timestamp"])
}
