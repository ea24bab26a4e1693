package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"CONVITE_GO/config"
	"CONVITE_GO/database"
	"CONVITE_GO/models"
)

var created = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func TestWritePaymentsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writePaymentsCSV(&buf, []models.Payment{{
		ID:          "p1",
		Email:       "ana@exemplo.com",
		Amount:      decimal.NewFromInt(150),
		PaymentType: "pix",
		Status:      models.PaymentReceived,
		Message:     "Felicidades, muitas!",
		TxID:        "PIX-1",
		CreatedAt:   created,
		UpdatedAt:   created,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,email,amount,payment_type,status,message,description,tx_id,created_at,updated_at", lines[0])
	assert.Equal(t, `p1,ana@exemplo.com,150.00,pix,received,"Felicidades, muitas!",,PIX-1,2025-03-10T14:30:00Z,2025-03-10T14:30:00Z`, lines[1])
}

func TestPrintPayments(t *testing.T) {
	var buf bytes.Buffer
	printPayments(&buf, []models.Payment{{Email: "ana@exemplo.com", Amount: decimal.RequireFromString("49.9"), PaymentType: "mbway", Status: "pending", CreatedAt: created}})

	out := buf.String()
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "ana@exemplo.com")
	assert.Contains(t, out, "49.90")
	assert.Contains(t, out, "Total: 1")
}

func TestPrintConfirmations(t *testing.T) {
	var buf bytes.Buffer
	printConfirmations(&buf, []models.Confirmation{{Email: "ana@exemplo.com", Name: "Ana", Guest: "2", PlateOption: "Peixe", CreatedAt: created}})

	out := buf.String()
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Peixe")
	assert.Contains(t, out, "Total: 1")
}

func TestBuildConfirmationBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	ctx := context.Background()

	csvBackend, err := buildConfirmationBackend(ctx, config.BackendCSV, nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, csvBackend.Store)
	assert.NotNil(t, csvBackend.Files)
	assert.Nil(t, csvBackend.Finder)

	_, err = buildConfirmationBackend(ctx, config.BackendPostgres, nil, zap.NewNop())
	assert.ErrorIs(t, err, database.ErrNotConfigured)

	t.Setenv("EMAIL_TO", "")
	_, err = buildConfirmationBackend(ctx, config.BackendEmail, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = buildConfirmationBackend(ctx, "ftp", nil, zap.NewNop())
	assert.Error(t, err)
}
