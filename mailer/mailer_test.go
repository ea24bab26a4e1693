package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CONVITE_GO/config"
)

func TestNew_RequiresSettings(t *testing.T) {
	_, err := New(config.EmailSettings{Host: "smtp.exemplo.com", From: "a@exemplo.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_SSL(t *testing.T) {
	m, err := New(config.EmailSettings{
		Host:   "smtp.exemplo.com",
		Port:   465,
		From:   "a@exemplo.com",
		To:     "b@exemplo.com",
		Secure: true,
	})
	require.NoError(t, err)
	assert.True(t, m.dialer.SSL)
	assert.Equal(t, "b@exemplo.com", m.to)
}

func TestSend_CanceledContext(t *testing.T) {
	m, err := New(config.EmailSettings{Host: "smtp.exemplo.com", Port: 587, From: "a@exemplo.com", To: "b@exemplo.com"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, "assunto", "texto", ""), context.Canceled)
}
