package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	subject, text, html string
	err                 error
}

func (f *fakeSender) Send(_ context.Context, subject, text, html string) error {
	f.subject, f.text, f.html = subject, text, html
	return f.err
}

func TestEmailStore_Save(t *testing.T) {
	sender := &fakeSender{}
	s := NewEmailStore(sender)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	meta, err := s.Save(context.Background(), map[string]any{
		"Name":        "Ana",
		"PlateOption": "<script>peixe</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nova confirmação de Ana", sender.subject)
	assert.Contains(t, sender.text, "ID: "+meta.ID)
	assert.Contains(t, sender.text, "Data: 2026-10-19T09:00:00.000Z")
	assert.Contains(t, sender.text, "PlateOption: <script>peixe</script>")
	assert.Contains(t, sender.html, "&lt;script&gt;peixe&lt;/script&gt;")
	assert.NotContains(t, sender.html, "<script>")
}

func TestEmailStore_DefaultSubjectAndError(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp fora do ar")}
	s := NewEmailStore(sender)

	_, err := s.Save(context.Background(), map[string]any{"Guest": "Bia"})
	assert.ErrorContains(t, err, "smtp fora do ar")
	assert.Equal(t, "Nova confirmação de Convidado", sender.subject)
}
