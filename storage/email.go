package storage

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"CONVITE_GO/models"
	"CONVITE_GO/repository"
)

// Sender é o que EmailStore precisa do mailer.
type Sender interface {
	Send(ctx context.Context, subject, text, html string) error
}

// EmailStore encaminha cada confirmação por e-mail aos anfitriões.
type EmailStore struct {
	sender Sender
	now    func() time.Time
}

func NewEmailStore(sender Sender) *EmailStore {
	return &EmailStore{sender: sender, now: time.Now}
}

var emailTemplate = template.Must(template.New("confirmation").Parse(`<div>
  <p>Nova confirmação recebida.</p>
  <p><strong>ID:</strong> {{.Meta.ID}}<br/><strong>Data:</strong> {{.Meta.Timestamp}}</p>
  <table border="1" cellpadding="0" cellspacing="0" style="border-collapse:collapse;">
    {{- range .Rows}}
    <tr><td style="padding:4px 8px;"><strong>{{.Key}}</strong></td><td style="padding:4px 8px;">{{.Value}}</td></tr>
    {{- end}}
  </table>
</div>`))

type emailRow struct {
	Key   string
	Value string
}

func (s *EmailStore) Save(ctx context.Context, data map[string]any) (models.ConfirmationMeta, error) {
	meta := newMeta(s.now())
	subject, text, html, err := formatEmail(meta, data)
	if err != nil {
		return models.ConfirmationMeta{}, err
	}
	if err := s.sender.Send(ctx, subject, text, html); err != nil {
		return models.ConfirmationMeta{}, err
	}
	return meta, nil
}

func formatEmail(meta models.ConfirmationMeta, data map[string]any) (string, string, string, error) {
	header, values := withMeta(meta, data)

	rows := make([]emailRow, 0, len(header)-2)
	lines := []string{
		"Nova confirmação recebida.",
		"ID: " + meta.ID,
		"Data: " + meta.Timestamp,
		"",
	}
	for _, k := range header[2:] {
		rows = append(rows, emailRow{Key: k, Value: values[k]})
		lines = append(lines, k+": "+values[k])
	}

	var html bytes.Buffer
	err := emailTemplate.Execute(&html, struct {
		Meta models.ConfirmationMeta
		Rows []emailRow
	}{meta, rows})
	if err != nil {
		return "", "", "", fmt.Errorf("erro ao montar e-mail: %w", err)
	}

	name := repository.StringField(data, "Name", "name")
	if name == "" {
		name = "Convidado"
	}
	return "Nova confirmação de " + name, strings.Join(lines, "\n"), html.String(), nil
}
