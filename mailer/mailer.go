package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"CONVITE_GO/config"
)

var ErrNotConfigured = errors.New("configuração de e-mail incompleta (EMAIL_HOST, EMAIL_FROM, EMAIL_TO)")

// Mailer envia e-mails por SMTP para o endereço fixo dos anfitriões.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func New(settings config.EmailSettings) (*Mailer, error) {
	if !settings.Configured() {
		return nil, ErrNotConfigured
	}

	d := gomail.NewDialer(settings.Host, settings.Port, settings.User, settings.Pass)
	d.SSL = settings.Secure

	return &Mailer{dialer: d, from: settings.From, to: settings.To}, nil
}

// Send envia uma mensagem com corpo texto e alternativa HTML.
func (m *Mailer) Send(ctx context.Context, subject, text, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}
	return nil
}

// Verify abre e fecha uma conexão SMTP para validar host e credenciais.
func (m *Mailer) Verify() error {
	conn, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("erro ao conectar no SMTP: %w", err)
	}
	return conn.Close()
}
