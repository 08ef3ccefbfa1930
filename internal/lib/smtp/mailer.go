// Package smtp отправляет служебные письма (сброс пароля) через SMTP.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Sender отправляет готовое сообщение. Реализуется *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config - параметры SMTP-сервера и ссылок в письмах.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	BaseURL  string
}

// Mailer формирует и отправляет письма.
type Mailer struct {
	cfg    Config
	sender Sender
}

// New создаёт Mailer поверх gomail.Dialer.
func New(cfg Config) *Mailer {
	return NewWithSender(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password))
}

// NewWithSender создаёт Mailer с произвольным отправителем.
func NewWithSender(cfg Config, sender Sender) *Mailer {
	return &Mailer{cfg: cfg, sender: sender}
}

var resetTmpl = template.Must(template.New("reset").Parse(`<div style="font-family: Arial, sans-serif; text-align: center; padding: 40px;">
<h2>{{.Brand}}</h2>
<p>Primili smo zahtev za promenu lozinke.</p>
<p>Kliknite na link ispod da biste postavili novu lozinku (link važi 1 sat):</p>
<p><a href="{{.Link}}">POSTAVI NOVU LOZINKU</a></p>
<p style="color: #999; font-size: 12px;">Ako niste tražili promenu, ignorišite ovaj mejl.</p>
</div>`))

// ResetLink возвращает ссылку на страницу установки нового пароля.
func (m *Mailer) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", m.cfg.BaseURL, url.QueryEscape(token))
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	const op = "smtp.SendPasswordReset"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	link := m.ResetLink(token)
	var html bytes.Buffer
	if err := resetTmpl.Execute(&html, struct{ Brand, Link string }{m.cfg.FromName, link}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Promena lozinke")
	msg.SetBody("text/plain", "Primili smo zahtev za promenu lozinke. Link (važi 1 sat): "+link)
	msg.AddAlternative("text/html", html.String())

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
