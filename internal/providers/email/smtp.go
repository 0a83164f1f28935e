package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

type SMTPProvider struct {
	cfg  Config
	tmpl *template.Template
}

func NewSMTP(cfg Config) (*SMTPProvider, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &SMTPProvider{cfg: cfg, tmpl: tmpl}, nil
}

func (p *SMTPProvider) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	return p.send(to, fmt.Sprintf("Verify your %s email", p.cfg.AppName), "verify_email.html", map[string]any{
		"Name":      name,
		"VerifyURL": verifyURL,
		"AppName":   p.cfg.AppName,
	})
}

func (p *SMTPProvider) SendPasswordResetEmail(ctx context.Context, to, name, resetURL string) error {
	return p.send(to, fmt.Sprintf("Reset your %s password", p.cfg.AppName), "reset_password.html", map[string]any{
		"Name":     name,
		"ResetURL": resetURL,
		"AppName":  p.cfg.AppName,
	})
}

func (p *SMTPProvider) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return p.send(to, fmt.Sprintf("Welcome to %s", p.cfg.AppName), "welcome.html", map[string]any{
		"Name":    name,
		"AppName": p.cfg.AppName,
	})
}

func (p *SMTPProvider) send(to, subject, templateName string, data map[string]any) error {
	var body bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("execute template %s: %w", templateName, err)
	}

	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s", to, subject, mime, body.String()))

	return smtp.SendMail(addr, auth, p.cfg.From, []string{to}, msg)
}
