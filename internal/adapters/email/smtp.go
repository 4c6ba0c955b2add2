package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/config"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends account emails through an SMTP relay.
type SMTPMailer struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewSMTPMailer parses the built-in templates.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{cfg: cfg, templates: tmpl}, nil
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return tmpl, nil
}

func (m *SMTPMailer) SendConfirmation(ctx context.Context, to, link string) error {
	body, err := render(m.templates, "confirmation", ConfirmationData{Link: link, AppName: m.cfg.FromName})
	if err != nil {
		return err
	}
	return m.Send(ctx, to, confirmationSubject, body)
}

func (m *SMTPMailer) SendPasswordRecovery(ctx context.Context, to, link string) error {
	body, err := render(m.templates, "recovery", RecoveryData{Link: link, AppName: m.cfg.FromName})
	if err != nil {
		return err
	}
	return m.Send(ctx, to, recoverySubject, body)
}

// Send delivers an HTML message. Port 465 style servers need UseSSL, others
// are upgraded with STARTTLS.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := buildMessage(m.cfg.From, m.cfg.FromName, to, subject, body)

	timeout := m.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	dialer := &net.Dialer{Timeout: timeout}
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	var (
		conn net.Conn
		err  error
	)
	if m.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", m.cfg.Addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", m.cfg.Addr())
	}
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %w", m.cfg.Addr(), err)
	}
	conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("failed to send HELO: %w", err)
	}
	if !m.cfg.UseSSL {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate (user: %s): %w", m.cfg.Username, err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender (%s): %w", m.cfg.From, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient (%s): %w", to, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

func buildMessage(from, fromName, to, subject, body string) string {
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, from)
	}

	var msg strings.Builder
	for _, h := range [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	} {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}

func render(t *template.Template, name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
