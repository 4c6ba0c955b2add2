package email

import (
	"context"
	"html/template"

	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer renders emails and writes them to the log instead of sending.
// Used in development and end to end tests.
type LogMailer struct {
	log       logrus.FieldLogger
	templates *template.Template
	appName   string
}

func NewLogMailer(log logrus.FieldLogger, appName string) (*LogMailer, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &LogMailer{log: log, templates: tmpl, appName: appName}, nil
}

func (m *LogMailer) SendConfirmation(ctx context.Context, to, link string) error {
	return m.deliver("confirmation", confirmationSubject, to, link, ConfirmationData{Link: link, AppName: m.appName})
}

func (m *LogMailer) SendPasswordRecovery(ctx context.Context, to, link string) error {
	return m.deliver("recovery", recoverySubject, to, link, RecoveryData{Link: link, AppName: m.appName})
}

func (m *LogMailer) deliver(name, subject, to, link string, data interface{}) error {
	body, err := render(m.templates, name, data)
	if err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"link":    link,
		"bytes":   len(body),
	}).Info("mail not sent, mock mailer enabled")
	return nil
}
