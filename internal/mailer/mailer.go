package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/SeakMengs/CourseCert/internal/config"
	"go.uber.org/zap"
)

const (
	MAX_RETRY = 3
)

type MailTemplateFile string

const (
	TemplateCertificateAvailable MailTemplateFile = "templates/certificate_available.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toEmail string, data any) (int, error)
}

// CertificateAvailableData feeds templates/certificate_available.tmpl.
type CertificateAvailableData struct {
	AppName     string `json:"app_name"`
	Username    string `json:"username"`
	CourseName  string `json:"course_name"`
	VerifyURL   string `json:"verify_url"`
	DownloadURL string `json:"download_url"`
}

// Render executes the "subject" and "body" blocks of the template.
func Render(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, string(templateFile))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse email template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to execute body template: %w", err)
	}

	return strings.TrimSpace(subject.String()), body.String(), nil
}

// NewClient picks the mail provider configured by MAIL_PROVIDER.
func NewClient(cfg config.MailConfig, isProduction bool, logger *zap.SugaredLogger) (Client, error) {
	switch strings.ToLower(cfg.PROVIDER) {
	case "sendgrid":
		return NewSendgrid(cfg.SEND_GRID.API_KEY, cfg.FROM_EMAIL, isProduction, logger), nil
	case "gmail":
		return NewGmailMailer(cfg.GMAIL_USERNAME, cfg.GMAIL_APP_PASSWORD, logger), nil
	}

	return nil, fmt.Errorf("unknown mail provider %q", cfg.PROVIDER)
}
