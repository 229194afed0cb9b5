package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/mail.v2"
)

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier mails failure reports to an operator.
type EmailNotifier struct {
	senderEmail    string
	recipientEmail string
	addonID        string
	sender         Sender
	htmlTemplate   *template.Template
	log            *logrus.Entry
	now            func() time.Time
}

// EmailConfig contains configuration for email notifications
type EmailConfig struct {
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

// Enabled reports whether enough is configured to send mail.
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.RecipientEmail != ""
}

const emailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.AddonID}} - Request failed</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
        h1 { color: #e50914; }
        .footer { font-size: 12px; color: #666; margin-top: 50px; text-align: center; }
    </style>
</head>
<body>
    <h1>{{.AddonID}}</h1>
    <p>A request failed on {{.Date}}:</p>
    <p><strong>{{.Message}}</strong></p>
    <div class="footer">
        <p>This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`

// NewEmailNotifier creates a notifier that sends through an SMTP dialer
// built from config.
func NewEmailNotifier(config EmailConfig, addonID string, log *logrus.Entry) (*EmailNotifier, error) {
	user := config.SMTPUser
	if user == "" {
		user = config.SenderEmail
	}
	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, user, config.SenderPassword)
	return newEmailNotifier(config, addonID, d, log)
}

func newEmailNotifier(config EmailConfig, addonID string, sender Sender, log *logrus.Entry) (*EmailNotifier, error) {
	tmpl, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %v", err)
	}
	return &EmailNotifier{
		senderEmail:    config.SenderEmail,
		recipientEmail: config.RecipientEmail,
		addonID:        addonID,
		sender:         sender,
		htmlTemplate:   tmpl,
		log:            log.WithField("component", "email"),
		now:            time.Now,
	}, nil
}

// GetEmailConfigFromEnv loads email configuration from environment variables
func GetEmailConfigFromEnv(log *logrus.Entry) EmailConfig {
	smtpPort := 587
	if portStr := os.Getenv("EMAIL_SMTP_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			log.WithField("port", portStr).Warn("invalid SMTP port, using default 587")
		} else {
			smtpPort = p
		}
	}

	cfg := EmailConfig{
		SMTPHost:       os.Getenv("EMAIL_SMTP_HOST"),
		SMTPPort:       smtpPort,
		SMTPUser:       os.Getenv("EMAIL_SMTP_USER"),
		SenderEmail:    os.Getenv("EMAIL_SENDER"),
		SenderPassword: os.Getenv("EMAIL_PASSWORD"),
		RecipientEmail: os.Getenv("EMAIL_RECIPIENT"),
	}

	log.WithFields(logrus.Fields{
		"host":      cfg.SMTPHost,
		"port":      cfg.SMTPPort,
		"sender":    cfg.SenderEmail,
		"token":     maskSecret(cfg.SenderPassword),
		"recipient": cfg.RecipientEmail,
	}).Debug("email configuration")
	return cfg
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) > 8:
		return s[:4] + "..." + s[len(s)-4:]
	default:
		return "***"
	}
}

// Notify mails message. Without a recipient it is a no-op.
func (n *EmailNotifier) Notify(ctx context.Context, message string) error {
	if n.recipientEmail == "" {
		n.log.Debug("no recipient email configured, skipping notification")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	date := n.now().Format("January 2, 2006 at 3:04 PM")
	data := struct {
		AddonID string
		Date    string
		Message string
	}{n.addonID, date, message}

	var body bytes.Buffer
	if err := n.htmlTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.senderEmail)
	m.SetHeader("To", n.recipientEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s: %s", n.addonID, message))
	m.SetBody("text/plain", fmt.Sprintf("%s\n\nA request failed on %s:\n%s\n", n.addonID, date, message))
	m.AddAlternative("text/html", body.String())

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	n.log.WithField("recipient", n.recipientEmail).Info("email notification sent")
	return nil
}
