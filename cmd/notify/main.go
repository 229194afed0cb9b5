package main

import (
	"context"
	"flag"

	"cc-catalog/config"
	"cc-catalog/logging"
	"cc-catalog/notifier"
)

// Sends one test notification through the configured SMTP settings.
func main() {
	var (
		envFile = flag.String("env", ".env", "Path to an optional .env file")
		message = flag.String("message", "Test notification", "Message to send")
	)
	flag.Parse()

	log := logging.New("cc-catalog-notify", true)
	if err := config.LoadEnvFile(*envFile); err != nil {
		log.WithError(err).Fatal("failed to load env file")
	}
	cfg := config.Load()

	emailCfg := notifier.GetEmailConfigFromEnv(log)
	if !emailCfg.Enabled() {
		log.Fatal("EMAIL_SMTP_HOST and EMAIL_RECIPIENT must be set")
	}
	email, err := notifier.NewEmailNotifier(emailCfg, cfg.AddonID, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create email notifier")
	}

	log.Info("attempting to send test email")
	if err := email.Notify(context.Background(), *message); err != nil {
		log.WithError(err).Fatal("failed to send email")
	}
	log.Info("email sent successfully")
}
