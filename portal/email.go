package portal

import (
	"fmt"
	"net/smtp"
	"os"

	log "github.com/sirupsen/logrus"
)

func envOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// SendEmail delivers one plain-text message through the configured SMTP
// account. Callers treat failure as non-fatal and log it.
func SendEmail(recipient string, subject string, body string) error {
	smtpHost := envOrDefault("SMTP_HOST", "smtp.gmail.com")
	smtpPort := envOrDefault("SMTP_PORT", "587")
	authEmail := os.Getenv("EMAIL")
	authPassword := os.Getenv("EMAIL_PASSWORD")
	fromEmail := envOrDefault("EMAIL_FROM", authEmail)

	if authEmail == "" || authPassword == "" {
		return fmt.Errorf("EMAIL or EMAIL_PASSWORD not configured")
	}

	smtpAuth := smtp.PlainAuth("", authEmail, authPassword, smtpHost)
	to := []string{recipient}

	msg := []byte(
		"From: " + fromEmail + "\r\n" +
			"To: " + recipient + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	if err := smtp.SendMail(smtpHost+":"+smtpPort, smtpAuth, authEmail, to, msg); err != nil {
		return err
	}

	log.WithFields(log.Fields{"recipient": recipient, "subject": subject}).Info("email sent")
	return nil
}
