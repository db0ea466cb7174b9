package mailer

import (
	"os"

	"github.com/spf13/viper"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plaintext mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// MustNewMailer creates a new Mailer from configuration.
func MustNewMailer() *Mailer {
	host := viper.GetString("smtp.host")
	port := viper.GetInt("smtp.port")
	from := viper.GetString("smtp.from")
	if host == "" || from == "" {
		panic("smtp.host and smtp.from must be set in config")
	}
	if port == 0 {
		port = 587
	}

	dialer := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))

	return &Mailer{
		dialer: dialer,
		from:   from,
	}
}

// Send sends a plaintext message. Best-effort: the caller decides whether
// a send error matters.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
