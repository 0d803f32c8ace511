// Package mailer sends transactional email. OTP delivery is required
// (send failures surface to the caller); order notifications are
// best-effort (the caller logs and moves on).
package mailer

import (
	"log"

	"github.com/asharbutt0314/foodexpress/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(to, subject, html string) error
}

// Default is the process mailer. Handlers go through this so tests can
// swap in a recorder.
var Default Mailer = &smtpMailer{}

// Send delivers through the process mailer.
func Send(to, subject, html string) error {
	return Default.Send(to, subject, html)
}

type smtpMailer struct{}

func (m *smtpMailer) Send(to, subject, html string) error {
	cfg := config.Mail
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", cfg.From, "FoodExpress")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	return d.DialAndSend(msg)
}

// consoleMailer logs instead of sending. Used when SMTP credentials
// are absent so local development works without a mail account.
type consoleMailer struct{}

func (m *consoleMailer) Send(to, subject, html string) error {
	log.Printf("[mail] to=%s subject=%q (%d bytes)", to, subject, len(html))
	return nil
}

// Init picks the SMTP mailer when credentials are configured, the
// console fallback otherwise.
func Init() {
	if config.Mail.User == "" {
		log.Println("EMAIL_USER not set, mail goes to the log")
		Default = &consoleMailer{}
		return
	}
	Default = &smtpMailer{}
}
