// Package mailer delivers one HTML message per call over an
// authenticated STARTTLS SMTP session. Failures are returned to the
// caller and never retried.
package mailer

import (
	"fmt"
	"time"

	mail "gopkg.in/mail.v2"
)

const senderName = "Scout"

type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func New(host string, port int, username, password string) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.StartTLSPolicy = mail.MandatoryStartTLS

	return &Mailer{
		dialer: dialer,
		from:   username,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, senderName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dial and send: %w", err)
	}

	return nil
}

// Subject is the daily subject line, dated so consecutive briefs thread
// separately in the inbox.
func Subject(now time.Time) string {
	return fmt.Sprintf("🛸 Daily Brief - %s", now.Format("01/02/2006"))
}
