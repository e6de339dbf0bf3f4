package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"scheduling-app-server/internal/models"
)

// Mailer delivers booking notifications over SMTP. Dispatch is asynchronous
// and fire-and-forget: a failed delivery is logged and left to the mail
// relay's own retry policy, it never affects the booking transaction.
type Mailer struct {
	addr string
	from string
	log  zerolog.Logger
}

// NewMailer builds a mailer for host:port. With an empty host the mailer
// only logs, which keeps local development working without a relay.
func NewMailer(host, port, from string, log zerolog.Logger) *Mailer {
	host = strings.TrimSpace(host)
	if from == "" {
		from = "no-reply@agendamento.local"
	}
	addr := ""
	if host != "" {
		addr = fmt.Sprintf("%s:%s", host, strings.TrimSpace(port))
	}
	return &Mailer{addr: addr, from: from, log: log}
}

// SendAppointmentConfirmation mails the booking details together with the QR
// payload the visitor presents at the gate.
func (m *Mailer) SendAppointmentConfirmation(a *models.Appointment) {
	kind := "Individual"
	if a.IsGroup {
		kind = "Group"
	}
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your visit has been scheduled.\n\n"+
			"Date: %s\nTime: %s\nType: %s\nParty size: %d\n\n"+
			"Present the QR code below at the entrance:\n%s\n",
		a.Name, a.Date, a.Time, kind, a.PartySize, a.QRPayload())

	m.dispatch(a.Email, "Appointment confirmed", body)
}

// SendCancellationNotice mails the requester that the booking was cancelled.
func (m *Mailer) SendCancellationNotice(a *models.Appointment) {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your appointment for %s at %s has been cancelled.\n",
		a.Name, a.Date, a.Time)

	m.dispatch(a.Email, "Appointment cancelled", body)
}

func (m *Mailer) dispatch(to, subject, body string) {
	if m.addr == "" {
		m.log.Info().Str("to", to).Str("subject", subject).Msg("mailer disabled, skipping delivery")
		return
	}

	go func() {
		msg := buildMessage(m.from, to, subject, body)
		if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
			m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("notification delivery failed")
		}
	}()
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from, to, subject, body)
}
