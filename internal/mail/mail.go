// Package mail delivers the invitation email. Delivery is best-effort by
// design: the invitation record is the source of truth and callers only log
// and surface a warning when a send fails.
package mail

import (
	"fmt"  // Template interpolation
	"html" // Escaping names interpolated into the HTML body

	"gopkg.in/gomail.v2" // SMTP client
)

// Message is one outbound email
type Message struct {
	To      string // Recipient address
	Subject string // Subject line
	Text    string // Plain-text body
	HTML    string // HTML body
}

// Sender delivers messages; failures are returned, never thrown
type Sender interface {
	Send(m Message) error
}

// SMTPSender delivers via an SMTP submission endpoint
type SMTPSender struct {
	dialer *gomail.Dialer // SMTP connection settings
	from   string         // Sender address
}

// NewSMTPSender builds a sender for the given SMTP account
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, username, password), from: from}
}

// Send delivers a single message
func (s *SMTPSender) Send(m Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", s.from)               // Sender address
	gm.SetHeader("To", m.To)                   // Recipient address
	gm.SetHeader("Subject", m.Subject)         // Subject line
	gm.SetBody("text/plain", m.Text)           // Plain-text part
	gm.AddAlternative("text/html", m.HTML)     // HTML part
	return s.dialer.DialAndSend(gm)            // Dial, send, close
}

// Invitation builds the invitation email for the given invitee
func Invitation(to, fullName, appURL string) Message {
	name := html.EscapeString(fullName)
	return Message{
		To:      to,
		Subject: "Invitation to join PrivyPay",
		Text:    fmt.Sprintf("You've been invited to join PrivyPay! Click here to sign up: %s/register", appURL),
		HTML: fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Join PrivyPay</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <header style="background-color: #4169E1; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">PrivyPay</h1>
  </header>
  <main style="padding: 20px;">
    <h2>You're invited to join PrivyPay!</h2>
    <p>Hi %s,</p>
    <p>You've been invited to join PrivyPay, the easiest way to send and receive money.</p>
    <p>Click the button below to create your account:</p>
    <a href="%s" style="display: inline-block; background-color: #4169E1; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin-top: 20px;">
      Join PrivyPay
    </a>
  </main>
  <footer style="text-align: center; margin-top: 20px; font-size: 0.8em; color: #666;">
    <p>If you didn't request this invitation, please ignore this email.</p>
  </footer>
</body>
</html>`, name, appURL),
	}
}
