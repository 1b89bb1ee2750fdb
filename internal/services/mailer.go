package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends notification emails over SMTP. When SMTP is not configured
// it logs the message instead of failing, so local development works
// without a mail account.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	adminTo  string
}

func NewMailer(host, port, username, password, from, adminTo string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		adminTo:  adminTo,
	}
}

func (m *Mailer) configured() bool {
	return m.host != "" && m.port != "" && m.from != ""
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.configured() {
		log.Printf("📧 SMTP not configured, skipping email to %s: %s", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	addr := m.host + ":" + m.port
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// NotifyContactMessage tells the site admin a contact message arrived.
func (m *Mailer) NotifyContactMessage(senderName, senderEmail, message string) error {
	if m.adminTo == "" {
		log.Println("📧 No admin recipient configured, skipping contact notification")
		return nil
	}
	body := fmt.Sprintf(
		"New contact message received.\n\nFrom: %s <%s>\n\nMessage:\n%s\n",
		senderName, senderEmail, message,
	)
	return m.send(m.adminTo, "New contact message from "+senderName, body)
}

// NotifyFeedback tells the site admin new feedback arrived.
func (m *Mailer) NotifyFeedback(name, email, feedbackType, message string) error {
	if m.adminTo == "" {
		log.Println("📧 No admin recipient configured, skipping feedback notification")
		return nil
	}
	body := fmt.Sprintf(
		"New %s feedback received.\n\nFrom: %s <%s>\n\nMessage:\n%s\n",
		feedbackType, name, email, message,
	)
	return m.send(m.adminTo, "New feedback from "+name, body)
}

// SendReply forwards an admin reply to the original sender, quoting their
// message.
func (m *Mailer) SendReply(to, adminName, replyMessage, originalMessage string) error {
	body := fmt.Sprintf(
		"Hello,\n\n%s replied to your message:\n\n%s\n\n--- Your original message ---\n%s\n\nBest regards,\nZidalco\n",
		adminName, replyMessage, originalMessage,
	)
	return m.send(to, "Reply to your message", body)
}

// SendPasswordReset sends the password reset link.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset your password here: %s\n\nIf you did not request this, you can ignore this email.\n",
		resetURL,
	)
	return m.send(to, "Password reset", body)
}
