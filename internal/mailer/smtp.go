// Package mailer delivers verification mail over SMTP with implicit TLS.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dtroode/contacts-server/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends verification links through an SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
	baseURL  string
}

// NewSMTPMailer creates a mailer. baseURL is the externally visible server
// address verification links point at.
func NewSMTPMailer(host, port, username, password, from, fromName, baseURL string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// SendVerification mails the confirmation link for token to the recipient.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, username, token string) error {
	msg := m.buildMessage(to, username, token)

	serverAddr := m.host + ":" + m.port

	// Implicit TLS for port 465
	tlsConfig := &tls.Config{
		ServerName: m.host,
	}

	dialer := &tls.Dialer{Config: tlsConfig}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message body: %w", err)
	}

	return nil
}

// VerificationLink returns the confirmation URL embedded in the mail body.
func (m *SMTPMailer) VerificationLink(token string) string {
	return fmt.Sprintf("%s/api/auth/verify/%s", m.baseURL, token)
}

func (m *SMTPMailer) buildMessage(to, username, token string) []byte {
	link := m.VerificationLink(token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>Please confirm your email address by following the link below:</p>"+
			"<p><a href=%q>%s</a></p>"+
			"<p>The link expires in 24 hours. If you did not register, ignore this message.</p>",
		username, link, link,
	)

	return []byte(
		fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			"Subject: Confirm your email\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)
}
