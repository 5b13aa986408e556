package email

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"amplify/internal/config"
)

const boundary = "AmplifyBoundary7f3a9c"

// Service handles sending email.
type Service struct {
	cfg     *config.Config
	enabled bool
	send    func(to []string, msg []byte) error
}

// NewService creates a new email service.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
	}
	s.send = s.deliver

	if s.enabled {
		slog.Info("email alerts enabled", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	}
	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Send sends a multipart email to the given recipients. It is a no-op when
// email is disabled or there are no recipients.
func (s *Service) Send(to []string, subject, htmlBody, textBody string) error {
	if !s.enabled || len(to) == 0 {
		return nil
	}
	return s.send(to, []byte(s.buildMessage(to, subject, htmlBody, textBody)))
}

// SendAsync sends an email in the background, logging the outcome.
func (s *Service) SendAsync(to []string, subject, htmlBody, textBody string) {
	if !s.enabled || len(to) == 0 {
		return
	}

	go func() {
		if err := s.Send(to, subject, htmlBody, textBody); err != nil {
			slog.Error("failed to send email", "to", to, "error", err)
			return
		}
		slog.Info("email sent", "to", to, "subject", subject)
	}()
}

func (s *Service) buildMessage(to []string, subject, htmlBody, textBody string) string {
	from := s.cfg.SMTPFrom
	if s.cfg.SMTPFromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	for _, part := range []struct{ kind, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		if part.body == "" {
			continue
		}
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		fmt.Fprintf(&msg, "Content-Type: %s; charset=\"UTF-8\"\r\n\r\n", part.kind)
		msg.WriteString(part.body)
		msg.WriteString("\r\n")
	}

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	return msg.String()
}

// deliver sends msg according to the configured TLS mode.
func (s *Service) deliver(to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	var client *smtp.Client
	switch s.cfg.SMTPTLS {
	case "tls":
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial failed: %w", err)
		}
		if client, err = smtp.NewClient(conn, s.cfg.SMTPHost); err != nil {
			conn.Close()
			return fmt.Errorf("SMTP client failed: %w", err)
		}
	case "starttls":
		var err error
		if client, err = smtp.Dial(addr); err != nil {
			return fmt.Errorf("SMTP dial failed: %w", err)
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	default: // "none"
		return smtp.SendMail(addr, auth, s.cfg.SMTPFrom, to, msg)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("SMTP RCPT failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("SMTP write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("SMTP close failed: %w", err)
	}

	return client.Quit()
}
