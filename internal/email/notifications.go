// Package email forwards operator notifications over SMTP.
package email

import (
	"amplify/internal/notify"
)

// Sink emails every notification to a fixed operator list.
type Sink struct {
	svc     *Service
	to      []string
	baseURL string
}

// NewSink creates a notification sink mailing to.
func NewSink(svc *Service, to []string, baseURL string) *Sink {
	return &Sink{svc: svc, to: to, baseURL: baseURL}
}

// Notify sends n in the background.
func (s *Sink) Notify(n notify.Notification) {
	subject, htmlBody, textBody := notificationEmail(n, s.baseURL)
	s.svc.SendAsync(s.to, subject, htmlBody, textBody)
}
