// Package notify delivers user-facing notifications for roster events.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Severity controls how a notification is presented.
type Severity string

// Severity constants
const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a transient message for the operator.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	At          time.Time `json:"at"`
}

// Sink receives notifications.
type Sink interface {
	Notify(n Notification)
}

// Notifier formats roster events into notifications and fans them out to
// every configured sink.
type Notifier struct {
	sinks []Sink
	now   func() time.Time
}

// New creates a notifier. Nil sinks are skipped.
func New(sinks ...Sink) *Notifier {
	n := &Notifier{now: time.Now}
	for _, s := range sinks {
		if s != nil {
			n.sinks = append(n.sinks, s)
		}
	}
	return n
}

func (n *Notifier) send(title, description string, severity Severity) {
	if n == nil {
		return
	}
	msg := Notification{Title: title, Description: description, Severity: severity, At: n.now()}
	for _, s := range n.sinks {
		s.Notify(msg)
	}
}

// CreatorApproved announces a creator promoted into the roster.
func (n *Notifier) CreatorApproved(name string) {
	n.send("Approved", fmt.Sprintf("%s added to influencer database", name), SeverityDefault)
}

// AgencyApproved announces an approved agency application.
func (n *Notifier) AgencyApproved(agency string) {
	n.send("Approved", fmt.Sprintf("%s agency application approved", agency), SeverityDefault)
}

// Rejected announces a rejected submission.
func (n *Notifier) Rejected(name string) {
	n.send("Rejected", fmt.Sprintf("%s's submission was rejected", name), SeverityDefault)
}

// Imported announces a completed roster import.
func (n *Notifier) Imported(count int) {
	n.send("Success", fmt.Sprintf("Imported %d influencers", count), SeverityDefault)
}

// Failed reports a validation or import failure.
func (n *Notifier) Failed(description string) {
	n.send("Error", description, SeverityDestructive)
}

// LogSink writes notifications to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

// Notify logs n at Info, or Warn for destructive notifications.
func (s LogSink) Notify(n Notification) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Severity == SeverityDestructive {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "notification", "title", n.Title, "description", n.Description)
}

// Feed keeps the most recent notifications in memory, newest first.
type Feed struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// DefaultFeedSize is used when NewFeed is given a non-positive limit.
const DefaultFeedSize = 50

// NewFeed creates a feed holding at most limit notifications.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedSize
	}
	return &Feed{limit: limit}
}

// Notify records n, evicting the oldest entry when the feed is full.
func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]Notification{n}, f.items...)
	if len(f.items) > f.limit {
		f.items = f.items[:f.limit]
	}
}

// Recent returns a copy of the stored notifications, newest first.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}
