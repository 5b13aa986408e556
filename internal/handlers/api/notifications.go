package api

import (
	"github.com/gofiber/fiber/v3"

	"amplify/internal/notify"
)

// NotificationHandler exposes the recent notification feed.
type NotificationHandler struct {
	feed *notify.Feed
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List returns recent notifications, newest first.
func (h *NotificationHandler) List(c fiber.Ctx) error {
	return jsonSuccess(c, h.feed.Recent())
}
