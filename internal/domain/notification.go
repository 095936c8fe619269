package domain

import (
	"context"
	"time"
)

// DefaultTitleMax bounds advisory titles in notification bodies.
const DefaultTitleMax = 256

// NotificationHeading is the fixed title of every advisory notification.
const NotificationHeading = "New SPC Advisory"

// Advisory is one entry of the SPC advisory RSS feed.
type Advisory struct {
	Title     string
	Link      string
	Published time.Time
}

// Notification is emitted once per newly seen advisory title.
type Notification struct {
	ID            string    `json:"id"`
	Heading       string    `json:"heading"`
	Message       string    `json:"message"`
	AdvisoryTitle string    `json:"advisory_title"`
	Link          string    `json:"link,omitempty"`
	NotifiedAt    time.Time `json:"notified_at"`
}

// Notifier delivers notifications to a sink (desktop, log, broker).
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NewNotification builds the notification for an advisory, truncating the
// title to titleMax runes.
func NewNotification(id string, a Advisory, titleMax int) Notification {
	title := TruncateTitle(a.Title, titleMax)
	return Notification{
		ID:            id,
		Heading:       NotificationHeading,
		Message:       title + ". Check it out in the App!",
		AdvisoryTitle: a.Title,
		Link:          a.Link,
		NotifiedAt:    clock.Now(),
	}
}

// TruncateTitle cuts s to at most limit runes. A non-positive limit means
// DefaultTitleMax.
func TruncateTitle(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultTitleMax
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
