// Package notify delivers advisory notifications to local sinks.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
	"github.com/hashicorp/go-multierror"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

// Log writes each notification as a structured log record.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a log sink.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(_ context.Context, n domain.Notification) error {
	l.logger.Info(n.Heading,
		"message", n.Message,
		"advisory_title", n.AdvisoryTitle,
		"link", n.Link,
		"notification_id", n.ID,
	)
	return nil
}

// Desktop raises an OS-level notification.
type Desktop struct {
	icon string
	send func(title, message, icon string) error
}

// NewDesktop creates a desktop sink. icon may be empty.
func NewDesktop(icon string) *Desktop {
	return &Desktop{icon: icon, send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

func (d *Desktop) Notify(_ context.Context, n domain.Notification) error {
	if err := d.send(n.Heading, n.Message, d.icon); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// Multi fans a notification out to every sink. A failing sink does not stop
// delivery to the rest; all failures are returned together.
type Multi struct {
	sinks []domain.Notifier
}

// NewMulti creates a fan-out over sinks.
func NewMulti(sinks ...domain.Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Notify(ctx context.Context, n domain.Notification) error {
	var result *multierror.Error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, n); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
