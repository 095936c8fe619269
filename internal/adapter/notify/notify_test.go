package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

var testNotification = domain.Notification{
	ID:            "n-1",
	Heading:       domain.NotificationHeading,
	Message:       "SPC MD 612. Check it out in the App!",
	AdvisoryTitle: "SPC MD 612",
	Link:          "https://www.spc.noaa.gov/products/md/md0612.html",
}

type countingSink struct {
	calls int
	err   error
}

func (c *countingSink) Notify(context.Context, domain.Notification) error {
	c.calls++
	return c.err
}

func TestLog_Notify(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, sink.Notify(context.Background(), testNotification))
	assert.Contains(t, buf.String(), `msg="New SPC Advisory"`)
	assert.Contains(t, buf.String(), `advisory_title="SPC MD 612"`)
}

func TestDesktop_Notify(t *testing.T) {
	var gotTitle, gotMessage string
	d := &Desktop{send: func(title, message, _ string) error {
		gotTitle, gotMessage = title, message
		return nil
	}}

	require.NoError(t, d.Notify(context.Background(), testNotification))
	assert.Equal(t, domain.NotificationHeading, gotTitle)
	assert.Equal(t, testNotification.Message, gotMessage)

	d.send = func(string, string, string) error { return errors.New("no notification daemon") }
	assert.ErrorContains(t, d.Notify(context.Background(), testNotification), "desktop notification")
}

func TestMulti_DeliversToAllAndJoinsErrors(t *testing.T) {
	first := &countingSink{err: errors.New("first down")}
	second := &countingSink{}
	third := &countingSink{err: errors.New("third down")}

	err := NewMulti(first, second, third).Notify(context.Background(), testNotification)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first down")
	assert.Contains(t, err.Error(), "third down")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)

	assert.NoError(t, NewMulti(second).Notify(context.Background(), testNotification))
	assert.NoError(t, NewMulti().Notify(context.Background(), testNotification))
}
