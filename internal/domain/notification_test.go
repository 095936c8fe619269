package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 10))
	assert.Equal(t, "abc", TruncateTitle("abcdef", 3))
	assert.Equal(t, "ñañ", TruncateTitle("ñañaña", 3))

	long := strings.Repeat("x", DefaultTitleMax+10)
	assert.Len(t, TruncateTitle(long, 0), DefaultTitleMax)
}

func TestNewNotification(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	a := Advisory{Title: "SPC MD 0612 Severe Thunderstorm Watch likely", Link: "https://www.spc.noaa.gov/products/md/md0612.html"}
	n := NewNotification("n-1", a, 11)

	assert.Equal(t, NotificationHeading, n.Heading)
	assert.Equal(t, "SPC MD 0612. Check it out in the App!", n.Message)
	assert.Equal(t, a.Title, n.AdvisoryTitle)
	assert.Equal(t, a.Link, n.Link)
	assert.Equal(t, fixed, n.NotifiedAt)
}
