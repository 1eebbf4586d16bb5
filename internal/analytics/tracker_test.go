// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/geoip"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

const (
	firefoxUA   = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
	iphoneUA    = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"
	googlebotUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestParseUserAgent(t *testing.T) {
	desktop := ParseUserAgent(firefoxUA)
	assert.Equal(t, "Firefox", desktop.Browser)
	assert.Equal(t, "desktop", desktop.DeviceType)

	mobile := ParseUserAgent(iphoneUA)
	assert.Equal(t, "mobile", mobile.DeviceType)

	bot := ParseUserAgent(googlebotUA)
	assert.Equal(t, "bot", bot.DeviceType)

	empty := ParseUserAgent("")
	assert.Equal(t, "Unknown", empty.Browser)
	assert.Equal(t, "Unknown", empty.OS)
}

func newTestTracker(t *testing.T) (*Tracker, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	geo, err := geoip.NewLookup("")
	require.NoError(t, err)
	return NewTracker(db, geo, "test-salt"), store.New(db), cleanup
}

func TestVisitorID(t *testing.T) {
	tracker, _, cleanup := newTestTracker(t)
	defer cleanup()

	day := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	// Stable within a day, regardless of the time of day.
	id1 := tracker.VisitorID("203.0.113.7", firefoxUA, day)
	id2 := tracker.VisitorID("203.0.113.7", firefoxUA, day.Add(5*time.Hour))
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 32)

	// Different day, IP, or user agent yields a different ID.
	assert.NotEqual(t, id1, tracker.VisitorID("203.0.113.7", firefoxUA, day.AddDate(0, 0, 1)))
	assert.NotEqual(t, id1, tracker.VisitorID("203.0.113.8", firefoxUA, day))
	assert.NotEqual(t, id1, tracker.VisitorID("203.0.113.7", iphoneUA, day))
}

func TestTrackPageView(t *testing.T) {
	tracker, q, cleanup := newTestTracker(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", firefoxUA)
	req.Header.Set("Referer", "https://news.ycombinator.com:443/item?id=1")
	req.RemoteAddr = "203.0.113.7:12345"

	tracker.TrackPageView(context.Background(), req, "/projects")

	views, err := q.RecentPageViews(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "/projects", views[0].PagePath)
	assert.Equal(t, "Firefox", views[0].Browser)
	assert.Equal(t, "desktop", views[0].DeviceType)
	assert.Equal(t, "news.ycombinator.com", views[0].Referrer)
	assert.NotEmpty(t, views[0].VisitorID)
}

func TestTrackPageView_DropsBots(t *testing.T) {
	tracker, q, cleanup := newTestTracker(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", googlebotUA)
	req.RemoteAddr = "203.0.113.7:12345"

	tracker.TrackPageView(context.Background(), req, "/")

	n, err := q.CountPageViews(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTrackDownload(t *testing.T) {
	tracker, q, cleanup := newTestTracker(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/cv", nil)
	req.Header.Set("User-Agent", firefoxUA)
	req.RemoteAddr = "203.0.113.7:12345"

	tracker.TrackDownload(context.Background(), req, "cv")

	n, err := q.CountDownloads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestExtractReferrerDomain(t *testing.T) {
	assert.Equal(t, "example.com", extractReferrerDomain("https://example.com/page"))
	assert.Equal(t, "example.com", extractReferrerDomain("https://example.com:8443/page"))
	assert.Equal(t, "", extractReferrerDomain(""))
	assert.Equal(t, "", extractReferrerDomain("://bad"))
}
