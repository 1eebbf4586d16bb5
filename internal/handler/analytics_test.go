// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/analytics"
	"portfolio-go/internal/geoip"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func TestTrackDownload(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	geo, err := geoip.NewLookup("")
	require.NoError(t, err)
	h := NewAnalyticsHandler(db, analytics.NewTracker(db, geo, "test-salt"))
	q := store.New(db)

	rec := postJSON(t, h.TrackDownload, "/api/analytics/download", map[string]any{
		"file_type": "resume",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Types are normalized before validation.
	rec = postJSON(t, h.TrackDownload, "/api/analytics/download", map[string]any{
		"file_type": " CV ",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	n, err := q.CountDownloads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	byType, err := q.DownloadsByType(context.Background())
	require.NoError(t, err)
	seen := map[string]int64{}
	for _, b := range byType {
		seen[b.Label] = b.Count
	}
	assert.Equal(t, int64(1), seen["resume"])
	assert.Equal(t, int64(1), seen["cv"])
}

func TestTrackDownload_RejectsUnknownType(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	geo, err := geoip.NewLookup("")
	require.NoError(t, err)
	h := NewAnalyticsHandler(db, analytics.NewTracker(db, geo, "test-salt"))
	q := store.New(db)

	rec := postJSON(t, h.TrackDownload, "/api/analytics/download", map[string]any{
		"file_type": "exe",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	n, err := q.CountDownloads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
