// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package analytics records anonymized page views and file downloads.
package analytics

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"portfolio-go/internal/geoip"
	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// ParsedUA holds the useful fields extracted from a User-Agent string.
type ParsedUA struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent extracts browser, OS, and device type from a user
// agent string.
func ParseUserAgent(uaString string) ParsedUA {
	ua := useragent.Parse(uaString)

	result := ParsedUA{
		Browser: ua.Name,
		OS:      ua.OS,
	}
	if result.Browser == "" {
		result.Browser = "Unknown"
	}
	if result.OS == "" {
		result.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		result.DeviceType = "bot"
	case ua.Mobile:
		result.DeviceType = "mobile"
	case ua.Tablet:
		result.DeviceType = "tablet"
	default:
		result.DeviceType = "desktop"
	}
	return result
}

// Tracker records visits and downloads. Recording is best-effort: a
// failed insert is logged and never surfaces to the visitor.
type Tracker struct {
	queries *store.Queries
	geo     *geoip.Lookup
	// visitorSalt perturbs visitor hashes so raw IPs cannot be recovered
	// by brute-forcing the address space.
	visitorSalt string
}

// NewTracker creates a Tracker backed by the given database. geo may be
// a disabled lookup; country will then stay empty.
func NewTracker(db *sql.DB, geo *geoip.Lookup, visitorSalt string) *Tracker {
	return &Tracker{
		queries:     store.New(db),
		geo:         geo,
		visitorSalt: visitorSalt,
	}
}

// VisitorID derives a stable, anonymized visitor identifier from the
// client address and user agent. The raw IP is still stored alongside
// for abuse handling but the ID is what distinct-visitor stats use.
func (t *Tracker) VisitorID(ip, userAgent string, day time.Time) string {
	h := sha256.Sum256([]byte(t.visitorSalt + "|" + ip + "|" + userAgent + "|" + day.UTC().Format("2006-01-02")))
	return hex.EncodeToString(h[:16])
}

// TrackPageView records a view of pagePath attributed to the request's
// client. Bot traffic is dropped.
func (t *Tracker) TrackPageView(ctx context.Context, r *http.Request, pagePath string) {
	userAgent := r.UserAgent()
	ua := ParseUserAgent(userAgent)
	if ua.DeviceType == "bot" {
		return
	}

	ip := util.ClientIP(r)
	now := time.Now()

	err := t.queries.CreatePageView(ctx, store.CreatePageViewParams{
		PagePath:   pagePath,
		Referrer:   extractReferrerDomain(r.Referer()),
		UserAgent:  userAgent,
		Browser:    ua.Browser,
		OS:         ua.OS,
		DeviceType: ua.DeviceType,
		Country:    t.geo.LookupCountry(ip),
		IPAddress:  ip,
		VisitorID:  t.VisitorID(ip, userAgent, now),
		VisitedAt:  now,
	})
	if err != nil {
		slog.Error("recording page view", "error", err, "path", pagePath)
	}
}

// TrackDownload records a file download of the given type.
func (t *Tracker) TrackDownload(ctx context.Context, r *http.Request, fileType string) {
	err := t.queries.CreateDownload(ctx, store.CreateDownloadParams{
		FileType:     fileType,
		IPAddress:    util.ClientIP(r),
		UserAgent:    r.UserAgent(),
		DownloadedAt: time.Now(),
	})
	if err != nil {
		slog.Error("recording download", "error", err, "file_type", fileType)
	}
}

// extractReferrerDomain extracts the host from a referrer URL, without
// port. Unparseable referrers are dropped rather than stored raw.
func extractReferrerDomain(referer string) string {
	if referer == "" {
		return ""
	}
	parsed, err := url.Parse(referer)
	if err != nil {
		return ""
	}
	host := parsed.Host
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
