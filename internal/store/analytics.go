package store

import (
	"context"
	"time"

	"portfolio-go/internal/model"
)

// CreatePageViewParams holds the fields for recording a page view.
type CreatePageViewParams struct {
	PagePath   string
	Referrer   string
	UserAgent  string
	Browser    string
	OS         string
	DeviceType string
	Country    string
	IPAddress  string
	VisitorID  string
	VisitedAt  time.Time
}

// CreatePageView records a single page view.
func (q *Queries) CreatePageView(ctx context.Context, arg CreatePageViewParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO page_views (page_path, referrer, user_agent, browser, os, device_type,
			country, ip_address, visitor_id, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.PagePath, arg.Referrer, arg.UserAgent, arg.Browser, arg.OS, arg.DeviceType,
		arg.Country, arg.IPAddress, arg.VisitorID, arg.VisitedAt,
	)
	return err
}

// CreateDownloadParams holds the fields for recording a download.
type CreateDownloadParams struct {
	FileType     string
	IPAddress    string
	UserAgent    string
	DownloadedAt time.Time
}

// CreateDownload records a single file download.
func (q *Queries) CreateDownload(ctx context.Context, arg CreateDownloadParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO downloads (file_type, ip_address, user_agent, downloaded_at)
		VALUES (?, ?, ?, ?)`,
		arg.FileType, arg.IPAddress, arg.UserAgent, arg.DownloadedAt,
	)
	return err
}

// CountPageViews returns the total number of recorded page views.
func (q *Queries) CountPageViews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_views`).Scan(&n)
	return n, err
}

// CountDownloads returns the total number of recorded downloads.
func (q *Queries) CountDownloads(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM downloads`).Scan(&n)
	return n, err
}

// CountBucket is a generic label/count aggregation row.
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func (q *Queries) countBuckets(ctx context.Context, query string, args ...any) ([]CountBucket, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []CountBucket
	for rows.Next() {
		var b CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// TopPages returns the most-visited page paths with counts.
func (q *Queries) TopPages(ctx context.Context, limit int64) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT page_path, COUNT(*) AS n FROM page_views
		GROUP BY page_path ORDER BY n DESC LIMIT ?`, limit)
}

// PageViewsPerDay returns daily view counts since the given time,
// oldest day first.
func (q *Queries) PageViewsPerDay(ctx context.Context, since time.Time) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT date(visited_at) AS day, COUNT(*) AS n FROM page_views
		WHERE visited_at >= ?
		GROUP BY day ORDER BY day ASC`, since)
}

// PageViewsByBrowser returns view counts grouped by browser.
func (q *Queries) PageViewsByBrowser(ctx context.Context) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT browser, COUNT(*) AS n FROM page_views
		WHERE browser != '' GROUP BY browser ORDER BY n DESC`)
}

// PageViewsByDevice returns view counts grouped by device type.
func (q *Queries) PageViewsByDevice(ctx context.Context) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT device_type, COUNT(*) AS n FROM page_views
		WHERE device_type != '' GROUP BY device_type ORDER BY n DESC`)
}

// PageViewsByCountry returns view counts grouped by country code.
func (q *Queries) PageViewsByCountry(ctx context.Context) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT country, COUNT(*) AS n FROM page_views
		WHERE country != '' GROUP BY country ORDER BY n DESC`)
}

// DownloadsByType returns download counts grouped by file type.
func (q *Queries) DownloadsByType(ctx context.Context) ([]CountBucket, error) {
	return q.countBuckets(ctx, `
		SELECT file_type, COUNT(*) AS n FROM downloads
		GROUP BY file_type ORDER BY n DESC`)
}

// RecentPageViews returns the most recent page views.
func (q *Queries) RecentPageViews(ctx context.Context, limit int64) ([]model.PageView, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, page_path, referrer, user_agent, browser, os, device_type,
			country, ip_address, visitor_id, visited_at
		FROM page_views ORDER BY visited_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []model.PageView
	for rows.Next() {
		var v model.PageView
		if err := rows.Scan(&v.ID, &v.PagePath, &v.Referrer, &v.UserAgent, &v.Browser,
			&v.OS, &v.DeviceType, &v.Country, &v.IPAddress, &v.VisitorID, &v.VisitedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// DeletePageViewsBefore prunes page views older than the cutoff and
// returns the number of rows removed.
func (q *Queries) DeletePageViewsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM page_views WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
