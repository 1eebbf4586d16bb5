// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"portfolio-go/internal/geoip"
	"portfolio-go/internal/store"
)

// Scheduler handles periodic maintenance: pruning aged analytics rows
// and refreshing the GeoIP database from disk.
type Scheduler struct {
	db            *sql.DB
	cron          *cron.Cron
	logger        *slog.Logger
	geo           *geoip.Lookup
	retentionDays int
}

// New creates a scheduler. retentionDays bounds how long raw page views
// are kept.
func New(db *sql.DB, logger *slog.Logger, geo *geoip.Lookup, retentionDays int) *Scheduler {
	return &Scheduler{
		db:            db,
		cron:          cron.New(),
		logger:        logger,
		geo:           geo,
		retentionDays: retentionDays,
	}
}

// Start registers and begins the cron jobs.
func (s *Scheduler) Start() error {
	// Prune raw analytics nightly, off-peak.
	if _, err := s.cron.AddFunc("10 3 * * *", func() {
		if err := s.pruneAnalytics(); err != nil {
			s.logger.Error("failed to prune analytics", "error", err)
		}
	}); err != nil {
		return err
	}

	// Pick up a replaced GeoIP database without a restart.
	if _, err := s.cron.AddFunc("30 4 * * *", func() {
		if err := s.geo.Reload(); err != nil {
			s.logger.Warn("failed to reload GeoIP database", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneAnalytics deletes page views older than the retention window.
func (s *Scheduler) pruneAnalytics() error {
	if s.retentionDays <= 0 {
		return nil
	}

	ctx := context.Background()
	queries := store.New(s.db)
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	removed, err := queries.DeletePageViewsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("pruned aged page views", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
