package core

// scheduler.go runs background maintenance for the in-memory audit log.
//
// Each cycle drops entries older than the configured age and then trims the
// log to its size cap, oldest first. The loop stops when its context ends;
// a cycle never fails the application.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig holds audit log retention settings. Zero MaxAge and
// MaxEntries disable the respective rule.
type RetentionConfig struct {
	MaxAge        time.Duration
	MaxEntries    int
	CheckInterval time.Duration // default: 1h
}

// StartRetentionScheduler prunes the audit log immediately and then every
// CheckInterval until ctx is cancelled. It blocks; run it in a goroutine.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Hour
	}
	slog.Info("audit retention started",
		"max_age", cfg.MaxAge,
		"max_entries", cfg.MaxEntries,
		"interval", cfg.CheckInterval,
	)

	s.runRetentionJob(cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(cfg)
		}
	}
}

func (s *Service) runRetentionJob(cfg RetentionConfig) {
	start := time.Now()
	removed := s.PruneAuditLog(cfg.MaxAge, cfg.MaxEntries)
	if removed > 0 {
		slog.Info("pruned audit log",
			"entries_removed", removed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		slog.Debug("audit retention found nothing to prune")
	}
}

// PruneAuditLog removes entries older than maxAge, then the oldest entries
// beyond maxEntries. It returns how many entries were removed.
func (s *Service) PruneAuditLog(maxAge time.Duration, maxEntries int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.audit)
	kept := s.audit
	if maxAge > 0 {
		cutoff := s.now().Add(-maxAge)
		kept = filter(kept, func(a AuditEntry) bool { return !a.CreatedAt.Before(cutoff) })
	}
	if maxEntries > 0 && len(kept) > maxEntries {
		kept = append([]AuditEntry(nil), kept[len(kept)-maxEntries:]...)
	}
	s.audit = kept
	return before - len(kept)
}
