// Package service holds the schedule cache that every read path goes
// through: one current snapshot behind a TTL, rebuilt on demand.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bottoscon/consched/internal/domain/chrono"
	"github.com/bottoscon/consched/internal/domain/model"
	"github.com/bottoscon/consched/internal/domain/roster"
	"github.com/bottoscon/consched/internal/domain/signup"
	"github.com/bottoscon/consched/pkg/logger"
	"github.com/bottoscon/consched/pkg/metrics"
)

const defaultTTL = time.Hour

// Fetcher retrieves the raw sheet payload. Exactly one attempt per call.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Service owns the process-wide schedule snapshot. Reads go through
// Snapshot; the manual refresh entry point goes through ForceRefresh.
//
// Concurrency discipline: rebuilds run under buildMu, so at most one
// rebuild is in flight; concurrent callers that observe an expired
// snapshot block on buildMu and then re-check freshness, so they all
// receive the winner's result instead of rebuilding again. The
// published snapshot pointer is guarded by mu and swapped wholesale,
// never mutated while visible.
type Service struct {
	fetcher Fetcher
	parser  *signup.Parser
	days    []string
	ttl     time.Duration
	clock   func() time.Time
	log     logger.Logger

	mu      sync.RWMutex
	buildMu sync.Mutex
	current *model.Snapshot
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the sheet fetcher. Required for a usable service.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithParser replaces the row parser.
func WithParser(p *signup.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithTTL sets how long a snapshot is served before a rebuild.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithDays sets the recognized convention days in order.
func WithDays(days []string) Option {
	return func(s *Service) {
		if len(days) > 0 {
			s.days = days
		}
	}
}

// WithClock injects a time source, mainly for TTL tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		parser: signup.NewParser(),
		days:   chrono.DefaultDays,
		ttl:    defaultTTL,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Snapshot returns the current snapshot, rebuilding synchronously when
// it is absent or older than the TTL. Policy on rebuild failure:
// serve the stale snapshot with a warning when one exists, propagate
// the error when none does.
func (s *Service) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if snap := s.peek(); snap != nil && snap.Age(s.clock()) < s.ttl {
		metrics.RecordCacheHit()
		return snap, nil
	}
	metrics.RecordCacheMiss()

	snap, err := s.rebuild(ctx, false)
	if err != nil {
		if stale := s.peek(); stale != nil {
			s.log.Warn(ctx, "rebuild failed, serving stale snapshot",
				logger.String("snapshot", stale.ID),
				logger.Error(err),
			)
			metrics.RecordStaleServe()
			return stale, nil
		}
		return nil, err
	}
	return snap, nil
}

// ForceRefresh rebuilds unconditionally, ignoring snapshot age. On
// failure the error is returned and the prior snapshot stays current.
func (s *Service) ForceRefresh(ctx context.Context) (*model.Snapshot, error) {
	return s.rebuild(ctx, true)
}

// rebuild runs fetch -> parse -> sort -> index and publishes the new
// snapshot. buildMu makes this single-flight: a caller that waited out
// another rebuild takes the fresh result instead of repeating it.
func (s *Service) rebuild(ctx context.Context, force bool) (*model.Snapshot, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if !force {
		if snap := s.peek(); snap != nil && snap.Age(s.clock()) < s.ttl {
			return snap, nil
		}
	}

	start := s.clock()
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		metrics.RecordRebuildFailure()
		return nil, fmt.Errorf("%w: %w", ErrRebuild, err)
	}

	events := s.parser.Parse(raw)
	chrono.Sort(events, s.days)
	index := roster.BuildIndex(events)

	snap := &model.Snapshot{
		ID:          uuid.NewString(),
		Events:      events,
		Index:       index,
		GeneratedAt: s.clock(),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	metrics.RecordRebuild(s.clock().Sub(start))
	metrics.UpdateEventsTotal(len(events))
	metrics.UpdatePlayersTotal(len(index))

	s.log.Info(ctx, "snapshot rebuilt",
		logger.String("snapshot", snap.ID),
		logger.Int("events", len(events)),
		logger.Int("players", len(index)),
	)
	return snap, nil
}

// peek returns the published snapshot without freshness checks.
func (s *Service) peek() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Days returns the recognized convention days in order.
func (s *Service) Days() []string { return s.days }

// Stats returns cache statistics for monitoring.
func (s *Service) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"ttl_seconds": int(s.ttl / time.Second),
	}
	if snap := s.peek(); snap != nil {
		stats["snapshot"] = snap.ID
		stats["events"] = len(snap.Events)
		stats["players"] = len(snap.Index)
		stats["generated_at"] = snap.GeneratedAt
		stats["stale"] = snap.Age(s.clock()) >= s.ttl
	}
	return stats
}
