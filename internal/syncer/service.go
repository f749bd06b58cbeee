package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/asaskevich/EventBus"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/orderkart/orderkart/internal/catalog"
	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/internal/store"
)

// TopicSyncCompleted is published on the event bus after every successful
// sync, with the resulting domain.SyncStats and the elapsed time as
// arguments.
const TopicSyncCompleted = "catalog.sync.completed"

// LastSyncedLayout is the human-readable wall-clock format persisted as the
// last-sync marker.
const LastSyncedLayout = "1/2/2006 3:04:05 PM"

// maxDurationSamples bounds the in-memory sync duration history.
const maxDurationSamples = 128

// Result is the outcome of one synchronization pass.
type Result struct {
	Products []domain.Product `json:"products"`
	Stats    domain.SyncStats `json:"stats"`
}

// Service orchestrates catalog synchronization: fetch, normalize, diff
// against the cached list, replace the cache, report statistics. The remote
// catalog is authoritative; there is no merge and no retry.
type Service struct {
	fetcher catalog.Fetcher
	store   *store.Store
	bus     EventBus.Bus

	mu        sync.Mutex
	runs      int
	durations []float64 // milliseconds, most recent last
}

func New(fetcher catalog.Fetcher, st *store.Store, bus EventBus.Bus) *Service {
	return &Service{fetcher: fetcher, store: st, bus: bus}
}

// Sync performs one full synchronization pass. On any failure the previous
// cache and last-sync marker are left untouched and the error is surfaced to
// the caller.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	start := time.Now()

	groups, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	next := catalog.Normalize(groups)

	current, err := s.store.Products()
	if err != nil {
		return nil, errors.Wrap(err, "load cached catalog")
	}

	added, updated, deleted := Diff(current, next)

	lastSynced := time.Now().Format(LastSyncedLayout)
	if err := s.store.ReplaceCatalog(next, lastSynced); err != nil {
		return nil, errors.Wrap(err, "replace catalog cache")
	}

	st := domain.SyncStats{
		Added:      added,
		Updated:    updated,
		Deleted:    deleted,
		LastSynced: lastSynced,
	}

	elapsed := time.Since(start)
	s.recordRun(elapsed)
	if s.bus != nil {
		s.bus.Publish(TopicSyncCompleted, st, elapsed)
	}

	zap.L().Info("catalog sync completed",
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
		zap.Int("products", len(next)),
		zap.Duration("elapsed", elapsed))

	return &Result{Products: next, Stats: st}, nil
}

// Diff computes the added/updated/deleted tallies between the currently
// cached list and a freshly normalized one. Updated means the id is present
// on both sides but the full record content differs.
func Diff(current, next []domain.Product) (added, updated, deleted int) {
	curByID := make(map[string]domain.Product, len(current))
	for _, p := range current {
		curByID[p.ID] = p
	}
	nextIDs := make(map[string]struct{}, len(next))
	for _, p := range next {
		nextIDs[p.ID] = struct{}{}
		cur, ok := curByID[p.ID]
		switch {
		case !ok:
			added++
		case cur != p:
			updated++
		}
	}
	for _, p := range current {
		if _, ok := nextIDs[p.ID]; !ok {
			deleted++
		}
	}
	return added, updated, deleted
}

func (s *Service) recordRun(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	s.durations = append(s.durations, float64(elapsed.Milliseconds()))
	if len(s.durations) > maxDurationSamples {
		s.durations = s.durations[len(s.durations)-maxDurationSamples:]
	}
}

// Health reports sync freshness and duration statistics for the status
// endpoint. The persisted marker is parsed back leniently; an unparseable
// marker just leaves the age at zero.
func (s *Service) Health() (domain.SyncHealth, error) {
	last, err := s.store.LastSynced()
	if err != nil {
		return domain.SyncHealth{}, err
	}
	products, err := s.store.Products()
	if err != nil {
		return domain.SyncHealth{}, err
	}

	h := domain.SyncHealth{
		LastSynced:   last,
		ProductCount: len(products),
	}
	if last != "" {
		if t, perr := dateparse.ParseIn(last, time.Local); perr == nil {
			h.AgeSeconds = int64(time.Since(t).Seconds())
		}
	}

	s.mu.Lock()
	h.SyncRuns = s.runs
	samples := make([]float64, len(s.durations))
	copy(samples, s.durations)
	s.mu.Unlock()

	if len(samples) > 0 {
		h.DurationMean, _ = stats.Mean(samples)
		h.DurationP50, _ = stats.Median(samples)
		h.DurationP95, _ = stats.Percentile(samples, 95)
	}
	return h, nil
}
