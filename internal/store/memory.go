package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/travel-genie/internal/travel"
)

// ErrNotFound is returned when no plan is stored for a route.
var ErrNotFound = errors.New("no plan for route")

// MemoryStore keeps the plan history of every route in process memory.
// It implements travel.PlanStore and is safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	// route key -> plans ordered by CreatedAt, oldest first
	routes map[string][]travel.Plan

	maxHistory int           // plans kept per route, 0 = unlimited
	maxAge     time.Duration // plans older than this are pruned, 0 = never
	now        func() time.Time
}

// NewMemoryStore creates an empty store with the given retention.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		routes:     make(map[string][]travel.Plan),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SavePlan records plan under its route. Scheduled and on-demand runs can
// finish out of order, so the plan is inserted by CreatedAt rather than
// appended.
func (s *MemoryStore) SavePlan(plan travel.Plan) error {
	key := plan.Trip.RouteKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	plans := s.routes[key]
	i := sort.Search(len(plans), func(i int) bool {
		return plans[i].CreatedAt.After(plan.CreatedAt)
	})
	plans = append(plans, travel.Plan{})
	copy(plans[i+1:], plans[i:])
	plans[i] = plan

	s.routes[key] = s.prune(plans)
	return nil
}

// prune applies retention to one route's history. The newest plan is never
// pruned by age: a route that has not been re-planned for a while still
// answers GetLatest with its last known plan.
func (s *MemoryStore) prune(plans []travel.Plan) []travel.Plan {
	if s.maxHistory > 0 && len(plans) > s.maxHistory {
		plans = plans[len(plans)-s.maxHistory:]
	}
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		stale := sort.Search(len(plans)-1, func(i int) bool {
			return !plans[i].CreatedAt.Before(cutoff)
		})
		plans = plans[stale:]
	}
	return plans
}

// GetLatest returns the most recent plan for a route.
func (s *MemoryStore) GetLatest(source, destination string) (travel.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := s.routes[travel.RouteKey(source, destination)]
	if len(plans) == 0 {
		return travel.Plan{}, ErrNotFound
	}
	return plans[len(plans)-1], nil
}

// GetRange returns the plans for a route created between from and to
// (inclusive), oldest first.
func (s *MemoryStore) GetRange(source, destination string, from, to time.Time) ([]travel.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := s.routes[travel.RouteKey(source, destination)]
	lo := sort.Search(len(plans), func(i int) bool { return !plans[i].CreatedAt.Before(from) })
	hi := sort.Search(len(plans), func(i int) bool { return plans[i].CreatedAt.After(to) })
	if lo >= hi {
		return nil, ErrNotFound
	}
	return append([]travel.Plan(nil), plans[lo:hi]...), nil
}
