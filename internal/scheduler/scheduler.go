package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/travel-genie/internal/config"
	"github.com/i474232898/travel-genie/internal/travel"
)

// Planner is the part of travel.Service the scheduler uses.
type Planner interface {
	Plan(ctx context.Context, trip travel.TripContext) travel.Plan
}

// Scheduler periodically re-plans the configured routes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	planner   Planner
	routes    []config.WatchedRoute
	interval  time.Duration
	leadDays  int
	tripDays  int
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new Scheduler.
func New(cfg *config.AppConfig, planner Planner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		planner:   planner,
		routes:    cfg.Routes,
		interval:  cfg.PlanInterval,
		leadDays:  cfg.LeadDays,
		tripDays:  cfg.TripDays,
		timeout:   2 * time.Minute,
		logger:    logger.With("component", "scheduler"),
		now:       time.Now,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.routes) == 0 {
		s.logger.Info("no routes configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce plans every configured route concurrently.
func (s *Scheduler) RunOnce() {
	s.logger.Info("running planning job", "routes", len(s.routes))

	var wg sync.WaitGroup
	for _, r := range s.routes {
		wg.Go(func() {
			trip, err := s.tripFor(r)
			if err != nil {
				s.logger.Error("invalid watched route", "source", r.Source, "destination", r.Destination, "error", err)
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			plan := s.planner.Plan(ctx, trip)
			s.logger.Info("route planned", "trip_id", plan.TripID, "domains", len(plan.Summary.Domains()))
		})
	}
	wg.Wait()
	s.logger.Info("completed planning job")
}

func (s *Scheduler) tripFor(r config.WatchedRoute) (travel.TripContext, error) {
	start := s.now().UTC().AddDate(0, 0, s.leadDays)
	days := s.tripDays
	if days < 0 {
		days = 0
	}
	return travel.NewTripContext(r.Source, r.Destination, start, start.AddDate(0, 0, days))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
