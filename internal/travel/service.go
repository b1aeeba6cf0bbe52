package travel

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service builds an Orchestrator per trip, runs it and persists the plans.
type Service struct {
	store     PlanStore
	providers Providers
	opts      []Option
	logger    *slog.Logger
}

// NewService creates a new Service. opts are applied to every Orchestrator
// it builds.
func NewService(store PlanStore, providers Providers, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		providers: providers,
		opts:      append([]Option{WithLogger(logger)}, opts...),
		logger:    logger,
	}
}

// Orchestrator returns an Orchestrator for trip wired to the service's providers.
func (s *Service) Orchestrator(trip TripContext) *Orchestrator {
	return NewOrchestrator(trip, s.providers, s.opts...)
}

// Plan runs every domain for trip, merges the results and stores the plan.
// A store failure is logged; the plan is still returned.
func (s *Service) Plan(ctx context.Context, trip TripContext) Plan {
	log := s.logger.With("trip_id", trip.ID, "source", trip.Source, "destination", trip.Destination)
	log.Info("planning trip")

	results := s.Orchestrator(trip).RunAll(ctx)
	plan := Plan{
		TripID:    trip.ID,
		Trip:      trip,
		Results:   results,
		Summary:   Merge(results),
		CreatedAt: time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SavePlan(plan); err != nil {
			log.Error("failed to save plan", "error", err)
		}
	}
	log.Info("trip planned", "domains", plan.Summary.Domains())
	return plan
}

// RunDomain runs a single domain for trip. The returned value is one of the
// Result types of Results.
func (s *Service) RunDomain(ctx context.Context, trip TripContext, d Domain) (any, error) {
	o := s.Orchestrator(trip)
	switch d {
	case DomainWeather:
		return o.RunWeatherPreparedness(ctx), nil
	case DomainRoute:
		return o.RunRouteSummary(ctx), nil
	case DomainExplore:
		return o.RunExplorationGuide(ctx), nil
	case DomainFood:
		return o.RunFoodExploration(ctx), nil
	case DomainEvents:
		return o.RunEventExplorer(ctx), nil
	case DomainFlights:
		return o.RunFlightSearch(ctx), nil
	}
	return nil, fmt.Errorf("unknown domain %q", d)
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(source, destination string) (Plan, error) {
	return s.store.GetLatest(source, destination)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(source, destination string, from, to time.Time) ([]Plan, error) {
	return s.store.GetRange(source, destination, from, to)
}
