// Package staffing exposes the staff planner's assignments and configuration.
package staffing

import (
	"fmt"

	"github.com/restodash/restodash/internal/clients/staffing"
	"github.com/restodash/restodash/internal/events"
	"github.com/rs/zerolog"
)

// PlannerClient is the slice of the staffing client this service needs.
type PlannerClient interface {
	GetAssignment() (*staffing.Assignment, error)
	GetConfig() (*staffing.Config, error)
}

// Service serves staff assignments and planner configuration.
type Service struct {
	client       PlannerClient
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewService creates a new staffing service.
func NewService(client PlannerClient, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		client:       client,
		eventManager: eventManager,
		log:          log.With().Str("service", "staffing").Logger(),
	}
}

// Assignment returns the planned staff assignment for the next business day.
func (s *Service) Assignment() (*staffing.Assignment, error) {
	assignment, err := s.client.GetAssignment()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff assignment: %w", err)
	}

	if s.eventManager != nil {
		s.eventManager.EmitTyped(events.StaffingRefreshed, "staffing", &events.StaffingRefreshedData{
			ForecastDate:   assignment.ForecastInfo.ForecastDate,
			TotalDailyCost: assignment.TotalDailyCost,
		})
	}

	return assignment, nil
}

// Config returns the planner's per-shift staffing configuration.
func (s *Service) Config() (*staffing.Config, error) {
	config, err := s.client.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing config: %w", err)
	}
	return config, nil
}
