package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/events"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// threatService implements threats.Service over the threat repository and
// publishes realtime events for new and critical threats.
type threatService struct {
	repo      threats.Repository
	publisher events.Publisher
	logger    logger.Logger
	now       func() time.Time
}

// NewThreatService creates a new threatService instance.
func NewThreatService(repo threats.Repository, publisher events.Publisher, logger logger.Logger) (threats.Service, error) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &threatService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Report validates and persists a manually reported threat.
func (s *threatService) Report(ctx context.Context, threat *threats.ThreatIntelligence) (*threats.ThreatIntelligence, error) {
	if threat.Severity < threats.SeverityMin || threat.Severity > threats.SeverityMax {
		return nil, fmt.Errorf("severity must be between %d and %d", threats.SeverityMin, threats.SeverityMax)
	}
	if threat.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if threat.Confidence < 0 || threat.Confidence > 1 {
		return nil, fmt.Errorf("confidence must be between 0 and 1")
	}

	threat.ID = uuid.New().String()
	threat.Active = true
	threat.CreatedAt = s.now()
	if threat.Source == "" {
		threat.Source = "manual-report"
	}

	if err := s.repo.Create(ctx, threat); err != nil {
		return nil, fmt.Errorf("failed to store threat: %w", err)
	}

	s.publishThreatEvents(threat)

	s.logger.Info("Recorded threat ", threat.ID, ": ", threat.Title)
	return threat, nil
}

func (s *threatService) publishThreatEvents(threat *threats.ThreatIntelligence) {
	event := events.Event{
		Type:      events.TypeSecurityEvent,
		Payload:   threat,
		Timestamp: s.now(),
	}
	s.publisher.Publish(event)

	if threat.Severity >= threats.CriticalSeverity {
		event.Type = events.TypeSecurityAlert
		s.publisher.Publish(event)
	}
}

func (s *threatService) ListActive(ctx context.Context, minSeverity int, since time.Time) ([]*threats.ThreatIntelligence, error) {
	if minSeverity < threats.SeverityMin {
		minSeverity = threats.SeverityMin
	}
	return s.repo.ListActive(ctx, minSeverity, since)
}

func (s *threatService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("%w", err)
	}
	s.logger.Info("Deactivated threat ", id)
	return nil
}

func (s *threatService) Stats(ctx context.Context) (*threats.Stats, error) {
	return s.repo.Stats(ctx)
}
