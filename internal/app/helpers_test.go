//go:build unit
// +build unit

package app

import (
	"context"
	"sync"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/events"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/config"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewConsoleLogger(config.LogLevelError)
}

// fixedLevel implements threats.LevelSource with a constant value so trigger
// evaluations are deterministic.
type fixedLevel float64

func (l fixedLevel) Current(time.Time) float64 {
	return float64(l)
}

// fakeUserRepo implements users.Repository over a plain map.
type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*users.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, users.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, users.ErrUserNotFound
}

// fakeRecRepo implements system.RecommendationRepository and records every
// persisted recommendation.
type fakeRecRepo struct {
	mu      sync.Mutex
	records []*system.RecommendationRecord
}

func (r *fakeRecRepo) Create(_ context.Context, rec *system.RecommendationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *rec
	r.records = append(r.records, &clone)
	return nil
}

func (r *fakeRecRepo) ListByUser(_ context.Context, userID string, limit int) ([]*system.RecommendationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*system.RecommendationRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			clone := *rec
			out = append(out, &clone)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// capturePublisher implements events.Publisher and keeps every event.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) byType(eventType string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, event := range p.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

var _ threats.LevelSource = fixedLevel(0)
var _ users.Repository = (*fakeUserRepo)(nil)
var _ system.RecommendationRepository = (*fakeRecRepo)(nil)
var _ events.Publisher = (*capturePublisher)(nil)
