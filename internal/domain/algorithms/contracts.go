package algorithms

import (
	"context"
	"errors"
)

// Sentinel errors for catalog and selection operations.
var (
	ErrAlgorithmNotFound   = errors.New("algorithm not found in catalog")
	ErrNotEnoughAlgorithms = errors.New("at least two algorithm ids are required")
)

// Catalog provides read access to the seeded algorithm profiles.
type Catalog interface {
	// List returns all cataloged profiles in seed order.
	List(ctx context.Context) []*AlgorithmProfile

	// GetByID retrieves a profile by its unique ID.
	// It returns ErrAlgorithmNotFound when no profile matches.
	GetByID(ctx context.Context, id string) (*AlgorithmProfile, error)

	// GetByName retrieves a profile by its display name.
	// It returns ErrAlgorithmNotFound when no profile matches.
	GetByName(ctx context.Context, name string) (*AlgorithmProfile, error)

	// ListByType returns all profiles of the given type in seed order.
	ListByType(ctx context.Context, t AlgorithmType) []*AlgorithmProfile
}

// SelectionService ranks cataloged algorithms against requirements.
type SelectionService interface {
	// Recommend scores every cataloged algorithm against the requirements
	// and returns recommendations sorted descending by overall score.
	// Ties preserve catalog order.
	Recommend(ctx context.Context, req *Requirements) ([]*Recommendation, error)

	// Compare scores only the given algorithm IDs. At least two IDs are
	// required.
	Compare(ctx context.Context, ids []string, req *Requirements) ([]*Recommendation, error)
}
