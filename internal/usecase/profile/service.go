// Package profile exposes full-profile lookups to the transport layer.
package profile

import (
	"context"

	"github.com/recruitu/lateral/internal/domain/profile"
)

// Repository is the profile read path.
type Repository interface {
	ByID(ctx context.Context, id string) (profile.Record, error)
	ByIDs(ctx context.Context, ids []string) ([]profile.Record, error)
}

// Service answers profile lookups.
type Service struct {
	repo Repository
}

// New creates a profile service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// ByID returns the full profile for one identifier.
func (s *Service) ByID(ctx context.Context, id string) (profile.Record, error) {
	return s.repo.ByID(ctx, id)
}

// ByIDs returns full profiles for several identifiers in request order,
// skipping unknown ones.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]profile.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.ByIDs(ctx, ids)
}
