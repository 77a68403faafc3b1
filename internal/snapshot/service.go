package snapshot

import (
	"context"
	"log/slog"
	"strings"

	"starforge-server/internal/shared/errors"
	"starforge-server/internal/universe"

	"github.com/google/uuid"
)

type Service struct {
	repo   *Repository
	cache  *Cache
	logger *slog.Logger
}

func NewService(repo *Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Save validates a universe and persists it under a fresh id. Invalid
// universes are rejected so the store only ever holds replayable results.
func (s *Service) Save(ctx context.Context, name string, u *universe.Universe) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("snapshot name is required")
	}

	report := universe.Validate(u)
	if !report.Valid {
		return nil, errors.Validationf("universe failed validation: %s", strings.Join(report.Errors, "; "))
	}

	snap := &Snapshot{
		ID:         uuid.New().String(),
		Name:       name,
		Seed:       u.Seed,
		BodyCount:  len(u.Bodies),
		GroupCount: len(u.Groups),
		Universe:   u,
	}

	if err := s.repo.Create(ctx, snap); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, snap)

	s.logger.Info("Snapshot saved",
		"snapshot_id", snap.ID,
		"name", snap.Name,
		"seed", snap.Seed,
		"bodies", snap.BodyCount,
		"groups", snap.GroupCount,
	)
	return snap, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	if snap, ok := s.cache.Get(ctx, id); ok {
		s.logger.Debug("Snapshot cache hit", "snapshot_id", id)
		return snap, nil
	}

	snap, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, snap)

	return snap, nil
}

func (s *Service) List(ctx context.Context) ([]*Snapshot, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting snapshot", "snapshot_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)

	return nil
}
