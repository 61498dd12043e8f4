package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/cache"
	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/repositories"
)

// RoleService resolves and assigns user roles
type RoleService struct {
	base
	repo RoleStore
}

// NewRoleService creates a role service
func NewRoleService(repo RoleStore, opts Options) *RoleService {
	b := newBase(opts)
	return &RoleService{base: b, repo: repo}
}

// Resolve returns the capabilities of a user. A user without a role record is a plain user.
func (s *RoleService) Resolve(ctx context.Context, userID string) (domain.Capabilities, error) {
	role, err := s.Role(ctx, userID)
	if err != nil {
		return domain.Capabilities{}, err
	}
	return domain.CapabilitiesFor(role), nil
}

// Role returns the role of a user, defaulting to user when no record exists
func (s *RoleService) Role(ctx context.Context, userID string) (domain.Role, error) {
	defer s.segment(ctx, "RoleService.Role")()

	key := cache.RoleKey(userID)
	if c := s.opts.Cache; c != nil {
		var cached domain.Role
		hit, err := c.Load(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to read cached role")
		}
		if hit {
			return cached, nil
		}
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	role, err := s.repo.GetRole(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		role = domain.DefaultRole
	case err != nil:
		s.record(ctx, "role.resolve", err)
		return "", err
	}

	if c := s.opts.Cache; c != nil {
		if err := c.Store(ctx, key, role, s.opts.CacheTTL); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to cache role")
		}
	}
	return role, nil
}

// Grant assigns a role to a user
func (s *RoleService) Grant(ctx context.Context, userID string, role domain.Role) error {
	if userID == "" {
		return domain.NewValidationError("user_id", "is required")
	}
	parsed, err := domain.ParseRole(string(role))
	if err != nil {
		return err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.repo.SetRole(storeCtx, userID, parsed); err != nil {
		return err
	}

	if c := s.opts.Cache; c != nil {
		if err := c.Invalidate(ctx, cache.RoleKey(userID)); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate cached role")
		}
	}

	log.Info().Str("user_id", userID).Str("role", string(parsed)).Msg("Role granted")
	return nil
}
