package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// AdminService backs the admin panel: account listings, role management with
// the self-demotion guard, and site-wide statistics.
type AdminService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	posts    ports.PostRepository
	cache    ports.PrincipalCache
	logger   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, projects ports.ProjectRepository, posts ports.PostRepository, cache ports.PrincipalCache, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, projects: projects, posts: posts, cache: cache, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListAll(ctx)
}

// UpdateRole changes another user's role. Mutations require an identified
// actor for the audit log. An admin targeting their own record is rejected:
// that keeps at least the acting admin privileged and makes accidental
// self-demotion impossible.
func (s *AdminService) UpdateRole(ctx context.Context, actor *domain.Principal, userID int64, role string) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if actor.SubjectID == userID {
		return nil, domain.ErrSelfRoleChange
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	s.logger.Info().Int64("user_id", userID).Str("role", role).Int64("actor_id", actor.SubjectID).Msg("role updated")
	return updated, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.Principal, userID int64) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.SubjectID == userID {
		return domain.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.invalidateCache(ctx, userID)
	s.logger.Info().Int64("user_id", userID).Int64("actor_id", actor.SubjectID).Msg("user deleted")
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*ports.HomepageStats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	projectCount, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	postCount, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.HomepageStats{
		TotalUsers:    userCount,
		TotalProjects: projectCount,
		TotalPosts:    postCount,
	}, nil
}

func (s *AdminService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("principal cache invalidation failed")
	}
}
