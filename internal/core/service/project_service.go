package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// ProjectService implements portfolio project CRUD. Mutations are restricted
// to the owning user; admins may mutate any project.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, principal *domain.Principal, in ports.ProjectInput) (*domain.Project, error) {
	status := in.Status
	if status == "" {
		status = domain.ProjectActive
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidProjectStatus
	}

	project := &domain.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Technologies: in.Technologies,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       status,
		ImageURL:     in.ImageURL,
		ProjectURL:   in.ProjectURL,
		UserID:       principal.SubjectID,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "create").Inc()
	s.logger.Info().Int64("project_id", created.ID).Int64("user_id", principal.SubjectID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, principal *domain.Principal, id int64, in ports.ProjectInput) (*domain.Project, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, existing.UserID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = existing.Status
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidProjectStatus
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = in.Description
	existing.Technologies = in.Technologies
	existing.StartDate = in.StartDate
	existing.EndDate = in.EndDate
	existing.Status = status
	existing.ImageURL = in.ImageURL
	existing.ProjectURL = in.ProjectURL

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "update").Inc()
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, existing.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "delete").Inc()
	s.logger.Info().Int64("project_id", id).Int64("user_id", principal.SubjectID).Msg("project deleted")
	return nil
}

func (s *ProjectService) List(ctx context.Context, q ports.ProjectListQuery) ([]domain.Project, int64, error) {
	q.Page, q.Limit = clampPage(q.Page, q.Limit)
	return s.repo.List(ctx, q)
}

func (s *ProjectService) Recent(ctx context.Context, n int) ([]domain.Project, error) {
	return s.repo.Recent(ctx, n)
}

// requireOwnerOrAdmin gates mutations on content rows.
func requireOwnerOrAdmin(principal *domain.Principal, ownerID int64) error {
	if principal == nil {
		return domain.ErrForbidden
	}
	if principal.SubjectID != ownerID && !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
