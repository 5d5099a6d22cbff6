package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `p.id, p.title, p.description, p.technologies, p.start_date, p.end_date,
	p.status, p.image_url, p.project_url, p.user_id, u.username, p.created_at, p.updated_at`

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	techs, err := json.Marshal(emptyIfNil(project.Technologies))
	if err != nil {
		return nil, fmt.Errorf("encode technologies: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO projects (title, description, technologies, start_date, end_date, status, image_url, project_url, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		project.Title, project.Description, techs, project.StartDate, project.EndDate,
		project.Status, project.ImageURL, project.ProjectURL, project.UserID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects p JOIN users u ON p.user_id = u.id WHERE p.id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	techs, err := json.Marshal(emptyIfNil(project.Technologies))
	if err != nil {
		return nil, fmt.Errorf("encode technologies: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = $1, description = $2, technologies = $3, start_date = $4,
			end_date = $5, status = $6, image_url = $7, project_url = $8, updated_at = now()
		 WHERE id = $9`,
		project.Title, project.Description, techs, project.StartDate, project.EndDate,
		project.Status, project.ImageURL, project.ProjectURL, project.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.FindByID(ctx, project.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// List applies the public filters: ILIKE search over title/description, an
// optional status filter, and offset pagination. Returns the page and the
// total match count.
func (r *ProjectRepository) List(ctx context.Context, q ports.ProjectListQuery) ([]domain.Project, int64, error) {
	where := `WHERE 1=1`
	args := []any{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where += fmt.Sprintf(` AND (p.title ILIKE $%d OR p.description ILIKE $%d)`, len(args), len(args))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where += fmt.Sprintf(` AND p.status = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM projects p ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := `SELECT ` + projectColumns + ` FROM projects p JOIN users u ON p.user_id = u.id ` +
		where + fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	projects, err := r.queryProjects(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + `, u.email
		FROM projects p JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProjectWithEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("list all projects: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Recent(ctx context.Context, n int) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects p JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC LIMIT $1`
	return r.queryProjects(ctx, query, n)
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p       domain.Project
		techs   []byte
		endDate sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &techs, &p.StartDate, &endDate,
		&p.Status, &p.ImageURL, &p.ProjectURL, &p.UserID, &p.OwnerName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return finishProject(&p, techs, endDate)
}

func scanProjectWithEmail(row rowScanner) (*domain.Project, error) {
	var (
		p       domain.Project
		techs   []byte
		endDate sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &techs, &p.StartDate, &endDate,
		&p.Status, &p.ImageURL, &p.ProjectURL, &p.UserID, &p.OwnerName,
		&p.CreatedAt, &p.UpdatedAt, &p.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}
	return finishProject(&p, techs, endDate)
}

func finishProject(p *domain.Project, techs []byte, endDate sql.NullTime) (*domain.Project, error) {
	if len(techs) > 0 {
		if err := json.Unmarshal(techs, &p.Technologies); err != nil {
			return nil, fmt.Errorf("decode technologies: %w", err)
		}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if endDate.Valid {
		end := endDate.Time
		p.EndDate = &end
	}
	return p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
