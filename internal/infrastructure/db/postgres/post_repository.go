package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.status, p.published_at,
	p.user_id, u.username, p.created_at, p.updated_at`

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, slug, excerpt, content, status, published_at, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		post.Title, post.Slug, post.Excerpt, post.Content, post.Status, post.PublishedAt, post.UserID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p JOIN users u ON p.user_id = u.id WHERE p.id = $1`, id)
	return postResult(row, "find post by id")
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p JOIN users u ON p.user_id = u.id WHERE p.slug = $1`, slug)
	return postResult(row, "find post by slug")
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, excerpt = $2, content = $3, status = $4,
			published_at = $5, updated_at = now()
		 WHERE id = $6`,
		post.Title, post.Excerpt, post.Content, post.Status, post.PublishedAt, post.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindByID(ctx, post.ID)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, q ports.PostListQuery) ([]domain.Post, int64, error) {
	where := `WHERE 1=1`
	args := []any{}

	if q.PublishedOnly {
		where += ` AND p.status = 'published'`
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where += fmt.Sprintf(` AND (p.title ILIKE $%d OR p.content ILIKE $%d)`, len(args), len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON p.user_id = u.id ` + where +
		fmt.Sprintf(` ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC LIMIT $%d OFFSET $%d`,
			len(args)-1, len(args))

	posts, err := r.queryPosts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) RecentPublished(ctx context.Context, n int) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON p.user_id = u.id
		WHERE p.status = 'published'
		ORDER BY p.published_at DESC, p.created_at DESC
		LIMIT $1`
	return r.queryPosts(ctx, query, n)
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p           domain.Post
		publishedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Status, &publishedAt,
		&p.UserID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		published := publishedAt.Time
		p.PublishedAt = &published
	}
	return &p, nil
}

func postResult(row *sql.Row, op string) (*domain.Post, error) {
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
