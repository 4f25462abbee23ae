package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrProjectNotFound = errors.New("project not found")

// Repository supplies immutable project snapshots to the engine.
// The engine caches nothing across calls and expects the full set each time.
type Repository interface {
	GetAll(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	IncrementViews(ctx context.Context, id int64) error
	Version(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	query := `
        SELECT p.id, p.title, p.description, p.category, p.technologies,
               p.difficulty, p.department_id, d.name AS department,
               p.supervisor, p.keywords, p.year, p.views, p.created_at
        FROM projects p
        JOIN departments d ON p.department_id = d.id
        ORDER BY p.id
    `

	err := r.db.SelectContext(ctx, &projects, query)
	return projects, err
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	var project Project
	query := `
        SELECT p.id, p.title, p.description, p.category, p.technologies,
               p.difficulty, p.department_id, d.name AS department,
               p.supervisor, p.keywords, p.year, p.views, p.created_at
        FROM projects p
        JOIN departments d ON p.department_id = d.id
        WHERE p.id = $1
    `

	err := r.db.GetContext(ctx, &project, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}

	return &project, err
}

func (r *postgresRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET views = views + 1 WHERE id = $1`, id)
	return err
}

// Version returns a stamp that changes whenever the catalog changes.
// Used as part of the similarity-cache key.
func (r *postgresRepository) Version(ctx context.Context) (int64, error) {
	var version int64
	query := `SELECT COALESCE(MAX(EXTRACT(EPOCH FROM updated_at))::bigint, 0) + COUNT(*) FROM projects`
	err := r.db.QueryRowxContext(ctx, query).Scan(&version)
	return version, err
}
