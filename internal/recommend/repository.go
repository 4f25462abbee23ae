package recommend

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository is the append-only interaction log.
// Version returns a stamp that changes on every append; it keys the
// similarity cache so stale snapshots are never served.
type Repository interface {
	Append(ctx context.Context, interaction *Interaction) error
	GetAll(ctx context.Context) ([]*Interaction, error)
	GetByUser(ctx context.Context, userID string) ([]*Interaction, error)
	Version(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Append(ctx context.Context, interaction *Interaction) error {
	query := `
        INSERT INTO interactions (
            id, user_id, project_id, viewed, bookmarked, applied,
            rating, session_duration
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		interaction.ID, interaction.UserID, interaction.ProjectID,
		interaction.Viewed, interaction.Bookmarked, interaction.Applied,
		interaction.Rating, interaction.SessionDuration,
	).Scan(&interaction.CreatedAt)
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*Interaction, error) {
	var interactions []*Interaction
	query := `
        SELECT id, user_id, project_id, viewed, bookmarked, applied,
               rating, session_duration, created_at
        FROM interactions
        ORDER BY created_at, id
    `

	err := r.db.SelectContext(ctx, &interactions, query)
	return interactions, err
}

func (r *postgresRepository) GetByUser(ctx context.Context, userID string) ([]*Interaction, error) {
	var interactions []*Interaction
	query := `
        SELECT id, user_id, project_id, viewed, bookmarked, applied,
               rating, session_duration, created_at
        FROM interactions
        WHERE user_id = $1
        ORDER BY created_at, id
    `

	err := r.db.SelectContext(ctx, &interactions, query, userID)
	return interactions, err
}

func (r *postgresRepository) Version(ctx context.Context) (int64, error) {
	var version int64
	err := r.db.QueryRowxContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&version)
	return version, err
}
