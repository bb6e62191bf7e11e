package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medisphere/care-service/internal/domain"
)

// PractitionerRepository defines persistence access for practitioner accounts.
type PractitionerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Practitioner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error)
	List(ctx context.Context) ([]domain.Practitioner, error)
}

type practitionerRepository struct {
	pool *pgxpool.Pool
}

// NewPractitionerRepository returns a Postgres-backed implementation.
func NewPractitionerRepository(pool *pgxpool.Pool) PractitionerRepository {
	return &practitionerRepository{pool: pool}
}

const practitionerColumns = `id, name, email, password_hash, role, specialty, active, created_at, updated_at`

func (r *practitionerRepository) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	const query = `SELECT ` + practitionerColumns + ` FROM practitioners WHERE id=$1`

	var p domain.Practitioner
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.Specialty,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *practitionerRepository) GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error) {
	const query = `SELECT ` + practitionerColumns + ` FROM practitioners WHERE email=$1`

	var p domain.Practitioner
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.Specialty,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *practitionerRepository) List(ctx context.Context) ([]domain.Practitioner, error) {
	const query = `SELECT ` + practitionerColumns + ` FROM practitioners ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var practitioners []domain.Practitioner
	for rows.Next() {
		var p domain.Practitioner
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.PasswordHash,
			&p.Role,
			&p.Specialty,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		practitioners = append(practitioners, p)
	}
	return practitioners, rows.Err()
}
