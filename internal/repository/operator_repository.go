package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/apaulliao/classboard-api/internal/models"
)

// OperatorRepository persists staff accounts.
type OperatorRepository struct {
	db *sqlx.DB
}

// NewOperatorRepository constructs the repository.
func NewOperatorRepository(db *sqlx.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// FindByEmail fetches an operator account by email.
func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	const query = `SELECT id, email, password_hash, full_name, role, active, last_login, created_at, updated_at
FROM operators WHERE email = $1`
	var operator models.Operator
	if err := r.db.GetContext(ctx, &operator, query, email); err != nil {
		return nil, err
	}
	return &operator, nil
}

// FindByID fetches an operator account by id.
func (r *OperatorRepository) FindByID(ctx context.Context, id string) (*models.Operator, error) {
	const query = `SELECT id, email, password_hash, full_name, role, active, last_login, created_at, updated_at
FROM operators WHERE id = $1`
	var operator models.Operator
	if err := r.db.GetContext(ctx, &operator, query, id); err != nil {
		return nil, err
	}
	return &operator, nil
}

// UpdateLastLogin stamps the most recent successful login.
func (r *OperatorRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE operators SET last_login = $2, updated_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, ts)
	return err
}
