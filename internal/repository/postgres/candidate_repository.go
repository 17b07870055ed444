package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type candidateRepository struct {
	db querier
}

const candidateColumns = `id, first_name, last_name, email, phone, address`

func (r *candidateRepository) Save(ctx context.Context, c *domain.Candidate) error {
	if c.ID == 0 {
		query := `
			INSERT INTO candidates (first_name, last_name, email, phone, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id`
		err := r.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.Address).Scan(&c.ID)
		if err != nil {
			return classify(err)
		}
		return nil
	}

	query := `
		UPDATE candidates SET
			first_name = $1, last_name = $2, email = $3, phone = $4, address = $5,
			updated_at = NOW()
		WHERE id = $6`
	cmdTag, err := r.db.Exec(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return classify(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *candidateRepository) FindOne(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *candidateRepository) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *candidateRepository) findOne(ctx context.Context, query string, arg any) (*domain.Candidate, error) {
	c := domain.Candidate{
		Educations:      []domain.Education{},
		WorkExperiences: []domain.WorkExperience{},
		Resumes:         []domain.Resume{},
	}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	return &c, nil
}

// Delete relies on ON DELETE CASCADE to remove dependents in the same statement.
func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
