package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// runs unchanged inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repositories struct {
	candidates      *candidateRepository
	educations      *educationRepository
	workExperiences *workExperienceRepository
	resumes         *resumeRepository
}

func newRepositories(db querier) repositories {
	return repositories{
		candidates:      &candidateRepository{db: db},
		educations:      &educationRepository{db: db},
		workExperiences: &workExperienceRepository{db: db},
		resumes:         &resumeRepository{db: db},
	}
}

func (r repositories) Candidates() domain.CandidateRepository { return r.candidates }

func (r repositories) Educations() domain.EducationRepository { return r.educations }

func (r repositories) WorkExperiences() domain.WorkExperienceRepository {
	return r.workExperiences
}

func (r repositories) Resumes() domain.ResumeRepository { return r.resumes }

// Store implements domain.Store on a pgx connection pool.
type Store struct {
	repositories
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		repositories: newRepositories(db),
		db:           db,
	}
}

func (s *Store) RunTransaction(ctx context.Context, fn func(repos domain.Repositories) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

// classify tags unique violations with domain.ErrUniqueViolation and leaves
// every other error untouched.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}
