package postgres

import (
	"context"
	"fmt"
	"time"

	"go-candidate-backend/internal/domain"
)

// =================================================================================================
// Educations
// =================================================================================================

type educationRepository struct {
	db querier
}

func (r *educationRepository) Save(ctx context.Context, e *domain.Education) error {
	if e.ID == 0 {
		query := `
			INSERT INTO educations (candidate_id, institution, title, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		err := r.db.QueryRow(ctx, query, e.CandidateID, e.Institution, e.Title, e.StartDate, e.EndDate).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("failed to insert education: %w", classify(err))
		}
		return nil
	}

	query := `
		UPDATE educations SET institution = $1, title = $2, start_date = $3, end_date = $4
		WHERE id = $5 AND candidate_id = $6`
	cmdTag, err := r.db.Exec(ctx, query, e.Institution, e.Title, e.StartDate, e.EndDate, e.ID, e.CandidateID)
	if err != nil {
		return fmt.Errorf("failed to update education: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("education %d: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *educationRepository) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	query := `SELECT id, candidate_id, institution, title, start_date, end_date
	          FROM educations WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch educations: %w", err)
	}
	defer rows.Close()

	educations := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Institution, &e.Title, &e.StartDate, &e.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan education row: %w", err)
		}
		e.StartDate = e.StartDate.UTC()
		e.EndDate = utcPtr(e.EndDate)
		educations = append(educations, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating education rows: %w", err)
	}
	return educations, nil
}

func (r *educationRepository) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM educations WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete educations: %w", err)
	}
	return nil
}

// =================================================================================================
// Work experiences
// =================================================================================================

type workExperienceRepository struct {
	db querier
}

func (r *workExperienceRepository) Save(ctx context.Context, w *domain.WorkExperience) error {
	if w.ID == 0 {
		query := `
			INSERT INTO work_experiences (candidate_id, company, position, description, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		err := r.db.QueryRow(ctx, query,
			w.CandidateID, w.Company, w.Position, w.Description, w.StartDate, w.EndDate,
		).Scan(&w.ID)
		if err != nil {
			return fmt.Errorf("failed to insert work experience: %w", classify(err))
		}
		return nil
	}

	query := `
		UPDATE work_experiences SET company = $1, position = $2, description = $3, start_date = $4, end_date = $5
		WHERE id = $6 AND candidate_id = $7`
	cmdTag, err := r.db.Exec(ctx, query,
		w.Company, w.Position, w.Description, w.StartDate, w.EndDate, w.ID, w.CandidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work experience: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("work experience %d: %w", w.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *workExperienceRepository) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.WorkExperience, error) {
	query := `SELECT id, candidate_id, company, position, description, start_date, end_date
	          FROM work_experiences WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work exp: %w", err)
	}
	defer rows.Close()

	experiences := []domain.WorkExperience{}
	for rows.Next() {
		var w domain.WorkExperience
		err := rows.Scan(
			&w.ID, &w.CandidateID, &w.Company, &w.Position, &w.Description, &w.StartDate, &w.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work exp row: %w", err)
		}
		w.StartDate = w.StartDate.UTC()
		w.EndDate = utcPtr(w.EndDate)
		experiences = append(experiences, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work exp rows: %w", err)
	}
	return experiences, nil
}

func (r *workExperienceRepository) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM work_experiences WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete work exp: %w", err)
	}
	return nil
}

// =================================================================================================
// Resumes
// =================================================================================================

type resumeRepository struct {
	db querier
}

func (r *resumeRepository) Save(ctx context.Context, res *domain.Resume) error {
	if res.UploadDate.IsZero() {
		res.UploadDate = time.Now().UTC()
	}

	if res.ID == 0 {
		query := `
			INSERT INTO resumes (candidate_id, file_path, file_type, upload_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id`
		err := r.db.QueryRow(ctx, query, res.CandidateID, res.FilePath, res.FileType, res.UploadDate).Scan(&res.ID)
		if err != nil {
			return fmt.Errorf("failed to insert resume: %w", classify(err))
		}
		return nil
	}

	query := `UPDATE resumes SET file_path = $1, file_type = $2, upload_date = $3 WHERE id = $4 AND candidate_id = $5`
	cmdTag, err := r.db.Exec(ctx, query, res.FilePath, res.FileType, res.UploadDate, res.ID, res.CandidateID)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", classify(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("resume %d: %w", res.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *resumeRepository) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Resume, error) {
	query := `SELECT id, candidate_id, file_path, file_type, upload_date
	          FROM resumes WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resumes: %w", err)
	}
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		var res domain.Resume
		if err := rows.Scan(&res.ID, &res.CandidateID, &res.FilePath, &res.FileType, &res.UploadDate); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		res.UploadDate = res.UploadDate.UTC()
		resumes = append(resumes, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resume rows: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete resumes: %w", err)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
