package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go-candidate-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store implements domain.Store using GORM + Postgres.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres. TranslateError makes the driver surface unique
// violations as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the candidate tables, including the
// ON DELETE CASCADE foreign keys declared on CandidateModel.
func (s *Store) AutoMigrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&CandidateModel{},
		&EducationModel{},
		&WorkExperienceModel{},
		&ResumeModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Store) Candidates() domain.CandidateRepository { return &candidateRepo{db: s.db} }

func (s *Store) Educations() domain.EducationRepository { return &educationRepo{db: s.db} }

func (s *Store) WorkExperiences() domain.WorkExperienceRepository {
	return &workExperienceRepo{db: s.db}
}

func (s *Store) Resumes() domain.ResumeRepository { return &resumeRepo{db: s.db} }

func (s *Store) RunTransaction(ctx context.Context, fn func(repos domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func classify(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrUniqueViolation, err)
	}
	return err
}

// ============================================================================
// Candidates
// ============================================================================

type candidateRepo struct {
	db *gorm.DB
}

func (r *candidateRepo) Save(ctx context.Context, c *domain.Candidate) error {
	model := candidateToModel(c)
	db := r.db.WithContext(ctx).Omit(clause.Associations)

	if model.ID == 0 {
		if err := db.Create(&model).Error; err != nil {
			return classify(err)
		}
		c.ID = model.ID
		return nil
	}

	res := db.Model(&model).
		Select("first_name", "last_name", "email", "phone", "address", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *candidateRepo) FindOne(ctx context.Context, id int64) (*domain.Candidate, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *candidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *candidateRepo) first(ctx context.Context, query string, arg any) (*domain.Candidate, error) {
	var model CandidateModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return candidateFromModel(model), nil
}

func (r *candidateRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CandidateModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ============================================================================
// Educations
// ============================================================================

type educationRepo struct {
	db *gorm.DB
}

func (r *educationRepo) Save(ctx context.Context, e *domain.Education) error {
	model := educationToModel(e)
	if err := save(ctx, r.db, &model, model.ID); err != nil {
		return fmt.Errorf("education: %w", err)
	}
	e.ID = model.ID
	return nil
}

func (r *educationRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	var models []EducationModel
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Education, 0, len(models))
	for _, m := range models {
		res = append(res, educationFromModel(m))
	}
	return res, nil
}

func (r *educationRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Delete(&EducationModel{}).Error
}

// ============================================================================
// Work experiences
// ============================================================================

type workExperienceRepo struct {
	db *gorm.DB
}

func (r *workExperienceRepo) Save(ctx context.Context, w *domain.WorkExperience) error {
	model := workExperienceToModel(w)
	if err := save(ctx, r.db, &model, model.ID); err != nil {
		return fmt.Errorf("work experience: %w", err)
	}
	w.ID = model.ID
	return nil
}

func (r *workExperienceRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.WorkExperience, error) {
	var models []WorkExperienceModel
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.WorkExperience, 0, len(models))
	for _, m := range models {
		res = append(res, workExperienceFromModel(m))
	}
	return res, nil
}

func (r *workExperienceRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Delete(&WorkExperienceModel{}).Error
}

// ============================================================================
// Resumes
// ============================================================================

type resumeRepo struct {
	db *gorm.DB
}

func (r *resumeRepo) Save(ctx context.Context, res *domain.Resume) error {
	if res.UploadDate.IsZero() {
		res.UploadDate = time.Now().UTC()
	}
	model := resumeToModel(res)
	if err := save(ctx, r.db, &model, model.ID); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	res.ID = model.ID
	return nil
}

func (r *resumeRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Resume, error) {
	var models []ResumeModel
	if err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Resume, 0, len(models))
	for _, m := range models {
		res = append(res, resumeFromModel(m))
	}
	return res, nil
}

func (r *resumeRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.db.WithContext(ctx).Where("candidate_id = ?", candidateID).Delete(&ResumeModel{}).Error
}

// save inserts model when id is zero and otherwise updates every column of
// the existing row, reporting domain.ErrNotFound when no row matched.
func save(ctx context.Context, db *gorm.DB, model any, id int64) error {
	db = db.WithContext(ctx)
	if id == 0 {
		return classify(db.Create(model).Error)
	}
	res := db.Model(model).Select("*").Omit("id").Updates(model)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("row %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
