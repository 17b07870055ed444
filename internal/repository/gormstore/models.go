package gormstore

import (
	"time"

	"go-candidate-backend/internal/domain"
)

// GORM models used for persistence. Table and column names match
// migrations/0001_init.sql so both SQL stores can share one database.
type CandidateModel struct {
	ID              int64                 `gorm:"primaryKey"`
	FirstName       string                `gorm:"size:100;not null"`
	LastName        string                `gorm:"size:100;not null"`
	Email           string                `gorm:"size:255;not null;uniqueIndex:candidates_email_key"`
	Phone           *string               `gorm:"size:15"`
	Address         *string               `gorm:"size:100"`
	CreatedAt       time.Time             `gorm:"not null"`
	UpdatedAt       time.Time             `gorm:"not null"`
	Educations      []EducationModel      `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	WorkExperiences []WorkExperienceModel `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	Resumes         []ResumeModel         `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
}

func (CandidateModel) TableName() string { return "candidates" }

type EducationModel struct {
	ID          int64     `gorm:"primaryKey"`
	CandidateID int64     `gorm:"not null;index:idx_educations_candidate_id"`
	Institution string    `gorm:"size:100;not null"`
	Title       string    `gorm:"size:100;not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
}

func (EducationModel) TableName() string { return "educations" }

type WorkExperienceModel struct {
	ID          int64     `gorm:"primaryKey"`
	CandidateID int64     `gorm:"not null;index:idx_work_experiences_candidate_id"`
	Company     string    `gorm:"size:100;not null"`
	Position    string    `gorm:"size:100;not null"`
	Description *string   `gorm:"size:200"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
}

func (WorkExperienceModel) TableName() string { return "work_experiences" }

type ResumeModel struct {
	ID          int64     `gorm:"primaryKey"`
	CandidateID int64     `gorm:"not null;index:idx_resumes_candidate_id"`
	FilePath    string    `gorm:"size:500;not null"`
	FileType    string    `gorm:"size:50;not null"`
	UploadDate  time.Time `gorm:"not null"`
}

func (ResumeModel) TableName() string { return "resumes" }

func candidateToModel(c *domain.Candidate) CandidateModel {
	return CandidateModel{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}

func candidateFromModel(m CandidateModel) *domain.Candidate {
	return &domain.Candidate{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         m.Address,
		Educations:      []domain.Education{},
		WorkExperiences: []domain.WorkExperience{},
		Resumes:         []domain.Resume{},
	}
}

func educationToModel(e *domain.Education) EducationModel {
	return EducationModel{
		ID:          e.ID,
		CandidateID: e.CandidateID,
		Institution: e.Institution,
		Title:       e.Title,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

func educationFromModel(m EducationModel) domain.Education {
	return domain.Education{
		ID:          m.ID,
		CandidateID: m.CandidateID,
		Institution: m.Institution,
		Title:       m.Title,
		StartDate:   m.StartDate.UTC(),
		EndDate:     utcPtr(m.EndDate),
	}
}

func workExperienceToModel(w *domain.WorkExperience) WorkExperienceModel {
	return WorkExperienceModel{
		ID:          w.ID,
		CandidateID: w.CandidateID,
		Company:     w.Company,
		Position:    w.Position,
		Description: w.Description,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
	}
}

func workExperienceFromModel(m WorkExperienceModel) domain.WorkExperience {
	return domain.WorkExperience{
		ID:          m.ID,
		CandidateID: m.CandidateID,
		Company:     m.Company,
		Position:    m.Position,
		Description: m.Description,
		StartDate:   m.StartDate.UTC(),
		EndDate:     utcPtr(m.EndDate),
	}
}

func resumeToModel(r *domain.Resume) ResumeModel {
	return ResumeModel{
		ID:          r.ID,
		CandidateID: r.CandidateID,
		FilePath:    r.FilePath,
		FileType:    r.FileType,
		UploadDate:  r.UploadDate,
	}
}

func resumeFromModel(m ResumeModel) domain.Resume {
	return domain.Resume{
		ID:          m.ID,
		CandidateID: m.CandidateID,
		FilePath:    m.FilePath,
		FileType:    m.FileType,
		UploadDate:  m.UploadDate.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
