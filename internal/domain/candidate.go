package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUniqueViolation is wrapped by stores when a unique constraint (candidate email) rejects a write.
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrNotFound is wrapped by stores when an update or delete targets a missing row.
	ErrNotFound = errors.New("record not found")
)

type Candidate struct {
	ID              int64            `json:"id"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	Phone           *string          `json:"phone"`
	Address         *string          `json:"address"`
	Educations      []Education      `json:"educations"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Resumes         []Resume         `json:"resumes"`
}

type Education struct {
	ID          int64      `json:"id"`
	CandidateID int64      `json:"candidateId"`
	Institution string     `json:"institution"`
	Title       string     `json:"title"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type WorkExperience struct {
	ID          int64      `json:"id"`
	CandidateID int64      `json:"candidateId"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Resume holds CV metadata only; the file itself lives elsewhere.
type Resume struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidateId"`
	FilePath    string    `json:"filePath"`
	FileType    string    `json:"fileType"`
	UploadDate  time.Time `json:"uploadDate"`
}

// NewCandidate builds an unsaved candidate from a validated submission.
func NewCandidate(in CandidateInput) *Candidate {
	return &Candidate{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           optional(in.Phone),
		Address:         optional(in.Address),
		Educations:      []Education{},
		WorkExperiences: []WorkExperience{},
		Resumes:         []Resume{},
	}
}

func NewEducation(in EducationInput) (*Education, error) {
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	return &Education{
		Institution: in.Institution,
		Title:       in.Title,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func NewWorkExperience(in WorkExperienceInput) (*WorkExperience, error) {
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	return &WorkExperience{
		Company:     in.Company,
		Position:    in.Position,
		Description: optional(in.Description),
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func NewResume(in CVInput) *Resume {
	return &Resume{
		FilePath: in.FilePath,
		FileType: in.FileType,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CandidateRepository persists the aggregate root. Save inserts when ID is zero
// (assigning the identity) and updates the scalar fields otherwise.
type CandidateRepository interface {
	Save(ctx context.Context, c *Candidate) error
	FindOne(ctx context.Context, id int64) (*Candidate, error)
	FindByEmail(ctx context.Context, email string) (*Candidate, error)
	Delete(ctx context.Context, id int64) error
}

type EducationRepository interface {
	Save(ctx context.Context, e *Education) error
	FindByCandidateID(ctx context.Context, candidateID int64) ([]Education, error)
	DeleteByCandidateID(ctx context.Context, candidateID int64) error
}

type WorkExperienceRepository interface {
	Save(ctx context.Context, w *WorkExperience) error
	FindByCandidateID(ctx context.Context, candidateID int64) ([]WorkExperience, error)
	DeleteByCandidateID(ctx context.Context, candidateID int64) error
}

type ResumeRepository interface {
	Save(ctx context.Context, r *Resume) error
	FindByCandidateID(ctx context.Context, candidateID int64) ([]Resume, error)
	DeleteByCandidateID(ctx context.Context, candidateID int64) error
}

// Repositories groups the per-entity repositories bound to one connection or transaction.
type Repositories interface {
	Candidates() CandidateRepository
	Educations() EducationRepository
	WorkExperiences() WorkExperienceRepository
	Resumes() ResumeRepository
}

// Store is the persistence capability injected into the service. RunTransaction
// commits when fn returns nil and rolls back every write made through repos otherwise.
type Store interface {
	Repositories
	RunTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

// CandidateCache is an optional read-through cache for full aggregates.
// Version is read before loading from the store and passed to Set, which
// skips the write when Invalidate ran in between.
type CandidateCache interface {
	Get(ctx context.Context, id int64) (*Candidate, error)
	Version(ctx context.Context, id int64) (int64, error)
	Set(ctx context.Context, c *Candidate, version int64) error
	Invalidate(ctx context.Context, id int64) error
}

type CandidateUsecase interface {
	AddCandidate(ctx context.Context, in *CandidateInput) (*Candidate, error)
	UpdateCandidate(ctx context.Context, in *CandidateUpdate) (*Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error
}

// LoadAggregate fills the dependent collections of c from repos.
func LoadAggregate(ctx context.Context, repos Repositories, c *Candidate) error {
	educations, err := repos.Educations().FindByCandidateID(ctx, c.ID)
	if err != nil {
		return err
	}
	experiences, err := repos.WorkExperiences().FindByCandidateID(ctx, c.ID)
	if err != nil {
		return err
	}
	resumes, err := repos.Resumes().FindByCandidateID(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Educations = nonNil(educations)
	c.WorkExperiences = nonNil(experiences)
	c.Resumes = nonNil(resumes)
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
