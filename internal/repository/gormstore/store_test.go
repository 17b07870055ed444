package gormstore

import (
	"errors"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyDuplicatedKey(t *testing.T) {
	err := classify(gorm.ErrDuplicatedKey)
	assert.True(t, errors.Is(err, domain.ErrUniqueViolation))

	other := errors.New("connection reset")
	assert.Equal(t, other, classify(other))
	assert.NoError(t, classify(nil))
}

func TestCandidateModelMapping(t *testing.T) {
	phone := "612345678"
	c := &domain.Candidate{ID: 7, FirstName: "Albert", LastName: "Saelices", Email: "albert@example.com", Phone: &phone}

	m := candidateToModel(c)
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "albert@example.com", m.Email)
	assert.Nil(t, m.Address)

	back := candidateFromModel(m)
	assert.Equal(t, c.Email, back.Email)
	assert.Equal(t, &phone, back.Phone)
	assert.NotNil(t, back.Educations)
	assert.NotNil(t, back.WorkExperiences)
	assert.NotNil(t, back.Resumes)
}

func TestDependentMappingNormalizesToUTC(t *testing.T) {
	madrid := time.FixedZone("CET", 3600)
	start := time.Date(2020, 1, 1, 1, 0, 0, 0, madrid)
	end := time.Date(2022, 6, 1, 1, 0, 0, 0, madrid)

	e := educationFromModel(EducationModel{ID: 1, CandidateID: 2, Institution: "UC3M", Title: "Computer Science", StartDate: start, EndDate: &end})
	assert.Equal(t, time.UTC, e.StartDate.Location())
	assert.Equal(t, time.UTC, e.EndDate.Location())
	assert.True(t, e.StartDate.Equal(start))

	w := workExperienceFromModel(WorkExperienceModel{ID: 1, CandidateID: 2, Company: "Tech Corp", Position: "Developer", StartDate: start})
	assert.Nil(t, w.EndDate)
	assert.Nil(t, w.Description)

	r := resumeFromModel(resumeToModel(&domain.Resume{CandidateID: 2, FilePath: "/cv.pdf", FileType: "application/pdf", UploadDate: end}))
	assert.Equal(t, "/cv.pdf", r.FilePath)
	assert.True(t, r.UploadDate.Equal(end))
}

func TestTableNamesMatchSQLSchema(t *testing.T) {
	assert.Equal(t, "candidates", CandidateModel{}.TableName())
	assert.Equal(t, "educations", EducationModel{}.TableName())
	assert.Equal(t, "work_experiences", WorkExperienceModel{}.TableName())
	assert.Equal(t, "resumes", ResumeModel{}.TableName())
}
