package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCandidate(t *testing.T, s *Store, email string) *domain.Candidate {
	t.Helper()
	c := &domain.Candidate{FirstName: "John", LastName: "Doe", Email: email}
	require.NoError(t, s.Candidates().Save(context.Background(), c))
	require.NotZero(t, c.ID)
	return c
}

func TestCandidateSaveAssignsIdentityAndUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := seedCandidate(t, s, "john.doe@example.com")
	assert.Equal(t, int64(1), c.ID)

	c.FirstName = "Jane"
	require.NoError(t, s.Candidates().Save(ctx, c))

	found, err := s.Candidates().FindOne(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Jane", found.FirstName)

	missing, err := s.Candidates().FindOne(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = s.Candidates().Save(ctx, &domain.Candidate{ID: 99, Email: "ghost@example.com"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCandidateEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedCandidate(t, s, "duplicate@example.com")

	err := s.Candidates().Save(ctx, &domain.Candidate{FirstName: "Jane", LastName: "Doe", Email: "duplicate@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUniqueViolation))

	found, err := s.Candidates().FindByEmail(ctx, "duplicate@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John", found.FirstName)
}

func TestDependentsRequireCandidate(t *testing.T) {
	s := NewStore()
	err := s.Educations().Save(context.Background(), &domain.Education{CandidateID: 42, Institution: "University"})
	assert.Error(t, err)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	c := seedCandidate(t, s, "cascade.test@example.com")

	require.NoError(t, s.Educations().Save(ctx, &domain.Education{CandidateID: c.ID, Institution: "University", Title: "CS"}))
	require.NoError(t, s.WorkExperiences().Save(ctx, &domain.WorkExperience{CandidateID: c.ID, Company: "Tech Corp", Position: "Developer"}))
	require.NoError(t, s.Resumes().Save(ctx, &domain.Resume{CandidateID: c.ID, FilePath: "/cv.pdf", FileType: "application/pdf"}))

	require.NoError(t, s.Candidates().Delete(ctx, c.ID))

	educations, err := s.Educations().FindByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, educations)
	experiences, err := s.WorkExperiences().FindByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, experiences)
	resumes, err := s.Resumes().FindByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, resumes)

	// the email is free again
	seedCandidate(t, s, "cascade.test@example.com")

	assert.True(t, errors.Is(s.Candidates().Delete(ctx, c.ID), domain.ErrNotFound))
}

func TestRunTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("Failed to save education")

	err := s.RunTransaction(ctx, func(repos domain.Repositories) error {
		c := &domain.Candidate{FirstName: "John", LastName: "Doe", Email: "rollback@example.com"}
		if err := repos.Candidates().Save(ctx, c); err != nil {
			return err
		}
		if err := repos.Educations().Save(ctx, &domain.Education{CandidateID: c.ID, Institution: "University"}); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	found, err := s.Candidates().FindByEmail(ctx, "rollback@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
	educations, err := s.Educations().FindByCandidateID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, educations)
}

func TestRunTransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var id int64
	err := s.RunTransaction(ctx, func(repos domain.Repositories) error {
		c := &domain.Candidate{FirstName: "John", LastName: "Doe", Email: "commit@example.com"}
		if err := repos.Candidates().Save(ctx, c); err != nil {
			return err
		}
		id = c.ID
		return repos.Resumes().Save(ctx, &domain.Resume{CandidateID: c.ID, FilePath: "/cv.pdf", FileType: "application/pdf"})
	})
	require.NoError(t, err)

	resumes, err := s.Resumes().FindByCandidateID(ctx, id)
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, fixed, resumes[0].UploadDate)
}

func TestRunTransactionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().RunTransaction(ctx, func(domain.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
