package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-candidate-backend/internal/cache"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/memory"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockEducationRepo struct {
	mock.Mock
}

func (m *MockEducationRepo) Save(ctx context.Context, e *domain.Education) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEducationRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Education), args.Error(1)
}

func (m *MockEducationRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return m.Called(ctx, candidateID).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Save(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) FindOne(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// faultyStore runs real transactions on a memory store but swaps selected
// repositories for mocks inside them.
type faultyStore struct {
	*memory.Store
	candidates       domain.CandidateRepository
	educations       domain.EducationRepository
	educationSaveErr error
}

type faultyRepos struct {
	domain.Repositories
	candidates       domain.CandidateRepository
	educations       domain.EducationRepository
	educationSaveErr error
}

// failingEducationSaves uses the transaction's repository for everything but Save.
type failingEducationSaves struct {
	domain.EducationRepository
	err error
}

func (r failingEducationSaves) Save(context.Context, *domain.Education) error {
	return r.err
}

func (r faultyRepos) Candidates() domain.CandidateRepository {
	if r.candidates != nil {
		return r.candidates
	}
	return r.Repositories.Candidates()
}

func (r faultyRepos) Educations() domain.EducationRepository {
	if r.educations != nil {
		return r.educations
	}
	if r.educationSaveErr != nil {
		return failingEducationSaves{EducationRepository: r.Repositories.Educations(), err: r.educationSaveErr}
	}
	return r.Repositories.Educations()
}

func (s *faultyStore) RunTransaction(ctx context.Context, fn func(domain.Repositories) error) error {
	return s.Store.RunTransaction(ctx, func(repos domain.Repositories) error {
		return fn(faultyRepos{
			Repositories:     repos,
			candidates:       s.candidates,
			educations:       s.educations,
			educationSaveErr: s.educationSaveErr,
		})
	})
}

func newUsecase(store domain.Store) domain.CandidateUsecase {
	return usecase.NewCandidateUsecase(store, nil, validation.New())
}

func validInput() *domain.CandidateInput {
	return &domain.CandidateInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Phone:     "612345678",
		Address:   "123 Main St",
		Educations: []domain.EducationInput{
			{Institution: "University", Title: "Computer Science", StartDate: "2020-01-01", EndDate: "2024-01-01"},
		},
		WorkExperiences: []domain.WorkExperienceInput{
			{Company: "Tech Corp", Position: "Developer", Description: "Full Stack Development", StartDate: "2020-01-01"},
		},
		CV: &domain.CVInput{FilePath: "/path/to/cv.pdf", FileType: "application/pdf"},
	}
}

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
	return appErr
}

func TestAddCandidate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	require.Len(t, created.Educations, 1)
	assert.Equal(t, created.ID, created.Educations[0].CandidateID)
	assert.Equal(t, "University", created.Educations[0].Institution)
	require.Len(t, created.WorkExperiences, 1)
	assert.Equal(t, "Tech Corp", created.WorkExperiences[0].Company)
	require.Len(t, created.Resumes, 1)
	assert.Equal(t, "/path/to/cv.pdf", created.Resumes[0].FilePath)
	assert.False(t, created.Resumes[0].UploadDate.IsZero())

	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Educations, 1)
	require.Len(t, got.WorkExperiences, 1)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), got.Educations[0].StartDate)
	assert.Equal(t, "Computer Science", got.Educations[0].Title)
	assert.Equal(t, "Developer", got.WorkExperiences[0].Position)
}

func TestAddCandidateWithoutOptionalFields(t *testing.T) {
	uc := newUsecase(memory.NewStore())

	created, err := uc.AddCandidate(context.Background(), &domain.CandidateInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, created.Phone)
	assert.Nil(t, created.Address)
	assert.Empty(t, created.Educations)
	assert.Empty(t, created.WorkExperiences)
	assert.Empty(t, created.Resumes)
}

func TestAddCandidateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	_, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	_, err = uc.AddCandidate(ctx, validInput())
	appErr := requireKind(t, err, apperror.KindConflict)
	assert.Equal(t, "The email already exists in the database", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	// the first record and its dependents are intact
	found, err := store.Candidates().FindByEmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	educations, err := store.Educations().FindByCandidateID(ctx, found.ID)
	require.NoError(t, err)
	assert.Len(t, educations, 1)
}

func TestAddCandidateInvalidCVPersistsNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	in := validInput()
	in.CV = &domain.CVInput{FilePath: "", FileType: "application/pdf"}

	_, err := uc.AddCandidate(ctx, in)
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "Invalid CV data", appErr.Message)

	found, err := store.Candidates().FindByEmail(ctx, in.Email)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAddCandidateRollsBackWhenDependentFails(t *testing.T) {
	ctx := context.Background()
	educations := new(MockEducationRepo)
	educations.On("Save", mock.Anything, mock.Anything).Return(errors.New("Failed to save education"))

	store := &faultyStore{Store: memory.NewStore(), educations: educations}
	uc := newUsecase(store)

	_, err := uc.AddCandidate(ctx, validInput())
	appErr := requireKind(t, err, apperror.KindPersistence)
	assert.Equal(t, "Failed to save education", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)

	found, err := store.Candidates().FindByEmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
	educations.AssertExpectations(t)
}

func TestAddCandidateSurfacesStoreErrors(t *testing.T) {
	candidates := new(MockCandidateRepo)
	candidates.On("Save", mock.Anything, mock.Anything).Return(errors.New("Database connection error"))

	uc := newUsecase(&faultyStore{Store: memory.NewStore(), candidates: candidates})

	_, err := uc.AddCandidate(context.Background(), validInput())
	appErr := requireKind(t, err, apperror.KindPersistence)
	assert.Equal(t, "Database connection error", appErr.Message)
	candidates.AssertExpectations(t)
}

func TestAddCandidateValidationRunsBeforeStore(t *testing.T) {
	candidates := new(MockCandidateRepo)
	uc := newUsecase(&faultyStore{Store: memory.NewStore(), candidates: candidates})

	in := validInput()
	in.Educations[0].EndDate = "2019-01-01"

	_, err := uc.AddCandidate(context.Background(), in)
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "Invalid date order", appErr.Message)
	candidates.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateCandidateReplacesEducations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	firstName := "Johnny"
	updated, err := uc.UpdateCandidate(ctx, &domain.CandidateUpdate{
		ID:        created.ID,
		FirstName: &firstName,
		Educations: []domain.EducationInput{
			{Institution: "MIT", Title: "Mathematics", StartDate: "2015-09-01", EndDate: "2019-06-30"},
			{Institution: "Stanford", Title: "Physics", StartDate: "2019-09-01"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	require.Len(t, updated.Educations, 2)
	assert.Equal(t, "MIT", updated.Educations[0].Institution)
	assert.Equal(t, "Stanford", updated.Educations[1].Institution)
	// untouched collections survive
	assert.Len(t, updated.WorkExperiences, 1)
	assert.Len(t, updated.Resumes, 1)

	stored, err := store.Educations().FindByCandidateID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUpdateCandidateEmptyCollectionClears(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(memory.NewStore())

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	updated, err := uc.UpdateCandidate(ctx, &domain.CandidateUpdate{
		ID:              created.ID,
		WorkExperiences: []domain.WorkExperienceInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.WorkExperiences)
	assert.Len(t, updated.Educations, 1)
}

func TestUpdateCandidateNotFound(t *testing.T) {
	uc := newUsecase(memory.NewStore())

	_, err := uc.UpdateCandidate(context.Background(), &domain.CandidateUpdate{ID: 99})
	appErr := requireKind(t, err, apperror.KindNotFound)
	assert.Equal(t, "Candidate not found", appErr.Message)
}

func TestUpdateCandidateInvalidFieldsLeaveRecordUntouched(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(memory.NewStore())

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	bad := "J0hn"
	_, err = uc.UpdateCandidate(ctx, &domain.CandidateUpdate{
		ID:         created.ID,
		FirstName:  &bad,
		Educations: []domain.EducationInput{},
	})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "Invalid name", appErr.Message)

	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Len(t, got.Educations, 1)
}

func TestDeleteCandidateCascades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCandidate(ctx, created.ID))

	_, err = uc.GetCandidate(ctx, created.ID)
	requireKind(t, err, apperror.KindNotFound)

	educations, err := store.Educations().FindByCandidateID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, educations)
	experiences, err := store.WorkExperiences().FindByCandidateID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, experiences)
	resumes, err := store.Resumes().FindByCandidateID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, resumes)

	err = uc.DeleteCandidate(ctx, created.ID)
	appErr := requireKind(t, err, apperror.KindNotFound)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestGetCandidateUsesCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := memory.NewStore()
	uc := usecase.NewCandidateUsecase(store, cache.NewRedisCandidateCache(client, time.Minute), validation.New())

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)
	assert.False(t, mr.Exists("candidate:1"))

	_, err = uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("candidate:1"))

	// a cached aggregate is served even when the store changes underneath
	require.NoError(t, store.Candidates().Delete(ctx, created.ID))
	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got.Email)

	lastName := "Smith"
	_, err = uc.UpdateCandidate(ctx, &domain.CandidateUpdate{ID: created.ID, LastName: &lastName})
	requireKind(t, err, apperror.KindNotFound)

	created, err = uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)
	_, err = uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("candidate:2"))

	require.NoError(t, uc.DeleteCandidate(ctx, created.ID))
	assert.False(t, mr.Exists("candidate:2"))
}

func TestGetCandidateIgnoresCacheOutage(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	uc := usecase.NewCandidateUsecase(memory.NewStore(), cache.NewRedisCandidateCache(client, time.Minute), validation.New())
	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	mr.Close()

	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateCandidateRollsBackWhenDependentFails(t *testing.T) {
	ctx := context.Background()
	store := &faultyStore{Store: memory.NewStore()}
	uc := newUsecase(store)

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	// Names are saved and old educations deleted before the failing insert.
	store.educationSaveErr = errors.New("Failed to save education")
	firstName := "Johnny"
	_, err = uc.UpdateCandidate(ctx, &domain.CandidateUpdate{
		ID:        created.ID,
		FirstName: &firstName,
		Educations: []domain.EducationInput{
			{Institution: "MIT", Title: "Mathematics", StartDate: "2015-09-01"},
		},
	})
	appErr := requireKind(t, err, apperror.KindPersistence)
	assert.Equal(t, "Failed to save education", appErr.Message)

	store.educationSaveErr = nil
	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	require.Len(t, got.Educations, 1)
	assert.Equal(t, "University", got.Educations[0].Institution)
	assert.Len(t, got.WorkExperiences, 1)
}

func TestAddCandidateConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newUsecase(store)

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.AddCandidate(ctx, validInput())

			mu.Lock()
			defer mu.Unlock()
			var appErr *apperror.AppError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &appErr) && appErr.Kind == apperror.KindConflict:
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	found, err := store.Candidates().FindByEmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	educations, err := store.Educations().FindByCandidateID(ctx, found.ID)
	require.NoError(t, err)
	assert.Len(t, educations, 1)
}

// gatedCache holds the first Set until release is closed.
type gatedCache struct {
	domain.CandidateCache
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCache) Set(ctx context.Context, c *domain.Candidate, version int64) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.CandidateCache.Set(ctx, c, version)
}

func TestGetCandidateDoesNotCacheRowsReadBeforeUpdate(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	gated := &gatedCache{
		CandidateCache: cache.NewRedisCandidateCache(client, time.Minute),
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	uc := usecase.NewCandidateUsecase(memory.NewStore(), gated, validation.New())

	created, err := uc.AddCandidate(ctx, validInput())
	require.NoError(t, err)

	loaded := make(chan error, 1)
	go func() {
		_, err := uc.GetCandidate(ctx, created.ID)
		loaded <- err
	}()

	// The read has finished and is about to fill the cache.
	<-gated.entered
	firstName := "Johnny"
	_, err = uc.UpdateCandidate(ctx, &domain.CandidateUpdate{ID: created.ID, FirstName: &firstName})
	require.NoError(t, err)
	close(gated.release)
	require.NoError(t, <-loaded)

	assert.False(t, mr.Exists("candidate:1"))

	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", got.FirstName)
	assert.True(t, mr.Exists("candidate:1"))
}

func TestGetCandidateIgnoresCallerCancellation(t *testing.T) {
	uc := newUsecase(memory.NewStore())
	created, err := uc.AddCandidate(context.Background(), validInput())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := uc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
