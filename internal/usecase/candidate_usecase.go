package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-candidate-backend/internal/cache"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

const (
	MsgEmailExists       = "The email already exists in the database"
	MsgCandidateNotFound = "Candidate not found"
)

type candidateUsecase struct {
	store    domain.Store
	cache    domain.CandidateCache
	validate *validator.Validate
	loads    singleflight.Group
}

// NewCandidateUsecase wires the service. A nil candidateCache disables caching.
func NewCandidateUsecase(store domain.Store, candidateCache domain.CandidateCache, validate *validator.Validate) domain.CandidateUsecase {
	if candidateCache == nil {
		candidateCache = cache.Nop{}
	}
	return &candidateUsecase{
		store:    store,
		cache:    candidateCache,
		validate: validate,
	}
}

func (u *candidateUsecase) AddCandidate(ctx context.Context, in *domain.CandidateInput) (*domain.Candidate, error) {
	if err := validation.ValidateCandidate(u.validate, in); err != nil {
		return nil, err
	}

	var created *domain.Candidate
	err := u.store.RunTransaction(ctx, func(repos domain.Repositories) error {
		c := domain.NewCandidate(*in)
		if err := repos.Candidates().Save(ctx, c); err != nil {
			if errors.Is(err, domain.ErrUniqueViolation) {
				return apperror.Conflict(MsgEmailExists, err)
			}
			return err
		}

		educations, err := saveEducations(ctx, repos, c.ID, in.Educations)
		if err != nil {
			return err
		}
		c.Educations = educations

		experiences, err := saveWorkExperiences(ctx, repos, c.ID, in.WorkExperiences)
		if err != nil {
			return err
		}
		c.WorkExperiences = experiences

		if in.CV.HasData() {
			resume := domain.NewResume(*in.CV)
			resume.CandidateID = c.ID
			if err := repos.Resumes().Save(ctx, resume); err != nil {
				return err
			}
			c.Resumes = append(c.Resumes, *resume)
		}

		created = c
		return nil
	})
	if err != nil {
		logger.Log.WarnContext(ctx, "add candidate failed", "email", in.Email, "error", err)
		return nil, classify(err)
	}

	logger.Log.InfoContext(ctx, "candidate added", "candidate_id", created.ID)
	return created, nil
}

func (u *candidateUsecase) UpdateCandidate(ctx context.Context, in *domain.CandidateUpdate) (*domain.Candidate, error) {
	if in == nil {
		return nil, apperror.Validation(validation.MsgInvalidBody)
	}

	existing, err := u.store.Candidates().FindOne(ctx, in.ID)
	if err != nil {
		return nil, classify(err)
	}
	if existing == nil {
		return nil, apperror.NotFound(MsgCandidateNotFound)
	}

	if err := validation.ValidateCandidateUpdate(u.validate, in); err != nil {
		return nil, err
	}

	var updated *domain.Candidate
	err = u.store.RunTransaction(ctx, func(repos domain.Repositories) error {
		if in.FirstName != nil || in.LastName != nil {
			if in.FirstName != nil {
				existing.FirstName = *in.FirstName
			}
			if in.LastName != nil {
				existing.LastName = *in.LastName
			}
			if err := repos.Candidates().Save(ctx, existing); err != nil {
				if errors.Is(err, domain.ErrUniqueViolation) {
					return apperror.Conflict(MsgEmailExists, err)
				}
				return err
			}
		}

		if in.Educations != nil {
			if err := repos.Educations().DeleteByCandidateID(ctx, in.ID); err != nil {
				return err
			}
			if _, err := saveEducations(ctx, repos, in.ID, in.Educations); err != nil {
				return err
			}
		}

		if in.WorkExperiences != nil {
			if err := repos.WorkExperiences().DeleteByCandidateID(ctx, in.ID); err != nil {
				return err
			}
			if _, err := saveWorkExperiences(ctx, repos, in.ID, in.WorkExperiences); err != nil {
				return err
			}
		}

		c, err := repos.Candidates().FindOne(ctx, in.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound(MsgCandidateNotFound)
		}
		if err := domain.LoadAggregate(ctx, repos, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		logger.Log.WarnContext(ctx, "update candidate failed", "candidate_id", in.ID, "error", err)
		return nil, classify(err)
	}

	u.invalidate(ctx, in.ID)
	logger.Log.InfoContext(ctx, "candidate updated", "candidate_id", in.ID)
	return updated, nil
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	cached, err := u.cache.Get(ctx, id)
	if err != nil {
		logger.Log.WarnContext(ctx, "candidate cache read failed", "candidate_id", id, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	// Joined callers share the load, so one caller going away must not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := u.loads.Do(loadKey(id), func() (any, error) {
		return u.load(loadCtx, id)
	})
	if err != nil {
		return nil, classify(err)
	}

	// Each caller gets its own copy of the shared result.
	c := *v.(*domain.Candidate)
	return &c, nil
}

func (u *candidateUsecase) load(ctx context.Context, id int64) (*domain.Candidate, error) {
	version, versionErr := u.cache.Version(ctx, id)
	if versionErr != nil {
		logger.Log.WarnContext(ctx, "candidate cache version read failed", "candidate_id", id, "error", versionErr)
	}

	var found *domain.Candidate
	err := u.store.RunTransaction(ctx, func(repos domain.Repositories) error {
		c, err := repos.Candidates().FindOne(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound(MsgCandidateNotFound)
		}
		if err := domain.LoadAggregate(ctx, repos, c); err != nil {
			return err
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		if err := u.cache.Set(ctx, found, version); err != nil {
			logger.Log.WarnContext(ctx, "candidate cache write failed", "candidate_id", id, "error", err)
		}
	}
	return found, nil
}

func (u *candidateUsecase) DeleteCandidate(ctx context.Context, id int64) error {
	if err := u.store.Candidates().Delete(ctx, id); err != nil {
		return classify(err)
	}
	u.invalidate(ctx, id)
	logger.Log.InfoContext(ctx, "candidate deleted", "candidate_id", id)
	return nil
}

// invalidate runs after a committed write. Later reads start a fresh load
// instead of joining one that may have read the old rows.
func (u *candidateUsecase) invalidate(ctx context.Context, id int64) {
	u.loads.Forget(loadKey(id))
	if err := u.cache.Invalidate(ctx, id); err != nil {
		logger.Log.WarnContext(ctx, "candidate cache invalidation failed", "candidate_id", id, "error", err)
	}
}

func loadKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func saveEducations(ctx context.Context, repos domain.Repositories, candidateID int64, inputs []domain.EducationInput) ([]domain.Education, error) {
	saved := make([]domain.Education, 0, len(inputs))
	for _, in := range inputs {
		e, err := domain.NewEducation(in)
		if err != nil {
			return nil, apperror.Validation(validation.MsgInvalidDate)
		}
		e.CandidateID = candidateID
		if err := repos.Educations().Save(ctx, e); err != nil {
			return nil, err
		}
		saved = append(saved, *e)
	}
	return saved, nil
}

func saveWorkExperiences(ctx context.Context, repos domain.Repositories, candidateID int64, inputs []domain.WorkExperienceInput) ([]domain.WorkExperience, error) {
	saved := make([]domain.WorkExperience, 0, len(inputs))
	for _, in := range inputs {
		w, err := domain.NewWorkExperience(in)
		if err != nil {
			return nil, apperror.Validation(validation.MsgInvalidDate)
		}
		w.CandidateID = candidateID
		if err := repos.WorkExperiences().Save(ctx, w); err != nil {
			return nil, err
		}
		saved = append(saved, *w)
	}
	return saved, nil
}

// classify passes AppErrors through, maps domain.ErrNotFound to the candidate
// not-found error and reports anything else as a persistence failure.
func classify(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(MsgCandidateNotFound)
	}
	return apperror.Persistence(err)
}
