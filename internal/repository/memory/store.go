package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-candidate-backend/internal/domain"
)

// Store keeps the candidate aggregate in-process. It enforces the same
// constraints as the SQL schema (unique email, candidate foreign keys,
// cascading delete) and gives RunTransaction all-or-nothing semantics by
// snapshotting state and restoring it when the callback fails.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

type state struct {
	seq         map[string]int64
	candidates  map[int64]domain.Candidate
	emails      map[string]int64
	educations  map[int64]domain.Education
	experiences map[int64]domain.WorkExperience
	resumes     map[int64]domain.Resume
}

func newState() *state {
	return &state{
		seq:         make(map[string]int64),
		candidates:  make(map[int64]domain.Candidate),
		emails:      make(map[string]int64),
		educations:  make(map[int64]domain.Education),
		experiences: make(map[int64]domain.WorkExperience),
		resumes:     make(map[int64]domain.Resume),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.candidates {
		c.candidates[k] = v
	}
	for k, v := range s.emails {
		c.emails[k] = v
	}
	for k, v := range s.educations {
		c.educations[k] = v
	}
	for k, v := range s.experiences {
		c.experiences[k] = v
	}
	for k, v := range s.resumes {
		c.resumes[k] = v
	}
	return c
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

func (s *Store) Candidates() domain.CandidateRepository {
	return &candidateRepo{conn{store: s}}
}

func (s *Store) Educations() domain.EducationRepository {
	return &educationRepo{conn{store: s}}
}

func (s *Store) WorkExperiences() domain.WorkExperienceRepository {
	return &workExperienceRepo{conn{store: s}}
}

func (s *Store) Resumes() domain.ResumeRepository {
	return &resumeRepo{conn{store: s}}
}

// RunTransaction holds the store lock for the whole callback, so transactions
// are serialized and readers never see a half-applied unit of work.
func (s *Store) RunTransaction(ctx context.Context, fn func(repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(txRepos{conn{store: s, inTx: true}}); err != nil {
		return err
	}
	committed = true
	return nil
}

// conn is the memory equivalent of a connection: outside a transaction every
// call takes the store lock, inside one the lock is already held.
type conn struct {
	store *Store
	inTx  bool
}

func (c conn) do(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.inTx {
		c.store.mu.Lock()
		defer c.store.mu.Unlock()
	}
	return fn(c.store.data)
}

type txRepos struct {
	c conn
}

func (t txRepos) Candidates() domain.CandidateRepository { return &candidateRepo{t.c} }

func (t txRepos) Educations() domain.EducationRepository { return &educationRepo{t.c} }

func (t txRepos) WorkExperiences() domain.WorkExperienceRepository {
	return &workExperienceRepo{t.c}
}

func (t txRepos) Resumes() domain.ResumeRepository { return &resumeRepo{t.c} }

// ============================================================================
// Candidates
// ============================================================================

type candidateRepo struct {
	conn
}

func (r *candidateRepo) Save(ctx context.Context, c *domain.Candidate) error {
	return r.do(ctx, func(d *state) error {
		if owner, taken := d.emails[c.Email]; taken && owner != c.ID {
			return fmt.Errorf("%w: candidate email %q", domain.ErrUniqueViolation, c.Email)
		}

		if c.ID == 0 {
			c.ID = d.nextID("candidates")
		} else {
			prev, ok := d.candidates[c.ID]
			if !ok {
				return fmt.Errorf("candidate %d: %w", c.ID, domain.ErrNotFound)
			}
			delete(d.emails, prev.Email)
		}

		d.candidates[c.ID] = scalarCopy(c)
		d.emails[c.Email] = c.ID
		return nil
	})
}

func (r *candidateRepo) FindOne(ctx context.Context, id int64) (*domain.Candidate, error) {
	var found *domain.Candidate
	err := r.do(ctx, func(d *state) error {
		if c, ok := d.candidates[id]; ok {
			found = hydrate(c)
		}
		return nil
	})
	return found, err
}

func (r *candidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	var found *domain.Candidate
	err := r.do(ctx, func(d *state) error {
		if id, ok := d.emails[email]; ok {
			found = hydrate(d.candidates[id])
		}
		return nil
	})
	return found, err
}

// Delete removes the candidate and cascades to its dependents.
func (r *candidateRepo) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, func(d *state) error {
		c, ok := d.candidates[id]
		if !ok {
			return fmt.Errorf("candidate %d: %w", id, domain.ErrNotFound)
		}
		delete(d.candidates, id)
		delete(d.emails, c.Email)
		for k, e := range d.educations {
			if e.CandidateID == id {
				delete(d.educations, k)
			}
		}
		for k, w := range d.experiences {
			if w.CandidateID == id {
				delete(d.experiences, k)
			}
		}
		for k, res := range d.resumes {
			if res.CandidateID == id {
				delete(d.resumes, k)
			}
		}
		return nil
	})
}

func scalarCopy(c *domain.Candidate) domain.Candidate {
	return domain.Candidate{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     clonePtr(c.Phone),
		Address:   clonePtr(c.Address),
	}
}

func hydrate(c domain.Candidate) *domain.Candidate {
	c.Phone = clonePtr(c.Phone)
	c.Address = clonePtr(c.Address)
	c.Educations = []domain.Education{}
	c.WorkExperiences = []domain.WorkExperience{}
	c.Resumes = []domain.Resume{}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func requireCandidate(d *state, id int64) error {
	if _, ok := d.candidates[id]; !ok {
		return fmt.Errorf("foreign key violation: candidate %d does not exist", id)
	}
	return nil
}

// ============================================================================
// Educations
// ============================================================================

type educationRepo struct {
	conn
}

func (r *educationRepo) Save(ctx context.Context, e *domain.Education) error {
	return r.do(ctx, func(d *state) error {
		if err := requireCandidate(d, e.CandidateID); err != nil {
			return err
		}
		if e.ID == 0 {
			e.ID = d.nextID("educations")
		} else if _, ok := d.educations[e.ID]; !ok {
			return fmt.Errorf("education %d: %w", e.ID, domain.ErrNotFound)
		}
		stored := *e
		stored.EndDate = clonePtr(e.EndDate)
		d.educations[e.ID] = stored
		return nil
	})
}

func (r *educationRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	result := []domain.Education{}
	err := r.do(ctx, func(d *state) error {
		for _, e := range d.educations {
			if e.CandidateID == candidateID {
				e.EndDate = clonePtr(e.EndDate)
				result = append(result, e)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

func (r *educationRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.do(ctx, func(d *state) error {
		for k, e := range d.educations {
			if e.CandidateID == candidateID {
				delete(d.educations, k)
			}
		}
		return nil
	})
}

// ============================================================================
// Work experiences
// ============================================================================

type workExperienceRepo struct {
	conn
}

func (r *workExperienceRepo) Save(ctx context.Context, w *domain.WorkExperience) error {
	return r.do(ctx, func(d *state) error {
		if err := requireCandidate(d, w.CandidateID); err != nil {
			return err
		}
		if w.ID == 0 {
			w.ID = d.nextID("work_experiences")
		} else if _, ok := d.experiences[w.ID]; !ok {
			return fmt.Errorf("work experience %d: %w", w.ID, domain.ErrNotFound)
		}
		stored := *w
		stored.Description = clonePtr(w.Description)
		stored.EndDate = clonePtr(w.EndDate)
		d.experiences[w.ID] = stored
		return nil
	})
}

func (r *workExperienceRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.WorkExperience, error) {
	result := []domain.WorkExperience{}
	err := r.do(ctx, func(d *state) error {
		for _, w := range d.experiences {
			if w.CandidateID == candidateID {
				w.Description = clonePtr(w.Description)
				w.EndDate = clonePtr(w.EndDate)
				result = append(result, w)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

func (r *workExperienceRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.do(ctx, func(d *state) error {
		for k, w := range d.experiences {
			if w.CandidateID == candidateID {
				delete(d.experiences, k)
			}
		}
		return nil
	})
}

// ============================================================================
// Resumes
// ============================================================================

type resumeRepo struct {
	conn
}

func (r *resumeRepo) Save(ctx context.Context, res *domain.Resume) error {
	return r.do(ctx, func(d *state) error {
		if err := requireCandidate(d, res.CandidateID); err != nil {
			return err
		}
		if res.ID == 0 {
			res.ID = d.nextID("resumes")
		} else if _, ok := d.resumes[res.ID]; !ok {
			return fmt.Errorf("resume %d: %w", res.ID, domain.ErrNotFound)
		}
		if res.UploadDate.IsZero() {
			res.UploadDate = r.store.now().UTC()
		}
		d.resumes[res.ID] = *res
		return nil
	})
}

func (r *resumeRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]domain.Resume, error) {
	result := []domain.Resume{}
	err := r.do(ctx, func(d *state) error {
		for _, res := range d.resumes {
			if res.CandidateID == candidateID {
				result = append(result, res)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

func (r *resumeRepo) DeleteByCandidateID(ctx context.Context, candidateID int64) error {
	return r.do(ctx, func(d *state) error {
		for k, res := range d.resumes {
			if res.CandidateID == candidateID {
				delete(d.resumes, k)
			}
		}
		return nil
	})
}
