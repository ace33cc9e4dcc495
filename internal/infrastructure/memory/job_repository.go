package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepository)(nil)

type JobRepository struct{ s *Store }

func (r *JobRepository) Create(_ context.Context, j *entity.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	if j.Applicants == nil {
		j.Applicants = []entity.Application{}
	}
	now := r.s.stamp(j.ID)
	j.CreatedAt, j.UpdatedAt = now, now
	r.s.jobs[j.ID] = cloneJob(j)
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id primitive.ObjectID) (*entity.JobPosting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneJob(j), nil
}

func (r *JobRepository) filter(match func(*entity.JobPosting) bool) []*entity.JobPosting {
	out := make([]*entity.JobPosting, 0)
	for _, j := range r.s.jobs {
		if match(j) {
			out = append(out, cloneJob(j))
		}
	}
	sortNewest(r.s, out, func(j *entity.JobPosting) (primitive.ObjectID, time.Time) { return j.ID, j.CreatedAt })
	return out
}

func (r *JobRepository) List(_ context.Context, q listing.JobQuery, skip, limit int64) ([]*entity.JobPosting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return window(r.filter(q.Matches), skip, limit), nil
}

func (r *JobRepository) Count(_ context.Context, q listing.JobQuery) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, j := range r.s.jobs {
		if q.Matches(j) {
			n++
		}
	}
	return n, nil
}

func (r *JobRepository) ListByPoster(_ context.Context, posterID primitive.ObjectID) ([]*entity.JobPosting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(j *entity.JobPosting) bool { return j.PostedByID == posterID }), nil
}

func (r *JobRepository) AddApplication(_ context.Context, jobID primitive.ObjectID, app entity.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[jobID]
	if !ok {
		return repository.ErrNotFound
	}
	if j.HasApplicant(app.UserID) {
		return repository.ErrAlreadyApplied
	}
	app.User = nil
	j.Applicants = append(j.Applicants, app)
	j.UpdatedAt = r.s.now().UTC()
	return nil
}

// owned must be called with the write lock held.
func (r *JobRepository) owned(jobID, posterID primitive.ObjectID) (*entity.JobPosting, error) {
	j, ok := r.s.jobs[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if j.PostedByID != posterID {
		return nil, repository.ErrNotOwner
	}
	return j, nil
}

func (r *JobRepository) SetStatus(_ context.Context, jobID, posterID primitive.ObjectID, status entity.JobStatus) (*entity.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, err := r.owned(jobID, posterID)
	if err != nil {
		return nil, err
	}
	j.Status = status
	j.UpdatedAt = r.s.now().UTC()
	return cloneJob(j), nil
}

func (r *JobRepository) SetApplicationStatus(_ context.Context, jobID, posterID, applicantID primitive.ObjectID, status entity.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, err := r.owned(jobID, posterID)
	if err != nil {
		return err
	}
	for i := range j.Applicants {
		if j.Applicants[i].UserID == applicantID {
			j.Applicants[i].Status = status
			j.UpdatedAt = r.s.now().UTC()
			return nil
		}
	}
	return repository.ErrNoApplication
}
