package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/paging"
	repo "github.com/oksasatya/jobboard/internal/domain/repository"
)

type JobService struct {
	Jobs     repo.JobRepository
	Users    repo.UserRepository
	Notifier *Notifier
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewJobService(jobs repo.JobRepository, users repo.UserRepository, notifier *Notifier, logger *logrus.Logger) *JobService {
	return &JobService{Jobs: jobs, Users: users, Notifier: notifier, Logger: logger, now: time.Now}
}

func (s *JobService) populate(ctx context.Context, jobs ...*entity.JobPosting) error {
	if err := (populator{users: s.Users}).jobs(ctx, jobs...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// List returns one page of active jobs matching q, newest first.
func (s *JobService) List(ctx context.Context, q listing.JobQuery, p paging.Params) (paging.Page[*entity.JobPosting], error) {
	jobs, err := s.Jobs.List(ctx, q, p.Skip(), p.Limit64())
	if err != nil {
		return paging.Page[*entity.JobPosting]{}, apperror.NewInternal(err)
	}
	total, err := s.Jobs.Count(ctx, q)
	if err != nil {
		return paging.Page[*entity.JobPosting]{}, apperror.NewInternal(err)
	}
	if err := s.populate(ctx, jobs...); err != nil {
		return paging.Page[*entity.JobPosting]{}, err
	}
	return paging.Page[*entity.JobPosting]{Items: jobs, Pagination: p.Paginate(total, len(jobs))}, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*entity.JobPosting, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("Job")
	}
	j, err := s.Jobs.GetByID(ctx, oid)
	if err != nil {
		return nil, storeErr(err, "Job")
	}
	if err := s.populate(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) Create(ctx context.Context, poster *entity.User, in CreateJobInput) (*entity.JobPosting, error) {
	in = in.Sanitized()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	j := in.JobPosting(poster)
	if err := s.Jobs.Create(ctx, j); err != nil {
		return nil, apperror.NewInternal(err)
	}
	j.PostedBy = poster.Summary()
	return j, nil
}

// Apply records one pending application per (job, caller).
func (s *JobService) Apply(ctx context.Context, applicant *entity.User, jobID string) error {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return apperror.NewNotFound("Job")
	}
	at := s.now().UTC()
	app := entity.Application{UserID: applicant.ID, AppliedAt: at, Status: entity.ApplicationPending}
	if err := s.Jobs.AddApplication(ctx, oid, app); err != nil {
		return storeErr(err, "Job")
	}

	if s.Notifier.enabled() {
		j, err := s.Jobs.GetByID(ctx, oid)
		if err != nil {
			s.warn(err, jobID, "load job for notification failed")
			return nil
		}
		poster, err := s.Users.GetByID(ctx, j.PostedByID)
		if err != nil {
			s.warn(err, jobID, "load poster for notification failed")
			return nil
		}
		s.Notifier.ApplicationReceived(ctx, j, poster, applicant, at)
	}
	return nil
}

// Posted lists every job the caller posted, any status, with applicants resolved.
func (s *JobService) Posted(ctx context.Context, poster *entity.User) ([]*entity.JobPosting, error) {
	jobs, err := s.Jobs.ListByPoster(ctx, poster.ID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := s.populate(ctx, jobs...); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) UpdateStatus(ctx context.Context, owner *entity.User, jobID, status string) (*entity.JobPosting, error) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, apperror.NewNotFound("Job")
	}
	st := entity.JobStatus(status)
	if !st.Valid() {
		return nil, apperror.NewValidation("Validation failed", apperror.Violation{Field: "status", Message: "must be one of: active, closed, draft"})
	}
	j, err := s.Jobs.SetStatus(ctx, oid, owner.ID, st)
	if err != nil {
		return nil, storeErr(err, "Job")
	}
	if err := s.populate(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) UpdateApplicationStatus(ctx context.Context, owner *entity.User, jobID, applicantID, status string) error {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return apperror.NewNotFound("Job")
	}
	aid, err := primitive.ObjectIDFromHex(applicantID)
	if err != nil {
		return apperror.NewNotFound("Application")
	}
	st := entity.ApplicationStatus(status)
	if !st.Valid() {
		return apperror.NewValidation("Validation failed", apperror.Violation{Field: "status", Message: "must be one of: pending, accepted, rejected"})
	}
	if err := s.Jobs.SetApplicationStatus(ctx, oid, owner.ID, aid, st); err != nil {
		return storeErr(err, "Job")
	}

	if s.Notifier.enabled() && st != entity.ApplicationPending {
		j, jerr := s.Jobs.GetByID(ctx, oid)
		applicant, uerr := s.Users.GetByID(ctx, aid)
		if jerr == nil && uerr == nil {
			s.Notifier.ApplicationUpdated(ctx, j, applicant, st, s.now().UTC())
		}
	}
	return nil
}

func (s *JobService) warn(err error, jobID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("job_id", jobID).Warn(msg)
	}
}
