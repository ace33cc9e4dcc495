package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
)

// JobRepository persists job postings and their embedded applications.
// Lists are ordered newest first.
type JobRepository interface {
	Create(ctx context.Context, j *entity.JobPosting) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.JobPosting, error)
	List(ctx context.Context, q listing.JobQuery, skip, limit int64) ([]*entity.JobPosting, error)
	Count(ctx context.Context, q listing.JobQuery) (int64, error)
	ListByPoster(ctx context.Context, posterID primitive.ObjectID) ([]*entity.JobPosting, error)
	// AddApplication appends app unless app.UserID already applied, as one atomic
	// operation. Returns ErrAlreadyApplied or ErrNotFound.
	AddApplication(ctx context.Context, jobID primitive.ObjectID, app entity.Application) error
	// SetStatus changes the status of a job owned by posterID. Returns ErrNotFound
	// or ErrNotOwner.
	SetStatus(ctx context.Context, jobID, posterID primitive.ObjectID, status entity.JobStatus) (*entity.JobPosting, error)
	// SetApplicationStatus changes one application on a job owned by posterID.
	// Returns ErrNotFound, ErrNotOwner or ErrNoApplication.
	SetApplicationStatus(ctx context.Context, jobID, posterID, applicantID primitive.ObjectID, status entity.ApplicationStatus) error
}
