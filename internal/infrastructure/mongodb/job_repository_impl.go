package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepository)(nil)

type JobRepository struct {
	c   *mongo.Collection
	now func() time.Time
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{c: db.Collection(JobsCollection), now: time.Now}
}

func (r *JobRepository) Create(ctx context.Context, j *entity.JobPosting) error {
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	now := r.now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now
	if j.Applicants == nil {
		j.Applicants = []entity.Application{}
	}
	_, err := r.c.InsertOne(ctx, j)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.JobPosting, error) {
	var j entity.JobPosting
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

func (r *JobRepository) List(ctx context.Context, q listing.JobQuery, skip, limit int64) ([]*entity.JobPosting, error) {
	opts := options.Find().SetSort(newestFirst).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, jobFilter(q), opts)
}

func (r *JobRepository) Count(ctx context.Context, q listing.JobQuery) (int64, error) {
	return r.c.CountDocuments(ctx, jobFilter(q))
}

func (r *JobRepository) ListByPoster(ctx context.Context, posterID primitive.ObjectID) ([]*entity.JobPosting, error) {
	return r.find(ctx, bson.M{"postedBy": posterID}, options.Find().SetSort(newestFirst))
}

func (r *JobRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.JobPosting, error) {
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	jobs := make([]*entity.JobPosting, 0)
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// AddApplication pushes only when no application by the same user exists, so
// two concurrent applies cannot both land.
func (r *JobRepository) AddApplication(ctx context.Context, jobID primitive.ObjectID, app entity.Application) error {
	filter := bson.M{"_id": jobID, "applicants.user": bson.M{"$ne": app.UserID}}
	update := bson.M{
		"$push": bson.M{"applicants": app},
		"$set":  bson.M{"updatedAt": r.now().UTC()},
	}
	res, err := r.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}
	if _, err := r.GetByID(ctx, jobID); err != nil {
		return err
	}
	return repository.ErrAlreadyApplied
}

func (r *JobRepository) SetStatus(ctx context.Context, jobID, posterID primitive.ObjectID, status entity.JobStatus) (*entity.JobPosting, error) {
	filter := bson.M{"_id": jobID, "postedBy": posterID}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": r.now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var j entity.JobPosting
	err := r.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.explainMiss(ctx, jobID, posterID)
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) SetApplicationStatus(ctx context.Context, jobID, posterID, applicantID primitive.ObjectID, status entity.ApplicationStatus) error {
	filter := bson.M{"_id": jobID, "postedBy": posterID, "applicants.user": applicantID}
	update := bson.M{"$set": bson.M{"applicants.$.status": status, "updatedAt": r.now().UTC()}}
	res, err := r.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}
	return r.explainMiss(ctx, jobID, posterID)
}

// explainMiss reports why an owner-scoped update matched nothing.
func (r *JobRepository) explainMiss(ctx context.Context, jobID, posterID primitive.ObjectID) error {
	j, err := r.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.PostedByID != posterID {
		return repository.ErrNotOwner
	}
	return repository.ErrNoApplication
}
