package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

// maxToggleAttempts bounds retries when a concurrent toggle by the same user
// flips the like between our two conditional updates.
const maxToggleAttempts = 3

var errToggleContention = errors.New("like toggle lost every race")

var _ repository.PostRepository = (*PostRepository)(nil)

type PostRepository struct {
	c   *mongo.Collection
	now func() time.Time
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{c: db.Collection(PostsCollection), now: time.Now}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.SocialPost) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := r.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	_, err := r.c.InsertOne(ctx, p)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SocialPost, error) {
	var p entity.SocialPost
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, q listing.PostQuery, skip, limit int64) ([]*entity.SocialPost, error) {
	opts := options.Find().SetSort(newestFirst).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.c.Find(ctx, postFilter(q), opts)
	if err != nil {
		return nil, err
	}
	posts := make([]*entity.SocialPost, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context, q listing.PostQuery) (int64, error) {
	return r.c.CountDocuments(ctx, postFilter(q))
}

func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) (repository.LikeResult, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes.user": 1})

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		var p entity.SocialPost

		err := r.c.FindOneAndUpdate(ctx,
			bson.M{"_id": postID, "likes.user": userID},
			bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}, "$set": bson.M{"updatedAt": at}},
			opts,
		).Decode(&p)
		if err == nil {
			return repository.LikeResult{Liked: false, LikesCount: len(p.Likes)}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return repository.LikeResult{}, err
		}

		err = r.c.FindOneAndUpdate(ctx,
			bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}},
			bson.M{"$push": bson.M{"likes": entity.Like{UserID: userID, LikedAt: at}}, "$set": bson.M{"updatedAt": at}},
			opts,
		).Decode(&p)
		if err == nil {
			return repository.LikeResult{Liked: true, LikesCount: len(p.Likes)}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return repository.LikeResult{}, err
		}

		n, err := r.c.CountDocuments(ctx, bson.M{"_id": postID}, options.Count().SetLimit(1))
		if err != nil {
			return repository.LikeResult{}, err
		}
		if n == 0 {
			return repository.LikeResult{}, repository.ErrNotFound
		}
	}
	return repository.LikeResult{}, fmt.Errorf("post %s: %w", postID.Hex(), errToggleContention)
}

func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, c entity.Comment) error {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": c}, "$set": bson.M{"updatedAt": r.now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
