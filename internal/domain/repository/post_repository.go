package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
)

// LikeResult is the outcome of one like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// PostRepository persists social posts and their embedded likes and comments.
// Lists are ordered newest first; limit 0 means no limit.
type PostRepository interface {
	Create(ctx context.Context, p *entity.SocialPost) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SocialPost, error)
	List(ctx context.Context, q listing.PostQuery, skip, limit int64) ([]*entity.SocialPost, error)
	Count(ctx context.Context, q listing.PostQuery) (int64, error)
	// ToggleLike removes userID's like if present, otherwise adds one. Each branch
	// is a single conditional update, so a user can never hold two likes.
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID, at time.Time) (LikeResult, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, c entity.Comment) error
}
