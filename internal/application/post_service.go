package application

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/paging"
	repo "github.com/oksasatya/jobboard/internal/domain/repository"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

type PostService struct {
	Posts repo.PostRepository
	Users repo.UserRepository
	now   func() time.Time
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository) *PostService {
	return &PostService{Posts: posts, Users: users, now: time.Now}
}

func (s *PostService) populate(ctx context.Context, posts ...*entity.SocialPost) error {
	if err := (populator{users: s.Users}).posts(ctx, posts...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// List returns one page of the feed, newest first.
func (s *PostService) List(ctx context.Context, q listing.PostQuery, p paging.Params) (paging.Page[*entity.SocialPost], error) {
	posts, err := s.Posts.List(ctx, q, p.Skip(), p.Limit64())
	if err != nil {
		return paging.Page[*entity.SocialPost]{}, apperror.NewInternal(err)
	}
	total, err := s.Posts.Count(ctx, q)
	if err != nil {
		return paging.Page[*entity.SocialPost]{}, apperror.NewInternal(err)
	}
	if err := s.populate(ctx, posts...); err != nil {
		return paging.Page[*entity.SocialPost]{}, err
	}
	return paging.Page[*entity.SocialPost]{Items: posts, Pagination: p.Paginate(total, len(posts))}, nil
}

func (s *PostService) Create(ctx context.Context, author *entity.User, in CreatePostInput) (*entity.SocialPost, error) {
	in.Content = helpers.PlainText(in.Content)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.SocialPost(author)
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, apperror.NewInternal(err)
	}
	p.Author = author.Summary()
	return p, nil
}

func (s *PostService) ToggleLike(ctx context.Context, user *entity.User, postID string) (repo.LikeResult, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return repo.LikeResult{}, apperror.NewNotFound("Post")
	}
	res, err := s.Posts.ToggleLike(ctx, oid, user.ID, s.now().UTC())
	if err != nil {
		return repo.LikeResult{}, storeErr(err, "Post")
	}
	return res, nil
}

func (s *PostService) Comment(ctx context.Context, user *entity.User, postID, content string) (*entity.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperror.NewNotFound("Post")
	}
	content = helpers.PlainText(content)
	if err := ValidateComment(content); err != nil {
		return nil, err
	}
	c := entity.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Posts.AddComment(ctx, oid, c); err != nil {
		return nil, storeErr(err, "Post")
	}
	c.User = user.Summary()
	return &c, nil
}

// ByUser lists every post by one author, newest first.
func (s *PostService) ByUser(ctx context.Context, userID string) ([]*entity.SocialPost, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*entity.SocialPost{}, nil
	}
	posts, err := s.Posts.List(ctx, listing.PostQuery{Author: &oid}, 0, 0)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := s.populate(ctx, posts...); err != nil {
		return nil, err
	}
	return posts, nil
}
