package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var _ repository.PostRepository = (*PostRepository)(nil)

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, p *entity.SocialPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	now := r.s.stamp(p.ID)
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.posts[p.ID] = clonePost(p)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id primitive.ObjectID) (*entity.SocialPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) List(_ context.Context, q listing.PostQuery, skip, limit int64) ([]*entity.SocialPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.SocialPost, 0)
	for _, p := range r.s.posts {
		if q.Matches(p) {
			out = append(out, clonePost(p))
		}
	}
	sortNewest(r.s, out, func(p *entity.SocialPost) (primitive.ObjectID, time.Time) { return p.ID, p.CreatedAt })
	return window(out, skip, limit), nil
}

func (r *PostRepository) Count(_ context.Context, q listing.PostQuery) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.posts {
		if q.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) ToggleLike(_ context.Context, postID, userID primitive.ObjectID, at time.Time) (repository.LikeResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return repository.LikeResult{}, repository.ErrNotFound
	}
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			p.UpdatedAt = at
			return repository.LikeResult{Liked: false, LikesCount: len(p.Likes)}, nil
		}
	}
	p.Likes = append(p.Likes, entity.Like{UserID: userID, LikedAt: at})
	p.UpdatedAt = at
	return repository.LikeResult{Liked: true, LikesCount: len(p.Likes)}, nil
}

func (r *PostRepository) AddComment(_ context.Context, postID primitive.ObjectID, c entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	c.User = nil
	p.Comments = append(p.Comments, c)
	p.UpdatedAt = r.s.now().UTC()
	return nil
}
