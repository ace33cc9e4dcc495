package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

// populator resolves user references into UserSummary values with one
// repository round trip per call. References to users that no longer exist
// stay nil.
type populator struct {
	users repository.UserRepository
}

type idSet map[primitive.ObjectID]struct{}

func (s idSet) add(id primitive.ObjectID) {
	if !id.IsZero() {
		s[id] = struct{}{}
	}
}

func (s idSet) slice() []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

func (p populator) lookup(ctx context.Context, ids idSet) (func(primitive.ObjectID) *entity.UserSummary, error) {
	m, err := p.users.Summaries(ctx, ids.slice())
	if err != nil {
		return nil, err
	}
	return func(id primitive.ObjectID) *entity.UserSummary {
		s, ok := m[id]
		if !ok {
			return nil
		}
		return &s
	}, nil
}

func (p populator) jobs(ctx context.Context, jobs ...*entity.JobPosting) error {
	ids := idSet{}
	for _, j := range jobs {
		ids.add(j.PostedByID)
		for _, a := range j.Applicants {
			ids.add(a.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	get, err := p.lookup(ctx, ids)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		j.PostedBy = get(j.PostedByID)
		for i := range j.Applicants {
			j.Applicants[i].User = get(j.Applicants[i].UserID)
		}
	}
	return nil
}

func (p populator) posts(ctx context.Context, posts ...*entity.SocialPost) error {
	ids := idSet{}
	for _, post := range posts {
		ids.add(post.AuthorID)
		for _, l := range post.Likes {
			ids.add(l.UserID)
		}
		for _, c := range post.Comments {
			ids.add(c.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	get, err := p.lookup(ctx, ids)
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.Author = get(post.AuthorID)
		for i := range post.Likes {
			post.Likes[i].User = get(post.Likes[i].UserID)
		}
		for i := range post.Comments {
			post.Comments[i].User = get(post.Comments[i].UserID)
		}
	}
	return nil
}
