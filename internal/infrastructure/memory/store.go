// Package memory keeps every collection in process memory behind one mutex.
// It backs DB_DRIVER=memory and the service and handler tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

// Store owns the documents; the repositories are views over it.
type Store struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*entity.User
	jobs  map[primitive.ObjectID]*entity.JobPosting
	posts map[primitive.ObjectID]*entity.SocialPost

	// seq orders documents created within the same clock tick.
	seq   uint64
	order map[primitive.ObjectID]uint64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: map[primitive.ObjectID]*entity.User{},
		jobs:  map[primitive.ObjectID]*entity.JobPosting{},
		posts: map[primitive.ObjectID]*entity.SocialPost{},
		order: map[primitive.ObjectID]uint64{},
		now:   time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Jobs() *JobRepository   { return &JobRepository{s: s} }
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

// stamp must be called with the write lock held.
func (s *Store) stamp(id primitive.ObjectID) time.Time {
	s.seq++
	s.order[id] = s.seq
	return s.now().UTC()
}

// newer reports whether a sorts before b in newest-first order.
func (s *Store) newer(aID primitive.ObjectID, aAt time.Time, bID primitive.ObjectID, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.order[aID] > s.order[bID]
}

func window[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	if skip > 0 {
		items = items[skip:]
	}
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}

func sortNewest[T any](s *Store, items []T, key func(T) (primitive.ObjectID, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		ai, at := key(items[i])
		bi, bt := key(items[j])
		return s.newer(ai, at, bi, bt)
	})
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Skills = cloneStrings(u.Skills)
	return &c
}

func cloneJob(j *entity.JobPosting) *entity.JobPosting {
	c := *j
	c.RequiredSkills = cloneStrings(j.RequiredSkills)
	c.Tags = cloneStrings(j.Tags)
	c.Applicants = append([]entity.Application(nil), j.Applicants...)
	if j.Deadline != nil {
		d := *j.Deadline
		c.Deadline = &d
	}
	c.PostedBy = nil
	for i := range c.Applicants {
		c.Applicants[i].User = nil
	}
	return &c
}

func clonePost(p *entity.SocialPost) *entity.SocialPost {
	c := *p
	c.Tags = cloneStrings(p.Tags)
	c.Likes = append([]entity.Like(nil), p.Likes...)
	c.Comments = append([]entity.Comment(nil), p.Comments...)
	c.Author = nil
	for i := range c.Likes {
		c.Likes[i].User = nil
	}
	for i := range c.Comments {
		c.Comments[i].User = nil
	}
	return &c
}
