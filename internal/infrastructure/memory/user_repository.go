package memory

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct{ s *Store }

// conflict must be called with the lock held; self is skipped.
func (r *UserRepository) conflict(self primitive.ObjectID, email, wallet string) error {
	for id, u := range r.s.users {
		if id == self {
			continue
		}
		if email != "" && u.Email == email {
			return repository.ErrDuplicateEmail
		}
		if wallet != "" && u.WalletAddress == wallet {
			return repository.ErrDuplicateWallet
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = entity.NormalizeEmail(u.Email)
	if err := r.conflict(u.ID, u.Email, u.WalletAddress); err != nil {
		return err
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	now := r.s.stamp(u.ID)
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Summaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]entity.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[primitive.ObjectID]entity.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = *cloneUser(u).Summary()
		}
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id primitive.ObjectID, upd entity.ProfileUpdate) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := cloneUser(cur)
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.LinkedinURL != nil {
		u.LinkedinURL = *upd.LinkedinURL
	}
	if upd.Skills != nil {
		u.Skills = cloneStrings(upd.Skills)
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Experience != nil {
		u.Experience = *upd.Experience
	}
	if upd.ProfileImage != nil {
		u.ProfileImage = *upd.ProfileImage
	}
	if upd.WalletAddress != nil {
		if err := r.conflict(id, "", *upd.WalletAddress); err != nil {
			return nil, err
		}
		u.WalletAddress = *upd.WalletAddress
	}
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return cloneUser(u), nil
}

func (r *UserRepository) UpsertWallet(_ context.Context, email, wallet string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var u *entity.User
	for _, cand := range r.s.users {
		if cand.Email == email {
			u = cloneUser(cand)
			break
		}
	}
	if u == nil {
		u = &entity.User{
			ID:         primitive.NewObjectID(),
			Name:       strings.SplitN(email, "@", 2)[0],
			Email:      email,
			Skills:     []string{},
			Experience: entity.ExperienceEntry,
		}
		u.CreatedAt = r.s.stamp(u.ID)
	}
	if err := r.conflict(u.ID, "", wallet); err != nil {
		return nil, err
	}
	u.WalletAddress = wallet
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[u.ID] = u
	return cloneUser(u), nil
}

func (r *UserRepository) Search(_ context.Context, q listing.UserQuery, limit int64) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if q.Matches(u) {
			c := cloneUser(u)
			c.Password = ""
			out = append(out, c)
		}
	}
	sortNewest(r.s, out, func(u *entity.User) (primitive.ObjectID, time.Time) { return u.ID, u.CreatedAt })
	return window(out, 0, limit), nil
}
