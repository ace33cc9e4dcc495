package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
)

// Storage-level sentinel errors. Services translate them into apperror values.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("duplicate email")
	ErrDuplicateWallet = errors.New("duplicate wallet address")
	ErrAlreadyApplied  = errors.New("already applied")
	ErrNotOwner        = errors.New("not owner")
	ErrNoApplication   = errors.New("application not found")
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Summaries resolves references in one round trip; unknown ids are absent from the map.
	Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]entity.UserSummary, error)
	Update(ctx context.Context, id primitive.ObjectID, upd entity.ProfileUpdate) (*entity.User, error)
	// UpsertWallet sets the wallet of the user owning email, creating the user if needed.
	UpsertWallet(ctx context.Context, email, wallet string) (*entity.User, error)
	Search(ctx context.Context, q listing.UserQuery, limit int64) ([]*entity.User, error)
}
