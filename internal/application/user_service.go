package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	repo "github.com/oksasatya/jobboard/internal/domain/repository"
	"github.com/oksasatya/jobboard/internal/infrastructure/storage"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

// SearchLimit caps /users/search results.
const SearchLimit = 20

// ProfileCache is a read-through cache of public profiles.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*entity.User, bool, error)
	Set(ctx context.Context, u *entity.User) error
	Invalidate(ctx context.Context, id string) error
}

// UserIndex mirrors profiles into a relevance search engine.
type UserIndex interface {
	Put(ctx context.Context, u *entity.User) error
	Discover(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}

type UserService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Cache    ProfileCache
	Index    UserIndex
	Storage  storage.ObjectStorage
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: users, JWT: jwt, Logger: logger, Storage: storage.Disabled{}}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	u := &entity.User{
		Name:       helpers.PlainText(in.Name),
		Email:      entity.NormalizeEmail(in.Email),
		Password:   hash,
		Skills:     []string{},
		Experience: entity.ExperienceEntry,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeErr(err, "User")
	}
	s.afterWrite(ctx, u)
	s.Notifier.Welcome(ctx, u)
	return s.issue(u)
}

// Authenticate checks credentials. Unknown email, password-less (wallet-only)
// accounts and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *UserService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Issue(u.ID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("issue token failed")
		}
		return nil, apperror.NewInternal(err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Me loads the caller. A valid token for a user that no longer exists is unauthenticated.
func (s *UserService) Me(ctx context.Context, userID string) (*entity.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewUnauthenticated("Token is not valid")
	}
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NewUnauthenticated("Token is not valid")
	}
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return u, nil
}

// GetProfile serves public profiles through the cache when one is configured.
func (s *UserService) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewNotFound("User")
	}
	if s.Cache != nil {
		if u, ok, cerr := s.Cache.Get(ctx, id); cerr == nil && ok {
			return u, nil
		} else if cerr != nil {
			s.warn(cerr, id, "profile cache get failed")
		}
	}
	u, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	if s.Cache != nil {
		if cerr := s.Cache.Set(ctx, u); cerr != nil {
			s.warn(cerr, id, "profile cache set failed")
		}
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateProfileInput) (*entity.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.Repo.Update(ctx, userID, in.ProfileUpdate())
	if err != nil {
		return nil, storeErr(err, "User")
	}
	s.afterWrite(ctx, u)
	return u, nil
}

// ConnectWallet attaches wallet to the account owning email, creating the
// account when there is none.
func (s *UserService) ConnectWallet(ctx context.Context, email, wallet string) (*entity.User, error) {
	var v apperror.Violations
	if blank(email) {
		v.Add("email", "is required")
	}
	if blank(wallet) {
		v.Add("walletAddress", "is required")
	} else if tooLong(wallet, 128) {
		v.Add("walletAddress", "must be at most 128 characters long")
	}
	if len(v) > 0 {
		return nil, apperror.NewValidation("Email and wallet address are required", v...)
	}
	u, err := s.Repo.UpsertWallet(ctx, email, wallet)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	s.afterWrite(ctx, u)
	return u, nil
}

func (s *UserService) Search(ctx context.Context, q listing.UserQuery) ([]*entity.User, error) {
	users, err := s.Repo.Search(ctx, q, SearchLimit)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return users, nil
}

// Discover is relevance search over the search index. Without one it falls
// back to the substring search.
func (s *UserService) Discover(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	if s.Index == nil {
		users, err := s.Search(ctx, listing.UserQuery{Text: q})
		if err != nil {
			return nil, err
		}
		out := make([]entity.UserSummary, 0, len(users))
		for _, u := range users {
			out = append(out, *u.Summary())
		}
		return out, nil
	}
	res, err := s.Index.Discover(ctx, q, size)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return res, nil
}

// UploadProfileImage stores the image and points the profile at it.
func (s *UserService) UploadProfileImage(ctx context.Context, userID primitive.ObjectID, filename, contentType string, r io.Reader) (*entity.User, error) {
	url, err := s.Storage.Put(ctx, storage.AvatarKey(userID.Hex(), filename), contentType, r)
	if errors.Is(err, storage.ErrNotConfigured) {
		return nil, apperror.NewValidation("Image uploads are not enabled")
	}
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	u, err := s.Repo.Update(ctx, userID, entity.ProfileUpdate{ProfileImage: &url})
	if err != nil {
		return nil, storeErr(err, "User")
	}
	s.afterWrite(ctx, u)
	return u, nil
}

// afterWrite drops the cached profile and re-indexes the user. Both are best effort.
func (s *UserService) afterWrite(ctx context.Context, u *entity.User) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, u.ID.Hex()); err != nil {
			s.warn(err, u.ID.Hex(), "profile cache invalidate failed")
		}
	}
	if s.Index != nil {
		if err := s.Index.Put(ctx, u); err != nil {
			s.warn(err, u.ID.Hex(), "es index failed")
		}
	}
}

func (s *UserService) warn(err error, userID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}
