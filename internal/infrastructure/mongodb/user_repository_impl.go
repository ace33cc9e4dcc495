package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var summaryProjection = bson.M{"name": 1, "email": 1, "bio": 1, "skills": 1}

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	c   *mongo.Collection
	now func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: db.Collection(UsersCollection), now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := r.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if _, err := r.c.InsertOne(ctx, u); err != nil {
		return userWriteErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var u entity.User
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.c.FindOne(ctx, bson.M{"email": entity.NormalizeEmail(email)}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]entity.UserSummary, error) {
	out := make(map[primitive.ObjectID]entity.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, err
	}
	var rows []entity.UserSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, upd entity.ProfileUpdate) (*entity.User, error) {
	set := bson.M{"updatedAt": r.now().UTC()}
	unset := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.LinkedinURL != nil {
		set["linkedinUrl"] = *upd.LinkedinURL
	}
	if upd.Skills != nil {
		set["skills"] = upd.Skills
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Experience != nil {
		set["experience"] = *upd.Experience
	}
	if upd.ProfileImage != nil {
		set["profileImage"] = *upd.ProfileImage
	}
	if upd.WalletAddress != nil {
		if *upd.WalletAddress == "" {
			unset["walletAddress"] = ""
		} else {
			set["walletAddress"] = *upd.WalletAddress
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u entity.User
	if err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u); err != nil {
		return nil, notFound(userWriteErr(err))
	}
	return &u, nil
}

// UpsertWallet creates a password-less user named after the email's local part
// when no account exists yet.
func (r *UserRepository) UpsertWallet(ctx context.Context, email, wallet string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	now := r.now().UTC()
	update := bson.M{
		"$set": bson.M{"walletAddress": wallet, "updatedAt": now},
		"$setOnInsert": bson.M{
			"name":         localPart(email),
			"bio":          "",
			"linkedinUrl":  "",
			"skills":       []string{},
			"profileImage": "",
			"location":     "",
			"experience":   entity.ExperienceEntry,
			"createdAt":    now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var u entity.User
	if err := r.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&u); err != nil {
		return nil, userWriteErr(err)
	}
	return &u, nil
}

func (r *UserRepository) Search(ctx context.Context, q listing.UserQuery, limit int64) ([]*entity.User, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetProjection(bson.M{"password": 0})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.c.Find(ctx, userFilter(q), opts)
	if err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
