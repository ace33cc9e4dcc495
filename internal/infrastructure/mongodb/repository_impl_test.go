package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func ns(mt *mtest.T) string { return mt.DB.Name() + "." + mt.Coll.Name() }

func TestUserRepositoryDuplicateKeys(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("email", func(mt *mtest.T) {
		repo := &UserRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000,
			Message: "E11000 duplicate key error collection: jobboard.users index: uniq_email dup key: { email: \"a@b.c\" }",
		}))
		err := repo.Create(context.Background(), &entity.User{Name: "A", Email: "a@b.c"})
		assert.ErrorIs(mt, err, repository.ErrDuplicateEmail)
	})

	mt.Run("wallet", func(mt *mtest.T) {
		repo := &UserRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000,
			Message: "E11000 duplicate key error collection: jobboard.users index: uniq_walletAddress dup key: { walletAddress: \"0xabc\" }",
		}))
		err := repo.Create(context.Background(), &entity.User{Name: "A", Email: "a@b.c", WalletAddress: "0xabc"})
		assert.ErrorIs(mt, err, repository.ErrDuplicateWallet)
	})
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := &UserRepository{c: mt.Coll, now: fixedNow}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "$2a$12$hash"},
		}))
		u, err := repo.GetByEmail(context.Background(), "  ADA@example.com ")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.Equal(mt, "$2a$12$hash", u.Password)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := &UserRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestJobRepositoryAddApplication(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	jobID := primitive.NewObjectID()
	app := entity.Application{UserID: primitive.NewObjectID(), AppliedAt: fixedNow(), Status: entity.ApplicationPending}

	mt.Run("pushed", func(mt *mtest.T) {
		repo := &JobRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		assert.NoError(mt, repo.AddApplication(context.Background(), jobID, app))
	})

	mt.Run("already applied", func(mt *mtest.T) {
		repo := &JobRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
			mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: jobID}, {Key: "title", Value: "Go dev"}}),
		)
		assert.ErrorIs(mt, repo.AddApplication(context.Background(), jobID, app), repository.ErrAlreadyApplied)
	})

	mt.Run("job missing", func(mt *mtest.T) {
		repo := &JobRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)
		assert.ErrorIs(mt, repo.AddApplication(context.Background(), jobID, app), repository.ErrNotFound)
	})
}

func TestJobRepositorySetStatusNotOwner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not owner", func(mt *mtest.T) {
		repo := &JobRepository{c: mt.Coll, now: fixedNow}
		jobID, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: jobID}, {Key: "postedBy", Value: owner}}),
		)
		_, err := repo.SetStatus(context.Background(), jobID, primitive.NewObjectID(), entity.JobClosed)
		assert.ErrorIs(mt, err, repository.ErrNotOwner)
	})
}

func TestPostRepositoryToggleLike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	postID, userID := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("like", func(mt *mtest.T) {
		repo := &PostRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{
				{Key: "_id", Value: postID},
				{Key: "likes", Value: bson.A{bson.D{{Key: "user", Value: userID}}}},
			}}},
		)
		res, err := repo.ToggleLike(context.Background(), postID, userID, fixedNow())
		require.NoError(mt, err)
		assert.Equal(mt, repository.LikeResult{Liked: true, LikesCount: 1}, res)
	})

	mt.Run("unlike", func(mt *mtest.T) {
		repo := &PostRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{
			{Key: "_id", Value: postID},
			{Key: "likes", Value: bson.A{}},
		}}})
		res, err := repo.ToggleLike(context.Background(), postID, userID, fixedNow())
		require.NoError(mt, err)
		assert.Equal(mt, repository.LikeResult{Liked: false, LikesCount: 0}, res)
	})

	mt.Run("missing post", func(mt *mtest.T) {
		repo := &PostRepository{c: mt.Coll, now: fixedNow}
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 0}}),
		)
		_, err := repo.ToggleLike(context.Background(), postID, userID, fixedNow())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}
