package activity_repository

import (
	"context"
	"testing"
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoDb(mt.DB)
		err := repo.Create(context.Background(), activity.NewSignedIn("admin@example.com", time.Now()))
		assert.NoError(t, err)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		repo := NewMongoDb(mt.DB)
		err := repo.Create(context.Background(), activity.NewSignedIn("admin@example.com", time.Now()))
		assert.ErrorIs(t, err, use_case.ErrSavingActivity)
	})
}

func TestListRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mt.Run("success", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "kind", Value: "status_changed"},
			{Key: "actor", Value: "admin@example.com"},
			{Key: "applicationId", Value: "65a1"},
			{Key: "companyName", Value: "TechNova"},
			{Key: "from", Value: "pending"},
			{Key: "to", Value: "approved"},
			{Key: "message", Value: `Startup "TechNova" approved by admin@example.com`},
			{Key: "createdAt", Value: createdAt},
		}, bson.D{
			{Key: "kind", Value: "unknown"},
			{Key: "actor", Value: "admin@example.com"},
		})
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		repo := &mongoDB{col: mt.Coll}
		got, err := repo.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, activity.Activity{
			Kind:          activity.KindStatusChanged,
			Actor:         "admin@example.com",
			ApplicationID: "65a1",
			CompanyName:   "TechNova",
			From:          application.StatusPending,
			To:            application.StatusApproved,
			Message:       `Startup "TechNova" approved by admin@example.com`,
			CreatedAt:     createdAt,
		}, got[0])
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		repo := &mongoDB{col: mt.Coll}
		_, err := repo.ListRecent(context.Background(), 10)
		assert.ErrorIs(t, err, use_case.ErrRetrievingActivity)
	})
}

func TestNewMongoDb(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("collection", func(mt *mtest.T) {
		repo := NewMongoDb(mt.DB).(*mongoDB)
		assert.Equal(t, "activities", repo.col.Name())
		assert.IsType(t, &mongo.Collection{}, repo.col)
	})
}
