package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangeFilter_InclusiveDays(t *testing.T) {
	account := primitive.NewObjectID()
	// Clock components are dropped so both ends cover whole days.
	from := time.Date(2024, time.March, 1, 18, 30, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC)

	got := rangeFilter(account, from, to)

	assert.Equal(t, bson.M{
		"accountId": account,
		"date": bson.M{
			"$gte": day(2024, time.March, 1),
			"$lte": day(2024, time.March, 31),
		},
	}, got)
}

func TestOverlapFilter(t *testing.T) {
	account := primitive.NewObjectID()
	start, end := day(2024, time.January, 5), day(2024, time.January, 15)

	t.Run("boundaries are inclusive", func(t *testing.T) {
		got := overlapFilter(account, start, end, primitive.NilObjectID)

		assert.Equal(t, account, got["accountId"])
		assert.Equal(t, bson.M{"$lte": end}, got["startDate"])
		assert.Equal(t, bson.M{"$gte": start}, got["endDate"])
		assert.NotContains(t, got, "_id")
	})

	t.Run("excludes the plan being edited", func(t *testing.T) {
		self := primitive.NewObjectID()
		got := overlapFilter(account, start, end, self)

		require.Contains(t, got, "_id")
		assert.Equal(t, bson.M{"$ne": self}, got["_id"])
	})

	t.Run("single day covers", func(t *testing.T) {
		date := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
		got := overlapFilter(account, date, date, primitive.NilObjectID)

		assert.Equal(t, bson.M{"$lte": day(2024, time.January, 10)}, got["startDate"])
		assert.Equal(t, bson.M{"$gte": day(2024, time.January, 10)}, got["endDate"])
	})
}
