package main

import (
	"praktis-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMigrationIndexes(t *testing.T) {
	t.Run("appointments unique index covers active statuses only", func(t *testing.T) {
		idx := findIndex(t, constvars.MongoCollectionAppointments, "uniq_practitioner_date_start_active")

		require.NotNil(t, idx.model.Options.Unique)
		assert.True(t, *idx.model.Options.Unique)

		filter, ok := idx.model.Options.PartialFilterExpression.(bson.M)
		require.True(t, ok)
		status, ok := filter["status"].(bson.M)
		require.True(t, ok)

		statuses, ok := status["$in"].([]string)
		require.True(t, ok, "partial filters do not support $ne; the index must enumerate statuses with $in")
		assert.ElementsMatch(t, []string{
			constvars.AppointmentStatusBooked,
			constvars.AppointmentStatusFulfilled,
			constvars.AppointmentStatusNoShow,
		}, statuses)
		assert.NotContains(t, statuses, constvars.AppointmentStatusCancelled,
			"cancelled rows must not hold the slot")
	})

	t.Run("no partial filter uses unsupported operators", func(t *testing.T) {
		for _, idx := range migrationIndexes() {
			if idx.model.Options == nil || idx.model.Options.PartialFilterExpression == nil {
				continue
			}
			filter, ok := idx.model.Options.PartialFilterExpression.(bson.M)
			require.True(t, ok)
			for _, condition := range filter {
				if inner, ok := condition.(bson.M); ok {
					assert.NotContains(t, inner, "$ne")
					assert.NotContains(t, inner, "$nin")
				}
			}
		}
	})
}

func findIndex(t *testing.T, collection, name string) collectionIndex {
	t.Helper()
	for _, idx := range migrationIndexes() {
		if idx.collection != collection || idx.model.Options == nil {
			continue
		}
		if idx.model.Options.Name != nil && *idx.model.Options.Name == name {
			return idx
		}
	}
	t.Fatalf("index %s not found on collection %s", name, collection)
	return collectionIndex{}
}
