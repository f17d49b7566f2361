package main

import (
	"context"
	"time"

	"praktis-service/internal/app/config"
	"praktis-service/internal/app/drivers/database"
	"praktis-service/internal/app/drivers/logger"
	"praktis-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the booking flow relies on. The partial unique index on
// appointments is what turns two concurrent inserts for the same slot into a
// duplicate-key error instead of a double booking, so run this before serving
// traffic.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	db := mongoClient.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, idx := range migrationIndexes() {
		name, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			log.Fatalf("Failed to create index on %s: %v", idx.collection, err)
		}
		log.Infof("Created index %s on collection %s", name, idx.collection)
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Fatalf("Failed to disconnect from mongo: %v", err)
	}

	log.Info("Migration completed")
}

type collectionIndex struct {
	collection string
	model      mongo.IndexModel
}

func migrationIndexes() []collectionIndex {
	return []collectionIndex{
		{
			collection: constvars.MongoCollectionAppointments,
			model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "practitioner_id", Value: 1},
					{Key: "date", Value: 1},
					{Key: "start", Value: 1},
				},
				// Partial indexes cannot express "$ne: cancelled", so the
				// filter enumerates the statuses that hold a slot.
				Options: options.Index().
					SetName("uniq_practitioner_date_start_active").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{
						"status": bson.M{"$in": []string{
							constvars.AppointmentStatusBooked,
							constvars.AppointmentStatusFulfilled,
							constvars.AppointmentStatusNoShow,
						}},
					}),
			},
		},
		{
			collection: constvars.MongoCollectionAppointments,
			model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "practitioner_id", Value: 1},
					{Key: "date", Value: 1},
				},
				Options: options.Index().SetName("practitioner_date"),
			},
		},
		{
			collection: constvars.MongoCollectionAppointments,
			model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "date", Value: 1},
					{Key: "status", Value: 1},
				},
				Options: options.Index().SetName("date_status"),
			},
		},
		{
			collection: constvars.MongoCollectionWeeklyTemplates,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "practitioner_id", Value: 1}},
				Options: options.Index().SetName("uniq_practitioner").SetUnique(true),
			},
		},
		{
			collection: constvars.MongoCollectionScheduleExceptions,
			model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "practitioner_id", Value: 1},
					{Key: "date", Value: 1},
				},
				Options: options.Index().SetName("uniq_practitioner_date").SetUnique(true),
			},
		},
		{
			collection: constvars.MongoCollectionVacationWindows,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "practitioner_id", Value: 1}},
				Options: options.Index().SetName("practitioner"),
			},
		},
		{
			collection: constvars.MongoCollectionBookingPolicies,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "practitioner_id", Value: 1}},
				Options: options.Index().SetName("uniq_practitioner").SetUnique(true),
			},
		},
	}
}
