package appointments

import (
	"context"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// Insert relies on the partial unique index on (practitioner_id, date, start)
// for non-cancelled rows: when two requests race past validation, the second
// insert fails here instead of double-booking the slot.
func (repo *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrBookingConflict("slot was taken by a concurrent booking")
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		return objectID.Hex(), nil
	}
	return appointment.ID, nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindOccupyingInRange(ctx context.Context, practitionerID, from, to string) ([]models.Appointment, error) {
	filter := bson.M{
		"practitioner_id": practitionerID,
		"date":            bson.M{"$gte": from, "$lte": to},
		"status":          bson.M{"$ne": constvars.AppointmentStatusCancelled},
	}
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var appointments []models.Appointment
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) FindBookedOnDate(ctx context.Context, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   date,
		"status": constvars.AppointmentStatusBooked,
	}
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var appointments []models.Appointment
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{"status": status}}
	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
