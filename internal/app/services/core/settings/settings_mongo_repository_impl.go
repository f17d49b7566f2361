package settings

import (
	"context"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsMongoRepository struct {
	Templates  *mongo.Collection
	Exceptions *mongo.Collection
	Vacations  *mongo.Collection
	Policies   *mongo.Collection
}

func NewSettingsMongoRepository(db *mongo.Client, dbName string) contracts.SettingsRepository {
	database := db.Database(dbName)
	return &SettingsMongoRepository{
		Templates:  database.Collection(constvars.MongoCollectionWeeklyTemplates),
		Exceptions: database.Collection(constvars.MongoCollectionScheduleExceptions),
		Vacations:  database.Collection(constvars.MongoCollectionVacationWindows),
		Policies:   database.Collection(constvars.MongoCollectionBookingPolicies),
	}
}

func (repo *SettingsMongoRepository) FindWeeklyTemplate(ctx context.Context, practitionerID string) (*models.WeeklyTemplate, error) {
	var template models.WeeklyTemplate
	err := repo.Templates.FindOne(ctx, bson.M{"practitioner_id": practitionerID}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &template, nil
}

// SaveWeeklyTemplate replaces the practitioner's whole template in one write
// so a guard failure can never leave a half-saved week behind.
func (repo *SettingsMongoRepository) SaveWeeklyTemplate(ctx context.Context, template *models.WeeklyTemplate) error {
	filter := bson.M{"practitioner_id": template.PractitionerID}
	update := bson.M{
		"practitioner_id": template.PractitionerID,
		"days":            template.Days,
		"created_at":      template.CreatedAt,
		"updated_at":      template.UpdatedAt,
	}
	_, err := repo.Templates.ReplaceOne(ctx, filter, update, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *SettingsMongoRepository) FindExceptionByDate(ctx context.Context, practitionerID, date string) (*models.ScheduleException, error) {
	var exception models.ScheduleException
	err := repo.Exceptions.FindOne(ctx, bson.M{"practitioner_id": practitionerID, "date": date}).Decode(&exception)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &exception, nil
}

func (repo *SettingsMongoRepository) FindExceptionsInRange(ctx context.Context, practitionerID, from, to string) ([]models.ScheduleException, error) {
	filter := bson.M{
		"practitioner_id": practitionerID,
		"date":            bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := repo.Exceptions.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var results []models.ScheduleException
	err = cursor.All(ctx, &results)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return results, nil
}

func (repo *SettingsMongoRepository) SaveException(ctx context.Context, exception *models.ScheduleException, replace bool) error {
	if replace {
		filter := bson.M{"practitioner_id": exception.PractitionerID, "date": exception.Date}
		update := bson.M{
			"practitioner_id":  exception.PractitionerID,
			"date":             exception.Date,
			"reason":           exception.Reason,
			"full_day_block":   exception.FullDayBlock,
			"custom_intervals": exception.CustomIntervals,
			"created_at":       exception.CreatedAt,
			"updated_at":       exception.UpdatedAt,
		}
		_, err := repo.Exceptions.ReplaceOne(ctx, filter, update, options.Replace().SetUpsert(true))
		if err != nil {
			return exceptions.ErrMongoDBUpdateDocument(err)
		}
		return nil
	}

	_, err := repo.Exceptions.InsertOne(ctx, exception)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrExceptionDuplicateDate(exception.Date)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *SettingsMongoRepository) FindVacations(ctx context.Context, practitionerID string) ([]models.VacationWindow, error) {
	cursor, err := repo.Vacations.Find(ctx, bson.M{"practitioner_id": practitionerID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var results []models.VacationWindow
	err = cursor.All(ctx, &results)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return results, nil
}

func (repo *SettingsMongoRepository) SaveVacation(ctx context.Context, vacation *models.VacationWindow) error {
	_, err := repo.Vacations.InsertOne(ctx, vacation)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *SettingsMongoRepository) DeleteVacation(ctx context.Context, practitionerID, vacationID string) error {
	objectID, err := primitive.ObjectIDFromHex(vacationID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = repo.Vacations.DeleteOne(ctx, bson.M{"_id": objectID, "practitioner_id": practitionerID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *SettingsMongoRepository) FindBookingPolicy(ctx context.Context, practitionerID string) (*models.BookingPolicy, error) {
	var policy models.BookingPolicy
	err := repo.Policies.FindOne(ctx, bson.M{"practitioner_id": practitionerID}).Decode(&policy)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &policy, nil
}

func (repo *SettingsMongoRepository) SaveBookingPolicy(ctx context.Context, policy *models.BookingPolicy) error {
	filter := bson.M{"practitioner_id": policy.PractitionerID}
	update := bson.M{
		"practitioner_id":          policy.PractitionerID,
		"session_duration_minutes": policy.SessionDurationMinutes,
		"buffer_minutes":           policy.BufferMinutes,
		"max_daily_appointments":   policy.MaxDailyAppointments,
		"advance_booking_days":     policy.AdvanceBookingDays,
		"created_at":               policy.CreatedAt,
		"updated_at":               policy.UpdatedAt,
	}
	_, err := repo.Policies.ReplaceOne(ctx, filter, update, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
