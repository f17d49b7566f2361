package practitioners

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

type PractitionerMongoRepository struct {
	Collection *mongo.Collection
}

func NewPractitionerMongoRepository(db *mongo.Client, dbName string) contracts.PractitionerRepository {
	return &PractitionerMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPractitioners),
	}
}

func (repo *PractitionerMongoRepository) FindByID(ctx context.Context, practitionerID string) (*models.Practitioner, error) {
	objectID, err := primitive.ObjectIDFromHex(practitionerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var practitioner models.Practitioner
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&practitioner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &practitioner, nil
}
