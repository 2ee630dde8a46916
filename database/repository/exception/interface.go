package exceptionRepo

import (
	"context"
	"fmt"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExceptionRepository persists schedule exceptions. Occurrences are expanded
// on demand by the scheduling core, never stored.
type ExceptionRepository interface {
	Create(ctx context.Context, exc models.ScheduleException) error
	GetByID(ctx context.Context, id string) (*models.ScheduleException, error)
	ListByOwner(ctx context.Context, owner string) ([]models.ScheduleException, error)
	Delete(ctx context.Context, id string) error
}

type mongoExceptionRepo struct {
	coll *mongo.Collection
}

// NewMongoExceptionRepo constructs a new MongoDB ExceptionRepository.
func NewMongoExceptionRepo() ExceptionRepository {
	return &mongoExceptionRepo{
		coll: database.DB().Collection("schedule_exceptions"),
	}
}

func (repo *mongoExceptionRepo) Create(ctx context.Context, exc models.ScheduleException) error {
	if _, err := repo.coll.InsertOne(ctx, exc); err != nil {
		return fmt.Errorf("failed to insert schedule exception: %w", err)
	}
	return nil
}

func (repo *mongoExceptionRepo) GetByID(ctx context.Context, id string) (*models.ScheduleException, error) {
	var exc models.ScheduleException
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&exc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule exception %s: %w", id, err)
	}
	return &exc, nil
}

func (repo *mongoExceptionRepo) ListByOwner(ctx context.Context, owner string) ([]models.ScheduleException, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule exceptions for %s: %w", owner, err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.ScheduleException
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to decode schedule exceptions: %w", err)
	}
	return exceptions, nil
}

func (repo *mongoExceptionRepo) Delete(ctx context.Context, id string) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete schedule exception %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("schedule exception %s not found", id)
	}
	return nil
}
