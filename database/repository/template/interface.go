package templateRepo

import (
	"context"
	"fmt"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TemplateRepository persists weekly templates, one active template per
// owner.
type TemplateRepository interface {
	Upsert(ctx context.Context, tmpl models.WeeklyTemplate) error
	GetByOwner(ctx context.Context, owner string) (*models.WeeklyTemplate, error)
	GetByID(ctx context.Context, id string) (*models.WeeklyTemplate, error)
	ListActive(ctx context.Context) ([]models.WeeklyTemplate, error)
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new MongoDB TemplateRepository.
func NewMongoTemplateRepo() TemplateRepository {
	return &mongoTemplateRepo{
		coll: database.DB().Collection("templates"),
	}
}

func (repo *mongoTemplateRepo) Upsert(ctx context.Context, tmpl models.WeeklyTemplate) error {
	filter := bson.M{"id": tmpl.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, tmpl, opts); err != nil {
		return fmt.Errorf("failed to upsert template %s: %w", tmpl.ID, err)
	}
	return nil
}

func (repo *mongoTemplateRepo) GetByOwner(ctx context.Context, owner string) (*models.WeeklyTemplate, error) {
	var tmpl models.WeeklyTemplate
	err := repo.coll.FindOne(ctx, bson.M{"owner": owner, "status": models.TemplateActive}).Decode(&tmpl)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template for owner %s: %w", owner, err)
	}
	return &tmpl, nil
}

func (repo *mongoTemplateRepo) GetByID(ctx context.Context, id string) (*models.WeeklyTemplate, error) {
	var tmpl models.WeeklyTemplate
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tmpl)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template %s: %w", id, err)
	}
	return &tmpl, nil
}

func (repo *mongoTemplateRepo) ListActive(ctx context.Context) ([]models.WeeklyTemplate, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"status": models.TemplateActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list active templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.WeeklyTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}
