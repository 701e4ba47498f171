package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
)

// DrawRecordRepository implements the repositories.DrawRecordRepository interface
type DrawRecordRepository struct {
	collection *mongo.Collection
}

// NewDrawRecordRepository creates a new DrawRecordRepository
func NewDrawRecordRepository(db *mongo.Database) repositories.DrawRecordRepository {
	return &DrawRecordRepository{
		collection: db.Collection("draw_records"),
	}
}

// Create inserts a finalized draw snapshot
func (r *DrawRecordRepository) Create(ctx context.Context, record *models.DrawRecord) error {
	record.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a draw record by ID
func (r *DrawRecordRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DrawRecord, error) {
	var record models.DrawRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll finds draw records with pagination, most recent first
func (r *DrawRecordRepository) FindAll(ctx context.Context, page, limit int) ([]*models.DrawRecord, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"finalizedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.DrawRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
