package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
)

// AuditRepository implements the repositories.AuditRepository interface.
// Archived audit entries are write-once: there are no update or delete
// operations on this collection.
type AuditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *mongo.Database) repositories.AuditRepository {
	return &AuditRepository{
		collection: db.Collection("audit_entries"),
	}
}

// CreateMany archives a session's audit trail
func (r *AuditRepository) CreateMany(ctx context.Context, entries []*models.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByDrawID returns the archived trail of a finalized draw, most recent first
func (r *AuditRepository) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"drawId": drawID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
