package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
)

// ParticipantRepository defines the interface for roster data operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	CreateMany(ctx context.Context, participants []*models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByEmail(ctx context.Context, email string) (*models.Participant, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Participant, error)
	FindByStatus(ctx context.Context, status models.ParticipantStatus) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// WinnerRepository defines the interface for finalized winner records
type WinnerRepository interface {
	CreateMany(ctx context.Context, winners []*models.Winner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
	FindByParticipantID(ctx context.Context, participantID primitive.ObjectID) ([]*models.Winner, error)
	FindByClaimStatus(ctx context.Context, status models.ClaimStatus, page, limit int) ([]*models.Winner, error)
	UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error
}

// DrawRecordRepository defines the interface for finalized draw snapshots
type DrawRecordRepository interface {
	Create(ctx context.Context, record *models.DrawRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DrawRecord, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.DrawRecord, error)
}

// AuditRepository defines the interface for archived audit trails
type AuditRepository interface {
	CreateMany(ctx context.Context, entries []*models.AuditLogEntry) error
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.AuditLogEntry, error)
}

// AdminUserRepository defines the interface for dashboard operator accounts
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
