package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/draw"
	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/utils"
)

// DrawSessionService defines the interface for running interactive draw
// sessions. Sessions live in memory until finalized; only finalize writes
// through to the store.
type DrawSessionService interface {
	// CreateSession opens a new draw session for a campaign
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*draw.Session, error)

	// GetSession returns the live session snapshot
	GetSession(sessionID string) (*draw.Session, error)

	// Configure sets the total desired winner count and the selection method
	Configure(sessionID string, numberOfWinners int, method models.SelectionMethod) (*draw.Session, error)

	// ExecuteDraw bulk-rolls every empty slot up to the configured target
	ExecuteDraw(ctx context.Context, sessionID string) (*draw.DrawOutcome, error)

	// RollSlot draws or rerolls a single slot
	RollSlot(ctx context.Context, sessionID string, position int) (*draw.Session, error)

	// ManualAssign places an explicitly chosen participant into a slot
	ManualAssign(ctx context.Context, sessionID string, position int, participantID primitive.ObjectID) (*draw.Session, error)

	// ConfirmSlot locks in the rolled winner at one position
	ConfirmSlot(sessionID string, position int) (*draw.Session, error)

	// ConfirmAll locks in every rolled winner
	ConfirmAll(sessionID string) (*draw.Session, error)

	// ConfirmPartial locks in the rolled winners and reopens setup for more
	ConfirmPartial(sessionID string) (*draw.Session, error)

	// RemoveConfirmed clears a confirmed slot, demanding a justification
	RemoveConfirmed(sessionID string, position int, justification string) (*draw.Session, error)

	// UpdateClaimStatus changes a slot winner's claim status
	UpdateClaimStatus(sessionID string, position int, status models.ClaimStatus) (*draw.Session, error)

	// ChangeView moves the session between the results, manual and audit views
	ChangeView(sessionID string, target draw.SessionState) (*draw.Session, error)

	// Reopen returns a results-state session to setup (add-more or start-over)
	Reopen(sessionID string, startOver bool) (*draw.Session, error)

	// Audit returns the session's audit trail, most recent first
	Audit(sessionID string) ([]*models.AuditLogEntry, error)

	// Finalize persists the confirmed winners and tears down the live session
	Finalize(ctx context.Context, sessionID string, finalizedBy string) (*models.DrawRecord, error)

	// Discard drops a live session without persisting anything
	Discard(sessionID string) error
}

// ParticipantService defines the interface for roster operations
type ParticipantService interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	GetParticipants(ctx context.Context, page, limit int) ([]*models.Participant, error)
	GetParticipantsByStatus(ctx context.Context, status models.ParticipantStatus, minQualityScore int) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, participant *models.Participant) error
	DeleteParticipant(ctx context.Context, id primitive.ObjectID) error
	GetParticipantCount(ctx context.Context) (int64, error)
	ImportRoster(ctx context.Context, r io.Reader) (*utils.RosterImportResult, error)
}

// WinnerService defines the interface for finalized winner records
type WinnerService interface {
	GetWinnersByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
	GetWinnersByClaimStatus(ctx context.Context, status models.ClaimStatus, page, limit int) ([]*models.Winner, error)
	UpdateClaimStatus(ctx context.Context, winnerID primitive.ObjectID, status models.ClaimStatus) error
	GetDrawRecords(ctx context.Context, page, limit int) ([]*models.DrawRecord, error)
	GetDrawRecordByID(ctx context.Context, id primitive.ObjectID) (*models.DrawRecord, error)
	GetAuditTrail(ctx context.Context, drawID primitive.ObjectID) ([]*models.AuditLogEntry, error)
}

// AuthService defines the interface for operator authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error)
}
