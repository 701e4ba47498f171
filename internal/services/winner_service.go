package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
)

// Compile-time check to ensure WinnerServiceImpl implements WinnerService
var _ WinnerService = (*WinnerServiceImpl)(nil)

// WinnerServiceImpl handles queries over finalized winners and draw records
type WinnerServiceImpl struct {
	winnerRepo     repositories.WinnerRepository
	drawRecordRepo repositories.DrawRecordRepository
	auditRepo      repositories.AuditRepository
}

// NewWinnerService creates a new WinnerServiceImpl
func NewWinnerService(
	winnerRepo repositories.WinnerRepository,
	drawRecordRepo repositories.DrawRecordRepository,
	auditRepo repositories.AuditRepository,
) *WinnerServiceImpl {
	return &WinnerServiceImpl{
		winnerRepo:     winnerRepo,
		drawRecordRepo: drawRecordRepo,
		auditRepo:      auditRepo,
	}
}

// GetWinnersByDrawID retrieves all winners of a finalized draw
func (s *WinnerServiceImpl) GetWinnersByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	winners, err := s.winnerRepo.FindByDrawID(ctx, drawID)
	if err != nil {
		slog.Error("Failed to get winners by draw ID", "drawId", drawID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to retrieve winners: %w", err)
	}
	return winners, nil
}

// GetWinnersByClaimStatus retrieves winners filtered by claim status
func (s *WinnerServiceImpl) GetWinnersByClaimStatus(ctx context.Context, status models.ClaimStatus, page, limit int) ([]*models.Winner, error) {
	if !models.ValidClaimStatus(status) {
		return nil, fmt.Errorf("invalid claim status %q", status)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.winnerRepo.FindByClaimStatus(ctx, status, page, limit)
}

// UpdateClaimStatus changes the claim status of a finalized winner
func (s *WinnerServiceImpl) UpdateClaimStatus(ctx context.Context, winnerID primitive.ObjectID, status models.ClaimStatus) error {
	if !models.ValidClaimStatus(status) {
		return fmt.Errorf("invalid claim status %q", status)
	}
	if err := s.winnerRepo.UpdateClaimStatus(ctx, winnerID, status); err != nil {
		slog.Error("Failed to update claim status", "winnerId", winnerID.Hex(), "status", status, "error", err)
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	slog.Info("Claim status updated", "winnerId", winnerID.Hex(), "status", status)
	return nil
}

// GetDrawRecords retrieves finalized draw snapshots with pagination
func (s *WinnerServiceImpl) GetDrawRecords(ctx context.Context, page, limit int) ([]*models.DrawRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.drawRecordRepo.FindAll(ctx, page, limit)
}

// GetDrawRecordByID retrieves one finalized draw snapshot
func (s *WinnerServiceImpl) GetDrawRecordByID(ctx context.Context, id primitive.ObjectID) (*models.DrawRecord, error) {
	return s.drawRecordRepo.FindByID(ctx, id)
}

// GetAuditTrail retrieves the archived audit trail of a finalized draw
func (s *WinnerServiceImpl) GetAuditTrail(ctx context.Context, drawID primitive.ObjectID) ([]*models.AuditLogEntry, error) {
	return s.auditRepo.FindByDrawID(ctx, drawID)
}
