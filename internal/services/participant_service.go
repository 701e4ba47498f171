package services

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
	"github.com/giveawayhq/sweepstakes-backend/internal/utils"
)

// Compile-time check to ensure ParticipantServiceImpl implements ParticipantService
var _ ParticipantService = (*ParticipantServiceImpl)(nil)

// ParticipantServiceImpl handles roster business logic
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
}

// NewParticipantService creates a new ParticipantServiceImpl
func NewParticipantService(participantRepo repositories.ParticipantRepository) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{participantRepo: participantRepo}
}

// CreateParticipant adds one participant to the roster
func (s *ParticipantServiceImpl) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.Status == "" {
		participant.Status = models.ParticipantStatusActive
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		slog.Error("Failed to create participant", "email", utils.MaskEmail(participant.Email), "error", err)
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// GetParticipantByID retrieves one participant
func (s *ParticipantServiceImpl) GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	return s.participantRepo.FindByID(ctx, id)
}

// GetParticipants retrieves the roster with pagination
func (s *ParticipantServiceImpl) GetParticipants(ctx context.Context, page, limit int) ([]*models.Participant, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.participantRepo.FindAll(ctx, page, limit)
}

// GetParticipantsByStatus retrieves roster entries by account status,
// optionally dropping those below a quality score threshold.
func (s *ParticipantServiceImpl) GetParticipantsByStatus(ctx context.Context, status models.ParticipantStatus, minQualityScore int) ([]*models.Participant, error) {
	participants, err := s.participantRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if minQualityScore <= 0 {
		return participants, nil
	}
	filtered := make([]*models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.QualityScore >= minQualityScore {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// UpdateParticipant updates a roster entry
func (s *ParticipantServiceImpl) UpdateParticipant(ctx context.Context, participant *models.Participant) error {
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		slog.Error("Failed to update participant", "id", participant.ID.Hex(), "error", err)
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}

// DeleteParticipant removes a roster entry
func (s *ParticipantServiceImpl) DeleteParticipant(ctx context.Context, id primitive.ObjectID) error {
	return s.participantRepo.Delete(ctx, id)
}

// GetParticipantCount returns the roster size
func (s *ParticipantServiceImpl) GetParticipantCount(ctx context.Context) (int64, error) {
	return s.participantRepo.Count(ctx)
}

// ImportRoster bulk-imports participants from a CSV stream
func (s *ParticipantServiceImpl) ImportRoster(ctx context.Context, r io.Reader) (*utils.RosterImportResult, error) {
	importer := utils.NewRosterImporter(s.participantRepo)
	result, err := importer.Import(ctx, r)
	if err != nil {
		slog.Error("Roster import failed", "error", err)
		return nil, err
	}
	slog.Info("Roster import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}
