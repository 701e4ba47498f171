package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/giveawayhq/sweepstakes-backend/internal/draw"
	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
)

// ErrSessionNotFound is returned when a session id does not match a live session.
var ErrSessionNotFound = errors.New("draw session not found")

// Compile-time check to ensure DrawSessionServiceImpl implements DrawSessionService
var _ DrawSessionService = (*DrawSessionServiceImpl)(nil)

// CreateSessionRequest carries everything needed to open a draw session.
// ExistingWinners seeds an incremental session on top of winners confirmed in
// an earlier draw.
type CreateSessionRequest struct {
	Campaign        string
	Prizes          []models.Prize
	Criteria        models.EligibilityCriteria
	ExistingWinners []*models.Winner
}

// DrawSessionServiceImpl keeps live sessions in memory and writes through to
// the store only at finalize time. All session mutations are serialised by
// the service mutex, which is what gives each single-user session its
// sequential-operation guarantee.
type DrawSessionServiceImpl struct {
	mu       sync.Mutex
	sessions map[string]*draw.Session

	participantRepo repositories.ParticipantRepository
	winnerRepo      repositories.WinnerRepository
	drawRecordRepo  repositories.DrawRecordRepository
	auditRepo       repositories.AuditRepository
	newRand         func() draw.Rand
}

// NewDrawSessionService creates a new DrawSessionServiceImpl. newRand is
// called once per session to build its randomness source; pass nil to use the
// default time-seeded generator.
func NewDrawSessionService(
	participantRepo repositories.ParticipantRepository,
	winnerRepo repositories.WinnerRepository,
	drawRecordRepo repositories.DrawRecordRepository,
	auditRepo repositories.AuditRepository,
	newRand func() draw.Rand,
) *DrawSessionServiceImpl {
	if newRand == nil {
		newRand = draw.NewDefault
	}
	return &DrawSessionServiceImpl{
		sessions:        make(map[string]*draw.Session),
		participantRepo: participantRepo,
		winnerRepo:      winnerRepo,
		drawRecordRepo:  drawRecordRepo,
		auditRepo:       auditRepo,
		newRand:         newRand,
	}
}

// CreateSession opens a new draw session and registers it in memory.
func (s *DrawSessionServiceImpl) CreateSession(ctx context.Context, req *CreateSessionRequest) (*draw.Session, error) {
	session, err := draw.NewSession(req.Campaign, req.Prizes, req.Criteria, s.newRand())
	if err != nil {
		slog.Warn("Rejected draw session", "campaign", req.Campaign, "error", err)
		return nil, err
	}
	if len(req.ExistingWinners) > 0 {
		if err := session.SeedConfirmed(req.ExistingWinners); err != nil {
			return nil, fmt.Errorf("failed to seed confirmed winners: %w", err)
		}
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	slog.Info("Draw session created", "sessionId", session.ID, "campaign", req.Campaign,
		"slots", len(session.Slots), "seeded", len(req.ExistingWinners))
	return session, nil
}

// GetSession returns the live session snapshot.
func (s *DrawSessionServiceImpl) GetSession(sessionID string) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(sessionID)
}

// Configure sets the winner target and selection method during setup.
func (s *DrawSessionServiceImpl) Configure(sessionID string, numberOfWinners int, method models.SelectionMethod) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Configure(numberOfWinners, method); err != nil {
		return nil, err
	}
	return session, nil
}

// ExecuteDraw loads the active roster and bulk-rolls every empty slot up to
// the configured target.
func (s *DrawSessionServiceImpl) ExecuteDraw(ctx context.Context, sessionID string) (*draw.DrawOutcome, error) {
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	outcome, err := session.Draw(roster)
	if err != nil {
		slog.Warn("Draw rejected", "sessionId", sessionID, "error", err)
		return nil, err
	}
	if outcome.Shortfall > 0 {
		slog.Warn("Draw completed with shortfall", "sessionId", sessionID,
			"requested", outcome.Requested, "selected", outcome.Selected, "shortfall", outcome.Shortfall)
	} else {
		slog.Info("Draw completed", "sessionId", sessionID,
			"requested", outcome.Requested, "selected", outcome.Selected)
	}
	return outcome, nil
}

// RollSlot draws or rerolls a single slot.
func (s *DrawSessionServiceImpl) RollSlot(ctx context.Context, sessionID string, position int) (*draw.Session, error) {
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.RollSlot(position, roster); err != nil {
		return nil, err
	}
	slog.Info("Slot rolled", "sessionId", sessionID, "position", position)
	return session, nil
}

// ManualAssign places an explicitly chosen participant into a slot.
func (s *DrawSessionServiceImpl) ManualAssign(ctx context.Context, sessionID string, position int, participantID primitive.ObjectID) (*draw.Session, error) {
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.ManualAssign(position, participantID, roster); err != nil {
		return nil, err
	}
	slog.Info("Manual assignment", "sessionId", sessionID, "position", position, "participantId", participantID.Hex())
	return session, nil
}

// ConfirmSlot locks in the rolled winner at one position.
func (s *DrawSessionServiceImpl) ConfirmSlot(sessionID string, position int) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.ConfirmSlot(position); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmAll locks in every rolled winner.
func (s *DrawSessionServiceImpl) ConfirmAll(sessionID string) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	confirmed, err := session.ConfirmAll()
	if err != nil {
		return nil, err
	}
	slog.Info("Winners confirmed", "sessionId", sessionID, "confirmed", confirmed, "allConfirmed", session.AllConfirmed())
	return session, nil
}

// ConfirmPartial locks in the rolled winners and reopens setup for more.
func (s *DrawSessionServiceImpl) ConfirmPartial(sessionID string) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	confirmed, err := session.ConfirmPartial()
	if err != nil {
		return nil, err
	}
	slog.Info("Partial confirmation", "sessionId", sessionID, "confirmed", confirmed)
	return session, nil
}

// RemoveConfirmed clears a confirmed slot with a mandatory justification.
func (s *DrawSessionServiceImpl) RemoveConfirmed(sessionID string, position int, justification string) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.RemoveConfirmed(position, justification); err != nil {
		return nil, err
	}
	slog.Info("Confirmed winner removed", "sessionId", sessionID, "position", position)
	return session, nil
}

// UpdateClaimStatus changes a slot winner's claim status.
func (s *DrawSessionServiceImpl) UpdateClaimStatus(sessionID string, position int, status models.ClaimStatus) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.UpdateClaimStatus(position, status); err != nil {
		return nil, err
	}
	return session, nil
}

// ChangeView moves the session between the results, manual and audit views.
func (s *DrawSessionServiceImpl) ChangeView(sessionID string, target draw.SessionState) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	switch target {
	case draw.StateManual:
		err = session.EnterManual()
	case draw.StateAudit:
		err = session.EnterAudit()
	case draw.StateResults:
		err = session.BackToResults()
	default:
		err = draw.ErrInvalidState
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Reopen returns a results-state session to setup: add-more keeps the target
// at confirmed+1, start-over resets it to the full slot count.
func (s *DrawSessionServiceImpl) Reopen(sessionID string, startOver bool) (*draw.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if startOver {
		err = session.StartOver()
	} else {
		err = session.AddMore()
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Audit returns the session's audit trail, most recent first.
func (s *DrawSessionServiceImpl) Audit(sessionID string) ([]*models.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Audit(), nil
}

// Finalize persists the confirmed winners, the draw snapshot and the audit
// trail, then drops the live session. The store is the durable authority from
// this point on.
func (s *DrawSessionServiceImpl) Finalize(ctx context.Context, sessionID string, finalizedBy string) (*models.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	winners, err := session.Finalize()
	if err != nil {
		return nil, err
	}

	record := &models.DrawRecord{
		SessionID:      session.ID,
		Campaign:       session.Campaign,
		Criteria:       session.Criteria,
		TotalSlots:     len(session.Slots),
		ConfirmedCount: len(winners),
		FinalizedAt:    time.Now(),
		FinalizedBy:    finalizedBy,
	}
	for _, slot := range session.Slots {
		record.Slots = append(record.Slots, *slot)
	}
	if err := s.drawRecordRepo.Create(ctx, record); err != nil {
		slog.Error("Failed to persist draw record", "sessionId", sessionID, "error", err)
		return nil, fmt.Errorf("failed to persist draw record: %w", err)
	}

	for _, w := range winners {
		w.DrawID = record.ID
	}
	if err := s.winnerRepo.CreateMany(ctx, winners); err != nil {
		slog.Error("Failed to persist winners", "sessionId", sessionID, "drawId", record.ID, "error", err)
		return nil, fmt.Errorf("failed to persist winners: %w", err)
	}

	entries := session.Audit()
	for _, e := range entries {
		e.DrawID = record.ID
	}
	if err := s.auditRepo.CreateMany(ctx, entries); err != nil {
		// The winners are committed; losing the archived trail is not worth
		// failing the finalize for, so log and carry on.
		slog.Error("Failed to archive audit trail", "sessionId", sessionID, "drawId", record.ID, "error", err)
	}

	delete(s.sessions, sessionID)
	slog.Info("Draw session finalized", "sessionId", sessionID, "drawId", record.ID,
		"winners", len(winners), "auditEntries", len(entries))
	return record, nil
}

// Discard drops a live session without persisting anything.
func (s *DrawSessionServiceImpl) Discard(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	slog.Info("Draw session discarded", "sessionId", sessionID)
	return nil
}

func (s *DrawSessionServiceImpl) lookup(sessionID string) (*draw.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *DrawSessionServiceImpl) loadRoster(ctx context.Context) ([]*models.Participant, error) {
	roster, err := s.participantRepo.FindByStatus(ctx, models.ParticipantStatusActive)
	if err != nil {
		slog.Error("Failed to load participant roster", "error", err)
		return nil, fmt.Errorf("failed to load participant roster: %w", err)
	}
	return roster, nil
}
