package draw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
)

// SessionState represents the lifecycle state of a draw session. RESULTS is
// the hub state: every slot-level operation happens there and the manual and
// audit views always return to it.
type SessionState string

const (
	StateSetup   SessionState = "SETUP"
	StateDrawing SessionState = "DRAWING"
	StateResults SessionState = "RESULTS"
	StateManual  SessionState = "MANUAL"
	StateAudit   SessionState = "AUDIT"
)

// DrawOutcome reports the result of a bulk draw: how many empty slots were
// targeted, how many winners were actually selected, and the shortfall when
// the eligible pool was smaller than the request.
type DrawOutcome struct {
	Requested int `json:"requested"`
	Selected  int `json:"selected"`
	Shortfall int `json:"shortfall"`
}

// Session is the aggregate root of one winner-selection workflow. It owns
// the slot list, the active criteria and the audit log; the participant
// roster and the criteria are read-only inputs per operation.
//
// A Session is not safe for concurrent use: the workflow is single-user and
// every action is a discrete sequential operation. Callers serialising access
// (the session service does) get the reentrancy guarantee that a session in
// DRAWING rejects further roll requests.
type Session struct {
	ID              string                     `json:"id"`
	Campaign        string                     `json:"campaign"`
	Slots           []*models.PrizeSlot        `json:"slots"`
	Criteria        models.EligibilityCriteria `json:"criteria"`
	State           SessionState               `json:"state"`
	NumberOfWinners int                        `json:"numberOfWinners"`
	Method          models.SelectionMethod     `json:"method"`
	CreatedAt       time.Time                  `json:"createdAt"`

	rng   Rand
	audit *AuditLog
}

// NewSession validates the criteria, expands the prize groups into individual
// slots and returns a fresh session in the setup state.
func NewSession(campaign string, prizes []models.Prize, criteria models.EligibilityCriteria, rng Rand) (*Session, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewDefault()
	}

	var slots []*models.PrizeSlot
	position := 0
	for _, prize := range prizes {
		for i := 0; i < prize.Quota; i++ {
			position++
			slots = append(slots, &models.PrizeSlot{
				Position:  position,
				PrizeName: prize.Name,
				SlotIndex: i + 1,
			})
		}
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	return &Session{
		ID:              uuid.NewString(),
		Campaign:        campaign,
		Slots:           slots,
		Criteria:        criteria,
		State:           StateSetup,
		NumberOfWinners: len(slots),
		Method:          models.MethodRandom,
		CreatedAt:       time.Now(),
		rng:             rng,
		audit:           &AuditLog{},
	}, nil
}

// SeedConfirmed places already-confirmed winners from an earlier draw into
// the leading slots, so an incremental session can add winners on top of
// them. Only valid in setup while all slots are still empty. The default
// target becomes one more than the seeded count.
func (s *Session) SeedConfirmed(winners []*models.Winner) error {
	if s.State != StateSetup {
		return ErrInvalidState
	}
	if len(winners) > len(s.Slots) {
		return ErrPositionOutOfRange
	}
	for _, slot := range s.Slots {
		if slot.Winner != nil {
			return ErrInvalidTransition
		}
	}
	for i, w := range winners {
		slot := s.Slots[i]
		seeded := *w
		seeded.Confirmed = true
		seeded.PrizeName = slot.PrizeName
		seeded.Position = slot.Position
		slot.Winner = &seeded
	}
	s.NumberOfWinners = len(winners) + 1
	if s.NumberOfWinners > len(s.Slots) {
		s.NumberOfWinners = len(s.Slots)
	}
	return nil
}

// Configure sets the total desired winner count and the selection method.
// For incremental sessions the count includes the already-confirmed winners;
// the next draw fills only the delta.
func (s *Session) Configure(numberOfWinners int, method models.SelectionMethod) error {
	if s.State != StateSetup {
		return ErrInvalidState
	}
	if numberOfWinners < 1 || numberOfWinners > len(s.Slots) {
		return fmt.Errorf("numberOfWinners must be between 1 and %d", len(s.Slots))
	}
	if method != models.MethodRandom && method != models.MethodWeighted {
		return fmt.Errorf("unsupported selection method %q", method)
	}
	s.NumberOfWinners = numberOfWinners
	s.Method = method
	return nil
}

// Draw performs a bulk roll of every empty slot up to the configured target.
// Slots are filled by sequential consumption from a single eligible pool, so
// one batch can never select the same participant twice even when the
// individual picks are random. A zero-eligible pool is not an error: the
// outcome reports zero selected and the session lands in results with the
// existing slots unchanged.
func (s *Session) Draw(roster []*models.Participant) (*DrawOutcome, error) {
	if s.State == StateDrawing {
		return nil, ErrDrawInProgress
	}
	if s.State != StateSetup && s.State != StateResults {
		return nil, ErrInvalidState
	}
	s.State = StateDrawing
	defer func() { s.State = StateResults }()

	var empty []*models.PrizeSlot
	for _, slot := range s.Slots {
		if slot.Position > s.NumberOfWinners {
			break
		}
		if slot.Winner == nil {
			empty = append(empty, slot)
		}
	}
	outcome := &DrawOutcome{Requested: len(empty)}
	if len(empty) == 0 {
		return outcome, nil
	}

	eligible := ComputeEligible(roster, s.Criteria, s.winnerIDs(0))
	winners, shortfall := DrawWinners(eligible, len(empty), s.Method, s.rng)
	for i, w := range winners {
		slot := empty[i]
		w.PrizeName = slot.PrizeName
		w.Position = slot.Position
		slot.Winner = w
		id := w.ParticipantID
		s.audit.Append(models.AuditActionDraw,
			fmt.Sprintf("Drew %s for position %d (%s)", w.Name, slot.Position, slot.PrizeName),
			&id, slot.Position)
	}

	outcome.Selected = len(winners)
	outcome.Shortfall = shortfall
	return outcome, nil
}

// RollSlot rolls a single slot from the results view. An empty slot gets a
// fresh winner drawn with the session method; an unconfirmed slot is
// rerolled, replacing its winner and incrementing the reroll counter. A
// confirmed slot can only be cleared via RemoveConfirmed first.
func (s *Session) RollSlot(position int, roster []*models.Participant) error {
	if s.State == StateDrawing {
		return ErrDrawInProgress
	}
	if s.State != StateResults {
		return ErrInvalidState
	}
	slot, err := s.slotAt(position)
	if err != nil {
		return err
	}
	if slot.State() == models.SlotStateConfirmed {
		return ErrInvalidTransition
	}

	eligible := ComputeEligible(roster, s.Criteria, s.winnerIDs(0))
	if len(eligible) == 0 {
		return ErrZeroEligible
	}
	winners, _ := DrawWinners(eligible, 1, s.Method, s.rng)
	w := winners[0]
	w.PrizeName = slot.PrizeName
	w.Position = slot.Position
	id := w.ParticipantID

	if prev := slot.Winner; prev != nil {
		w.Method = models.MethodReroll
		w.RerollCount = prev.RerollCount + 1
		slot.Winner = w
		s.audit.Append(models.AuditActionReroll,
			fmt.Sprintf("Rerolled position %d: %s replaced %s (reroll #%d)", slot.Position, w.Name, prev.Name, w.RerollCount),
			&id, slot.Position)
		return nil
	}

	slot.Winner = w
	s.audit.Append(models.AuditActionDraw,
		fmt.Sprintf("Drew %s for position %d (%s)", w.Name, slot.Position, slot.PrizeName),
		&id, slot.Position)
	return nil
}

// ManualAssign places an explicitly chosen participant into a slot. The pick
// is validated against the eligible pool, with the slot's current occupant
// exempted from the duplicate-winner exclusion so a replacement is always
// possible. Allowed from results or the manual view; always lands in results.
func (s *Session) ManualAssign(position int, participantID primitive.ObjectID, roster []*models.Participant) error {
	if s.State != StateResults && s.State != StateManual {
		return ErrInvalidState
	}
	slot, err := s.slotAt(position)
	if err != nil {
		return err
	}
	if slot.State() == models.SlotStateConfirmed {
		return ErrInvalidTransition
	}

	eligible := ComputeEligible(roster, s.Criteria, s.winnerIDs(position))
	w, err := ManualPick(eligible, participantID)
	if err != nil {
		return err
	}
	w.PrizeName = slot.PrizeName
	w.Position = slot.Position
	if prev := slot.Winner; prev != nil {
		w.RerollCount = prev.RerollCount
	}
	slot.Winner = w
	id := w.ParticipantID
	s.audit.Append(models.AuditActionManualSelect,
		fmt.Sprintf("Manually assigned %s to position %d (%s)", w.Name, slot.Position, slot.PrizeName),
		&id, slot.Position)
	s.State = StateResults
	return nil
}

// ConfirmSlot locks in the rolled winner at the given position. Confirming an
// empty slot is a contract violation; confirming an already-confirmed slot is
// a no-op.
func (s *Session) ConfirmSlot(position int) error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	slot, err := s.slotAt(position)
	if err != nil {
		return err
	}
	return s.confirm(slot)
}

func (s *Session) confirm(slot *models.PrizeSlot) error {
	switch slot.State() {
	case models.SlotStateEmpty:
		return ErrInvalidTransition
	case models.SlotStateConfirmed:
		return nil
	}
	slot.Winner.Confirmed = true
	id := slot.Winner.ParticipantID
	s.audit.Append(models.AuditActionClaimUpdate,
		fmt.Sprintf("Confirmed %s at position %d (%s)", slot.Winner.Name, slot.Position, slot.PrizeName),
		&id, slot.Position)
	return nil
}

// ConfirmAll confirms every rolled slot and returns how many were confirmed.
func (s *Session) ConfirmAll() (int, error) {
	if s.State != StateResults {
		return 0, ErrInvalidState
	}
	confirmed := 0
	for _, slot := range s.Slots {
		if slot.State() == models.SlotStateRolled {
			if err := s.confirm(slot); err != nil {
				return confirmed, err
			}
			confirmed++
		}
	}
	return confirmed, nil
}

// ConfirmPartial commits the newly rolled winners and returns the session to
// setup so more winners can be drawn on top of them.
func (s *Session) ConfirmPartial() (int, error) {
	confirmed, err := s.ConfirmAll()
	if err != nil {
		return confirmed, err
	}
	return confirmed, s.AddMore()
}

// RemoveConfirmed clears a confirmed slot. This is the only path out of the
// confirmed state and it demands a non-blank justification, which is recorded
// in the audit trail.
func (s *Session) RemoveConfirmed(position int, justification string) error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	slot, err := s.slotAt(position)
	if err != nil {
		return err
	}
	if slot.State() != models.SlotStateConfirmed {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(justification) == "" {
		return ErrJustificationRequired
	}
	removed := slot.Winner
	id := removed.ParticipantID
	slot.Winner = nil
	s.audit.Append(models.AuditActionDisqualify,
		fmt.Sprintf("Removed confirmed winner %s from position %d: %s", removed.Name, slot.Position, strings.TrimSpace(justification)),
		&id, slot.Position)
	return nil
}

// UpdateClaimStatus changes the claim status of the winner at the given
// position. Moving to DISQUALIFIED is recorded under the disqualify action,
// every other change under claim_update.
func (s *Session) UpdateClaimStatus(position int, status models.ClaimStatus) error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	slot, err := s.slotAt(position)
	if err != nil {
		return err
	}
	if slot.Winner == nil {
		return ErrInvalidTransition
	}
	if !models.ValidClaimStatus(status) {
		return fmt.Errorf("invalid claim status %q", status)
	}
	slot.Winner.ClaimStatus = status
	if status == models.ClaimStatusClaimed {
		slot.Winner.ClaimDate = time.Now()
	}
	action := models.AuditActionClaimUpdate
	if status == models.ClaimStatusDisqualified {
		action = models.AuditActionDisqualify
	}
	id := slot.Winner.ParticipantID
	s.audit.Append(action,
		fmt.Sprintf("Claim status of %s at position %d set to %s", slot.Winner.Name, slot.Position, status),
		&id, slot.Position)
	return nil
}

// AddMore returns to setup to draw additional winners on top of the confirmed
// ones; the target defaults to one more than the confirmed count.
func (s *Session) AddMore() error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	s.State = StateSetup
	s.NumberOfWinners = s.ConfirmedCount() + 1
	if s.NumberOfWinners > len(s.Slots) {
		s.NumberOfWinners = len(s.Slots)
	}
	return nil
}

// StartOver returns to setup with the target reset to the full slot count.
// Confirmed winners stay in place; they can only leave via RemoveConfirmed.
func (s *Session) StartOver() error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	s.State = StateSetup
	s.NumberOfWinners = len(s.Slots)
	return nil
}

// EnterManual switches from results to the roster-browsing view.
func (s *Session) EnterManual() error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	s.State = StateManual
	return nil
}

// EnterAudit switches from results to the read-only audit view.
func (s *Session) EnterAudit() error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	s.State = StateAudit
	return nil
}

// BackToResults returns from the manual or audit view to the results hub.
func (s *Session) BackToResults() error {
	if s.State != StateManual && s.State != StateAudit {
		return ErrInvalidState
	}
	s.State = StateResults
	return nil
}

// AllConfirmed reports whether every slot holds a confirmed winner. This is
// the terminal success condition but not an irreversible one: confirmed
// winners can still be removed with justification and redrawn.
func (s *Session) AllConfirmed() bool {
	for _, slot := range s.Slots {
		if slot.State() != models.SlotStateConfirmed {
			return false
		}
	}
	return true
}

// ConfirmedCount returns the number of confirmed slots.
func (s *Session) ConfirmedCount() int {
	n := 0
	for _, slot := range s.Slots {
		if slot.State() == models.SlotStateConfirmed {
			n++
		}
	}
	return n
}

// Winners returns the assigned winners in position order.
func (s *Session) Winners() []*models.Winner {
	var winners []*models.Winner
	for _, slot := range s.Slots {
		if slot.Winner != nil {
			winners = append(winners, slot.Winner)
		}
	}
	return winners
}

// Audit returns a copy of the audit trail, most recent first.
func (s *Session) Audit() []*models.AuditLogEntry {
	return s.audit.Entries()
}

// Finalize returns copies of the confirmed winners for the external store to
// commit. The session itself stays intact; the caller tears it down once the
// commit succeeds.
func (s *Session) Finalize() ([]*models.Winner, error) {
	if s.State != StateResults {
		return nil, ErrInvalidState
	}
	var winners []*models.Winner
	for _, slot := range s.Slots {
		if slot.State() == models.SlotStateConfirmed {
			w := *slot.Winner
			winners = append(winners, &w)
		}
	}
	if len(winners) == 0 {
		return nil, errors.New("no confirmed winners to finalize")
	}
	return winners, nil
}

// winnerIDs collects the participant ids currently holding any slot, skipping
// exceptPosition (0 skips nothing). Used as the duplicate-winner exclusion
// set for eligibility.
func (s *Session) winnerIDs(exceptPosition int) map[primitive.ObjectID]bool {
	ids := make(map[primitive.ObjectID]bool)
	for _, slot := range s.Slots {
		if slot.Position == exceptPosition {
			continue
		}
		if slot.Winner != nil {
			ids[slot.Winner.ParticipantID] = true
		}
	}
	return ids
}

func (s *Session) slotAt(position int) (*models.PrizeSlot, error) {
	if position < 1 || position > len(s.Slots) {
		return nil, ErrPositionOutOfRange
	}
	return s.Slots[position-1], nil
}
