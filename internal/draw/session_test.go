package draw

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
)

func makeRoster(n int) []*models.Participant {
	roster := make([]*models.Participant, 0, n)
	for i := 0; i < n; i++ {
		roster = append(roster, makeParticipant(
			fmt.Sprintf("Participant %d", i+1),
			fmt.Sprintf("p%d@example.com", i+1),
			100, 100))
	}
	return roster
}

func newTestSession(t *testing.T, prizes []models.Prize) *Session {
	t.Helper()
	criteria := models.EligibilityCriteria{MinQualityScore: 70, PreventDuplicateWinners: true}
	session, err := NewSession("Test Campaign", prizes, criteria, NewSeeded(1))
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session
}

func TestNewSession(t *testing.T) {
	t.Run("Prize quotas expand to positional slots", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{
			{Name: "Grand Prize", Quota: 1},
			{Name: "Gift Card", Quota: 3},
		})
		if len(session.Slots) != 4 {
			t.Fatalf("Expected 4 slots, got %d", len(session.Slots))
		}
		if session.Slots[0].PrizeName != "Grand Prize" || session.Slots[0].Position != 1 {
			t.Errorf("Unexpected first slot: %+v", session.Slots[0])
		}
		last := session.Slots[3]
		if last.PrizeName != "Gift Card" || last.Position != 4 || last.SlotIndex != 3 {
			t.Errorf("Unexpected last slot: %+v", last)
		}
		if session.State != StateSetup {
			t.Errorf("Expected setup state, got %s", session.State)
		}
		if session.NumberOfWinners != 4 {
			t.Errorf("Expected default target 4, got %d", session.NumberOfWinners)
		}
	})

	t.Run("No slots rejected", func(t *testing.T) {
		_, err := NewSession("Empty", nil, models.EligibilityCriteria{}, NewSeeded(1))
		if !errors.Is(err, ErrNoSlots) {
			t.Fatalf("Expected ErrNoSlots, got %v", err)
		}
	})

	t.Run("Invalid criteria rejected", func(t *testing.T) {
		_, err := NewSession("Bad", []models.Prize{{Name: "P", Quota: 1}},
			models.EligibilityCriteria{MinQualityScore: 150}, NewSeeded(1))
		if err == nil {
			t.Fatal("Expected an error for an out-of-range quality score")
		}
	})
}

func TestSession_Configure(t *testing.T) {
	t.Run("Sets count and method in setup", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 5}})
		if err := session.Configure(3, models.MethodWeighted); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if session.NumberOfWinners != 3 || session.Method != models.MethodWeighted {
			t.Errorf("Configuration not applied: count=%d method=%s", session.NumberOfWinners, session.Method)
		}
	})

	t.Run("Count must fit the slot list", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if err := session.Configure(0, models.MethodRandom); err == nil {
			t.Error("Expected an error for count 0")
		}
		if err := session.Configure(3, models.MethodRandom); err == nil {
			t.Error("Expected an error for count beyond the slot list")
		}
	})

	t.Run("Only random and weighted allowed", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if err := session.Configure(1, models.MethodManual); err == nil {
			t.Error("Expected manual to be rejected as a bulk method")
		}
	})

	t.Run("Rejected outside setup", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if err := session.Configure(1, models.MethodRandom); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Expected ErrInvalidState, got %v", err)
		}
	})
}

func TestSession_Draw(t *testing.T) {
	t.Run("Fills the configured number of slots", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 5}})
		if err := session.Configure(3, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		outcome, err := session.Draw(makeRoster(10))
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if outcome.Requested != 3 || outcome.Selected != 3 || outcome.Shortfall != 0 {
			t.Errorf("Unexpected outcome: %+v", outcome)
		}
		if session.State != StateResults {
			t.Errorf("Expected results state, got %s", session.State)
		}
		for i, slot := range session.Slots {
			wantRolled := i < 3
			if wantRolled && slot.State() != models.SlotStateRolled {
				t.Errorf("Slot %d expected rolled, got %s", slot.Position, slot.State())
			}
			if !wantRolled && slot.State() != models.SlotStateEmpty {
				t.Errorf("Slot %d expected empty, got %s", slot.Position, slot.State())
			}
		}
	})

	t.Run("Never selects the same participant twice in one batch", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 5}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		seen := make(map[primitive.ObjectID]bool)
		for _, w := range session.Winners() {
			if seen[w.ParticipantID] {
				t.Fatalf("Participant %s holds two slots", w.ParticipantID.Hex())
			}
			seen[w.ParticipantID] = true
		}
	})

	t.Run("Exactly enough eligible fills every slot", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 4}})
		outcome, err := session.Draw(makeRoster(4))
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if outcome.Selected != 4 || outcome.Shortfall != 0 {
			t.Errorf("Unexpected outcome: %+v", outcome)
		}
	})

	t.Run("Shortfall reported when pool too small", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 5}})
		outcome, err := session.Draw(makeRoster(2))
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if outcome.Selected != 2 || outcome.Shortfall != 3 {
			t.Errorf("Unexpected outcome: %+v", outcome)
		}
	})

	t.Run("Zero eligible is an outcome not an error", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		outcome, err := session.Draw(nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if outcome.Requested != 2 || outcome.Selected != 0 || outcome.Shortfall != 2 {
			t.Errorf("Unexpected outcome: %+v", outcome)
		}
		if session.State != StateResults {
			t.Errorf("Expected results state, got %s", session.State)
		}
	})

	t.Run("Records one audit entry per filled slot", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 3}})
		if _, err := session.Draw(makeRoster(10)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		entries := session.Audit()
		if len(entries) != 3 {
			t.Fatalf("Expected 3 audit entries, got %d", len(entries))
		}
		for _, e := range entries {
			if e.Action != models.AuditActionDraw {
				t.Errorf("Expected DRAW action, got %s", e.Action)
			}
			if e.ParticipantID == nil || e.Position == 0 {
				t.Error("Expected slot-scoped audit entries")
			}
		}
	})

	t.Run("Redraw after reopening skips occupied slots", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 4}})
		roster := makeRoster(10)
		if err := session.Configure(2, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		if _, err := session.Draw(roster); err != nil {
			t.Fatalf("First draw failed: %v", err)
		}
		if _, err := session.ConfirmAll(); err != nil {
			t.Fatalf("ConfirmAll failed: %v", err)
		}
		if err := session.AddMore(); err != nil {
			t.Fatalf("AddMore failed: %v", err)
		}
		if session.NumberOfWinners != 3 {
			t.Fatalf("Expected target 3 after add-more, got %d", session.NumberOfWinners)
		}
		outcome, err := session.Draw(roster)
		if err != nil {
			t.Fatalf("Second draw failed: %v", err)
		}
		if outcome.Requested != 1 || outcome.Selected != 1 {
			t.Errorf("Expected exactly one new winner, got %+v", outcome)
		}
		if session.ConfirmedCount() != 2 {
			t.Errorf("Confirmed winners disturbed: count %d", session.ConfirmedCount())
		}
	})
}

func TestSession_RollSlot(t *testing.T) {
	setup := func(t *testing.T) (*Session, []*models.Participant) {
		t.Helper()
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 3}})
		roster := makeRoster(10)
		if err := session.Configure(2, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		if _, err := session.Draw(roster); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		return session, roster
	}

	t.Run("Empty slot gets a fresh draw", func(t *testing.T) {
		session, roster := setup(t)
		if err := session.RollSlot(3, roster); err != nil {
			t.Fatalf("RollSlot failed: %v", err)
		}
		slot := session.Slots[2]
		if slot.State() != models.SlotStateRolled {
			t.Fatalf("Expected rolled slot, got %s", slot.State())
		}
		if slot.Winner.Method != models.MethodRandom {
			t.Errorf("Expected method RANDOM for a fresh draw, got %s", slot.Winner.Method)
		}
		if slot.Winner.RerollCount != 0 {
			t.Errorf("Expected reroll count 0, got %d", slot.Winner.RerollCount)
		}
	})

	t.Run("Occupied slot rerolls with counter and audit entry", func(t *testing.T) {
		session, roster := setup(t)
		prev := session.Slots[0].Winner
		before := len(session.Audit())

		if err := session.RollSlot(1, roster); err != nil {
			t.Fatalf("RollSlot failed: %v", err)
		}
		w := session.Slots[0].Winner
		if w.ParticipantID == prev.ParticipantID {
			t.Error("Expected the outgoing winner to be excluded from the reroll pool")
		}
		if w.Method != models.MethodReroll {
			t.Errorf("Expected method REROLL, got %s", w.Method)
		}
		if w.RerollCount != prev.RerollCount+1 {
			t.Errorf("Expected reroll count %d, got %d", prev.RerollCount+1, w.RerollCount)
		}
		entries := session.Audit()
		if len(entries) != before+1 {
			t.Fatalf("Expected exactly one new audit entry, got %d", len(entries)-before)
		}
		if entries[0].Action != models.AuditActionReroll {
			t.Errorf("Expected REROLL action, got %s", entries[0].Action)
		}
	})

	t.Run("Repeated rerolls keep counting", func(t *testing.T) {
		session, roster := setup(t)
		for i := 1; i <= 3; i++ {
			if err := session.RollSlot(1, roster); err != nil {
				t.Fatalf("Reroll %d failed: %v", i, err)
			}
		}
		if got := session.Slots[0].Winner.RerollCount; got != 3 {
			t.Errorf("Expected reroll count 3, got %d", got)
		}
	})

	t.Run("Confirmed slot rejected", func(t *testing.T) {
		session, roster := setup(t)
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("ConfirmSlot failed: %v", err)
		}
		if err := session.RollSlot(1, roster); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("Zero eligible pool rejected", func(t *testing.T) {
		session, _ := setup(t)
		if err := session.RollSlot(3, nil); !errors.Is(err, ErrZeroEligible) {
			t.Fatalf("Expected ErrZeroEligible, got %v", err)
		}
	})

	t.Run("Position out of range rejected", func(t *testing.T) {
		session, roster := setup(t)
		if err := session.RollSlot(0, roster); !errors.Is(err, ErrPositionOutOfRange) {
			t.Fatalf("Expected ErrPositionOutOfRange, got %v", err)
		}
		if err := session.RollSlot(4, roster); !errors.Is(err, ErrPositionOutOfRange) {
			t.Fatalf("Expected ErrPositionOutOfRange, got %v", err)
		}
	})
}

func TestSession_ManualAssign(t *testing.T) {
	setup := func(t *testing.T) (*Session, []*models.Participant) {
		t.Helper()
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		roster := makeRoster(6)
		if _, err := session.Draw(roster); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		return session, roster
	}

	pickUnassigned := func(t *testing.T, session *Session, roster []*models.Participant) *models.Participant {
		t.Helper()
		held := make(map[primitive.ObjectID]bool)
		for _, w := range session.Winners() {
			held[w.ParticipantID] = true
		}
		for _, p := range roster {
			if !held[p.ID] {
				return p
			}
		}
		t.Fatal("No unassigned participant available")
		return nil
	}

	t.Run("Replaces the occupant and records the action", func(t *testing.T) {
		session, roster := setup(t)
		replacement := pickUnassigned(t, session, roster)

		if err := session.ManualAssign(1, replacement.ID, roster); err != nil {
			t.Fatalf("ManualAssign failed: %v", err)
		}
		w := session.Slots[0].Winner
		if w.ParticipantID != replacement.ID {
			t.Error("Slot does not hold the requested participant")
		}
		if w.Method != models.MethodManual {
			t.Errorf("Expected method MANUAL, got %s", w.Method)
		}
		if session.Audit()[0].Action != models.AuditActionManualSelect {
			t.Errorf("Expected MANUAL_SELECT audit action, got %s", session.Audit()[0].Action)
		}
	})

	t.Run("Ineligible participant rejected", func(t *testing.T) {
		session, roster := setup(t)
		blocked := makeParticipant("Blocked", "blocked@example.com", 100, 100)
		blocked.Status = models.ParticipantStatusBlocked
		roster = append(roster, blocked)

		if err := session.ManualAssign(1, blocked.ID, roster); !errors.Is(err, ErrNotEligible) {
			t.Fatalf("Expected ErrNotEligible, got %v", err)
		}
	})

	t.Run("Participant holding another slot rejected", func(t *testing.T) {
		session, roster := setup(t)
		other := session.Slots[1].Winner
		if err := session.ManualAssign(1, other.ParticipantID, roster); !errors.Is(err, ErrNotEligible) {
			t.Fatalf("Expected ErrNotEligible for a duplicate winner, got %v", err)
		}
	})

	t.Run("Reassigning the current occupant allowed", func(t *testing.T) {
		session, roster := setup(t)
		occupant := session.Slots[0].Winner
		if err := session.ManualAssign(1, occupant.ParticipantID, roster); err != nil {
			t.Fatalf("Expected the slot's own occupant to be assignable, got %v", err)
		}
		if session.Slots[0].Winner.Method != models.MethodManual {
			t.Error("Expected the reassignment to be recorded as manual")
		}
	})

	t.Run("Returns to results from the manual view", func(t *testing.T) {
		session, roster := setup(t)
		if err := session.EnterManual(); err != nil {
			t.Fatalf("EnterManual failed: %v", err)
		}
		replacement := pickUnassigned(t, session, roster)
		if err := session.ManualAssign(2, replacement.ID, roster); err != nil {
			t.Fatalf("ManualAssign failed: %v", err)
		}
		if session.State != StateResults {
			t.Errorf("Expected results state, got %s", session.State)
		}
	})

	t.Run("Confirmed slot rejected", func(t *testing.T) {
		session, roster := setup(t)
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("ConfirmSlot failed: %v", err)
		}
		replacement := pickUnassigned(t, session, roster)
		if err := session.ManualAssign(1, replacement.ID, roster); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestSession_Confirmation(t *testing.T) {
	setup := func(t *testing.T) *Session {
		t.Helper()
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 3}})
		if err := session.Configure(2, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		if _, err := session.Draw(makeRoster(10)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		return session
	}

	t.Run("Confirming an empty slot rejected", func(t *testing.T) {
		session := setup(t)
		if err := session.ConfirmSlot(3); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("Double confirm is a no-op", func(t *testing.T) {
		session := setup(t)
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("First confirm failed: %v", err)
		}
		before := len(session.Audit())
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("Second confirm failed: %v", err)
		}
		if len(session.Audit()) != before {
			t.Error("Expected no audit entry for a redundant confirm")
		}
	})

	t.Run("ConfirmAll counts only rolled slots", func(t *testing.T) {
		session := setup(t)
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("ConfirmSlot failed: %v", err)
		}
		confirmed, err := session.ConfirmAll()
		if err != nil {
			t.Fatalf("ConfirmAll failed: %v", err)
		}
		if confirmed != 1 {
			t.Errorf("Expected 1 newly confirmed slot, got %d", confirmed)
		}
		if session.ConfirmedCount() != 2 {
			t.Errorf("Expected 2 confirmed slots total, got %d", session.ConfirmedCount())
		}
	})

	t.Run("ConfirmPartial reopens setup with incremented target", func(t *testing.T) {
		session := setup(t)
		confirmed, err := session.ConfirmPartial()
		if err != nil {
			t.Fatalf("ConfirmPartial failed: %v", err)
		}
		if confirmed != 2 {
			t.Errorf("Expected 2 confirmed, got %d", confirmed)
		}
		if session.State != StateSetup {
			t.Errorf("Expected setup state, got %s", session.State)
		}
		if session.NumberOfWinners != 3 {
			t.Errorf("Expected target 3, got %d", session.NumberOfWinners)
		}
	})

	t.Run("AllConfirmed only when every slot confirmed", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if session.AllConfirmed() {
			t.Error("Expected AllConfirmed false before confirmation")
		}
		if _, err := session.ConfirmAll(); err != nil {
			t.Fatalf("ConfirmAll failed: %v", err)
		}
		if !session.AllConfirmed() {
			t.Error("Expected AllConfirmed true after confirming every slot")
		}
	})
}

func TestSession_RemoveConfirmed(t *testing.T) {
	setup := func(t *testing.T) *Session {
		t.Helper()
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if _, err := session.ConfirmAll(); err != nil {
			t.Fatalf("ConfirmAll failed: %v", err)
		}
		return session
	}

	t.Run("Requires a non-blank justification", func(t *testing.T) {
		session := setup(t)
		if err := session.RemoveConfirmed(1, "   "); !errors.Is(err, ErrJustificationRequired) {
			t.Fatalf("Expected ErrJustificationRequired, got %v", err)
		}
		if session.Slots[0].State() != models.SlotStateConfirmed {
			t.Error("Slot should be untouched after a rejected removal")
		}
	})

	t.Run("Clears the slot and records the justification", func(t *testing.T) {
		session := setup(t)
		removed := session.Slots[0].Winner
		if err := session.RemoveConfirmed(1, "contact details invalid"); err != nil {
			t.Fatalf("RemoveConfirmed failed: %v", err)
		}
		if session.Slots[0].State() != models.SlotStateEmpty {
			t.Errorf("Expected empty slot, got %s", session.Slots[0].State())
		}
		entry := session.Audit()[0]
		if entry.Action != models.AuditActionDisqualify {
			t.Errorf("Expected DISQUALIFY action, got %s", entry.Action)
		}
		if entry.ParticipantID == nil || *entry.ParticipantID != removed.ParticipantID {
			t.Error("Audit entry does not reference the removed participant")
		}
	})

	t.Run("Only confirmed slots removable", func(t *testing.T) {
		session := setup(t)
		if err := session.RemoveConfirmed(1, "first removal"); err != nil {
			t.Fatalf("RemoveConfirmed failed: %v", err)
		}
		if err := session.RemoveConfirmed(1, "again"); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition on an empty slot, got %v", err)
		}
	})
}

func TestSession_UpdateClaimStatus(t *testing.T) {
	setup := func(t *testing.T) *Session {
		t.Helper()
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		return session
	}

	t.Run("Claimed sets the claim date", func(t *testing.T) {
		session := setup(t)
		if err := session.UpdateClaimStatus(1, models.ClaimStatusClaimed); err != nil {
			t.Fatalf("UpdateClaimStatus failed: %v", err)
		}
		w := session.Slots[0].Winner
		if w.ClaimStatus != models.ClaimStatusClaimed {
			t.Errorf("Expected CLAIMED, got %s", w.ClaimStatus)
		}
		if w.ClaimDate.IsZero() {
			t.Error("Expected the claim date to be set")
		}
		if session.Audit()[0].Action != models.AuditActionClaimUpdate {
			t.Errorf("Expected CLAIM_UPDATE action, got %s", session.Audit()[0].Action)
		}
	})

	t.Run("Disqualification recorded under its own action", func(t *testing.T) {
		session := setup(t)
		if err := session.UpdateClaimStatus(2, models.ClaimStatusDisqualified); err != nil {
			t.Fatalf("UpdateClaimStatus failed: %v", err)
		}
		if session.Audit()[0].Action != models.AuditActionDisqualify {
			t.Errorf("Expected DISQUALIFY action, got %s", session.Audit()[0].Action)
		}
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		session := setup(t)
		if err := session.UpdateClaimStatus(1, models.ClaimStatus("LOST")); err == nil {
			t.Fatal("Expected an error for an unknown claim status")
		}
	})

	t.Run("Empty slot rejected", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if err := session.Configure(1, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if err := session.UpdateClaimStatus(2, models.ClaimStatusClaimed); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestSession_SeedConfirmed(t *testing.T) {
	t.Run("Incremental session draws only the delta", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 5}})
		roster := makeRoster(10)
		existing := []*models.Winner{
			NewWinner(roster[0], models.MethodRandom),
			NewWinner(roster[1], models.MethodRandom),
		}
		if err := session.SeedConfirmed(existing); err != nil {
			t.Fatalf("SeedConfirmed failed: %v", err)
		}
		if session.ConfirmedCount() != 2 {
			t.Fatalf("Expected 2 confirmed seeds, got %d", session.ConfirmedCount())
		}
		if session.NumberOfWinners != 3 {
			t.Fatalf("Expected default target 3, got %d", session.NumberOfWinners)
		}

		if err := session.Configure(5, models.MethodRandom); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		outcome, err := session.Draw(roster)
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if outcome.Requested != 3 || outcome.Selected != 3 {
			t.Errorf("Expected exactly 3 new winners, got %+v", outcome)
		}
		for _, w := range session.Winners()[2:] {
			if w.ParticipantID == roster[0].ID || w.ParticipantID == roster[1].ID {
				t.Error("Seeded winner drawn again")
			}
		}
	})

	t.Run("Seeds take slot prize and position", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "Grand", Quota: 1}, {Name: "Minor", Quota: 2}})
		w := NewWinner(makeParticipant("Seed", "seed@example.com", 100, 100), models.MethodRandom)
		if err := session.SeedConfirmed([]*models.Winner{w}); err != nil {
			t.Fatalf("SeedConfirmed failed: %v", err)
		}
		seeded := session.Slots[0].Winner
		if seeded.PrizeName != "Grand" || seeded.Position != 1 {
			t.Errorf("Seed not bound to the first slot: %+v", seeded)
		}
		if !seeded.Confirmed {
			t.Error("Expected the seed to be confirmed")
		}
	})

	t.Run("More seeds than slots rejected", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 1}})
		seeds := []*models.Winner{
			NewWinner(makeParticipant("A", "a@example.com", 100, 100), models.MethodRandom),
			NewWinner(makeParticipant("B", "b@example.com", 100, 100), models.MethodRandom),
		}
		if err := session.SeedConfirmed(seeds); !errors.Is(err, ErrPositionOutOfRange) {
			t.Fatalf("Expected ErrPositionOutOfRange, got %v", err)
		}
	})
}

func TestSession_Views(t *testing.T) {
	session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
	if _, err := session.Draw(makeRoster(5)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	t.Run("Manual and audit views round-trip through results", func(t *testing.T) {
		if err := session.EnterManual(); err != nil {
			t.Fatalf("EnterManual failed: %v", err)
		}
		if err := session.EnterAudit(); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Expected ErrInvalidState entering audit from manual, got %v", err)
		}
		if err := session.BackToResults(); err != nil {
			t.Fatalf("BackToResults failed: %v", err)
		}
		if err := session.EnterAudit(); err != nil {
			t.Fatalf("EnterAudit failed: %v", err)
		}
		if err := session.BackToResults(); err != nil {
			t.Fatalf("BackToResults failed: %v", err)
		}
		if session.State != StateResults {
			t.Errorf("Expected results state, got %s", session.State)
		}
	})

	t.Run("Slot mutation rejected outside results", func(t *testing.T) {
		if err := session.EnterAudit(); err != nil {
			t.Fatalf("EnterAudit failed: %v", err)
		}
		if err := session.ConfirmSlot(1); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("Expected ErrInvalidState, got %v", err)
		}
		if err := session.BackToResults(); err != nil {
			t.Fatalf("BackToResults failed: %v", err)
		}
	})
}

func TestSession_StartOver(t *testing.T) {
	session := newTestSession(t, []models.Prize{{Name: "P", Quota: 4}})
	roster := makeRoster(10)
	if err := session.Configure(2, models.MethodRandom); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if _, err := session.Draw(roster); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if _, err := session.ConfirmAll(); err != nil {
		t.Fatalf("ConfirmAll failed: %v", err)
	}
	if err := session.StartOver(); err != nil {
		t.Fatalf("StartOver failed: %v", err)
	}
	if session.State != StateSetup {
		t.Errorf("Expected setup state, got %s", session.State)
	}
	if session.NumberOfWinners != 4 {
		t.Errorf("Expected target reset to 4, got %d", session.NumberOfWinners)
	}
	if session.ConfirmedCount() != 2 {
		t.Errorf("Confirmed winners must survive start-over, got %d", session.ConfirmedCount())
	}
}

func TestSession_Finalize(t *testing.T) {
	t.Run("Returns copies of confirmed winners only", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 3}})
		if _, err := session.Draw(makeRoster(10)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if err := session.ConfirmSlot(1); err != nil {
			t.Fatalf("ConfirmSlot failed: %v", err)
		}
		if err := session.ConfirmSlot(2); err != nil {
			t.Fatalf("ConfirmSlot failed: %v", err)
		}

		winners, err := session.Finalize()
		if err != nil {
			t.Fatalf("Finalize failed: %v", err)
		}
		if len(winners) != 2 {
			t.Fatalf("Expected 2 finalized winners, got %d", len(winners))
		}
		winners[0].Name = "mutated"
		if session.Slots[0].Winner.Name == "mutated" {
			t.Error("Finalize leaked a reference to the live slot winner")
		}
	})

	t.Run("Nothing confirmed is an error", func(t *testing.T) {
		session := newTestSession(t, []models.Prize{{Name: "P", Quota: 2}})
		if _, err := session.Draw(makeRoster(5)); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		if _, err := session.Finalize(); err == nil {
			t.Fatal("Expected an error when no winner is confirmed")
		}
	})
}
