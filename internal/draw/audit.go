package draw

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
)

// AuditLog is the append-only record of every state-mutating action taken in
// a draw session. New entries are inserted at the head so iteration order is
// most-recent-first; no entry is ever mutated or removed.
type AuditLog struct {
	entries []*models.AuditLogEntry
}

// Append records an action and returns the new entry. It always succeeds and
// assigns the entry a fresh id and the current timestamp. participantID may
// be nil and position zero when the action is not scoped to a single slot.
func (l *AuditLog) Append(action models.AuditAction, detail string, participantID *primitive.ObjectID, position int) *models.AuditLogEntry {
	entry := &models.AuditLogEntry{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Action:        action,
		Detail:        detail,
		ParticipantID: participantID,
		Position:      position,
	}
	l.entries = append([]*models.AuditLogEntry{entry}, l.entries...)
	return entry
}

// Entries returns a copy of the log, most recent first.
func (l *AuditLog) Entries() []*models.AuditLogEntry {
	out := make([]*models.AuditLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *AuditLog) Len() int { return len(l.entries) }
