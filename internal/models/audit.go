package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction is the kind of a recorded draw-session action
type AuditAction string

const (
	AuditActionDraw         AuditAction = "DRAW"
	AuditActionReroll       AuditAction = "REROLL"
	AuditActionManualSelect AuditAction = "MANUAL_SELECT"
	AuditActionClaimUpdate  AuditAction = "CLAIM_UPDATE"
	AuditActionDisqualify   AuditAction = "DISQUALIFY"
)

// AuditLogEntry is one immutable record in a session's audit trail.
// Entries are only ever appended, never mutated or deleted.
type AuditLogEntry struct {
	ID            string              `bson:"id" json:"id"` // uuid
	DrawID        primitive.ObjectID  `bson:"drawId,omitempty" json:"drawId,omitempty"`
	Timestamp     time.Time           `bson:"timestamp" json:"timestamp"`
	Action        AuditAction         `bson:"action" json:"action"`
	Detail        string              `bson:"detail" json:"detail"`
	ParticipantID *primitive.ObjectID `bson:"participantId,omitempty" json:"participantId,omitempty"`
	Position      int                 `bson:"position,omitempty" json:"position,omitempty"` // 0 when not slot-scoped
}
