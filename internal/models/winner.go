package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectionMethod identifies how a winner was picked
type SelectionMethod string

const (
	MethodRandom   SelectionMethod = "RANDOM"
	MethodWeighted SelectionMethod = "WEIGHTED"
	MethodManual   SelectionMethod = "MANUAL"
	MethodReroll   SelectionMethod = "REROLL"
)

// ClaimStatus represents the claim state of a winner's prize
type ClaimStatus string

const (
	ClaimStatusPending      ClaimStatus = "PENDING"
	ClaimStatusClaimed      ClaimStatus = "CLAIMED"
	ClaimStatusUnclaimed    ClaimStatus = "UNCLAIMED"
	ClaimStatusDisqualified ClaimStatus = "DISQUALIFIED"
)

// ValidClaimStatus reports whether s is one of the known claim statuses.
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusClaimed, ClaimStatusUnclaimed, ClaimStatusDisqualified:
		return true
	}
	return false
}

// Winner represents a participant assigned to a prize slot. Name and email are
// denormalized from the participant record at selection time so finalized
// winner lists stay readable even if the roster changes afterwards.
type Winner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawID        primitive.ObjectID `bson:"drawId,omitempty" json:"drawId,omitempty"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PrizeName     string             `bson:"prizeName,omitempty" json:"prizeName,omitempty"`
	Position      int                `bson:"position,omitempty" json:"position,omitempty"`
	Method        SelectionMethod    `bson:"method" json:"method"`
	SelectedAt    time.Time          `bson:"selectedAt" json:"selectedAt"`
	RerollCount   int                `bson:"rerollCount" json:"rerollCount"`
	Confirmed     bool               `bson:"confirmed" json:"confirmed"`
	ClaimStatus   ClaimStatus        `bson:"claimStatus" json:"claimStatus"`
	ClaimDate     time.Time          `bson:"claimDate,omitempty" json:"claimDate,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
