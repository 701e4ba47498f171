package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawRecord is the persisted snapshot of a finalized draw session. It is the
// document the winners dashboard reads after a session has been committed.
type DrawRecord struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID       string              `bson:"sessionId" json:"sessionId"`
	Campaign        string              `bson:"campaign" json:"campaign"`
	Criteria        EligibilityCriteria `bson:"criteria" json:"criteria"`
	Slots           []PrizeSlot         `bson:"slots" json:"slots"`
	TotalSlots      int                 `bson:"totalSlots" json:"totalSlots"`
	ConfirmedCount  int                 `bson:"confirmedCount" json:"confirmedCount"`
	FinalizedAt     time.Time           `bson:"finalizedAt" json:"finalizedAt"`
	FinalizedBy     string              `bson:"finalizedBy,omitempty" json:"finalizedBy,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}
