package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantStatus represents the account status of a participant
type ParticipantStatus string

const (
	ParticipantStatusActive  ParticipantStatus = "ACTIVE"
	ParticipantStatusBlocked ParticipantStatus = "BLOCKED"
)

// Participant represents one entrant in a campaign roster. Records are
// created by roster import and read-only from the draw engine's point of view.
type Participant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Country      string             `bson:"country,omitempty" json:"country,omitempty"`
	QualityScore int                `bson:"qualityScore" json:"qualityScore"` // 0-100
	Engagement   int                `bson:"engagement" json:"engagement"`     // 0-100
	Entries      int                `bson:"entries" json:"entries"`
	Status       ParticipantStatus  `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
