package models

// Prize defines a named prize group within a campaign
type Prize struct {
	Name  string `bson:"name" json:"name"`   // e.g., "iPhone 15", "Gift Card"
	Quota int    `bson:"quota" json:"quota"` // number of slots this prize expands to
}

// SlotState represents the lifecycle state of a prize slot
type SlotState string

const (
	SlotStateEmpty     SlotState = "EMPTY"
	SlotStateRolled    SlotState = "ROLLED"
	SlotStateConfirmed SlotState = "CONFIRMED"
)

// PrizeSlot is one position within a prize group that can hold at most one
// winner. A prize with quota N expands to N independent slots sharing the
// prize name; each slot transitions Empty -> Rolled -> Confirmed on its own.
type PrizeSlot struct {
	Position  int     `bson:"position" json:"position"`   // 1-based across the whole session
	PrizeName string  `bson:"prizeName" json:"prizeName"` // display name of the prize group
	SlotIndex int     `bson:"slotIndex" json:"slotIndex"` // 1-based within the prize group
	Winner    *Winner `bson:"winner,omitempty" json:"winner,omitempty"`
}

// State derives the slot's lifecycle state from its winner.
func (s *PrizeSlot) State() SlotState {
	switch {
	case s.Winner == nil:
		return SlotStateEmpty
	case s.Winner.Confirmed:
		return SlotStateConfirmed
	default:
		return SlotStateRolled
	}
}
