package draw

import (
	"time"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawWinners selects up to count winners from the eligible pool using the
// given method. The pool shrinks as winners are drawn, so no participant is
// selected twice within one call. When count exceeds the pool size the second
// return value is the shortfall - the number of requested winners that could
// not be filled; the caller decides whether partial fulfilment is acceptable.
func DrawWinners(eligible []*models.Participant, count int, method models.SelectionMethod, rng Rand) ([]*models.Winner, int) {
	if count <= 0 {
		return nil, 0
	}

	var picked []*models.Participant
	switch method {
	case models.MethodWeighted:
		picked = drawWeighted(eligible, count, rng)
	default:
		picked = drawUniform(eligible, count, rng)
	}

	winners := make([]*models.Winner, 0, len(picked))
	for _, p := range picked {
		winners = append(winners, NewWinner(p, method))
	}
	return winners, count - len(winners)
}

// NewWinner builds an unconfirmed winner record for a participant.
func NewWinner(p *models.Participant, method models.SelectionMethod) *models.Winner {
	return &models.Winner{
		ParticipantID: p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Method:        method,
		SelectedAt:    time.Now(),
		ClaimStatus:   models.ClaimStatusPending,
	}
}

// ManualPick validates an explicit manual selection against the eligible pool
// and returns the winner record, or ErrNotEligible when the participant is
// not in the pool.
func ManualPick(eligible []*models.Participant, participantID primitive.ObjectID) (*models.Winner, error) {
	for _, p := range eligible {
		if p.ID == participantID {
			return NewWinner(p, models.MethodManual), nil
		}
	}
	return nil, ErrNotEligible
}

// drawUniform samples uniformly without replacement.
func drawUniform(pool []*models.Participant, count int, rng Rand) []*models.Participant {
	remaining := make([]*models.Participant, len(pool))
	copy(remaining, pool)

	var picked []*models.Participant
	for len(picked) < count && len(remaining) > 0 {
		i := rng.Intn(len(remaining))
		picked = append(picked, remaining[i])
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return picked
}

// drawWeighted samples without replacement from a pool where each participant
// appears once per entry, so a participant with N entries is N times as
// likely to be drawn as one with a single entry. Every occurrence of a
// selected participant is removed from the pool before the next pick.
func drawWeighted(pool []*models.Participant, count int, rng Rand) []*models.Participant {
	weighted := buildWeightedPool(pool)

	var picked []*models.Participant
	for len(picked) < count && len(weighted) > 0 {
		winner := weighted[rng.Intn(len(weighted))]
		picked = append(picked, winner)

		remaining := weighted[:0]
		for _, p := range weighted {
			if p.ID != winner.ID {
				remaining = append(remaining, p)
			}
		}
		weighted = remaining
	}
	return picked
}

// buildWeightedPool repeats each participant once per entry. Participants
// with zero recorded entries still get a single ticket so they are never
// silently dropped from the pool.
func buildWeightedPool(pool []*models.Participant) []*models.Participant {
	var weighted []*models.Participant
	for _, p := range pool {
		weight := p.Entries
		if weight <= 0 {
			weight = 1
		}
		for i := 0; i < weight; i++ {
			weighted = append(weighted, p)
		}
	}
	return weighted
}
