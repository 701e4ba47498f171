package draw

import (
	"strings"

	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComputeEligible returns the subset of participants passing every criteria
// check: account status, quality score, optional engagement threshold, banned
// emails/domains, and - when PreventDuplicateWinners is set - the exclude set
// of already-selected participant ids.
//
// Pure function: no side effects, deterministic for identical inputs. An
// empty result is a valid outcome, not an error; callers decide how to react
// to a zero-eligible pool.
func ComputeEligible(participants []*models.Participant, criteria models.EligibilityCriteria, exclude map[primitive.ObjectID]bool) []*models.Participant {
	eligible := make([]*models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Status == models.ParticipantStatusBlocked {
			continue
		}
		if p.QualityScore < criteria.MinQualityScore {
			continue
		}
		if criteria.MinEngagement != nil && p.Engagement < *criteria.MinEngagement {
			continue
		}
		if criteria.PreventDuplicateWinners && exclude[p.ID] {
			continue
		}
		if emailBanned(p.Email, criteria) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

// emailBanned checks the banned-email substrings (case-insensitive) and the
// banned-domain suffixes ("spam.com" also bans "mail.spam.com").
func emailBanned(email string, criteria models.EligibilityCriteria) bool {
	lower := strings.ToLower(email)
	for _, banned := range criteria.BannedEmails {
		b := strings.ToLower(strings.TrimSpace(banned))
		if b == "" {
			continue
		}
		if strings.Contains(lower, b) {
			return true
		}
	}
	if len(criteria.BannedDomains) == 0 {
		return false
	}
	at := strings.LastIndex(lower, "@")
	if at < 0 {
		return false
	}
	domain := lower[at+1:]
	for _, banned := range criteria.BannedDomains {
		b := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(banned, "@")))
		if b == "" {
			continue
		}
		if domain == b || strings.HasSuffix(domain, "."+b) {
			return true
		}
	}
	return false
}
