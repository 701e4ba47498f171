package models

import "errors"

// DefaultMinQualityScore is applied when a session is created without an
// explicit quality threshold.
const DefaultMinQualityScore = 70

// EligibilityCriteria is the rule set applied when computing the eligible
// pool for a draw. Configured once per session and treated as immutable
// during a single selection operation.
type EligibilityCriteria struct {
	MinQualityScore         int      `bson:"minQualityScore" json:"minQualityScore"`
	MinEngagement           *int     `bson:"minEngagement,omitempty" json:"minEngagement,omitempty"`
	PreventDuplicateWinners bool     `bson:"preventDuplicateWinners" json:"preventDuplicateWinners"`
	BannedEmails            []string `bson:"bannedEmails,omitempty" json:"bannedEmails,omitempty"`
	BannedDomains           []string `bson:"bannedDomains,omitempty" json:"bannedDomains,omitempty"`
}

// Validate rejects malformed criteria at the boundary.
func (c *EligibilityCriteria) Validate() error {
	if c.MinQualityScore < 0 || c.MinQualityScore > 100 {
		return errors.New("minQualityScore must be between 0 and 100")
	}
	if c.MinEngagement != nil && (*c.MinEngagement < 0 || *c.MinEngagement > 100) {
		return errors.New("minEngagement must be between 0 and 100")
	}
	return nil
}
