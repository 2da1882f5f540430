package config

import "time"

const (
	// Reputation
	InitialReputation = 1000
	MaxReputation     = 1000
	MinReputation     = 0

	// Ban
	BanThresholdReputation = 500
	BanThresholdFrequency  = 5
	BanFrequencyWindow     = 24 * time.Hour
	BanLevel1Duration      = 24 * time.Hour
	BanLevel2Duration      = 7 * 24 * time.Hour
	BanLevel3Duration      = 30 * 24 * time.Hour
	BanEscalationWindow    = 90 * 24 * time.Hour

	// Pagination
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ComplaintWeights is the reputation penalty applied when a complaint
// against a user is resolved in the complainant's favour.
var ComplaintWeights = map[string]int{
	"Fraudulent Listing":     250,
	"Scam":                   250,
	"Harassment":             150,
	"Misleading Information": 50,
	"Inappropriate Content":  50,
	"Spam":                   20,
	"Other":                  5,
}
