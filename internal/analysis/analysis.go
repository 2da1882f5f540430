// Package analysis grades complaints by how much damage the reported behaviour does.
package analysis

import "estatehub/backend/internal/config"

// GetWeight returns the severity weight for a complaint type.
// It returns 0 if the complaint type is not recognized.
func GetWeight(complaintType string) int {
	return config.ComplaintWeights[complaintType]
}

// Severity buckets a weight for display in moderator alerts.
func Severity(weight int) string {
	switch {
	case weight >= 250:
		return "critical"
	case weight >= 50:
		return "medium"
	case weight > 0:
		return "low"
	default:
		return "none"
	}
}
