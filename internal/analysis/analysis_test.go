package analysis_test

import (
	"estatehub/backend/internal/analysis"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWeight(t *testing.T) {
	assert.Equal(t, 250, analysis.GetWeight("Fraudulent Listing"))
	assert.Equal(t, 20, analysis.GetWeight("Spam"))
	assert.Equal(t, 0, analysis.GetWeight("Unknown"))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "critical", analysis.Severity(analysis.GetWeight("Scam")))
	assert.Equal(t, "medium", analysis.Severity(analysis.GetWeight("Harassment")))
	assert.Equal(t, "low", analysis.Severity(analysis.GetWeight("Spam")))
	assert.Equal(t, "none", analysis.Severity(0))
}
