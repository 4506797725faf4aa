package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRisk(t *testing.T) {
	tests := []struct {
		current, latest string
		want            RiskLevel
	}{
		{"2.31.0", "2.31.0", RiskUpToDate},
		{"2.0", "2.0.0", RiskUpToDate},
		{"1.1.2", "2.0.0", RiskHigh},
		{"3.1.0", "3.2.0", RiskMedium},
		{"3.1.0", "3.1.5", RiskLow},
		{"3.0.0", "2.9.9", RiskUnknown},
		{"2.5.0", "2.4.9", RiskUnknown},
		{"3.0.0", "2.5.0", RiskUnknown}, // major down, minor up
		{"2.8.2", "2.9.0.post0", RiskMedium},
		{"2023.1.0", "2024.1.1.post1", RiskHigh},
		{"1.2.3.4", "1.2.4.0", RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.latest, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateRisk(tt.current, tt.latest))
		})
	}
}

func TestExplain(t *testing.T) {
	assert.Contains(t, Explain(RiskHigh, "1.1.2", "2.0.0"), "Major version upgrade (1.x → 2.x)")
	assert.Contains(t, Explain(RiskMedium, "3.1.0", "3.2.0"), "Minor version upgrade (3.1.x → 3.2.x)")
	assert.Contains(t, Explain(RiskLow, "3.1.0", "3.1.5"), "Patch version upgrade (3.1.0 → 3.1.5)")
	assert.Contains(t, Explain(RiskUpToDate, "1.0", "1.0"), "latest version")
	assert.Contains(t, Explain(RiskUnknown, "3.0.0", "2.9.9"), "Your version (3.0.0) appears newer than PyPI (2.9.9)")
	assert.Equal(t, "Unable to determine risk level.", Explain(RiskLevel("bogus"), "1", "1"))
}

func TestRiskLevel_Normalize(t *testing.T) {
	for _, l := range Levels {
		assert.Equal(t, l, l.Normalize())
	}
	assert.Equal(t, RiskUnknown, RiskLevel("CRITICAL").Normalize())
	assert.Equal(t, RiskUnknown, RiskLevel("").Normalize())
	assert.Equal(t, RiskUnknown, RiskLevel("high").Normalize())
}
