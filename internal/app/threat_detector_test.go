//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizedDetector_DeterministicForSeed(t *testing.T) {
	first := NewRandomizedThreatDetector(42, testLogger())
	second := NewRandomizedThreatDetector(42, testLogger())

	for i := 0; i < 50; i++ {
		a, err := first.Detect(context.Background())
		require.NoError(t, err)
		b, err := second.Detect(context.Background())
		require.NoError(t, err)

		if a == nil {
			assert.Nil(t, b)
			continue
		}
		require.NotNil(t, b)
		assert.Equal(t, a.Title, b.Title)
		assert.Equal(t, a.Severity, b.Severity)
		assert.Equal(t, a.Confidence, b.Confidence)
	}
}

func TestRandomizedDetector_DetectionsWithinBounds(t *testing.T) {
	detector := NewRandomizedThreatDetector(7, testLogger())

	titles := map[string]bool{}
	for _, candidate := range threatCandidates {
		titles[candidate.Title] = true
	}

	detections := 0
	for i := 0; i < 200; i++ {
		threat, err := detector.Detect(context.Background())
		require.NoError(t, err)
		if threat == nil {
			continue
		}
		detections++

		assert.True(t, titles[threat.Title], "unexpected title %q", threat.Title)
		assert.GreaterOrEqual(t, threat.Severity, threats.SeverityMin)
		assert.LessOrEqual(t, threat.Severity, threats.SeverityMax)
		assert.GreaterOrEqual(t, threat.Confidence, 0.5)
		assert.LessOrEqual(t, threat.Confidence, 1.0)
		assert.True(t, threat.Active)
		assert.NotEmpty(t, threat.ID)
		assert.NotEmpty(t, threat.AffectedAlgorithms)
		assert.True(t, threat.PredictedImpactDate.After(threat.CreatedAt))
	}

	// With a 30% detection rate over 200 draws both outcomes must occur.
	assert.Greater(t, detections, 0)
	assert.Less(t, detections, 200)
}
