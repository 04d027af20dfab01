//go:build unit
// +build unit

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedThreatLevel_StaysWithinUnitInterval(t *testing.T) {
	source := NewSimulatedThreatLevel(3)

	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 96; i++ {
		level := source.Current(at)
		assert.GreaterOrEqual(t, level, 0.0)
		assert.LessOrEqual(t, level, 1.0)
		at = at.Add(15 * time.Minute)
	}
}

func TestSimulatedThreatLevel_DeterministicForSeed(t *testing.T) {
	first := NewSimulatedThreatLevel(11)
	second := NewSimulatedThreatLevel(11)

	at := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	for i := 0; i < 24; i++ {
		assert.Equal(t, first.Current(at), second.Current(at))
		at = at.Add(time.Hour)
	}
}
