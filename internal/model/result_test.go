package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want Verdict
	}{
		{"perfect", 100, VerdictExcellent},
		{"excellent boundary", 90, VerdictExcellent},
		{"just below excellent", 89.9, VerdictGood},
		{"good boundary", 75, VerdictGood},
		{"fair boundary", 50, VerdictFair},
		{"just below fair", 49.9, VerdictPoor},
		{"nothing passed", 0, VerdictPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictFor(tt.rate))
		})
	}
}

func TestVerdict_Banner(t *testing.T) {
	assert.Contains(t, VerdictExcellent.Banner(), "EXCELLENT")
	assert.Contains(t, VerdictGood.Banner(), "GOOD")
	assert.Contains(t, VerdictFair.Banner(), "FAIR")
	assert.Contains(t, VerdictPoor.Banner(), "POOR")
	assert.Equal(t, "POOR", Verdict(42).String())
}

func TestRunSummary_SuccessRate(t *testing.T) {
	assert.Zero(t, RunSummary{}.SuccessRate())
	assert.InDelta(t, 75.0, RunSummary{Total: 4, Passed: 3, Failed: 1}.SuccessRate(), 0.001)
	assert.Equal(t, VerdictGood, RunSummary{Total: 4, Passed: 3, Failed: 1}.Verdict())
	assert.Equal(t, VerdictPoor, RunSummary{}.Verdict())
}

func TestRunSummary_Duration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Zero(t, RunSummary{StartedAt: start}.Duration())
	assert.Equal(t, 3*time.Second, RunSummary{StartedAt: start, CompletedAt: start.Add(3 * time.Second)}.Duration())
}
