// Package model defines the data structures shared by the runner, the UI and the report store.
package model

import "time"

// TestResult is the outcome of a single assertion. It is never mutated after it is recorded.
type TestResult struct {
	Name    string `json:"name" yaml:"name"`
	Passed  bool   `json:"passed" yaml:"passed"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Verdict is the qualitative rating derived from a run's success rate.
type Verdict int

const (
	// VerdictPoor is below 50% success.
	VerdictPoor Verdict = iota
	// VerdictFair is at least 50% success.
	VerdictFair
	// VerdictGood is at least 75% success.
	VerdictGood
	// VerdictExcellent is at least 90% success.
	VerdictExcellent
)

// VerdictFor maps a success rate in percent to a Verdict.
func VerdictFor(rate float64) Verdict {
	switch {
	case rate >= 90:
		return VerdictExcellent
	case rate >= 75:
		return VerdictGood
	case rate >= 50:
		return VerdictFair
	default:
		return VerdictPoor
	}
}

func (v Verdict) String() string {
	switch v {
	case VerdictExcellent:
		return "EXCELLENT"
	case VerdictGood:
		return "GOOD"
	case VerdictFair:
		return "FAIR"
	default:
		return "POOR"
	}
}

// Banner returns the one-line verdict shown under the summary.
func (v Verdict) Banner() string {
	switch v {
	case VerdictExcellent:
		return "🎉 EXCELLENT - Skip pagination functionality working perfectly!"
	case VerdictGood:
		return "✅ GOOD - Skip pagination functionality mostly working"
	case VerdictFair:
		return "⚠️ FAIR - Skip pagination has some issues"
	default:
		return "❌ POOR - Skip pagination functionality needs attention"
	}
}

// RunSummary aggregates the results of one run.
type RunSummary struct {
	Total       int       `json:"total" yaml:"total"`
	Passed      int       `json:"passed" yaml:"passed"`
	Failed      int       `json:"failed" yaml:"failed"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
	Interrupted bool      `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// SuccessRate returns the pass rate in percent, or 0 when nothing ran.
func (s RunSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Passed) / float64(s.Total) * 100
}

// Verdict returns the qualitative rating of the run.
func (s RunSummary) Verdict() Verdict {
	return VerdictFor(s.SuccessRate())
}

// Duration is the wall time between start and completion.
func (s RunSummary) Duration() time.Duration {
	if s.CompletedAt.IsZero() {
		return 0
	}

	return s.CompletedAt.Sub(s.StartedAt)
}
