package model

import "fmt"

// ReportFormat selects the serialisation of a saved report.
type ReportFormat string

const (
	// FormatJSON writes an indented JSON document.
	FormatJSON ReportFormat = "json"
	// FormatYAML writes a YAML document.
	FormatYAML ReportFormat = "yaml"
	// FormatJUnit writes a JUnit XML test suite. It cannot be loaded back.
	FormatJUnit ReportFormat = "junit"
)

// ErrUnsupportedFormat is returned for unknown report formats.
var ErrUnsupportedFormat = fmt.Errorf("unsupported report format")

// ParseReportFormat validates a user supplied format name.
func ParseReportFormat(value string) (ReportFormat, error) {
	switch ReportFormat(value) {
	case FormatJSON, FormatYAML, FormatJUnit:
		return ReportFormat(value), nil
	case "yml":
		return FormatYAML, nil
	case "xml":
		return FormatJUnit, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// Report is the persisted form of one run.
type Report struct {
	Suite   string       `json:"suite" yaml:"suite"`
	BaseURL string       `json:"base_url" yaml:"base_url"`
	Summary RunSummary   `json:"summary" yaml:"summary"`
	Results []TestResult `json:"results" yaml:"results"`
}
