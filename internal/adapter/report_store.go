package adapter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// ReportStore persists run reports and loads them back for comparison.
type ReportStore interface {
	SaveReport(path m.Path, format m.ReportFormat, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

type reportStore struct{}

// NewReportStore returns a file backed ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (s *reportStore) SaveReport(path m.Path, format m.ReportFormat, report m.Report) error {
	data, err := encodeReport(format, report)
	if err != nil {
		return err
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create report directory", "dir", dir, "error", err)
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		slog.Error("failed to write report", "path", path, "error", err)
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Debug("saved report", "path", path, "format", format, "results", len(report.Results))

	return nil
}

func (s *reportStore) LoadReport(path m.Path) (m.Report, error) {
	var report m.Report

	data, err := os.ReadFile(string(path))
	if err != nil {
		return report, fmt.Errorf("failed to read report: %w", err)
	}

	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".json":
		err = json.Unmarshal(data, &report)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &report)
	default:
		return report, fmt.Errorf("%w: cannot load %s", m.ErrUnsupportedFormat, path)
	}

	if err != nil {
		slog.Error("failed to decode report", "path", path, "error", err)
		return report, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}

func encodeReport(format m.ReportFormat, report m.Report) ([]byte, error) {
	switch format {
	case m.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}

		return data, nil
	case m.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}

		return data, nil
	case m.FormatJUnit:
		data, err := xml.MarshalIndent(newJUnitSuite(report), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JUnit report: %w", err)
		}

		return append([]byte(xml.Header), data...), nil
	}

	return nil, fmt.Errorf("%w: %q", m.ErrUnsupportedFormat, format)
}

type junitSuite struct {
	XMLName   xml.Name    `xml:"testsuite"`
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Time      float64     `xml:"time,attr"`
	Timestamp string      `xml:"timestamp,attr"`
	Hostname  string      `xml:"hostname,attr,omitempty"`
	TestCases []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
}

func newJUnitSuite(report m.Report) junitSuite {
	suite := junitSuite{
		Name:      report.Suite,
		Tests:     report.Summary.Total,
		Failures:  report.Summary.Failed,
		Time:      report.Summary.Duration().Seconds(),
		Timestamp: report.Summary.StartedAt.Format("2006-01-02T15:04:05"),
		Hostname:  report.BaseURL,
		TestCases: make([]junitCase, 0, len(report.Results)),
	}

	for _, result := range report.Results {
		tc := junitCase{Name: result.Name, ClassName: report.Suite}
		if result.Passed {
			tc.SystemOut = result.Details
		} else {
			tc.Failure = &junitFailure{Message: result.Details}
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	return suite
}
