package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pagecheck.dev/pkg/pagecheck/internal/adapter"
	"pagecheck.dev/pkg/pagecheck/internal/controller"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

const previewLimit = 100

// Runner issues named HTTP checks against one base URL and keeps the ordered result log.
// It is used from a single goroutine.
type Runner struct {
	baseURL string
	timeout time.Duration
	http    adapter.HTTPAdapter
	ui      controller.UI

	results []m.TestResult
	passed  int
}

// NewRunner constructs a Runner. A non-positive timeout falls back to the adapter default.
func NewRunner(baseURL string, timeout time.Duration, httpAdapter adapter.HTTPAdapter, ui controller.UI) *Runner {
	return &Runner{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    httpAdapter,
		ui:      ui,
	}
}

// BaseURL returns the normalised base URL.
func (r *Runner) BaseURL() string {
	return r.baseURL
}

// Execute performs one request and records whether its status matched.
// Transport errors are recorded as failures; nothing is recorded once ctx is cancelled.
func (r *Runner) Execute(ctx context.Context, name, method, path string, expectedStatus int, body any) (bool, *m.Response) {
	if ctx.Err() != nil {
		return false, nil
	}

	r.ui.DisplayCheckStarted(ctx, name)

	resp, err := r.http.Do(ctx, m.Request{
		Method:  method,
		URL:     r.url(path),
		Body:    body,
		Timeout: r.timeout,
	})
	if err != nil {
		if ctx.Err() != nil {
			slog.Debug("check abandoned", "name", name, "error", err)
			return false, nil
		}

		return r.Record(ctx, name, false, fmt.Sprintf("Exception: %v", err)), nil
	}

	passed := resp.StatusCode == expectedStatus
	slog.Debug("check response", "name", name, "status", resp.StatusCode, "expected", expectedStatus, "elapsed", resp.Elapsed)
	details := fmt.Sprintf("Status: %d", resp.StatusCode)

	if passed {
		details += successDetails(resp)
	} else {
		details += fmt.Sprintf(" | Expected: %d", expectedStatus) + failureDetails(resp)
	}

	return r.Record(ctx, name, passed, details), resp
}

// Record appends a result, updates the tally and emits one line. It returns passed.
func (r *Runner) Record(ctx context.Context, name string, passed bool, details string) bool {
	result := m.TestResult{Name: name, Passed: passed, Details: details}

	r.results = append(r.results, result)
	if passed {
		r.passed++
	}

	slog.Debug("check recorded", "name", name, "passed", passed)
	// A recorded result is always shown, even if the run was interrupted meanwhile.
	r.ui.DisplayResult(context.WithoutCancel(ctx), result)

	return passed
}

// TestsRun is the number of recorded results.
func (r *Runner) TestsRun() int {
	return len(r.results)
}

// TestsPassed is the number of passing results.
func (r *Runner) TestsPassed() int {
	return r.passed
}

// Results returns a copy of the ordered result log.
func (r *Runner) Results() []m.TestResult {
	out := make([]m.TestResult, len(r.results))
	copy(out, r.results)

	return out
}

// Failures returns the failing results in order.
func (r *Runner) Failures() []m.TestResult {
	var out []m.TestResult

	for _, result := range r.results {
		if !result.Passed {
			out = append(out, result)
		}
	}

	return out
}

// Summary derives the aggregate counts.
func (r *Runner) Summary() m.RunSummary {
	return m.RunSummary{
		Total:  r.TestsRun(),
		Passed: r.TestsPassed(),
		Failed: r.TestsRun() - r.TestsPassed(),
	}
}

func (r *Runner) url(path string) string {
	if path == "" {
		return r.baseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return r.baseURL + path
}

func successDetails(resp *m.Response) string {
	v, err := resp.JSON()
	if err != nil {
		return fmt.Sprintf(" | Response: %s...", truncate(string(resp.Body), previewLimit))
	}

	if items, ok := v.([]any); ok {
		return fmt.Sprintf(" | Count: %d", len(items))
	}

	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(" | Response: %s...", truncate(string(resp.Body), previewLimit))
	}

	return fmt.Sprintf(" | Response: %s...", truncate(string(pretty), previewLimit))
}

func failureDetails(resp *m.Response) string {
	v, err := resp.JSON()
	if err != nil {
		return fmt.Sprintf(" | Error: %s", truncate(string(resp.Body), previewLimit))
	}

	compact, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(" | Error: %v", v)
	}

	return fmt.Sprintf(" | Error: %s", compact)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

// describeDecodeError renders a decode failure for a result's details.
func describeDecodeError(err error) string {
	if errors.Is(err, m.ErrNotList) {
		return "Response is not a list"
	}

	return err.Error()
}
