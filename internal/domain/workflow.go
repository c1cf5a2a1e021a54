// Package domain holds the check runner, the skip pagination scenario and the
// workflow that drives them from the CLI.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"pagecheck.dev/pkg/pagecheck/internal/adapter"
	"pagecheck.dev/pkg/pagecheck/internal/controller"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// ErrUnexpected wraps a panic or error escaping the suite.
var ErrUnexpected = errors.New("unexpected error during testing")

// RunArgs contains the arguments for running the suite.
type RunArgs struct {
	BaseURL        string
	RequestTimeout time.Duration
	Suite          SuiteOptions
	ReportPath     m.Path
	ReportFormat   m.ReportFormat
}

// ListArgs contains the arguments for listing the scripted steps.
type ListArgs struct {
	Suite SuiteOptions
}

// DiffArgs names two saved reports to compare.
type DiffArgs struct {
	Base m.Path
	Head m.Path
}

// Workflow defines the top-level operations behind the CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.RunSummary, error)
	List(ctx context.Context, args ListArgs) error
	Diff(ctx context.Context, args DiffArgs) error
}

type workflow struct {
	adapter.HTTPAdapter
	adapter.ReportStore
	ui  controller.UI
	now func() time.Time
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(httpAdapter adapter.HTTPAdapter, reportStore adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		HTTPAdapter: httpAdapter,
		ReportStore: reportStore,
		ui:          ui,
		now:         time.Now,
	}
}

// Run executes the suite, prints the summary whatever happened and optionally saves a report.
// An interrupted or aborted suite is not an error; it is reflected in the summary.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.RunSummary, error) {
	// The summary is still printed after an interrupt, so output uses a context that outlives ctx.
	outCtx := context.WithoutCancel(ctx)

	if err := w.ui.Start(outCtx, controller.WithRunMode()); err != nil {
		return m.RunSummary{}, fmt.Errorf("start ui: %w", err)
	}

	defer func() {
		w.ui.Close(outCtx)
		w.ui.Wait(outCtx)
	}()

	runner := NewRunner(args.BaseURL, args.RequestTimeout, w.HTTPAdapter, w.ui)
	suite := NewSkipPaginationSuite(runner, args.Suite)

	startedAt := w.now()
	w.ui.DisplayRunHeader(outCtx, runner.BaseURL(), startedAt)
	slog.Info("starting run", "baseURL", runner.BaseURL(), "timeout", args.RequestTimeout)

	runErr := runGuarded(ctx, suite)

	summary := runner.Summary()
	summary.StartedAt = startedAt

	switch {
	case runErr == nil:
	case errors.Is(runErr, ErrInterrupted):
		summary.Interrupted = true
		w.ui.DisplayInterrupted(outCtx)
	default:
		summary.Error = runErr.Error()
		w.ui.DisplayRunError(outCtx, runErr)
	}

	summary.CompletedAt = w.now()
	w.ui.DisplaySummary(outCtx, summary, runner.Failures())

	slog.Info("run finished", "total", summary.Total, "passed", summary.Passed,
		"failed", summary.Failed, "interrupted", summary.Interrupted)

	if args.ReportPath == "" {
		return summary, nil
	}

	report := m.Report{
		Suite:   SuiteName,
		BaseURL: runner.BaseURL(),
		Summary: summary,
		Results: runner.Results(),
	}

	if err := w.SaveReport(args.ReportPath, args.ReportFormat, report); err != nil {
		return summary, fmt.Errorf("save report: %w", err)
	}

	return summary, nil
}

// runGuarded turns a panic inside the suite into ErrUnexpected.
func runGuarded(ctx context.Context, suite *SkipPaginationSuite) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("suite panicked", "panic", r)
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	return suite.Run(ctx)
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.ui.Start(ctx, controller.WithListMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}

	defer func() {
		w.ui.Close(ctx)
		w.ui.Wait(ctx)
	}()

	return w.ui.DisplaySteps(ctx, NewSkipPaginationSuite(nil, args.Suite).StepInfos())
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	base, err := w.LoadReport(args.Base)
	if err != nil {
		return fmt.Errorf("load base report: %w", err)
	}

	head, err := w.LoadReport(args.Head)
	if err != nil {
		return fmt.Errorf("load head report: %w", err)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        outcomeLines(base.Results),
		B:        outcomeLines(head.Results),
		FromFile: string(args.Base),
		ToFile:   string(args.Head),
		Context:  1,
	})
	if err != nil {
		return fmt.Errorf("diff reports: %w", err)
	}

	if err := w.ui.Start(ctx, controller.WithDiffMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}

	defer func() {
		w.ui.Close(ctx)
		w.ui.Wait(ctx)
	}()

	return w.ui.DisplayDiff(ctx, args.Base, args.Head, diff)
}

// outcomeLines renders the pass/fail pattern of a result log, one line per check.
// Details are left out because they carry counts and timings that vary between runs.
func outcomeLines(results []m.TestResult) []string {
	lines := make([]string, 0, len(results))

	for _, result := range results {
		status := "FAIL"
		if result.Passed {
			status = "PASS"
		}

		lines = append(lines, fmt.Sprintf("%s %s\n", status, strings.TrimSpace(result.Name)))
	}

	return lines
}
