package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// SimpleUI implements UI by writing plain lines to the cobra command's output.
type SimpleUI struct {
	cmd   *cobra.Command
	theme theme
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, theme: newTheme(cmd.OutOrStdout())}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayRunHeader prints the banner, base URL and start time.
func (s *SimpleUI) DisplayRunHeader(ctx context.Context, baseURL string, startedAt time.Time) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, line := range s.theme.headerLines(baseURL, startedAt) {
		s.println(line)
	}
}

// DisplaySection prints a step header.
func (s *SimpleUI) DisplaySection(ctx context.Context, title string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(s.theme.sectionLine(title))
}

// DisplayCheckStarted is a no-op; plain output only reports finished checks.
func (s *SimpleUI) DisplayCheckStarted(_ context.Context, _ string) {}

// DisplayResult prints exactly one line per recorded result.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.TestResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(s.theme.resultLine(result))
}

// DisplayInterrupted reports an operator interrupt.
func (s *SimpleUI) DisplayInterrupted(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.println(s.theme.interruptedLine())
}

// DisplayRunError reports an unexpected error that stopped the suite.
func (s *SimpleUI) DisplayRunError(ctx context.Context, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.println(s.theme.runErrorLine(err))
}

// DisplaySummary prints the totals, verdict and a table of failed checks.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.RunSummary, failures []m.TestResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, line := range s.theme.summaryLines(summary) {
		s.println(line)
	}

	if len(failures) > 0 {
		s.printf("\n%s", renderFailuresTable(failures))
	}
}

// DisplaySteps prints the scripted steps and their requests.
func (s *SimpleUI) DisplaySteps(ctx context.Context, steps []m.StepInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderStepsTable(steps))

	return nil
}

// DisplayDiff prints a unified diff of two reports' pass/fail patterns.
func (s *SimpleUI) DisplayDiff(ctx context.Context, base, head m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("No differences in pass/fail pattern between %s and %s\n", base, head)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

func (s *SimpleUI) println(line string) {
	s.printf("%s\n", line)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
