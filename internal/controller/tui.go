package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// TUI implements UI using Bubble Tea: finished lines scroll above a spinner
// showing the check in flight.
type TUI struct {
	output  io.Writer
	theme   theme
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, theme: newTheme(output)}
}

type checkStartedMsg string

type doneMsg struct{}

// Start launches the render loop in run mode; other modes print directly.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if newStartConfig(options).mode != ModeRun {
		return nil
	}

	t.program = tea.NewProgram(
		newProgressModel(t.theme),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	t.group = &errgroup.Group{}
	t.group.Go(func() error {
		_, err := t.program.Run()
		return err
	})

	return nil
}

// Close asks the render loop to finish.
func (t *TUI) Close(_ context.Context) {
	if t.program != nil {
		t.program.Send(doneMsg{})
	}
}

// Wait blocks until the render loop has exited.
func (t *TUI) Wait(_ context.Context) {
	if t.group == nil {
		return
	}

	if err := t.group.Wait(); err != nil {
		slog.Error("tui exited with error", "error", err)
	}

	t.program = nil
	t.group = nil
}

// DisplayRunHeader prints the banner, base URL and start time.
func (t *TUI) DisplayRunHeader(_ context.Context, baseURL string, startedAt time.Time) {
	for _, line := range t.theme.headerLines(baseURL, startedAt) {
		t.println(line)
	}
}

// DisplaySection prints a step header.
func (t *TUI) DisplaySection(_ context.Context, title string) {
	t.println(t.theme.sectionLine(title))
}

// DisplayCheckStarted updates the spinner label.
func (t *TUI) DisplayCheckStarted(_ context.Context, name string) {
	if t.program != nil {
		t.program.Send(checkStartedMsg(name))
	}
}

// DisplayResult prints exactly one line per recorded result.
func (t *TUI) DisplayResult(_ context.Context, result m.TestResult) {
	t.println(t.theme.resultLine(result))
}

// DisplayInterrupted reports an operator interrupt.
func (t *TUI) DisplayInterrupted(_ context.Context) {
	t.println(t.theme.interruptedLine())
}

// DisplayRunError reports an unexpected error that stopped the suite.
func (t *TUI) DisplayRunError(_ context.Context, err error) {
	t.println(t.theme.runErrorLine(err))
}

// DisplaySummary prints the totals, verdict and a table of failed checks.
func (t *TUI) DisplaySummary(_ context.Context, summary m.RunSummary, failures []m.TestResult) {
	for _, line := range t.theme.summaryLines(summary) {
		t.println(line)
	}

	if len(failures) > 0 {
		t.println("\n" + renderFailuresTable(failures))
	}
}

// DisplaySteps prints the scripted steps and their requests.
func (t *TUI) DisplaySteps(ctx context.Context, steps []m.StepInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.output, "\n%s", renderStepsTable(steps))

	return err
}

// DisplayDiff prints a unified diff of two reports' pass/fail patterns.
func (t *TUI) DisplayDiff(ctx context.Context, base, head m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		diff = fmt.Sprintf("No differences in pass/fail pattern between %s and %s\n", base, head)
	}

	_, err := fmt.Fprint(t.output, diff)

	return err
}

// println routes through the program while it runs so lines land above the spinner.
func (t *TUI) println(line string) {
	if t.program != nil {
		t.program.Println(line)
		return
	}

	_, _ = fmt.Fprintln(t.output, line)
}

// progressModel renders the spinner for the check in flight.
type progressModel struct {
	spinner spinner.Model
	current string
	done    bool
}

func newProgressModel(th theme) progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(th.faint)),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkStartedMsg:
		pm.current = string(msg)
		return pm, nil

	case doneMsg:
		pm.done = true
		pm.current = ""

		return pm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	if pm.done || pm.current == "" {
		return ""
	}

	return fmt.Sprintf("%s %s\n", pm.spinner.View(), pm.current)
}
