package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_RunNarrative(t *testing.T) {
	ui, out := newTestSimpleUI()
	ctx := context.Background()
	started := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, ui.Start(ctx, WithRunMode()))
	ui.DisplayRunHeader(ctx, "http://localhost:8000/api", started)
	ui.DisplaySection(ctx, "Skip Pagination - All Products")
	ui.DisplayCheckStarted(ctx, "Get All Products with skip_pagination=true")
	ui.DisplayResult(ctx, m.TestResult{Name: "Get All Products with skip_pagination=true", Passed: true, Details: "Status: 200 | Count: 25"})
	ui.DisplayResult(ctx, m.TestResult{Name: "Skip Pagination Returns Products", Passed: false, Details: "No products returned"})
	ui.Close(ctx)
	ui.Wait(ctx)

	output := out.String()
	assert.Contains(t, output, "🚀 Starting Skip Pagination Tests...\n")
	assert.Contains(t, output, "📡 Backend URL: http://localhost:8000/api\n")
	assert.Contains(t, output, "🕐 Test Started: 2026-05-01 12:30:00\n")
	assert.Contains(t, output, "\n🔍 Testing Skip Pagination - All Products...\n")
	assert.Contains(t, output, "✅ Get All Products with skip_pagination=true - PASSED Status: 200 | Count: 25\n")
	assert.Contains(t, output, "❌ Skip Pagination Returns Products - FAILED No products returned\n")
	assert.NotContains(t, output, "\x1b[")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, out := newTestSimpleUI()
	completed := time.Date(2026, 5, 1, 12, 31, 0, 0, time.UTC)

	ui.DisplaySummary(context.Background(), m.RunSummary{
		Total:       4,
		Passed:      3,
		Failed:      1,
		CompletedAt: completed,
	}, []m.TestResult{{Name: "Skip Pagination Ignores Limit Parameter", Details: "limit may not be ignored"}})

	output := out.String()
	assert.Contains(t, output, "📊 Skip Pagination Test Results Summary:")
	assert.Contains(t, output, "   Total Tests: 4\n")
	assert.Contains(t, output, "   Passed: 3\n")
	assert.Contains(t, output, "   Failed: 1\n")
	assert.Contains(t, output, "   Success Rate: 75.0%\n")
	assert.Contains(t, output, "✅ GOOD - Skip pagination functionality mostly working")
	assert.Contains(t, output, "🕐 Test Completed: 2026-05-01 12:31:00")
	assert.Contains(t, strings.ToUpper(output), "FAILED CHECK")
	assert.Contains(t, output, "Skip Pagination Ignores Limit Parameter")
}

func TestSimpleUI_DisplaySummary_NothingRan(t *testing.T) {
	ui, out := newTestSimpleUI()

	ui.DisplaySummary(context.Background(), m.RunSummary{}, nil)

	output := out.String()
	assert.Contains(t, output, "   Success Rate: 0%\n")
	assert.NotContains(t, output, "POOR")
	assert.NotContains(t, output, "FAILED CHECK")
}

func TestSimpleUI_InterruptAndError(t *testing.T) {
	ui, out := newTestSimpleUI()
	ctx := context.Background()

	ui.DisplayInterrupted(ctx)
	ui.DisplayRunError(ctx, errors.New("boom"))

	assert.Contains(t, out.String(), "⚠️ Tests interrupted by user")
	assert.Contains(t, out.String(), "❌ Unexpected error during testing: boom")
}

func TestSimpleUI_CancelledContextIsSilent(t *testing.T) {
	ui, out := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	ui.DisplayResult(ctx, m.TestResult{Name: "ignored", Passed: true})
	require.ErrorIs(t, ui.DisplaySteps(ctx, nil), context.Canceled)

	assert.Empty(t, out.String())
}

func TestSimpleUI_DisplaySteps(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplaySteps(context.Background(), []m.StepInfo{
		{Title: "Skip Pagination - All Products", Requests: []string{"/products?skip_pagination=true"}},
		{Title: "Search with Skip Pagination", Requests: []string{"/products?search=solar&skip_pagination=true", "/products?search=solar&limit=20"}},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "GET /products?skip_pagination=true")
	assert.Contains(t, output, "GET /products?search=solar&limit=20")
	assert.Contains(t, strings.ToUpper(output), "TOTAL STEPS 2")
	assert.Contains(t, strings.ToUpper(output), "3 REQUESTS")
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, out := newTestSimpleUI()
	ctx := context.Background()

	require.NoError(t, ui.DisplayDiff(ctx, "a.json", "b.json", ""))
	assert.Equal(t, "No differences in pass/fail pattern between a.json and b.json\n", out.String())

	out.Reset()

	require.NoError(t, ui.DisplayDiff(ctx, "a.json", "b.json", "--- a.json\n+++ b.json\n"))
	assert.Equal(t, "--- a.json\n+++ b.json\n", out.String())
}
