package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pagecheck.dev/pkg/pagecheck/internal/domain"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

func TestDiffCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Diff", mock.Anything, domain.DiffArgs{
		Base: m.Path("first.json"),
		Head: m.Path("second.yaml"),
	}).Return(nil)

	cmd := newRootCmd()
	cmd.AddCommand(newDiffCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"diff", "first.json", "second.yaml"})

	require.NoError(t, cmd.Execute())
}

func TestDiffCmd_PropagatesError(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	wantErr := errors.New("load base report: missing")

	mockWorkflow.On("Diff", mock.Anything, mock.Anything).Return(wantErr)

	cmd := newRootCmd()
	cmd.AddCommand(newDiffCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"diff", "a.json", "b.json"})

	require.ErrorIs(t, cmd.Execute(), wantErr)
}

func TestDiffCmd_RequiresTwoReports(t *testing.T) {
	withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newDiffCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"diff", "only.json"})

	require.Error(t, cmd.Execute())
}
