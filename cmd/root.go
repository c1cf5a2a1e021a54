// Package cmd provides the root command and CLI setup for pagecheck.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pagecheck.dev/pkg/pagecheck/internal/adapter"
	"pagecheck.dev/pkg/pagecheck/internal/controller"
	"pagecheck.dev/pkg/pagecheck/internal/domain"
)

var httpAdapter adapter.HTTPAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow

// baseURLFlag is a root-level flag shared by commands that talk to the API.
var baseURLFlag string

// plainFlag forces line-oriented output even on a terminal.
var plainFlag bool

func init() {
	configureRootFlags(rootCmd)

	httpAdapter = adapter.NewLocalHTTPAdapter()
	reportStore = adapter.NewReportStore()

	cobra.OnInitialize(initLogging, initWorkflow)
}

const rootLongDescription = `pagecheck verifies the skip_pagination query parameter of a product listing API.

It sends a fixed sequence of GET requests to the configured base URL, checks
the JSON responses and prints one line per check followed by a summary.

Configuration is read from pagecheck.yaml, PAGECHECK_* environment variables
(a .env file is loaded first) and flags, in increasing order of precedence.`

const runLongDescription = `Run the skip pagination checks against the API at --base-url.

Every check is attempted exactly once and in order; a failing or timed out
request is recorded and the run continues. Interrupting the run (Ctrl+C)
stops it and still prints the summary.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "pagecheck",
		Short:         "Skip pagination integration checks",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds an unattached root command with its persistent flags; tests add subcommands.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&baseURLFlag, baseURLFlagName, "u",
			defaultBaseURL,
			"base URL of the API under test",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(baseURLFlagName), baseURLKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, defaultPlain, "print plain lines instead of the interactive progress view")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(plainFlagName), plainKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func initLogging() {
	configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
}

// initWorkflow builds the workflow once flags are parsed, unless one was injected.
func initWorkflow() {
	if workflow != nil {
		return
	}

	useTUI := !viper.GetBool(plainKey) && controller.IsTTY(os.Stdout)
	ui := controller.NewUI(rootCmd, useTUI)
	workflow = domain.NewWorkflow(httpAdapter, reportStore, ui)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
