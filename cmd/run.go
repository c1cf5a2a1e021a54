package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pagecheck.dev/pkg/pagecheck/internal/domain"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// ErrChecksFailed is returned by run when --fail-on-failure is set and a check failed.
var ErrChecksFailed = errors.New("checks failed")

var runTimeoutFlag string
var runSlowThresholdFlag string
var runSearchTermsFlag []string
var runReportFlag string
var runFormatFlag string
var runFailOnFailureFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the skip pagination checks",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := runArgsFromConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := workflow.Run(ctx, args)
			if err != nil {
				return err
			}

			if viper.GetBool(failOnFailureKey) && summary.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrChecksFailed, summary.Failed, summary.Total)
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runTimeoutFlag, timeoutFlagName, defaultTimeout.String(), "timeout of each request (duration or seconds)")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutKey)

	cmd.Flags().StringVar(&runSlowThresholdFlag, slowThresholdFlagName, defaultSlowThreshold.String(), "slowest acceptable unpaginated listing")
	bindFlagToConfig(cmd.Flags().Lookup(slowThresholdFlagName), slowThresholdKey)

	cmd.Flags().StringArrayVar(&runSearchTermsFlag, searchTermFlagName, domain.DefaultSearchTerms, "search term to check (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(searchTermFlagName), searchTermsKey)

	cmd.Flags().StringVarP(&runReportFlag, reportFlagName, "r", "", "write a report of the run to this file")
	bindFlagToConfig(cmd.Flags().Lookup(reportFlagName), reportPathKey)

	cmd.Flags().StringVarP(&runFormatFlag, formatFlagName, "f", defaultReportFormat, "report format: json, yaml or junit")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), reportFormatKey)

	cmd.Flags().BoolVar(&runFailOnFailureFlag, failOnFailureFlagName, defaultFailOnFailure, "exit non-zero when any check fails")
	bindFlagToConfig(cmd.Flags().Lookup(failOnFailureFlagName), failOnFailureKey)
}

func runArgsFromConfig() (domain.RunArgs, error) {
	args := domain.RunArgs{
		BaseURL:        viper.GetString(baseURLKey),
		RequestTimeout: durationSetting(timeoutKey, defaultTimeout),
		Suite:          suiteOptionsFromConfig(),
		ReportPath:     m.Path(viper.GetString(reportPathKey)),
	}

	if args.ReportPath == "" {
		return args, nil
	}

	format, err := m.ParseReportFormat(viper.GetString(reportFormatKey))
	if err != nil {
		return args, err
	}

	args.ReportFormat = format

	return args, nil
}

func suiteOptionsFromConfig() domain.SuiteOptions {
	return domain.SuiteOptions{
		SearchTerms:   viper.GetStringSlice(searchTermsKey),
		SlowThreshold: durationSetting(slowThresholdKey, defaultSlowThreshold),
	}
}
