package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/doctor"
	"github.com/deeklead/midori/internal/state"
)

var (
	doctorFix     bool
	doctorVerbose bool
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupConfig,
	Short:   "Check the deck and stored files",
	Long: `Run health checks over the deck and midori's files.

Core checks:
  - deck        Every language has 78 distinct cards
  - spreads     Spread positions are ordered and fit their layout
  - state-dir   The state directory is writable (fixable)

Configuration checks:
  - settings    settings.toml parses and holds valid values (fixable)

Data checks:
  - history     Stored readings load (fixable)
  - daily       The daily card record parses (fixable)
  - events      Activity log lines parse

Use --fix to repair what can be repaired. Malformed readings are
dropped, an unreadable settings file is kept as settings.toml.bak.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt to automatically fix issues")
	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show detailed output")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := &doctor.CheckContext{
		Context:   cmd.Context(),
		ConfigDir: state.ConfigDir(),
		StateDir:  state.StateDir(),
		Verbose:   doctorVerbose,
	}

	d := doctor.NewDoctor()
	d.RegisterAll(doctor.AllChecks()...)

	var report *doctor.Report
	if doctorFix {
		report = d.Fix(ctx)
		logger().Info("doctor fix", "fixed", report.Summary.Fixed, "errors", report.Summary.Errors)
	} else {
		report = d.Run(ctx)
	}

	report.Print(cmd.OutOrStdout(), doctorVerbose)

	if report.HasErrors() {
		return fmt.Errorf("doctor found %d error(s)", report.Summary.Errors)
	}
	return nil
}
