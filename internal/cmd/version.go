package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/deeklead/midori/internal/cmd.Version=0.4.0 -X github.com/deeklead/midori/internal/cmd.Build=release"
var (
	Version = "0.4.0-dev"
	Build   = "dev"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupConfig,
	Short:   "Print version information",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := map[string]interface{}{
			"version": Version,
			"build":   Build,
		}
		if commit := resolveCommitHash(); commit != "" {
			info["commit"] = commit
		}

		if versionJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Midori v%s (%s)\n", Version, Build)
		if commit, ok := info["commit"].(string); ok {
			fmt.Fprintf(out, "  %s\n", commit)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
}

// resolveCommitHash reads the VCS revision stamped by the go toolchain.
func resolveCommitHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return ""
}
