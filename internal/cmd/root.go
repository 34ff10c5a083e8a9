// Package cmd provides CLI commands for the mt tool.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/config"
	"github.com/deeklead/midori/internal/style"
)

var rootCmd = &cobra.Command{
	Use:     "mt",
	Short:   "Midori - tarot readings in the terminal",
	Version: Version,
	Long: `Midori (mt) deals tarot readings in the terminal.

Pick a spread, shuffle, cut the deck and draw your cards one at a time,
or let mt deal a quick reading. Readings are kept in a short history and
one card is drawn for each day.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
	PersistentPostRun: persistentPostRun,
}

// Commands that run without loading settings.
var settingsExemptCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// app is the per-invocation state shared by commands.
var app struct {
	settings *config.Settings
	logger   *slog.Logger
	closeLog func()
}

// persistentPreRun loads settings and opens the log before every command.
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if settingsExemptCommands[cmd.Name()] {
		return nil
	}

	settings, err := config.Current()
	if err != nil {
		style.PrintWarning("using default settings: %v", err)
		settings = config.Default()
	}
	app.settings = settings
	app.logger, app.closeLog = config.OpenLog(settings.LogLevel)
	app.logger.Debug("command started", "command", buildCommandPath(cmd), "args", args)
	return nil
}

func persistentPostRun(cmd *cobra.Command, args []string) {
	closeLog()
}

// closeLog closes the log file opened by persistentPreRun, if any.
func closeLog() {
	if app.closeLog != nil {
		app.closeLog()
		app.closeLog = nil
	}
}

// settings returns the loaded settings, or the defaults for exempt commands.
func settings() *config.Settings {
	if app.settings == nil {
		return config.Default()
	}
	return app.settings
}

func logger() *slog.Logger {
	if app.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return app.logger
}

// locale is the language used for card and spread text.
func locale() language.Tag {
	return settings().Locale()
}

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	if err := execute(); err != nil {
		// Errors already printed by cobra
		return 1
	}
	return 0
}

// execute runs the root command. cobra skips PersistentPostRun when a
// command fails, so the log is closed here as well.
func execute() error {
	defer closeLog()
	err := rootCmd.Execute()
	if err != nil {
		logger().Error("command failed", "error", err)
	}
	return err
}

// Command group IDs - used by subcommands to organize help output
const (
	GroupReading = "reading"
	GroupCards   = "cards"
	GroupConfig  = "config"
)

func init() {
	// Enable prefix matching for subcommands (e.g., "mt hist" -> "mt history")
	cobra.EnablePrefixMatching = true

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupReading, Title: "Readings:"},
		&cobra.Group{ID: GroupCards, Title: "Cards:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration:"},
	)

	rootCmd.SetHelpCommandGroupID(GroupConfig)
	rootCmd.SetCompletionCommandGroupID(GroupConfig)
}

// buildCommandPath walks the command hierarchy to build the full command path.
// For example: "mt history clear".
func buildCommandPath(cmd *cobra.Command) string {
	var parts []string
	for c := cmd; c != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	return strings.Join(parts, " ")
}

// requireSubcommand returns a RunE function for parent commands that require
// a subcommand. Without this, Cobra silently shows help and exits 0 for
// unknown subcommands like "mt config foobar", masking errors.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("requires a subcommand\n\nRun '%s --help' for usage", buildCommandPath(cmd))
	}
	return fmt.Errorf("unknown command %q for %q\n\nRun '%s --help' for available commands",
		args[0], buildCommandPath(cmd), buildCommandPath(cmd))
}
