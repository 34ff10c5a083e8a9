package cmd

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/config"
	"github.com/deeklead/midori/internal/events"
	"github.com/deeklead/midori/internal/style"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: GroupConfig,
	Short:   "Show or change settings",
	Long: `Show or change midori's settings.

Without a subcommand, prints every setting. Environment variables
(MIDORI_REVERSED, MIDORI_LANG, MIDORI_LOG_LEVEL) override the file.

Keys:
  reversed        Allow reversed cards (true/false)
  language        system, en, ko, ja or th
  card_back       byzantine, lightbrown, rosemoon or persia
  card_face       animation
  haptics         true/false
  daily.enabled   Daily card reminder (true/false)
  daily.time      Reminder time, HH:MM
  log_level       debug, info, warn or error

Examples:
  mt config
  mt config set reversed false
  mt config set language ko
  mt config get daily.time`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Output as JSON")
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return requireSubcommand(cmd, args)
	}

	s := settings()
	values := make(map[string]string, len(config.Keys()))
	for _, key := range config.Keys() {
		v, err := s.Get(key)
		if err != nil {
			return err
		}
		values[key] = v
	}

	if configJSON {
		return writeJSON(cmd.OutOrStdout(), values)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n\n", style.Bold.Render("Settings"), style.Dim.Render(config.Path()))
	for _, key := range config.Keys() {
		fmt.Fprintf(out, "  %-14s %s\n", key, values[key])
	}
	if env := config.EnvOverrides(); len(env) > 0 {
		keys := slices.Sorted(maps.Keys(env))
		fmt.Fprintf(out, "\n%s overridden by environment: %s\n", style.ArrowPrefix, strings.Join(keys, ", "))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	v, err := settings().Get(args[0])
	if err != nil {
		return keyError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Environment overrides must not leak into the file.
	path := config.Path()
	s, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := s.Set(key, value); err != nil {
		return keyError(err)
	}
	if err := config.Save(path, s); err != nil {
		return err
	}

	stored, _ := s.Get(key)
	_ = events.Log(events.TypeSettingChanged, events.SettingPayload(key, stored))
	logger().Info("setting changed", "key", key, "value", stored)

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", style.SuccessPrefix, key, stored)
	return nil
}

// keyError adds a hint to unknown-key errors.
func keyError(err error) error {
	if errors.Is(err, config.ErrUnknownKey) {
		return fmt.Errorf("%w\n\nKnown keys: %s", err, strings.Join(config.Keys(), ", "))
	}
	return err
}
