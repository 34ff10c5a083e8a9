package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deeklead/midori/internal/spread"
	"github.com/deeklead/midori/internal/style"
)

var spreadsJSON bool

var spreadsCmd = &cobra.Command{
	Use:     "spreads",
	GroupID: GroupReading,
	Short:   "List the available spreads",
	Long: `List every spread mt can deal, with its number of cards.

Examples:
  mt spreads
  mt spreads --json`,
	Args: cobra.NoArgs,
	RunE: runSpreads,
}

func init() {
	spreadsCmd.Flags().BoolVar(&spreadsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(spreadsCmd)
}

type spreadPosition struct {
	Slot  string `json:"slot"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

type spreadInfo struct {
	Type        string           `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Cards       int              `json:"cards"`
	Reversed    bool             `json:"default_use_reversed"`
	Default     bool             `json:"default,omitempty"`
	Positions   []spreadPosition `json:"positions"`
}

func runSpreads(cmd *cobra.Command, args []string) error {
	tag := locale()
	catalog := spread.Builtin()
	def := catalog.Default().Type

	var infos []spreadInfo
	for _, d := range catalog.All() {
		info := spreadInfo{
			Type:        string(d.Type),
			Title:       d.Title.Resolve(tag),
			Description: d.Description.Resolve(tag),
			Cards:       d.Size(),
			Reversed:    d.DefaultUseReversed,
			Default:     d.Type == def,
		}
		for _, p := range d.OrderedPositions() {
			info.Positions = append(info.Positions, spreadPosition{
				Slot:  string(p.Slot),
				Title: p.Title.Resolve(tag),
				Order: p.Order,
			})
		}
		infos = append(infos, info)
	}

	if spreadsJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", style.Bold.Render("Spreads"))
	for i, info := range infos {
		marker := ""
		if info.Default {
			marker = style.Dim.Render(" (default)")
		}
		fmt.Fprintf(out, "  %d. %-20s %2d  %s%s\n", i+1, info.Type, info.Cards, info.Title, marker)
	}
	fmt.Fprintf(out, "\nStart one with 'mt read <type>'.\n")
	return nil
}
