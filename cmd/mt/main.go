/*
mt is the Midori CLI for tarot readings in the terminal.

It deals readings from a 78-card deck across five spreads, either
interactively (shuffle, cut and draw each card yourself) or all at once.
It provides:

  - Readings: guided or quick, with optional reversed cards
  - History: the ten most recent readings
  - Daily card: one card for each calendar day
  - Cards: browse the deck and its meanings

Usage:

	mt <command> [arguments]

Common commands:

	mt read           Start a reading
	mt spreads        List the available spreads
	mt daily          Show today's card
	mt history        Show recent readings
	mt config         Show or change settings

See 'mt help <command>' for more information on a specific command.
*/
package main

import (
	"os"

	"github.com/deeklead/midori/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
