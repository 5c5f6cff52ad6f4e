package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/model"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgGreen, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgGreen, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

func Separator() {
	pterm.Println(pterm.Gray("────────────────────────────────────────"))
}

// Trees formats credit as a tree count.
func Trees(c model.Credit) string {
	if c == model.CreditPerTree {
		return "1 tree"
	}
	return c.String() + " trees"
}

// Status colours a ledger entry status.
func Status(e *model.LedgerEntry) string {
	if region, ok := e.Fulfillment(); ok {
		return pterm.Green("fulfilled (" + region.String() + ")")
	}
	if e.Credit.IsZero() {
		return pterm.Gray("no credit")
	}
	return pterm.Yellow("pending")
}
