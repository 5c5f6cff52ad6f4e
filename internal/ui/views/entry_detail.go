package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/ui"
	"github.com/hance08/canopy/internal/utils"
)

func RenderEntryDetail(e *model.LedgerEntry) error {
	fulfilledAt := "-"
	if e.FulfilledAt != nil {
		fulfilledAt = e.FulfilledAt.Local().Format(constants.DateTimeFormat)
	}

	pterm.Println()
	ui.PrintL2Title("Ledger Entry")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", e.ID},
		{"Sequence", pterm.Sprint(e.Seq)},
		{"Date", e.CreatedAt.Local().Format(constants.DateTimeFormat)},
		{"Payer", e.PayerID},
		{"Payee", e.PayeeID},
		{"Amount", utils.FormatMinor(e.Amount)},
		{"Fee", utils.FormatMinor(e.Fee)},
		{"Net to Payee", utils.FormatMinor(e.Net())},
		{"Tree Credit", ui.Trees(e.Credit)},
		{"Status", ui.Status(e)},
		{"Fulfilled At", fulfilledAt},
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render()
}
