package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/ui"
	"github.com/hance08/canopy/internal/utils"
)

type EntryListView struct {
	Title string
}

func NewEntryListView(title string) *EntryListView {
	return &EntryListView{Title: title}
}

func (v *EntryListView) Render(entries []*model.LedgerEntry, limit int) error {
	if len(entries) == 0 {
		pterm.Warning.Println("No ledger entries found")
		return nil
	}

	pterm.DefaultSection.Printf("%s (limit: %d)", v.Title, limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Payer", "Payee", "Amount", "Fee", "Credit", "Status"},
	}
	for _, e := range entries {
		tableData = append(tableData, []string{
			e.ID,
			e.CreatedAt.Local().Format(constants.DateTimeFormat),
			e.PayerID,
			e.PayeeID,
			utils.FormatMinor(e.Amount),
			utils.FormatMinor(e.Fee),
			ui.Trees(e.Credit),
			ui.Status(e),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d entries\n", len(entries))
	return nil
}
