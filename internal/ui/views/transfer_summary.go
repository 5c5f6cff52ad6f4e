package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui"
	"github.com/hance08/canopy/internal/utils"
)

type TransferPreview struct {
	Payer  string
	Payee  *model.PublicProfile
	Amount int64
	Split  service.Split
}

func RenderTransferPreview(p TransferPreview) error {
	pterm.DefaultSection.Println("Transfer Summary")

	payee := p.Payee.Email
	if p.Payee.IsVendor {
		payee += " " + pterm.Green("(vendor)")
	}

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"From", p.Payer},
		{"To", payee},
		{"Amount", utils.FormatMinor(p.Amount)},
		{"Vendor Fee", utils.FormatMinor(p.Split.Fee)},
		{"Payee Receives", utils.FormatMinor(p.Split.Net)},
		{"Trees Pledged", ui.Trees(p.Split.Credit)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderTransferResult(res service.TransferResult) error {
	if res.Status != "Ok" {
		pterm.Error.Printf("%s [%s]\n", res.Message, res.Code)
		return nil
	}
	pterm.Success.Println(res.Message)
	return RenderEntryDetail(res.LedgerEntry)
}
