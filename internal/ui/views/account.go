package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui"
	"github.com/hance08/canopy/internal/utils"
)

func RenderAccountSuccess(acc *model.Account) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), acc.ID},
		{pterm.Blue("Email"), acc.Email},
		{pterm.Blue("Created"), acc.CreatedAt.Local().Format(constants.DateTimeFormat)},
	}
	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account created successfully!\n")
	return nil
}

func RenderProfile(p *service.Profile) error {
	if !p.Self {
		ui.PrintL1Title("Public Profile")
		return renderCredit(p.Public.Email, p.Public.IsVendor, nil, p.Public.AccruedCredit)
	}

	ui.PrintL1Title("My Account")
	balance := utils.FormatMinor(p.Account.Balance)
	if err := renderCredit(p.Account.Email, p.Account.IsVendor, &balance, p.Account.AccruedCredit); err != nil {
		return err
	}
	return NewEntryListView("Recent transfers").Render(p.RecentEntries, len(p.RecentEntries))
}

func renderCredit(email string, vendor bool, balance *string, credit model.AccruedCredit) error {
	vendorStr := "No"
	if vendor {
		vendorStr = pterm.Green("Yes")
	}

	tableData := pterm.TableData{
		{pterm.Blue("Email"), email},
		{pterm.Blue("Vendor"), vendorStr},
	}
	if balance != nil {
		tableData = append(tableData, []string{pterm.Blue("Balance"), *balance})
	}
	tableData = append(tableData,
		[]string{pterm.Blue("Trees Pledged"), ui.Trees(credit.Total)},
		[]string{pterm.Blue("Trees Planted"), ui.Trees(credit.Fulfilled())},
	)
	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	ui.PrintL2Title("Planted by Region")
	regionData := pterm.TableData{{"Region", "Trees"}}
	for _, r := range model.Regions() {
		regionData = append(regionData, []string{r.String(), credit.Region(r).String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(regionData).Render()
}

func RenderSearchResults(prefix string, found []*model.AccountSummary) error {
	if len(found) == 0 {
		pterm.Warning.Printf("No accounts match %q\n", prefix)
		return nil
	}

	tableData := pterm.TableData{{"ID", "Email", "Vendor"}}
	for _, s := range found {
		vendor := ""
		if s.IsVendor {
			vendor = pterm.Green("✓")
		}
		tableData = append(tableData, []string{s.ID, s.Email, vendor})
	}

	pterm.DefaultSection.Printf("Accounts matching %q", prefix)
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d accounts\n", len(found))
	return nil
}
