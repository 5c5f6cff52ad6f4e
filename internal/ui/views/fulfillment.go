package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui"
)

func RenderFulfillmentReport(r *service.FulfillmentReport) error {
	pterm.DefaultSection.Printf("Planting in %s", r.Region)

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Planted", ui.Trees(r.Supplied)},
		{"Carried Over", ui.Trees(r.CarriedOver)},
		{"Consumed", ui.Trees(r.Consumed)},
		{"Left Over", ui.Trees(r.Remaining)},
		{"Entries Fulfilled", pterm.Sprint(r.FulfilledCount)},
		{"Entries Skipped", pterm.Sprint(r.SkippedCount)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	if r.Consumed.IsZero() {
		pterm.Warning.Println("No pending entries could be fulfilled")
		return nil
	}
	pterm.Success.Printf("Supply event %s recorded\n", r.SupplyEventID)
	return nil
}

func RenderPool(p *model.GlobalPool) error {
	ui.PrintL1Title("Global Tree Pool")

	tableData := pterm.TableData{
		{pterm.Blue("Will Plant"), ui.Trees(p.WillPlant)},
		{pterm.Blue("Did Plant"), ui.Trees(p.DidPlant)},
		{pterm.Blue("Outstanding"), ui.Trees(p.Outstanding())},
	}
	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderSupplyList(evs []*model.SupplyEvent) error {
	if len(evs) == 0 {
		pterm.Warning.Println("No supply events found")
		return nil
	}

	tableData := pterm.TableData{
		{"ID", "Date", "Region", "Planted", "Carried", "Consumed", "Left Over", "Claimed"},
	}
	for _, ev := range evs {
		claimed := ""
		if ev.Claimed {
			claimed = pterm.Gray("✓")
		}
		tableData = append(tableData, []string{
			ev.ID,
			ev.CreatedAt.Local().Format(constants.DateTimeFormat),
			ev.Region.String(),
			pterm.Sprint(ev.Quantity),
			ev.Carried.String(),
			ev.Consumed.String(),
			ev.Leftover.String(),
			claimed,
		})
	}

	pterm.DefaultSection.Println("Supply Events")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d events\n", len(evs))
	return nil
}
