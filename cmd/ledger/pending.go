package ledger

import (
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

func NewPendingCmd(svc *service.Service) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show the oldest pledges waiting to be planted",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := svc.Ledger.Pending(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return views.RenderJSON(entries)
			}
			return views.NewEntryListView("Pending Pledges").Render(entries, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", constants.DefaultSearchLimit, "maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the entries as JSON")

	return cmd
}
