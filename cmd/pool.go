package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

func NewPoolCmd(svc *service.Service) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Show trees pledged and planted so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := svc.Fulfillment.Pool(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return views.RenderJSON(pool)
			}
			return views.RenderPool(pool)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pool as JSON")

	return cmd
}
