package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type supplyFlags struct {
	Region string
	Limit  int
	JSON   bool
}

type SupplyCommandRunner struct {
	svc   *service.Service
	flags *supplyFlags
}

func NewSupplyCmd(svc *service.Service) *cobra.Command {
	flags := &supplyFlags{}

	cmd := &cobra.Command{
		Use:   "supply",
		Short: "List recorded plantings",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &SupplyCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Region, "region", "r", "", "only show this region")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", constants.DefaultSearchLimit, "maximum number of events")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the events as JSON")

	return cmd
}

func (r *SupplyCommandRunner) Run(ctx context.Context) error {
	var region model.Region
	if r.flags.Region != "" {
		parsed, err := model.ParseRegion(r.flags.Region)
		if err != nil {
			return err
		}
		region = parsed
	}

	evs, err := r.svc.Fulfillment.ListSupply(ctx, region, r.flags.Limit)
	if err != nil {
		return err
	}

	if r.flags.JSON {
		return views.RenderJSON(evs)
	}
	return views.RenderSupplyList(evs)
}
