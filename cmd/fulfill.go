package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/prompts"
	"github.com/hance08/canopy/internal/ui/views"
)

type fulfillFlags struct {
	Region string
	JSON   bool
}

type FulfillCommandRunner struct {
	svc   *service.Service
	flags *fulfillFlags
}

func NewFulfillCmd(svc *service.Service) *cobra.Command {
	flags := &fulfillFlags{}

	cmd := &cobra.Command{
		Use:   "fulfill <trees>",
		Short: "Record a planting and settle the oldest pledges",
		Long: `Record that a number of trees were planted in a region and mark pending
ledger entries as fulfilled, oldest first. Entries pledging more than what
is left are skipped. Leftovers are carried into the next planting.

Example: canopy fulfill 250 --region region_c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &FulfillCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&flags.Region, "region", "r", "", "planting region (region_a .. region_f)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the report as JSON")

	return cmd
}

func (r *FulfillCommandRunner) Run(ctx context.Context, args []string) error {
	quantity, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tree count: %s", args[0])
	}

	region, err := r.region()
	if err != nil {
		return err
	}

	report, err := r.svc.Fulfillment.Fulfill(ctx, region, quantity)
	if err != nil {
		return err
	}

	if r.flags.JSON {
		return views.RenderJSON(report)
	}
	return views.RenderFulfillmentReport(report)
}

func (r *FulfillCommandRunner) region() (model.Region, error) {
	if r.flags.Region != "" {
		return model.ParseRegion(r.flags.Region)
	}
	if r.flags.JSON {
		return 0, fmt.Errorf("--region is required with --json")
	}
	return prompts.PromptRegion()
}
