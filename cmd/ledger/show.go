package ledger

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type ShowCommandRunner struct {
	svc  *service.Service
	json bool
}

func NewShowCmd(svc *service.Service) *cobra.Command {
	runner := &ShowCommandRunner{
		svc: svc,
	}

	cmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show ledger entry details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVar(&runner.json, "json", false, "print the entry as JSON")

	return cmd
}

func (r *ShowCommandRunner) Run(ctx context.Context, args []string) error {
	entry, err := r.svc.Ledger.Get(ctx, args[0])
	if err != nil {
		return err
	}

	if r.json {
		return views.RenderJSON(entry)
	}
	return views.RenderEntryDetail(entry)
}
