package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type listFlags struct {
	Payer string
	Limit int
	JSON  bool
}

type ListCommandRunner struct {
	svc    *service.Service
	caller func() string
	flags  *listFlags
}

func NewListCmd(svc *service.Service, caller func() string) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest payments made by an account",
		Long: `List the newest payments made by an account. Defaults to the caller
account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				svc:    svc,
				caller: caller,
				flags:  flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Payer, "payer", "p", "", "payer account id (defaults to the caller)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", constants.DefaultRecentEntries, "maximum number of entries")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the entries as JSON")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	payer := strings.TrimSpace(r.flags.Payer)
	if payer == "" {
		payer = strings.TrimSpace(r.caller())
	}
	if payer == "" {
		return fmt.Errorf("no payer given: pass --payer, --as or set auth.caller")
	}

	entries, err := r.svc.Ledger.ByPayer(ctx, payer, r.flags.Limit)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}

	if r.flags.JSON {
		return views.RenderJSON(entries)
	}
	return views.NewEntryListView("Payments by " + payer).Render(entries, r.flags.Limit)
}
