package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type ShowCommandRunner struct {
	svc    *service.Service
	caller func() string
	json   bool
}

func NewShowCmd(svc *service.Service, caller func() string) *cobra.Command {
	runner := &ShowCommandRunner{
		svc:    svc,
		caller: caller,
	}

	cmd := &cobra.Command{
		Use:   "show [account-id]",
		Short: "Show an account profile",
		Long: `Show an account. Your own account shows the balance, credit per region
and recent payments; other accounts only show public details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVar(&runner.json, "json", false, "print the profile as JSON")

	return cmd
}

func (r *ShowCommandRunner) Run(ctx context.Context, args []string) error {
	caller := strings.TrimSpace(r.caller())

	target := caller
	if len(args) == 1 {
		target = args[0]
	}
	if target == "" {
		return fmt.Errorf("no account given: pass an account id, --as or set auth.caller")
	}

	profile, err := r.svc.Account.Profile(ctx, caller, target)
	if err != nil {
		return err
	}

	if r.json {
		return views.RenderJSON(profile)
	}
	return views.RenderProfile(profile)
}
