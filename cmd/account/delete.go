package account

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/prompts"
	"github.com/hance08/canopy/internal/validation"
)

type DeleteCommandRunner struct {
	svc       *service.Service
	validator *validation.AccountValidator
	yes       bool
}

func NewDeleteCmd(svc *service.Service, v *validation.AccountValidator) *cobra.Command {
	runner := &DeleteCommandRunner{
		svc:       svc,
		validator: v,
	}

	cmd := &cobra.Command{
		Use:   "delete [account-id]",
		Short: "Delete an account",
		Long: `Delete an account record. Ledger entries that name the account are kept,
so its pending pledges can still be fulfilled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func (r *DeleteCommandRunner) Run(ctx context.Context, args []string) error {
	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		input, err := prompts.PromptAccountID("Account to delete:", r.validator.ValidateExistingAccountID(ctx))
		if err != nil {
			return err
		}
		id = input
	}

	if !r.yes {
		confirm, err := prompts.PromptConfirm(fmt.Sprintf("Delete account %s? This cannot be undone.", id), false)
		if err != nil {
			return err
		}
		if !confirm {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.svc.Account.Delete(ctx, id); err != nil {
		return err
	}

	pterm.Success.Printf("Account %s deleted\n", id)
	return nil
}
