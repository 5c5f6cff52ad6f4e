package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/errhandler"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/prompts"
	"github.com/hance08/canopy/internal/ui/views"
	"github.com/hance08/canopy/internal/utils"
	"github.com/hance08/canopy/internal/validation"
)

type transferFlags struct {
	Yes  bool
	JSON bool
}

type TransferCommandRunner struct {
	svc       *service.Service
	validator *validation.AccountValidator
	caller    func() string
	flags     *transferFlags
}

func NewTransferCmd(svc *service.Service, v *validation.AccountValidator, caller func() string) *cobra.Command {
	flags := &transferFlags{}

	cmd := &cobra.Command{
		Use:   "transfer [payee] [amount]",
		Short: "Send money to another account",
		Long: `Send money from the caller account to a payee.

Payments to vendors carry a 2% fee and pledge one tree for every 1000 units
paid. Run without arguments to be prompted for the payee and amount.

Example: canopy transfer --as alice coffee-shop 12.50`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &TransferCommandRunner{
				svc:       svc,
				validator: v,
				caller:    caller,
				flags:     flags,
			}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the result as JSON")

	return cmd
}

func (r *TransferCommandRunner) Run(ctx context.Context, args []string) error {
	payer, err := requireCaller(r.caller)
	if err != nil {
		return err
	}

	payeeID, amount, err := r.collect(ctx, args)
	if err != nil {
		return err
	}

	if !r.flags.JSON && !r.flags.Yes {
		if err := r.preview(ctx, payer, payeeID, amount); err != nil {
			return err
		}
		confirm, err := prompts.PromptConfirm("Send this payment?", true)
		if err != nil {
			return err
		}
		if !confirm {
			return fmt.Errorf("transfer cancelled")
		}
	}

	entry, err := r.svc.Transfer.Transfer(ctx, payer, payeeID, amount)
	res := service.NewTransferResult(entry, err)

	if r.flags.JSON {
		if rerr := views.RenderJSON(res); rerr != nil {
			return rerr
		}
		return errhandler.Reported(err)
	}
	if err != nil {
		return err
	}
	return views.RenderTransferResult(res)
}

// collect takes payee and amount from args, prompting for whatever is missing.
func (r *TransferCommandRunner) collect(ctx context.Context, args []string) (string, int64, error) {
	var payeeID, amountStr string
	if len(args) > 0 {
		payeeID = args[0]
	}
	if len(args) > 1 {
		amountStr = args[1]
	}

	if payeeID == "" {
		if r.flags.JSON {
			return "", 0, fmt.Errorf("payee is required with --json")
		}
		id, err := prompts.PromptAccountID("Payee account:", r.validator.ValidateExistingAccountID(ctx))
		if err != nil {
			return "", 0, err
		}
		payeeID = id
	}

	if amountStr == "" {
		if r.flags.JSON {
			return "", 0, fmt.Errorf("amount is required with --json")
		}
		s, err := prompts.PromptAmount("Amount:", "e.g. 12.50", validation.ValidateAmount)
		if err != nil {
			return "", 0, err
		}
		amountStr = s
	}

	if err := validation.ValidateAmount(amountStr); err != nil {
		return "", 0, fmt.Errorf("invalid amount: %w", err)
	}
	amount, err := utils.ParseMinor(amountStr)
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(payeeID), amount, nil
}

func (r *TransferCommandRunner) preview(ctx context.Context, payer, payeeID string, amount int64) error {
	p, err := r.svc.Account.Profile(ctx, payer, payeeID)
	if err != nil {
		return err
	}

	var payee model.PublicProfile
	if p.Self {
		payee = p.Account.Public()
	} else {
		payee = *p.Public
	}

	return views.RenderTransferPreview(views.TransferPreview{
		Payer:  payer,
		Payee:  &payee,
		Amount: amount,
		Split:  r.svc.Transfer.Split(amount, payee.IsVendor),
	})
}
