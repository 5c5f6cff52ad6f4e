package account

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui"
	"github.com/hance08/canopy/internal/ui/prompts"
	"github.com/hance08/canopy/internal/ui/views"
	"github.com/hance08/canopy/internal/validation"
)

type createFlags struct {
	ID     string
	Email  string
	Vendor bool
}

// AccountCreator collects the fields of a new account from flags or prompts.
type AccountCreator struct {
	id     string
	email  string
	vendor bool

	svc       *service.Service
	validator *validation.AccountValidator
}

func NewAccountCreator(svc *service.Service, v *validation.AccountValidator) *AccountCreator {
	return &AccountCreator{
		svc:       svc,
		validator: v,
	}
}

func NewCreateCmd(svc *service.Service, v *validation.AccountValidator) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account.",
		Long: `Create an account with a zero balance. Without flags the command asks
for the account id and email interactively.

Example: canopy account create --id alice --email alice@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			creator := NewAccountCreator(svc, v)

			hasFlags := cmd.Flags().Changed("id") || cmd.Flags().Changed("email")
			if hasFlags {
				return creator.FlagsMode(cmd.Context(), flags)
			}
			return creator.InteractiveMode(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.ID, "id", "", "account id")
	cmd.Flags().StringVarP(&flags.Email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&flags.Vendor, "vendor", false, "mark the account as a vendor")

	return cmd
}

// FlagsMode builds an account from command-line flags
func (ac *AccountCreator) FlagsMode(ctx context.Context, flags *createFlags) error {
	if flags.ID == "" || flags.Email == "" {
		return fmt.Errorf("both --id and --email are required")
	}
	ac.id = flags.ID
	ac.email = flags.Email
	ac.vendor = flags.Vendor

	return ac.Save(ctx)
}

// InteractiveMode builds an account through interactive prompts
func (ac *AccountCreator) InteractiveMode(ctx context.Context) error {
	id, err := prompts.PromptAccountID("Account ID:", ac.validator.ValidateNewAccountID(ctx))
	if err != nil {
		return err
	}
	ac.id = id

	email, err := prompts.PromptEmail()
	if err != nil {
		return err
	}
	ac.email = email

	vendor, err := prompts.PromptConfirm("Is this a vendor account?", false)
	if err != nil {
		return err
	}
	ac.vendor = vendor

	ac.displaySummary()

	confirm, err := prompts.PromptConfirm("Proceed with account creation?", true)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("account creation cancelled")
	}

	return ac.Save(ctx)
}

// Save persists the account and applies the vendor flag.
func (ac *AccountCreator) Save(ctx context.Context) error {
	acc, err := ac.svc.Account.Create(ctx, ac.id, ac.email)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if ac.vendor {
		if err := ac.svc.Account.SetVendor(ctx, acc.ID, true); err != nil {
			return fmt.Errorf("failed to set vendor flag: %w", err)
		}
		acc.IsVendor = true
	}

	return views.RenderAccountSuccess(acc)
}

func (ac *AccountCreator) displaySummary() {
	ui.Separator()

	vendor := "No"
	if ac.vendor {
		vendor = "Yes"
	}

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), ac.id},
		{pterm.Blue("Email"), ac.email},
		{pterm.Blue("Vendor"), vendor},
	}

	_ = pterm.DefaultTable.WithData(tableData).Render()
}
