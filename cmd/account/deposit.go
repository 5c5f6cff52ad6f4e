package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/utils"
	"github.com/hance08/canopy/internal/validation"
)

func NewDepositCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Add funds to an account",
		Long: `Add funds to an account from outside the ledger.

Example: canopy account deposit alice 200`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateAmount(args[1]); err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			amount, err := utils.ParseMinor(args[1])
			if err != nil {
				return err
			}

			acc, err := svc.Account.Deposit(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Deposited %s, new balance %s\n", utils.FormatMinor(amount), utils.FormatMinor(acc.Balance))
			return nil
		},
	}
}
