package ledger

import (
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
)

func NewLedgerCmd(svc *service.Service, caller func() string) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Browse ledger entries.",
		Long:  `List your payments, inspect single entries and look at the pledges still waiting to be planted.`,
	}

	ledgerCmd.AddCommand(NewListCmd(svc, caller))
	ledgerCmd.AddCommand(NewShowCmd(svc))
	ledgerCmd.AddCommand(NewPendingCmd(svc))

	return ledgerCmd
}
