package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/validation"
)

func NewAccountCmd(svc *service.Service, v *validation.AccountValidator, caller func() string) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Create, inspect and manage accounts.",
		Long:  `Create, inspect, search, fund and delete accounts, and flag vendors.`,
	}

	accountCmd.AddCommand(NewCreateCmd(svc, v))
	accountCmd.AddCommand(NewDeleteCmd(svc, v))
	accountCmd.AddCommand(NewShowCmd(svc, caller))
	accountCmd.AddCommand(NewSearchCmd(svc))
	accountCmd.AddCommand(NewVendorCmd(svc))
	accountCmd.AddCommand(NewDepositCmd(svc))

	return accountCmd
}
