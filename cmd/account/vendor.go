package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/service"
)

func NewVendorCmd(svc *service.Service) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "vendor <account-id>",
		Short: "Mark an account as a vendor",
		Long: `Mark an account as a vendor. Payments to vendors are charged a fee and
pledge trees. Use --unset to clear the flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Account.SetVendor(cmd.Context(), args[0], !unset); err != nil {
				return err
			}
			if unset {
				pterm.Success.Printf("%s is no longer a vendor\n", args[0])
			} else {
				pterm.Success.Printf("%s is now a vendor\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "clear the vendor flag")

	return cmd
}
