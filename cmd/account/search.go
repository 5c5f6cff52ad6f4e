package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type searchFlags struct {
	Limit int
	JSON  bool
}

func NewSearchCmd(svc *service.Service) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <email-prefix>",
		Short: "Find accounts by email prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := svc.Account.Search(cmd.Context(), args[0], flags.Limit)
			if err != nil {
				return err
			}
			if flags.JSON {
				return views.RenderJSON(found)
			}
			return views.RenderSearchResults(args[0], found)
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", constants.DefaultSearchLimit, "maximum number of matches")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the matches as JSON")

	return cmd
}
