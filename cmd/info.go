package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/canopy/internal/app"
	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/service"
	"github.com/hance08/canopy/internal/ui/views"
)

type infoRunner struct {
	svc *service.Service
}

func NewInfoCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database location, and ledger settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				svc: svc,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	c := r.svc.Config

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath, dbExists := r.database(c)

	items := views.SystemInfoItem{
		ConfigPath:    configPath,
		Driver:        c.Database.Driver,
		DBPath:        dbPath,
		DBExists:      dbExists,
		FeeRate:       c.Ledger.FeeRate,
		CreditDivisor: c.Ledger.CreditDivisor,
		FeeSink:       c.Ledger.FeeSinkAccount,
		Brokers:       c.Events.Brokers,
		AppDataDir:    getAppDataDirOrUnknown(),
	}

	return views.RenderSystemInfo(items)
}

func (r *infoRunner) database(c *config.Config) (string, bool) {
	switch c.Database.Driver {
	case config.DriverMemory:
		return "(in memory)", true
	case config.DriverPostgres:
		return "(postgres dsn)", true
	}

	path, err := app.DatabasePath(c)
	if err != nil {
		return "Unknown", false
	}
	_, err = os.Stat(path)
	return path, err == nil
}

func getAppDataDirOrUnknown() string {
	dir, err := app.DataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
