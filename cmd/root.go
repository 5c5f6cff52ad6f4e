package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hance08/canopy/cmd/account"
	"github.com/hance08/canopy/cmd/ledger"
	"github.com/hance08/canopy/internal/app"
	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/errhandler"
	"github.com/hance08/canopy/internal/log"
	"github.com/hance08/canopy/internal/validation"
)

var (
	cfgFile  string
	callerID string
	cfg      *config.Config
)

func Execute(migrations fs.FS) {
	os.Exit(run(migrations, os.Args[1:]))
}

func run(migrations fs.FS, args []string) int {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// .env is optional
	_ = godotenv.Load()

	cfgFile = scanConfigFlag(args)
	if err := initConfig(); err != nil {
		return errhandler.HandleError(err)
	}

	if err := log.Configure(cfg.Log.Level, cfg.Log.Output); err != nil {
		return errhandler.HandleError(fmt.Errorf("failed to configure logging: %w", err))
	}
	if cfg.Log.Debug {
		log.OpenDebug()
	}

	application, cleanup, err := app.NewApp(cfg, migrations)
	if err != nil {
		return errhandler.HandleError(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := application.Service.Account.EnsureFeeSink(ctx); err != nil {
		return errhandler.HandleError(fmt.Errorf("failed to create fee sink account: %w", err))
	}

	validator := validation.NewAccountValidator(application.Store)
	caller := func() string {
		if callerID != "" {
			return callerID
		}
		return cfg.Auth.Caller
	}

	rootCmd := &cobra.Command{
		Use:   "canopy",
		Short: "canopy is a payment ledger that pledges trees on vendor purchases",
		Long: `canopy moves money between accounts, takes a small fee on vendor
purchases and pledges trees for every purchase. Plantings reported with
"canopy fulfill" are matched against the oldest pledges first.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetArgs(args)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&callerID, "as", "", "account to act as (overrides auth.caller)")

	rootCmd.AddCommand(account.NewAccountCmd(application.Service, validator, caller))
	rootCmd.AddCommand(ledger.NewLedgerCmd(application.Service, caller))

	rootCmd.AddCommand(NewTransferCmd(application.Service, validator, caller))
	rootCmd.AddCommand(NewFulfillCmd(application.Service))
	rootCmd.AddCommand(NewSupplyCmd(application.Service))
	rootCmd.AddCommand(NewPoolCmd(application.Service))
	rootCmd.AddCommand(NewInfoCmd(application.Service))

	return errhandler.HandleError(rootCmd.ExecuteContext(ctx))
}

// scanConfigFlag picks --config out of args before cobra parses them, since
// the config has to be loaded before the command tree is built.
func scanConfigFlag(args []string) string {
	flags := pflag.NewFlagSet("canopy", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	path := flags.StringP("config", "c", "", "")
	_ = flags.Parse(args)
	return *path
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.DataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("CANOPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	bindDefaults(cfg)
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

// bindDefaults registers every key so AutomaticEnv can override keys that
// are missing from the config file.
func bindDefaults(c *config.Config) {
	viper.SetDefault("database.driver", c.Database.Driver)
	viper.SetDefault("database.path", c.Database.Path)
	viper.SetDefault("database.dsn", c.Database.DSN)
	viper.SetDefault("ledger.fee_rate", c.Ledger.FeeRate)
	viper.SetDefault("ledger.credit_divisor", c.Ledger.CreditDivisor)
	viper.SetDefault("ledger.fee_sink_account", c.Ledger.FeeSinkAccount)
	viper.SetDefault("ledger.ignore_threshold", c.Ledger.IgnoreThreshold)
	viper.SetDefault("ledger.page_size", c.Ledger.PageSize)
	viper.SetDefault("ledger.carry_over", c.Ledger.CarryOver)
	viper.SetDefault("ledger.recent_entries", c.Ledger.RecentEntries)
	viper.SetDefault("retry.max_tries", c.Retry.MaxTries)
	viper.SetDefault("retry.initial_interval", c.Retry.InitialInterval)
	viper.SetDefault("retry.max_interval", c.Retry.MaxInterval)
	viper.SetDefault("events.brokers", c.Events.Brokers)
	viper.SetDefault("events.transfer_topic", c.Events.TransferTopic)
	viper.SetDefault("events.fulfillment_topic", c.Events.FulfillmentTopic)
	viper.SetDefault("auth.caller", c.Auth.Caller)
	viper.SetDefault("log.level", c.Log.Level)
	viper.SetDefault("log.debug", c.Log.Debug)
	viper.SetDefault("log.output", c.Log.Output)
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	bindDefaults(config.NewDefault())
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// requireCaller returns the acting account or an error telling the user how
// to set one.
func requireCaller(caller func() string) (string, error) {
	id := strings.TrimSpace(caller())
	if id == "" {
		return "", fmt.Errorf("no caller account: pass --as or set auth.caller")
	}
	return id, nil
}
