package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/model"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Retry      RetryConfig    `mapstructure:"retry"`
	Events     EventsConfig   `mapstructure:"events"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type LedgerConfig struct {
	FeeRate         string `mapstructure:"fee_rate"`
	CreditDivisor   int64  `mapstructure:"credit_divisor"`
	FeeSinkAccount  string `mapstructure:"fee_sink_account"`
	IgnoreThreshold string `mapstructure:"ignore_threshold"`
	PageSize        int    `mapstructure:"page_size"`
	CarryOver       bool   `mapstructure:"carry_over"`
	RecentEntries   int    `mapstructure:"recent_entries"`
}

type RetryConfig struct {
	MaxTries        uint          `mapstructure:"max_tries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// EventsConfig enables Kafka publishing when Brokers is non-empty.
type EventsConfig struct {
	Brokers          []string `mapstructure:"brokers"`
	TransferTopic    string   `mapstructure:"transfer_topic"`
	FulfillmentTopic string   `mapstructure:"fulfillment_topic"`
}

// AuthConfig names the account the CLI acts as.
type AuthConfig struct {
	Caller string `mapstructure:"caller"`
}

type LogConfig struct {
	Level  string   `mapstructure:"level"`
	Debug  bool     `mapstructure:"debug"`
	Output []string `mapstructure:"output"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: DriverSQLite},
		Ledger: LedgerConfig{
			FeeRate:         constants.DefaultFeeRate,
			CreditDivisor:   constants.DefaultCreditDivisor,
			FeeSinkAccount:  constants.FeeSinkAccountID,
			IgnoreThreshold: constants.DefaultIgnoreThreshold,
			PageSize:        constants.DefaultPageSize,
			CarryOver:       true,
			RecentEntries:   constants.DefaultRecentEntries,
		},
		Retry: RetryConfig{
			MaxTries:        constants.DefaultRetryMaxTries,
			InitialInterval: constants.DefaultRetryInitialInterval,
			MaxInterval:     constants.DefaultRetryMaxInterval,
		},
		Events: EventsConfig{
			TransferTopic:    events.DefaultTransferTopic,
			FulfillmentTopic: events.DefaultFulfillmentTopic,
		},
		Log: LogConfig{Level: "warn", Output: []string{"stderr"}},
	}
}

func (c *Config) FeeRateDecimal() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Ledger.FeeRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger.fee_rate %q: %w", c.Ledger.FeeRate, err)
	}
	return rate, nil
}

// Threshold returns the ignore threshold as credit.
func (c *Config) Threshold() (model.Credit, error) {
	th, err := model.ParseCredit(c.Ledger.IgnoreThreshold)
	if err != nil {
		return 0, fmt.Errorf("ledger.ignore_threshold: %w", err)
	}
	return th, nil
}

// CreditPerUnit is the credit one currency unit pledges.
func (c *Config) CreditPerUnit() model.Credit {
	return model.CreditPerTree / model.Credit(c.Ledger.CreditDivisor)
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			errs = append(errs, errors.New("database.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not one of sqlite, postgres, memory", c.Database.Driver))
	}

	rate, err := c.FeeRateDecimal()
	if err != nil {
		errs = append(errs, err)
	} else if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("ledger.fee_rate %s must be in [0, 1)", rate))
	}

	d := c.Ledger.CreditDivisor
	if d <= 0 || int64(model.CreditPerTree)%d != 0 {
		errs = append(errs, fmt.Errorf("ledger.credit_divisor %d must be a positive divisor of %d", d, int64(model.CreditPerTree)))
	}

	if th, err := c.Threshold(); err != nil {
		errs = append(errs, err)
	} else if th < 0 {
		errs = append(errs, fmt.Errorf("ledger.ignore_threshold %s must not be negative", th))
	}

	if strings.TrimSpace(c.Ledger.FeeSinkAccount) == "" {
		errs = append(errs, errors.New("ledger.fee_sink_account is required"))
	}
	if c.Ledger.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ledger.page_size %d must be positive", c.Ledger.PageSize))
	}
	if c.Ledger.RecentEntries < 0 {
		errs = append(errs, fmt.Errorf("ledger.recent_entries %d must not be negative", c.Ledger.RecentEntries))
	}

	if c.Retry.MaxTries == 0 {
		errs = append(errs, errors.New("retry.max_tries must be at least 1"))
	}
	if c.Retry.InitialInterval < 0 || c.Retry.MaxInterval < c.Retry.InitialInterval {
		errs = append(errs, fmt.Errorf("retry intervals %s..%s are invalid", c.Retry.InitialInterval, c.Retry.MaxInterval))
	}

	if len(c.Events.Brokers) > 0 && (c.Events.TransferTopic == "" || c.Events.FulfillmentTopic == "") {
		errs = append(errs, errors.New("events topics are required when brokers are set"))
	}

	return errors.Join(errs...)
}
