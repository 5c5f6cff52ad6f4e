package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/model"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := NewDefault()
	require.NoError(t, cfg.Validate())

	rate, err := cfg.FeeRateDecimal()
	require.NoError(t, err)
	assert.Equal(t, "0.02", rate.String())

	th, err := cfg.Threshold()
	require.NoError(t, err)
	assert.Equal(t, model.CreditPerTree, th)
	assert.Equal(t, model.Credit(1000), cfg.CreditPerUnit())
	assert.True(t, cfg.Ledger.CarryOver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn"},
		{"fee rate of one", func(c *Config) { c.Ledger.FeeRate = "1" }, "ledger.fee_rate"},
		{"negative fee rate", func(c *Config) { c.Ledger.FeeRate = "-0.1" }, "ledger.fee_rate"},
		{"garbage fee rate", func(c *Config) { c.Ledger.FeeRate = "two percent" }, "ledger.fee_rate"},
		{"divisor not dividing", func(c *Config) { c.Ledger.CreditDivisor = 7 }, "ledger.credit_divisor"},
		{"zero divisor", func(c *Config) { c.Ledger.CreditDivisor = 0 }, "ledger.credit_divisor"},
		{"negative threshold", func(c *Config) { c.Ledger.IgnoreThreshold = "-1" }, "ledger.ignore_threshold"},
		{"threshold too precise", func(c *Config) { c.Ledger.IgnoreThreshold = "0.0000001" }, "ledger.ignore_threshold"},
		{"no fee sink", func(c *Config) { c.Ledger.FeeSinkAccount = " " }, "ledger.fee_sink_account"},
		{"zero page size", func(c *Config) { c.Ledger.PageSize = 0 }, "ledger.page_size"},
		{"no tries", func(c *Config) { c.Retry.MaxTries = 0 }, "retry.max_tries"},
		{"inverted intervals", func(c *Config) { c.Retry.MaxInterval = time.Nanosecond }, "retry intervals"},
		{"brokers without topic", func(c *Config) {
			c.Events.Brokers = []string{"localhost:9092"}
			c.Events.TransferTopic = ""
		}, "events topics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := NewDefault()
	cfg.Ledger.PageSize = -1
	cfg.Retry.MaxTries = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.page_size")
	assert.Contains(t, err.Error(), "retry.max_tries")
}
