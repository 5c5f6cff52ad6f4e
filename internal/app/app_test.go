package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/store"
)

func TestNewAppMemory(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Driver = config.DriverMemory

	a, cleanup, err := NewApp(cfg, store.Migrations)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, events.NopPublisher{}, a.Publisher)
	require.NoError(t, a.Service.Account.EnsureFeeSink(context.Background()))
	ok, err := a.Store.AccountExists(context.Background(), cfg.Ledger.FeeSinkAccount)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewAppSQLite(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "canopy.db")

	_, cleanup, err := NewApp(cfg, store.Migrations)
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err)
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Ledger.CreditDivisor = 3

	_, _, err := NewApp(cfg, store.Migrations)
	assert.ErrorContains(t, err, "ledger.credit_divisor")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/data/canopy.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "canopy.db"), got)

	got, err = ExpandPath("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}
