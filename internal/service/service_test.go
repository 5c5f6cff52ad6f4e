package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
	"github.com/hance08/canopy/internal/store/memory"
)

type testEnv struct {
	svc       *Service
	repo      store.Repository
	cfg       *config.Config
	published *events.Recorder
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, memory.New(), mutate...)
}

func newTestEnvWithRepo(t *testing.T, repo store.Repository, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Database.Driver = config.DriverMemory
	cfg.Retry.InitialInterval = time.Millisecond
	cfg.Retry.MaxInterval = 5 * time.Millisecond
	for _, m := range mutate {
		m(cfg)
	}

	rec := &events.Recorder{}
	svc, err := NewService(repo, cfg, rec)
	require.NoError(t, err)
	require.NoError(t, svc.Account.EnsureFeeSink(context.Background()))
	return &testEnv{svc: svc, repo: repo, cfg: cfg, published: rec}
}

func (e *testEnv) seed(t *testing.T, id string, balance int64, vendor bool) {
	t.Helper()
	ctx := context.Background()
	_, err := e.svc.Account.Create(ctx, id, id+"@example.com")
	require.NoError(t, err)
	if balance > 0 {
		_, err = e.svc.Account.Deposit(ctx, id, balance)
		require.NoError(t, err)
	}
	if vendor {
		require.NoError(t, e.svc.Account.SetVendor(ctx, id, true))
	}
}

func (e *testEnv) account(t *testing.T, id string) *model.Account {
	t.Helper()
	acc, err := e.repo.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc
}

func (e *testEnv) pool(t *testing.T) *model.GlobalPool {
	t.Helper()
	p, err := e.repo.GetPool(context.Background())
	require.NoError(t, err)
	return p
}
