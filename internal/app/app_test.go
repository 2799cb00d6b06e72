package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ctp/internal/config"
	"go-ctp/internal/engine"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

func testConfig(t *testing.T, platform string) *config.Config {
	t.Setenv("CTP_INVESTOR_ID", "000001")
	t.Setenv("CTP_PASSWORD", "secret")
	t.Setenv("CTP_PLATFORM", platform)
	t.Setenv("CTP_FLOW_PATH", t.TempDir())
	t.Setenv("CTP_LISTEN_ADDRESS", "127.0.0.1:0")

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Sim.TickInterval = 5 * time.Millisecond
	cfg.Sim.QueryRate = -1
	cfg.Engine.SweepInterval = 10 * time.Millisecond
	return cfg
}

func TestRunReachesReadyAndShutsDownCleanly(t *testing.T) {
	for _, platform := range []string{shim.Linux, shim.Darwin} {
		t.Run(platform, func(t *testing.T) {
			a, err := New(testConfig(t, platform))
			require.NoError(t, err)
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- a.Run(ctx) }()

			require.Eventually(t, func() bool {
				return a.Engine().TraderState() == engine.StateReady
			}, 5*time.Second, 10*time.Millisecond)
			assert.Equal(t, platform, a.Engine().Status().Platform)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("app did not stop")
			}
			for kind, n := range a.flat.Handles() {
				assert.Zero(t, n, kind)
			}
		})
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	cfg := testConfig(t, shim.Linux)
	cfg.App.WechatPolicy = "ignore"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewLibraryMatchesPlatform(t *testing.T) {
	_, ok := newLibrary(shim.Darwin, sim.Config{}).(sdk.MdFactory)
	assert.True(t, ok)
	_, ok = newLibrary(shim.Linux, sim.Config{}).(sdk.MdFactoryWithProduction)
	assert.True(t, ok)
}
