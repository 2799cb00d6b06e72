package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  platform: darwin
log:
  level: debug
  logFilePath: logs/ctp.log
ctp:
  mdFronts: ["tcp://10.0.0.1:41213"]
  brokerId: "4040"
  investorId: "000001"
  password: secret
  instruments: [rb2501, au2502]
sim:
  tradingDay: "20241015"
  tickInterval: 500ms
engine:
  requestTimeout: 3s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "darwin", cfg.App.Platform)
	assert.Equal(t, "substitute", cfg.App.WechatPolicy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs/ctp.log", cfg.Log.LogFilePath)
	assert.Equal(t, []string{"tcp://10.0.0.1:41213"}, cfg.CTP.MdFronts)
	assert.Equal(t, []string{"tcp://127.0.0.1:20002"}, cfg.CTP.TraderFronts)
	assert.Equal(t, "4040", cfg.CTP.BrokerID)
	assert.Equal(t, []string{"rb2501", "au2502"}, cfg.CTP.Instruments)
	assert.Equal(t, "20241015", cfg.Sim.TradingDay)
	assert.Equal(t, 500*time.Millisecond, cfg.Sim.TickInterval)
	assert.Equal(t, 3*time.Second, cfg.Engine.RequestTimeout)
	assert.Equal(t, time.Second, cfg.Engine.SweepInterval)
	assert.Equal(t, ":8080", cfg.API.ListenAddress)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("CTP_BROKER_ID", "9999")
	t.Setenv("CTP_INSTRUMENTS", " IF2412, ,ag2506 ")
	t.Setenv("CTP_TRADER_FRONT_ADDRESS", "tcp://a:1,tcp://b:2")
	t.Setenv("CTP_PRODUCTION", "true")
	t.Setenv("CTP_WECHAT_POLICY", "reject")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.CTP.BrokerID)
	assert.Equal(t, []string{"IF2412", "ag2506"}, cfg.CTP.Instruments)
	assert.Equal(t, []string{"tcp://a:1", "tcp://b:2"}, cfg.CTP.TraderFronts)
	assert.True(t, cfg.CTP.Production)
	assert.Equal(t, "reject", cfg.App.WechatPolicy)
	assert.Equal(t, "000001", cfg.CTP.InvestorID, "unset variables keep file values")
}

func TestEnvironmentOnly(t *testing.T) {
	t.Setenv("CTP_INVESTOR_ID", "000002")
	t.Setenv("CTP_PASSWORD", "pw")
	t.Setenv("CTP_APP_ID", "client_go_1.0")
	t.Setenv("CTP_AUTH_CODE", "0000000000000000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "000002", cfg.CTP.InvestorID)
	assert.Equal(t, "9999", cfg.CTP.BrokerID)
	assert.Equal(t, "./flow", cfg.CTP.FlowPath)
	assert.Equal(t, "client_go_1.0", cfg.Sim.AppID, "sim authenticates with the configured app")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestMissingCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, "ctp:\n  investorId: \"1\"\n"))
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Load("")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  platform: plan9\nctp:\n  investorId: \"1\"\n  password: x\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissing)

	_, err = Load(writeConfig(t, "ctp: [unclosed"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
