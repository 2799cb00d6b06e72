package shim

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
	"go-ctp/internal/sim"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

type loginSpi struct {
	sdk.NoOpTraderSpi
	connected chan struct{}
	login     chan int
}

func (s *loginSpi) OnFrontConnected() { s.connected <- struct{}{} }
func (s *loginSpi) OnRspUserLogin(_ *model.RspUserLoginField, info *model.RspInfoField, id int, _ bool) {
	if info != nil && info.ErrorID != 0 {
		s.login <- -int(info.ErrorID)
		return
	}
	s.login <- id
}

func wait[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
		var zero T
		return zero
	}
}

func TestNative(t *testing.T) {
	if runtime.GOOS == "darwin" {
		assert.Equal(t, Darwin, Native())
	} else {
		assert.Equal(t, Linux, Native())
	}
}

func TestNewChecksCapability(t *testing.T) {
	cfg := sim.Config{TradingDay: "20241015"}

	_, err := New(Linux, sim.NewDarwin(cfg), PolicySubstitute, nil)
	assert.ErrorIs(t, err, ErrCapability)
	_, err = New(Darwin, sim.NewLinux(cfg), PolicySubstitute, nil)
	assert.ErrorIs(t, err, ErrCapability)
	_, err = New(Linux, nil, PolicySubstitute, nil)
	assert.ErrorIs(t, err, ErrCapability)

	_, err = New("plan9", sim.NewLinux(cfg), PolicySubstitute, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCapability))
	_, err = New(Linux, sim.NewLinux(cfg), Policy("maybe"), nil)
	require.Error(t, err)

	p, err := New(Darwin, sim.NewDarwin(cfg), "", nil)
	require.NoError(t, err)
	assert.Equal(t, Darwin, p.Name())
}

func TestLinuxHonoursMdProduction(t *testing.T) {
	log, logs := observed()
	p, err := New(Linux, sim.NewLinux(sim.Config{}), PolicySubstitute, log)
	require.NoError(t, err)

	md := p.CreateMdApi("", false, false, true)
	defer md.Release()
	assert.True(t, md.(*sim.MdApi).Production())
	assert.Zero(t, logs.Len())
}

func TestDarwinIgnoresProductionWithOneWarning(t *testing.T) {
	log, logs := observed()
	p, err := New(Darwin, sim.NewDarwin(sim.Config{}), PolicySubstitute, log)
	require.NoError(t, err)

	md := p.CreateMdApi("", false, false, true)
	defer md.Release()
	assert.False(t, md.(*sim.MdApi).Production())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "md_production_flag_ignored", logs.All()[0].Message)

	md2 := p.CreateMdApi("", false, false, false)
	defer md2.Release()
	assert.Equal(t, 1, logs.Len(), "no warning without the flag")
}

func TestTraderProductionIgnoredOnBoth(t *testing.T) {
	for _, tc := range []struct {
		name string
		lib  sdk.Library
	}{
		{Linux, sim.NewLinux(sim.Config{})},
		{Darwin, sim.NewDarwin(sim.Config{})},
	} {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observed()
			p, err := New(tc.name, tc.lib, PolicySubstitute, log)
			require.NoError(t, err)
			api := p.CreateTraderApi("", true)
			defer api.Release()
			require.Equal(t, 1, logs.FilterMessage("trader_production_flag_ignored").Len())
		})
	}
}

func TestDarwinLoginSucceeds(t *testing.T) {
	log, logs := observed()
	p, err := New(Darwin, sim.NewDarwin(sim.Config{TradingDay: "20241015"}), PolicySubstitute, log)
	require.NoError(t, err)

	api := p.CreateTraderApi(t.TempDir(), true)
	defer api.Release()
	spi := &loginSpi{connected: make(chan struct{}, 1), login: make(chan int, 1)}
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10130")
	api.Init()
	wait(t, spi.connected)

	require.Equal(t, sdk.CodeOK, p.ReqUserLogin(api, &model.ReqUserLoginField{}, 42))
	assert.Equal(t, 42, wait(t, spi.login))
	assert.Equal(t, 1, logs.Len(), "only the production warning")
	assert.Empty(t, api.(*sim.DarwinTrader).SystemInfoCalls())
}

func TestLinuxLoginAndWechat(t *testing.T) {
	p, err := New(Linux, sim.NewLinux(sim.Config{}), PolicyReject, nil)
	require.NoError(t, err)

	api := p.CreateTraderApi("", false)
	defer api.Release()
	spi := &loginSpi{connected: make(chan struct{}, 1), login: make(chan int, 1)}
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10130")
	api.Init()
	wait(t, spi.connected)

	require.Equal(t, sdk.CodeOK, p.ReqUserLogin(api, &model.ReqUserLoginField{}, 7))
	assert.Equal(t, 7, wait(t, spi.login))

	info := &model.WechatUserSystemInfoField{WechatCltSysInfoLen: 3}
	assert.Equal(t, sdk.CodeOK, p.RegisterWechatUserSystemInfo(api, info))
	assert.Equal(t, sdk.CodeOK, p.SubmitWechatUserSystemInfo(api, info))
	assert.Equal(t, []string{"register_wechat", "submit_wechat"}, api.(*sim.LinuxTrader).SystemInfoCalls())
}

func TestDarwinWechatPolicy(t *testing.T) {
	t.Run("substitute", func(t *testing.T) {
		log, logs := observed()
		p, err := New(Darwin, sim.NewDarwin(sim.Config{}), PolicySubstitute, log)
		require.NoError(t, err)
		api := p.CreateTraderApi("", false)
		defer api.Release()

		info := &model.WechatUserSystemInfoField{WechatCltSysInfoLen: 3}
		copy(info.WechatCltSysInfo[:], "abc")
		assert.Equal(t, sdk.CodeOK, p.RegisterWechatUserSystemInfo(api, info))
		assert.Equal(t, sdk.CodeNetwork, p.SubmitWechatUserSystemInfo(api, info), "submit needs a connection")
		assert.Equal(t, []string{"register"}, api.(*sim.DarwinTrader).SystemInfoCalls())
		assert.Equal(t, 2, logs.FilterMessage("wechat_system_info_substituted").Len())
	})

	t.Run("reject", func(t *testing.T) {
		log, logs := observed()
		p, err := New(Darwin, sim.NewDarwin(sim.Config{}), PolicyReject, log)
		require.NoError(t, err)
		api := p.CreateTraderApi("", false)
		defer api.Release()

		assert.Equal(t, CodeUnsupported, p.RegisterWechatUserSystemInfo(api, &model.WechatUserSystemInfoField{}))
		assert.Equal(t, CodeUnsupported, p.SubmitWechatUserSystemInfo(api, &model.WechatUserSystemInfoField{}))
		assert.Empty(t, api.(*sim.DarwinTrader).SystemInfoCalls())
		assert.Equal(t, 2, logs.FilterMessage("wechat_system_info_rejected").Len())
	})
}

func TestGenericInfoCopiesSharedFields(t *testing.T) {
	var w model.WechatUserSystemInfoField
	model.SetText(w.BrokerID[:], "9999")
	w.WechatCltSysInfoLen = 2
	w.ClientIPPort = 8080
	g := genericInfo(&w)
	assert.Equal(t, "9999", model.Text(g.BrokerID[:]))
	assert.EqualValues(t, 2, g.ClientSystemInfoLen)
	assert.EqualValues(t, 8080, g.ClientIPPort)
	assert.Nil(t, genericInfo(nil))
}
