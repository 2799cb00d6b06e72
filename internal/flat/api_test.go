package flat

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-ctp/internal/bridge"
	"go-ctp/internal/handle"
	"go-ctp/internal/metrics"
	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

const front = "tcp://127.0.0.1:10130"

func newAPI(t *testing.T, platform string, opts ...Option) *API {
	t.Helper()
	cfg := sim.Config{TradingDay: "20241015", QueryRate: -1}
	var lib sdk.Library
	if platform == shim.Darwin {
		lib = sim.NewDarwin(cfg)
	} else {
		lib = sim.NewLinux(cfg)
	}
	p, err := shim.New(platform, lib, shim.PolicySubstitute, nil)
	require.NoError(t, err)
	return New(p, lib, opts...)
}

func TestNullHandleSentinels(t *testing.T) {
	api := newAPI(t, shim.Linux)
	v := reflect.ValueOf(api)
	handleType := reflect.TypeOf(handle.Null)

	var checked int
	for i := range v.NumMethod() {
		m := v.Type().Method(i)
		mt := m.Type
		if mt.NumIn() < 2 || mt.In(1) != handleType || strings.HasPrefix(m.Name, "Destroy") {
			continue
		}
		args := make([]reflect.Value, mt.NumIn()-1)
		for j := range args {
			args[j] = reflect.Zero(mt.In(j + 1))
		}
		out := v.Method(i).Call(args)
		require.Len(t, out, 1, m.Name)
		switch r := out[0].Interface().(type) {
		case int:
			assert.Equal(t, StatusNullHandle, r, m.Name)
		case string:
			assert.Empty(t, r, m.Name)
		default:
			t.Fatalf("%s returns %T", m.Name, r)
		}
		checked++
	}
	assert.Greater(t, checked, 60)
}

func TestStaleAndWrongKindHandles(t *testing.T) {
	api := newAPI(t, shim.Linux)
	md := api.CreateMdApi(t.TempDir(), false, false, false)
	trader := api.CreateTraderApi(t.TempDir(), false)
	require.NotEqual(t, handle.Null, md)
	require.NotEqual(t, handle.Null, trader)

	assert.Equal(t, StatusNullHandle, api.TraderInit(md), "md handle on trader call")
	assert.Equal(t, StatusNullHandle, api.MdInit(trader), "trader handle on md call")

	require.Equal(t, 0, api.MdRelease(md))
	assert.Equal(t, StatusNullHandle, api.MdInit(md))
	assert.Equal(t, StatusNullHandle, api.MdRelease(md))
	assert.Equal(t, 0, api.TraderRelease(trader))
	assert.Equal(t, 0, api.Handles()["md_api"])
}

func TestDestroyBridgeTwice(t *testing.T) {
	api := newAPI(t, shim.Linux)
	md := api.CreateMdSpiBridge(bridge.MdCallbacks{})
	tr := api.CreateTraderSpiBridge(bridge.TraderCallbacks{})

	assert.Equal(t, 0, api.DestroyMdSpiBridge(md))
	assert.Equal(t, StatusNullHandle, api.DestroyMdSpiBridge(md))
	assert.Equal(t, StatusNullHandle, api.DestroyMdSpiBridge(tr), "wrong kind")
	assert.Equal(t, 0, api.DestroyTraderSpiBridge(tr))
	assert.Equal(t, StatusNullHandle, api.DestroyTraderSpiBridge(tr))
	assert.Equal(t, StatusNullHandle, api.DestroyTraderSpiBridge(handle.Null))
}

func TestRegisterSpiRejectsStaleAdapter(t *testing.T) {
	api := newAPI(t, shim.Linux)
	md := api.CreateMdApi("", false, false, false)
	defer api.MdRelease(md)

	spi := api.CreateMdSpiBridge(bridge.MdCallbacks{})
	assert.Equal(t, 0, api.MdRegisterSpi(md, spi))
	api.DestroyMdSpiBridge(spi)
	assert.Equal(t, StatusNullHandle, api.MdRegisterSpi(md, spi))
	assert.Equal(t, 0, api.MdRegisterSpi(md, handle.Null))
}

type mdSession struct {
	connected chan struct{}
	login     chan [2]int
	api       *API
	md        handle.Handle
	submit    atomic.Int32
}

// TestConnectLoginScenario drives connect then login with request id 42
// using a table with only two entries.
func TestConnectLoginScenario(t *testing.T) {
	for _, platform := range []string{shim.Linux, shim.Darwin} {
		t.Run(platform, func(t *testing.T) {
			api := newAPI(t, platform)
			s := &mdSession{connected: make(chan struct{}, 1), login: make(chan [2]int, 4), api: api}

			cb := bridge.MdCallbacks{
				UserData: unsafe.Pointer(s),
				OnFrontConnected: func(ud unsafe.Pointer) {
					st := (*mdSession)(ud)
					var req model.ReqUserLoginField
					model.SetText(req.BrokerID[:], "9999")
					st.submit.Store(int32(st.api.MdReqUserLogin(st.md, unsafe.Pointer(&req), 42)))
					st.connected <- struct{}{}
				},
				OnRspUserLogin: func(ud unsafe.Pointer, payload unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
					if assert.NotNil(t, payload) {
						assert.Equal(t, "20241015", model.Text((*model.RspUserLoginField)(payload).TradingDay[:]))
					}
					assert.True(t, info.OK())
					(*mdSession)(ud).login <- [2]int{requestID, isLast}
				},
			}

			s.md = api.CreateMdApi(t.TempDir(), false, false, false)
			spi := api.CreateMdSpiBridge(cb)
			require.Equal(t, 0, api.MdRegisterSpi(s.md, spi))
			require.Equal(t, 0, api.MdRegisterFront(s.md, front))
			require.Equal(t, 0, api.MdInit(s.md))

			select {
			case <-s.connected:
			case <-time.After(2 * time.Second):
				t.Fatal("no OnFrontConnected")
			}
			assert.EqualValues(t, 0, s.submit.Load())
			select {
			case got := <-s.login:
				assert.Equal(t, [2]int{42, 1}, got)
			case <-time.After(2 * time.Second):
				t.Fatal("no OnRspUserLogin")
			}
			assert.Equal(t, "20241015", api.MdGetTradingDay(s.md))

			require.Equal(t, 0, api.MdRelease(s.md))
			require.Equal(t, 0, api.DestroyMdSpiBridge(spi))
			assert.Empty(t, s.login, "exactly one final response")
		})
	}
}

func TestTraderLoginThroughPlatform(t *testing.T) {
	for _, platform := range []string{shim.Linux, shim.Darwin} {
		t.Run(platform, func(t *testing.T) {
			api := newAPI(t, platform)
			connected := make(chan struct{}, 1)
			results := make(chan [3]int, 8)
			spi := api.CreateTraderSpiBridge(bridge.TraderCallbacks{
				OnFrontConnected: func(unsafe.Pointer) { connected <- struct{}{} },
				OnRspUserLogin: func(_ unsafe.Pointer, _ unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
					var code int
					if info != nil {
						code = int(info.ErrorID)
					}
					results <- [3]int{requestID, isLast, code}
				},
			})
			h := api.CreateTraderApi(t.TempDir(), true)
			defer api.TraderRelease(h)
			require.Equal(t, 0, api.TraderRegisterSpi(h, spi))
			require.Equal(t, 0, api.TraderSubscribePrivateTopic(h, int(model.ResumeQuick)))
			require.Equal(t, 0, api.TraderSubscribePublicTopic(h, int(model.ResumeQuick)))
			require.Equal(t, 0, api.TraderRegisterFront(h, front))
			require.Equal(t, 0, api.TraderInit(h))
			<-connected

			var req model.ReqUserLoginField
			require.Equal(t, 0, api.TraderReqUserLogin(h, unsafe.Pointer(&req), 7))
			select {
			case got := <-results:
				assert.Equal(t, [3]int{7, 1, 0}, got)
			case <-time.After(2 * time.Second):
				t.Fatal("no login response")
			}

			var info model.FrontInfoField
			require.Equal(t, 0, api.TraderGetFrontInfo(h, unsafe.Pointer(&info)))
			assert.Equal(t, front, model.Text(info.FrontAddr[:]))
		})
	}
}

func TestCountRule(t *testing.T) {
	api := newAPI(t, shim.Linux)
	h := api.CreateMdApi("", false, false, false)
	defer api.MdRelease(h)

	ids := []string{"rb2501", "au2502", "IF2412"}
	assert.Equal(t, []string{"rb2501", "au2502"}, instrumentIDs(ids, 2))
	assert.Equal(t, ids, instrumentIDs(ids, 10))
	assert.Nil(t, instrumentIDs(ids, 0))
	assert.Nil(t, instrumentIDs(ids, -3))

	got := instrumentIDs(ids, 3)
	got[0] = "changed"
	assert.Equal(t, "rb2501", ids[0], "caller slice untouched")

	assert.Equal(t, sdk.CodeNetwork, api.MdSubscribeMarketData(h, ids, 2), "not connected yet")
	assert.Equal(t, sdk.CodeOK, api.MdSubscribeMarketData(h, ids, 0), "empty set is accepted")
}

type panicking struct{ sdk.MdApi }

func (panicking) Init() { panic("vendor exploded") }

type panicPlatform struct{ shim.Platform }

func (panicPlatform) CreateMdApi(string, bool, bool, bool) sdk.MdApi { return panicking{} }
func (panicPlatform) CreateTraderApi(string, bool) sdk.TraderApi     { panic("no trader") }

func TestVendorPanicBecomesStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	lib := sim.NewLinux(sim.Config{})
	p, err := shim.New(shim.Linux, lib, shim.PolicySubstitute, nil)
	require.NoError(t, err)
	api := New(panicPlatform{p}, lib, WithMetrics(m))

	h := api.CreateMdApi("", false, false, false)
	require.NotEqual(t, handle.Null, h)
	assert.Equal(t, StatusPanic, api.MdInit(h))
	assert.Equal(t, StatusPanic, api.MdReqUserLogin(h, nil, 1), "nil embedded interface")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("MdInit", metrics.OutcomePanic)))

	assert.Equal(t, handle.Null, api.CreateTraderApi("", false))
}

func TestVersionLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	api := newAPI(t, shim.Linux, WithLogger(zap.New(core)))

	a := api.CreateMdApi("", false, false, false)
	b := api.CreateMdApi("", false, false, false)
	defer api.MdRelease(a)
	defer api.MdRelease(b)

	entries := logs.FilterMessage("vendor_version").All()
	require.Len(t, entries, 1)
	assert.Equal(t, api.MdApiVersion(), entries[0].ContextMap()["md"])
	assert.NotEmpty(t, api.TraderApiVersion())
}

func TestNormalizeFlowPath(t *testing.T) {
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := NormalizeFlowPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "flow")+string(filepath.Separator), got)
	assert.DirExists(t, got)

	got, err = NormalizeFlowPath("md/a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "md", "a")+string(filepath.Separator), got)

	blocker := filepath.Join(cwd, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	_, err = NormalizeFlowPath(filepath.Join(blocker, "x"))
	assert.Error(t, err)
}

func TestWechatRejectOnDarwin(t *testing.T) {
	lib := sim.NewDarwin(sim.Config{})
	p, err := shim.New(shim.Darwin, lib, shim.PolicyReject, nil)
	require.NoError(t, err)
	api := New(p, lib)

	h := api.CreateTraderApi("", false)
	defer api.TraderRelease(h)
	var info model.WechatUserSystemInfoField
	assert.Equal(t, StatusUnsupported, api.TraderRegisterWechatUserSystemInfo(h, unsafe.Pointer(&info)))
	assert.Equal(t, "darwin", api.Platform())
}

func TestMetricsCountOutcomes(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	api := newAPI(t, shim.Linux, WithMetrics(m))

	api.MdInit(handle.Null)
	h := api.CreateMdApi("", false, false, false)
	defer api.MdRelease(h)
	api.MdRegisterFront(h, front)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("MdInit", metrics.OutcomeNullHandle)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("MdRegisterFront", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Handles.WithLabelValues("md_api")))
}
