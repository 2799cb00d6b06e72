package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ctp/internal/config"
	"go-ctp/internal/flat"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

type recorder struct {
	mu     sync.Mutex
	events map[string]int
}

func (r *recorder) Broadcast(msgType string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[string]int)
	}
	r.events[msgType]++
}

func (r *recorder) count(msgType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[msgType]
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		CTP: config.CTPConfig{
			MdFronts:     []string{"tcp://127.0.0.1:20004"},
			TraderFronts: []string{"tcp://127.0.0.1:20002"},
			BrokerID:     "9999",
			InvestorID:   "000001",
			Password:     "secret",
			FlowPath:     t.TempDir(),
			Instruments:  []string{"rb2501"},
		},
		Engine: config.EngineConfig{
			RequestTimeout: 5 * time.Second,
			SweepInterval:  10 * time.Millisecond,
			TickHistory:    8,
		},
	}
}

func newEngine(t *testing.T, cfg *config.Config, simCfg sim.Config) (*Engine, *recorder) {
	t.Helper()
	if simCfg.TradingDay == "" {
		simCfg.TradingDay = "20241015"
	}
	if simCfg.TickInterval == 0 {
		simCfg.TickInterval = 5 * time.Millisecond
	}
	lib := sim.NewLinux(simCfg)
	p, err := shim.New(shim.Linux, lib, shim.PolicySubstitute, nil)
	require.NoError(t, err)
	e := New(cfg, flat.New(p, lib))
	rec := &recorder{}
	e.SetPublisher(rec)
	return e, rec
}

// run starts e and returns a stop func that waits for Run to return.
func run(t *testing.T, e *Engine) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(5 * time.Second):
				t.Error("engine did not stop")
			}
		})
	}
	t.Cleanup(stop)
	return stop
}

func waitReady(t *testing.T, e *Engine) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.TraderState() == StateReady && e.MdState() == StateLoggedIn
	}, 5*time.Second, 5*time.Millisecond)
}

func TestEngineReachesReadyAndLoadsState(t *testing.T) {
	// A burst of one forces the startup queries through the deferred queue.
	e, rec := newEngine(t, testConfig(t), sim.Config{QueryRate: 20, QueryBurst: 1})
	run(t, e)
	waitReady(t, e)

	require.Eventually(t, func() bool {
		_, ok := e.Store().GetAccount()
		return ok && len(e.Status().Deferred) == 0 && len(e.Pending()) == 0
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool { return len(e.Ticks("rb2501")) > 0 }, 5*time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, len(e.Ticks("rb2501")), 8)

	st := e.Status()
	assert.Equal(t, "20241015", st.TradingDay)
	assert.Equal(t, shim.Linux, st.Platform)
	assert.NotZero(t, st.FrontID)
	assert.Empty(t, st.RecentErrors)
	assert.Equal(t, "rb2501", st.LatestInstrument)
	assert.GreaterOrEqual(t, st.Counters.RequestCount, int64(7))
	assert.Equal(t, 1, st.Handles["md_api"])
	assert.Equal(t, 1, st.Handles["trader_spi"])
	assert.Positive(t, rec.count("tick"))
	assert.Positive(t, rec.count("account"))

	acc, _ := e.Store().GetAccount()
	assert.Positive(t, acc.Balance)
}

func TestEngineStopReleasesHandles(t *testing.T) {
	e, _ := newEngine(t, testConfig(t), sim.Config{QueryRate: -1})
	stop := run(t, e)
	waitReady(t, e)
	stop()

	for kind, n := range e.api.Handles() {
		assert.Zero(t, n, kind)
	}
	e.Stop()
}

func TestInsertOrderFillsAndRefreshesPositions(t *testing.T) {
	e, rec := newEngine(t, testConfig(t), sim.Config{QueryRate: -1})
	run(t, e)
	waitReady(t, e)

	order, err := e.InsertOrder(OrderRequest{InstrumentID: "rb2501", ExchangeID: "SHFE", Direction: "buy", Offset: "open", Volume: 2})
	require.NoError(t, err)
	assert.Equal(t, "submitted", order.Status)

	require.Eventually(t, func() bool {
		o, ok := e.Store().GetOrder(order.Key)
		return ok && o.Status == "all_traded"
	}, 5*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		for _, p := range e.Positions() {
			if p.InstrumentID == "rb2501" && p.Direction == "long" && p.Position == 2 {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool { return len(e.Pending()) == 0 }, 5*time.Second, 5*time.Millisecond)
	trades := e.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, int32(2), trades[0].Volume)
	assert.Equal(t, 1, rec.count("trade"))
}

func TestInsertOrderRejectedByVendor(t *testing.T) {
	e, _ := newEngine(t, testConfig(t), sim.Config{QueryRate: -1})
	run(t, e)
	waitReady(t, e)

	order, err := e.InsertOrder(OrderRequest{InstrumentID: "zz9999", Direction: "sell", Price: decimal.NewFromInt(10), Volume: 1})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		o, _ := e.Store().GetOrder(order.Key)
		return o.Status == "rejected"
	}, 5*time.Second, 5*time.Millisecond)

	errs := e.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "order_insert", errs[0].Op)
	assert.Equal(t, int32(sim.ErrInstrumentUnknown), errs[0].ErrorID)
	assert.Equal(t, "CTP:找不到合约", errs[0].Message)
	assert.Empty(t, e.Pending())
}

func TestCancelOrder(t *testing.T) {
	e, _ := newEngine(t, testConfig(t), sim.Config{QueryRate: -1})
	run(t, e)
	waitReady(t, e)

	order, err := e.InsertOrder(OrderRequest{InstrumentID: "rb2501", Direction: "buy", Price: decimal.NewFromInt(1), Volume: 1})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		o, _ := e.Store().GetOrder(order.Key)
		return o.Status == "queued"
	}, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, e.CancelOrder(order.Key))
	require.Eventually(t, func() bool {
		o, _ := e.Store().GetOrder(order.Key)
		return o.Status == "canceled" && len(e.Pending()) == 0
	}, 5*time.Second, 5*time.Millisecond)

	// A second cancel reaches the vendor and comes back as an error.
	require.NoError(t, e.CancelOrder(order.Key))
	require.Eventually(t, func() bool { return len(e.Errors()) == 1 }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, "order_action", e.Errors()[0].Op)
	assert.Equal(t, int32(sim.ErrOrderNotWorking), e.Errors()[0].ErrorID)

	assert.ErrorIs(t, e.CancelOrder("1:1:nope"), ErrUnknownOrder)
}

func TestAuthenticationFailureStopsLogin(t *testing.T) {
	cfg := testConfig(t)
	cfg.CTP.AppID = "client_app"
	cfg.CTP.AuthCode = "wrong"
	e, _ := newEngine(t, cfg, sim.Config{AppID: "client_app", AuthCode: "right", QueryRate: -1})
	run(t, e)

	require.Eventually(t, func() bool { return len(e.Errors()) > 0 }, 5*time.Second, 5*time.Millisecond)
	rerr := e.Errors()[0]
	assert.Equal(t, "authenticate", rerr.Op)
	assert.Equal(t, int32(sim.ErrAuthFailed), rerr.ErrorID)
	assert.Equal(t, StateConnected, e.TraderState())

	var target *RspError
	assert.True(t, errors.As(error(rerr), &target))
}

func TestTradingCallsBeforeReady(t *testing.T) {
	e, _ := newEngine(t, testConfig(t), sim.Config{})

	_, err := e.InsertOrder(OrderRequest{InstrumentID: "rb2501", Direction: "buy", Volume: 1})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, e.Query("account"), ErrNotReady)

	for _, bad := range []OrderRequest{
		{Direction: "buy", Volume: 1},
		{InstrumentID: "rb2501", Direction: "buy"},
		{InstrumentID: "rb2501", Direction: "hold", Volume: 1},
		{InstrumentID: "rb2501", Direction: "buy", Offset: "roll", Volume: 1},
		{InstrumentID: "rb2501", Direction: "buy", Price: decimal.NewFromInt(-1), Volume: 1},
	} {
		_, err := e.InsertOrder(bad)
		assert.ErrorIs(t, err, ErrInvalidOrder, "%+v", bad)
	}
}

func TestStepExpiresUnansweredRequests(t *testing.T) {
	e, rec := newEngine(t, testConfig(t), sim.Config{})
	e.corr = NewCorrelator(time.Second)
	id := e.corr.Track("qry_notice")
	e.corr.Track("qry_notice")

	e.step(time.Now().Add(2 * time.Second))

	assert.Empty(t, e.Pending())
	assert.Equal(t, 2, rec.count("timeout"))
	e.mu.Lock()
	assert.Equal(t, int64(2), e.counters.TimeoutCount)
	e.mu.Unlock()

	_, known := e.corr.Observe(id, true)
	assert.False(t, known, "a late response after expiry is uncorrelated")
}
