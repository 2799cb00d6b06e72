package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

type event struct {
	name   string
	id     int
	last   bool
	errID  int32
	detail string
	rec    any
}

type traderSpi struct {
	sdk.NoOpTraderSpi
	events chan event
	block  chan struct{}
}

func newTraderSpi() *traderSpi {
	return &traderSpi{events: make(chan event, 256)}
}

func errID(info *model.RspInfoField) int32 {
	if info == nil {
		return 0
	}
	return info.ErrorID
}

func (s *traderSpi) OnFrontConnected() { s.events <- event{name: "connected"} }
func (s *traderSpi) OnFrontDisconnected(reason int) {
	s.events <- event{name: "disconnected", id: reason}
}
func (s *traderSpi) OnHeartBeatWarning(lapse int) { s.events <- event{name: "heartbeat", id: lapse} }
func (s *traderSpi) OnRspAuthenticate(_ *model.RspAuthenticateField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "auth", id: id, last: last, errID: errID(info)}
}
func (s *traderSpi) OnRspUserLogin(rsp *model.RspUserLoginField, info *model.RspInfoField, id int, last bool) {
	if s.block != nil {
		s.events <- event{name: "login_entered"}
		<-s.block
	}
	s.events <- event{name: "login", id: id, last: last, errID: errID(info), detail: model.Text(rsp.TradingDay[:])}
}
func (s *traderSpi) OnRspUserLogout(_ *model.UserLogoutField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "logout", id: id, last: last, errID: errID(info)}
}
func (s *traderSpi) OnRspError(info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "error", id: id, last: last, errID: errID(info)}
}
func (s *traderSpi) OnRspOrderInsert(_ *model.InputOrderField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "rsp_insert", id: id, last: last, errID: errID(info)}
}
func (s *traderSpi) OnErrRtnOrderInsert(_ *model.InputOrderField, info *model.RspInfoField) {
	s.events <- event{name: "err_insert", errID: errID(info)}
}
func (s *traderSpi) OnRspOrderAction(_ *model.InputOrderActionField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "rsp_action", id: id, last: last, errID: errID(info)}
}
func (s *traderSpi) OnErrRtnOrderAction(_ *model.OrderActionField, info *model.RspInfoField) {
	s.events <- event{name: "err_action", errID: errID(info)}
}
func (s *traderSpi) OnRtnOrder(o *model.OrderField) {
	s.events <- event{name: "order", detail: string(o.OrderStatus), rec: *o}
}
func (s *traderSpi) OnRtnTrade(t *model.TradeField) {
	s.events <- event{name: "trade", rec: *t}
}
func (s *traderSpi) OnRtnInstrumentStatus(st *model.InstrumentStatusField) {
	s.events <- event{name: "status", detail: model.Text(st.InstrumentID[:])}
}
func (s *traderSpi) OnRspQryInstrument(in *model.InstrumentField, info *model.RspInfoField, id int, last bool) {
	ev := event{name: "instrument", id: id, last: last, errID: errID(info)}
	if in != nil {
		ev.detail = model.Text(in.InstrumentID[:])
		ev.rec = in
	}
	s.events <- ev
}
func (s *traderSpi) OnRspQryOrder(o *model.OrderField, _ *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "qry_order", id: id, last: last, rec: o}
}
func (s *traderSpi) OnRspQryInvestorPosition(p *model.InvestorPositionField, _ *model.RspInfoField, id int, last bool) {
	ev := event{name: "position", id: id, last: last}
	if p != nil {
		ev.rec = *p
	}
	s.events <- ev
}
func (s *traderSpi) OnRspQrySettlementInfo(si *model.SettlementInfoField, _ *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "settlement", id: id, last: last, detail: model.Text(si.Content[:])}
}
func (s *traderSpi) OnRspQryMaxOrderVolume(v *model.QryMaxOrderVolumeField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "max_volume", id: id, last: last, errID: errID(info), rec: v.MaxVolume}
}

func (s *traderSpi) next(t *testing.T) event {
	t.Helper()
	select {
	case ev := <-s.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
		return event{}
	}
}

// expect skips events until one named name arrives.
func (s *traderSpi) expect(t *testing.T, name string) event {
	t.Helper()
	for {
		if ev := s.next(t); ev.name == name {
			return ev
		}
	}
}

func testConfig(t *testing.T) Config {
	return Config{
		TradingDay: "20241015",
		QueryRate:  -1,
		Logger:     zaptest.NewLogger(t),
	}
}

func startTrader(t *testing.T, cfg Config) (*LinuxTrader, *traderSpi) {
	t.Helper()
	lib := NewLinux(cfg)
	api := lib.CreateTraderApi(t.TempDir()).(*LinuxTrader)
	spi := newTraderSpi()
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10130")
	api.Init()
	t.Cleanup(api.Release)
	spi.expect(t, "connected")
	return api, spi
}

func login(t *testing.T, api *LinuxTrader, spi *traderSpi) {
	t.Helper()
	var req model.ReqUserLoginField
	model.SetText(req.BrokerID[:], "9999")
	model.SetText(req.UserID[:], "000001")
	model.SetText(req.Password[:], "secret")
	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&req, 1))
	ev := spi.expect(t, "login")
	require.Zero(t, ev.errID)
}

func orderReq(instrument string, dir, offset byte, price float64, volume int32) *model.InputOrderField {
	var r model.InputOrderField
	model.SetText(r.BrokerID[:], "9999")
	model.SetText(r.InvestorID[:], "000001")
	model.SetText(r.InstrumentID[:], instrument)
	model.SetText(r.OrderRef[:], "1")
	r.Direction = dir
	r.CombOffsetFlag[0] = offset
	r.CombHedgeFlag[0] = model.HedgeSpeculation
	r.OrderPriceType = model.PriceTypeLimitPrice
	r.LimitPrice = price
	r.VolumeTotalOriginal = volume
	return &r
}

func TestRequestBeforeConnectFails(t *testing.T) {
	api := NewLinux(testConfig(t)).CreateTraderApi("").(*LinuxTrader)
	defer api.Release()

	assert.Equal(t, sdk.CodeNetwork, api.ReqUserLogin(&model.ReqUserLoginField{}, 1))
	api.Init()
	assert.Equal(t, sdk.CodeNetwork, api.ReqUserLogin(&model.ReqUserLoginField{}, 1), "no front registered")
}

func TestFlowMarkerWritten(t *testing.T) {
	dir := t.TempDir()
	api := NewLinux(testConfig(t)).CreateTraderApi(dir)
	api.Init()
	api.Release()

	b, err := os.ReadFile(filepath.Join(dir, "TraderTradingDay.con"))
	require.NoError(t, err)
	assert.Equal(t, "20241015", string(b))
}

func TestLoginAndTradingDay(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	assert.Empty(t, api.GetTradingDay())

	login(t, api, spi)
	assert.Equal(t, "20241015", api.GetTradingDay())
	assert.Equal(t, "rb2501", spi.expect(t, "status").detail)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	cfg := testConfig(t)
	cfg.Users = map[string]string{"000002": "other"}
	api, spi := startTrader(t, cfg)

	var req model.ReqUserLoginField
	model.SetText(req.UserID[:], "000001")
	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&req, 5))
	ev := spi.expect(t, "login")
	assert.Equal(t, 5, ev.id)
	assert.True(t, ev.last)
	assert.EqualValues(t, ErrInvalidLogin, ev.errID)
	assert.Empty(t, api.GetTradingDay())
}

func TestLoginRequiresAuthentication(t *testing.T) {
	cfg := testConfig(t)
	cfg.AppID = "client_go_1.0"
	cfg.AuthCode = "0000000000000000"
	api, spi := startTrader(t, cfg)

	var req model.ReqUserLoginField
	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&req, 1))
	assert.EqualValues(t, ErrAuthFailed, spi.expect(t, "login").errID)

	var auth model.ReqAuthenticateField
	model.SetText(auth.AppID[:], cfg.AppID)
	model.SetText(auth.AuthCode[:], "bad")
	require.Equal(t, sdk.CodeOK, api.ReqAuthenticate(&auth, 2))
	assert.EqualValues(t, ErrAuthFailed, spi.expect(t, "auth").errID)

	model.SetText(auth.AuthCode[:], cfg.AuthCode)
	require.Equal(t, sdk.CodeOK, api.ReqAuthenticate(&auth, 3))
	assert.Zero(t, spi.expect(t, "auth").errID)

	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&req, 4))
	assert.Zero(t, spi.expect(t, "login").errID)
}

func TestRequestBeforeLoginGetsRspError(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))

	require.Equal(t, sdk.CodeOK, api.ReqQryInstrument(&model.QryInstrumentField{}, 9))
	ev := spi.expect(t, "error")
	assert.Equal(t, 9, ev.id)
	assert.True(t, ev.last)
	assert.EqualValues(t, ErrNotLoggedIn, ev.errID)
}

func TestQueryPaging(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	require.Equal(t, sdk.CodeOK, api.ReqQryInstrument(&model.QryInstrumentField{}, 11))
	var got []string
	var recs []*model.InstrumentField
	for {
		ev := spi.expect(t, "instrument")
		assert.Equal(t, 11, ev.id)
		got = append(got, ev.detail)
		recs = append(recs, ev.rec.(*model.InstrumentField))
		if ev.last {
			break
		}
	}
	assert.Equal(t, []string{"rb2501", "au2502", "IF2412"}, got)

	var filter model.QryInstrumentField
	model.SetText(filter.InstrumentID[:], "nope")
	require.Equal(t, sdk.CodeOK, api.ReqQryInstrument(&filter, 12))
	ev := spi.expect(t, "instrument")
	assert.Equal(t, 12, ev.id)
	assert.True(t, ev.last)
	assert.Nil(t, ev.rec)

	// The dispatcher is ordered, so the first query has fully returned.
	for _, r := range recs {
		assert.Equal(t, model.InstrumentField{}, *r, "records are scrubbed after the callback")
	}
}

func TestSettlementInfoSpansPages(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	require.Equal(t, sdk.CodeOK, api.ReqQrySettlementInfo(&model.QrySettlementInfoField{}, 3))
	var pages int
	var text string
	for {
		ev := spi.expect(t, "settlement")
		pages++
		text += ev.detail
		if ev.last {
			break
		}
	}
	assert.Greater(t, pages, 1)
	assert.Contains(t, text, "Settlement statement 20241015")
}

func TestQueryRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.QueryRate = 0.001
	cfg.QueryBurst = 1
	api, spi := startTrader(t, cfg)
	login(t, api, spi)

	assert.Equal(t, sdk.CodeOK, api.ReqQryTradingAccount(&model.QryTradingAccountField{}, 1))
	assert.Equal(t, sdk.CodeRateExceeded, api.ReqQryTradingAccount(&model.QryTradingAccountField{}, 2))
	assert.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("rb2501", model.DirectionBuy, model.OffsetOpen, 1, 1), 3),
		"order entry is not throttled")
}

func TestQueueFull(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxPending = 1
	api, spi := startTrader(t, cfg)
	spi.block = make(chan struct{})

	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&model.ReqUserLoginField{}, 1))
	spi.expect(t, "login_entered")

	assert.Equal(t, sdk.CodeOK, api.ReqUserLogout(&model.UserLogoutField{}, 2))
	assert.Equal(t, sdk.CodeTooManyPending, api.ReqUserLogout(&model.UserLogoutField{}, 3))
	close(spi.block)
	spi.expect(t, "login")
	spi.expect(t, "logout")
}

func TestOrderFillsAgainstBook(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	require.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("rb2501", model.DirectionBuy, model.OffsetOpen, 99999, 2), 20))
	accepted := spi.expect(t, "order")
	assert.Equal(t, string(model.OrderStatusNoTradeQueue), accepted.detail)
	trade := spi.expect(t, "trade").rec.(model.TradeField)
	assert.EqualValues(t, 2, trade.Volume)
	assert.Greater(t, trade.Price, 0.0)
	filled := spi.expect(t, "order")
	assert.Equal(t, string(model.OrderStatusAllTraded), filled.detail)

	require.Equal(t, sdk.CodeOK, api.ReqQryInvestorPosition(&model.QryInvestorPositionField{}, 21))
	ev := spi.expect(t, "position")
	require.True(t, ev.last)
	pos := ev.rec.(model.InvestorPositionField)
	assert.EqualValues(t, 2, pos.Position)
	assert.Equal(t, model.PosiDirectionLong, pos.PosiDirection)

	require.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("rb2501", model.DirectionSell, model.OffsetClose, 3, 5), 22))
	assert.EqualValues(t, ErrCloseExceedsPos, spi.expect(t, "rsp_insert").errID)
	assert.EqualValues(t, ErrCloseExceedsPos, spi.expect(t, "err_insert").errID)
}

func TestOrderRejections(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	require.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("zz9999", model.DirectionBuy, model.OffsetOpen, 1, 1), 1))
	ev := spi.expect(t, "rsp_insert")
	assert.Equal(t, 1, ev.id)
	assert.EqualValues(t, ErrInstrumentUnknown, ev.errID)
	assert.EqualValues(t, ErrInstrumentUnknown, spi.expect(t, "err_insert").errID)

	require.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("rb2501", model.DirectionBuy, model.OffsetOpen, 1, 0), 2))
	assert.EqualValues(t, ErrInvalidField, spi.expect(t, "rsp_insert").errID)
}

func TestCancelWorkingOrder(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	require.Equal(t, sdk.CodeOK, api.ReqOrderInsert(orderReq("rb2501", model.DirectionBuy, model.OffsetOpen, 1, 1), 1))
	order := spi.expect(t, "order").rec.(model.OrderField)

	action := model.InputOrderActionField{ExchangeID: order.ExchangeID, OrderSysID: order.OrderSysID, ActionFlag: model.ActionFlagDelete}
	require.Equal(t, sdk.CodeOK, api.ReqOrderAction(&action, 2))
	assert.Equal(t, string(model.OrderStatusCanceled), spi.expect(t, "order").detail)

	require.Equal(t, sdk.CodeOK, api.ReqOrderAction(&action, 3))
	ev := spi.expect(t, "rsp_action")
	assert.Equal(t, 3, ev.id)
	assert.EqualValues(t, ErrOrderNotWorking, ev.errID)
	assert.EqualValues(t, ErrOrderNotWorking, spi.expect(t, "err_action").errID)

	model.SetText(action.OrderSysID[:], "missing")
	require.Equal(t, sdk.CodeOK, api.ReqOrderAction(&action, 4))
	assert.EqualValues(t, ErrOrderNotFound, spi.expect(t, "rsp_action").errID)
}

func TestMaxOrderVolume(t *testing.T) {
	api, spi := startTrader(t, testConfig(t))
	login(t, api, spi)

	var req model.QryMaxOrderVolumeField
	model.SetText(req.InstrumentID[:], "rb2501")
	require.Equal(t, sdk.CodeOK, api.ReqQryMaxOrderVolume(&req, 7))
	ev := spi.expect(t, "max_volume")
	assert.Zero(t, ev.errID)
	assert.Greater(t, ev.rec.(int32), int32(0))
}

func TestReconnectAfterDrop(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReconnectInterval = 20 * time.Millisecond
	cfg.ReconnectFailures = 2
	api, spi := startTrader(t, cfg)
	login(t, api, spi)

	api.DropConnection(ReasonHeartBeatTimeout)
	assert.Equal(t, 30, spi.expect(t, "heartbeat").id)
	assert.Equal(t, ReasonHeartBeatTimeout, spi.expect(t, "disconnected").id)
	assert.Empty(t, api.GetTradingDay())
	assert.Equal(t, sdk.CodeNetwork, api.ReqQryOrder(&model.QryOrderField{}, 1))

	spi.expect(t, "connected")
	assert.True(t, api.Connected())
	login(t, api, spi)
}

func TestJoinReturnsAfterRelease(t *testing.T) {
	api := NewLinux(testConfig(t)).CreateTraderApi("")
	api.Init()

	done := make(chan int)
	go func() { done <- api.Join() }()
	select {
	case <-done:
		t.Fatal("Join returned before Release")
	case <-time.After(20 * time.Millisecond):
	}
	api.Release()
	api.Release()
	assert.Equal(t, 0, <-done)
}

func TestPlatformMethodSets(t *testing.T) {
	cfg := testConfig(t)

	var linux sdk.Library = NewLinux(cfg)
	_, ok := linux.(sdk.MdFactoryWithProduction)
	assert.True(t, ok)
	lt := linux.CreateTraderApi("")
	_, ok = lt.(sdk.TraderLogin)
	assert.True(t, ok)
	_, ok = lt.(sdk.WechatSystemInfo)
	assert.True(t, ok)
	lt.Release()

	var darwin sdk.Library = NewDarwin(cfg)
	_, ok = darwin.(sdk.MdFactory)
	assert.True(t, ok)
	dt := darwin.CreateTraderApi("")
	_, ok = dt.(sdk.TraderLoginWithSystemInfo)
	assert.True(t, ok)
	_, ok = dt.(sdk.WechatSystemInfo)
	assert.False(t, ok)
	dt.Release()

	assert.NotEmpty(t, linux.TraderApiVersion())
	assert.NotEmpty(t, darwin.MdApiVersion())
}

func TestDarwinInlineSystemInfo(t *testing.T) {
	lib := NewDarwin(testConfig(t))
	api := lib.CreateTraderApi(t.TempDir()).(*DarwinTrader)
	spi := newTraderSpi()
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10130")
	api.Init()
	defer api.Release()
	spi.expect(t, "connected")

	assert.Equal(t, sdk.CodeNetwork, api.ReqUserLogin(&model.ReqUserLoginField{}, 1, 10, "short"))
	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&model.ReqUserLoginField{}, 1, 5, "abcde"))
	assert.Zero(t, spi.expect(t, "login").errID)
	assert.Equal(t, []string{"login_inline:5"}, api.SystemInfoCalls())
}

func TestSystemInfoRecording(t *testing.T) {
	api, _ := startTrader(t, testConfig(t))

	info := model.UserSystemInfoField{ClientSystemInfoLen: 4}
	assert.Equal(t, sdk.CodeOK, api.RegisterUserSystemInfo(&info))
	assert.Equal(t, sdk.CodeOK, api.SubmitUserSystemInfo(&info))
	assert.Equal(t, sdk.CodeOK, api.SubmitWechatUserSystemInfo(&model.WechatUserSystemInfoField{}))
	assert.Equal(t, sdk.CodeNetwork, api.RegisterUserSystemInfo(&model.UserSystemInfoField{ClientSystemInfoLen: -1}))
	assert.Equal(t, []string{"register", "submit", "submit_wechat", "register"}, api.SystemInfoCalls())
}

type mdSpi struct {
	sdk.NoOpMdSpi
	events chan event
}

func (s *mdSpi) OnFrontConnected() { s.events <- event{name: "connected"} }
func (s *mdSpi) OnRspUserLogin(_ *model.RspUserLoginField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "login", id: id, last: last, errID: errID(info)}
}
func (s *mdSpi) OnRspError(info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "error", id: id, last: last, errID: errID(info)}
}
func (s *mdSpi) OnRspSubMarketData(in *model.SpecificInstrumentField, info *model.RspInfoField, id int, last bool) {
	s.events <- event{name: "sub", id: id, last: last, errID: errID(info), detail: model.Text(in.InstrumentID[:])}
}
func (s *mdSpi) OnRtnDepthMarketData(d *model.DepthMarketDataField) {
	s.events <- event{name: "tick", detail: model.Text(d.InstrumentID[:]), rec: d.LastPrice}
}
func (s *mdSpi) OnRtnForQuoteRsp(q *model.ForQuoteRspField) {
	s.events <- event{name: "for_quote", detail: model.Text(q.InstrumentID[:])}
}

func (s *mdSpi) expect(t *testing.T, name string) event {
	t.Helper()
	for {
		select {
		case ev := <-s.events:
			if ev.name == name {
				return ev
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", name)
		}
	}
}

func TestMdSubscribeAndPush(t *testing.T) {
	lib := NewLinux(testConfig(t))
	api := lib.CreateMdApi(t.TempDir(), false, false, true).(*MdApi)
	spi := &mdSpi{events: make(chan event, 64)}
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10131")
	api.Init()
	defer api.Release()
	spi.expect(t, "connected")
	assert.True(t, api.Production())

	require.Equal(t, sdk.CodeOK, api.SubscribeMarketData([]string{"rb2501"}))
	assert.EqualValues(t, ErrNotLoggedIn, spi.expect(t, "error").errID)

	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&model.ReqUserLoginField{}, 1))
	spi.expect(t, "login")
	assert.Equal(t, "20241015", api.GetTradingDay())

	require.Equal(t, sdk.CodeOK, api.SubscribeMarketData([]string{"rb2501", "bogus"}))
	first := spi.expect(t, "sub")
	assert.Equal(t, "rb2501", first.detail)
	assert.Zero(t, first.errID)
	assert.False(t, first.last)
	second := spi.expect(t, "sub")
	assert.Equal(t, "bogus", second.detail)
	assert.EqualValues(t, ErrInstrumentUnknown, second.errID)
	assert.True(t, second.last)
	assert.Equal(t, []string{"rb2501", "bogus"}, api.Subscriptions())

	require.True(t, api.PushTick("rb2501"))
	tick := spi.expect(t, "tick")
	assert.Equal(t, "rb2501", tick.detail)
	assert.Greater(t, tick.rec.(float64), 0.0)
	assert.False(t, api.PushTick("bogus"))

	require.True(t, api.PushForQuote("au2502"))
	assert.Equal(t, "au2502", spi.expect(t, "for_quote").detail)
}

func TestMdFeedDeliversTicks(t *testing.T) {
	cfg := testConfig(t)
	cfg.TickInterval = 5 * time.Millisecond
	api := NewDarwin(cfg).CreateMdApi("", false, false).(*MdApi)
	spi := &mdSpi{events: make(chan event, 64)}
	api.RegisterSpi(spi)
	api.RegisterFront("tcp://127.0.0.1:10131")
	api.Init()
	defer api.Release()
	spi.expect(t, "connected")

	require.Equal(t, sdk.CodeOK, api.ReqUserLogin(&model.ReqUserLoginField{}, 1))
	spi.expect(t, "login")
	require.Equal(t, sdk.CodeOK, api.SubscribeMarketData([]string{"IF2412"}))
	spi.expect(t, "sub")
	assert.Equal(t, "IF2412", spi.expect(t, "tick").detail)
}

func TestRoundToTick(t *testing.T) {
	m := newMarket(Config{Instruments: DefaultInstruments})
	for range 50 {
		snap, ok := m.step("au2502")
		require.True(t, ok)
		ticks := snap.LastPrice / 0.02
		assert.InDelta(t, ticks, float64(int64(ticks+0.5)), 1e-6)
	}
}
