package sim

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// MdApi is a simulated market data session.
type MdApi struct {
	*session
	market *market

	udp        bool
	multicast  bool
	production bool

	spiMu sync.RWMutex
	spi   sdk.MdSpi

	subMu     sync.Mutex
	subs      []string
	quoteSubs []string
}

var _ sdk.MdApi = (*MdApi)(nil)

func newMdApi(flowPath string, udp, multicast, production bool, cfg Config, m *market) *MdApi {
	api := &MdApi{market: m, udp: udp, multicast: multicast, production: production}
	api.session = newSession("Md", flowPath, cfg, api)
	api.log.Debug("sim_md_api_created",
		zap.String("flow_path", flowPath),
		zap.Bool("udp", udp),
		zap.Bool("multicast", multicast),
		zap.Bool("production", production),
	)
	return api
}

// Production reports the environment flag the object was created with.
func (a *MdApi) Production() bool { return a.production }

func (a *MdApi) RegisterSpi(spi sdk.MdSpi) {
	a.spiMu.Lock()
	a.spi = spi
	a.spiMu.Unlock()
}

func (a *MdApi) currentSpi() sdk.MdSpi {
	a.spiMu.RLock()
	defer a.spiMu.RUnlock()
	return a.spi
}

func (a *MdApi) withSpi(fn func(sdk.MdSpi)) {
	if spi := a.currentSpi(); spi != nil {
		fn(spi)
	}
}

func (a *MdApi) frontConnected() { a.withSpi(func(s sdk.MdSpi) { s.OnFrontConnected() }) }
func (a *MdApi) frontDisconnected(reason int) {
	a.withSpi(func(s sdk.MdSpi) { s.OnFrontDisconnected(reason) })
}
func (a *MdApi) heartBeatWarning(lapse int) {
	a.withSpi(func(s sdk.MdSpi) { s.OnHeartBeatWarning(lapse) })
}

// Init starts the session and, when Config.TickInterval is set, the feed.
func (a *MdApi) Init() {
	if a.start() && a.cfg.TickInterval > 0 {
		a.wg.Go(a.feed)
	}
}

func (a *MdApi) ReqUserLogin(req *model.ReqUserLoginField, requestID int) int {
	r := deref(req)
	return a.submit(false, func() {
		user := model.Text(r.UserID[:])
		a.setLoggedIn(user, true)

		var rsp model.RspUserLoginField
		rsp.BrokerID = r.BrokerID
		rsp.UserID = r.UserID
		model.SetText(rsp.TradingDay[:], a.cfg.TradingDay)
		model.SetText(rsp.LoginTime[:], time.Now().Format("15:04:05"))
		model.SetText(rsp.SystemName[:], "go-ctp sim")
		rsp.FrontID = 1
		a.withSpi(func(s sdk.MdSpi) { s.OnRspUserLogin(&rsp, nil, requestID, true) })
		rsp = model.RspUserLoginField{}
	})
}

func (a *MdApi) ReqUserLogout(req *model.UserLogoutField, requestID int) int {
	r := deref(req)
	return a.submit(false, func() {
		a.setLoggedIn("", false)
		a.withSpi(func(s sdk.MdSpi) { s.OnRspUserLogout(&r, nil, requestID, true) })
		r = model.UserLogoutField{}
	})
}

func (a *MdApi) SubscribeMarketData(instrumentIDs []string) int {
	return a.subscribe(instrumentIDs, &a.subs, true, sdk.MdSpi.OnRspSubMarketData)
}

func (a *MdApi) UnSubscribeMarketData(instrumentIDs []string) int {
	return a.subscribe(instrumentIDs, &a.subs, false, sdk.MdSpi.OnRspUnSubMarketData)
}

func (a *MdApi) SubscribeForQuoteRsp(instrumentIDs []string) int {
	return a.subscribe(instrumentIDs, &a.quoteSubs, true, sdk.MdSpi.OnRspSubForQuoteRsp)
}

func (a *MdApi) UnSubscribeForQuoteRsp(instrumentIDs []string) int {
	return a.subscribe(instrumentIDs, &a.quoteSubs, false, sdk.MdSpi.OnRspUnSubForQuoteRsp)
}

type subRsp func(sdk.MdSpi, *model.SpecificInstrumentField, *model.RspInfoField, int, bool)

// subscribe answers each instrument with its own response. Subscription
// responses carry request id 0, as the vendor runtime does.
func (a *MdApi) subscribe(ids []string, set *[]string, add bool, rsp subRsp) int {
	ids = slices.Clone(ids)
	if len(ids) == 0 {
		return sdk.CodeOK
	}
	return a.submit(false, func() {
		if !a.isLoggedIn() {
			a.withSpi(func(s sdk.MdSpi) { s.OnRspError(notLoggedIn(), 0, true) })
			return
		}
		a.subMu.Lock()
		for _, id := range ids {
			i := slices.Index(*set, id)
			switch {
			case add && i < 0:
				*set = append(*set, id)
			case !add && i >= 0:
				*set = slices.Delete(*set, i, i+1)
			}
		}
		a.subMu.Unlock()

		a.withSpi(func(s sdk.MdSpi) {
			for i, id := range ids {
				var rec model.SpecificInstrumentField
				model.SetText(rec.InstrumentID[:], id)
				var info *model.RspInfoField
				if _, ok := a.market.instrument(id); !ok {
					info = rspInfo(ErrInstrumentUnknown, "CTP:找不到合约")
				}
				rsp(s, &rec, info, 0, i == len(ids)-1)
			}
		})
	})
}

// Subscriptions returns the instruments currently subscribed for market data.
func (a *MdApi) Subscriptions() []string {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	return slices.Clone(a.subs)
}

// PushTick advances the price of instrumentID and delivers it, bypassing
// the feed timer. It reports false if the instrument is unknown.
func (a *MdApi) PushTick(instrumentID string) bool {
	data, ok := a.market.step(instrumentID)
	if !ok {
		return false
	}
	a.withSpi(func(s sdk.MdSpi) { s.OnRtnDepthMarketData(&data) })
	data = model.DepthMarketDataField{}
	return true
}

// PushForQuote delivers a request-for-quote notice for instrumentID.
func (a *MdApi) PushForQuote(instrumentID string) bool {
	in, ok := a.market.instrument(instrumentID)
	if !ok {
		return false
	}
	var rec model.ForQuoteRspField
	model.SetText(rec.TradingDay[:], a.cfg.TradingDay)
	model.SetText(rec.ForQuoteSysID[:], newSysID())
	model.SetText(rec.ForQuoteTime[:], time.Now().Format("15:04:05"))
	model.SetText(rec.ActionDay[:], time.Now().Format("20060102"))
	model.SetText(rec.ExchangeID[:], in.ExchangeID)
	model.SetText(rec.InstrumentID[:], in.ID)
	a.withSpi(func(s sdk.MdSpi) { s.OnRtnForQuoteRsp(&rec) })
	rec = model.ForQuoteRspField{}
	return true
}

// feed pushes one snapshot per subscribed instrument every TickInterval and
// a request-for-quote notice for quote subscriptions every tenth round.
func (a *MdApi) feed() {
	t := time.NewTicker(a.cfg.TickInterval)
	defer t.Stop()
	for round := 1; ; round++ {
		select {
		case <-a.ctx.Done():
			return
		case <-t.C:
		}
		if !a.isLoggedIn() {
			continue
		}
		a.subMu.Lock()
		subs := slices.Clone(a.subs)
		quoteSubs := slices.Clone(a.quoteSubs)
		a.subMu.Unlock()

		for _, id := range subs {
			a.PushTick(id)
		}
		if round%10 == 0 {
			for _, id := range quoteSubs {
				a.PushForQuote(id)
			}
		}
	}
}
