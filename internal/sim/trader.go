package sim

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// TraderApi is the simulated order-entry session shared by both platform
// method sets. It lacks ReqUserLogin, which LinuxTrader and DarwinTrader add
// with their own signatures.
type TraderApi struct {
	*session
	market *market
	book   *book

	frontID   int32
	sessionID int32

	spiMu sync.RWMutex
	spi   sdk.TraderSpi

	stateMu       sync.Mutex
	authenticated bool
	privateResume model.ResumeType
	publicResume  model.ResumeType
	systemInfo    []string
}

var _ sdk.TraderApi = (*TraderApi)(nil)

func newTraderApi(flowPath string, cfg Config, m *market) *TraderApi {
	api := &TraderApi{
		market:    m,
		book:      newBook(cfg),
		frontID:   1,
		sessionID: int32(uuid.New().ID() & math.MaxInt32),
	}
	api.session = newSession("Trader", flowPath, cfg, api)
	api.log.Debug("sim_trader_api_created", zap.String("flow_path", flowPath), zap.Int32("session_id", api.sessionID))
	return api
}

func (a *TraderApi) RegisterSpi(spi sdk.TraderSpi) {
	a.spiMu.Lock()
	a.spi = spi
	a.spiMu.Unlock()
}

func (a *TraderApi) currentSpi() sdk.TraderSpi {
	a.spiMu.RLock()
	defer a.spiMu.RUnlock()
	return a.spi
}

func (a *TraderApi) withSpi(fn func(sdk.TraderSpi)) {
	if spi := a.currentSpi(); spi != nil {
		fn(spi)
	}
}

func (a *TraderApi) frontConnected() { a.withSpi(func(s sdk.TraderSpi) { s.OnFrontConnected() }) }
func (a *TraderApi) frontDisconnected(reason int) {
	a.stateMu.Lock()
	a.authenticated = false
	a.stateMu.Unlock()
	a.withSpi(func(s sdk.TraderSpi) { s.OnFrontDisconnected(reason) })
}
func (a *TraderApi) heartBeatWarning(lapse int) {
	a.withSpi(func(s sdk.TraderSpi) { s.OnHeartBeatWarning(lapse) })
}

func (a *TraderApi) GetFrontInfo(info *model.FrontInfoField) {
	if info == nil {
		return
	}
	*info = model.FrontInfoField{}
	model.SetText(info.FrontAddr[:], a.frontAddr())
	info.QryFreq = int32(a.cfg.QueryRate)
	info.FTDPkgFreq = int32(a.cfg.QueryRate)
}

func (a *TraderApi) SubscribePrivateTopic(resume model.ResumeType) {
	a.stateMu.Lock()
	a.privateResume = resume
	a.stateMu.Unlock()
}

func (a *TraderApi) SubscribePublicTopic(resume model.ResumeType) {
	a.stateMu.Lock()
	a.publicResume = resume
	a.stateMu.Unlock()
}

// Topics returns the private and public resume modes last subscribed.
func (a *TraderApi) Topics() (private, public model.ResumeType) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return a.privateResume, a.publicResume
}

func (a *TraderApi) recordSystemInfo(kind string) {
	a.stateMu.Lock()
	a.systemInfo = append(a.systemInfo, kind)
	a.stateMu.Unlock()
}

// SystemInfoCalls lists the system info entrypoints invoked so far.
func (a *TraderApi) SystemInfoCalls() []string {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return append([]string(nil), a.systemInfo...)
}

func (a *TraderApi) RegisterUserSystemInfo(info *model.UserSystemInfoField) int {
	a.recordSystemInfo("register")
	return validSystemInfo(info)
}

func (a *TraderApi) SubmitUserSystemInfo(info *model.UserSystemInfoField) int {
	if !a.Connected() {
		return sdk.CodeNetwork
	}
	a.recordSystemInfo("submit")
	return validSystemInfo(info)
}

func validSystemInfo(info *model.UserSystemInfoField) int {
	if info == nil || info.ClientSystemInfoLen < 0 || int(info.ClientSystemInfoLen) > len(info.ClientSystemInfo) {
		return sdk.CodeNetwork
	}
	return sdk.CodeOK
}

type traderRsp[T any] func(sdk.TraderSpi, *T, *model.RspInfoField, int, bool)

// pages delivers one callback per record with isLast set on the final one.
// An empty result is one callback with a nil record.
func pages[T any](spi sdk.TraderSpi, m traderRsp[T], recs []T, requestID int) {
	if len(recs) == 0 {
		m(spi, nil, nil, requestID, true)
		return
	}
	for i := range recs {
		m(spi, &recs[i], nil, requestID, i == len(recs)-1)
		var zero T
		recs[i] = zero
	}
}

// request queues fn for a logged-in session. When the session is not logged
// in at dispatch time the caller receives OnRspError instead.
func (a *TraderApi) request(query bool, requestID int, fn func(sdk.TraderSpi)) int {
	return a.submit(query, func() {
		spi := a.currentSpi()
		if spi == nil {
			return
		}
		if !a.isLoggedIn() {
			spi.OnRspError(notLoggedIn(), requestID, true)
			return
		}
		fn(spi)
	})
}

// echo answers req with a copy of itself and no error.
func echo[T any](a *TraderApi, req *T, requestID int, m traderRsp[T]) int {
	rec := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		m(spi, &rec, nil, requestID, true)
		var zero T
		rec = zero
	})
}

func query[T any](a *TraderApi, requestID int, m traderRsp[T], load func() []T) int {
	return a.request(true, requestID, func(spi sdk.TraderSpi) {
		pages(spi, m, load(), requestID)
	})
}

func (a *TraderApi) ReqAuthenticate(req *model.ReqAuthenticateField, requestID int) int {
	r := deref(req)
	return a.submit(false, func() {
		var rsp model.RspAuthenticateField
		rsp.BrokerID = r.BrokerID
		rsp.UserID = r.UserID
		rsp.UserProductInfo = r.UserProductInfo
		rsp.AppID = r.AppID
		rsp.AppType = '1'

		var info *model.RspInfoField
		if a.cfg.AppID != "" && (model.Text(r.AppID[:]) != a.cfg.AppID || model.Text(r.AuthCode[:]) != a.cfg.AuthCode) {
			info = rspInfo(ErrAuthFailed, "CTP:客户端认证失败")
		} else {
			a.stateMu.Lock()
			a.authenticated = true
			a.stateMu.Unlock()
		}
		a.withSpi(func(s sdk.TraderSpi) { s.OnRspAuthenticate(&rsp, info, requestID, true) })
	})
}

func (a *TraderApi) login(r model.ReqUserLoginField, requestID int) int {
	return a.submit(false, func() {
		rsp, info := a.checkLogin(&r)
		a.withSpi(func(s sdk.TraderSpi) {
			s.OnRspUserLogin(&rsp, info, requestID, true)
			if info == nil {
				a.pushStatus(s)
			}
		})
	})
}

// pushStatus reports every instrument as continuously trading.
func (a *TraderApi) pushStatus(spi sdk.TraderSpi) {
	now := time.Now().Format("15:04:05")
	for _, in := range a.market.instruments() {
		var st model.InstrumentStatusField
		model.SetText(st.ExchangeID[:], in.ExchangeID)
		model.SetText(st.InstrumentID[:], in.ID)
		model.SetText(st.EnterTime[:], now)
		st.InstrumentStatus = '2'
		st.EnterReason = '1'
		spi.OnRtnInstrumentStatus(&st)
	}
}

func (a *TraderApi) checkLogin(r *model.ReqUserLoginField) (model.RspUserLoginField, *model.RspInfoField) {
	user := model.Text(r.UserID[:])
	now := time.Now().Format("15:04:05")

	var rsp model.RspUserLoginField
	rsp.BrokerID = r.BrokerID
	rsp.UserID = r.UserID
	rsp.FrontID = a.frontID
	rsp.SessionID = a.sessionID
	model.SetText(rsp.TradingDay[:], a.cfg.TradingDay)
	model.SetText(rsp.LoginTime[:], now)
	model.SetText(rsp.SystemName[:], "go-ctp sim")
	model.SetText(rsp.MaxOrderRef[:], "1")
	for _, f := range [][]byte{rsp.SHFETime[:], rsp.DCETime[:], rsp.CZCETime[:], rsp.FFEXTime[:], rsp.INETime[:]} {
		model.SetText(f, now)
	}

	if len(a.cfg.Users) > 0 {
		if want, ok := a.cfg.Users[user]; !ok || want != model.Text(r.Password[:]) {
			return rsp, rspInfo(ErrInvalidLogin, "CTP:不合法的登录")
		}
	}
	a.stateMu.Lock()
	authed := a.authenticated
	a.stateMu.Unlock()
	if a.cfg.AppID != "" && !authed {
		return rsp, rspInfo(ErrAuthFailed, "CTP:客户端认证失败")
	}

	a.setLoggedIn(user, true)
	a.book.bind(model.Text(r.BrokerID[:]), user)
	return rsp, nil
}

func loginFields(tradingDay, broker, user, password, product, mac, remark []byte, port int32, ip []byte) model.ReqUserLoginField {
	var r model.ReqUserLoginField
	copy(r.TradingDay[:], tradingDay)
	copy(r.BrokerID[:], broker)
	copy(r.UserID[:], user)
	copy(r.Password[:], password)
	copy(r.UserProductInfo[:], product)
	copy(r.MacAddress[:], mac)
	copy(r.LoginRemark[:], remark)
	r.ClientIPPort = port
	copy(r.ClientIPAddress[:], ip)
	return r
}

func (a *TraderApi) ReqUserLoginWithCaptcha(req *model.ReqUserLoginWithCaptchaField, requestID int) int {
	r := deref(req)
	return a.login(loginFields(r.TradingDay[:], r.BrokerID[:], r.UserID[:], r.Password[:], r.UserProductInfo[:], r.MacAddress[:], r.LoginRemark[:], r.ClientIPPort, r.ClientIPAddress[:]), requestID)
}

func (a *TraderApi) ReqUserLoginWithText(req *model.ReqUserLoginWithTextField, requestID int) int {
	r := deref(req)
	return a.login(loginFields(r.TradingDay[:], r.BrokerID[:], r.UserID[:], r.Password[:], r.UserProductInfo[:], r.MacAddress[:], r.LoginRemark[:], r.ClientIPPort, r.ClientIPAddress[:]), requestID)
}

func (a *TraderApi) ReqUserLoginWithOTP(req *model.ReqUserLoginWithOTPField, requestID int) int {
	r := deref(req)
	return a.login(loginFields(r.TradingDay[:], r.BrokerID[:], r.UserID[:], r.Password[:], r.UserProductInfo[:], r.MacAddress[:], r.LoginRemark[:], r.ClientIPPort, r.ClientIPAddress[:]), requestID)
}

func (a *TraderApi) ReqUserLogout(req *model.UserLogoutField, requestID int) int {
	r := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		a.setLoggedIn("", false)
		spi.OnRspUserLogout(&r, nil, requestID, true)
	})
}

func (a *TraderApi) ReqUserPasswordUpdate(req *model.UserPasswordUpdateField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspUserPasswordUpdate)
}

func (a *TraderApi) ReqTradingAccountPasswordUpdate(req *model.TradingAccountPasswordUpdateField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspTradingAccountPasswordUpdate)
}

func (a *TraderApi) ReqUserAuthMethod(_ *model.ReqUserAuthMethodField, requestID int) int {
	return a.submit(false, func() {
		rsp := model.RspUserAuthMethodField{}
		a.withSpi(func(s sdk.TraderSpi) { s.OnRspUserAuthMethod(&rsp, nil, requestID, true) })
	})
}

func (a *TraderApi) ReqGenUserCaptcha(req *model.ReqGenUserCaptchaField, requestID int) int {
	r := deref(req)
	return a.submit(false, func() {
		var rsp model.RspGenUserCaptchaField
		rsp.BrokerID = r.BrokerID
		rsp.UserID = r.UserID
		rsp.CaptchaInfoLen = int32(copy(rsp.CaptchaInfo[:], "sim-captcha"))
		a.withSpi(func(s sdk.TraderSpi) { s.OnRspGenUserCaptcha(&rsp, nil, requestID, true) })
	})
}

func (a *TraderApi) ReqGenUserText(_ *model.ReqGenUserTextField, requestID int) int {
	return a.submit(false, func() {
		rsp := model.RspGenUserTextField{UserTextSeq: 1}
		a.withSpi(func(s sdk.TraderSpi) { s.OnRspGenUserText(&rsp, nil, requestID, true) })
	})
}

// ReqOrderInsert accepts the order and fills it immediately when its price
// reaches the opposite side of the simulated book. Rejected orders get both
// OnRspOrderInsert and OnErrRtnOrderInsert.
func (a *TraderApi) ReqOrderInsert(req *model.InputOrderField, requestID int) int {
	r := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		inst, info := a.validateOrder(&r)
		if info != nil {
			spi.OnRspOrderInsert(&r, info, requestID, true)
			spi.OnErrRtnOrderInsert(&r, info)
			return
		}

		order := a.book.accept(&r, a.cfg.TradingDay, a.frontID, a.sessionID)
		spi.OnRtnOrder(&order)

		bid, ask, _ := a.market.touch(inst.ID)
		var px float64
		switch {
		case r.Direction == model.DirectionBuy && (r.OrderPriceType == model.PriceTypeAnyPrice || r.LimitPrice >= ask.InexactFloat64()):
			px = ask.InexactFloat64()
		case r.Direction == model.DirectionSell && (r.OrderPriceType == model.PriceTypeAnyPrice || r.LimitPrice <= bid.InexactFloat64()):
			px = bid.InexactFloat64()
		default:
			return
		}
		filled, trade := a.book.fill(order.OrderSysID, px, inst)
		spi.OnRtnTrade(&trade)
		spi.OnRtnOrder(&filled)
	})
}

func (a *TraderApi) validateOrder(r *model.InputOrderField) (Instrument, *model.RspInfoField) {
	inst, ok := a.market.instrument(model.Text(r.InstrumentID[:]))
	if !ok {
		return inst, rspInfo(ErrInstrumentUnknown, "CTP:找不到合约")
	}
	if r.VolumeTotalOriginal <= 0 || (r.OrderPriceType == model.PriceTypeLimitPrice && r.LimitPrice <= 0) {
		return inst, rspInfo(ErrInvalidField, "CTP:报单字段有误")
	}
	if r.Direction != model.DirectionBuy && r.Direction != model.DirectionSell {
		return inst, rspInfo(ErrInvalidField, "CTP:报单字段有误")
	}
	if r.CombOffsetFlag[0] != model.OffsetOpen {
		dir := model.PosiDirectionShort
		if r.Direction == model.DirectionSell {
			dir = model.PosiDirectionLong
		}
		if a.book.position(inst.ID, dir) < r.VolumeTotalOriginal {
			return inst, rspInfo(ErrCloseExceedsPos, "CTP:平仓量超过持仓量")
		}
	}
	return inst, nil
}

func (a *TraderApi) ReqOrderAction(req *model.InputOrderActionField, requestID int) int {
	r := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		order, found, working := a.book.cancel(&r)
		var info *model.RspInfoField
		switch {
		case !found:
			info = rspInfo(ErrOrderNotFound, "CTP:撤单找不到相应报单")
		case !working:
			info = rspInfo(ErrOrderNotWorking, "CTP:报单已全成交或已撤销，不能再撤")
		default:
			spi.OnRtnOrder(&order)
			return
		}
		spi.OnRspOrderAction(&r, info, requestID, true)

		var action model.OrderActionField
		action.BrokerID = r.BrokerID
		action.InvestorID = r.InvestorID
		action.OrderActionRef = r.OrderActionRef
		action.OrderRef = r.OrderRef
		action.RequestID = r.RequestID
		action.FrontID = r.FrontID
		action.SessionID = r.SessionID
		action.ExchangeID = r.ExchangeID
		action.OrderSysID = r.OrderSysID
		action.ActionFlag = r.ActionFlag
		action.UserID = r.UserID
		action.InstrumentID = r.InstrumentID
		action.StatusMsg = info.ErrorMsg
		spi.OnErrRtnOrderAction(&action, info)
	})
}

// ReqBatchOrderAction cancels every working order of the given session.
func (a *TraderApi) ReqBatchOrderAction(req *model.InputBatchOrderActionField, requestID int) int {
	r := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		for _, o := range a.book.orderList("") {
			if o.FrontID != r.FrontID || o.SessionID != r.SessionID {
				continue
			}
			act := model.InputOrderActionField{ExchangeID: o.ExchangeID, OrderSysID: o.OrderSysID}
			if canceled, _, working := a.book.cancel(&act); working {
				spi.OnRtnOrder(&canceled)
			}
		}
		spi.OnRspBatchOrderAction(&r, nil, requestID, true)
	})
}

func (a *TraderApi) ReqParkedOrderInsert(req *model.ParkedOrderField, requestID int) int {
	r := deref(req)
	model.SetText(r.ParkedOrderID[:], newSysID()[:model.ParkedOrderIDLen-1])
	r.Status = '1'
	return echo(a, &r, requestID, sdk.TraderSpi.OnRspParkedOrderInsert)
}

func (a *TraderApi) ReqParkedOrderAction(req *model.ParkedOrderActionField, requestID int) int {
	r := deref(req)
	model.SetText(r.ParkedOrderActionID[:], newSysID()[:model.ParkedOrderIDLen-1])
	r.Status = '1'
	return echo(a, &r, requestID, sdk.TraderSpi.OnRspParkedOrderAction)
}

func (a *TraderApi) ReqRemoveParkedOrder(req *model.RemoveParkedOrderField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspRemoveParkedOrder)
}

func (a *TraderApi) ReqRemoveParkedOrderAction(req *model.RemoveParkedOrderActionField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspRemoveParkedOrderAction)
}

func (a *TraderApi) ReqQryMaxOrderVolume(req *model.QryMaxOrderVolumeField, requestID int) int {
	r := deref(req)
	return a.request(false, requestID, func(spi sdk.TraderSpi) {
		inst, ok := a.market.instrument(model.Text(r.InstrumentID[:]))
		if !ok {
			spi.OnRspQryMaxOrderVolume(&r, rspInfo(ErrInstrumentUnknown, "CTP:找不到合约"), requestID, true)
			return
		}
		snap, _ := a.market.snapshot(inst.ID)
		perLot := snap.LastPrice * float64(max(inst.VolumeMultiple, 1)) * inst.MarginRatio
		if perLot > 0 {
			r.MaxVolume = int32(a.book.available() / perLot)
		}
		spi.OnRspQryMaxOrderVolume(&r, nil, requestID, true)
	})
}

func (a *TraderApi) ReqSettlementInfoConfirm(req *model.SettlementInfoConfirmField, requestID int) int {
	r := deref(req)
	now := time.Now()
	model.SetText(r.ConfirmDate[:], now.Format("20060102"))
	model.SetText(r.ConfirmTime[:], now.Format("15:04:05"))
	return echo(a, &r, requestID, sdk.TraderSpi.OnRspSettlementInfoConfirm)
}

func (a *TraderApi) ReqExecOrderInsert(req *model.InputExecOrderField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspExecOrderInsert)
}

func (a *TraderApi) ReqExecOrderAction(req *model.InputExecOrderActionField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspExecOrderAction)
}

func (a *TraderApi) ReqForQuoteInsert(req *model.InputForQuoteField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspForQuoteInsert)
}

func (a *TraderApi) ReqQuoteInsert(req *model.InputQuoteField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspQuoteInsert)
}

func (a *TraderApi) ReqQuoteAction(req *model.InputQuoteActionField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspQuoteAction)
}

func (a *TraderApi) ReqOptionSelfCloseInsert(req *model.InputOptionSelfCloseField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspOptionSelfCloseInsert)
}

func (a *TraderApi) ReqOptionSelfCloseAction(req *model.InputOptionSelfCloseActionField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspOptionSelfCloseAction)
}

func (a *TraderApi) ReqCombActionInsert(req *model.InputCombActionField, requestID int) int {
	return echo(a, req, requestID, sdk.TraderSpi.OnRspCombActionInsert)
}

func (a *TraderApi) ReqQryOrder(req *model.QryOrderField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryOrder, func() []model.OrderField {
		return a.book.orderList(model.Text(r.InstrumentID[:]))
	})
}

func (a *TraderApi) ReqQryTrade(req *model.QryTradeField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryTrade, func() []model.TradeField {
		return a.book.tradeList(model.Text(r.InstrumentID[:]))
	})
}

func (a *TraderApi) ReqQryInvestorPosition(req *model.QryInvestorPositionField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInvestorPosition, func() []model.InvestorPositionField {
		return a.book.positionList(model.Text(r.InstrumentID[:]))
	})
}

func (a *TraderApi) ReqQryInvestorPositionDetail(req *model.QryInvestorPositionDetailField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInvestorPositionDetail, func() []model.InvestorPositionDetailField {
		return a.book.detailList(model.Text(r.InstrumentID[:]))
	})
}

func (a *TraderApi) ReqQryTradingAccount(_ *model.QryTradingAccountField, requestID int) int {
	return query(a, requestID, sdk.TraderSpi.OnRspQryTradingAccount, func() []model.TradingAccountField {
		return []model.TradingAccountField{a.book.accountSnapshot()}
	})
}

func (a *TraderApi) ReqQryInvestor(req *model.QryInvestorField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInvestor, func() []model.InvestorField {
		var inv model.InvestorField
		inv.BrokerID = r.BrokerID
		model.SetText(inv.InvestorID[:], a.user())
		model.SetText(inv.InvestorName[:], "模拟投资者")
		model.SetText(inv.OpenDate[:], a.cfg.TradingDay)
		inv.IsActive = 1
		return []model.InvestorField{inv}
	})
}

func (a *TraderApi) ReqQryTradingCode(req *model.QryTradingCodeField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryTradingCode, func() []model.TradingCodeField {
		var out []model.TradingCodeField
		for _, ex := range a.market.exchanges() {
			if r.ExchangeID[0] != 0 && model.Text(r.ExchangeID[:]) != ex {
				continue
			}
			var c model.TradingCodeField
			c.BrokerID = r.BrokerID
			model.SetText(c.InvestorID[:], a.user())
			model.SetText(c.ExchangeID[:], ex)
			model.SetText(c.ClientID[:], fmt.Sprintf("%08d", len(out)+1))
			c.IsActive = 1
			c.ClientIDType = '1'
			out = append(out, c)
		}
		return out
	})
}

func (a *TraderApi) matchInstruments(id, exchange string) []Instrument {
	var out []Instrument
	for _, in := range a.market.instruments() {
		if id != "" && in.ID != id {
			continue
		}
		if exchange != "" && in.ExchangeID != exchange {
			continue
		}
		out = append(out, in)
	}
	return out
}

func (a *TraderApi) ReqQryInstrumentMarginRate(req *model.QryInstrumentMarginRateField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInstrumentMarginRate, func() []model.InstrumentMarginRateField {
		var out []model.InstrumentMarginRateField
		for _, in := range a.matchInstruments(model.Text(r.InstrumentID[:]), model.Text(r.ExchangeID[:])) {
			var m model.InstrumentMarginRateField
			m.BrokerID = r.BrokerID
			m.InvestorID = r.InvestorID
			m.HedgeFlag = model.HedgeSpeculation
			m.LongMarginRatioByMoney = in.MarginRatio
			m.ShortMarginRatioByMoney = in.MarginRatio
			model.SetText(m.ExchangeID[:], in.ExchangeID)
			model.SetText(m.InstrumentID[:], in.ID)
			out = append(out, m)
		}
		return out
	})
}

func (a *TraderApi) ReqQryInstrumentCommissionRate(req *model.QryInstrumentCommissionRateField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInstrumentCommissionRate, func() []model.InstrumentCommissionRateField {
		var out []model.InstrumentCommissionRateField
		for _, in := range a.matchInstruments(model.Text(r.InstrumentID[:]), model.Text(r.ExchangeID[:])) {
			var c model.InstrumentCommissionRateField
			c.BrokerID = r.BrokerID
			c.InvestorID = r.InvestorID
			c.OpenRatioByMoney = 0.0001
			c.CloseRatioByMoney = 0.0001
			c.CloseTodayRatioByMoney = 0.0001
			model.SetText(c.ExchangeID[:], in.ExchangeID)
			model.SetText(c.InstrumentID[:], in.ID)
			out = append(out, c)
		}
		return out
	})
}

func (a *TraderApi) ReqQryExchange(req *model.QryExchangeField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryExchange, func() []model.ExchangeField {
		var out []model.ExchangeField
		for _, ex := range a.market.exchanges() {
			if r.ExchangeID[0] != 0 && model.Text(r.ExchangeID[:]) != ex {
				continue
			}
			var e model.ExchangeField
			model.SetText(e.ExchangeID[:], ex)
			model.SetText(e.ExchangeName[:], ex)
			e.ExchangeProperty = '0'
			out = append(out, e)
		}
		return out
	})
}

func (a *TraderApi) ReqQryProduct(req *model.QryProductField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryProduct, func() []model.ProductField {
		var out []model.ProductField
		seen := map[string]bool{}
		for _, in := range a.matchInstruments("", model.Text(r.ExchangeID[:])) {
			if seen[in.ProductID] || (r.ProductID[0] != 0 && model.Text(r.ProductID[:]) != in.ProductID) {
				continue
			}
			seen[in.ProductID] = true
			var p model.ProductField
			model.SetText(p.ProductID[:], in.ProductID)
			model.SetText(p.ProductName[:], in.ProductID)
			model.SetText(p.ExchangeID[:], in.ExchangeID)
			p.ProductClass = '1'
			p.VolumeMultiple = int32(in.VolumeMultiple)
			p.PriceTick = in.PriceTick
			p.MaxLimitOrderVolume = 500
			p.MinLimitOrderVolume = 1
			p.MaxMarketOrderVolume = 100
			p.MinMarketOrderVolume = 1
			out = append(out, p)
		}
		return out
	})
}

func (a *TraderApi) ReqQryInstrument(req *model.QryInstrumentField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryInstrument, func() []model.InstrumentField {
		var out []model.InstrumentField
		for _, in := range a.matchInstruments(model.Text(r.InstrumentID[:]), model.Text(r.ExchangeID[:])) {
			var f model.InstrumentField
			model.SetText(f.InstrumentID[:], in.ID)
			model.SetText(f.ExchangeInstID[:], in.ID)
			model.SetText(f.InstrumentName[:], in.ID)
			model.SetText(f.ExchangeID[:], in.ExchangeID)
			model.SetText(f.ProductID[:], in.ProductID)
			model.SetText(f.CreateDate[:], a.cfg.TradingDay)
			model.SetText(f.OpenDate[:], a.cfg.TradingDay)
			f.ProductClass = '1'
			f.VolumeMultiple = int32(in.VolumeMultiple)
			f.PriceTick = in.PriceTick
			f.IsTrading = 1
			f.LongMarginRatio = in.MarginRatio
			f.ShortMarginRatio = in.MarginRatio
			f.MaxLimitOrderVolume = 500
			f.MinLimitOrderVolume = 1
			f.MaxMarketOrderVolume = 100
			f.MinMarketOrderVolume = 1
			out = append(out, f)
		}
		return out
	})
}

func (a *TraderApi) ReqQryDepthMarketData(req *model.QryDepthMarketDataField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryDepthMarketData, func() []model.DepthMarketDataField {
		var out []model.DepthMarketDataField
		for _, in := range a.matchInstruments(model.Text(r.InstrumentID[:]), model.Text(r.ExchangeID[:])) {
			if snap, ok := a.market.snapshot(in.ID); ok {
				out = append(out, snap)
			}
		}
		return out
	})
}

// ReqQrySettlementInfo returns the statement split into Content sized chunks.
func (a *TraderApi) ReqQrySettlementInfo(req *model.QrySettlementInfoField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQrySettlementInfo, func() []model.SettlementInfoField {
		text := a.statement()
		chunk := model.ContentLen - 1
		var out []model.SettlementInfoField
		for seq := 1; len(text) > 0; seq++ {
			n := min(chunk, len(text))
			var s model.SettlementInfoField
			s.BrokerID = r.BrokerID
			s.InvestorID = r.InvestorID
			s.SequenceNo = int32(seq)
			s.SettlementID = 1
			copy(s.Content[:], text[:n])
			model.SetText(s.TradingDay[:], a.cfg.TradingDay)
			out = append(out, s)
			text = text[n:]
		}
		return out
	})
}

func (a *TraderApi) statement() string {
	acct := a.book.accountSnapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Settlement statement %s\n", a.cfg.TradingDay)
	fmt.Fprintf(&b, "Balance b/f %.2f  Balance c/f %.2f  Available %.2f  Margin %.2f\n",
		acct.PreBalance, acct.Balance, acct.Available, acct.CurrMargin)
	for _, t := range a.book.tradeList("") {
		fmt.Fprintf(&b, "%s %s %c%c %d @ %.4f\n",
			model.Text(t.TradeDate[:]), model.Text(t.InstrumentID[:]), t.Direction, t.OffsetFlag, t.Volume, t.Price)
	}
	for _, p := range a.book.positionList("") {
		fmt.Fprintf(&b, "position %s %c %d margin %.2f\n",
			model.Text(p.InstrumentID[:]), p.PosiDirection, p.Position, p.UseMargin)
	}
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for range 12 {
		b.WriteString("This statement is generated by the simulator and carries no legal meaning.\n")
	}
	return b.String()
}

func (a *TraderApi) ReqQryTransferBank(_ *model.QryTransferBankField, requestID int) int {
	return query(a, requestID, sdk.TraderSpi.OnRspQryTransferBank, func() []model.TransferBankField {
		var bank model.TransferBankField
		model.SetText(bank.BankID[:], "1")
		model.SetText(bank.BankBrchID[:], "0000")
		model.SetText(bank.BankName[:], "模拟银行")
		bank.IsActive = 1
		return []model.TransferBankField{bank}
	})
}

func (a *TraderApi) ReqQryNotice(req *model.QryNoticeField, requestID int) int {
	r := deref(req)
	return query(a, requestID, sdk.TraderSpi.OnRspQryNotice, func() []model.NoticeField {
		var n model.NoticeField
		n.BrokerID = r.BrokerID
		model.SetText(n.Content[:], "模拟环境，仅供测试")
		model.SetText(n.SequenceLabel[:], "1")
		return []model.NoticeField{n}
	})
}
