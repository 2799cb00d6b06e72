package bridge

import (
	"unsafe"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// TraderCallbacks is the order-entry callback table.
type TraderCallbacks struct {
	UserData unsafe.Pointer

	OnFrontConnected                 FrontConnectedFunc
	OnFrontDisconnected              FrontDisconnectedFunc
	OnHeartBeatWarning               HeartBeatWarningFunc
	OnRspAuthenticate                RspFunc
	OnRspUserLogin                   RspFunc
	OnRspUserLogout                  RspFunc
	OnRspError                       RspErrorFunc
	OnRspOrderInsert                 RspFunc
	OnRspOrderAction                 RspFunc
	OnRtnOrder                       RtnFunc
	OnRtnTrade                       RtnFunc
	OnRspQryTradingAccount           RspFunc
	OnRspQryInvestorPosition         RspFunc
	OnErrRtnOrderInsert              ErrRtnFunc
	OnErrRtnOrderAction              ErrRtnFunc
	OnRspQryOrder                    RspFunc
	OnRspQryTrade                    RspFunc
	OnRspQryInstrument               RspFunc
	OnRspQryInstrumentMarginRate     RspFunc
	OnRspQryInstrumentCommissionRate RspFunc
	OnRspQryExchange                 RspFunc
	OnRspQryProduct                  RspFunc
	OnRspSettlementInfoConfirm       RspFunc
	OnRspParkedOrderInsert           RspFunc
	OnRspParkedOrderAction           RspFunc
	OnRspExecOrderInsert             RspFunc
	OnRspExecOrderAction             RspFunc
	OnRspForQuoteInsert              RspFunc
	OnRspQuoteInsert                 RspFunc
	OnRspQuoteAction                 RspFunc
	OnRspBatchOrderAction            RspFunc
	OnRspRemoveParkedOrder           RspFunc
	OnRspRemoveParkedOrderAction     RspFunc
	OnRspQryMaxOrderVolume           RspFunc
	OnRspQryDepthMarketData          RspFunc
	OnRspQrySettlementInfo           RspFunc
	OnRspQryTransferBank             RspFunc
	OnRspQryInvestorPositionDetail   RspFunc
	OnRspQryNotice                   RspFunc

	OnRspUserPasswordUpdate           RspFunc
	OnRspTradingAccountPasswordUpdate RspFunc
	OnRspUserAuthMethod               RspFunc
	OnRspGenUserCaptcha               RspFunc
	OnRspGenUserText                  RspFunc
	OnRspOptionSelfCloseInsert        RspFunc
	OnRspOptionSelfCloseAction        RspFunc
	OnRspCombActionInsert             RspFunc
	OnRspQryInvestor                  RspFunc
	OnRspQryTradingCode               RspFunc
	OnRtnInstrumentStatus             RtnFunc
}

// TraderSpiBridge implements sdk.TraderSpi by forwarding to a TraderCallbacks table.
type TraderSpiBridge struct {
	cb TraderCallbacks
	t  tracer
}

var _ sdk.TraderSpi = (*TraderSpiBridge)(nil)

// NewTraderSpiBridge copies cb into a new adapter.
func NewTraderSpiBridge(cb TraderCallbacks, opts ...Option) *TraderSpiBridge {
	return &TraderSpiBridge{cb: cb, t: newTracer("trader", opts)}
}

// UserData returns the context pointer the adapter was built with.
func (b *TraderSpiBridge) UserData() unsafe.Pointer { return b.cb.UserData }

func (b *TraderSpiBridge) OnFrontConnected() {
	fn := b.cb.OnFrontConnected
	b.t.push("OnFrontConnected", fn != nil)
	if fn != nil {
		fn(b.cb.UserData)
	}
}

func (b *TraderSpiBridge) OnFrontDisconnected(reason int) {
	fn := b.cb.OnFrontDisconnected
	b.t.push("OnFrontDisconnected", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, reason)
	}
}

func (b *TraderSpiBridge) OnHeartBeatWarning(timeLapse int) {
	fn := b.cb.OnHeartBeatWarning
	b.t.push("OnHeartBeatWarning", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, timeLapse)
	}
}

func (b *TraderSpiBridge) OnRspError(info *model.RspInfoField, requestID int, isLast bool) {
	fn := b.cb.OnRspError
	b.t.rsp("OnRspError", requestID, isLast, fn != nil)
	if fn != nil {
		fn(b.cb.UserData, info, requestID, lastFlag(isLast))
	}
}

func (b *TraderSpiBridge) OnRspAuthenticate(rsp *model.RspAuthenticateField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspAuthenticate", b.cb.OnRspAuthenticate, unsafe.Pointer(rsp), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspUserLogin(login *model.RspUserLoginField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserLogin", b.cb.OnRspUserLogin, unsafe.Pointer(login), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspUserLogout(logout *model.UserLogoutField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserLogout", b.cb.OnRspUserLogout, unsafe.Pointer(logout), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspUserPasswordUpdate(update *model.UserPasswordUpdateField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserPasswordUpdate", b.cb.OnRspUserPasswordUpdate, unsafe.Pointer(update), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspTradingAccountPasswordUpdate(update *model.TradingAccountPasswordUpdateField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspTradingAccountPasswordUpdate", b.cb.OnRspTradingAccountPasswordUpdate, unsafe.Pointer(update), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspUserAuthMethod(method *model.RspUserAuthMethodField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserAuthMethod", b.cb.OnRspUserAuthMethod, unsafe.Pointer(method), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspGenUserCaptcha(captcha *model.RspGenUserCaptchaField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspGenUserCaptcha", b.cb.OnRspGenUserCaptcha, unsafe.Pointer(captcha), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspGenUserText(text *model.RspGenUserTextField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspGenUserText", b.cb.OnRspGenUserText, unsafe.Pointer(text), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspOrderInsert(order *model.InputOrderField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspOrderInsert", b.cb.OnRspOrderInsert, unsafe.Pointer(order), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspParkedOrderInsert(order *model.ParkedOrderField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspParkedOrderInsert", b.cb.OnRspParkedOrderInsert, unsafe.Pointer(order), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspParkedOrderAction(action *model.ParkedOrderActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspParkedOrderAction", b.cb.OnRspParkedOrderAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspOrderAction(action *model.InputOrderActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspOrderAction", b.cb.OnRspOrderAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryMaxOrderVolume(volume *model.QryMaxOrderVolumeField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryMaxOrderVolume", b.cb.OnRspQryMaxOrderVolume, unsafe.Pointer(volume), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspSettlementInfoConfirm(confirm *model.SettlementInfoConfirmField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspSettlementInfoConfirm", b.cb.OnRspSettlementInfoConfirm, unsafe.Pointer(confirm), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspRemoveParkedOrder(remove *model.RemoveParkedOrderField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspRemoveParkedOrder", b.cb.OnRspRemoveParkedOrder, unsafe.Pointer(remove), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspRemoveParkedOrderAction(remove *model.RemoveParkedOrderActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspRemoveParkedOrderAction", b.cb.OnRspRemoveParkedOrderAction, unsafe.Pointer(remove), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspExecOrderInsert(order *model.InputExecOrderField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspExecOrderInsert", b.cb.OnRspExecOrderInsert, unsafe.Pointer(order), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspExecOrderAction(action *model.InputExecOrderActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspExecOrderAction", b.cb.OnRspExecOrderAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspForQuoteInsert(forQuote *model.InputForQuoteField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspForQuoteInsert", b.cb.OnRspForQuoteInsert, unsafe.Pointer(forQuote), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQuoteInsert(quote *model.InputQuoteField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQuoteInsert", b.cb.OnRspQuoteInsert, unsafe.Pointer(quote), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQuoteAction(action *model.InputQuoteActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQuoteAction", b.cb.OnRspQuoteAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspBatchOrderAction(action *model.InputBatchOrderActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspBatchOrderAction", b.cb.OnRspBatchOrderAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspOptionSelfCloseInsert(selfClose *model.InputOptionSelfCloseField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspOptionSelfCloseInsert", b.cb.OnRspOptionSelfCloseInsert, unsafe.Pointer(selfClose), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspOptionSelfCloseAction(action *model.InputOptionSelfCloseActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspOptionSelfCloseAction", b.cb.OnRspOptionSelfCloseAction, unsafe.Pointer(action), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspCombActionInsert(comb *model.InputCombActionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspCombActionInsert", b.cb.OnRspCombActionInsert, unsafe.Pointer(comb), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryOrder(order *model.OrderField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryOrder", b.cb.OnRspQryOrder, unsafe.Pointer(order), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryTrade(trade *model.TradeField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryTrade", b.cb.OnRspQryTrade, unsafe.Pointer(trade), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInvestorPosition(position *model.InvestorPositionField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInvestorPosition", b.cb.OnRspQryInvestorPosition, unsafe.Pointer(position), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryTradingAccount(account *model.TradingAccountField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryTradingAccount", b.cb.OnRspQryTradingAccount, unsafe.Pointer(account), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInvestor(investor *model.InvestorField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInvestor", b.cb.OnRspQryInvestor, unsafe.Pointer(investor), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryTradingCode(code *model.TradingCodeField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryTradingCode", b.cb.OnRspQryTradingCode, unsafe.Pointer(code), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInstrumentMarginRate(rate *model.InstrumentMarginRateField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInstrumentMarginRate", b.cb.OnRspQryInstrumentMarginRate, unsafe.Pointer(rate), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInstrumentCommissionRate(rate *model.InstrumentCommissionRateField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInstrumentCommissionRate", b.cb.OnRspQryInstrumentCommissionRate, unsafe.Pointer(rate), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryExchange(exchange *model.ExchangeField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryExchange", b.cb.OnRspQryExchange, unsafe.Pointer(exchange), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryProduct(product *model.ProductField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryProduct", b.cb.OnRspQryProduct, unsafe.Pointer(product), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInstrument(instrument *model.InstrumentField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInstrument", b.cb.OnRspQryInstrument, unsafe.Pointer(instrument), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryDepthMarketData(data *model.DepthMarketDataField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryDepthMarketData", b.cb.OnRspQryDepthMarketData, unsafe.Pointer(data), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQrySettlementInfo(settlement *model.SettlementInfoField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQrySettlementInfo", b.cb.OnRspQrySettlementInfo, unsafe.Pointer(settlement), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryTransferBank(bank *model.TransferBankField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryTransferBank", b.cb.OnRspQryTransferBank, unsafe.Pointer(bank), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryInvestorPositionDetail(detail *model.InvestorPositionDetailField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryInvestorPositionDetail", b.cb.OnRspQryInvestorPositionDetail, unsafe.Pointer(detail), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRspQryNotice(notice *model.NoticeField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspQryNotice", b.cb.OnRspQryNotice, unsafe.Pointer(notice), info, requestID, isLast)
}

func (b *TraderSpiBridge) OnRtnOrder(order *model.OrderField) {
	fn := b.cb.OnRtnOrder
	b.t.push("OnRtnOrder", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(order))
	}
}

func (b *TraderSpiBridge) OnRtnTrade(trade *model.TradeField) {
	fn := b.cb.OnRtnTrade
	b.t.push("OnRtnTrade", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(trade))
	}
}

func (b *TraderSpiBridge) OnRtnInstrumentStatus(status *model.InstrumentStatusField) {
	fn := b.cb.OnRtnInstrumentStatus
	b.t.push("OnRtnInstrumentStatus", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(status))
	}
}

func (b *TraderSpiBridge) OnErrRtnOrderInsert(order *model.InputOrderField, info *model.RspInfoField) {
	fn := b.cb.OnErrRtnOrderInsert
	b.t.push("OnErrRtnOrderInsert", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(order), info)
	}
}

func (b *TraderSpiBridge) OnErrRtnOrderAction(action *model.OrderActionField, info *model.RspInfoField) {
	fn := b.cb.OnErrRtnOrderAction
	b.t.push("OnErrRtnOrderAction", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(action), info)
	}
}

func (b *TraderSpiBridge) forward(event string, fn RspFunc, payload unsafe.Pointer, info *model.RspInfoField, requestID int, isLast bool) {
	b.t.rsp(event, requestID, isLast, fn != nil)
	if fn != nil {
		fn(b.cb.UserData, payload, info, requestID, lastFlag(isLast))
	}
}
