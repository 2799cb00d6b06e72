package sdk

import "go-ctp/internal/model"

// TraderSpi receives order-entry events.
type TraderSpi interface {
	OnFrontConnected()
	OnFrontDisconnected(reason int)
	OnHeartBeatWarning(timeLapse int)

	OnRspAuthenticate(rsp *model.RspAuthenticateField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUserLogin(login *model.RspUserLoginField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUserLogout(logout *model.UserLogoutField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUserPasswordUpdate(update *model.UserPasswordUpdateField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspTradingAccountPasswordUpdate(update *model.TradingAccountPasswordUpdateField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUserAuthMethod(method *model.RspUserAuthMethodField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspGenUserCaptcha(captcha *model.RspGenUserCaptchaField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspGenUserText(text *model.RspGenUserTextField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspOrderInsert(order *model.InputOrderField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspParkedOrderInsert(order *model.ParkedOrderField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspParkedOrderAction(action *model.ParkedOrderActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspOrderAction(action *model.InputOrderActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryMaxOrderVolume(volume *model.QryMaxOrderVolumeField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspSettlementInfoConfirm(confirm *model.SettlementInfoConfirmField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspRemoveParkedOrder(remove *model.RemoveParkedOrderField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspRemoveParkedOrderAction(remove *model.RemoveParkedOrderActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspExecOrderInsert(order *model.InputExecOrderField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspExecOrderAction(action *model.InputExecOrderActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspForQuoteInsert(forQuote *model.InputForQuoteField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQuoteInsert(quote *model.InputQuoteField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQuoteAction(action *model.InputQuoteActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspBatchOrderAction(action *model.InputBatchOrderActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspOptionSelfCloseInsert(selfClose *model.InputOptionSelfCloseField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspOptionSelfCloseAction(action *model.InputOptionSelfCloseActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspCombActionInsert(comb *model.InputCombActionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryOrder(order *model.OrderField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryTrade(trade *model.TradeField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInvestorPosition(position *model.InvestorPositionField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryTradingAccount(account *model.TradingAccountField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInvestor(investor *model.InvestorField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryTradingCode(code *model.TradingCodeField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInstrumentMarginRate(rate *model.InstrumentMarginRateField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInstrumentCommissionRate(rate *model.InstrumentCommissionRateField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryExchange(exchange *model.ExchangeField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryProduct(product *model.ProductField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInstrument(instrument *model.InstrumentField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryDepthMarketData(data *model.DepthMarketDataField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQrySettlementInfo(settlement *model.SettlementInfoField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryTransferBank(bank *model.TransferBankField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryInvestorPositionDetail(detail *model.InvestorPositionDetailField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspQryNotice(notice *model.NoticeField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspError(info *model.RspInfoField, requestID int, isLast bool)

	OnRtnOrder(order *model.OrderField)
	OnRtnTrade(trade *model.TradeField)
	OnRtnInstrumentStatus(status *model.InstrumentStatusField)
	OnErrRtnOrderInsert(order *model.InputOrderField, info *model.RspInfoField)
	OnErrRtnOrderAction(action *model.OrderActionField, info *model.RspInfoField)
}

// TraderApi is an order-entry session. Login and mini-program system info
// differ between platform builds, see TraderLogin, TraderLoginWithSystemInfo
// and WechatSystemInfo.
type TraderApi interface {
	// Release stops the session. The object must not be used afterwards.
	Release()
	Init()
	// Join blocks until the session is released.
	Join() int
	GetTradingDay() string
	RegisterFront(addr string)
	RegisterNameServer(addr string)
	GetFrontInfo(info *model.FrontInfoField)
	RegisterFensUserInfo(info *model.FensUserInfoField)
	RegisterSpi(spi TraderSpi)
	SubscribePrivateTopic(resume model.ResumeType)
	SubscribePublicTopic(resume model.ResumeType)

	RegisterUserSystemInfo(info *model.UserSystemInfoField) int
	SubmitUserSystemInfo(info *model.UserSystemInfoField) int

	ReqAuthenticate(req *model.ReqAuthenticateField, requestID int) int
	ReqUserLogout(req *model.UserLogoutField, requestID int) int
	ReqUserPasswordUpdate(req *model.UserPasswordUpdateField, requestID int) int
	ReqTradingAccountPasswordUpdate(req *model.TradingAccountPasswordUpdateField, requestID int) int
	ReqUserAuthMethod(req *model.ReqUserAuthMethodField, requestID int) int
	ReqGenUserCaptcha(req *model.ReqGenUserCaptchaField, requestID int) int
	ReqGenUserText(req *model.ReqGenUserTextField, requestID int) int
	ReqUserLoginWithCaptcha(req *model.ReqUserLoginWithCaptchaField, requestID int) int
	ReqUserLoginWithText(req *model.ReqUserLoginWithTextField, requestID int) int
	ReqUserLoginWithOTP(req *model.ReqUserLoginWithOTPField, requestID int) int
	ReqOrderInsert(req *model.InputOrderField, requestID int) int
	ReqParkedOrderInsert(req *model.ParkedOrderField, requestID int) int
	ReqParkedOrderAction(req *model.ParkedOrderActionField, requestID int) int
	ReqOrderAction(req *model.InputOrderActionField, requestID int) int
	ReqQryMaxOrderVolume(req *model.QryMaxOrderVolumeField, requestID int) int
	ReqSettlementInfoConfirm(req *model.SettlementInfoConfirmField, requestID int) int
	ReqRemoveParkedOrder(req *model.RemoveParkedOrderField, requestID int) int
	ReqRemoveParkedOrderAction(req *model.RemoveParkedOrderActionField, requestID int) int
	ReqExecOrderInsert(req *model.InputExecOrderField, requestID int) int
	ReqExecOrderAction(req *model.InputExecOrderActionField, requestID int) int
	ReqForQuoteInsert(req *model.InputForQuoteField, requestID int) int
	ReqQuoteInsert(req *model.InputQuoteField, requestID int) int
	ReqQuoteAction(req *model.InputQuoteActionField, requestID int) int
	ReqBatchOrderAction(req *model.InputBatchOrderActionField, requestID int) int
	ReqOptionSelfCloseInsert(req *model.InputOptionSelfCloseField, requestID int) int
	ReqOptionSelfCloseAction(req *model.InputOptionSelfCloseActionField, requestID int) int
	ReqCombActionInsert(req *model.InputCombActionField, requestID int) int
	ReqQryOrder(req *model.QryOrderField, requestID int) int
	ReqQryTrade(req *model.QryTradeField, requestID int) int
	ReqQryInvestorPosition(req *model.QryInvestorPositionField, requestID int) int
	ReqQryTradingAccount(req *model.QryTradingAccountField, requestID int) int
	ReqQryInvestor(req *model.QryInvestorField, requestID int) int
	ReqQryTradingCode(req *model.QryTradingCodeField, requestID int) int
	ReqQryInstrumentMarginRate(req *model.QryInstrumentMarginRateField, requestID int) int
	ReqQryInstrumentCommissionRate(req *model.QryInstrumentCommissionRateField, requestID int) int
	ReqQryExchange(req *model.QryExchangeField, requestID int) int
	ReqQryProduct(req *model.QryProductField, requestID int) int
	ReqQryInstrument(req *model.QryInstrumentField, requestID int) int
	ReqQryDepthMarketData(req *model.QryDepthMarketDataField, requestID int) int
	ReqQrySettlementInfo(req *model.QrySettlementInfoField, requestID int) int
	ReqQryTransferBank(req *model.QryTransferBankField, requestID int) int
	ReqQryInvestorPositionDetail(req *model.QryInvestorPositionDetailField, requestID int) int
	ReqQryNotice(req *model.QryNoticeField, requestID int) int
}

// NoOpTraderSpi ignores every event. Embed it to implement a subset.
type NoOpTraderSpi struct{}

func (NoOpTraderSpi) OnFrontConnected()                                                             {}
func (NoOpTraderSpi) OnFrontDisconnected(int)                                                       {}
func (NoOpTraderSpi) OnHeartBeatWarning(int)                                                        {}
func (NoOpTraderSpi) OnRspAuthenticate(*model.RspAuthenticateField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspUserLogin(*model.RspUserLoginField, *model.RspInfoField, int, bool)       {}
func (NoOpTraderSpi) OnRspUserLogout(*model.UserLogoutField, *model.RspInfoField, int, bool)        {}
func (NoOpTraderSpi) OnRspUserPasswordUpdate(*model.UserPasswordUpdateField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspTradingAccountPasswordUpdate(*model.TradingAccountPasswordUpdateField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspUserAuthMethod(*model.RspUserAuthMethodField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspGenUserCaptcha(*model.RspGenUserCaptchaField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspGenUserText(*model.RspGenUserTextField, *model.RspInfoField, int, bool)    {}
func (NoOpTraderSpi) OnRspOrderInsert(*model.InputOrderField, *model.RspInfoField, int, bool)        {}
func (NoOpTraderSpi) OnRspParkedOrderInsert(*model.ParkedOrderField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspParkedOrderAction(*model.ParkedOrderActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspOrderAction(*model.InputOrderActionField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryMaxOrderVolume(*model.QryMaxOrderVolumeField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspSettlementInfoConfirm(*model.SettlementInfoConfirmField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspRemoveParkedOrder(*model.RemoveParkedOrderField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspRemoveParkedOrderAction(*model.RemoveParkedOrderActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspExecOrderInsert(*model.InputExecOrderField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspExecOrderAction(*model.InputExecOrderActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspForQuoteInsert(*model.InputForQuoteField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQuoteInsert(*model.InputQuoteField, *model.RspInfoField, int, bool)       {}
func (NoOpTraderSpi) OnRspQuoteAction(*model.InputQuoteActionField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspBatchOrderAction(*model.InputBatchOrderActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspOptionSelfCloseInsert(*model.InputOptionSelfCloseField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspOptionSelfCloseAction(*model.InputOptionSelfCloseActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspCombActionInsert(*model.InputCombActionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryOrder(*model.OrderField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryTrade(*model.TradeField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryInvestorPosition(*model.InvestorPositionField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryTradingAccount(*model.TradingAccountField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryInvestor(*model.InvestorField, *model.RspInfoField, int, bool)       {}
func (NoOpTraderSpi) OnRspQryTradingCode(*model.TradingCodeField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryInstrumentMarginRate(*model.InstrumentMarginRateField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryInstrumentCommissionRate(*model.InstrumentCommissionRateField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryExchange(*model.ExchangeField, *model.RspInfoField, int, bool)     {}
func (NoOpTraderSpi) OnRspQryProduct(*model.ProductField, *model.RspInfoField, int, bool)       {}
func (NoOpTraderSpi) OnRspQryInstrument(*model.InstrumentField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryDepthMarketData(*model.DepthMarketDataField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQrySettlementInfo(*model.SettlementInfoField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryTransferBank(*model.TransferBankField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspQryInvestorPositionDetail(*model.InvestorPositionDetailField, *model.RspInfoField, int, bool) {
}
func (NoOpTraderSpi) OnRspQryNotice(*model.NoticeField, *model.RspInfoField, int, bool) {}
func (NoOpTraderSpi) OnRspError(*model.RspInfoField, int, bool)                         {}
func (NoOpTraderSpi) OnRtnOrder(*model.OrderField)                                      {}
func (NoOpTraderSpi) OnRtnTrade(*model.TradeField)                                      {}
func (NoOpTraderSpi) OnRtnInstrumentStatus(*model.InstrumentStatusField)                {}
func (NoOpTraderSpi) OnErrRtnOrderInsert(*model.InputOrderField, *model.RspInfoField)   {}
func (NoOpTraderSpi) OnErrRtnOrderAction(*model.OrderActionField, *model.RspInfoField)  {}
