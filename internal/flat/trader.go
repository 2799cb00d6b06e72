package flat

import (
	"unsafe"

	"go.uber.org/zap"

	"go-ctp/internal/handle"
	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// CreateTraderApi creates a trader object and returns its handle. No vendor
// build selects the environment for trader objects at creation, so
// production only produces a warning.
func (a *API) CreateTraderApi(flowPath string, production bool) (h handle.Handle) {
	a.logVersion()
	flow := a.flowPath(flowPath)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("vendor_call_panicked", zap.String("op", "CreateTraderApi"), zap.Any("panic", r))
			h = handle.Null
		}
	}()
	api := a.platform.CreateTraderApi(flow, production)
	if api == nil {
		return handle.Null
	}
	h = a.traderApis.Insert(api)
	a.gauge(a.traderApis)
	a.log.Debug("trader_api_created", zap.Uint64("handle", uint64(h)), zap.String("flow_path", flow))
	return h
}

// TraderRelease releases the trader object. It must not be called from
// inside a callback of the same object.
func (a *API) TraderRelease(h handle.Handle) int {
	api, ok := a.traderApis.Remove(h)
	if !ok {
		return a.rejected("TraderRelease", h)
	}
	a.gauge(a.traderApis)
	a.log.Debug("trader_api_released", zap.Uint64("handle", uint64(h)))
	return a.guard("TraderRelease", func() int {
		api.RegisterSpi(nil)
		api.Release()
		return 0
	})
}

func (a *API) TraderInit(h handle.Handle) int {
	a.log.Debug("trader_init", zap.Uint64("handle", uint64(h)))
	return a.trader("TraderInit", h, func(api sdk.TraderApi) int {
		api.Init()
		return 0
	})
}

func (a *API) TraderJoin(h handle.Handle) int {
	return a.trader("TraderJoin", h, func(api sdk.TraderApi) int { return api.Join() })
}

func (a *API) TraderGetTradingDay(h handle.Handle) (day string) {
	a.trader("TraderGetTradingDay", h, func(api sdk.TraderApi) int {
		day = api.GetTradingDay()
		return 0
	})
	return day
}

func (a *API) TraderRegisterFront(h handle.Handle, addr string) int {
	a.log.Debug("trader_register_front", zap.Uint64("handle", uint64(h)), zap.String("addr", addr))
	return a.trader("TraderRegisterFront", h, func(api sdk.TraderApi) int {
		api.RegisterFront(addr)
		return 0
	})
}

func (a *API) TraderRegisterNameServer(h handle.Handle, addr string) int {
	return a.trader("TraderRegisterNameServer", h, func(api sdk.TraderApi) int {
		api.RegisterNameServer(addr)
		return 0
	})
}

// TraderGetFrontInfo fills the FrontInfoField at info.
func (a *API) TraderGetFrontInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderGetFrontInfo", h, func(api sdk.TraderApi) int {
		api.GetFrontInfo((*model.FrontInfoField)(info))
		return 0
	})
}

func (a *API) TraderRegisterFensUserInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderRegisterFensUserInfo", h, func(api sdk.TraderApi) int {
		api.RegisterFensUserInfo((*model.FensUserInfoField)(info))
		return 0
	})
}

// TraderRegisterSpi attaches the adapter spi, replacing any previous one
// without destroying it. handle.Null detaches.
func (a *API) TraderRegisterSpi(h, spi handle.Handle) int {
	var target sdk.TraderSpi
	if spi != handle.Null {
		b, ok := a.traderSpis.Get(spi)
		if !ok {
			return a.rejected("TraderRegisterSpi", spi)
		}
		target = b
	}
	a.log.Debug("spi_registered", zap.String("side", "trader"), zap.Uint64("handle", uint64(h)), zap.Uint64("spi", uint64(spi)))
	return a.trader("TraderRegisterSpi", h, func(api sdk.TraderApi) int {
		api.RegisterSpi(target)
		return 0
	})
}

func (a *API) TraderSubscribePrivateTopic(h handle.Handle, resume int) int {
	return a.trader("TraderSubscribePrivateTopic", h, func(api sdk.TraderApi) int {
		api.SubscribePrivateTopic(model.ResumeType(resume))
		return 0
	})
}

func (a *API) TraderSubscribePublicTopic(h handle.Handle, resume int) int {
	return a.trader("TraderSubscribePublicTopic", h, func(api sdk.TraderApi) int {
		api.SubscribePublicTopic(model.ResumeType(resume))
		return 0
	})
}

func (a *API) TraderRegisterUserSystemInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderRegisterUserSystemInfo", h, func(api sdk.TraderApi) int {
		return api.RegisterUserSystemInfo((*model.UserSystemInfoField)(info))
	})
}

func (a *API) TraderSubmitUserSystemInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderSubmitUserSystemInfo", h, func(api sdk.TraderApi) int {
		return api.SubmitUserSystemInfo((*model.UserSystemInfoField)(info))
	})
}

func (a *API) TraderRegisterWechatUserSystemInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderRegisterWechatUserSystemInfo", h, func(api sdk.TraderApi) int {
		return a.platform.RegisterWechatUserSystemInfo(api, (*model.WechatUserSystemInfoField)(info))
	})
}

func (a *API) TraderSubmitWechatUserSystemInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.trader("TraderSubmitWechatUserSystemInfo", h, func(api sdk.TraderApi) int {
		return a.platform.SubmitWechatUserSystemInfo(api, (*model.WechatUserSystemInfoField)(info))
	})
}

// TraderReqUserLogin logs in with the login signature of the selected
// platform.
func (a *API) TraderReqUserLogin(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserLogin", h, requestID, func(api sdk.TraderApi) int {
		return a.platform.ReqUserLogin(api, (*model.ReqUserLoginField)(req), requestID)
	})
}

func (a *API) TraderReqAuthenticate(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqAuthenticate", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqAuthenticate((*model.ReqAuthenticateField)(req), requestID)
	})
}

func (a *API) TraderReqUserLogout(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserLogout", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserLogout((*model.UserLogoutField)(req), requestID)
	})
}

func (a *API) TraderReqUserPasswordUpdate(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserPasswordUpdate", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserPasswordUpdate((*model.UserPasswordUpdateField)(req), requestID)
	})
}

func (a *API) TraderReqTradingAccountPasswordUpdate(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqTradingAccountPasswordUpdate", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqTradingAccountPasswordUpdate((*model.TradingAccountPasswordUpdateField)(req), requestID)
	})
}

func (a *API) TraderReqUserAuthMethod(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserAuthMethod", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserAuthMethod((*model.ReqUserAuthMethodField)(req), requestID)
	})
}

func (a *API) TraderReqGenUserCaptcha(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqGenUserCaptcha", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqGenUserCaptcha((*model.ReqGenUserCaptchaField)(req), requestID)
	})
}

func (a *API) TraderReqGenUserText(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqGenUserText", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqGenUserText((*model.ReqGenUserTextField)(req), requestID)
	})
}

func (a *API) TraderReqUserLoginWithCaptcha(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserLoginWithCaptcha", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserLoginWithCaptcha((*model.ReqUserLoginWithCaptchaField)(req), requestID)
	})
}

func (a *API) TraderReqUserLoginWithText(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserLoginWithText", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserLoginWithText((*model.ReqUserLoginWithTextField)(req), requestID)
	})
}

func (a *API) TraderReqUserLoginWithOTP(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqUserLoginWithOTP", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqUserLoginWithOTP((*model.ReqUserLoginWithOTPField)(req), requestID)
	})
}

func (a *API) TraderReqOrderInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqOrderInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqOrderInsert((*model.InputOrderField)(req), requestID)
	})
}

func (a *API) TraderReqParkedOrderInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqParkedOrderInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqParkedOrderInsert((*model.ParkedOrderField)(req), requestID)
	})
}

func (a *API) TraderReqParkedOrderAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqParkedOrderAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqParkedOrderAction((*model.ParkedOrderActionField)(req), requestID)
	})
}

func (a *API) TraderReqOrderAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqOrderAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqOrderAction((*model.InputOrderActionField)(req), requestID)
	})
}

func (a *API) TraderReqQryMaxOrderVolume(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryMaxOrderVolume", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryMaxOrderVolume((*model.QryMaxOrderVolumeField)(req), requestID)
	})
}

func (a *API) TraderReqSettlementInfoConfirm(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqSettlementInfoConfirm", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqSettlementInfoConfirm((*model.SettlementInfoConfirmField)(req), requestID)
	})
}

func (a *API) TraderReqRemoveParkedOrder(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqRemoveParkedOrder", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqRemoveParkedOrder((*model.RemoveParkedOrderField)(req), requestID)
	})
}

func (a *API) TraderReqRemoveParkedOrderAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqRemoveParkedOrderAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqRemoveParkedOrderAction((*model.RemoveParkedOrderActionField)(req), requestID)
	})
}

func (a *API) TraderReqExecOrderInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqExecOrderInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqExecOrderInsert((*model.InputExecOrderField)(req), requestID)
	})
}

func (a *API) TraderReqExecOrderAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqExecOrderAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqExecOrderAction((*model.InputExecOrderActionField)(req), requestID)
	})
}

func (a *API) TraderReqForQuoteInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqForQuoteInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqForQuoteInsert((*model.InputForQuoteField)(req), requestID)
	})
}

func (a *API) TraderReqQuoteInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQuoteInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQuoteInsert((*model.InputQuoteField)(req), requestID)
	})
}

func (a *API) TraderReqQuoteAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQuoteAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQuoteAction((*model.InputQuoteActionField)(req), requestID)
	})
}

func (a *API) TraderReqBatchOrderAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqBatchOrderAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqBatchOrderAction((*model.InputBatchOrderActionField)(req), requestID)
	})
}

func (a *API) TraderReqOptionSelfCloseInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqOptionSelfCloseInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqOptionSelfCloseInsert((*model.InputOptionSelfCloseField)(req), requestID)
	})
}

func (a *API) TraderReqOptionSelfCloseAction(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqOptionSelfCloseAction", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqOptionSelfCloseAction((*model.InputOptionSelfCloseActionField)(req), requestID)
	})
}

func (a *API) TraderReqCombActionInsert(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqCombActionInsert", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqCombActionInsert((*model.InputCombActionField)(req), requestID)
	})
}

func (a *API) TraderReqQryOrder(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryOrder", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryOrder((*model.QryOrderField)(req), requestID)
	})
}

func (a *API) TraderReqQryTrade(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryTrade", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryTrade((*model.QryTradeField)(req), requestID)
	})
}

func (a *API) TraderReqQryInvestorPosition(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInvestorPosition", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInvestorPosition((*model.QryInvestorPositionField)(req), requestID)
	})
}

func (a *API) TraderReqQryTradingAccount(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryTradingAccount", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryTradingAccount((*model.QryTradingAccountField)(req), requestID)
	})
}

func (a *API) TraderReqQryInvestor(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInvestor", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInvestor((*model.QryInvestorField)(req), requestID)
	})
}

func (a *API) TraderReqQryTradingCode(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryTradingCode", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryTradingCode((*model.QryTradingCodeField)(req), requestID)
	})
}

func (a *API) TraderReqQryInstrumentMarginRate(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInstrumentMarginRate", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInstrumentMarginRate((*model.QryInstrumentMarginRateField)(req), requestID)
	})
}

func (a *API) TraderReqQryInstrumentCommissionRate(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInstrumentCommissionRate", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInstrumentCommissionRate((*model.QryInstrumentCommissionRateField)(req), requestID)
	})
}

func (a *API) TraderReqQryExchange(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryExchange", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryExchange((*model.QryExchangeField)(req), requestID)
	})
}

func (a *API) TraderReqQryProduct(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryProduct", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryProduct((*model.QryProductField)(req), requestID)
	})
}

func (a *API) TraderReqQryInstrument(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInstrument", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInstrument((*model.QryInstrumentField)(req), requestID)
	})
}

func (a *API) TraderReqQryDepthMarketData(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryDepthMarketData", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryDepthMarketData((*model.QryDepthMarketDataField)(req), requestID)
	})
}

func (a *API) TraderReqQrySettlementInfo(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQrySettlementInfo", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQrySettlementInfo((*model.QrySettlementInfoField)(req), requestID)
	})
}

func (a *API) TraderReqQryTransferBank(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryTransferBank", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryTransferBank((*model.QryTransferBankField)(req), requestID)
	})
}

func (a *API) TraderReqQryInvestorPositionDetail(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryInvestorPositionDetail", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryInvestorPositionDetail((*model.QryInvestorPositionDetailField)(req), requestID)
	})
}

func (a *API) TraderReqQryNotice(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.traderReq("TraderReqQryNotice", h, requestID, func(api sdk.TraderApi) int {
		return api.ReqQryNotice((*model.QryNoticeField)(req), requestID)
	})
}
