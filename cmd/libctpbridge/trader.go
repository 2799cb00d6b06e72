package main

/*
#include "ctpbridge.h"
*/
import "C"

import (
	"unsafe"

	"go-ctp/internal/handle"
)

//export CThostFtdcTraderApi_CreateFtdcTraderApi
func CThostFtdcTraderApi_CreateFtdcTraderApi(flowPath *C.char, isProductionMode C.int) C.uintptr_t {
	return C.uintptr_t(flatAPI().CreateTraderApi(C.GoString(flowPath), isProductionMode != 0))
}

//export CThostFtdcTraderApi_GetApiVersion
func CThostFtdcTraderApi_GetApiVersion() *C.char {
	return versions.get("trader", flatAPI().TraderApiVersion())
}

//export CThostFtdcTraderApi_Release
func CThostFtdcTraderApi_Release(h C.uintptr_t) C.int {
	return release(handle.Handle(h), flatAPI().TraderRelease(handle.Handle(h)))
}

//export CThostFtdcTraderApi_Init
func CThostFtdcTraderApi_Init(h C.uintptr_t) C.int {
	return C.int(flatAPI().TraderInit(handle.Handle(h)))
}

//export CThostFtdcTraderApi_Join
func CThostFtdcTraderApi_Join(h C.uintptr_t) C.int {
	return C.int(flatAPI().TraderJoin(handle.Handle(h)))
}

//export CThostFtdcTraderApi_GetTradingDay
func CThostFtdcTraderApi_GetTradingDay(h C.uintptr_t) *C.char {
	return tradingDay(handle.Handle(h), flatAPI().TraderGetTradingDay(handle.Handle(h)))
}

//export CThostFtdcTraderApi_RegisterFront
func CThostFtdcTraderApi_RegisterFront(h C.uintptr_t, addr *C.char) C.int {
	return C.int(flatAPI().TraderRegisterFront(handle.Handle(h), C.GoString(addr)))
}

//export CThostFtdcTraderApi_RegisterNameServer
func CThostFtdcTraderApi_RegisterNameServer(h C.uintptr_t, addr *C.char) C.int {
	return C.int(flatAPI().TraderRegisterNameServer(handle.Handle(h), C.GoString(addr)))
}

//export CThostFtdcTraderApi_GetFrontInfo
func CThostFtdcTraderApi_GetFrontInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderGetFrontInfo(handle.Handle(h), info))
}

//export CThostFtdcTraderApi_RegisterFensUserInfo
func CThostFtdcTraderApi_RegisterFensUserInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderRegisterFensUserInfo(handle.Handle(h), info))
}

//export CThostFtdcTraderApi_RegisterSpi
func CThostFtdcTraderApi_RegisterSpi(h, spi C.uintptr_t) C.int {
	return C.int(flatAPI().TraderRegisterSpi(handle.Handle(h), handle.Handle(spi)))
}

//export CThostFtdcTraderApi_SubscribePrivateTopic
func CThostFtdcTraderApi_SubscribePrivateTopic(h C.uintptr_t, resumeType C.int) C.int {
	return C.int(flatAPI().TraderSubscribePrivateTopic(handle.Handle(h), int(resumeType)))
}

//export CThostFtdcTraderApi_SubscribePublicTopic
func CThostFtdcTraderApi_SubscribePublicTopic(h C.uintptr_t, resumeType C.int) C.int {
	return C.int(flatAPI().TraderSubscribePublicTopic(handle.Handle(h), int(resumeType)))
}

//export CThostFtdcTraderApi_RegisterUserSystemInfo
func CThostFtdcTraderApi_RegisterUserSystemInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderRegisterUserSystemInfo(handle.Handle(h), info))
}

//export CThostFtdcTraderApi_SubmitUserSystemInfo
func CThostFtdcTraderApi_SubmitUserSystemInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderSubmitUserSystemInfo(handle.Handle(h), info))
}

//export CThostFtdcTraderApi_RegisterWechatUserSystemInfo
func CThostFtdcTraderApi_RegisterWechatUserSystemInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderRegisterWechatUserSystemInfo(handle.Handle(h), info))
}

//export CThostFtdcTraderApi_SubmitWechatUserSystemInfo
func CThostFtdcTraderApi_SubmitWechatUserSystemInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().TraderSubmitWechatUserSystemInfo(handle.Handle(h), info))
}

// Request calls. Each forwards the vendor request record and the caller's
// request id unchanged.

//export CThostFtdcTraderApi_ReqUserLogin
func CThostFtdcTraderApi_ReqUserLogin(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserLogin(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqAuthenticate
func CThostFtdcTraderApi_ReqAuthenticate(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqAuthenticate(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserLogout
func CThostFtdcTraderApi_ReqUserLogout(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserLogout(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserPasswordUpdate
func CThostFtdcTraderApi_ReqUserPasswordUpdate(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserPasswordUpdate(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqTradingAccountPasswordUpdate
func CThostFtdcTraderApi_ReqTradingAccountPasswordUpdate(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqTradingAccountPasswordUpdate(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserAuthMethod
func CThostFtdcTraderApi_ReqUserAuthMethod(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserAuthMethod(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqGenUserCaptcha
func CThostFtdcTraderApi_ReqGenUserCaptcha(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqGenUserCaptcha(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqGenUserText
func CThostFtdcTraderApi_ReqGenUserText(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqGenUserText(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserLoginWithCaptcha
func CThostFtdcTraderApi_ReqUserLoginWithCaptcha(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserLoginWithCaptcha(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserLoginWithText
func CThostFtdcTraderApi_ReqUserLoginWithText(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserLoginWithText(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqUserLoginWithOTP
func CThostFtdcTraderApi_ReqUserLoginWithOTP(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqUserLoginWithOTP(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqOrderInsert
func CThostFtdcTraderApi_ReqOrderInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqOrderInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqParkedOrderInsert
func CThostFtdcTraderApi_ReqParkedOrderInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqParkedOrderInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqParkedOrderAction
func CThostFtdcTraderApi_ReqParkedOrderAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqParkedOrderAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqOrderAction
func CThostFtdcTraderApi_ReqOrderAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqOrderAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryMaxOrderVolume
func CThostFtdcTraderApi_ReqQryMaxOrderVolume(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryMaxOrderVolume(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqSettlementInfoConfirm
func CThostFtdcTraderApi_ReqSettlementInfoConfirm(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqSettlementInfoConfirm(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqRemoveParkedOrder
func CThostFtdcTraderApi_ReqRemoveParkedOrder(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqRemoveParkedOrder(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqRemoveParkedOrderAction
func CThostFtdcTraderApi_ReqRemoveParkedOrderAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqRemoveParkedOrderAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqExecOrderInsert
func CThostFtdcTraderApi_ReqExecOrderInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqExecOrderInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqExecOrderAction
func CThostFtdcTraderApi_ReqExecOrderAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqExecOrderAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqForQuoteInsert
func CThostFtdcTraderApi_ReqForQuoteInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqForQuoteInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQuoteInsert
func CThostFtdcTraderApi_ReqQuoteInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQuoteInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQuoteAction
func CThostFtdcTraderApi_ReqQuoteAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQuoteAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqBatchOrderAction
func CThostFtdcTraderApi_ReqBatchOrderAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqBatchOrderAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqOptionSelfCloseInsert
func CThostFtdcTraderApi_ReqOptionSelfCloseInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqOptionSelfCloseInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqOptionSelfCloseAction
func CThostFtdcTraderApi_ReqOptionSelfCloseAction(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqOptionSelfCloseAction(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqCombActionInsert
func CThostFtdcTraderApi_ReqCombActionInsert(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqCombActionInsert(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryOrder
func CThostFtdcTraderApi_ReqQryOrder(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryOrder(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryTrade
func CThostFtdcTraderApi_ReqQryTrade(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryTrade(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInvestorPosition
func CThostFtdcTraderApi_ReqQryInvestorPosition(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInvestorPosition(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryTradingAccount
func CThostFtdcTraderApi_ReqQryTradingAccount(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryTradingAccount(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInvestor
func CThostFtdcTraderApi_ReqQryInvestor(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInvestor(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryTradingCode
func CThostFtdcTraderApi_ReqQryTradingCode(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryTradingCode(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInstrumentMarginRate
func CThostFtdcTraderApi_ReqQryInstrumentMarginRate(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInstrumentMarginRate(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInstrumentCommissionRate
func CThostFtdcTraderApi_ReqQryInstrumentCommissionRate(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInstrumentCommissionRate(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryExchange
func CThostFtdcTraderApi_ReqQryExchange(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryExchange(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryProduct
func CThostFtdcTraderApi_ReqQryProduct(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryProduct(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInstrument
func CThostFtdcTraderApi_ReqQryInstrument(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInstrument(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryDepthMarketData
func CThostFtdcTraderApi_ReqQryDepthMarketData(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryDepthMarketData(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQrySettlementInfo
func CThostFtdcTraderApi_ReqQrySettlementInfo(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQrySettlementInfo(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryTransferBank
func CThostFtdcTraderApi_ReqQryTransferBank(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryTransferBank(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryInvestorPositionDetail
func CThostFtdcTraderApi_ReqQryInvestorPositionDetail(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryInvestorPositionDetail(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcTraderApi_ReqQryNotice
func CThostFtdcTraderApi_ReqQryNotice(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().TraderReqQryNotice(handle.Handle(h), req, int(requestID)))
}
