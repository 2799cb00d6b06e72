package main

/*
#include "ctpbridge.h"

static void ctp_front_connected(CTPFrontConnectedFn fn, void* ud) { fn(ud); }
static void ctp_front_disconnected(CTPFrontDisconnectedFn fn, void* ud, int reason) { fn(ud, reason); }
static void ctp_heartbeat_warning(CTPHeartBeatWarningFn fn, void* ud, int lapse) { fn(ud, lapse); }
static void ctp_rsp(CTPRspFn fn, void* ud, void* payload, void* info, int id, int last) { fn(ud, payload, info, id, last); }
static void ctp_rsp_error(CTPRspErrorFn fn, void* ud, void* info, int id, int last) { fn(ud, info, id, last); }
static void ctp_rtn(CTPRtnFn fn, void* ud, void* payload) { fn(ud, payload); }
static void ctp_err_rtn(CTPErrRtnFn fn, void* ud, void* payload, void* info) { fn(ud, payload, info); }
*/
import "C"

import (
	"unsafe"

	"go-ctp/internal/bridge"
	"go-ctp/internal/model"
)

// The converters below wrap a C function pointer in the matching bridge
// signature. A NULL pointer becomes a nil entry, which the bridge skips.

func frontConnected(fn C.CTPFrontConnectedFn) bridge.FrontConnectedFunc {
	if fn == nil {
		return nil
	}
	return func(ud unsafe.Pointer) { C.ctp_front_connected(fn, ud) }
}

func frontDisconnected(fn C.CTPFrontDisconnectedFn) bridge.FrontDisconnectedFunc {
	if fn == nil {
		return nil
	}
	return func(ud unsafe.Pointer, reason int) { C.ctp_front_disconnected(fn, ud, C.int(reason)) }
}

func heartBeatWarning(fn C.CTPHeartBeatWarningFn) bridge.HeartBeatWarningFunc {
	if fn == nil {
		return nil
	}
	return func(ud unsafe.Pointer, lapse int) { C.ctp_heartbeat_warning(fn, ud, C.int(lapse)) }
}

func rsp(fn C.CTPRspFn) bridge.RspFunc {
	if fn == nil {
		return nil
	}
	return func(ud, payload unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
		C.ctp_rsp(fn, ud, payload, unsafe.Pointer(info), C.int(requestID), C.int(isLast))
	}
}

func rspError(fn C.CTPRspErrorFn) bridge.RspErrorFunc {
	if fn == nil {
		return nil
	}
	return func(ud unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
		C.ctp_rsp_error(fn, ud, unsafe.Pointer(info), C.int(requestID), C.int(isLast))
	}
}

func rtn(fn C.CTPRtnFn) bridge.RtnFunc {
	if fn == nil {
		return nil
	}
	return func(ud, payload unsafe.Pointer) { C.ctp_rtn(fn, ud, payload) }
}

func errRtn(fn C.CTPErrRtnFn) bridge.ErrRtnFunc {
	if fn == nil {
		return nil
	}
	return func(ud, payload unsafe.Pointer, info *model.RspInfoField) {
		C.ctp_err_rtn(fn, ud, payload, unsafe.Pointer(info))
	}
}

func mdTable(c *C.MdSpiCallbacks) bridge.MdCallbacks {
	return bridge.MdCallbacks{
		UserData:              c.userData,
		OnFrontConnected:      frontConnected(c.onFrontConnected),
		OnFrontDisconnected:   frontDisconnected(c.onFrontDisconnected),
		OnHeartBeatWarning:    heartBeatWarning(c.onHeartBeatWarning),
		OnRspUserLogin:        rsp(c.onRspUserLogin),
		OnRspUserLogout:       rsp(c.onRspUserLogout),
		OnRspError:            rspError(c.onRspError),
		OnRspSubMarketData:    rsp(c.onRspSubMarketData),
		OnRspUnSubMarketData:  rsp(c.onRspUnSubMarketData),
		OnRtnDepthMarketData:  rtn(c.onRtnDepthMarketData),
		OnRtnForQuoteRsp:      rtn(c.onRtnForQuoteRsp),
		OnRspSubForQuoteRsp:   rsp(c.onRspSubForQuoteRsp),
		OnRspUnSubForQuoteRsp: rsp(c.onRspUnSubForQuoteRsp),
	}
}

func traderTable(c *C.TraderSpiCallbacks) bridge.TraderCallbacks {
	return bridge.TraderCallbacks{
		UserData:                          c.userData,
		OnFrontConnected:                  frontConnected(c.onFrontConnected),
		OnFrontDisconnected:               frontDisconnected(c.onFrontDisconnected),
		OnHeartBeatWarning:                heartBeatWarning(c.onHeartBeatWarning),
		OnRspAuthenticate:                 rsp(c.onRspAuthenticate),
		OnRspUserLogin:                    rsp(c.onRspUserLogin),
		OnRspUserLogout:                   rsp(c.onRspUserLogout),
		OnRspError:                        rspError(c.onRspError),
		OnRspOrderInsert:                  rsp(c.onRspOrderInsert),
		OnRspOrderAction:                  rsp(c.onRspOrderAction),
		OnRtnOrder:                        rtn(c.onRtnOrder),
		OnRtnTrade:                        rtn(c.onRtnTrade),
		OnRspQryTradingAccount:            rsp(c.onRspQryTradingAccount),
		OnRspQryInvestorPosition:          rsp(c.onRspQryInvestorPosition),
		OnErrRtnOrderInsert:               errRtn(c.onErrRtnOrderInsert),
		OnErrRtnOrderAction:               errRtn(c.onErrRtnOrderAction),
		OnRspQryOrder:                     rsp(c.onRspQryOrder),
		OnRspQryTrade:                     rsp(c.onRspQryTrade),
		OnRspQryInstrument:                rsp(c.onRspQryInstrument),
		OnRspQryInstrumentMarginRate:      rsp(c.onRspQryInstrumentMarginRate),
		OnRspQryInstrumentCommissionRate:  rsp(c.onRspQryInstrumentCommissionRate),
		OnRspQryExchange:                  rsp(c.onRspQryExchange),
		OnRspQryProduct:                   rsp(c.onRspQryProduct),
		OnRspSettlementInfoConfirm:        rsp(c.onRspSettlementInfoConfirm),
		OnRspParkedOrderInsert:            rsp(c.onRspParkedOrderInsert),
		OnRspParkedOrderAction:            rsp(c.onRspParkedOrderAction),
		OnRspExecOrderInsert:              rsp(c.onRspExecOrderInsert),
		OnRspExecOrderAction:              rsp(c.onRspExecOrderAction),
		OnRspForQuoteInsert:               rsp(c.onRspForQuoteInsert),
		OnRspQuoteInsert:                  rsp(c.onRspQuoteInsert),
		OnRspQuoteAction:                  rsp(c.onRspQuoteAction),
		OnRspBatchOrderAction:             rsp(c.onRspBatchOrderAction),
		OnRspRemoveParkedOrder:            rsp(c.onRspRemoveParkedOrder),
		OnRspRemoveParkedOrderAction:      rsp(c.onRspRemoveParkedOrderAction),
		OnRspQryMaxOrderVolume:            rsp(c.onRspQryMaxOrderVolume),
		OnRspQryDepthMarketData:           rsp(c.onRspQryDepthMarketData),
		OnRspQrySettlementInfo:            rsp(c.onRspQrySettlementInfo),
		OnRspQryTransferBank:              rsp(c.onRspQryTransferBank),
		OnRspQryInvestorPositionDetail:    rsp(c.onRspQryInvestorPositionDetail),
		OnRspQryNotice:                    rsp(c.onRspQryNotice),
		OnRspUserPasswordUpdate:           rsp(c.onRspUserPasswordUpdate),
		OnRspTradingAccountPasswordUpdate: rsp(c.onRspTradingAccountPasswordUpdate),
		OnRspUserAuthMethod:               rsp(c.onRspUserAuthMethod),
		OnRspGenUserCaptcha:               rsp(c.onRspGenUserCaptcha),
		OnRspGenUserText:                  rsp(c.onRspGenUserText),
		OnRspOptionSelfCloseInsert:        rsp(c.onRspOptionSelfCloseInsert),
		OnRspOptionSelfCloseAction:        rsp(c.onRspOptionSelfCloseAction),
		OnRspCombActionInsert:             rsp(c.onRspCombActionInsert),
		OnRspQryInvestor:                  rsp(c.onRspQryInvestor),
		OnRspQryTradingCode:               rsp(c.onRspQryTradingCode),
		OnRtnInstrumentStatus:             rtn(c.onRtnInstrumentStatus),
	}
}
