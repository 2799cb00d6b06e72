package main

/*
#include "ctpbridge.h"
*/
import "C"

import (
	"unsafe"

	"go-ctp/internal/handle"
)

//export CThostFtdcMdApi_CreateFtdcMdApi
func CThostFtdcMdApi_CreateFtdcMdApi(flowPath *C.char, isUsingUdp, isMulticast, isProductionMode C.int) C.uintptr_t {
	return C.uintptr_t(flatAPI().CreateMdApi(C.GoString(flowPath), isUsingUdp != 0, isMulticast != 0, isProductionMode != 0))
}

//export CThostFtdcMdApi_GetApiVersion
func CThostFtdcMdApi_GetApiVersion() *C.char {
	return versions.get("md", flatAPI().MdApiVersion())
}

//export CThostFtdcMdApi_Release
func CThostFtdcMdApi_Release(h C.uintptr_t) C.int {
	return release(handle.Handle(h), flatAPI().MdRelease(handle.Handle(h)))
}

//export CThostFtdcMdApi_Init
func CThostFtdcMdApi_Init(h C.uintptr_t) C.int {
	return C.int(flatAPI().MdInit(handle.Handle(h)))
}

//export CThostFtdcMdApi_Join
func CThostFtdcMdApi_Join(h C.uintptr_t) C.int {
	return C.int(flatAPI().MdJoin(handle.Handle(h)))
}

//export CThostFtdcMdApi_GetTradingDay
func CThostFtdcMdApi_GetTradingDay(h C.uintptr_t) *C.char {
	return tradingDay(handle.Handle(h), flatAPI().MdGetTradingDay(handle.Handle(h)))
}

//export CThostFtdcMdApi_RegisterFront
func CThostFtdcMdApi_RegisterFront(h C.uintptr_t, addr *C.char) C.int {
	return C.int(flatAPI().MdRegisterFront(handle.Handle(h), C.GoString(addr)))
}

//export CThostFtdcMdApi_RegisterNameServer
func CThostFtdcMdApi_RegisterNameServer(h C.uintptr_t, addr *C.char) C.int {
	return C.int(flatAPI().MdRegisterNameServer(handle.Handle(h), C.GoString(addr)))
}

//export CThostFtdcMdApi_RegisterFensUserInfo
func CThostFtdcMdApi_RegisterFensUserInfo(h C.uintptr_t, info unsafe.Pointer) C.int {
	return C.int(flatAPI().MdRegisterFensUserInfo(handle.Handle(h), info))
}

//export CThostFtdcMdApi_RegisterSpi
func CThostFtdcMdApi_RegisterSpi(h, spi C.uintptr_t) C.int {
	return C.int(flatAPI().MdRegisterSpi(handle.Handle(h), handle.Handle(spi)))
}

//export CThostFtdcMdApi_ReqUserLogin
func CThostFtdcMdApi_ReqUserLogin(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().MdReqUserLogin(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcMdApi_ReqUserLogout
func CThostFtdcMdApi_ReqUserLogout(h C.uintptr_t, req unsafe.Pointer, requestID C.int) C.int {
	return C.int(flatAPI().MdReqUserLogout(handle.Handle(h), req, int(requestID)))
}

//export CThostFtdcMdApi_SubscribeMarketData
func CThostFtdcMdApi_SubscribeMarketData(h C.uintptr_t, ids **C.char, count C.int) C.int {
	list := goStrings(ids, count)
	return C.int(flatAPI().MdSubscribeMarketData(handle.Handle(h), list, len(list)))
}

//export CThostFtdcMdApi_UnSubscribeMarketData
func CThostFtdcMdApi_UnSubscribeMarketData(h C.uintptr_t, ids **C.char, count C.int) C.int {
	list := goStrings(ids, count)
	return C.int(flatAPI().MdUnSubscribeMarketData(handle.Handle(h), list, len(list)))
}

//export CThostFtdcMdApi_SubscribeForQuoteRsp
func CThostFtdcMdApi_SubscribeForQuoteRsp(h C.uintptr_t, ids **C.char, count C.int) C.int {
	list := goStrings(ids, count)
	return C.int(flatAPI().MdSubscribeForQuoteRsp(handle.Handle(h), list, len(list)))
}

//export CThostFtdcMdApi_UnSubscribeForQuoteRsp
func CThostFtdcMdApi_UnSubscribeForQuoteRsp(h C.uintptr_t, ids **C.char, count C.int) C.int {
	list := goStrings(ids, count)
	return C.int(flatAPI().MdUnSubscribeForQuoteRsp(handle.Handle(h), list, len(list)))
}
