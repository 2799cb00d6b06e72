package bridge

import (
	"unsafe"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// MdCallbacks is the market data callback table.
type MdCallbacks struct {
	UserData unsafe.Pointer

	OnFrontConnected      FrontConnectedFunc
	OnFrontDisconnected   FrontDisconnectedFunc
	OnHeartBeatWarning    HeartBeatWarningFunc
	OnRspUserLogin        RspFunc
	OnRspUserLogout       RspFunc
	OnRspError            RspErrorFunc
	OnRspSubMarketData    RspFunc
	OnRspUnSubMarketData  RspFunc
	OnRtnDepthMarketData  RtnFunc
	OnRtnForQuoteRsp      RtnFunc
	OnRspSubForQuoteRsp   RspFunc
	OnRspUnSubForQuoteRsp RspFunc
}

// MdSpiBridge implements sdk.MdSpi by forwarding to an MdCallbacks table.
type MdSpiBridge struct {
	cb MdCallbacks
	t  tracer
}

var _ sdk.MdSpi = (*MdSpiBridge)(nil)

// NewMdSpiBridge copies cb into a new adapter.
func NewMdSpiBridge(cb MdCallbacks, opts ...Option) *MdSpiBridge {
	return &MdSpiBridge{cb: cb, t: newTracer("md", opts)}
}

// UserData returns the context pointer the adapter was built with.
func (b *MdSpiBridge) UserData() unsafe.Pointer { return b.cb.UserData }

func (b *MdSpiBridge) OnFrontConnected() {
	fn := b.cb.OnFrontConnected
	b.t.push("OnFrontConnected", fn != nil)
	if fn != nil {
		fn(b.cb.UserData)
	}
}

func (b *MdSpiBridge) OnFrontDisconnected(reason int) {
	fn := b.cb.OnFrontDisconnected
	b.t.push("OnFrontDisconnected", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, reason)
	}
}

func (b *MdSpiBridge) OnHeartBeatWarning(timeLapse int) {
	fn := b.cb.OnHeartBeatWarning
	b.t.push("OnHeartBeatWarning", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, timeLapse)
	}
}

func (b *MdSpiBridge) OnRspUserLogin(login *model.RspUserLoginField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserLogin", b.cb.OnRspUserLogin, unsafe.Pointer(login), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRspUserLogout(logout *model.UserLogoutField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUserLogout", b.cb.OnRspUserLogout, unsafe.Pointer(logout), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRspError(info *model.RspInfoField, requestID int, isLast bool) {
	fn := b.cb.OnRspError
	b.t.rsp("OnRspError", requestID, isLast, fn != nil)
	if fn != nil {
		fn(b.cb.UserData, info, requestID, lastFlag(isLast))
	}
}

func (b *MdSpiBridge) OnRspSubMarketData(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspSubMarketData", b.cb.OnRspSubMarketData, unsafe.Pointer(instrument), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRspUnSubMarketData(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUnSubMarketData", b.cb.OnRspUnSubMarketData, unsafe.Pointer(instrument), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRspSubForQuoteRsp(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspSubForQuoteRsp", b.cb.OnRspSubForQuoteRsp, unsafe.Pointer(instrument), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRspUnSubForQuoteRsp(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool) {
	b.forward("OnRspUnSubForQuoteRsp", b.cb.OnRspUnSubForQuoteRsp, unsafe.Pointer(instrument), info, requestID, isLast)
}

func (b *MdSpiBridge) OnRtnDepthMarketData(data *model.DepthMarketDataField) {
	fn := b.cb.OnRtnDepthMarketData
	b.t.push("OnRtnDepthMarketData", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(data))
	}
}

func (b *MdSpiBridge) OnRtnForQuoteRsp(rsp *model.ForQuoteRspField) {
	fn := b.cb.OnRtnForQuoteRsp
	b.t.push("OnRtnForQuoteRsp", fn != nil)
	if fn != nil {
		fn(b.cb.UserData, unsafe.Pointer(rsp))
	}
}

func (b *MdSpiBridge) forward(event string, fn RspFunc, payload unsafe.Pointer, info *model.RspInfoField, requestID int, isLast bool) {
	b.t.rsp(event, requestID, isLast, fn != nil)
	if fn != nil {
		fn(b.cb.UserData, payload, info, requestID, lastFlag(isLast))
	}
}
