package sdk

import "go-ctp/internal/model"

// MdSpi receives market data events.
type MdSpi interface {
	OnFrontConnected()
	OnFrontDisconnected(reason int)
	OnHeartBeatWarning(timeLapse int)

	OnRspUserLogin(login *model.RspUserLoginField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUserLogout(logout *model.UserLogoutField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspError(info *model.RspInfoField, requestID int, isLast bool)
	OnRspSubMarketData(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUnSubMarketData(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspSubForQuoteRsp(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool)
	OnRspUnSubForQuoteRsp(instrument *model.SpecificInstrumentField, info *model.RspInfoField, requestID int, isLast bool)

	OnRtnDepthMarketData(data *model.DepthMarketDataField)
	OnRtnForQuoteRsp(rsp *model.ForQuoteRspField)
}

// MdApi is a market data session.
type MdApi interface {
	// Release stops the session. The object must not be used afterwards.
	Release()
	Init()
	// Join blocks until the session is released.
	Join() int
	GetTradingDay() string
	RegisterFront(addr string)
	RegisterNameServer(addr string)
	RegisterFensUserInfo(info *model.FensUserInfoField)
	RegisterSpi(spi MdSpi)

	ReqUserLogin(req *model.ReqUserLoginField, requestID int) int
	ReqUserLogout(req *model.UserLogoutField, requestID int) int

	SubscribeMarketData(instrumentIDs []string) int
	UnSubscribeMarketData(instrumentIDs []string) int
	SubscribeForQuoteRsp(instrumentIDs []string) int
	UnSubscribeForQuoteRsp(instrumentIDs []string) int
}

// NoOpMdSpi ignores every event. Embed it to implement a subset.
type NoOpMdSpi struct{}

func (NoOpMdSpi) OnFrontConnected()                                                                 {}
func (NoOpMdSpi) OnFrontDisconnected(int)                                                           {}
func (NoOpMdSpi) OnHeartBeatWarning(int)                                                            {}
func (NoOpMdSpi) OnRspUserLogin(*model.RspUserLoginField, *model.RspInfoField, int, bool)           {}
func (NoOpMdSpi) OnRspUserLogout(*model.UserLogoutField, *model.RspInfoField, int, bool)            {}
func (NoOpMdSpi) OnRspError(*model.RspInfoField, int, bool)                                         {}
func (NoOpMdSpi) OnRspSubMarketData(*model.SpecificInstrumentField, *model.RspInfoField, int, bool) {}
func (NoOpMdSpi) OnRspUnSubMarketData(*model.SpecificInstrumentField, *model.RspInfoField, int, bool) {
}
func (NoOpMdSpi) OnRspSubForQuoteRsp(*model.SpecificInstrumentField, *model.RspInfoField, int, bool) {}
func (NoOpMdSpi) OnRspUnSubForQuoteRsp(*model.SpecificInstrumentField, *model.RspInfoField, int, bool) {
}
func (NoOpMdSpi) OnRtnDepthMarketData(*model.DepthMarketDataField) {}
func (NoOpMdSpi) OnRtnForQuoteRsp(*model.ForQuoteRspField)         {}
