// Package sdk describes the vendor trading SDK as Go interfaces.
//
// The vendor runtime owns its API objects and calls back into an SPI from
// goroutines it controls. Request methods return 0 when the request was
// queued and a negative vendor code otherwise. Platform builds of the SDK
// differ in a few method signatures; those differences are expressed as
// separate optional interfaces so a caller can discover them with a type
// assertion.
package sdk

import "go-ctp/internal/model"

// Vendor return codes for request methods.
const (
	CodeOK             = 0
	CodeNetwork        = -1
	CodeTooManyPending = -2
	CodeRateExceeded   = -3
)

// Library is the entrypoint set exported by a vendor build.
type Library interface {
	CreateTraderApi(flowPath string) TraderApi
	MdApiVersion() string
	TraderApiVersion() string
}

// MdFactory is the MD constructor of builds without a production switch.
type MdFactory interface {
	CreateMdApi(flowPath string, udp, multicast bool) MdApi
}

// MdFactoryWithProduction is the MD constructor of builds that can select
// the production environment at creation time.
type MdFactoryWithProduction interface {
	CreateMdApi(flowPath string, udp, multicast, production bool) MdApi
}

// TraderLogin is the two argument trader login.
type TraderLogin interface {
	ReqUserLogin(req *model.ReqUserLoginField, requestID int) int
}

// TraderLoginWithSystemInfo is the trader login of builds that take the
// client system information inline.
type TraderLoginWithSystemInfo interface {
	ReqUserLogin(req *model.ReqUserLoginField, requestID int, systemInfoLen int, systemInfo string) int
}

// WechatSystemInfo is only present on builds that support mini-program clients.
type WechatSystemInfo interface {
	RegisterWechatUserSystemInfo(info *model.WechatUserSystemInfoField) int
	SubmitWechatUserSystemInfo(info *model.WechatUserSystemInfoField) int
}
