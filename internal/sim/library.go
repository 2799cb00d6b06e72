package sim

import (
	"fmt"

	"go.uber.org/zap"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

const (
	mdVersion     = "v6.7.2_sim"
	traderVersion = "v6.7.2_sim"
)

// base holds what both platform builds share: one configuration and one
// simulated market per library.
type base struct {
	cfg    Config
	market *market
}

func newBase(cfg Config) base {
	cfg.setDefaults()
	return base{cfg: cfg, market: newMarket(cfg)}
}

func (b base) MdApiVersion() string     { return mdVersion }
func (b base) TraderApiVersion() string { return traderVersion }

// LinuxLibrary mirrors the Linux vendor build: the MD constructor takes a
// production flag, login takes two arguments and the mini-program system
// info entrypoints exist.
type LinuxLibrary struct{ base }

var (
	_ sdk.Library                 = (*LinuxLibrary)(nil)
	_ sdk.MdFactoryWithProduction = (*LinuxLibrary)(nil)
)

func NewLinux(cfg Config) *LinuxLibrary {
	return &LinuxLibrary{newBase(cfg)}
}

func (l *LinuxLibrary) CreateMdApi(flowPath string, udp, multicast, production bool) sdk.MdApi {
	return newMdApi(flowPath, udp, multicast, production, l.cfg, l.market)
}

func (l *LinuxLibrary) CreateTraderApi(flowPath string) sdk.TraderApi {
	return &LinuxTrader{newTraderApi(flowPath, l.cfg, l.market)}
}

// LinuxTrader is the Linux trader method set.
type LinuxTrader struct{ *TraderApi }

var (
	_ sdk.TraderLogin      = (*LinuxTrader)(nil)
	_ sdk.WechatSystemInfo = (*LinuxTrader)(nil)
)

func (t *LinuxTrader) ReqUserLogin(req *model.ReqUserLoginField, requestID int) int {
	return t.login(deref(req), requestID)
}

func (t *LinuxTrader) RegisterWechatUserSystemInfo(info *model.WechatUserSystemInfoField) int {
	t.recordSystemInfo("register_wechat")
	return validWechatInfo(info)
}

func (t *LinuxTrader) SubmitWechatUserSystemInfo(info *model.WechatUserSystemInfoField) int {
	if !t.Connected() {
		return sdk.CodeNetwork
	}
	t.recordSystemInfo("submit_wechat")
	return validWechatInfo(info)
}

func validWechatInfo(info *model.WechatUserSystemInfoField) int {
	if info == nil || info.WechatCltSysInfoLen < 0 || int(info.WechatCltSysInfoLen) > len(info.WechatCltSysInfo) {
		return sdk.CodeNetwork
	}
	return sdk.CodeOK
}

// DarwinLibrary mirrors the macOS vendor build: no production flag, login
// carries the client system info inline and there is no mini-program
// support.
type DarwinLibrary struct{ base }

var (
	_ sdk.Library   = (*DarwinLibrary)(nil)
	_ sdk.MdFactory = (*DarwinLibrary)(nil)
)

func NewDarwin(cfg Config) *DarwinLibrary {
	return &DarwinLibrary{newBase(cfg)}
}

func (d *DarwinLibrary) CreateMdApi(flowPath string, udp, multicast bool) sdk.MdApi {
	return newMdApi(flowPath, udp, multicast, false, d.cfg, d.market)
}

func (d *DarwinLibrary) CreateTraderApi(flowPath string) sdk.TraderApi {
	return &DarwinTrader{newTraderApi(flowPath, d.cfg, d.market)}
}

// DarwinTrader is the macOS trader method set.
type DarwinTrader struct{ *TraderApi }

var _ sdk.TraderLoginWithSystemInfo = (*DarwinTrader)(nil)

func (t *DarwinTrader) ReqUserLogin(req *model.ReqUserLoginField, requestID int, systemInfoLen int, systemInfo string) int {
	if systemInfoLen < 0 || systemInfoLen > len(systemInfo) {
		t.log.Warn("sim_login_system_info_invalid", zap.Int("len", systemInfoLen), zap.Int("available", len(systemInfo)))
		return sdk.CodeNetwork
	}
	if systemInfoLen > 0 {
		t.recordSystemInfo(fmt.Sprintf("login_inline:%d", systemInfoLen))
	}
	return t.login(deref(req), requestID)
}
