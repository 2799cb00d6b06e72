// Package shim hides the few vendor calls whose signatures differ between
// platform builds of the SDK. A Platform is chosen once at configuration
// time; callers never branch on the build themselves.
package shim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

const (
	Linux  = "linux"
	Darwin = "darwin"
)

// CodeUnsupported is returned by request calls the selected platform cannot
// serve under PolicyReject.
const CodeUnsupported = -4

// ErrCapability is returned by New when the vendor library does not expose
// the method set the requested platform needs.
var ErrCapability = errors.New("vendor library lacks required capability")

// Policy selects what darwin does with the mini-program system info calls
// it does not have.
type Policy string

const (
	// PolicySubstitute forwards to the generic user system info call.
	PolicySubstitute Policy = "substitute"
	// PolicyReject returns CodeUnsupported.
	PolicyReject Policy = "reject"
)

// Platform adapts the calls whose vendor signatures differ per build.
type Platform interface {
	Name() string
	CreateMdApi(flowPath string, udp, multicast, production bool) sdk.MdApi
	CreateTraderApi(flowPath string, production bool) sdk.TraderApi
	ReqUserLogin(api sdk.TraderApi, req *model.ReqUserLoginField, requestID int) int
	RegisterWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int
	SubmitWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int
}

// New returns the platform strategy called name over lib.
func New(name string, lib sdk.Library, policy Policy, log *zap.Logger) (Platform, error) {
	if lib == nil {
		return nil, fmt.Errorf("shim %s: %w: no library", name, ErrCapability)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if policy == "" {
		policy = PolicySubstitute
	}
	if policy != PolicySubstitute && policy != PolicyReject {
		return nil, fmt.Errorf("shim %s: unknown wechat policy %q", name, policy)
	}
	log = log.With(zap.String("platform", name))

	switch name {
	case Linux:
		md, ok := lib.(sdk.MdFactoryWithProduction)
		if !ok {
			return nil, fmt.Errorf("shim %s: %w: CreateMdApi with production flag", name, ErrCapability)
		}
		return &linux{lib: lib, md: md, log: log}, nil
	case Darwin:
		md, ok := lib.(sdk.MdFactory)
		if !ok {
			return nil, fmt.Errorf("shim %s: %w: CreateMdApi without production flag", name, ErrCapability)
		}
		return &darwin{lib: lib, md: md, policy: policy, log: log}, nil
	default:
		return nil, fmt.Errorf("shim: unknown platform %q", name)
	}
}

type linux struct {
	lib sdk.Library
	md  sdk.MdFactoryWithProduction
	log *zap.Logger
}

func (p *linux) Name() string { return Linux }

func (p *linux) CreateMdApi(flowPath string, udp, multicast, production bool) sdk.MdApi {
	return p.md.CreateMdApi(flowPath, udp, multicast, production)
}

func (p *linux) CreateTraderApi(flowPath string, production bool) sdk.TraderApi {
	if production {
		p.log.Warn("trader_production_flag_ignored", zap.String("flow_path", flowPath))
	}
	return p.lib.CreateTraderApi(flowPath)
}

func (p *linux) ReqUserLogin(api sdk.TraderApi, req *model.ReqUserLoginField, requestID int) int {
	l, ok := api.(sdk.TraderLogin)
	if !ok {
		p.log.Error("trader_login_unavailable")
		return CodeUnsupported
	}
	return l.ReqUserLogin(req, requestID)
}

func (p *linux) RegisterWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int {
	w, ok := api.(sdk.WechatSystemInfo)
	if !ok {
		p.log.Error("wechat_system_info_unavailable")
		return CodeUnsupported
	}
	return w.RegisterWechatUserSystemInfo(info)
}

func (p *linux) SubmitWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int {
	w, ok := api.(sdk.WechatSystemInfo)
	if !ok {
		p.log.Error("wechat_system_info_unavailable")
		return CodeUnsupported
	}
	return w.SubmitWechatUserSystemInfo(info)
}

type darwin struct {
	lib    sdk.Library
	md     sdk.MdFactory
	policy Policy
	log    *zap.Logger
}

func (p *darwin) Name() string { return Darwin }

func (p *darwin) CreateMdApi(flowPath string, udp, multicast, production bool) sdk.MdApi {
	if production {
		p.log.Warn("md_production_flag_ignored", zap.String("flow_path", flowPath))
	}
	return p.md.CreateMdApi(flowPath, udp, multicast)
}

func (p *darwin) CreateTraderApi(flowPath string, production bool) sdk.TraderApi {
	if production {
		p.log.Warn("trader_production_flag_ignored", zap.String("flow_path", flowPath))
	}
	return p.lib.CreateTraderApi(flowPath)
}

// ReqUserLogin passes an empty inline system info; callers that need it
// register it separately.
func (p *darwin) ReqUserLogin(api sdk.TraderApi, req *model.ReqUserLoginField, requestID int) int {
	l, ok := api.(sdk.TraderLoginWithSystemInfo)
	if !ok {
		p.log.Error("trader_login_unavailable")
		return CodeUnsupported
	}
	return l.ReqUserLogin(req, requestID, 0, "")
}

func (p *darwin) RegisterWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int {
	if p.policy == PolicyReject {
		p.log.Warn("wechat_system_info_rejected", zap.String("call", "register"))
		return CodeUnsupported
	}
	p.log.Warn("wechat_system_info_substituted", zap.String("call", "register"))
	return api.RegisterUserSystemInfo(genericInfo(info))
}

func (p *darwin) SubmitWechatUserSystemInfo(api sdk.TraderApi, info *model.WechatUserSystemInfoField) int {
	if p.policy == PolicyReject {
		p.log.Warn("wechat_system_info_rejected", zap.String("call", "submit"))
		return CodeUnsupported
	}
	p.log.Warn("wechat_system_info_substituted", zap.String("call", "submit"))
	return api.SubmitUserSystemInfo(genericInfo(info))
}

func genericInfo(w *model.WechatUserSystemInfoField) *model.UserSystemInfoField {
	if w == nil {
		return nil
	}
	return &model.UserSystemInfoField{
		BrokerID:            w.BrokerID,
		UserID:              w.UserID,
		ClientSystemInfoLen: w.WechatCltSysInfoLen,
		ClientSystemInfo:    w.WechatCltSysInfo,
		ClientIPPort:        w.ClientIPPort,
		ClientLoginTime:     w.ClientLoginTime,
		ClientAppID:         w.ClientAppID,
		ClientPublicIP:      w.ClientPublicIP,
		ClientLoginRemark:   w.ClientLoginRemark,
	}
}
