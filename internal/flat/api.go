// Package flat is the primitive-only surface over the vendor SDK.
//
// Every vendor object is addressed through an opaque handle.Handle and every
// record through an unsafe.Pointer to its fixed layout, so the surface can be
// exported to C unchanged. Request methods return the vendor code, or a
// negative Status when the call never reached the vendor. No panic crosses
// this boundary.
package flat

import (
	"slices"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"go-ctp/internal/bridge"
	"go-ctp/internal/handle"
	"go-ctp/internal/metrics"
	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
)

// Status codes returned instead of a vendor code.
const (
	// StatusNullHandle reports a null, stale or wrong-kind handle.
	StatusNullHandle = -1
	// StatusUnsupported reports a call the selected platform cannot serve.
	StatusUnsupported = shim.CodeUnsupported
	// StatusPanic reports a vendor call that panicked.
	StatusPanic = -5
)

// API owns the handle tables for vendor objects and bridge adapters.
type API struct {
	platform shim.Platform
	lib      sdk.Library
	log      *zap.Logger
	metrics  *metrics.Metrics
	trace    bool

	mdApis     *handle.Table[sdk.MdApi]
	traderApis *handle.Table[sdk.TraderApi]
	mdSpis     *handle.Table[*bridge.MdSpiBridge]
	traderSpis *handle.Table[*bridge.TraderSpiBridge]

	versionOnce sync.Once
}

// Option configures an API.
type Option func(*API)

func WithLogger(l *zap.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *API) { a.metrics = m }
}

// WithBridgeTrace makes adapters created by the API log every event at
// debug level.
func WithBridgeTrace(on bool) Option {
	return func(a *API) { a.trace = on }
}

// New returns a flat API over platform. lib supplies the version strings.
func New(platform shim.Platform, lib sdk.Library, opts ...Option) *API {
	a := &API{
		platform:   platform,
		lib:        lib,
		log:        zap.NewNop(),
		mdApis:     handle.NewTable[sdk.MdApi](handle.KindMdApi),
		traderApis: handle.NewTable[sdk.TraderApi](handle.KindTraderApi),
		mdSpis:     handle.NewTable[*bridge.MdSpiBridge](handle.KindMdSpi),
		traderSpis: handle.NewTable[*bridge.TraderSpiBridge](handle.KindTraderSpi),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Platform returns the name of the platform strategy in use.
func (a *API) Platform() string { return a.platform.Name() }

func outcome(code int) string {
	switch {
	case code >= 0:
		return metrics.OutcomeOK
	case code == StatusPanic:
		return metrics.OutcomePanic
	case code == StatusUnsupported:
		return metrics.OutcomeUnsupported
	default:
		return metrics.OutcomeVendorError
	}
}

// guard runs fn, turning a panic into StatusPanic.
func (a *API) guard(op string, fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("vendor_call_panicked", zap.String("op", op), zap.Any("panic", r), zap.Stack("stack"))
			code = StatusPanic
		}
		a.metrics.Request(op, outcome(code))
	}()
	return fn()
}

func (a *API) rejected(op string, h handle.Handle) int {
	a.log.Debug("invalid_handle", zap.String("op", op), zap.Uint64("handle", uint64(h)))
	a.metrics.Request(op, metrics.OutcomeNullHandle)
	return StatusNullHandle
}

func (a *API) md(op string, h handle.Handle, fn func(sdk.MdApi) int) int {
	api, ok := a.mdApis.Get(h)
	if !ok {
		return a.rejected(op, h)
	}
	return a.guard(op, func() int { return fn(api) })
}

func (a *API) trader(op string, h handle.Handle, fn func(sdk.TraderApi) int) int {
	api, ok := a.traderApis.Get(h)
	if !ok {
		return a.rejected(op, h)
	}
	return a.guard(op, func() int { return fn(api) })
}

// traderReq is trader for calls that carry a request id.
func (a *API) traderReq(op string, h handle.Handle, requestID int, fn func(sdk.TraderApi) int) int {
	code := a.trader(op, h, fn)
	a.log.Debug("request_submitted", zap.String("op", op), zap.Int("request_id", requestID), zap.Int("result", code))
	return code
}

func (a *API) gauge(t interface {
	Len() int
	Kind() handle.Kind
}) {
	a.metrics.SetHandles(t.Kind().String(), t.Len())
}

// instrumentIDs applies the count rule: only the first min(count, len(ids))
// entries are read and the caller's slice is never handed on.
func instrumentIDs(ids []string, count int) []string {
	if count <= 0 {
		return nil
	}
	return slices.Clone(ids[:min(count, len(ids))])
}

func (a *API) logVersion() {
	a.versionOnce.Do(func() {
		a.log.Info("vendor_version",
			zap.String("platform", a.platform.Name()),
			zap.String("md", a.lib.MdApiVersion()),
			zap.String("trader", a.lib.TraderApiVersion()),
		)
	})
}

// CreateMdApi creates an MD object and returns its handle, or handle.Null
// if the vendor call panicked.
func (a *API) CreateMdApi(flowPath string, udp, multicast, production bool) (h handle.Handle) {
	a.logVersion()
	flow := a.flowPath(flowPath)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("vendor_call_panicked", zap.String("op", "CreateMdApi"), zap.Any("panic", r))
			h = handle.Null
		}
	}()
	api := a.platform.CreateMdApi(flow, udp, multicast, production)
	if api == nil {
		return handle.Null
	}
	h = a.mdApis.Insert(api)
	a.gauge(a.mdApis)
	a.log.Debug("md_api_created",
		zap.Uint64("handle", uint64(h)),
		zap.String("flow_path", flow),
		zap.Bool("udp", udp),
		zap.Bool("multicast", multicast),
		zap.Bool("production", production),
	)
	return h
}

// MdRelease releases the MD object. The handle is dead afterwards. It must
// not be called from inside a callback of the same object.
func (a *API) MdRelease(h handle.Handle) int {
	api, ok := a.mdApis.Remove(h)
	if !ok {
		return a.rejected("MdRelease", h)
	}
	a.gauge(a.mdApis)
	a.log.Debug("md_api_released", zap.Uint64("handle", uint64(h)))
	return a.guard("MdRelease", func() int {
		api.RegisterSpi(nil)
		api.Release()
		return 0
	})
}

func (a *API) MdInit(h handle.Handle) int {
	a.log.Debug("md_init", zap.Uint64("handle", uint64(h)))
	return a.md("MdInit", h, func(api sdk.MdApi) int {
		api.Init()
		return 0
	})
}

// MdJoin blocks until the object is released.
func (a *API) MdJoin(h handle.Handle) int {
	return a.md("MdJoin", h, func(api sdk.MdApi) int { return api.Join() })
}

// MdGetTradingDay returns the trading day, or "" for an invalid handle or
// before login.
func (a *API) MdGetTradingDay(h handle.Handle) (day string) {
	a.md("MdGetTradingDay", h, func(api sdk.MdApi) int {
		day = api.GetTradingDay()
		return 0
	})
	return day
}

func (a *API) MdRegisterFront(h handle.Handle, addr string) int {
	a.log.Debug("md_register_front", zap.Uint64("handle", uint64(h)), zap.String("addr", addr))
	return a.md("MdRegisterFront", h, func(api sdk.MdApi) int {
		api.RegisterFront(addr)
		return 0
	})
}

func (a *API) MdRegisterNameServer(h handle.Handle, addr string) int {
	return a.md("MdRegisterNameServer", h, func(api sdk.MdApi) int {
		api.RegisterNameServer(addr)
		return 0
	})
}

func (a *API) MdRegisterFensUserInfo(h handle.Handle, info unsafe.Pointer) int {
	return a.md("MdRegisterFensUserInfo", h, func(api sdk.MdApi) int {
		api.RegisterFensUserInfo((*model.FensUserInfoField)(info))
		return 0
	})
}

// MdRegisterSpi attaches the adapter spi to the MD object, replacing any
// previous one without destroying it. handle.Null detaches.
func (a *API) MdRegisterSpi(h, spi handle.Handle) int {
	var target sdk.MdSpi
	if spi != handle.Null {
		b, ok := a.mdSpis.Get(spi)
		if !ok {
			return a.rejected("MdRegisterSpi", spi)
		}
		target = b
	}
	a.log.Debug("spi_registered", zap.String("side", "md"), zap.Uint64("handle", uint64(h)), zap.Uint64("spi", uint64(spi)))
	return a.md("MdRegisterSpi", h, func(api sdk.MdApi) int {
		api.RegisterSpi(target)
		return 0
	})
}

func (a *API) MdReqUserLogin(h handle.Handle, req unsafe.Pointer, requestID int) int {
	code := a.md("MdReqUserLogin", h, func(api sdk.MdApi) int {
		return api.ReqUserLogin((*model.ReqUserLoginField)(req), requestID)
	})
	a.log.Debug("request_submitted", zap.String("op", "MdReqUserLogin"), zap.Int("request_id", requestID), zap.Int("result", code))
	return code
}

func (a *API) MdReqUserLogout(h handle.Handle, req unsafe.Pointer, requestID int) int {
	return a.md("MdReqUserLogout", h, func(api sdk.MdApi) int {
		return api.ReqUserLogout((*model.UserLogoutField)(req), requestID)
	})
}

func (a *API) MdSubscribeMarketData(h handle.Handle, ids []string, count int) int {
	return a.md("MdSubscribeMarketData", h, func(api sdk.MdApi) int {
		return api.SubscribeMarketData(instrumentIDs(ids, count))
	})
}

func (a *API) MdUnSubscribeMarketData(h handle.Handle, ids []string, count int) int {
	return a.md("MdUnSubscribeMarketData", h, func(api sdk.MdApi) int {
		return api.UnSubscribeMarketData(instrumentIDs(ids, count))
	})
}

func (a *API) MdSubscribeForQuoteRsp(h handle.Handle, ids []string, count int) int {
	return a.md("MdSubscribeForQuoteRsp", h, func(api sdk.MdApi) int {
		return api.SubscribeForQuoteRsp(instrumentIDs(ids, count))
	})
}

func (a *API) MdUnSubscribeForQuoteRsp(h handle.Handle, ids []string, count int) int {
	return a.md("MdUnSubscribeForQuoteRsp", h, func(api sdk.MdApi) int {
		return api.UnSubscribeForQuoteRsp(instrumentIDs(ids, count))
	})
}

func (a *API) MdApiVersion() string { return a.lib.MdApiVersion() }

func (a *API) TraderApiVersion() string { return a.lib.TraderApiVersion() }

// CreateMdSpiBridge copies cb into a new adapter and returns its handle.
func (a *API) CreateMdSpiBridge(cb bridge.MdCallbacks) handle.Handle {
	b := bridge.NewMdSpiBridge(cb, a.bridgeOpts()...)
	h := a.mdSpis.Insert(b)
	a.gauge(a.mdSpis)
	a.log.Debug("bridge_created", zap.String("side", "md"), zap.Uint64("handle", uint64(h)))
	return h
}

// DestroyMdSpiBridge releases the adapter handle. Destroying a handle twice
// is a no-op. An object the adapter is still registered with keeps
// delivering to it until another adapter is registered.
func (a *API) DestroyMdSpiBridge(h handle.Handle) int {
	if _, ok := a.mdSpis.Remove(h); !ok {
		a.log.Debug("bridge_destroy_ignored", zap.String("side", "md"), zap.Uint64("handle", uint64(h)))
		return StatusNullHandle
	}
	a.gauge(a.mdSpis)
	a.log.Debug("bridge_destroyed", zap.String("side", "md"), zap.Uint64("handle", uint64(h)))
	return 0
}

func (a *API) CreateTraderSpiBridge(cb bridge.TraderCallbacks) handle.Handle {
	b := bridge.NewTraderSpiBridge(cb, a.bridgeOpts()...)
	h := a.traderSpis.Insert(b)
	a.gauge(a.traderSpis)
	a.log.Debug("bridge_created", zap.String("side", "trader"), zap.Uint64("handle", uint64(h)))
	return h
}

func (a *API) DestroyTraderSpiBridge(h handle.Handle) int {
	if _, ok := a.traderSpis.Remove(h); !ok {
		a.log.Debug("bridge_destroy_ignored", zap.String("side", "trader"), zap.Uint64("handle", uint64(h)))
		return StatusNullHandle
	}
	a.gauge(a.traderSpis)
	a.log.Debug("bridge_destroyed", zap.String("side", "trader"), zap.Uint64("handle", uint64(h)))
	return 0
}

func (a *API) bridgeOpts() []bridge.Option {
	if !a.trace {
		return nil
	}
	return []bridge.Option{bridge.WithLogger(a.log.Named("bridge"))}
}

// Handles reports the number of live handles per kind.
func (a *API) Handles() map[string]int {
	return map[string]int{
		handle.KindMdApi.String():     a.mdApis.Len(),
		handle.KindTraderApi.String(): a.traderApis.Len(),
		handle.KindMdSpi.String():     a.mdSpis.Len(),
		handle.KindTraderSpi.String(): a.traderSpis.Len(),
	}
}
