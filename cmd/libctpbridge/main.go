// libctpbridge exports the flat API and the callback bridge factories as C
// symbols. Build with:
//
//	go build -buildmode=c-shared -o libctpbridge.so ./cmd/libctpbridge
//
// The vendor build is chosen from CTP_PLATFORM (linux or darwin) when the
// first symbol is called.
package main

/*
#include <stdlib.h>
#include "ctpbridge.h"
*/
import "C"

import (
	"sync"
	"time"
	"unsafe"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"go-ctp/internal/flat"
	"go-ctp/internal/handle"
	"go-ctp/internal/logging"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

func main() {}

// Handles use all 64 bits; this fails to compile where uintptr is narrower.
var _ [unsafe.Sizeof(uintptr(0)) - 8]byte

var (
	apiOnce sync.Once
	api     *flat.API

	// Version strings live for the rest of the process. A trading day lives
	// until the next GetTradingDay on the same handle or its Release.
	versions    = newStringCache[string](newCString, freeCString)
	tradingDays = newStringCache[handle.Handle](newCString, freeCString)
)

func flatAPI() *flat.API {
	apiOnce.Do(func() { api = newAPI() })
	return api
}

func newAPI() *flat.API {
	v := viper.New()
	v.SetEnvPrefix("CTP")
	v.AutomaticEnv()
	v.SetDefault("platform", shim.Native())
	v.SetDefault("wechat_policy", string(shim.PolicySubstitute))
	v.SetDefault("sim_tick_interval", 500*time.Millisecond)

	log := logging.L()
	simCfg := sim.Config{TickInterval: v.GetDuration("sim_tick_interval"), Logger: log.Named("sim")}

	name := v.GetString("platform")
	lib := library(name, simCfg)
	p, err := shim.New(name, lib, shim.Policy(v.GetString("wechat_policy")), log)
	if err != nil {
		log.Error("platform_fallback", zap.String("platform", name), zap.Error(err))
		lib = library(shim.Native(), simCfg)
		p, _ = shim.New(shim.Native(), lib, shim.PolicySubstitute, log)
	}
	return flat.New(p, lib, flat.WithLogger(log), flat.WithBridgeTrace(v.GetBool("bridge_trace")))
}

func library(platform string, cfg sim.Config) sdk.Library {
	if platform == shim.Darwin {
		return sim.NewDarwin(cfg)
	}
	return sim.NewLinux(cfg)
}

func newCString(s string) *C.char { return C.CString(s) }

func freeCString(p *C.char) { C.free(unsafe.Pointer(p)) }

func tradingDay(h handle.Handle, day string) *C.char {
	if day == "" {
		tradingDays.drop(h)
		return versions.get("", "")
	}
	return tradingDays.get(h, day)
}

func release(h handle.Handle, rc int) C.int {
	tradingDays.drop(h)
	return C.int(rc)
}

func goStrings(ids **C.char, count C.int) []string {
	if ids == nil || count <= 0 {
		return nil
	}
	out := make([]string, 0, int(count))
	for _, p := range unsafe.Slice(ids, int(count)) {
		if p != nil {
			out = append(out, C.GoString(p))
		}
	}
	return out
}

//export CreateMdSpiBridge
func CreateMdSpiBridge(cb *C.MdSpiCallbacks) C.uintptr_t {
	var table C.MdSpiCallbacks
	if cb != nil {
		table = *cb
	}
	return C.uintptr_t(flatAPI().CreateMdSpiBridge(mdTable(&table)))
}

//export DestroyMdSpiBridge
func DestroyMdSpiBridge(h C.uintptr_t) C.int {
	return C.int(flatAPI().DestroyMdSpiBridge(handle.Handle(h)))
}

//export CreateTraderSpiBridge
func CreateTraderSpiBridge(cb *C.TraderSpiCallbacks) C.uintptr_t {
	var table C.TraderSpiCallbacks
	if cb != nil {
		table = *cb
	}
	return C.uintptr_t(flatAPI().CreateTraderSpiBridge(traderTable(&table)))
}

//export DestroyTraderSpiBridge
func DestroyTraderSpiBridge(h C.uintptr_t) C.int {
	return C.int(flatAPI().DestroyTraderSpiBridge(handle.Handle(h)))
}

// CTP_InitializeDebugLogging configures the process-wide log facility. A
// NULL config disables it. An unopenable file degrades to console output.
//
//export CTP_InitializeDebugLogging
func CTP_InitializeDebugLogging(cfg *C.CTPLogConfig) C.int {
	if cfg == nil {
		logging.Cleanup()
		return 0
	}
	c := logging.Config{
		EnableDebug:    cfg.enableDebug != 0,
		MaxFileSizeMB:  int(cfg.maxFileSizeMB),
		MaxBackupFiles: int(cfg.maxBackupFiles),
	}
	if cfg.logFilePath != nil {
		c.LogFilePath = C.GoString(cfg.logFilePath)
	}
	if err := logging.Init(c); err != nil {
		return -1
	}
	return 0
}

//export CTP_CleanupDebugLogging
func CTP_CleanupDebugLogging() {
	logging.Cleanup()
}
