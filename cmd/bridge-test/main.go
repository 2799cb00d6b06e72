// bridge-test is a diagnostic tool that drives the market data side of the
// flat API against the simulated vendor library and prints every callback
// the bridge delivers.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"go-ctp/internal/bridge"
	"go-ctp/internal/flat"
	"go-ctp/internal/handle"
	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

type session struct {
	api    *flat.API
	md     handle.Handle
	ids    []string
	ticks  atomic.Int64
	events chan string
}

func main() {
	platform := flag.String("platform", shim.Native(), "vendor build: linux or darwin")
	instruments := flag.String("instruments", "rb2501,au2502", "comma separated instruments to subscribe")
	interval := flag.Duration("tick", 200*time.Millisecond, "simulated tick interval")
	duration := flag.Duration("duration", 0, "stop after this long (0 runs until Ctrl+C)")
	flag.Parse()

	fmt.Printf("[bridge-test] Layout: RspInfo=%d ReqUserLogin=%d RspUserLogin=%d DepthMarketData=%d InputOrder=%d Order=%d Trade=%d\n",
		model.RspInfoSize(), model.ReqUserLoginSize(), model.RspUserLoginSize(), model.DepthMarketDataSize(),
		model.InputOrderSize(), model.OrderSize(), model.TradeSize())

	simCfg := sim.Config{TickInterval: *interval}
	var lib sdk.Library
	var p shim.Platform
	var err error
	if *platform == shim.Darwin {
		l := sim.NewDarwin(simCfg)
		lib = l
		p, err = shim.New(shim.Darwin, l, shim.PolicySubstitute, nil)
	} else {
		l := sim.NewLinux(simCfg)
		lib = l
		p, err = shim.New(shim.Linux, l, shim.PolicySubstitute, nil)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[bridge-test] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[bridge-test] Platform: %s  MdApi: %s  TraderApi: %s\n", p.Name(), lib.MdApiVersion(), lib.TraderApiVersion())

	pr := &session{events: make(chan string, 256)}
	for _, id := range strings.Split(*instruments, ",") {
		if id = strings.TrimSpace(id); id != "" {
			pr.ids = append(pr.ids, id)
		}
	}

	flowDir, err := os.MkdirTemp("", "bridge-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[bridge-test] %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(flowDir)

	pr.api = flat.New(p, lib)
	pr.md = pr.api.CreateMdApi(flowDir+"/", false, false, false)
	spi := pr.api.CreateMdSpiBridge(bridge.MdCallbacks{
		UserData:             unsafe.Pointer(pr),
		OnFrontConnected:     onFrontConnected,
		OnFrontDisconnected:  onFrontDisconnected,
		OnRspUserLogin:       onRspUserLogin,
		OnRspSubMarketData:   onRspSubMarketData,
		OnRtnDepthMarketData: onRtnDepthMarketData,
		OnRspError:           onRspError,
	})
	defer func() {
		pr.api.MdRelease(pr.md)
		pr.api.DestroyMdSpiBridge(spi)
		fmt.Printf("[bridge-test] Handles after release: %v\n", pr.api.Handles())
	}()

	pr.api.MdRegisterSpi(pr.md, spi)
	pr.api.MdRegisterFront(pr.md, "tcp://127.0.0.1:20004")
	pr.api.MdInit(pr.md)

	fmt.Println("[bridge-test] Waiting for callbacks... (Ctrl+C to stop)")
	fmt.Println("---")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}

	for {
		select {
		case <-sigCh:
			fmt.Printf("\n[bridge-test] Total: %d ticks\n", pr.ticks.Load())
			return
		case <-deadline:
			fmt.Printf("[bridge-test] Total: %d ticks\n", pr.ticks.Load())
			return
		case line := <-pr.events:
			fmt.Println(line)
		}
	}
}

func errorID(info *model.RspInfoField) int32 {
	if info == nil {
		return 0
	}
	return info.ErrorID
}

func sessionOf(ud unsafe.Pointer) *session { return (*session)(ud) }

func (pr *session) emit(format string, args ...any) {
	select {
	case pr.events <- fmt.Sprintf(format, args...):
	default:
	}
}

func onFrontConnected(ud unsafe.Pointer) {
	pr := sessionOf(ud)
	pr.emit("CONNECTED")
	var req model.ReqUserLoginField
	model.SetText(req.BrokerID[:], "9999")
	model.SetText(req.UserID[:], "diag")
	rc := pr.api.MdReqUserLogin(pr.md, unsafe.Pointer(&req), 1)
	pr.emit("REQ   login rc=%d", rc)
}

func onFrontDisconnected(ud unsafe.Pointer, reason int) {
	sessionOf(ud).emit("DISCONNECTED reason=0x%04x", reason)
}

func onRspUserLogin(ud, payload unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
	pr := sessionOf(ud)
	if !info.OK() {
		pr.emit("LOGIN #%d failed: %d %s", requestID, info.ErrorID, info.Message())
		return
	}
	rsp := (*model.RspUserLoginField)(payload)
	pr.emit("LOGIN #%d day=%s front=%d session=%d last=%d",
		requestID, model.Text(rsp.TradingDay[:]), rsp.FrontID, rsp.SessionID, isLast)
	rc := pr.api.MdSubscribeMarketData(pr.md, pr.ids, len(pr.ids))
	pr.emit("REQ   subscribe %v rc=%d", pr.ids, rc)
}

func onRspSubMarketData(ud, payload unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
	var id string
	if payload != nil {
		id = model.Text((*model.SpecificInstrumentField)(payload).InstrumentID[:])
	}
	sessionOf(ud).emit("SUB   %s err=%d last=%d", id, errorID(info), isLast)
}

func onRtnDepthMarketData(ud, payload unsafe.Pointer) {
	pr := sessionOf(ud)
	n := pr.ticks.Add(1)
	md := (*model.DepthMarketDataField)(payload)
	pr.emit("TICK #%d  %s  Last=%.2f  Bid=%.2f  Ask=%.2f  Vol=%d  Time=%s.%03d",
		n, model.Text(md.InstrumentID[:]), md.LastPrice, md.BidPrice1, md.AskPrice1,
		md.Volume, model.Text(md.UpdateTime[:]), md.UpdateMillisec)
}

func onRspError(ud unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
	sessionOf(ud).emit("ERROR #%d %d %s", requestID, errorID(info), info.Message())
}
