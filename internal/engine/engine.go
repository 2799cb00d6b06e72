package engine

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unsafe"

	"go-ctp/internal/config"
	"go-ctp/internal/flat"
	"go-ctp/internal/handle"
	"go-ctp/internal/metrics"
	"go-ctp/internal/model"
	"go-ctp/internal/sdk"

	"go.uber.org/zap"
)

const maxRecentErrors = 50

// SessionState is the login progress of one vendor session.
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateConnected     SessionState = "connected"
	StateDisconnected  SessionState = "disconnected"
	StateAuthenticated SessionState = "authenticated"
	StateLoggedIn      SessionState = "logged_in"
	StateReady         SessionState = "ready"
)

// Publisher receives engine events for fan-out to observers.
type Publisher interface {
	Broadcast(msgType string, data any)
}

type nopPublisher struct{}

func (nopPublisher) Broadcast(string, any) {}

// Engine drives one MD and one trader session through the flat API. Vendor
// events reach it through bridge callback tables whose user data is the
// engine itself; every payload it keeps is copied into the Store before the
// callback returns.
type Engine struct {
	api     *flat.API
	store   *Store
	corr    *Correlator
	cfg     ConfigSnapshot
	secrets secrets
	sweep   time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
	pub     Publisher

	md, trader       handle.Handle
	mdSpi, traderSpi handle.Handle
	stopOnce         sync.Once

	mu          sync.Mutex
	started     time.Time
	mdState     SessionState
	traderState SessionState
	tradingDay  string
	frontID     int32
	sessionID   int32
	orderRef    int
	actionRef   int32
	counters    Counters
	recentErrs  []*RspError
	staged      map[int][]Position // position pages by request id
	cancels     map[string]int     // order key -> order_action request id

	qmu      sync.Mutex
	deferred []deferredReq
	drainMu  sync.Mutex
}

type secrets struct {
	password    string
	appID       string
	authCode    string
	productInfo string
}

type deferredReq struct {
	op   string
	call func(requestID int) int
}

// Status represents the current engine state for API consumers.
type Status struct {
	Time             time.Time      `json:"time"`
	StartedAt        time.Time      `json:"startedAt"`
	Platform         string         `json:"platform"`
	MdState          SessionState   `json:"mdState"`
	TraderState      SessionState   `json:"traderState"`
	TradingDay       string         `json:"tradingDay"`
	FrontID          int32          `json:"frontId"`
	SessionID        int32          `json:"sessionId"`
	Snapshot         StoreSnapshot  `json:"snapshot"`
	Pending          []Pending      `json:"pending"`
	Deferred         []string       `json:"deferred"`
	RecentErrors     []*RspError    `json:"recentErrors"`
	Counters         Counters       `json:"counters"`
	Handles          map[string]int `json:"handles"`
	Config           ConfigSnapshot `json:"config"`
	LatestTickAt     time.Time      `json:"latestTickAt"`
	LatestInstrument string         `json:"latestInstrument"`
}

// Counters tracks engine processing counters.
type Counters struct {
	TickCount     int64     `json:"tickCount"`
	OrderCount    int64     `json:"orderCount"`
	TradeCount    int64     `json:"tradeCount"`
	CallbackCount int64     `json:"callbackCount"`
	RequestCount  int64     `json:"requestCount"`
	TimeoutCount  int64     `json:"timeoutCount"`
	ErrorCount    int64     `json:"errorCount"`
	LastTickAt    time.Time `json:"lastTickAt"`
}

// ConfigSnapshot is a serializable view of the active configuration.
// Credentials are left out.
type ConfigSnapshot struct {
	BrokerID       string   `json:"brokerId"`
	InvestorID     string   `json:"investorId"`
	MdFronts       []string `json:"mdFronts"`
	TraderFronts   []string `json:"traderFronts"`
	Instruments    []string `json:"instruments"`
	FlowPath       string   `json:"flowPath"`
	Authenticate   bool     `json:"authenticate"`
	Production     bool     `json:"production"`
	RequestTimeout string   `json:"requestTimeout"`
}

// New creates an Engine from configuration and a flat API.
func New(cfg *config.Config, api *flat.API) *Engine {
	return &Engine{
		api:   api,
		store: NewStore(cfg.Engine.TickHistory),
		corr:  NewCorrelator(cfg.Engine.RequestTimeout),
		cfg: ConfigSnapshot{
			BrokerID:       cfg.CTP.BrokerID,
			InvestorID:     cfg.CTP.InvestorID,
			MdFronts:       slices.Clone(cfg.CTP.MdFronts),
			TraderFronts:   slices.Clone(cfg.CTP.TraderFronts),
			Instruments:    slices.Clone(cfg.CTP.Instruments),
			FlowPath:       cfg.CTP.FlowPath,
			Authenticate:   cfg.CTP.AppID != "",
			Production:     cfg.CTP.Production,
			RequestTimeout: cfg.Engine.RequestTimeout.String(),
		},
		secrets: secrets{
			password:    cfg.CTP.Password,
			appID:       cfg.CTP.AppID,
			authCode:    cfg.CTP.AuthCode,
			productInfo: cfg.CTP.ProductInfo,
		},
		sweep:       cfg.Engine.SweepInterval,
		logger:      zap.NewNop(),
		pub:         nopPublisher{},
		started:     time.Now(),
		mdState:     StateIdle,
		traderState: StateIdle,
		staged:      make(map[int][]Position),
		cancels:     make(map[string]int),
	}
}

// SetLogger sets the structured logger for the engine.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// SetMetrics attaches prometheus collectors. Nil disables them.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.metrics = m
}

// SetPublisher sets where events are broadcast.
func (e *Engine) SetPublisher(p Publisher) {
	if p != nil {
		e.pub = p
	}
}

// Store returns the underlying state store.
func (e *Engine) Store() *Store {
	return e.store
}

// Start creates both sessions, registers their callback tables and fronts
// and starts the vendor runtime. Login proceeds from the callbacks.
func (e *Engine) Start() error {
	e.mdSpi = e.api.CreateMdSpiBridge(mdCallbacks(e))
	e.traderSpi = e.api.CreateTraderSpiBridge(traderCallbacks(e))

	e.md = e.api.CreateMdApi(e.flowPath("md"), false, false, e.cfg.Production)
	if e.md == handle.Null {
		e.destroyBridges()
		return errors.New("engine: create md api failed")
	}
	e.trader = e.api.CreateTraderApi(e.flowPath("trader"), e.cfg.Production)
	if e.trader == handle.Null {
		e.api.MdRelease(e.md)
		e.destroyBridges()
		return errors.New("engine: create trader api failed")
	}

	e.api.MdRegisterSpi(e.md, e.mdSpi)
	for _, addr := range e.cfg.MdFronts {
		e.api.MdRegisterFront(e.md, addr)
	}
	e.api.TraderRegisterSpi(e.trader, e.traderSpi)
	for _, addr := range e.cfg.TraderFronts {
		e.api.TraderRegisterFront(e.trader, addr)
	}
	e.api.TraderSubscribePrivateTopic(e.trader, int(model.ResumeQuick))
	e.api.TraderSubscribePublicTopic(e.trader, int(model.ResumeQuick))

	e.api.MdInit(e.md)
	e.api.TraderInit(e.trader)

	e.logger.Info("engine_started",
		zap.String("platform", e.api.Platform()),
		zap.String("md_version", e.api.MdApiVersion()),
		zap.String("trader_version", e.api.TraderApiVersion()),
		zap.Strings("md_fronts", e.cfg.MdFronts),
		zap.Strings("trader_fronts", e.cfg.TraderFronts),
	)
	return nil
}

// Stop releases both sessions and their adapters. It is safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.api.MdRelease(e.md)
		e.api.TraderRelease(e.trader)
		e.destroyBridges()
		e.logger.Info("engine_stopped")
	})
}

func (e *Engine) destroyBridges() {
	e.api.DestroyMdSpiBridge(e.mdSpi)
	e.api.DestroyTraderSpiBridge(e.traderSpi)
}

func (e *Engine) flowPath(side string) string {
	if e.cfg.FlowPath == "" {
		return ""
	}
	return filepath.Join(e.cfg.FlowPath, side)
}

// Run starts the sessions and sweeps stale requests until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Start(); err != nil {
		return err
	}
	defer e.Stop()

	every := e.sweep
	if every <= 0 {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.step(now)
		}
	}
}

// step expires requests the vendor never answered and retries requests
// deferred by flow control.
func (e *Engine) step(now time.Time) {
	for _, p := range e.corr.Sweep(now) {
		e.metrics.Timeout()
		e.mu.Lock()
		e.counters.TimeoutCount++
		delete(e.staged, p.RequestID)
		e.mu.Unlock()
		e.logger.Warn("request_timed_out",
			zap.String("op", p.Op),
			zap.Int("request_id", p.RequestID),
			zap.Int("pages", p.Pages),
			zap.Duration("age", now.Sub(p.SentAt)),
		)
		e.pub.Broadcast("timeout", p)
	}
	e.metrics.SetPending(e.corr.Len())
	e.drain()
}

// Status returns the current engine status.
func (e *Engine) Status() Status {
	snapshot := e.store.Snapshot()

	latestTickAt := time.Time{}
	latest := ""
	for _, s := range snapshot.Instruments {
		if s.HasTick && s.Time.After(latestTickAt) {
			latestTickAt = s.Time
			latest = s.InstrumentID
		}
	}

	e.qmu.Lock()
	deferred := make([]string, 0, len(e.deferred))
	for _, d := range e.deferred {
		deferred = append(deferred, d.op)
	}
	e.qmu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Time:             time.Now(),
		StartedAt:        e.started,
		Platform:         e.api.Platform(),
		MdState:          e.mdState,
		TraderState:      e.traderState,
		TradingDay:       e.tradingDay,
		FrontID:          e.frontID,
		SessionID:        e.sessionID,
		Snapshot:         snapshot,
		Pending:          e.corr.Snapshot(),
		Deferred:         deferred,
		RecentErrors:     slices.Clone(e.recentErrs),
		Counters:         e.counters,
		Handles:          e.api.Handles(),
		Config:           e.cfg,
		LatestTickAt:     latestTickAt,
		LatestInstrument: latest,
	}
}

// Ticks returns the recent ticks of one instrument.
func (e *Engine) Ticks(instrumentID string) []Tick { return e.store.GetTicks(instrumentID) }

// Orders returns every known order.
func (e *Engine) Orders() []Order { return e.store.GetOrders() }

// Trades returns the recorded fills.
func (e *Engine) Trades() []Trade { return e.store.GetTrades() }

// Positions returns the last complete position query.
func (e *Engine) Positions() []Position { return e.store.GetPositions() }

// Pending returns the requests still waiting for a final response.
func (e *Engine) Pending() []Pending { return e.corr.Snapshot() }

// Errors returns the most recent vendor errors, oldest first.
func (e *Engine) Errors() []*RspError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.recentErrs)
}

// TraderState returns the trader session's login progress.
func (e *Engine) TraderState() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.traderState
}

// MdState returns the MD session's login progress.
func (e *Engine) MdState() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mdState
}

func (e *Engine) setState(side string, s SessionState) {
	e.mu.Lock()
	if side == "md" {
		e.mdState = s
	} else {
		e.traderState = s
	}
	e.mu.Unlock()
	e.logger.Info("session_state", zap.String("side", side), zap.String("state", string(s)))
	e.pub.Broadcast("session", map[string]string{"side": side, "state": string(s)})
}

// submit tracks a new request id under op and hands it to call. A non-zero
// code means the request never reached the vendor and the id is dropped.
func (e *Engine) submit(op string, call func(requestID int) int) (int, error) {
	id := e.corr.Track(op)
	code := call(id)
	if code != sdk.CodeOK {
		e.corr.Forget(id)
		e.metrics.SetPending(e.corr.Len())
		if throttled(code) {
			e.logger.Debug("request_throttled", zap.String("op", op), zap.Int("request_id", id), zap.Int("code", code))
		} else {
			e.logger.Warn("request_rejected", zap.String("op", op), zap.Int("request_id", id), zap.Int("code", code))
		}
		return id, &SubmitError{Op: op, Code: code}
	}
	e.metrics.SetPending(e.corr.Len())
	e.mu.Lock()
	e.counters.RequestCount++
	e.mu.Unlock()
	e.logger.Debug("request_sent", zap.String("op", op), zap.Int("request_id", id))
	return id, nil
}

func throttled(code int) bool {
	return code == sdk.CodeRateExceeded || code == sdk.CodeTooManyPending
}

// enqueue defers a request until flow control admits it. An op already
// waiting is not queued twice.
func (e *Engine) enqueue(op string, call func(requestID int) int) {
	e.qmu.Lock()
	defer e.qmu.Unlock()
	for _, d := range e.deferred {
		if d.op == op {
			return
		}
	}
	e.deferred = append(e.deferred, deferredReq{op: op, call: call})
}

// drain submits deferred requests in order, stopping at the first one the
// vendor throttles.
func (e *Engine) drain() {
	e.drainMu.Lock()
	defer e.drainMu.Unlock()
	for {
		e.qmu.Lock()
		if len(e.deferred) == 0 {
			e.qmu.Unlock()
			return
		}
		next := e.deferred[0]
		e.qmu.Unlock()

		_, err := e.submit(next.op, next.call)
		var se *SubmitError
		if errors.As(err, &se) && throttled(se.Code) {
			return
		}
		e.qmu.Lock()
		e.deferred = e.deferred[1:]
		e.qmu.Unlock()
	}
}

// Query schedules one of the account, positions, orders or trades queries.
func (e *Engine) Query(kind string) error {
	if e.TraderState() != StateReady {
		return ErrNotReady
	}
	switch kind {
	case "account":
		e.enqueue("qry_trading_account", e.qryAccount)
	case "positions":
		e.enqueue("qry_investor_position", e.qryPositions)
	case "orders":
		e.enqueue("qry_order", e.qryOrders)
	case "trades":
		e.enqueue("qry_trade", e.qryTrades)
	default:
		return errors.New("engine: unknown query " + strconv.Quote(kind))
	}
	e.drain()
	return nil
}

func (e *Engine) qryAccount(requestID int) int {
	var req model.QryTradingAccountField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	return e.api.TraderReqQryTradingAccount(e.trader, unsafe.Pointer(&req), requestID)
}

func (e *Engine) qryPositions(requestID int) int {
	var req model.QryInvestorPositionField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	return e.api.TraderReqQryInvestorPosition(e.trader, unsafe.Pointer(&req), requestID)
}

func (e *Engine) qryOrders(requestID int) int {
	var req model.QryOrderField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	return e.api.TraderReqQryOrder(e.trader, unsafe.Pointer(&req), requestID)
}

func (e *Engine) qryTrades(requestID int) int {
	var req model.QryTradeField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	return e.api.TraderReqQryTrade(e.trader, unsafe.Pointer(&req), requestID)
}

func (e *Engine) mdLogin() {
	var req model.ReqUserLoginField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.UserID[:], e.cfg.InvestorID)
	model.SetText(req.Password[:], e.secrets.password)
	if _, err := e.submit("md_login", func(id int) int {
		return e.api.MdReqUserLogin(e.md, unsafe.Pointer(&req), id)
	}); err != nil {
		e.logger.Error("md_login_failed", zap.Error(err))
	}
}

func (e *Engine) subscribe() {
	ids := e.cfg.Instruments
	if len(ids) == 0 {
		return
	}
	if code := e.api.MdSubscribeMarketData(e.md, ids, len(ids)); code != sdk.CodeOK {
		e.logger.Error("subscribe_failed", zap.Strings("instruments", ids), zap.Int("code", code))
		return
	}
	e.logger.Info("subscribe_sent", zap.Strings("instruments", ids))
}

func (e *Engine) authenticate() {
	var req model.ReqAuthenticateField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.UserID[:], e.cfg.InvestorID)
	model.SetText(req.UserProductInfo[:], e.secrets.productInfo)
	model.SetText(req.AppID[:], e.secrets.appID)
	model.SetText(req.AuthCode[:], e.secrets.authCode)
	if _, err := e.submit("authenticate", func(id int) int {
		return e.api.TraderReqAuthenticate(e.trader, unsafe.Pointer(&req), id)
	}); err != nil {
		e.logger.Error("authenticate_failed", zap.Error(err))
	}
}

func (e *Engine) traderLogin() {
	var req model.ReqUserLoginField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.UserID[:], e.cfg.InvestorID)
	model.SetText(req.Password[:], e.secrets.password)
	model.SetText(req.UserProductInfo[:], e.secrets.productInfo)
	if _, err := e.submit("trader_login", func(id int) int {
		return e.api.TraderReqUserLogin(e.trader, unsafe.Pointer(&req), id)
	}); err != nil {
		e.logger.Error("trader_login_failed", zap.Error(err))
	}
}

func (e *Engine) confirmSettlement() {
	var req model.SettlementInfoConfirmField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	if _, err := e.submit("settlement_confirm", func(id int) int {
		return e.api.TraderReqSettlementInfoConfirm(e.trader, unsafe.Pointer(&req), id)
	}); err != nil {
		e.logger.Error("settlement_confirm_failed", zap.Error(err))
	}
}

// parseOrderRef reads the numeric part of the vendor's max order ref.
func parseOrderRef(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
