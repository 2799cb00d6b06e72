package sim

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-ctp/internal/model"
	"go-ctp/internal/sdk"
)

// lifecycle delivers connection events to whichever SPI is registered.
type lifecycle interface {
	frontConnected()
	frontDisconnected(reason int)
	heartBeatWarning(lapse int)
}

// session is the part of the runtime shared by MD and Trader objects:
// front registration, connection state and the ordered dispatcher.
type session struct {
	kind     string
	cfg      Config
	log      *zap.Logger
	flowPath string
	events   lifecycle
	limiter  *rate.Limiter

	mu          sync.Mutex
	fronts      []string
	nameServers []string
	fens        model.FensUserInfoField
	started     bool
	connected   bool
	loggedIn    bool
	userID      string

	queue   chan func()
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	release sync.Once
	wg      conc.WaitGroup
}

func newSession(kind, flowPath string, cfg Config, events lifecycle) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		kind:     kind,
		cfg:      cfg,
		log:      cfg.Logger.With(zap.String("api", kind)),
		flowPath: flowPath,
		events:   events,
		limiter:  cfg.limiter(),
		queue:    make(chan func(), cfg.MaxPending),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (s *session) RegisterFront(addr string) {
	s.mu.Lock()
	s.fronts = append(s.fronts, addr)
	s.mu.Unlock()
	s.log.Debug("sim_front_registered", zap.String("addr", addr))
}

func (s *session) RegisterNameServer(addr string) {
	s.mu.Lock()
	s.nameServers = append(s.nameServers, addr)
	s.mu.Unlock()
	s.log.Debug("sim_name_server_registered", zap.String("addr", addr))
}

func (s *session) RegisterFensUserInfo(info *model.FensUserInfoField) {
	if info == nil {
		return
	}
	s.mu.Lock()
	s.fens = *info
	s.mu.Unlock()
}

// Init starts the dispatcher and begins connecting to the registered fronts.
func (s *session) Init() { s.start() }

func (s *session) start() bool {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return false
	}
	s.started = true
	endpoints := len(s.fronts) + len(s.nameServers)
	s.mu.Unlock()

	s.writeFlowMarker()
	s.wg.Go(s.run)
	if endpoints == 0 {
		s.log.Warn("sim_no_front_registered")
		return true
	}
	s.wg.Go(func() { s.connectLoop(s.cfg.ConnectDelay, 0) })
	return true
}

// Release stops every goroutine of the object and unblocks Join. It must
// not be called from inside a callback.
func (s *session) Release() {
	s.release.Do(func() {
		s.cancel()
		close(s.done)
		s.wg.Wait()
		s.log.Debug("sim_released")
	})
}

func (s *session) Join() int {
	<-s.done
	return 0
}

func (s *session) GetTradingDay() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loggedIn {
		return ""
	}
	return s.cfg.TradingDay
}

// DropConnection simulates a network failure. OnFrontDisconnected is
// delivered, the session logs out and reconnection starts with exponential
// backoff, failing Config.ReconnectFailures times before it succeeds.
func (s *session) DropConnection(reason int) {
	s.mu.Lock()
	was := s.connected
	s.connected = false
	s.loggedIn = false
	s.mu.Unlock()
	if !was {
		return
	}

	s.log.Info("sim_connection_dropped", zap.Int("reason", reason))
	if reason == ReasonHeartBeatTimeout {
		s.enqueue(func() { s.events.heartBeatWarning(s.cfg.HeartBeatLapse) })
	}
	s.enqueue(func() { s.events.frontDisconnected(reason) })
	s.wg.Go(func() { s.connectLoop(s.cfg.ReconnectInterval, s.cfg.ReconnectFailures) })
}

// Connected reports whether the simulated front link is up.
func (s *session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *session) connectLoop(delay time.Duration, failures int) {
	if !s.sleep(delay) {
		return
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.ReconnectInterval
	bo.MaxInterval = 8 * s.cfg.ReconnectInterval
	bo.Reset()

	for attempt := 0; attempt < failures; attempt++ {
		s.log.Debug("sim_connect_failed", zap.Int("attempt", attempt+1))
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			wait = bo.MaxInterval
		}
		if !s.sleep(wait) {
			return
		}
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	s.log.Info("sim_front_connected")
	s.enqueue(s.events.frontConnected)
}

func (s *session) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *session) run() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case fn := <-s.queue:
			s.dispatch(fn)
		}
	}
}

func (s *session) dispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("sim_callback_panic", zap.Any("panic", r))
		}
	}()
	fn()
}

// enqueue queues an internal event, waiting for room if needed.
func (s *session) enqueue(fn func()) {
	select {
	case <-s.ctx.Done():
	case s.queue <- fn:
	}
}

// submit queues a request. Requests fail with sdk.CodeNetwork when the front
// is down, with sdk.CodeRateExceeded when a query exceeds the flow limit and
// with sdk.CodeTooManyPending when the queue is full.
func (s *session) submit(query bool, fn func()) int {
	if s.ctx.Err() != nil || !s.Connected() {
		return sdk.CodeNetwork
	}
	if query && !s.limiter.Allow() {
		return sdk.CodeRateExceeded
	}
	select {
	case s.queue <- fn:
		return sdk.CodeOK
	default:
		return sdk.CodeTooManyPending
	}
}

func (s *session) setLoggedIn(userID string, in bool) {
	s.mu.Lock()
	s.loggedIn = in
	s.userID = userID
	s.mu.Unlock()
}

func (s *session) isLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *session) user() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *session) frontAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fronts) > 0 {
		return s.fronts[0]
	}
	if len(s.nameServers) > 0 {
		return s.nameServers[0]
	}
	return ""
}

// writeFlowMarker leaves a small file in the flow directory, the way the
// vendor runtime keeps its dialog and query flow files there.
func (s *session) writeFlowMarker() {
	if s.flowPath == "" {
		return
	}
	name := filepath.Join(s.flowPath, s.kind+"TradingDay.con")
	if err := os.WriteFile(name, []byte(s.cfg.TradingDay), 0o644); err != nil {
		s.log.Warn("sim_flow_file_failed", zap.String("path", name), zap.Error(err))
	}
}

func notLoggedIn() *model.RspInfoField {
	return rspInfo(ErrNotLoggedIn, "CTP:还没有登录")
}

func rspInfo(id int32, msg string) *model.RspInfoField {
	info := &model.RspInfoField{ErrorID: id}
	model.SetText(info.ErrorMsg[:], msg)
	return info
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
