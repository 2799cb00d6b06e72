package engine

import (
	"slices"
	"strings"
	"sync"
	"time"
)

const maxTrades = 4096

// Store is a thread-safe in-memory state store for copied vendor records.
type Store struct {
	mu          sync.RWMutex
	tickHistory int
	ticks       map[string][]Tick // instrument -> recent ticks (capped)
	orders      map[string]Order  // orderKey -> Order
	trades      []Trade
	tradeIDs    map[string]struct{} // exchange|tradeID, replayed fills are dropped
	positions   map[string]Position // instrument|direction -> Position
	account     *Account
	statuses    map[string]InstrumentStatus
}

// InstrumentSnapshot holds the latest state for a single instrument.
type InstrumentSnapshot struct {
	InstrumentID string    `json:"instrumentId"`
	LastPrice    float64   `json:"lastPrice"`
	Bid          float64   `json:"bid"`
	Ask          float64   `json:"ask"`
	Time         time.Time `json:"time"`
	Status       string    `json:"status,omitempty"`
	HasTick      bool      `json:"hasTick"`
}

// StoreSnapshot is a point-in-time snapshot of all store data.
type StoreSnapshot struct {
	Instruments []InstrumentSnapshot `json:"instruments"`
	Orders      []Order              `json:"orders"`
	Positions   []Position           `json:"positions"`
	Account     *Account             `json:"account,omitempty"`
	TradeCount  int                  `json:"tradeCount"`
}

// NewStore creates an empty store keeping up to tickHistory ticks per instrument.
func NewStore(tickHistory int) *Store {
	if tickHistory <= 0 {
		tickHistory = 256
	}
	return &Store{
		tickHistory: tickHistory,
		ticks:       make(map[string][]Tick),
		orders:      make(map[string]Order),
		tradeIDs:    make(map[string]struct{}),
		positions:   make(map[string]Position),
		statuses:    make(map[string]InstrumentStatus),
	}
}

// AddTick appends a tick, capping the instrument's history.
func (s *Store) AddTick(t Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := append(s.ticks[t.InstrumentID], t)
	if len(buf) > s.tickHistory {
		buf = buf[len(buf)-s.tickHistory:]
	}
	s.ticks[t.InstrumentID] = buf
}

// GetTicks returns a copy of the recent ticks for an instrument.
func (s *Store) GetTicks(instrumentID string) []Tick {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ticks[instrumentID])
}

// LastTick returns the most recent tick for an instrument, if any.
func (s *Store) LastTick(instrumentID string) (Tick, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.ticks[instrumentID]
	if len(list) == 0 {
		return Tick{}, false
	}
	return list[len(list)-1], true
}

// UpsertOrder stores the latest state of an order.
func (s *Store) UpsertOrder(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.Key] = o
}

// MarkOrder sets the status of a known order. It reports whether the order existed.
func (s *Store) MarkOrder(key, status, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[key]
	if !ok {
		return false
	}
	o.Status = status
	o.StatusMsg = msg
	o.UpdatedAt = time.Now()
	s.orders[key] = o
	return true
}

// GetOrder returns the order stored under key.
func (s *Store) GetOrder(key string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[key]
	return o, ok
}

// GetOrders returns all orders sorted by key.
func (s *Store) GetOrders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersLocked()
}

func (s *Store) ordersLocked() []Order {
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Order) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// AddTrade appends a fill. It reports false for a fill already seen.
func (s *Store) AddTrade(t Trade) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := t.ExchangeID + "|" + t.TradeID
	if _, dup := s.tradeIDs[id]; dup {
		return false
	}
	s.tradeIDs[id] = struct{}{}
	s.trades = append(s.trades, t)
	if len(s.trades) > maxTrades {
		s.trades = s.trades[len(s.trades)-maxTrades:]
	}
	return true
}

// GetTrades returns a copy of the recorded fills in arrival order.
func (s *Store) GetTrades() []Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trades)
}

// ReplacePositions swaps in a complete position query result.
func (s *Store) ReplacePositions(list []Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = make(map[string]Position, len(list))
	for _, p := range list {
		key := p.InstrumentID + "|" + p.Direction
		// Today and history lots arrive as separate rows for some exchanges.
		if cur, ok := s.positions[key]; ok {
			cur.Position += p.Position
			cur.TodayPosition += p.TodayPosition
			cur.YdPosition += p.YdPosition
			cur.OpenCost += p.OpenCost
			cur.PositionCost += p.PositionCost
			cur.UseMargin += p.UseMargin
			cur.PositionProfit += p.PositionProfit
			cur.CloseProfit += p.CloseProfit
			p = cur
		}
		s.positions[key] = p
	}
}

// GetPositions returns the positions sorted by instrument and direction.
func (s *Store) GetPositions() []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positionsLocked()
}

func (s *Store) positionsLocked() []Position {
	out := make([]Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Position) int {
		if c := strings.Compare(a.InstrumentID, b.InstrumentID); c != 0 {
			return c
		}
		return strings.Compare(a.Direction, b.Direction)
	})
	return out
}

// SetAccount replaces the funds summary.
func (s *Store) SetAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &a
}

// GetAccount returns the funds summary, if one has been received.
func (s *Store) GetAccount() (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return Account{}, false
	}
	return *s.account, true
}

// SetInstrumentStatus records a trading phase change.
func (s *Store) SetInstrumentStatus(st InstrumentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[st.InstrumentID] = st
}

// Snapshot returns a point-in-time copy of all state data.
func (s *Store) Snapshot() StoreSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.ticks)+len(s.statuses))
	instruments := make([]InstrumentSnapshot, 0, len(s.ticks))
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		snap := InstrumentSnapshot{InstrumentID: id, Status: s.statuses[id].Status}
		if list := s.ticks[id]; len(list) > 0 {
			last := list[len(list)-1]
			snap.LastPrice = last.LastPrice
			snap.Bid = last.Bid
			snap.Ask = last.Ask
			snap.Time = last.Time
			snap.HasTick = true
		}
		instruments = append(instruments, snap)
	}
	for id := range s.ticks {
		add(id)
	}
	for id := range s.statuses {
		add(id)
	}
	slices.SortFunc(instruments, func(a, b InstrumentSnapshot) int {
		return strings.Compare(a.InstrumentID, b.InstrumentID)
	})

	var account *Account
	if s.account != nil {
		acc := *s.account
		account = &acc
	}

	return StoreSnapshot{
		Instruments: instruments,
		Orders:      s.ordersLocked(),
		Positions:   s.positionsLocked(),
		Account:     account,
		TradeCount:  len(s.trades),
	}
}
