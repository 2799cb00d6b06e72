package sim

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"go-ctp/internal/model"
)

type quote struct {
	inst     Instrument
	tick     decimal.Decimal
	preClose decimal.Decimal
	open     decimal.Decimal
	last     decimal.Decimal
	high     decimal.Decimal
	low      decimal.Decimal
	volume   int32
	turnover decimal.Decimal
	interest float64
}

// market holds one random-walk price per instrument, shared by every API
// object created from the same library.
type market struct {
	mu     sync.Mutex
	day    string
	rng    *rand.Rand
	quotes map[string]*quote
	order  []string
}

func newMarket(cfg Config) *market {
	m := &market{
		day:    cfg.TradingDay,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		quotes: make(map[string]*quote, len(cfg.Instruments)),
	}
	for _, in := range cfg.Instruments {
		tick := decimal.NewFromFloat(in.PriceTick)
		if !tick.IsPositive() {
			tick = decimal.NewFromInt(1)
		}
		px := roundToTick(decimal.NewFromFloat(in.LastPrice), tick)
		m.quotes[in.ID] = &quote{
			inst:     in,
			tick:     tick,
			preClose: px,
			open:     px,
			last:     px,
			high:     px,
			low:      px,
			interest: 10_000,
		}
		m.order = append(m.order, in.ID)
	}
	return m
}

func roundToTick(px, tick decimal.Decimal) decimal.Decimal {
	return px.Div(tick).Round(0).Mul(tick)
}

func (m *market) instrument(id string) (Instrument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return Instrument{}, false
	}
	return q.inst, true
}

func (m *market) instruments() []Instrument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Instrument, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.quotes[id].inst)
	}
	return out
}

// step moves the price of id by up to two ticks and returns the new snapshot.
func (m *market) step(id string) (model.DepthMarketDataField, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return model.DepthMarketDataField{}, false
	}
	moves := decimal.NewFromInt(int64(m.rng.IntN(5) - 2))
	next := q.last.Add(q.tick.Mul(moves))
	if next.LessThanOrEqual(decimal.Zero) {
		next = q.tick
	}
	q.last = roundToTick(next, q.tick)
	q.high = decimal.Max(q.high, q.last)
	q.low = decimal.Min(q.low, q.last)
	vol := int32(m.rng.IntN(20) + 1)
	q.volume += vol
	q.turnover = q.turnover.Add(q.last.Mul(decimal.NewFromInt(int64(vol) * int64(q.inst.VolumeMultiple))))
	return m.snapshotLocked(q), true
}

func (m *market) snapshot(id string) (model.DepthMarketDataField, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return model.DepthMarketDataField{}, false
	}
	return m.snapshotLocked(q), true
}

// touch returns the best bid and ask of id.
func (m *market) touch(id string) (bid, ask decimal.Decimal, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, found := m.quotes[id]
	if !found {
		return decimal.Zero, decimal.Zero, false
	}
	return q.last.Sub(q.tick), q.last.Add(q.tick), true
}

func (m *market) snapshotLocked(q *quote) model.DepthMarketDataField {
	now := time.Now()
	var d model.DepthMarketDataField
	model.SetText(d.TradingDay[:], m.day)
	model.SetText(d.ActionDay[:], now.Format("20060102"))
	model.SetText(d.ExchangeID[:], q.inst.ExchangeID)
	model.SetText(d.InstrumentID[:], q.inst.ID)
	model.SetText(d.UpdateTime[:], now.Format("15:04:05"))
	d.UpdateMillisec = int32(now.Nanosecond() / int(time.Millisecond))

	d.LastPrice = q.last.InexactFloat64()
	d.PreClosePrice = q.preClose.InexactFloat64()
	d.PreSettlementPrice = q.preClose.InexactFloat64()
	d.OpenPrice = q.open.InexactFloat64()
	d.HighestPrice = q.high.InexactFloat64()
	d.LowestPrice = q.low.InexactFloat64()
	d.Volume = q.volume
	d.Turnover = q.turnover.InexactFloat64()
	d.OpenInterest = q.interest
	d.PreOpenInterest = q.interest

	limit := q.preClose.Mul(decimal.NewFromFloat(0.1))
	d.UpperLimitPrice = roundToTick(q.preClose.Add(limit), q.tick).InexactFloat64()
	d.LowerLimitPrice = roundToTick(q.preClose.Sub(limit), q.tick).InexactFloat64()
	if q.volume > 0 {
		d.AveragePrice = q.turnover.Div(decimal.NewFromInt(int64(q.volume))).InexactFloat64()
	}

	levels := []struct {
		bidPx, askPx   *float64
		bidVol, askVol *int32
	}{
		{&d.BidPrice1, &d.AskPrice1, &d.BidVolume1, &d.AskVolume1},
		{&d.BidPrice2, &d.AskPrice2, &d.BidVolume2, &d.AskVolume2},
		{&d.BidPrice3, &d.AskPrice3, &d.BidVolume3, &d.AskVolume3},
		{&d.BidPrice4, &d.AskPrice4, &d.BidVolume4, &d.AskVolume4},
		{&d.BidPrice5, &d.AskPrice5, &d.BidVolume5, &d.AskVolume5},
	}
	for i, lv := range levels {
		off := q.tick.Mul(decimal.NewFromInt(int64(i + 1)))
		*lv.bidPx = q.last.Sub(off).InexactFloat64()
		*lv.askPx = q.last.Add(off).InexactFloat64()
		*lv.bidVol = int32(10 * (i + 1))
		*lv.askVol = int32(10 * (i + 1))
	}
	return d
}

func (m *market) exchanges() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, id := range m.order {
		ex := m.quotes[id].inst.ExchangeID
		if !slices.Contains(out, ex) {
			out = append(out, ex)
		}
	}
	return out
}
