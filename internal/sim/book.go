package sim

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-ctp/internal/model"
)

type posKey struct {
	instrument string
	dir        byte
}

// book is the simulated account: orders, trades, positions and funds.
type book struct {
	mu        sync.Mutex
	account   model.TradingAccountField
	orders    []model.OrderField
	trades    []model.TradeField
	positions map[posKey]*model.InvestorPositionField
	posOrder  []posKey
	details   []model.InvestorPositionDetailField
	nextLocal int
}

func newBook(cfg Config) *book {
	b := &book{positions: make(map[posKey]*model.InvestorPositionField)}
	model.SetText(b.account.AccountID[:], "sim")
	model.SetText(b.account.CurrencyID[:], "CNY")
	model.SetText(b.account.TradingDay[:], cfg.TradingDay)
	b.account.PreBalance = cfg.InitialBalance
	b.account.Balance = cfg.InitialBalance
	b.account.Available = cfg.InitialBalance
	b.account.WithdrawQuota = cfg.InitialBalance
	return b
}

// newSysID returns a 20 character exchange-style identifier.
func newSysID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:10]))
}

func (b *book) bind(brokerID, investorID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	model.SetText(b.account.BrokerID[:], brokerID)
	model.SetText(b.account.AccountID[:], investorID)
}

func (b *book) available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.account.Available
}

func (b *book) position(instrument string, dir byte) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.positions[posKey{instrument, dir}]; ok {
		return p.Position
	}
	return 0
}

// accept records a new working order and returns its state.
func (b *book) accept(req *model.InputOrderField, tradingDay string, frontID, sessionID int32) model.OrderField {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextLocal++
	now := time.Now()
	var o model.OrderField
	o.BrokerID = req.BrokerID
	o.InvestorID = req.InvestorID
	o.OrderRef = req.OrderRef
	o.UserID = req.UserID
	o.OrderPriceType = req.OrderPriceType
	o.Direction = req.Direction
	o.CombOffsetFlag = req.CombOffsetFlag
	o.CombHedgeFlag = req.CombHedgeFlag
	o.LimitPrice = req.LimitPrice
	o.VolumeTotalOriginal = req.VolumeTotalOriginal
	o.TimeCondition = req.TimeCondition
	o.VolumeCondition = req.VolumeCondition
	o.MinVolume = req.MinVolume
	o.RequestID = req.RequestID
	o.ExchangeID = req.ExchangeID
	o.ClientID = req.ClientID
	o.InstrumentID = req.InstrumentID
	model.SetText(o.OrderLocalID[:], fmt.Sprintf("%12d", b.nextLocal))
	model.SetText(o.OrderSysID[:], newSysID())
	model.SetText(o.TradingDay[:], tradingDay)
	model.SetText(o.InsertDate[:], now.Format("20060102"))
	model.SetText(o.InsertTime[:], now.Format("15:04:05"))
	model.SetText(o.StatusMsg[:], "未成交")
	o.OrderSubmitStatus = model.SubmitStatusAccepted
	o.OrderStatus = model.OrderStatusNoTradeQueue
	o.VolumeTotal = req.VolumeTotalOriginal
	o.FrontID = frontID
	o.SessionID = sessionID
	o.SequenceNo = int32(b.nextLocal)
	o.BrokerOrderSeq = int32(b.nextLocal)

	b.orders = append(b.orders, o)
	return o
}

// find locates an order by exchange id and system id, or by front, session
// and order ref.
func (b *book) find(a *model.InputOrderActionField) int {
	for i := range b.orders {
		o := &b.orders[i]
		if a.OrderSysID[0] != 0 {
			if o.OrderSysID == a.OrderSysID && (a.ExchangeID[0] == 0 || o.ExchangeID == a.ExchangeID) {
				return i
			}
			continue
		}
		if o.FrontID == a.FrontID && o.SessionID == a.SessionID && o.OrderRef == a.OrderRef {
			return i
		}
	}
	return -1
}

// cancel marks the order matched by a canceled. found is false when no order
// matches, working is false when it can no longer be canceled.
func (b *book) cancel(a *model.InputOrderActionField) (o model.OrderField, found, working bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.find(a)
	if i < 0 {
		return o, false, false
	}
	cur := &b.orders[i]
	if cur.OrderStatus != model.OrderStatusNoTradeQueue && cur.OrderStatus != model.OrderStatusPartTraded {
		return *cur, true, false
	}
	cur.OrderStatus = model.OrderStatusCanceled
	model.SetText(cur.CancelTime[:], time.Now().Format("15:04:05"))
	model.SetText(cur.StatusMsg[:], "已撤单")
	return *cur, true, true
}

// fill executes the whole remaining volume of order sysID at price and
// updates positions and funds.
func (b *book) fill(sysID [model.OrderSysIDLen]byte, price float64, inst Instrument) (model.OrderField, model.TradeField) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var o *model.OrderField
	for i := range b.orders {
		if b.orders[i].OrderSysID == sysID {
			o = &b.orders[i]
			break
		}
	}
	if o == nil {
		return model.OrderField{}, model.TradeField{}
	}

	vol := o.VolumeTotal
	o.VolumeTraded += vol
	o.VolumeTotal = 0
	o.OrderStatus = model.OrderStatusAllTraded
	model.SetText(o.StatusMsg[:], "全部成交")

	now := time.Now()
	var t model.TradeField
	t.BrokerID = o.BrokerID
	t.InvestorID = o.InvestorID
	t.OrderRef = o.OrderRef
	t.UserID = o.UserID
	t.ExchangeID = o.ExchangeID
	t.Direction = o.Direction
	t.OrderSysID = o.OrderSysID
	t.OffsetFlag = o.CombOffsetFlag[0]
	t.HedgeFlag = o.CombHedgeFlag[0]
	t.Price = price
	t.Volume = vol
	t.TradingDay = o.TradingDay
	t.BrokerOrderSeq = o.BrokerOrderSeq
	t.InstrumentID = o.InstrumentID
	model.SetText(t.TradeID[:], newSysID())
	model.SetText(t.TradeDate[:], now.Format("20060102"))
	model.SetText(t.TradeTime[:], now.Format("15:04:05"))
	b.trades = append(b.trades, t)

	b.applyTrade(&t, inst)
	return *o, t
}

func (b *book) applyTrade(t *model.TradeField, inst Instrument) {
	mult := float64(max(inst.VolumeMultiple, 1))
	notional := t.Price * float64(t.Volume) * mult
	margin := notional * inst.MarginRatio

	if t.OffsetFlag == model.OffsetOpen {
		key := posKey{inst.ID, model.PosiDirectionLong}
		if t.Direction == model.DirectionSell {
			key.dir = model.PosiDirectionShort
		}
		p := b.positionLocked(key, t, inst)
		p.Position += t.Volume
		p.TodayPosition += t.Volume
		p.OpenVolume += t.Volume
		p.OpenCost += notional
		p.PositionCost += notional
		p.UseMargin += margin
		b.account.CurrMargin += margin
		b.account.Available -= margin

		var d model.InvestorPositionDetailField
		d.BrokerID = t.BrokerID
		d.InvestorID = t.InvestorID
		d.HedgeFlag = t.HedgeFlag
		d.Direction = t.Direction
		d.OpenDate = t.TradeDate
		d.TradeID = t.TradeID
		d.Volume = t.Volume
		d.OpenPrice = t.Price
		d.TradingDay = t.TradingDay
		d.ExchangeID = t.ExchangeID
		d.Margin = margin
		d.InstrumentID = t.InstrumentID
		b.details = append(b.details, d)
		return
	}

	key := posKey{inst.ID, model.PosiDirectionShort}
	if t.Direction == model.DirectionSell {
		key.dir = model.PosiDirectionLong
	}
	p, ok := b.positions[key]
	if !ok || p.Position == 0 {
		return
	}
	closed := min(t.Volume, p.Position)
	avg := p.OpenCost / (float64(p.Position) * mult)
	profit := (t.Price - avg) * float64(closed) * mult
	if key.dir == model.PosiDirectionShort {
		profit = -profit
	}
	share := float64(closed) / float64(p.Position)
	released := p.UseMargin * share

	p.OpenCost -= p.OpenCost * share
	p.PositionCost = p.OpenCost
	p.UseMargin -= released
	p.Position -= closed
	p.TodayPosition = max(p.TodayPosition-closed, 0)
	p.CloseVolume += closed
	p.CloseProfit += profit

	b.account.CurrMargin -= released
	b.account.CloseProfit += profit
	b.account.Balance += profit
	b.account.Available += released + profit
	b.account.WithdrawQuota = b.account.Available

	remaining := closed
	for i := 0; i < len(b.details) && remaining > 0; i++ {
		d := &b.details[i]
		if model.Text(d.InstrumentID[:]) != inst.ID || d.Volume == 0 || (d.Direction == model.DirectionBuy) != (key.dir == model.PosiDirectionLong) {
			continue
		}
		n := min(d.Volume, remaining)
		d.Volume -= n
		remaining -= n
	}
	b.details = slices.DeleteFunc(b.details, func(d model.InvestorPositionDetailField) bool { return d.Volume == 0 })
}

func (b *book) positionLocked(key posKey, t *model.TradeField, inst Instrument) *model.InvestorPositionField {
	if p, ok := b.positions[key]; ok {
		return p
	}
	p := &model.InvestorPositionField{}
	p.BrokerID = t.BrokerID
	p.InvestorID = t.InvestorID
	p.PosiDirection = key.dir
	p.HedgeFlag = t.HedgeFlag
	p.PositionDate = '1'
	p.TradingDay = t.TradingDay
	model.SetText(p.ExchangeID[:], inst.ExchangeID)
	model.SetText(p.InstrumentID[:], inst.ID)
	b.positions[key] = p
	b.posOrder = append(b.posOrder, key)
	return p
}

func (b *book) orderList(instrument string) []model.OrderField {
	b.mu.Lock()
	defer b.mu.Unlock()
	return filterBy(b.orders, instrument, func(o *model.OrderField) []byte { return o.InstrumentID[:] })
}

func (b *book) tradeList(instrument string) []model.TradeField {
	b.mu.Lock()
	defer b.mu.Unlock()
	return filterBy(b.trades, instrument, func(t *model.TradeField) []byte { return t.InstrumentID[:] })
}

func (b *book) positionList(instrument string) []model.InvestorPositionField {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.InvestorPositionField
	for _, k := range b.posOrder {
		if instrument != "" && k.instrument != instrument {
			continue
		}
		out = append(out, *b.positions[k])
	}
	return out
}

func (b *book) detailList(instrument string) []model.InvestorPositionDetailField {
	b.mu.Lock()
	defer b.mu.Unlock()
	return filterBy(b.details, instrument, func(d *model.InvestorPositionDetailField) []byte { return d.InstrumentID[:] })
}

func (b *book) accountSnapshot() model.TradingAccountField {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.account
}

func filterBy[T any](recs []T, instrument string, key func(*T) []byte) []T {
	out := make([]T, 0, len(recs))
	for i := range recs {
		if instrument == "" || model.Text(key(&recs[i])) == instrument {
			out = append(out, recs[i])
		}
	}
	return out
}
