package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ctp/internal/model"
)

func TestCorrelatorLifecycle(t *testing.T) {
	c := NewCorrelator(time.Minute)
	first := c.Track("qry_order")
	second := c.Track("qry_trade")
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	p, ok := c.Observe(first, false)
	require.True(t, ok)
	assert.Equal(t, "qry_order", p.Op)
	assert.Equal(t, 1, p.Pages)
	assert.Equal(t, 2, c.Len())

	p, ok = c.Observe(first, true)
	require.True(t, ok)
	assert.Equal(t, 2, p.Pages)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Observe(first, true)
	assert.False(t, ok, "at most one final response per request")

	c.Forget(second)
	assert.Zero(t, c.Len())
	assert.Equal(t, 3, c.Track("again"), "ids are never reused")
}

func TestCorrelatorSweep(t *testing.T) {
	base := time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)
	now := base
	c := NewCorrelator(10 * time.Second)
	c.now = func() time.Time { return now }

	old := c.Track("old")
	now = base.Add(8 * time.Second)
	fresh := c.Track("fresh")

	assert.Empty(t, c.Sweep(base.Add(9*time.Second)))

	expired := c.Sweep(base.Add(12 * time.Second))
	require.Len(t, expired, 1)
	assert.Equal(t, old, expired[0].RequestID)

	list := c.Snapshot()
	require.Len(t, list, 1)
	assert.Equal(t, fresh, list[0].RequestID)
}

func TestStoreCapsTickHistory(t *testing.T) {
	s := NewStore(3)
	for i := range 5 {
		s.AddTick(Tick{InstrumentID: "rb2501", LastPrice: float64(3500 + i)})
	}
	ticks := s.GetTicks("rb2501")
	require.Len(t, ticks, 3)
	assert.Equal(t, 3502.0, ticks[0].LastPrice)

	last, ok := s.LastTick("rb2501")
	require.True(t, ok)
	assert.Equal(t, 3504.0, last.LastPrice)

	_, ok = s.LastTick("au2502")
	assert.False(t, ok)
}

func TestStoreDropsReplayedTrades(t *testing.T) {
	s := NewStore(0)
	assert.True(t, s.AddTrade(Trade{ExchangeID: "SHFE", TradeID: "1"}))
	assert.False(t, s.AddTrade(Trade{ExchangeID: "SHFE", TradeID: "1"}))
	assert.True(t, s.AddTrade(Trade{ExchangeID: "DCE", TradeID: "1"}))
	assert.Len(t, s.GetTrades(), 2)
}

func TestStoreReplacePositionsMergesRows(t *testing.T) {
	s := NewStore(0)
	s.ReplacePositions([]Position{{InstrumentID: "stale", Direction: "long", Position: 1}})
	s.ReplacePositions([]Position{
		{InstrumentID: "rb2501", Direction: "long", Position: 2, TodayPosition: 2},
		{InstrumentID: "rb2501", Direction: "long", Position: 3, YdPosition: 3},
		{InstrumentID: "au2502", Direction: "short", Position: 1},
	})

	list := s.GetPositions()
	require.Len(t, list, 2)
	assert.Equal(t, "au2502", list[0].InstrumentID)
	assert.Equal(t, int32(5), list[1].Position)
	assert.Equal(t, int32(2), list[1].TodayPosition)
	assert.Equal(t, int32(3), list[1].YdPosition)
}

func TestStoreSnapshot(t *testing.T) {
	s := NewStore(0)
	at := time.Now()
	s.AddTick(Tick{InstrumentID: "rb2501", Bid: 3499, Ask: 3500, Time: at})
	s.SetInstrumentStatus(InstrumentStatus{InstrumentID: "au2502", Status: "2"})
	s.UpsertOrder(Order{Key: "1:2:3", Status: "queued"})
	assert.True(t, s.MarkOrder("1:2:3", "canceled", "done"))
	assert.False(t, s.MarkOrder("missing", "canceled", ""))
	s.SetAccount(Account{Balance: 10})

	snap := s.Snapshot()
	require.Len(t, snap.Instruments, 2)
	assert.Equal(t, "au2502", snap.Instruments[0].InstrumentID)
	assert.False(t, snap.Instruments[0].HasTick)
	assert.Equal(t, "2", snap.Instruments[0].Status)
	assert.True(t, snap.Instruments[1].HasTick)
	assert.Equal(t, 3500.0, snap.Instruments[1].Ask)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "canceled", snap.Orders[0].Status)
	require.NotNil(t, snap.Account)
	assert.Equal(t, 10.0, snap.Account.Balance)
}

func TestRecordCopies(t *testing.T) {
	var f model.OrderField
	model.SetText(f.OrderRef[:], "12")
	model.SetText(f.InstrumentID[:], "rb2501")
	model.SetText(f.StatusMsg[:], "全部成交")
	f.FrontID = 1
	f.SessionID = 7
	f.Direction = model.DirectionSell
	f.CombOffsetFlag[0] = model.OffsetCloseToday
	f.OrderStatus = model.OrderStatusAllTraded
	f.OrderSubmitStatus = model.SubmitStatusAccepted

	o := orderFrom(&f, time.Now())
	f = model.OrderField{}

	assert.Equal(t, "1:7:12", o.Key)
	assert.Equal(t, "rb2501", o.InstrumentID)
	assert.Equal(t, "sell", o.Direction)
	assert.Equal(t, "close_today", o.Offset)
	assert.Equal(t, "all_traded", o.Status)
	assert.Equal(t, "全部成交", o.StatusMsg)
	assert.False(t, o.Working())

	var md model.DepthMarketDataField
	md.LastPrice = 3500
	md.BidPrice1 = 1.7976931348623157e308
	tick := tickFrom(&md, time.Now())
	assert.Equal(t, 3500.0, tick.LastPrice)
	assert.Zero(t, tick.Bid, "vendor no-value marker")

	assert.Equal(t, "rejected", orderStatusName(model.OrderStatusUnknown, model.SubmitStatusInsertRejected))
	assert.Equal(t, 12, parseOrderRef(" 12"))
	assert.Zero(t, parseOrderRef("x"))
}

func TestRspError(t *testing.T) {
	assert.Nil(t, rspError("login", 1, nil))
	assert.Nil(t, rspError("login", 1, &model.RspInfoField{}))

	info := &model.RspInfoField{ErrorID: 3}
	model.SetText(info.ErrorMsg[:], "CTP:不合法的登录")
	err := rspError("trader_login", 42, info)
	require.NotNil(t, err)
	assert.Equal(t, "trader_login (request 42): vendor error 3: CTP:不合法的登录", err.Error())
}
