package engine

import (
	"fmt"
	"math"
	"time"

	"go-ctp/internal/model"
)

// The vendor records are only valid inside the callback that carries them.
// Everything below copies what the engine keeps into plain Go values.

// Tick is a copied market data snapshot.
type Tick struct {
	InstrumentID string    `json:"instrumentId"`
	ExchangeID   string    `json:"exchangeId"`
	TradingDay   string    `json:"tradingDay"`
	UpdateTime   string    `json:"updateTime"`
	UpdateMilli  int32     `json:"updateMillisec"`
	LastPrice    float64   `json:"lastPrice"`
	Bid          float64   `json:"bid"`
	BidVolume    int32     `json:"bidVolume"`
	Ask          float64   `json:"ask"`
	AskVolume    int32     `json:"askVolume"`
	Volume       int32     `json:"volume"`
	Turnover     float64   `json:"turnover"`
	OpenInterest float64   `json:"openInterest"`
	UpperLimit   float64   `json:"upperLimit"`
	LowerLimit   float64   `json:"lowerLimit"`
	Time         time.Time `json:"time"`
}

// Order is a copied order state.
type Order struct {
	Key          string    `json:"key"`
	InstrumentID string    `json:"instrumentId"`
	ExchangeID   string    `json:"exchangeId"`
	OrderRef     string    `json:"orderRef"`
	OrderSysID   string    `json:"orderSysId"`
	FrontID      int32     `json:"frontId"`
	SessionID    int32     `json:"sessionId"`
	Direction    string    `json:"direction"`
	Offset       string    `json:"offset"`
	LimitPrice   float64   `json:"limitPrice"`
	Volume       int32     `json:"volume"`
	Traded       int32     `json:"traded"`
	Remaining    int32     `json:"remaining"`
	Status       string    `json:"status"`
	StatusMsg    string    `json:"statusMsg"`
	InsertTime   string    `json:"insertTime"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Working reports whether the order can still trade.
func (o Order) Working() bool {
	return o.Status == "queued" || o.Status == "part_traded" || o.Status == "submitted"
}

// Trade is a copied fill.
type Trade struct {
	TradeID      string  `json:"tradeId"`
	ExchangeID   string  `json:"exchangeId"`
	InstrumentID string  `json:"instrumentId"`
	OrderRef     string  `json:"orderRef"`
	OrderSysID   string  `json:"orderSysId"`
	Direction    string  `json:"direction"`
	Offset       string  `json:"offset"`
	Price        float64 `json:"price"`
	Volume       int32   `json:"volume"`
	TradeDate    string  `json:"tradeDate"`
	TradeTime    string  `json:"tradeTime"`
}

// Position is a copied aggregated position.
type Position struct {
	InstrumentID   string  `json:"instrumentId"`
	ExchangeID     string  `json:"exchangeId"`
	Direction      string  `json:"direction"`
	Position       int32   `json:"position"`
	TodayPosition  int32   `json:"todayPosition"`
	YdPosition     int32   `json:"ydPosition"`
	OpenCost       float64 `json:"openCost"`
	PositionCost   float64 `json:"positionCost"`
	UseMargin      float64 `json:"useMargin"`
	PositionProfit float64 `json:"positionProfit"`
	CloseProfit    float64 `json:"closeProfit"`
}

// Account is a copied funds summary.
type Account struct {
	AccountID      string    `json:"accountId"`
	TradingDay     string    `json:"tradingDay"`
	PreBalance     float64   `json:"preBalance"`
	Balance        float64   `json:"balance"`
	Available      float64   `json:"available"`
	CurrMargin     float64   `json:"currMargin"`
	FrozenMargin   float64   `json:"frozenMargin"`
	Commission     float64   `json:"commission"`
	CloseProfit    float64   `json:"closeProfit"`
	PositionProfit float64   `json:"positionProfit"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// InstrumentStatus is a copied trading phase change.
type InstrumentStatus struct {
	InstrumentID string `json:"instrumentId"`
	ExchangeID   string `json:"exchangeId"`
	Status       string `json:"status"`
	EnterTime    string `json:"enterTime"`
}

// price maps the vendor's "no value" marker to zero.
func price(v float64) float64 {
	if v == math.MaxFloat64 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func tickFrom(f *model.DepthMarketDataField, at time.Time) Tick {
	return Tick{
		InstrumentID: model.Text(f.InstrumentID[:]),
		ExchangeID:   model.Text(f.ExchangeID[:]),
		TradingDay:   model.Text(f.TradingDay[:]),
		UpdateTime:   model.Text(f.UpdateTime[:]),
		UpdateMilli:  f.UpdateMillisec,
		LastPrice:    price(f.LastPrice),
		Bid:          price(f.BidPrice1),
		BidVolume:    f.BidVolume1,
		Ask:          price(f.AskPrice1),
		AskVolume:    f.AskVolume1,
		Volume:       f.Volume,
		Turnover:     price(f.Turnover),
		OpenInterest: price(f.OpenInterest),
		UpperLimit:   price(f.UpperLimitPrice),
		LowerLimit:   price(f.LowerLimitPrice),
		Time:         at,
	}
}

// orderKey identifies an order by the session that placed it.
func orderKey(frontID, sessionID int32, orderRef string) string {
	return fmt.Sprintf("%d:%d:%s", frontID, sessionID, orderRef)
}

func orderFrom(f *model.OrderField, at time.Time) Order {
	ref := model.Text(f.OrderRef[:])
	return Order{
		Key:          orderKey(f.FrontID, f.SessionID, ref),
		InstrumentID: model.Text(f.InstrumentID[:]),
		ExchangeID:   model.Text(f.ExchangeID[:]),
		OrderRef:     ref,
		OrderSysID:   model.Text(f.OrderSysID[:]),
		FrontID:      f.FrontID,
		SessionID:    f.SessionID,
		Direction:    directionName(f.Direction),
		Offset:       offsetName(f.CombOffsetFlag[0]),
		LimitPrice:   price(f.LimitPrice),
		Volume:       f.VolumeTotalOriginal,
		Traded:       f.VolumeTraded,
		Remaining:    f.VolumeTotal,
		Status:       orderStatusName(f.OrderStatus, f.OrderSubmitStatus),
		StatusMsg:    model.Text(f.StatusMsg[:]),
		InsertTime:   model.Text(f.InsertTime[:]),
		UpdatedAt:    at,
	}
}

func tradeFrom(f *model.TradeField) Trade {
	return Trade{
		TradeID:      model.Text(f.TradeID[:]),
		ExchangeID:   model.Text(f.ExchangeID[:]),
		InstrumentID: model.Text(f.InstrumentID[:]),
		OrderRef:     model.Text(f.OrderRef[:]),
		OrderSysID:   model.Text(f.OrderSysID[:]),
		Direction:    directionName(f.Direction),
		Offset:       offsetName(f.OffsetFlag),
		Price:        price(f.Price),
		Volume:       f.Volume,
		TradeDate:    model.Text(f.TradeDate[:]),
		TradeTime:    model.Text(f.TradeTime[:]),
	}
}

func positionFrom(f *model.InvestorPositionField) Position {
	return Position{
		InstrumentID:   model.Text(f.InstrumentID[:]),
		ExchangeID:     model.Text(f.ExchangeID[:]),
		Direction:      posiDirectionName(f.PosiDirection),
		Position:       f.Position,
		TodayPosition:  f.TodayPosition,
		YdPosition:     f.YdPosition,
		OpenCost:       price(f.OpenCost),
		PositionCost:   price(f.PositionCost),
		UseMargin:      price(f.UseMargin),
		PositionProfit: price(f.PositionProfit),
		CloseProfit:    price(f.CloseProfit),
	}
}

func accountFrom(f *model.TradingAccountField, at time.Time) Account {
	return Account{
		AccountID:      model.Text(f.AccountID[:]),
		TradingDay:     model.Text(f.TradingDay[:]),
		PreBalance:     price(f.PreBalance),
		Balance:        price(f.Balance),
		Available:      price(f.Available),
		CurrMargin:     price(f.CurrMargin),
		FrozenMargin:   price(f.FrozenMargin),
		Commission:     price(f.Commission),
		CloseProfit:    price(f.CloseProfit),
		PositionProfit: price(f.PositionProfit),
		UpdatedAt:      at,
	}
}

func instrumentStatusFrom(f *model.InstrumentStatusField) InstrumentStatus {
	return InstrumentStatus{
		InstrumentID: model.Text(f.InstrumentID[:]),
		ExchangeID:   model.Text(f.ExchangeID[:]),
		Status:       string(rune(f.InstrumentStatus)),
		EnterTime:    model.Text(f.EnterTime[:]),
	}
}

func directionName(b byte) string {
	switch b {
	case model.DirectionBuy:
		return "buy"
	case model.DirectionSell:
		return "sell"
	}
	return "unknown"
}

func offsetName(b byte) string {
	switch b {
	case model.OffsetOpen:
		return "open"
	case model.OffsetClose:
		return "close"
	case model.OffsetCloseToday:
		return "close_today"
	}
	return "unknown"
}

func posiDirectionName(b byte) string {
	switch b {
	case model.PosiDirectionLong:
		return "long"
	case model.PosiDirectionShort:
		return "short"
	case model.PosiDirectionNet:
		return "net"
	}
	return "unknown"
}

func orderStatusName(status, submit byte) string {
	if submit == model.SubmitStatusInsertRejected {
		return "rejected"
	}
	switch status {
	case model.OrderStatusAllTraded:
		return "all_traded"
	case model.OrderStatusPartTraded:
		return "part_traded"
	case model.OrderStatusNoTradeQueue:
		return "queued"
	case model.OrderStatusCanceled:
		return "canceled"
	}
	return "unknown"
}
