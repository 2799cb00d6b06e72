package engine

import (
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"go-ctp/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRequest describes a new order. A zero price sends a market order.
type OrderRequest struct {
	InstrumentID string          `json:"instrumentId"`
	ExchangeID   string          `json:"exchangeId"`
	Direction    string          `json:"direction"`
	Offset       string          `json:"offset"`
	Price        decimal.Decimal `json:"price"`
	Volume       int32           `json:"volume"`
}

var directions = map[string]byte{
	"buy":  model.DirectionBuy,
	"sell": model.DirectionSell,
}

var offsets = map[string]byte{
	"":            model.OffsetOpen,
	"open":        model.OffsetOpen,
	"close":       model.OffsetClose,
	"close_today": model.OffsetCloseToday,
}

func (r OrderRequest) validate() error {
	switch {
	case r.InstrumentID == "":
		return fmt.Errorf("%w: instrument required", ErrInvalidOrder)
	case r.Volume <= 0:
		return fmt.Errorf("%w: volume must be positive", ErrInvalidOrder)
	case r.Price.IsNegative():
		return fmt.Errorf("%w: negative price", ErrInvalidOrder)
	}
	if _, ok := directions[r.Direction]; !ok {
		return fmt.Errorf("%w: direction %q", ErrInvalidOrder, r.Direction)
	}
	if _, ok := offsets[r.Offset]; !ok {
		return fmt.Errorf("%w: offset %q", ErrInvalidOrder, r.Offset)
	}
	return nil
}

// InsertOrder submits an order on the trader session. The returned order
// is the locally recorded submitted state; later states arrive through
// the store.
func (e *Engine) InsertOrder(r OrderRequest) (Order, error) {
	if err := r.validate(); err != nil {
		return Order{}, err
	}

	e.mu.Lock()
	if e.traderState != StateReady {
		e.mu.Unlock()
		return Order{}, ErrNotReady
	}
	e.orderRef++
	ref := strconv.Itoa(e.orderRef)
	frontID, sessionID := e.frontID, e.sessionID
	e.mu.Unlock()

	var req model.InputOrderField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	model.SetText(req.UserID[:], e.cfg.InvestorID)
	model.SetText(req.OrderRef[:], ref)
	model.SetText(req.InstrumentID[:], r.InstrumentID)
	model.SetText(req.ExchangeID[:], r.ExchangeID)
	req.Direction = directions[r.Direction]
	req.CombOffsetFlag[0] = offsets[r.Offset]
	req.CombHedgeFlag[0] = model.HedgeSpeculation
	req.VolumeTotalOriginal = r.Volume
	req.VolumeCondition = model.VolumeConditionAny
	req.ContingentCondition = model.ContingentImmediately
	req.ForceCloseReason = model.ForceCloseNotForce
	if r.Price.IsZero() {
		req.OrderPriceType = model.PriceTypeAnyPrice
		req.TimeCondition = model.TimeConditionIOC
	} else {
		req.OrderPriceType = model.PriceTypeLimitPrice
		req.TimeCondition = model.TimeConditionGFD
		req.LimitPrice = r.Price.InexactFloat64()
	}

	order := Order{
		Key:          orderKey(frontID, sessionID, ref),
		InstrumentID: r.InstrumentID,
		ExchangeID:   r.ExchangeID,
		OrderRef:     ref,
		FrontID:      frontID,
		SessionID:    sessionID,
		Direction:    r.Direction,
		Offset:       offsetName(req.CombOffsetFlag[0]),
		LimitPrice:   req.LimitPrice,
		Volume:       r.Volume,
		Remaining:    r.Volume,
		Status:       "submitted",
		UpdatedAt:    time.Now(),
	}
	// Recorded first: the vendor may report the order before submit returns.
	e.store.UpsertOrder(order)

	if _, err := e.submit("order_insert", func(id int) int {
		req.RequestID = int32(id)
		return e.api.TraderReqOrderInsert(e.trader, unsafe.Pointer(&req), id)
	}); err != nil {
		e.store.MarkOrder(order.Key, "rejected", err.Error())
		return order, err
	}

	e.mu.Lock()
	e.counters.OrderCount++
	e.mu.Unlock()
	e.logger.Info("order_submitted",
		zap.String("key", order.Key),
		zap.String("instrument", r.InstrumentID),
		zap.String("direction", r.Direction),
		zap.String("offset", order.Offset),
		zap.String("price", r.Price.String()),
		zap.Int32("volume", r.Volume),
	)
	return order, nil
}

// CancelOrder asks the vendor to cancel the order stored under key.
func (e *Engine) CancelOrder(key string) error {
	o, ok := e.store.GetOrder(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOrder, key)
	}

	e.mu.Lock()
	if e.traderState != StateReady {
		e.mu.Unlock()
		return ErrNotReady
	}
	e.actionRef++
	actionRef := e.actionRef
	e.mu.Unlock()

	var req model.InputOrderActionField
	model.SetText(req.BrokerID[:], e.cfg.BrokerID)
	model.SetText(req.InvestorID[:], e.cfg.InvestorID)
	model.SetText(req.UserID[:], e.cfg.InvestorID)
	model.SetText(req.OrderRef[:], o.OrderRef)
	model.SetText(req.ExchangeID[:], o.ExchangeID)
	model.SetText(req.OrderSysID[:], o.OrderSysID)
	model.SetText(req.InstrumentID[:], o.InstrumentID)
	req.FrontID = o.FrontID
	req.SessionID = o.SessionID
	req.OrderActionRef = actionRef
	req.ActionFlag = model.ActionFlagDelete

	_, err := e.submit("order_action", func(id int) int {
		req.RequestID = int32(id)
		e.mu.Lock()
		e.cancels[key] = id
		e.mu.Unlock()
		return e.api.TraderReqOrderAction(e.trader, unsafe.Pointer(&req), id)
	})
	if err != nil {
		e.mu.Lock()
		delete(e.cancels, key)
		e.mu.Unlock()
		return err
	}
	e.logger.Info("cancel_submitted", zap.String("key", key))
	return nil
}
