package engine

import (
	"fmt"
	"time"
	"unsafe"

	"go-ctp/internal/bridge"
	"go-ctp/internal/model"

	"go.uber.org/zap"
)

// The callback tables carry the *Engine as user data, the way a C caller
// would carry its context pointer. Entries the engine does not need stay nil.

func engineOf(ud unsafe.Pointer) *Engine { return (*Engine)(ud) }

func mdCallbacks(e *Engine) bridge.MdCallbacks {
	return bridge.MdCallbacks{
		UserData:             unsafe.Pointer(e),
		OnFrontConnected:     onMdFrontConnected,
		OnFrontDisconnected:  onMdFrontDisconnected,
		OnHeartBeatWarning:   onMdHeartBeatWarning,
		OnRspUserLogin:       onMdRspUserLogin,
		OnRspUserLogout:      onMdRspUserLogout,
		OnRspError:           onMdRspError,
		OnRspSubMarketData:   onRspSubMarketData,
		OnRspUnSubMarketData: onRspSubMarketData,
		OnRtnDepthMarketData: onRtnDepthMarketData,
	}
}

func traderCallbacks(e *Engine) bridge.TraderCallbacks {
	return bridge.TraderCallbacks{
		UserData:                   unsafe.Pointer(e),
		OnFrontConnected:           onTraderFrontConnected,
		OnFrontDisconnected:        onTraderFrontDisconnected,
		OnHeartBeatWarning:         onTraderHeartBeatWarning,
		OnRspAuthenticate:          onRspAuthenticate,
		OnRspUserLogin:             onTraderRspUserLogin,
		OnRspUserLogout:            onTraderRspUserLogout,
		OnRspError:                 onTraderRspError,
		OnRspSettlementInfoConfirm: onRspSettlementInfoConfirm,
		OnRspQryTradingAccount:     onRspQryTradingAccount,
		OnRspQryInvestorPosition:   onRspQryInvestorPosition,
		OnRspQryOrder:              onRspQryOrder,
		OnRspQryTrade:              onRspQryTrade,
		OnRspOrderInsert:           onRspOrderInsert,
		OnErrRtnOrderInsert:        onErrRtnOrderInsert,
		OnRspOrderAction:           onRspOrderAction,
		OnErrRtnOrderAction:        onErrRtnOrderAction,
		OnRtnOrder:                 onRtnOrder,
		OnRtnTrade:                 onRtnTrade,
		OnRtnInstrumentStatus:      onRtnInstrumentStatus,
	}
}

func onMdFrontConnected(ud unsafe.Pointer) { engineOf(ud).frontConnected("md") }

func onMdFrontDisconnected(ud unsafe.Pointer, reason int) {
	engineOf(ud).frontDisconnected("md", reason)
}

func onMdHeartBeatWarning(ud unsafe.Pointer, lapse int) {
	engineOf(ud).heartBeatWarning("md", lapse)
}

func onMdRspError(ud unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
	engineOf(ud).observe("md", "OnRspError", requestID, isLast, info)
}

func onTraderFrontConnected(ud unsafe.Pointer) { engineOf(ud).frontConnected("trader") }

func onTraderFrontDisconnected(ud unsafe.Pointer, reason int) {
	engineOf(ud).frontDisconnected("trader", reason)
}

func onTraderHeartBeatWarning(ud unsafe.Pointer, lapse int) {
	engineOf(ud).heartBeatWarning("trader", lapse)
}

func onTraderRspError(ud unsafe.Pointer, info *model.RspInfoField, requestID, isLast int) {
	engineOf(ud).observe("trader", "OnRspError", requestID, isLast, info)
}

// observe correlates one response with its request, records any vendor
// error and returns the request's operation name.
func (e *Engine) observe(side, event string, requestID, isLast int, info *model.RspInfoField) (string, *RspError) {
	e.metrics.Callback(side, event)
	e.mu.Lock()
	e.counters.CallbackCount++
	e.mu.Unlock()

	op := event
	if p, ok := e.corr.Observe(requestID, isLast == 1); ok {
		op = p.Op
		if isLast == 1 {
			e.metrics.ObserveLatency(time.Since(p.SentAt).Seconds())
			e.metrics.SetPending(e.corr.Len())
		}
	} else if requestID != 0 {
		e.logger.Debug("uncorrelated_response",
			zap.String("side", side),
			zap.String("event", event),
			zap.Int("request_id", requestID),
		)
	}

	rerr := rspError(op, requestID, info)
	if rerr != nil {
		e.recordError(rerr)
	}
	return op, rerr
}

// push counts a response-less event.
func (e *Engine) push(side, event string) {
	e.metrics.Callback(side, event)
	e.mu.Lock()
	e.counters.CallbackCount++
	e.mu.Unlock()
}

func (e *Engine) recordError(rerr *RspError) {
	e.mu.Lock()
	e.counters.ErrorCount++
	e.recentErrs = append(e.recentErrs, rerr)
	if len(e.recentErrs) > maxRecentErrors {
		e.recentErrs = e.recentErrs[len(e.recentErrs)-maxRecentErrors:]
	}
	e.mu.Unlock()
	e.logger.Warn("vendor_error",
		zap.String("op", rerr.Op),
		zap.Int("request_id", rerr.RequestID),
		zap.Int32("error_id", rerr.ErrorID),
		zap.String("message", rerr.Message),
	)
	e.pub.Broadcast("error", rerr)
}

func (e *Engine) frontConnected(side string) {
	e.push(side, "OnFrontConnected")
	e.setState(side, StateConnected)
	switch {
	case side == "md":
		e.mdLogin()
	case e.cfg.Authenticate:
		e.authenticate()
	default:
		e.traderLogin()
	}
}

func (e *Engine) frontDisconnected(side string, reason int) {
	e.push(side, "OnFrontDisconnected")
	e.logger.Warn("front_disconnected", zap.String("side", side), zap.String("reason", fmt.Sprintf("0x%04x", reason)))
	e.setState(side, StateDisconnected)
}

func (e *Engine) heartBeatWarning(side string, lapse int) {
	e.push(side, "OnHeartBeatWarning")
	e.logger.Warn("heartbeat_warning", zap.String("side", side), zap.Int("time_lapse", lapse))
}

func onMdRspUserLogin(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("md", "OnRspUserLogin", id, last, info); rerr != nil {
		return
	}
	if rsp := (*model.RspUserLoginField)(payload); rsp != nil {
		e.logger.Info("md_logged_in", zap.String("trading_day", model.Text(rsp.TradingDay[:])))
	}
	e.setState("md", StateLoggedIn)
	e.subscribe()
}

func onMdRspUserLogout(ud, _ unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("md", "OnRspUserLogout", id, last, info); rerr == nil {
		e.setState("md", StateConnected)
	}
}

func onRspSubMarketData(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	op, rerr := e.observe("md", "OnRspSubMarketData", id, last, info)
	if rerr != nil {
		return
	}
	if f := (*model.SpecificInstrumentField)(payload); f != nil {
		e.logger.Debug("subscription_confirmed", zap.String("op", op), zap.String("instrument", model.Text(f.InstrumentID[:])))
	}
}

func onRtnDepthMarketData(ud, payload unsafe.Pointer) {
	e := engineOf(ud)
	e.push("md", "OnRtnDepthMarketData")
	f := (*model.DepthMarketDataField)(payload)
	if f == nil {
		return
	}
	tick := tickFrom(f, time.Now())
	e.store.AddTick(tick)
	e.mu.Lock()
	e.counters.TickCount++
	e.counters.LastTickAt = tick.Time
	e.mu.Unlock()
	e.pub.Broadcast("tick", tick)
}

func onRspAuthenticate(ud, _ unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspAuthenticate", id, last, info); rerr != nil {
		return
	}
	e.setState("trader", StateAuthenticated)
	e.traderLogin()
}

func onTraderRspUserLogin(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspUserLogin", id, last, info); rerr != nil {
		return
	}
	rsp := (*model.RspUserLoginField)(payload)
	if rsp == nil {
		return
	}
	e.mu.Lock()
	e.tradingDay = model.Text(rsp.TradingDay[:])
	e.frontID = rsp.FrontID
	e.sessionID = rsp.SessionID
	e.orderRef = max(e.orderRef, parseOrderRef(model.Text(rsp.MaxOrderRef[:])))
	day, front, session := e.tradingDay, e.frontID, e.sessionID
	e.mu.Unlock()
	e.logger.Info("trader_logged_in",
		zap.String("trading_day", day),
		zap.Int32("front_id", front),
		zap.Int32("session_id", session),
	)
	e.setState("trader", StateLoggedIn)
	e.confirmSettlement()
}

func onTraderRspUserLogout(ud, _ unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspUserLogout", id, last, info); rerr == nil {
		e.setState("trader", StateConnected)
	}
}

func onRspSettlementInfoConfirm(ud, _ unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspSettlementInfoConfirm", id, last, info); rerr != nil {
		return
	}
	e.setState("trader", StateReady)
	e.enqueue("qry_trading_account", e.qryAccount)
	e.enqueue("qry_investor_position", e.qryPositions)
	e.enqueue("qry_order", e.qryOrders)
	e.enqueue("qry_trade", e.qryTrades)
	e.drain()
}

func onRspQryTradingAccount(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspQryTradingAccount", id, last, info); rerr != nil {
		return
	}
	if f := (*model.TradingAccountField)(payload); f != nil {
		acc := accountFrom(f, time.Now())
		e.store.SetAccount(acc)
		e.pub.Broadcast("account", acc)
	}
}

func onRspQryInvestorPosition(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	_, rerr := e.observe("trader", "OnRspQryInvestorPosition", id, last, info)

	e.mu.Lock()
	if f := (*model.InvestorPositionField)(payload); f != nil && rerr == nil {
		e.staged[id] = append(e.staged[id], positionFrom(f))
	}
	var rows []Position
	done := last == 1
	if done {
		rows = e.staged[id]
		delete(e.staged, id)
	}
	e.mu.Unlock()

	if done && rerr == nil {
		e.store.ReplacePositions(rows)
		e.pub.Broadcast("positions", e.store.GetPositions())
	}
}

func onRspQryOrder(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspQryOrder", id, last, info); rerr != nil {
		return
	}
	if f := (*model.OrderField)(payload); f != nil {
		e.store.UpsertOrder(orderFrom(f, time.Now()))
	}
}

func onRspQryTrade(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	if _, rerr := e.observe("trader", "OnRspQryTrade", id, last, info); rerr != nil {
		return
	}
	if f := (*model.TradeField)(payload); f != nil {
		e.store.AddTrade(tradeFrom(f))
	}
}

// onRspOrderInsert only arrives for rejected orders.
func onRspOrderInsert(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	_, rerr := e.observe("trader", "OnRspOrderInsert", id, last, info)
	f := (*model.InputOrderField)(payload)
	if rerr == nil || f == nil {
		return
	}
	e.mu.Lock()
	key := orderKey(e.frontID, e.sessionID, model.Text(f.OrderRef[:]))
	e.mu.Unlock()
	if e.store.MarkOrder(key, "rejected", rerr.Message) {
		if o, ok := e.store.GetOrder(key); ok {
			e.pub.Broadcast("order", o)
		}
	}
}

func onErrRtnOrderInsert(ud, payload unsafe.Pointer, info *model.RspInfoField) {
	e := engineOf(ud)
	e.push("trader", "OnErrRtnOrderInsert")
	if f := (*model.InputOrderField)(payload); f != nil {
		e.logger.Debug("order_insert_rejected",
			zap.String("order_ref", model.Text(f.OrderRef[:])),
			zap.String("message", info.Message()),
		)
	}
}

func onRspOrderAction(ud, payload unsafe.Pointer, info *model.RspInfoField, id, last int) {
	e := engineOf(ud)
	e.observe("trader", "OnRspOrderAction", id, last, info)
	f := (*model.InputOrderActionField)(payload)
	if f == nil {
		return
	}
	e.mu.Lock()
	delete(e.cancels, orderKey(f.FrontID, f.SessionID, model.Text(f.OrderRef[:])))
	e.mu.Unlock()
}

func onErrRtnOrderAction(ud, payload unsafe.Pointer, info *model.RspInfoField) {
	e := engineOf(ud)
	e.push("trader", "OnErrRtnOrderAction")
	if f := (*model.OrderActionField)(payload); f != nil {
		e.logger.Debug("order_action_rejected",
			zap.String("order_ref", model.Text(f.OrderRef[:])),
			zap.String("status_msg", model.Text(f.StatusMsg[:])),
		)
	}
}

// onRtnOrder also completes the insert or cancel request it answers: the
// vendor reports success of both through order pushes rather than responses.
func onRtnOrder(ud, payload unsafe.Pointer) {
	e := engineOf(ud)
	e.push("trader", "OnRtnOrder")
	f := (*model.OrderField)(payload)
	if f == nil {
		return
	}
	o := orderFrom(f, time.Now())
	e.store.UpsertOrder(o)

	if op, ok := e.corr.Op(int(f.RequestID)); ok && op == "order_insert" {
		e.complete(int(f.RequestID))
	}
	if o.Status == "canceled" {
		e.mu.Lock()
		id, ok := e.cancels[o.Key]
		delete(e.cancels, o.Key)
		e.mu.Unlock()
		if ok {
			e.complete(id)
		}
	}
	e.pub.Broadcast("order", o)
}

func (e *Engine) complete(requestID int) {
	if p, ok := e.corr.Observe(requestID, true); ok {
		e.metrics.ObserveLatency(time.Since(p.SentAt).Seconds())
		e.metrics.SetPending(e.corr.Len())
	}
}

func onRtnTrade(ud, payload unsafe.Pointer) {
	e := engineOf(ud)
	e.push("trader", "OnRtnTrade")
	f := (*model.TradeField)(payload)
	if f == nil {
		return
	}
	t := tradeFrom(f)
	if !e.store.AddTrade(t) {
		return
	}
	e.mu.Lock()
	e.counters.TradeCount++
	e.mu.Unlock()
	e.logger.Info("trade",
		zap.String("trade_id", t.TradeID),
		zap.String("instrument", t.InstrumentID),
		zap.String("direction", t.Direction),
		zap.Float64("price", t.Price),
		zap.Int32("volume", t.Volume),
	)
	e.pub.Broadcast("trade", t)
	e.enqueue("qry_trading_account", e.qryAccount)
	e.enqueue("qry_investor_position", e.qryPositions)
	e.drain()
}

func onRtnInstrumentStatus(ud, payload unsafe.Pointer) {
	e := engineOf(ud)
	e.push("trader", "OnRtnInstrumentStatus")
	if f := (*model.InstrumentStatusField)(payload); f != nil {
		st := instrumentStatusFrom(f)
		e.store.SetInstrumentStatus(st)
		e.pub.Broadcast("instrument_status", st)
	}
}
