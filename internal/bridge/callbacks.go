// Package bridge adapts the vendor SPI interfaces to flat callback tables.
//
// A table is a struct of optional funcs plus one caller-owned UserData
// pointer passed back as the first argument of every call. Adapters copy the
// table at construction and never change it, so dispatch needs no locking.
// Payload pointers handed to a callback point at vendor-owned records that
// are only valid until the callback returns.
package bridge

import (
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-ctp/internal/model"
)

// Callback signatures. isLast is 1 on the final response of a request and 0 otherwise.
type (
	FrontConnectedFunc    func(userData unsafe.Pointer)
	FrontDisconnectedFunc func(userData unsafe.Pointer, reason int)
	HeartBeatWarningFunc  func(userData unsafe.Pointer, timeLapse int)
	RspFunc               func(userData, payload unsafe.Pointer, info *model.RspInfoField, requestID, isLast int)
	RspErrorFunc          func(userData unsafe.Pointer, info *model.RspInfoField, requestID, isLast int)
	RtnFunc               func(userData, payload unsafe.Pointer)
	ErrRtnFunc            func(userData, payload unsafe.Pointer, info *model.RspInfoField)
)

// Option configures an adapter.
type Option func(*tracer)

// WithLogger enables debug tracing of every dispatched event.
func WithLogger(l *zap.Logger) Option {
	return func(t *tracer) {
		if l != nil {
			t.log = l
		}
	}
}

type tracer struct {
	log  *zap.Logger
	side string
}

func newTracer(side string, opts []Option) tracer {
	t := tracer{log: zap.NewNop(), side: side}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func (t tracer) rsp(event string, requestID int, isLast, observed bool) {
	if ce := t.log.Check(zapcore.DebugLevel, "spi_event"); ce != nil {
		ce.Write(
			zap.String("side", t.side),
			zap.String("event", event),
			zap.Int("request_id", requestID),
			zap.Bool("is_last", isLast),
			zap.Bool("observed", observed),
		)
	}
}

func (t tracer) push(event string, observed bool) {
	if ce := t.log.Check(zapcore.DebugLevel, "spi_event"); ce != nil {
		ce.Write(
			zap.String("side", t.side),
			zap.String("event", event),
			zap.Bool("observed", observed),
		)
	}
}

func lastFlag(isLast bool) int {
	if isLast {
		return 1
	}
	return 0
}
