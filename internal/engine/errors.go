package engine

import (
	"errors"
	"fmt"
	"time"

	"go-ctp/internal/model"
)

var (
	// ErrNotReady is returned for trading calls made before the trader
	// session has logged in and confirmed settlement.
	ErrNotReady = errors.New("engine: trader session not ready")
	// ErrUnknownOrder is returned when a cancel names an order the store has never seen.
	ErrUnknownOrder = errors.New("engine: unknown order")
	// ErrInvalidOrder is returned for an order request that fails local validation.
	ErrInvalidOrder = errors.New("engine: invalid order request")
)

// RspError is a protocol error reported by the vendor for one request.
type RspError struct {
	Op        string    `json:"op"`
	RequestID int       `json:"requestId"`
	ErrorID   int32     `json:"errorId"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

func (e *RspError) Error() string {
	return fmt.Sprintf("%s (request %d): vendor error %d: %s", e.Op, e.RequestID, e.ErrorID, e.Message)
}

// rspError converts info into an RspError, or returns nil when info reports success.
func rspError(op string, requestID int, info *model.RspInfoField) *RspError {
	if info.OK() {
		return nil
	}
	return &RspError{
		Op:        op,
		RequestID: requestID,
		ErrorID:   info.ErrorID,
		Message:   info.Message(),
		Time:      time.Now(),
	}
}

// SubmitError reports a request that never reached the vendor, carrying
// the vendor or flat status code.
type SubmitError struct {
	Op   string
	Code int
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: submit failed with code %d", e.Op, e.Code)
}
