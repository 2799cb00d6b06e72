// Package sim is an in-process stand-in for the vendor trading runtime.
//
// It implements the internal/sdk contract for both platform method sets so
// the flat API, the bridge and the engine can run without the vendor
// libraries. Like the real runtime it owns its goroutines: every API object
// has one ordered dispatcher for responses and lifecycle events, and MD
// objects have a separate feed goroutine for market data pushes. Records
// passed to an SPI are scrubbed once the callback returns.
package sim

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Error ids reported in RspInfoField by the simulator.
const (
	ErrInvalidLogin      = 3
	ErrInvalidField      = 15
	ErrInstrumentUnknown = 16
	ErrNotLoggedIn       = 24
	ErrOrderNotFound     = 25
	ErrOrderNotWorking   = 26
	ErrCloseExceedsPos   = 30
	ErrAuthFailed        = 63
)

// Disconnect reasons passed to OnFrontDisconnected.
const (
	ReasonReadFailed       = 0x1001
	ReasonWriteFailed      = 0x1002
	ReasonHeartBeatTimeout = 0x2001
)

// Instrument is one simulated contract.
type Instrument struct {
	ID             string  `yaml:"id"`
	ExchangeID     string  `yaml:"exchange"`
	ProductID      string  `yaml:"product"`
	PriceTick      float64 `yaml:"priceTick"`
	VolumeMultiple int     `yaml:"volumeMultiple"`
	LastPrice      float64 `yaml:"lastPrice"`
	MarginRatio    float64 `yaml:"marginRatio"`
}

// Config controls the simulated runtime.
type Config struct {
	TradingDay  string       `yaml:"tradingDay"`
	Instruments []Instrument `yaml:"instruments"`
	// Users maps user id to password. An empty map accepts any login.
	Users          map[string]string `yaml:"users"`
	AppID          string            `yaml:"appId"`
	AuthCode       string            `yaml:"authCode"`
	InitialBalance float64           `yaml:"initialBalance"`

	ConnectDelay      time.Duration `yaml:"connectDelay"`
	TickInterval      time.Duration `yaml:"tickInterval"`
	ReconnectInterval time.Duration `yaml:"reconnectInterval"`
	ReconnectFailures int           `yaml:"reconnectFailures"`
	HeartBeatLapse    int           `yaml:"heartbeatLapse"`

	// QueryRate and QueryBurst throttle ReqQry* calls. Exceeding the rate
	// returns sdk.CodeRateExceeded.
	QueryRate  float64 `yaml:"queryRate"`
	QueryBurst int     `yaml:"queryBurst"`
	// MaxPending bounds the dispatcher queue. A full queue returns
	// sdk.CodeTooManyPending.
	MaxPending int `yaml:"maxPending"`

	Logger *zap.Logger `yaml:"-"`
}

// DefaultInstruments is used when Config.Instruments is empty.
var DefaultInstruments = []Instrument{
	{ID: "rb2501", ExchangeID: "SHFE", ProductID: "rb", PriceTick: 1, VolumeMultiple: 10, LastPrice: 3500, MarginRatio: 0.1},
	{ID: "au2502", ExchangeID: "SHFE", ProductID: "au", PriceTick: 0.02, VolumeMultiple: 1000, LastPrice: 620, MarginRatio: 0.08},
	{ID: "IF2412", ExchangeID: "CFFEX", ProductID: "IF", PriceTick: 0.2, VolumeMultiple: 300, LastPrice: 3900, MarginRatio: 0.12},
}

func (c *Config) setDefaults() {
	if c.TradingDay == "" {
		c.TradingDay = time.Now().Format("20060102")
	}
	if len(c.Instruments) == 0 {
		c.Instruments = DefaultInstruments
	}
	if c.InitialBalance == 0 {
		c.InitialBalance = 1_000_000
	}
	if c.ReconnectInterval == 0 {
		c.ReconnectInterval = 50 * time.Millisecond
	}
	if c.HeartBeatLapse == 0 {
		c.HeartBeatLapse = 30
	}
	if c.QueryRate == 0 {
		c.QueryRate = 50
	}
	if c.QueryBurst == 0 {
		c.QueryBurst = int(c.QueryRate)
	}
	if c.MaxPending == 0 {
		c.MaxPending = 1024
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

func (c *Config) limiter() *rate.Limiter {
	if c.QueryRate < 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(c.QueryRate), max(c.QueryBurst, 1))
}
