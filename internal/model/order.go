package model

// InputOrderField is the order insert request.
type InputOrderField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	OrderRef            [OrderRefLen]byte
	UserID              [UserIDLen]byte
	OrderPriceType      byte
	Direction           byte
	CombOffsetFlag      [5]byte
	CombHedgeFlag       [5]byte
	LimitPrice          float64
	VolumeTotalOriginal int32
	TimeCondition       byte
	GTDDate             [DateLen]byte
	VolumeCondition     byte
	MinVolume           int32
	ContingentCondition byte
	StopPrice           float64
	ForceCloseReason    byte
	IsAutoSuspend       int32
	BusinessUnit        [21]byte
	RequestID           int32
	UserForceClose      int32
	IsSwapOrder         int32
	ExchangeID          [ExchangeIDLen]byte
	InvestUnitID        [17]byte
	AccountID           [AccountIDLen]byte
	CurrencyID          [CurrencyIDLen]byte
	ClientID            [ClientIDLen]byte
	MacAddress          [MacAddressLen]byte
	InstrumentID        [InstrumentIDLen]byte
	IPAddress           [IPAddressLen]byte
}

// InputOrderActionField cancels or modifies a working order.
type InputOrderActionField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	OrderActionRef int32
	OrderRef       [OrderRefLen]byte
	RequestID      int32
	FrontID        int32
	SessionID      int32
	ExchangeID     [ExchangeIDLen]byte
	OrderSysID     [OrderSysIDLen]byte
	ActionFlag     byte
	LimitPrice     float64
	VolumeChange   int32
	UserID         [UserIDLen]byte
	InvestUnitID   [17]byte
	MacAddress     [MacAddressLen]byte
	InstrumentID   [InstrumentIDLen]byte
	IPAddress      [IPAddressLen]byte
}

// OrderField is the exchange-side order state pushed on every change.
type OrderField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	OrderRef            [OrderRefLen]byte
	UserID              [UserIDLen]byte
	OrderPriceType      byte
	Direction           byte
	CombOffsetFlag      [5]byte
	CombHedgeFlag       [5]byte
	LimitPrice          float64
	VolumeTotalOriginal int32
	TimeCondition       byte
	VolumeCondition     byte
	MinVolume           int32
	RequestID           int32
	OrderLocalID        [OrderLocalIDLen]byte
	ExchangeID          [ExchangeIDLen]byte
	ClientID            [ClientIDLen]byte
	OrderSubmitStatus   byte
	TradingDay          [DateLen]byte
	SettlementID        int32
	OrderSysID          [OrderSysIDLen]byte
	OrderSource         byte
	OrderStatus         byte
	OrderType           byte
	VolumeTraded        int32
	VolumeTotal         int32
	InsertDate          [DateLen]byte
	InsertTime          [TimeLen]byte
	CancelTime          [TimeLen]byte
	SequenceNo          int32
	FrontID             int32
	SessionID           int32
	StatusMsg           [StatusMsgLen]byte
	BrokerOrderSeq      int32
	InstrumentID        [InstrumentIDLen]byte
}

// OrderActionField is pushed when an order action fails at the exchange.
type OrderActionField struct {
	BrokerID          [BrokerIDLen]byte
	InvestorID        [InvestorIDLen]byte
	OrderActionRef    int32
	OrderRef          [OrderRefLen]byte
	RequestID         int32
	FrontID           int32
	SessionID         int32
	ExchangeID        [ExchangeIDLen]byte
	OrderSysID        [OrderSysIDLen]byte
	ActionFlag        byte
	LimitPrice        float64
	VolumeChange      int32
	ActionDate        [DateLen]byte
	ActionTime        [TimeLen]byte
	OrderActionStatus byte
	UserID            [UserIDLen]byte
	StatusMsg         [StatusMsgLen]byte
	InstrumentID      [InstrumentIDLen]byte
}

// TradeField is one fill.
type TradeField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	OrderRef       [OrderRefLen]byte
	UserID         [UserIDLen]byte
	ExchangeID     [ExchangeIDLen]byte
	TradeID        [TradeIDLen]byte
	Direction      byte
	OrderSysID     [OrderSysIDLen]byte
	OffsetFlag     byte
	HedgeFlag      byte
	Price          float64
	Volume         int32
	TradeDate      [DateLen]byte
	TradeTime      [TimeLen]byte
	TradingDay     [DateLen]byte
	SettlementID   int32
	BrokerOrderSeq int32
	InstrumentID   [InstrumentIDLen]byte
}

// ParkedOrderField is an order held by the broker until a trigger fires.
type ParkedOrderField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	OrderRef            [OrderRefLen]byte
	UserID              [UserIDLen]byte
	OrderPriceType      byte
	Direction           byte
	CombOffsetFlag      [5]byte
	CombHedgeFlag       [5]byte
	LimitPrice          float64
	VolumeTotalOriginal int32
	TimeCondition       byte
	VolumeCondition     byte
	MinVolume           int32
	ContingentCondition byte
	StopPrice           float64
	RequestID           int32
	ExchangeID          [ExchangeIDLen]byte
	ParkedOrderID       [ParkedOrderIDLen]byte
	Status              byte
	ErrorID             int32
	ErrorMsg            [ErrorMsgLen]byte
	InstrumentID        [InstrumentIDLen]byte
}

// ParkedOrderActionField is a cancel held by the broker until a trigger fires.
type ParkedOrderActionField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	OrderActionRef      int32
	OrderRef            [OrderRefLen]byte
	RequestID           int32
	FrontID             int32
	SessionID           int32
	ExchangeID          [ExchangeIDLen]byte
	OrderSysID          [OrderSysIDLen]byte
	ActionFlag          byte
	LimitPrice          float64
	VolumeChange        int32
	UserID              [UserIDLen]byte
	ParkedOrderActionID [ParkedOrderIDLen]byte
	Status              byte
	ErrorID             int32
	ErrorMsg            [ErrorMsgLen]byte
	InstrumentID        [InstrumentIDLen]byte
}

// RemoveParkedOrderField deletes a parked order.
type RemoveParkedOrderField struct {
	BrokerID      [BrokerIDLen]byte
	InvestorID    [InvestorIDLen]byte
	ParkedOrderID [ParkedOrderIDLen]byte
	InvestUnitID  [17]byte
}

// RemoveParkedOrderActionField deletes a parked order action.
type RemoveParkedOrderActionField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	ParkedOrderActionID [ParkedOrderIDLen]byte
	InvestUnitID        [17]byte
}

// InputExecOrderField requests option exercise.
type InputExecOrderField struct {
	BrokerID            [BrokerIDLen]byte
	InvestorID          [InvestorIDLen]byte
	ExecOrderRef        [ExecOrderRefLen]byte
	UserID              [UserIDLen]byte
	Volume              int32
	RequestID           int32
	OffsetFlag          byte
	HedgeFlag           byte
	ActionType          byte
	PosiDirection       byte
	ReservePositionFlag byte
	CloseFlag           byte
	ExchangeID          [ExchangeIDLen]byte
	InstrumentID        [InstrumentIDLen]byte
}

// InputExecOrderActionField cancels an exercise request.
type InputExecOrderActionField struct {
	BrokerID           [BrokerIDLen]byte
	InvestorID         [InvestorIDLen]byte
	ExecOrderActionRef int32
	ExecOrderRef       [ExecOrderRefLen]byte
	RequestID          int32
	FrontID            int32
	SessionID          int32
	ExchangeID         [ExchangeIDLen]byte
	ExecOrderSysID     [OrderSysIDLen]byte
	ActionFlag         byte
	UserID             [UserIDLen]byte
	InstrumentID       [InstrumentIDLen]byte
}

// InputForQuoteField asks market makers for a quote.
type InputForQuoteField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	ForQuoteRef  [OrderRefLen]byte
	UserID       [UserIDLen]byte
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

// InputQuoteField is a two-sided market maker quote.
type InputQuoteField struct {
	BrokerID      [BrokerIDLen]byte
	InvestorID    [InvestorIDLen]byte
	QuoteRef      [QuoteRefLen]byte
	UserID        [UserIDLen]byte
	AskPrice      float64
	BidPrice      float64
	AskVolume     int32
	BidVolume     int32
	RequestID     int32
	BusinessUnit  [21]byte
	AskOffsetFlag byte
	BidOffsetFlag byte
	AskHedgeFlag  byte
	BidHedgeFlag  byte
	AskOrderRef   [OrderRefLen]byte
	BidOrderRef   [OrderRefLen]byte
	ForQuoteSysID [ForQuoteSysIDLen]byte
	ExchangeID    [ExchangeIDLen]byte
	InstrumentID  [InstrumentIDLen]byte
}

// InputQuoteActionField cancels a quote.
type InputQuoteActionField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	QuoteActionRef int32
	QuoteRef       [QuoteRefLen]byte
	RequestID      int32
	FrontID        int32
	SessionID      int32
	ExchangeID     [ExchangeIDLen]byte
	QuoteSysID     [OrderSysIDLen]byte
	ActionFlag     byte
	UserID         [UserIDLen]byte
	InstrumentID   [InstrumentIDLen]byte
}

// InputBatchOrderActionField cancels every order of a session in one request.
type InputBatchOrderActionField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	OrderActionRef int32
	RequestID      int32
	FrontID        int32
	SessionID      int32
	ExchangeID     [ExchangeIDLen]byte
	UserID         [UserIDLen]byte
}

// InputOptionSelfCloseField requests self-close handling for option positions.
type InputOptionSelfCloseField struct {
	BrokerID           [BrokerIDLen]byte
	InvestorID         [InvestorIDLen]byte
	OptionSelfCloseRef [OrderRefLen]byte
	UserID             [UserIDLen]byte
	Volume             int32
	RequestID          int32
	HedgeFlag          byte
	OptSelfCloseFlag   byte
	ExchangeID         [ExchangeIDLen]byte
	InstrumentID       [InstrumentIDLen]byte
}

// InputOptionSelfCloseActionField cancels a self-close request.
type InputOptionSelfCloseActionField struct {
	BrokerID                 [BrokerIDLen]byte
	InvestorID               [InvestorIDLen]byte
	OptionSelfCloseActionRef int32
	OptionSelfCloseRef       [OrderRefLen]byte
	RequestID                int32
	FrontID                  int32
	SessionID                int32
	ExchangeID               [ExchangeIDLen]byte
	OptionSelfCloseSysID     [OrderSysIDLen]byte
	ActionFlag               byte
	UserID                   [UserIDLen]byte
	InstrumentID             [InstrumentIDLen]byte
}

// InputCombActionField requests a combination or split of positions.
type InputCombActionField struct {
	BrokerID      [BrokerIDLen]byte
	InvestorID    [InvestorIDLen]byte
	CombActionRef [OrderRefLen]byte
	UserID        [UserIDLen]byte
	Direction     byte
	Volume        int32
	CombDirection byte
	HedgeFlag     byte
	ExchangeID    [ExchangeIDLen]byte
	InstrumentID  [InstrumentIDLen]byte
}

// QryMaxOrderVolumeField asks for, and answers with, the largest order volume allowed.
type QryMaxOrderVolumeField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	Direction    byte
	OffsetFlag   byte
	HedgeFlag    byte
	MaxVolume    int32
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}
