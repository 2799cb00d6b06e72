package model

// Query request records. Empty filter fields match everything.

type QryOrderField struct {
	BrokerID        [BrokerIDLen]byte
	InvestorID      [InvestorIDLen]byte
	ExchangeID      [ExchangeIDLen]byte
	OrderSysID      [OrderSysIDLen]byte
	InsertTimeStart [TimeLen]byte
	InsertTimeEnd   [TimeLen]byte
	InstrumentID    [InstrumentIDLen]byte
}

type QryTradeField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	ExchangeID     [ExchangeIDLen]byte
	TradeID        [TradeIDLen]byte
	TradeTimeStart [TimeLen]byte
	TradeTimeEnd   [TimeLen]byte
	InstrumentID   [InstrumentIDLen]byte
}

type QryInvestorPositionField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

type QryInvestorPositionDetailField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

type QryTradingAccountField struct {
	BrokerID   [BrokerIDLen]byte
	InvestorID [InvestorIDLen]byte
	CurrencyID [CurrencyIDLen]byte
	BizType    byte
	AccountID  [AccountIDLen]byte
}

type QryInvestorField struct {
	BrokerID   [BrokerIDLen]byte
	InvestorID [InvestorIDLen]byte
}

type QryTradingCodeField struct {
	BrokerID   [BrokerIDLen]byte
	InvestorID [InvestorIDLen]byte
	ExchangeID [ExchangeIDLen]byte
	ClientID   [ClientIDLen]byte
}

type QryInstrumentMarginRateField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	HedgeFlag    byte
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

type QryInstrumentCommissionRateField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

type QryExchangeField struct {
	ExchangeID [ExchangeIDLen]byte
}

type QryProductField struct {
	ProductClass byte
	ExchangeID   [ExchangeIDLen]byte
	ProductID    [ProductIDLen]byte
}

type QryInstrumentField struct {
	ExchangeID     [ExchangeIDLen]byte
	InstrumentID   [InstrumentIDLen]byte
	ExchangeInstID [InstrumentIDLen]byte
	ProductID      [ProductIDLen]byte
}

type QryDepthMarketDataField struct {
	ExchangeID   [ExchangeIDLen]byte
	InstrumentID [InstrumentIDLen]byte
}

type QrySettlementInfoField struct {
	BrokerID   [BrokerIDLen]byte
	InvestorID [InvestorIDLen]byte
	TradingDay [DateLen]byte
	AccountID  [AccountIDLen]byte
	CurrencyID [CurrencyIDLen]byte
}

type QryTransferBankField struct {
	BankID     [BankIDLen]byte
	BankBrchID [BankBrchIDLen]byte
}

type QryNoticeField struct {
	BrokerID [BrokerIDLen]byte
}

// TradingAccountField is the funds summary of one account.
type TradingAccountField struct {
	BrokerID       [BrokerIDLen]byte
	AccountID      [AccountIDLen]byte
	PreBalance     float64
	Deposit        float64
	Withdraw       float64
	FrozenMargin   float64
	FrozenCash     float64
	CurrMargin     float64
	Commission     float64
	CloseProfit    float64
	PositionProfit float64
	Balance        float64
	Available      float64
	WithdrawQuota  float64
	TradingDay     [DateLen]byte
	SettlementID   int32
	CurrencyID     [CurrencyIDLen]byte
}

// InvestorPositionField is an aggregated position per instrument, direction and hedge flag.
type InvestorPositionField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	PosiDirection  byte
	HedgeFlag      byte
	PositionDate   byte
	YdPosition     int32
	Position       int32
	LongFrozen     int32
	ShortFrozen    int32
	OpenVolume     int32
	CloseVolume    int32
	PositionCost   float64
	UseMargin      float64
	CloseProfit    float64
	PositionProfit float64
	OpenCost       float64
	TodayPosition  int32
	TradingDay     [DateLen]byte
	SettlementID   int32
	ExchangeID     [ExchangeIDLen]byte
	InstrumentID   [InstrumentIDLen]byte
}

// InvestorPositionDetailField is one open lot.
type InvestorPositionDetailField struct {
	BrokerID       [BrokerIDLen]byte
	InvestorID     [InvestorIDLen]byte
	HedgeFlag      byte
	Direction      byte
	OpenDate       [DateLen]byte
	TradeID        [TradeIDLen]byte
	Volume         int32
	OpenPrice      float64
	TradingDay     [DateLen]byte
	SettlementID   int32
	TradeType      byte
	ExchangeID     [ExchangeIDLen]byte
	CloseProfit    float64
	PositionProfit float64
	Margin         float64
	InstrumentID   [InstrumentIDLen]byte
}

// InvestorField describes the investor behind a login.
type InvestorField struct {
	InvestorID         [InvestorIDLen]byte
	BrokerID           [BrokerIDLen]byte
	InvestorGroupID    [InvestorIDLen]byte
	InvestorName       [81]byte
	IdentifiedCardType byte
	IdentifiedCardNo   [51]byte
	IsActive           int32
	Telephone          [41]byte
	Address            [101]byte
	OpenDate           [DateLen]byte
	Mobile             [41]byte
}

// TradingCodeField maps an investor to an exchange client id.
type TradingCodeField struct {
	InvestorID   [InvestorIDLen]byte
	BrokerID     [BrokerIDLen]byte
	ExchangeID   [ExchangeIDLen]byte
	ClientID     [ClientIDLen]byte
	IsActive     int32
	ClientIDType byte
}

// SettlementInfoField is one chunk of the daily settlement statement.
type SettlementInfoField struct {
	TradingDay   [DateLen]byte
	SettlementID int32
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	SequenceNo   int32
	Content      [ContentLen]byte
	AccountID    [AccountIDLen]byte
	CurrencyID   [CurrencyIDLen]byte
}

// TransferBankField describes a bank available for transfers.
type TransferBankField struct {
	BankID     [BankIDLen]byte
	BankBrchID [BankBrchIDLen]byte
	BankName   [BankNameLen]byte
	IsActive   int32
}

// NoticeField is a broker notice.
type NoticeField struct {
	BrokerID      [BrokerIDLen]byte
	Content       [ContentLen]byte
	SequenceLabel [SequenceLabelLen]byte
}
