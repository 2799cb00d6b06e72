package model

// DepthMarketDataField is the level-5 market data snapshot pushed for subscribed instruments.
type DepthMarketDataField struct {
	TradingDay         [DateLen]byte
	ExchangeID         [ExchangeIDLen]byte
	LastPrice          float64
	PreSettlementPrice float64
	PreClosePrice      float64
	PreOpenInterest    float64
	OpenPrice          float64
	HighestPrice       float64
	LowestPrice        float64
	Volume             int32
	Turnover           float64
	OpenInterest       float64
	ClosePrice         float64
	SettlementPrice    float64
	UpperLimitPrice    float64
	LowerLimitPrice    float64
	UpdateTime         [TimeLen]byte
	UpdateMillisec     int32
	BidPrice1          float64
	BidVolume1         int32
	AskPrice1          float64
	AskVolume1         int32
	BidPrice2          float64
	BidVolume2         int32
	AskPrice2          float64
	AskVolume2         int32
	BidPrice3          float64
	BidVolume3         int32
	AskPrice3          float64
	AskVolume3         int32
	BidPrice4          float64
	BidVolume4         int32
	AskPrice4          float64
	AskVolume4         int32
	BidPrice5          float64
	BidVolume5         int32
	AskPrice5          float64
	AskVolume5         int32
	AveragePrice       float64
	ActionDay          [DateLen]byte
	InstrumentID       [InstrumentIDLen]byte
	ExchangeInstID     [InstrumentIDLen]byte
	BandingUpperPrice  float64
	BandingLowerPrice  float64
}

// ForQuoteRspField is pushed when a counterparty requests a quote.
type ForQuoteRspField struct {
	TradingDay    [DateLen]byte
	ForQuoteSysID [ForQuoteSysIDLen]byte
	ForQuoteTime  [TimeLen]byte
	ActionDay     [DateLen]byte
	ExchangeID    [ExchangeIDLen]byte
	InstrumentID  [InstrumentIDLen]byte
}

// ExchangeField describes one exchange.
type ExchangeField struct {
	ExchangeID       [ExchangeIDLen]byte
	ExchangeName     [ExchangeNameLen]byte
	ExchangeProperty byte
}

// ProductField describes one product.
type ProductField struct {
	ProductName          [ProductNameLen]byte
	ExchangeID           [ExchangeIDLen]byte
	ProductClass         byte
	VolumeMultiple       int32
	PriceTick            float64
	MaxMarketOrderVolume int32
	MinMarketOrderVolume int32
	MaxLimitOrderVolume  int32
	MinLimitOrderVolume  int32
	ProductID            [ProductIDLen]byte
}

// InstrumentField describes one tradable instrument.
type InstrumentField struct {
	ExchangeID           [ExchangeIDLen]byte
	InstrumentName       [InstrumentIDLen]byte
	ProductClass         byte
	DeliveryYear         int32
	DeliveryMonth        int32
	MaxMarketOrderVolume int32
	MinMarketOrderVolume int32
	MaxLimitOrderVolume  int32
	MinLimitOrderVolume  int32
	VolumeMultiple       int32
	PriceTick            float64
	CreateDate           [DateLen]byte
	OpenDate             [DateLen]byte
	ExpireDate           [DateLen]byte
	IsTrading            int32
	LongMarginRatio      float64
	ShortMarginRatio     float64
	InstrumentID         [InstrumentIDLen]byte
	ExchangeInstID       [InstrumentIDLen]byte
	ProductID            [ProductIDLen]byte
}

// InstrumentMarginRateField is the margin rate of one instrument for an investor.
type InstrumentMarginRateField struct {
	BrokerID                 [BrokerIDLen]byte
	InvestorID               [InvestorIDLen]byte
	HedgeFlag                byte
	LongMarginRatioByMoney   float64
	LongMarginRatioByVolume  float64
	ShortMarginRatioByMoney  float64
	ShortMarginRatioByVolume float64
	IsRelative               int32
	ExchangeID               [ExchangeIDLen]byte
	InstrumentID             [InstrumentIDLen]byte
}

// InstrumentCommissionRateField is the commission rate of one instrument for an investor.
type InstrumentCommissionRateField struct {
	BrokerID                [BrokerIDLen]byte
	InvestorID              [InvestorIDLen]byte
	OpenRatioByMoney        float64
	OpenRatioByVolume       float64
	CloseRatioByMoney       float64
	CloseRatioByVolume      float64
	CloseTodayRatioByMoney  float64
	CloseTodayRatioByVolume float64
	ExchangeID              [ExchangeIDLen]byte
	InstrumentID            [InstrumentIDLen]byte
}
