// Package model defines the fixed-layout records exchanged with the trading SDK.
//
// Every record mirrors a vendor struct byte for byte: text fields are
// NUL-terminated GB18030 byte arrays and numeric fields use the vendor's
// widths. Records handed out by the vendor runtime are only valid for the
// duration of the callback that carries them.
package model

// Fixed text widths used by the vendor records, including the NUL terminator.
const (
	DateLen          = 9
	TimeLen          = 9
	BrokerIDLen      = 11
	InvestorIDLen    = 13
	UserIDLen        = 16
	PasswordLen      = 41
	InstrumentIDLen  = 81
	ExchangeIDLen    = 9
	ExchangeNameLen  = 61
	ProductIDLen     = 81
	ProductNameLen   = 21
	ProductInfoLen   = 11
	ProtocolInfoLen  = 11
	MacAddressLen    = 21
	IPAddressLen     = 33
	IPPortLen        = 6
	AppIDLen         = 33
	AuthCodeLen      = 17
	ErrorMsgLen      = 81
	OrderRefLen      = 13
	OrderSysIDLen    = 21
	OrderLocalIDLen  = 13
	TradeIDLen       = 21
	AccountIDLen     = 13
	CurrencyIDLen    = 4
	ClientIDLen      = 11
	TraderIDLen      = 21
	ParkedOrderIDLen = 13
	StatusMsgLen     = 81
	ContentLen       = 501
	BankIDLen        = 4
	BankBrchIDLen    = 5
	BankNameLen      = 101
	FrontAddrLen     = 101
	SystemInfoLen    = 273
	CaptchaLen       = 41
	TextLen          = 41
	ClientSysInfoLen = 273
	SequenceLabelLen = 2
	LoginRemarkLen   = 36
	ExecOrderRefLen  = 13
	QuoteRefLen      = 13
	ForQuoteSysIDLen = 21
	ActionRefLen     = 13
)

// Direction values.
const (
	DirectionBuy  byte = '0'
	DirectionSell byte = '1'
)

// Offset flag values.
const (
	OffsetOpen       byte = '0'
	OffsetClose      byte = '1'
	OffsetCloseToday byte = '3'
)

// Order price type values.
const (
	PriceTypeAnyPrice   byte = '1'
	PriceTypeLimitPrice byte = '2'
)

// Order condition values.
const (
	TimeConditionIOC      byte = '1'
	TimeConditionGFD      byte = '3'
	VolumeConditionAny    byte = '1'
	ContingentImmediately byte = '1'
	ForceCloseNotForce    byte = '0'
)

// Order status values.
const (
	OrderStatusAllTraded    byte = '0'
	OrderStatusPartTraded   byte = '1'
	OrderStatusNoTradeQueue byte = '3'
	OrderStatusCanceled     byte = '5'
	OrderStatusUnknown      byte = 'a'
)

// Order submit status values.
const (
	SubmitStatusInsertSubmitted byte = '0'
	SubmitStatusAccepted        byte = '3'
	SubmitStatusInsertRejected  byte = '4'
)

// Action flag values.
const (
	ActionFlagDelete byte = '0'
	ActionFlagModify byte = '3'
)

// Position direction values.
const (
	PosiDirectionNet   byte = '1'
	PosiDirectionLong  byte = '2'
	PosiDirectionShort byte = '3'
)

// Hedge flag values.
const (
	HedgeSpeculation byte = '1'
	HedgeArbitrage   byte = '2'
	HedgeHedge       byte = '3'
)

// ResumeType selects how private and public topic flows are replayed after login.
type ResumeType int32

const (
	ResumeRestart ResumeType = 0
	ResumeResume  ResumeType = 1
	ResumeQuick   ResumeType = 2
	ResumeNone    ResumeType = 3
)

// RspInfoField is the error record attached to responses. ErrorID zero means success.
type RspInfoField struct {
	ErrorID  int32
	ErrorMsg [ErrorMsgLen]byte
}

// OK reports whether the response carries no error. A nil record is a success.
func (r *RspInfoField) OK() bool {
	return r == nil || r.ErrorID == 0
}

// FrontInfoField describes the currently connected front.
type FrontInfoField struct {
	FrontAddr  [FrontAddrLen]byte
	QryFreq    int32
	FTDPkgFreq int32
}

// FensUserInfoField carries name-server login information.
type FensUserInfoField struct {
	BrokerID  [BrokerIDLen]byte
	UserID    [UserIDLen]byte
	LoginMode byte
}

// SpecificInstrumentField names one instrument in subscribe responses.
type SpecificInstrumentField struct {
	InstrumentID [InstrumentIDLen]byte
}

// InstrumentStatusField is pushed when an instrument's trading phase changes.
type InstrumentStatusField struct {
	ExchangeID       [ExchangeIDLen]byte
	InstrumentID     [InstrumentIDLen]byte
	InstrumentStatus byte
	TradingSegmentSN int32
	EnterTime        [TimeLen]byte
	EnterReason      byte
}
