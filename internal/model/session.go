package model

// ReqAuthenticateField is the client authentication request sent before login.
type ReqAuthenticateField struct {
	BrokerID        [BrokerIDLen]byte
	UserID          [UserIDLen]byte
	UserProductInfo [ProductInfoLen]byte
	AuthCode        [AuthCodeLen]byte
	AppID           [AppIDLen]byte
}

// RspAuthenticateField answers ReqAuthenticateField.
type RspAuthenticateField struct {
	BrokerID        [BrokerIDLen]byte
	UserID          [UserIDLen]byte
	UserProductInfo [ProductInfoLen]byte
	AppID           [AppIDLen]byte
	AppType         byte
}

// ReqUserLoginField is the login request shared by the MD and Trader APIs.
type ReqUserLoginField struct {
	TradingDay           [DateLen]byte
	BrokerID             [BrokerIDLen]byte
	UserID               [UserIDLen]byte
	Password             [PasswordLen]byte
	UserProductInfo      [ProductInfoLen]byte
	InterfaceProductInfo [ProductInfoLen]byte
	ProtocolInfo         [ProtocolInfoLen]byte
	MacAddress           [MacAddressLen]byte
	OneTimePassword      [PasswordLen]byte
	LoginRemark          [LoginRemarkLen]byte
	ClientIPPort         int32
	ClientIPAddress      [IPAddressLen]byte
}

// RspUserLoginField answers a successful login.
type RspUserLoginField struct {
	TradingDay  [DateLen]byte
	LoginTime   [TimeLen]byte
	BrokerID    [BrokerIDLen]byte
	UserID      [UserIDLen]byte
	SystemName  [41]byte
	FrontID     int32
	SessionID   int32
	MaxOrderRef [OrderRefLen]byte
	SHFETime    [TimeLen]byte
	DCETime     [TimeLen]byte
	CZCETime    [TimeLen]byte
	FFEXTime    [TimeLen]byte
	INETime     [TimeLen]byte
}

// UserLogoutField is both the logout request and its response.
type UserLogoutField struct {
	BrokerID [BrokerIDLen]byte
	UserID   [UserIDLen]byte
}

// UserPasswordUpdateField changes the login password.
type UserPasswordUpdateField struct {
	BrokerID    [BrokerIDLen]byte
	UserID      [UserIDLen]byte
	OldPassword [PasswordLen]byte
	NewPassword [PasswordLen]byte
}

// TradingAccountPasswordUpdateField changes the funds account password.
type TradingAccountPasswordUpdateField struct {
	BrokerID    [BrokerIDLen]byte
	AccountID   [AccountIDLen]byte
	OldPassword [PasswordLen]byte
	NewPassword [PasswordLen]byte
	CurrencyID  [CurrencyIDLen]byte
}

// ReqUserAuthMethodField asks which second factors the user may log in with.
type ReqUserAuthMethodField struct {
	TradingDay [DateLen]byte
	BrokerID   [BrokerIDLen]byte
	UserID     [UserIDLen]byte
}

// RspUserAuthMethodField lists the usable authentication methods as a bit set.
type RspUserAuthMethodField struct {
	UsableAuthMethod int32
}

// ReqGenUserCaptchaField requests a graphic captcha.
type ReqGenUserCaptchaField struct {
	TradingDay [DateLen]byte
	BrokerID   [BrokerIDLen]byte
	UserID     [UserIDLen]byte
}

// RspGenUserCaptchaField carries the generated captcha image.
type RspGenUserCaptchaField struct {
	BrokerID       [BrokerIDLen]byte
	UserID         [UserIDLen]byte
	CaptchaInfoLen int32
	CaptchaInfo    [2561]byte
}

// ReqGenUserTextField requests an SMS verification code.
type ReqGenUserTextField struct {
	TradingDay [DateLen]byte
	BrokerID   [BrokerIDLen]byte
	UserID     [UserIDLen]byte
}

// RspGenUserTextField acknowledges an SMS verification code request.
type RspGenUserTextField struct {
	UserTextSeq int32
}

// ReqUserLoginWithCaptchaField logs in with a graphic captcha.
type ReqUserLoginWithCaptchaField struct {
	TradingDay      [DateLen]byte
	BrokerID        [BrokerIDLen]byte
	UserID          [UserIDLen]byte
	Password        [PasswordLen]byte
	UserProductInfo [ProductInfoLen]byte
	MacAddress      [MacAddressLen]byte
	LoginRemark     [LoginRemarkLen]byte
	Captcha         [CaptchaLen]byte
	ClientIPPort    int32
	ClientIPAddress [IPAddressLen]byte
}

// ReqUserLoginWithTextField logs in with an SMS verification code.
type ReqUserLoginWithTextField struct {
	TradingDay      [DateLen]byte
	BrokerID        [BrokerIDLen]byte
	UserID          [UserIDLen]byte
	Password        [PasswordLen]byte
	UserProductInfo [ProductInfoLen]byte
	MacAddress      [MacAddressLen]byte
	LoginRemark     [LoginRemarkLen]byte
	Text            [TextLen]byte
	ClientIPPort    int32
	ClientIPAddress [IPAddressLen]byte
}

// ReqUserLoginWithOTPField logs in with a one-time password.
type ReqUserLoginWithOTPField struct {
	TradingDay      [DateLen]byte
	BrokerID        [BrokerIDLen]byte
	UserID          [UserIDLen]byte
	Password        [PasswordLen]byte
	UserProductInfo [ProductInfoLen]byte
	MacAddress      [MacAddressLen]byte
	LoginRemark     [LoginRemarkLen]byte
	OTPPassword     [PasswordLen]byte
	ClientIPPort    int32
	ClientIPAddress [IPAddressLen]byte
}

// UserSystemInfoField reports terminal information collected by the client.
type UserSystemInfoField struct {
	BrokerID            [BrokerIDLen]byte
	UserID              [UserIDLen]byte
	ClientSystemInfoLen int32
	ClientSystemInfo    [ClientSysInfoLen]byte
	ClientIPPort        int32
	ClientLoginTime     [TimeLen]byte
	ClientAppID         [AppIDLen]byte
	ClientPublicIP      [IPAddressLen]byte
	ClientLoginRemark   [LoginRemarkLen]byte
}

// WechatUserSystemInfoField is the mini-program variant of UserSystemInfoField.
// Its leading fields share the generic record's layout.
type WechatUserSystemInfoField struct {
	BrokerID            [BrokerIDLen]byte
	UserID              [UserIDLen]byte
	WechatCltSysInfoLen int32
	WechatCltSysInfo    [ClientSysInfoLen]byte
	ClientIPPort        int32
	ClientLoginTime     [TimeLen]byte
	ClientAppID         [AppIDLen]byte
	ClientPublicIP      [IPAddressLen]byte
	ClientLoginRemark   [LoginRemarkLen]byte
}

// SettlementInfoConfirmField confirms the previous day's settlement statement.
type SettlementInfoConfirmField struct {
	BrokerID     [BrokerIDLen]byte
	InvestorID   [InvestorIDLen]byte
	ConfirmDate  [DateLen]byte
	ConfirmTime  [TimeLen]byte
	SettlementID int32
	AccountID    [AccountIDLen]byte
	CurrencyID   [CurrencyIDLen]byte
}
