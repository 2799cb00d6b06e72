// Package config handles loading go-ctp configuration from a YAML file and
// the CTP_ environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go-ctp/internal/logging"
	"go-ctp/internal/shim"
	"go-ctp/internal/sim"
)

// ErrMissing reports a required setting that neither the file nor the
// environment provides.
var ErrMissing = errors.New("missing required setting")

// Config is the root configuration structure.
type Config struct {
	App    AppConfig      `yaml:"app"`
	Log    logging.Config `yaml:"log"`
	CTP    CTPConfig      `yaml:"ctp"`
	Sim    sim.Config     `yaml:"sim"`
	Engine EngineConfig   `yaml:"engine"`
	API    APIConfig      `yaml:"api"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	// Platform selects the vendor method set: linux or darwin. Empty means
	// the build target's.
	Platform string `yaml:"platform"`
	// WechatPolicy is substitute or reject.
	WechatPolicy string `yaml:"wechatPolicy"`
	BridgeTrace  bool   `yaml:"bridgeTrace"`
}

// CTPConfig holds the session parameters, mirroring the variables the
// vendor samples read from the environment.
type CTPConfig struct {
	MdFronts     []string `yaml:"mdFronts"`
	TraderFronts []string `yaml:"traderFronts"`
	BrokerID     string   `yaml:"brokerId"`
	InvestorID   string   `yaml:"investorId"`
	Password     string   `yaml:"password"`
	FlowPath     string   `yaml:"flowPath"`
	Instruments  []string `yaml:"instruments"`
	AppID        string   `yaml:"appId"`
	AuthCode     string   `yaml:"authCode"`
	ProductInfo  string   `yaml:"productInfo"`
	Production   bool     `yaml:"production"`
}

// EngineConfig holds request correlation settings.
type EngineConfig struct {
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	SweepInterval  time.Duration `yaml:"sweepInterval"`
	TickHistory    int           `yaml:"tickHistory"`
	EventBuffer    int           `yaml:"eventBuffer"`
}

// APIConfig holds monitoring server settings.
type APIConfig struct {
	ListenAddress string `yaml:"listenAddress"`
}

// Load reads the YAML file at path, when path is not empty, then applies
// CTP_ environment overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if err := cfg.setDefaults(); err != nil {
		return nil, fmt.Errorf("setting config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKeys are read as CTP_<KEY> and override the file.
var envKeys = []string{
	"md_front_address",
	"trader_front_address",
	"broker_id",
	"investor_id",
	"password",
	"flow_path",
	"instruments",
	"app_id",
	"auth_code",
	"product_info",
	"production",
	"platform",
	"wechat_policy",
	"log_level",
	"log_file",
	"listen_address",
}

func (c *Config) applyEnv() error {
	v := viper.New()
	v.SetEnvPrefix("CTP")
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	list := func(key string, dst *[]string) {
		if v.IsSet(key) {
			*dst = splitList(v.GetString(key))
		}
	}

	list("md_front_address", &c.CTP.MdFronts)
	list("trader_front_address", &c.CTP.TraderFronts)
	str("broker_id", &c.CTP.BrokerID)
	str("investor_id", &c.CTP.InvestorID)
	str("password", &c.CTP.Password)
	str("flow_path", &c.CTP.FlowPath)
	list("instruments", &c.CTP.Instruments)
	str("app_id", &c.CTP.AppID)
	str("auth_code", &c.CTP.AuthCode)
	str("product_info", &c.CTP.ProductInfo)
	if v.IsSet("production") {
		c.CTP.Production = v.GetBool("production")
	}
	str("platform", &c.App.Platform)
	str("wechat_policy", &c.App.WechatPolicy)
	str("log_level", &c.Log.Level)
	str("log_file", &c.Log.LogFilePath)
	str("listen_address", &c.API.ListenAddress)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setDefaults applies sensible defaults for optional fields.
func (c *Config) setDefaults() error {
	if c.App.Platform == "" {
		c.App.Platform = shim.Native()
	}
	if c.App.WechatPolicy == "" {
		c.App.WechatPolicy = string(shim.PolicySubstitute)
	}
	if !c.Log.EnableDebug && c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxFileSizeMB == 0 {
		c.Log.MaxFileSizeMB = 50
	}
	if c.Log.MaxBackupFiles == 0 {
		c.Log.MaxBackupFiles = 10
	}
	if len(c.CTP.MdFronts) == 0 {
		c.CTP.MdFronts = []string{"tcp://127.0.0.1:20004"}
	}
	if len(c.CTP.TraderFronts) == 0 {
		c.CTP.TraderFronts = []string{"tcp://127.0.0.1:20002"}
	}
	if c.CTP.BrokerID == "" {
		c.CTP.BrokerID = "9999"
	}
	if c.CTP.FlowPath == "" {
		c.CTP.FlowPath = "./flow"
	}
	if len(c.CTP.Instruments) == 0 {
		c.CTP.Instruments = []string{"rb2501"}
	}
	if c.Sim.AppID == "" {
		c.Sim.AppID = c.CTP.AppID
		c.Sim.AuthCode = c.CTP.AuthCode
	}
	if c.Engine.RequestTimeout == 0 {
		c.Engine.RequestTimeout = 10 * time.Second
	}
	if c.Engine.SweepInterval == 0 {
		c.Engine.SweepInterval = time.Second
	}
	if c.Engine.TickHistory == 0 {
		c.Engine.TickHistory = 256
	}
	if c.Engine.EventBuffer == 0 {
		c.Engine.EventBuffer = 1024
	}
	if c.API.ListenAddress == "" {
		c.API.ListenAddress = ":8080"
	}
	return nil
}

// Validate checks the settings Load cannot default.
func (c *Config) Validate() error {
	if c.CTP.InvestorID == "" {
		return fmt.Errorf("ctp.investorId (CTP_INVESTOR_ID): %w", ErrMissing)
	}
	if c.CTP.Password == "" {
		return fmt.Errorf("ctp.password (CTP_PASSWORD): %w", ErrMissing)
	}
	switch c.App.Platform {
	case shim.Linux, shim.Darwin:
	default:
		return fmt.Errorf("app.platform: unknown platform %q", c.App.Platform)
	}
	switch shim.Policy(c.App.WechatPolicy) {
	case shim.PolicySubstitute, shim.PolicyReject:
	default:
		return fmt.Errorf("app.wechatPolicy: unknown policy %q", c.App.WechatPolicy)
	}
	return nil
}
