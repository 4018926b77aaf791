package config

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wastecarbon-go/src/emission-input/components/calculators"
)

const (
	EnvLogLevel = "WASTECARBON_LOG_LEVEL"
	EnvDataDir  = "WASTECARBON_DATA_DIR"
)

const (
	DefaultDataDir              = "data"
	TransportationFileName      = "transportation.json"
	IncinerationFileName        = "incineration.json"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = LogFormatAuto
	DefaultServerAddr           = ":8080"
	DefaultServerRateLimit      = 50.0
	DefaultServerRateLimitBurst = 100
)

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// DataConfig locates the two coefficient documents.
type DataConfig struct {
	TransportationFile string `yaml:"transportation_file"`
	IncinerationFile   string `yaml:"incineration_file"`
}

type EngineConfig struct {
	// BlackCarbonPolicy is "override" or "additive".
	BlackCarbonPolicy string `yaml:"black_carbon_policy"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
	// TrustedProxies lists the peers, as IPs or CIDRs, whose X-Forwarded-For
	// and X-Real-IP headers name the client. Empty trusts no one.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare IP becomes a
// single-address prefix.
func (s ServerConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, entry := range s.TrustedProxies {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("config: server.trusted_proxies: %q is neither an IP nor a CIDR", entry)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Data: DataConfig{
			TransportationFile: filepath.Join(DefaultDataDir, TransportationFileName),
			IncinerationFile:   filepath.Join(DefaultDataDir, IncinerationFileName),
		},
		Engine: EngineConfig{
			BlackCarbonPolicy: string(calculators.BlackCarbonOverride),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			RateLimit: DefaultServerRateLimit,
			Burst:     DefaultServerRateLimitBurst,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.Data.TransportationFile = filepath.Join(dir, TransportationFileName)
		c.Data.IncinerationFile = filepath.Join(dir, IncinerationFileName)
	}
}

func (c *Config) Validate() error {
	if c.Data.TransportationFile == "" || c.Data.IncinerationFile == "" {
		return fmt.Errorf("config: both coefficient files must be set")
	}
	if _, err := calculators.ParseBlackCarbonPolicy(c.Engine.BlackCarbonPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Logging.Format {
	case "", LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config: server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst <= 0 {
		return fmt.Errorf("config: server.burst must be positive")
	}
	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}
