package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix = "IPMICTL"
	DefaultLogLevel  = LogLevelWarning
	DefaultRefresh   = time.Second
	DefaultJournalDB = "/var/lib/ipmictl/journal.db"

	configName = "ipmictl"
	configType = "toml"
)

type Config struct {
	Host      string        `mapstructure:"host" validate:"required,hostname_rfc1123|ip"`
	Username  string        `mapstructure:"username" validate:"required"`
	Password  string        `mapstructure:"password"`
	Interface string        `mapstructure:"interface" validate:"oneof=lan lanplus"`
	Binary    string        `mapstructure:"binary" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Refresh   time.Duration `mapstructure:"refresh" validate:"gte=0"`
	LogLevel  string        `mapstructure:"log_level"`
	Journal   bool          `mapstructure:"journal"`
	JournalDB string        `mapstructure:"journal_db" validate:"required_if=Journal true"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"host":       "host",
	"username":   "username",
	"password":   "password",
	"interface":  "interface",
	"binary":     "binary",
	"timeout":    "timeout",
	"refresh":    "refresh",
	"log-level":  "log_level",
	"journal":    "journal",
	"journal-db": "journal_db",
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("interface", ipmi.DefaultInterface)
	v.SetDefault("binary", ipmi.DefaultBinary)
	v.SetDefault("timeout", ipmi.DefaultTimeout)
	v.SetDefault("refresh", DefaultRefresh)
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", DefaultJournalDB)
}

// Load reads configuration from, in increasing precedence: defaults, the
// TOML config file, IPMICTL_* environment variables and set flags.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	// Config file
	v.SetConfigType(configType)
	path := o.configPath
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/etc")
		v.AddConfigPath("$HOME/.config/ipmictl")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Environment
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Flags
	if o.flags != nil {
		for name, key := range flagKeys {
			f := o.flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return cfg, nil
}

// Validate checks the loaded configuration. It is separate from Load so
// commands that never reach the controller can run without a host.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Field() == "Timeout" {
			return errFactory.WithData(errors.ErrInvalidTimeout, c.Timeout)
		}
		fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return errFactory.WithData(errors.ErrInvalidConfig, strings.Join(fields, ", "))
}

// Connection returns the controller address and credentials.
func (c *Config) Connection() ipmi.ConnectionConfig {
	return ipmi.ConnectionConfig{
		Host:      c.Host,
		Username:  c.Username,
		Password:  c.Password,
		Interface: c.Interface,
	}
}

// Redacted returns a copy with the password masked, safe to print or log.
func (c *Config) Redacted() Config {
	out := *c
	if out.Password != "" {
		out.Password = "********"
	}

	return out
}
