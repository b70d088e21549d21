package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/efritz/deepcache"
)

type options struct {
	Cache        deepcache.Config `mapstructure:",squash"`
	Env          string           `mapstructure:"env"`
	MetricsAddr  string           `mapstructure:"metrics_addr"`
	Interval     time.Duration    `mapstructure:"interval"`
	ReadyTimeout time.Duration    `mapstructure:"ready_timeout"`
	TTLKeys      []string         `mapstructure:"ttl_keys"`
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("deepcache-probe", pflag.ContinueOnError)
	flags.String("config", "", "path to a configuration file (yaml, toml, json or env)")
	flags.String("host", "", "backend host")
	flags.Int("port", 0, "backend port")
	flags.String("env", "", "logging environment (dev or prod)")
	flags.String("metrics-addr", "", "address to serve /metrics on (empty disables)")
	flags.Duration("interval", 0, "probe interval (0 probes once and exits)")
	flags.Duration("ready-timeout", 0, "maximum time to wait for the backend at startup")
	flags.StringSlice("ttl-keys", nil, "keys whose TTL is reported after startup")
	return flags
}

// loadOptions resolves options from (in increasing precedence) defaults,
// a config file, DEEPCACHE_* environment variables and flags.
func loadOptions(args []string) (*options, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	defaults := deepcache.DefaultConfig()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("password", defaults.Password)
	v.SetDefault("database", defaults.Database)
	v.SetDefault("max_idle", defaults.MaxIdle)
	v.SetDefault("max_total", defaults.MaxTotal)
	v.SetDefault("max_wait_millis", defaults.MaxWaitMillis)
	v.SetDefault("env", "dev")
	v.SetDefault("metrics_addr", ":9121")
	v.SetDefault("interval", "0s")
	v.SetDefault("ready_timeout", "30s")
	v.SetDefault("ttl_keys", []string{})

	v.SetEnvPrefix("deepcache")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"host", "port", "env", "metrics-addr", "interval", "ready-timeout", "ttl-keys"} {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flag); err != nil {
				return nil, err
			}
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	opts := &options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, err
	}

	return opts, nil
}
