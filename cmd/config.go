package cmd

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	consts "github.com/khanhnv2901/urlscore/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/urlscore/internal/shared/errors"
)

const (
	outputPretty = "pretty"
	outputJSON   = "json"

	envPrefix         = "URLSCORE"
	reputationKeyEnv  = "URLSCORE_REPUTATION_KEY"
	defaultConfigName = ".urlscore"
)

// CLIConfig captures runtime configuration for one invocation.
type CLIConfig struct {
	URL            string
	Output         string
	NonInteractive bool
	LogDir         string
	Debug          bool
	Probe          ProbeConfig
	ReputationKey  string
}

// ProbeConfig groups certificate prober options.
type ProbeConfig struct {
	TimeoutSecs int
	Retries     int
}

// Timeout returns the probe deadline, falling back to the default.
func (p ProbeConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return consts.DefaultProbeTimeout
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Output: outputPretty,
		Probe: ProbeConfig{
			TimeoutSecs: int(consts.DefaultProbeTimeout / time.Second),
		},
	}
}

// loadCLIConfig reads the config file and URLSCORE_* environment, then lets
// explicitly set flags win over both.
func loadCLIConfig(flags *pflag.FlagSet, cfgFile string, flagValues *CLIConfig) (*CLIConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("reputation.api_key", reputationKeyEnv)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, usageErrorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath("$HOME")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, usageErrorf("read config: %w", err)
			}
		}
	}

	cfg := *flagValues
	applyConfigDefaults(flags, v, &cfg)

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output != outputPretty && cfg.Output != outputJSON {
		return nil, usageErrorf("%w: %q (want json or pretty)", sharedErrors.ErrUnsupportedFormat, cfg.Output)
	}
	if cfg.Probe.Retries < 0 {
		return nil, usageErrorf("%w: retries must not be negative, got %d", sharedErrors.ErrInvalidInput, cfg.Probe.Retries)
	}

	return &cfg, nil
}

// applyConfigDefaults merges config/env values into cfg when the user did
// not explicitly set the corresponding flag.
func applyConfigDefaults(flags *pflag.FlagSet, v *viper.Viper, cfg *CLIConfig) {
	if v.IsSet("url") {
		applyStringDefault(flags, "url", v.GetString("url"), func(s string) { cfg.URL = s })
	}
	if v.IsSet("output") {
		applyStringDefault(flags, "output", v.GetString("output"), func(s string) { cfg.Output = s })
	}
	if v.IsSet("noninteractive") {
		applyBoolDefault(flags, "noninteractive", v.GetBool("noninteractive"), func(b bool) { cfg.NonInteractive = b })
	}
	if v.IsSet("log_dir") {
		applyStringDefault(flags, "log-dir", v.GetString("log_dir"), func(s string) { cfg.LogDir = s })
	}
	if v.IsSet("debug") {
		applyBoolDefault(flags, "debug", v.GetBool("debug"), func(b bool) { cfg.Debug = b })
	}
	if v.IsSet("probe.timeout_secs") {
		applyIntDefault(flags, "timeout", v.GetInt("probe.timeout_secs"), func(n int) { cfg.Probe.TimeoutSecs = n })
	}
	if v.IsSet("probe.retries") {
		applyIntDefault(flags, "retries", v.GetInt("probe.retries"), func(n int) { cfg.Probe.Retries = n })
	}

	// presence only; the key is never validated or sent anywhere
	cfg.ReputationKey = v.GetString("reputation.api_key")
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flagChanged(flags, name) || setter == nil {
		return
	}
	setter(value)
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}
