package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "EASYHTTP"

// ErrFileNotFound is returned when an explicitly named file is missing.
var ErrFileNotFound = errors.New("config file not found")

// LoaderOption is a functional option for Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile reads a YAML (or any viper supported format) file.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile loads a .env file into the process environment before the
// environment is read. Variables already set are kept.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Defaults returns the configuration used for keys that no source sets.
func Defaults() Config {
	return Config{
		FollowRedirects: true,
		MaxRedirects:    30,
	}
}

// Load reads the configuration and validates it.
func Load(opts ...LoaderOption) (Config, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	setDefaults(v, Defaults())

	if lc.configFile != "" {
		if _, err := os.Stat(lc.configFile); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, lc.configFile)
		}

		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", lc.configFile, err)
		}
	}

	if lc.envFile != "" {
		if _, err := os.Stat(lc.envFile); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, lc.envFile)
		}

		if err := godotenv.Load(lc.envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", lc.envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("connect_timeout", d.ConnectTimeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("accept_encoding", d.AcceptEncoding)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("follow_redirects", d.FollowRedirects)
	v.SetDefault("max_redirects", d.MaxRedirects)
	v.SetDefault("fail_on_error", d.FailOnError)
	v.SetDefault("credentials.username", d.Credentials.Username)
	v.SetDefault("credentials.password", d.Credentials.Password)
	v.SetDefault("proxy.host", d.Proxy.Host)
	v.SetDefault("proxy.username", d.Proxy.Username)
	v.SetDefault("proxy.password", d.Proxy.Password)
	v.SetDefault("throttle.rps", d.Throttle.RPS)
	v.SetDefault("throttle.burst", d.Throttle.Burst)
}
