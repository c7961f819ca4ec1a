package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/adamwoolhether/easyhttp/client"
	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/throttle"
)

// Config holds the settings for one Client and its engine.
type Config struct {
	Timeout         time.Duration   `mapstructure:"timeout" validate:"gte=0"`
	ConnectTimeout  time.Duration   `mapstructure:"connect_timeout" validate:"gte=0"`
	UserAgent       string          `mapstructure:"user_agent" validate:"omitempty,headervalue"`
	AcceptEncoding  []string        `mapstructure:"accept_encoding" validate:"dive,oneof=gzip deflate zstd"`
	Verbose         bool            `mapstructure:"verbose"`
	FollowRedirects bool            `mapstructure:"follow_redirects"`
	MaxRedirects    int             `mapstructure:"max_redirects" validate:"gte=-1"`
	FailOnError     bool            `mapstructure:"fail_on_error"`
	Credentials     Credentials     `mapstructure:"credentials"`
	Proxy           Proxy           `mapstructure:"proxy"`
	Throttle        throttle.Config `mapstructure:"throttle"`
}

// Credentials are the basic auth credentials sent to the server.
type Credentials struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Proxy routes every transfer through Host.
type Proxy struct {
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password" validate:"excluded_without=Username"`
}

// Validate checks c against its declared tags.
func (c Config) Validate() error {
	if err := client.Validate(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	return nil
}

// ClientOptions converts c into client options. Throttling is an engine
// setting and is carried by EngineOptions instead.
func (c Config) ClientOptions() []client.Option {
	var opts []client.Option

	if c.Timeout > 0 {
		opts = append(opts, client.WithTimeout(c.Timeout))
	}
	if c.ConnectTimeout > 0 {
		opts = append(opts, client.WithConnectTimeout(c.ConnectTimeout))
	}
	if c.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(c.UserAgent))
	}
	if len(c.AcceptEncoding) > 0 {
		opts = append(opts, client.WithAcceptEncoding(c.AcceptEncoding...))
	}
	if c.Verbose {
		opts = append(opts, client.WithVerbose())
	}
	if !c.FollowRedirects {
		opts = append(opts, client.WithNoFollowRedirects())
	}
	opts = append(opts, client.WithMaxRedirects(c.MaxRedirects))
	if c.FailOnError {
		opts = append(opts, client.WithFailOnError())
	}
	if c.Credentials.Username != "" {
		opts = append(opts, client.WithCredentials(c.Credentials.Username, c.Credentials.Password))
	}
	if c.Proxy.Host != "" {
		var creds []string
		if c.Proxy.Username != "" {
			creds = append(creds, c.Proxy.Username, c.Proxy.Password)
		}
		opts = append(opts, client.WithProxy(c.Proxy.Host, creds...))
	}

	return opts
}

// EngineOptions converts the engine part of c into engine options.
func (c Config) EngineOptions() []engine.Option {
	var opts []engine.Option

	if c.Throttle.Enabled() {
		opts = append(opts, engine.WithThrottle(c.Throttle.RPS, c.Throttle.Burst))
	}

	return opts
}

// Client builds an engine from c and extra, then a Client on that engine.
func (c Config) Client(logger *slog.Logger, extra ...engine.Option) (*client.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	engOpts := append([]engine.Option{engine.WithLogger(logger)}, c.EngineOptions()...)
	engOpts = append(engOpts, extra...)

	eng, err := engine.New(engOpts...)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	opts := append([]client.Option{client.WithEngine(eng), client.WithLogger(logger)}, c.ClientOptions()...)

	cl, err := client.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}

	return cl, nil
}
