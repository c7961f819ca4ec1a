// Package easyhttp exposes the client builder and a one-shot fetch.
package easyhttp

import (
	"context"

	"github.com/adamwoolhether/easyhttp/client"
	"github.com/adamwoolhether/easyhttp/config"
	"github.com/adamwoolhether/easyhttp/transfer"
)

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, the shared default engine is used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewClientFromEnv loads the configuration from the environment and the
// given sources and builds a client from it.
func NewClientFromEnv(opts ...config.LoaderOption) (*client.Client, error) {
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	return cfg.Client(nil)
}

// Fetch performs a GET of url and returns the response body.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	return transfer.Fetch(ctx, url)
}
