package config_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamwoolhether/easyhttp/client"
	"github.com/adamwoolhether/easyhttp/config"
	"github.com/adamwoolhether/easyhttp/throttle"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.FollowRedirects)
	assert.Equal(t, 30, cfg.MaxRedirects)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.AcceptEncoding)
	assert.False(t, cfg.Throttle.Enabled())
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "config.yml", `
timeout: 5s
connect_timeout: 2s
user_agent: easyhttp-test/1.0
accept_encoding: [gzip, zstd]
max_redirects: 3
fail_on_error: true
proxy:
  host: proxy.local:3128
  username: puser
  password: ppass
throttle:
  rps: 10
  burst: 5
`)

	cfg, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)

	exp := config.Config{
		Timeout:         5 * time.Second,
		ConnectTimeout:  2 * time.Second,
		UserAgent:       "easyhttp-test/1.0",
		AcceptEncoding:  []string{"gzip", "zstd"},
		FollowRedirects: true,
		MaxRedirects:    3,
		FailOnError:     true,
		Proxy:           config.Proxy{Host: "proxy.local:3128", Username: "puser", Password: "ppass"},
		Throttle:        throttle.Config{RPS: 10, Burst: 5},
	}
	assert.Equal(t, exp, cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yml", "timeout: 5s\nuser_agent: from-file\n")

	t.Setenv("EASYHTTP_TIMEOUT", "250ms")
	t.Setenv("EASYHTTP_THROTTLE_RPS", "7")
	t.Setenv("EASYHTTP_THROTTLE_BURST", "2")
	t.Setenv("EASYHTTP_FOLLOW_REDIRECTS", "false")

	cfg, err := config.Load(config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "from-file", cfg.UserAgent)
	assert.Equal(t, throttle.Config{RPS: 7, Burst: 2}, cfg.Throttle)
	assert.False(t, cfg.FollowRedirects)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "EASYHTTP_CREDENTIALS_USERNAME=alice\nEASYHTTP_CREDENTIALS_PASSWORD=secret\n")

	// godotenv writes into the process environment; register the keys so
	// they are restored after the test.
	t.Setenv("EASYHTTP_CREDENTIALS_USERNAME", "")
	t.Setenv("EASYHTTP_CREDENTIALS_PASSWORD", "")
	os.Unsetenv("EASYHTTP_CREDENTIALS_USERNAME")
	os.Unsetenv("EASYHTTP_CREDENTIALS_PASSWORD")

	cfg, err := config.Load(config.WithEnvFile(path))
	require.NoError(t, err)

	assert.Equal(t, config.Credentials{Username: "alice", Password: "secret"}, cfg.Credentials)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		opts   func(t *testing.T) []config.LoaderOption
		env    map[string]string
		expErr error
	}{
		{
			name: "missing config file",
			opts: func(t *testing.T) []config.LoaderOption {
				return []config.LoaderOption{config.WithConfigFile(filepath.Join(t.TempDir(), "nope.yml"))}
			},
			expErr: config.ErrFileNotFound,
		},
		{
			name: "missing env file",
			opts: func(t *testing.T) []config.LoaderOption {
				return []config.LoaderOption{config.WithEnvFile(filepath.Join(t.TempDir(), ".env"))}
			},
			expErr: config.ErrFileNotFound,
		},
		{
			name: "invalid max redirects",
			opts: func(t *testing.T) []config.LoaderOption { return nil },
			env:  map[string]string{"EASYHTTP_MAX_REDIRECTS": "-5"},
		},
		{
			name: "unknown encoding",
			opts: func(t *testing.T) []config.LoaderOption { return nil },
			env:  map[string]string{"EASYHTTP_ACCEPT_ENCODING": "br"},
		},
		{
			name: "bad duration",
			opts: func(t *testing.T) []config.LoaderOption { return nil },
			env:  map[string]string{"EASYHTTP_TIMEOUT": "soon"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(tc.opts(t)...)
			require.Error(t, err)

			if tc.expErr != nil {
				assert.ErrorIs(t, err, tc.expErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Timeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)

	var ferrs client.FieldErrors
	require.True(t, errors.As(err, &ferrs))
	require.Len(t, ferrs, 1)
	assert.Equal(t, "Timeout", ferrs[0].Field)
}

func TestConfig_Options(t *testing.T) {
	cfg := config.Defaults()
	assert.Len(t, cfg.ClientOptions(), 1)
	assert.Empty(t, cfg.EngineOptions())

	cfg.Throttle = throttle.Config{RPS: 5, Burst: 1}
	cfg.Proxy = config.Proxy{Host: "p:1", Username: "u", Password: "p"}
	cfg.Credentials = config.Credentials{Username: "u", Password: "p"}
	cfg.FollowRedirects = false

	assert.Len(t, cfg.ClientOptions(), 4)
	assert.Len(t, cfg.EngineOptions(), 1)
}

func TestConfig_Client(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("User-Agent"))
	}))
	defer ts.Close()

	cfg := config.Defaults()
	cfg.UserAgent = "configured/1.0"
	cfg.Throttle = throttle.Config{RPS: 100, Burst: 10}

	c, err := cfg.Client(nil)
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Exec(t.Context(), client.Request{URL: ts.URL})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "configured/1.0", string(resp.Body))

	cfg.Throttle = throttle.Config{RPS: 1}
	_, err = cfg.Client(nil)
	assert.ErrorIs(t, err, throttle.ErrMustNotBeZero)
}
