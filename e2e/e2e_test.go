//go:build integration

package e2e_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/adamwoolhether/easyhttp"
	"github.com/adamwoolhether/easyhttp/client"
	"github.com/adamwoolhether/easyhttp/config"
	"github.com/adamwoolhether/easyhttp/engine"
)

// -------------------------------------------------------------------------
// Types
// -------------------------------------------------------------------------

type user struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

type itemResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type queryResp struct {
	Search string `json:"search"`
	Page   string `json:"page"`
}

const downloadContent = "hello, this is test download content!"

// -------------------------------------------------------------------------
// Helpers
// -------------------------------------------------------------------------

func newTestApp(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /echo", echoHandler)
	mux.HandleFunc("GET /items/{id}/{name}", itemHandler)
	mux.HandleFunc("GET /query", queryHandler)
	mux.HandleFunc("GET /error/not-found", notFoundHandler)
	mux.HandleFunc("GET /download", downloadHandler)
	mux.HandleFunc("GET /compressed", compressedHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv.URL
}

func newClient(t *testing.T, opts ...engine.Option) *client.Client {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	c, err := cfg.Client(log, opts...)
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	t.Cleanup(c.Close)

	return c
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// -------------------------------------------------------------------------
// Handlers
// -------------------------------------------------------------------------

func echoHandler(w http.ResponseWriter, r *http.Request) {
	var u user
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, u)
}

func itemHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, itemResp{
		ID:   r.PathValue("id"),
		Name: r.PathValue("name"),
	})
}

func queryHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, queryResp{
		Search: r.URL.Query().Get("search"),
		Page:   r.URL.Query().Get("page"),
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, map[string]any{"code": 404, "message": "widget not found"})
}

func downloadHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(downloadContent)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(downloadContent))
}

func compressedHandler(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") {
		w.Write([]byte(downloadContent))
		return
	}

	var buf bytes.Buffer
	enc, _ := zstd.NewWriter(&buf)
	enc.Write([]byte(downloadContent))
	enc.Close()

	w.Header().Set("Content-Encoding", "zstd")
	w.Write(buf.Bytes())
}

// -------------------------------------------------------------------------
// Tests
// -------------------------------------------------------------------------

func TestE2E_JSONRoundTrip(t *testing.T) {
	baseURL := newTestApp(t)
	c := newClient(t)

	sent := user{Name: "Alice", Email: "alice@test.com", Age: 30}

	req, err := client.NewRequest(http.MethodPost, baseURL+"/echo", client.WithPayload(sent))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	var got user
	if err := c.Do(t.Context(), req, http.StatusCreated, client.WithDestination(&got)); err != nil {
		t.Fatalf("executing request: %v", err)
	}

	if got != sent {
		t.Errorf("round-trip mismatch:\n  got:  %+v\n  want: %+v", got, sent)
	}
}

func TestE2E_PathParams(t *testing.T) {
	baseURL := newTestApp(t)
	c := newClient(t)

	req, err := client.NewRequest(http.MethodGet, baseURL+"/items/42/widget")
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	var got itemResp
	if err := c.Do(t.Context(), req, http.StatusOK, client.WithDestination(&got)); err != nil {
		t.Fatalf("executing request: %v", err)
	}

	if got.ID != "42" {
		t.Errorf("id = %q, want %q", got.ID, "42")
	}
	if got.Name != "widget" {
		t.Errorf("name = %q, want %q", got.Name, "widget")
	}
}

func TestE2E_QueryParams(t *testing.T) {
	baseURL := newTestApp(t)
	c := newClient(t)

	base, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parsing base URL: %v", err)
	}

	reqURL := client.URL(base.Scheme, base.Host, "/query",
		client.WithQueryStrings(map[string]string{
			"search": "gopher",
			"page":   "3",
		}),
	)

	req, err := client.NewRequest(http.MethodGet, reqURL)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	var got queryResp
	if err := c.Do(t.Context(), req, http.StatusOK, client.WithDestination(&got)); err != nil {
		t.Fatalf("executing request: %v", err)
	}

	if got.Search != "gopher" {
		t.Errorf("search = %q, want %q", got.Search, "gopher")
	}
	if got.Page != "3" {
		t.Errorf("page = %q, want %q", got.Page, "3")
	}
}

func TestE2E_ErrorHandling(t *testing.T) {
	baseURL := newTestApp(t)
	c := newClient(t)

	req, err := client.NewRequest(http.MethodGet, baseURL+"/error/not-found")
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	err = c.Do(t.Context(), req, http.StatusOK)

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UnexpectedStatusError, got %T: %v", err, err)
	}

	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
	}

	wantBody := `{"code":404,"message":"widget not found"}` + "\n"
	if statusErr.Body != wantBody {
		t.Errorf("body = %q, want %q", statusErr.Body, wantBody)
	}
}

func TestE2E_FileDownload(t *testing.T) {
	baseURL := newTestApp(t)
	c := newClient(t)

	destPath := filepath.Join(t.TempDir(), "downloaded.bin")
	sum := sha256.Sum256([]byte(downloadContent))

	req, err := client.NewRequest(http.MethodGet, baseURL+"/download")
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if err := c.Download(t.Context(), req, http.StatusOK, destPath, client.WithChecksum(sha256.New(), hex.EncodeToString(sum[:]))); err != nil {
		t.Fatalf("downloading: %v", err)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}

	if string(got) != downloadContent {
		t.Errorf("file content = %q, want %q", string(got), downloadContent)
	}
}

func TestE2E_CompressedWithMetrics(t *testing.T) {
	baseURL := newTestApp(t)

	t.Setenv("EASYHTTP_ACCEPT_ENCODING", "zstd")

	reg := prometheus.NewRegistry()
	c := newClient(t, engine.WithMetrics(reg))

	resp, err := c.Exec(t.Context(), client.Request{URL: baseURL + "/compressed"})
	if err != nil {
		t.Fatalf("executing request: %v", err)
	}

	if string(resp.Body) != downloadContent {
		t.Errorf("body = %q, want %q", resp.Body, downloadContent)
	}

	if n := testutil.CollectAndCount(reg, "easyhttp_transfers_total"); n != 1 {
		t.Errorf("transfers series = %d, want 1", n)
	}
}

func TestE2E_Fetch(t *testing.T) {
	baseURL := newTestApp(t)

	body, err := easyhttp.Fetch(t.Context(), baseURL+"/download")
	if err != nil {
		t.Fatalf("fetching: %v", err)
	}

	if string(body) != downloadContent {
		t.Errorf("body = %q, want %q", body, downloadContent)
	}

	if _, err := easyhttp.Fetch(t.Context(), "http://127.0.0.1:1"); !errors.Is(err, engine.CouldntConnect) {
		t.Errorf("expected CouldntConnect, got %v", err)
	}
}
