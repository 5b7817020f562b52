package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/config"
	"github.com/rshade/producttable/internal/engine"
	"github.com/rshade/producttable/internal/pagination"
	"github.com/rshade/producttable/internal/render"
	"github.com/rshade/producttable/internal/server"
)

const productsJSON = `[
  {"title": "Red Shirt", "price": 30, "category": {"name": "Clothes"}, "images": ["https://img.test/1.png"]},
  {"title": "Blue Mug", "price": 10, "category": {"name": "Kitchen"}},
  {"title": "Hat", "description": "no price"},
  {"title": "Green Shirt", "price": 20.5, "creationAt": "2024-01-02T03:04:05.000Z"}
]`

// isolate points the configuration at an empty temp home and clears env
// overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, env := range []string{
		config.EnvAPIURL, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvCacheEnabled, config.EnvCacheTTL,
	} {
		t.Setenv(env, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func catalogServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := Execute(context.Background(), root)
	return out.String(), err
}

type tableDoc struct {
	Rows []struct {
		Title string `json:"title"`
	} `json:"rows"`
	Total int   `json:"total_filtered"`
	Pages int   `json:"total_pages"`
	Page  int   `json:"current_page"`
	Size  int   `json:"page_size"`
	Win   []int `json:"window"`
}

func rowTitles(doc tableDoc) []string {
	out := make([]string, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		out = append(out, r.Title)
	}
	return out
}

func TestBuildViewState(t *testing.T) {
	tests := []struct {
		name    string
		opts    tableOptions
		want    engine.ViewState
		wantErr error
	}{
		{
			name: "defaults use configured page size",
			opts: tableOptions{page: 1},
			want: engine.ViewState{Page: 1, PageSize: 15},
		},
		{
			name: "explicit values",
			opts: tableOptions{query: "shirt", sort: "price:desc", page: 3, pageSize: 5},
			want: engine.ViewState{
				Query: "shirt", SortField: engine.SortPrice, SortDirection: engine.Descending,
				Page: 3, PageSize: 5,
			},
		},
		{
			name: "field without order is ascending",
			opts: tableOptions{sort: "Title", page: 2},
			want: engine.ViewState{SortField: engine.SortTitle, Page: 2, PageSize: 15},
		},
		{
			name: "out of range page is kept",
			opts: tableOptions{page: 99},
			want: engine.ViewState{Page: 99, PageSize: 15},
		},
		{
			name:    "negative page size",
			opts:    tableOptions{pageSize: -1},
			wantErr: ErrNegativePageSize,
		},
		{
			name:    "unknown sort field",
			opts:    tableOptions{sort: "color"},
			wantErr: engine.ErrInvalidSortField,
		},
		{
			name:    "bad sort syntax",
			opts:    tableOptions{sort: "price:desc:again"},
			wantErr: pagination.ErrInvalidSortFormat,
		},
		{
			name:    "bad sort order",
			opts:    tableOptions{sort: "price:up"},
			wantErr: pagination.ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildViewState(tt.opts, 15)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableCmd_JSON(t *testing.T) {
	isolate(t)
	ts, _ := catalogServer(t, http.StatusOK, productsJSON)

	out, err := executeCmd(t, "--api-url", ts.URL, "table",
		"--sort", "price:desc", "--page-size", "2", "--output", "json")
	require.NoError(t, err)

	var doc tableDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 4, doc.Total)
	assert.Equal(t, 2, doc.Pages)
	assert.Equal(t, []string{"Red Shirt", "Green Shirt"}, rowTitles(doc))
}

func TestTableCmd_QueryAndPage(t *testing.T) {
	isolate(t)
	ts, _ := catalogServer(t, http.StatusOK, productsJSON)

	out, err := executeCmd(t, "--api-url", ts.URL, "table",
		"--query", "  SHIRT ", "--sort", "title", "--page-size", "1", "--page", "2", "-o", "json")
	require.NoError(t, err)

	var doc tableDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Total)
	assert.Equal(t, 2, doc.Page)
	assert.Equal(t, []string{"Red Shirt"}, rowTitles(doc))
	assert.Equal(t, []int{1, 2}, doc.Win)
}

func TestTableCmd_Text(t *testing.T) {
	isolate(t)
	ts, _ := catalogServer(t, http.StatusOK, productsJSON)

	out, err := executeCmd(t, "--api-url", ts.URL, "table", "--sort", "price")
	require.NoError(t, err)

	assert.Contains(t, out, "Total: 4 — Page 1/1")
	assert.Contains(t, out, "$20.5")
	assert.Contains(t, out, "Blue Mug")
}

func TestTableCmd_HTML(t *testing.T) {
	isolate(t)
	ts, _ := catalogServer(t, http.StatusOK, productsJSON)

	out, err := executeCmd(t, "--api-url", ts.URL, "table", "--output", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `id="productTable"`)
	assert.Contains(t, out, "Red Shirt")
}

func TestTableCmd_LoadFailureRendersEmptyTable(t *testing.T) {
	isolate(t)
	ts, _ := catalogServer(t, http.StatusInternalServerError, `{"error":"down"}`)

	out, err := executeCmd(t, "--api-url", ts.URL, "table", "--output", "json")
	require.NoError(t, err)

	var doc tableDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 0, doc.Total)
	assert.Equal(t, 1, doc.Pages)
	assert.Empty(t, doc.Rows)
	assert.Equal(t, []int{1}, doc.Win)
}

func TestTableCmd_InputErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown format", []string{"table", "--output", "xml"}, render.ErrUnsupportedFormat},
		{"unknown sort field", []string{"table", "--sort", "color"}, engine.ErrInvalidSortField},
		{"negative page size", []string{"table", "--page-size", "-5"}, ErrNegativePageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ClosesLogFileOnError(t *testing.T) {
	home := isolate(t)
	logPath := filepath.Join(home, "logs", "producttable.log")
	cfgYAML := "logging:\n  level: info\n  format: json\n  file: " + logPath + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(cfgYAML), 0600))

	out, err := executeCmd(t, "table", "--output", "xml")
	require.ErrorIs(t, err, render.ErrUnsupportedFormat)
	assert.Contains(t, out, logPath)
	assert.FileExists(t, logPath)
	assert.Nil(t, logResult, "log file is released after a failed command")

	_, err = executeCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Nil(t, logResult)
}

func TestRootCmd_NegativeCacheTTL(t *testing.T) {
	isolate(t)
	_, err := executeCmd(t, "--cache-ttl", "-1", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-ttl must be >= 0")
}

func TestTableCmd_CacheTTLAvoidsSecondFetch(t *testing.T) {
	home := isolate(t)
	ts, hits := catalogServer(t, http.StatusOK, productsJSON)

	for i := 0; i < 2; i++ {
		_, err := executeCmd(t, "--api-url", ts.URL, "--cache-ttl", "120", "table", "-o", "json")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	entries, err := os.ReadDir(filepath.Join(home, "cache"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	out, err := executeCmd(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 cached responses")

	_, err = executeCmd(t, "--api-url", ts.URL, "--cache-ttl", "120", "table")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCacheStatusAndPrune(t *testing.T) {
	isolate(t)

	out, err := executeCmd(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0")
	assert.Contains(t, out, "TTL:       1h")

	out, err = executeCmd(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired responses")
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)

	out, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, err = executeCmd(t, "config", "init")
	require.ErrorIs(t, err, ErrConfigExists)

	_, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)

	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Table, loaded.Table)
	assert.Equal(t, config.Default().API, loaded.API)
}

func TestConfigInit_CreatesHomeDir(t *testing.T) {
	isolate(t)
	home := filepath.Join(t.TempDir(), "nested", "home")
	t.Setenv(config.EnvHome, home)

	_, err := executeCmd(t, "config", "init")
	require.NoError(t, err)

	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestConfigShow_WarnsOnBrokenFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api: [broken\n"), 0600))

	out, err := executeCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: ignoring config file")
	assert.Contains(t, out, "producttable config validate")
	assert.Contains(t, out, "page_size: 10", "defaults are used")
}

func TestConfigShow(t *testing.T) {
	isolate(t)

	out, err := executeCmd(t, "--api-url", "https://example.test/products", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "url: https://example.test/products")
	assert.Contains(t, out, "page_size: 10")

	out, err = executeCmd(t, "config", "show", "--output", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "table")

	_, err = executeCmd(t, "config", "show", "--output", "toml")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	home := isolate(t)

	out, err := executeCmd(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "checking defaults")
	assert.Contains(t, out, "Configuration is valid")

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table:\n  page_size: 0\n"), 0600))
	_, err = executeCmd(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidPageSize)

	require.NoError(t, os.WriteFile(path, []byte("api: [broken\n"), 0600))
	_, err = executeCmd(t, "config", "validate")
	require.Error(t, err)
}

func TestBrowseCmd_RequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running in a terminal")
	}
	isolate(t)

	_, err := executeCmd(t, "browse")
	require.ErrorIs(t, err, ErrNotTerminal)
}

type stubLoader struct {
	products catalog.Collection
	release  chan struct{}
}

func (s stubLoader) Load(ctx context.Context) catalog.Result {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return catalog.Result{Products: s.products, Source: catalog.SourceNetwork}
}

func TestServe_LoadsWhileListening(t *testing.T) {
	logger = zerolog.Nop()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	loader := stubLoader{
		products: catalog.Collection{{Title: "A"}, {Title: "B"}},
		release:  make(chan struct{}),
	}
	store := catalog.NewStore()
	srv := server.New(store, server.Options{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, loader, store, srv, addr) }()

	health := func() (bool, int) {
		resp, getErr := http.Get("http://" + addr + "/healthz") //nolint:noctx // test
		if getErr != nil {
			return false, 0
		}
		defer resp.Body.Close()
		var body struct {
			Loaded   bool `json:"loaded"`
			Products int  `json:"products"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) != nil {
			return false, 0
		}
		return body.Loaded, body.Products
	}

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + addr + "/healthz") //nolint:noctx // test
		if getErr != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	loaded, _ := health()
	assert.False(t, loaded, "server answers before the catalog arrives")

	close(loader.release)
	require.Eventually(t, func() bool {
		ok, n := health()
		return ok && n == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
