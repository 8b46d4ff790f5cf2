package csvsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdash/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct {
	warnMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

const export = "market_type,asset_symbol,asset_name\r\nSTOCK,AAA,\"Alpha, Inc\"\r\n\r\nCRYPTO,BTC,Bitcoin\r\n"

func TestSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.csv")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))

	src, err := New(Config{Location: path, Logger: &mockLogger{}})
	require.NoError(t, err)

	rows, err := src.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"STOCK", "AAA", "Alpha, Inc"},
		{"CRYPTO", "BTC", "Bitcoin"},
	}, rows)
	assert.Equal(t, "csv:"+path, src.Name())
}

func TestSource_MissingFile(t *testing.T) {
	src, err := New(Config{Location: filepath.Join(t.TempDir(), "missing.csv"), Logger: &mockLogger{}})
	require.NoError(t, err)

	_, err = src.FetchRows(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSource_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))
	log := &mockLogger{}

	src, err := New(Config{Location: path, Logger: log})
	require.NoError(t, err)
	rows, err := src.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Len(t, log.warnMsgs, 1)
}

func TestSource_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(export))
	}))
	defer server.Close()

	src, err := New(Config{Location: server.URL + "/export.csv", Client: server.Client(), Logger: &mockLogger{}})
	require.NoError(t, err)
	rows, err := src.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	missing, err := New(Config{Location: server.URL + "/nope.csv", Client: server.Client(), Logger: &mockLogger{}})
	require.NoError(t, err)
	_, err = missing.FetchRows(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrSourceUnavailable))
}

func TestSource_HTTPCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(export))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src, err := New(Config{Location: server.URL, Client: server.Client(), Logger: &mockLogger{}})
	require.NoError(t, err)
	_, err = src.FetchRows(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrContextCanceled))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Location: "x.csv"})
	assert.True(t, errors.Is(err, ports.ErrConfigurationError))

	_, err = New(Config{Location: " ", Logger: &mockLogger{}})
	assert.True(t, errors.Is(err, ports.ErrConfigurationError))
}
