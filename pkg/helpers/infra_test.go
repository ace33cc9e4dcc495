package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	type profile struct {
		Name   string   `json:"name"`
		Skills []string `json:"skills"`
	}

	_, ok, err := GetJSON[profile](ctx, rdb, "p:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, rdb, "p:1", profile{Name: "Ada", Skills: []string{"go"}}, time.Minute))
	got, ok, err := GetJSON[profile](ctx, rdb, "p:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, profile{Name: "Ada", Skills: []string{"go"}}, got)
	assert.Equal(t, time.Minute, mr.TTL("p:1"))

	require.NoError(t, DelKeys(ctx, rdb, "p:1", "missing"))
	assert.False(t, mr.Exists("p:1"))
	require.NoError(t, DelKeys(ctx, rdb))

	mr.Set("bad", "{")
	_, _, err = GetJSON[profile](ctx, rdb, "bad")
	assert.Error(t, err)
}

func TestLoggerStampsAppFields(t *testing.T) {
	logger := NewLogger("jobboard", "production")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithField("app", "worker").Info("hello")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "worker", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "hello", line["msg"])
}

func TestPingES(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(int(status.Load()))
	}))
	t.Cleanup(srv.Close)

	es, err := NewESClient(ESConfig{Addrs: []string{srv.URL}, MaxRetries: 1})
	require.NoError(t, err)
	assert.NoError(t, PingES(context.Background(), es))

	status.Store(http.StatusUnauthorized)
	assert.Error(t, PingES(context.Background(), es))
}
