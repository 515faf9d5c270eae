package dispatcher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revenew/internal/logclient"
	"revenew/internal/metrics"
	"revenew/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clientFor(t *testing.T, srv *httptest.Server) *logclient.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	client, err := logclient.New(u.Hostname(), port, logclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func TestDispatcherDeliversEvents(t *testing.T) {
	received := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.URL.Path
		_ = json.NewEncoder(w).Encode(logclient.LogResponse{Status: "ok"})
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	d := New(clientFor(t, srv), "DemoApp", m, WithLogger(testLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.EnqueuePurchase(domain.ClassifiedEvent{
		Product:     domain.Product{ID: "pro_monthly", Price: "9.99"},
		Transaction: domain.Transaction{ID: "1001"},
	})
	d.EnqueueDownload("user-1")

	paths := map[string]bool{}
	for range 2 {
		select {
		case p := <-received:
			paths[p] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}
	assert.True(t, paths["/api/v1/log-purchase"])
	assert.True(t, paths["/api/v1/log-download"])
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(logclient.LogResponse{Status: "ok"})
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	d := New(clientFor(t, srv), "DemoApp", m, WithLogger(testLogger()), WithQueueSize(1))

	// No worker running: the first event fills the queue, the second drops.
	d.EnqueueDownload("user-1")
	d.EnqueueDownload("user-2")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDropped))
}

func TestDispatcherSwallowsDeliveryFailures(t *testing.T) {
	hits := make(chan struct{}, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	d := New(clientFor(t, srv), "DemoApp", m, WithLogger(testLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	// Two failures in a row: the worker must survive the first one.
	d.EnqueueDownload("user-1")
	d.EnqueueDownload("user-2")

	for range 2 {
		select {
		case <-hits:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a delivery failure")
		}
	}

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.DeliveryFailures.WithLabelValues("unauthorized")) == 2.0
	}, 2*time.Second, 10*time.Millisecond)
}
