package metrics

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"glossgraph/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestLoadResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("wrap: %w", store.ErrFetch), "fetch_error"},
		{store.ErrDecode, "decode_error"},
		{fmt.Errorf("%w: edge 0", store.ErrDanglingEdge), "invalid"},
		{store.ErrDuplicateNode, "invalid"},
		{io.EOF, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoadResult(tt.err))
	}
}

func TestObserveLoad(t *testing.T) {
	c := NewCollector("test")

	c.ObserveLoad(nil, 5, 4, 1)
	c.ObserveLoad(store.ErrFetch, 0, 0, 0)

	body := scrape(t, c)
	assert.Contains(t, body, `test_graph_loads_total{result="ok"} 1`)
	assert.Contains(t, body, `test_graph_loads_total{result="fetch_error"} 1`)
	assert.Contains(t, body, "test_graph_nodes 5", "failed loads keep the last size")
	assert.Contains(t, body, "test_graph_edges 4")
	assert.Contains(t, body, "test_graph_dropped_edges_total 1")
}

func TestObserveInteractionAndTick(t *testing.T) {
	c := NewCollector("test")

	c.ObserveInteraction("click", nil)
	c.ObserveInteraction("click", io.EOF)
	c.ObserveTick(0.5)
	c.ObserveTick(0.25)

	body := scrape(t, c)
	assert.Contains(t, body, `test_interactions_total{kind="click",outcome="ok"} 1`)
	assert.Contains(t, body, `test_interactions_total{kind="click",outcome="error"} 1`)
	assert.Contains(t, body, "test_simulation_ticks_total 2")
	assert.Contains(t, body, "test_simulation_alpha 0.25")
}

func TestHandlerExposesRequests(t *testing.T) {
	c := NewCollector("glossgraph")
	c.ObserveRequest("GET", "/api/view", 200, 10*time.Millisecond)
	c.SetClients(3)

	body := scrape(t, c)
	assert.Contains(t, body, `glossgraph_http_requests_total{method="GET",route="/api/view",status="200"} 1`)
	assert.Contains(t, body, `glossgraph_http_request_duration_seconds_count{method="GET",route="/api/view"} 1`)
	assert.Contains(t, body, "glossgraph_sse_clients 3")
}
