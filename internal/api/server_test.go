package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ctp/internal/engine"
)

type fakeEngine struct {
	mu        sync.Mutex
	inserted  []engine.OrderRequest
	insertErr error
	cancelErr error
	queryErr  error
	queried   []string
}

func (f *fakeEngine) Status() engine.Status {
	return engine.Status{TradingDay: "20241015", TraderState: engine.StateReady}
}

func (f *fakeEngine) Ticks(id string) []engine.Tick {
	return []engine.Tick{{InstrumentID: id, LastPrice: 3500}}
}

func (f *fakeEngine) Orders() []engine.Order {
	return []engine.Order{{Key: "1:2:3"}}
}

func (f *fakeEngine) Trades() []engine.Trade { return nil }

func (f *fakeEngine) Positions() []engine.Position { return nil }

func (f *fakeEngine) Pending() []engine.Pending {
	return []engine.Pending{{RequestID: 7, Op: "qry_order"}}
}

func (f *fakeEngine) Errors() []*engine.RspError { return nil }

func (f *fakeEngine) InsertOrder(req engine.OrderRequest) (engine.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, req)
	return engine.Order{Key: "1:2:4", Status: "submitted"}, f.insertErr
}

func (f *fakeEngine) CancelOrder(string) error { return f.cancelErr }

func (f *fakeEngine) Query(kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = append(f.queried, kind)
	return f.queryErr
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestReadRoutes(t *testing.T) {
	s := NewServer(":0", &fakeEngine{}, nil)
	h := s.Handler()

	code, env := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))

	code, env = do(t, h, http.MethodGet, "/api/status", "")
	assert.Equal(t, http.StatusOK, code)
	var st engine.Status
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "20241015", st.TradingDay)
	assert.Equal(t, engine.StateReady, st.TraderState)

	code, env = do(t, h, http.MethodGet, "/api/ticks/rb2501", "")
	assert.Equal(t, http.StatusOK, code)
	var ticks []engine.Tick
	require.NoError(t, json.Unmarshal(env.Data, &ticks))
	require.Len(t, ticks, 1)
	assert.Equal(t, "rb2501", ticks[0].InstrumentID)

	code, env = do(t, h, http.MethodGet, "/api/pending", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"op":"qry_order"`)
}

func TestInsertOrderDecodesDecimalPrice(t *testing.T) {
	eng := &fakeEngine{}
	h := NewServer(":0", eng, nil).Handler()

	code, env := do(t, h, http.MethodPost, "/api/orders", `{"instrumentId":"rb2501","direction":"buy","price":"3500.5","volume":2}`)
	require.Equal(t, http.StatusAccepted, code, env.Error)
	require.Len(t, eng.inserted, 1)
	assert.Equal(t, "3500.5", eng.inserted[0].Price.String())
	assert.Equal(t, int32(2), eng.inserted[0].Volume)

	code, env = do(t, h, http.MethodPost, "/api/orders", `{`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "invalid JSON")
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not ready", engine.ErrNotReady, http.StatusConflict},
		{"invalid", engine.ErrInvalidOrder, http.StatusBadRequest},
		{"throttled", &engine.SubmitError{Op: "order_insert", Code: -3}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewServer(":0", &fakeEngine{insertErr: tc.err}, nil).Handler()
			code, env := do(t, h, http.MethodPost, "/api/orders", `{"instrumentId":"rb2501"}`)
			assert.Equal(t, tc.want, code)
			assert.Equal(t, tc.err.Error(), env.Error)
		})
	}

	h := NewServer(":0", &fakeEngine{cancelErr: engine.ErrUnknownOrder}, nil).Handler()
	code, _ := do(t, h, http.MethodDelete, "/api/orders/1:2:3", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQueryRoute(t *testing.T) {
	eng := &fakeEngine{}
	h := NewServer(":0", eng, nil).Handler()
	code, _ := do(t, h, http.MethodPost, "/api/query/positions", "")
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, []string{"positions"}, eng.queried)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "ctp_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	h := NewServer(":0", &fakeEngine{}, nil, WithGatherer(reg)).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "ctp_test_total 1")
}

func TestWebSocketBroadcast(t *testing.T) {
	s := NewServer(":0", &fakeEngine{}, nil, WithHubBuffer(16))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	s.HubRef().Broadcast("tick", engine.Tick{InstrumentID: "rb2501", LastPrice: 3501})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string      `json:"type"`
		Data engine.Tick `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "tick", msg.Type)
	assert.Equal(t, 3501.0, msg.Data.LastPrice)

	cancel()
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "hub shutdown closes clients")
}
