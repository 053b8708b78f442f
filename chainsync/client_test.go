package chainsync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/transport"
	"github.com/ocx/ogmios-go/wire"
)

func fakeBridge(t *testing.T, respond func(req map[string]any) []byte) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastTipUpdate":"2023-01-01T00:00:00Z"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req map[string]any
			if err := json.Unmarshal(data, &req); err != nil {
				continue
			}
			reply := respond(req)
			if reply == nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}
		}
	})
	return httptest.NewServer(mux)
}

func dialTestBridge(t *testing.T, srv *httptest.Server) *transport.Conn {
	t.Helper()
	hostPort := strings.TrimPrefix(srv.URL, "http://")
	parts := strings.Split(hostPort, ":")
	require.Len(t, parts, 2)
	port, err := strconv.Atoi(parts[1])
	require.NoError(t, err)

	conn, err := transport.Dial(context.Background(), transport.Config{Host: parts[0], Port: port, InteractionType: transport.LongRunning}, nil)
	require.NoError(t, err)
	return conn
}

func requestID(req map[string]any) string {
	mirror, _ := req["mirror"].(map[string]any)
	rid, _ := mirror["requestId"].(string)
	return rid
}

func methodOf(req map[string]any) string {
	m, _ := req["methodname"].(string)
	return m
}

func reply(methodName, rid string, result any) []byte {
	data, _ := json.Marshal(map[string]any{
		"type":        "jsonwsp/response",
		"version":     "1.0",
		"servicename": "ogmios",
		"methodname":  methodName,
		"result":      result,
		"reflection":  map[string]any{"requestId": rid},
	})
	return data
}

func newTestClient(t *testing.T, respond func(req map[string]any) []byte) *Client {
	t.Helper()
	srv := fakeBridge(t, respond)
	t.Cleanup(srv.Close)
	conn := dialTestBridge(t, srv)

	corr := correlator.New(conn, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go corr.Run(ctx)

	return New(corr, conn.Close, nil)
}

func TestFindIntersectFound(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		return reply("FindIntersect", rid, map[string]any{
			"IntersectionFound": map[string]any{"point": "origin", "tip": "origin"},
		})
	})

	found, err := client.FindIntersect(context.Background(), []wire.PointOrOrigin{wire.OriginPoint})
	require.NoError(t, err)
	assert.True(t, found.Point.IsOrigin)
}

func TestFindIntersectNotFound(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		return reply("FindIntersect", rid, map[string]any{
			"IntersectionNotFound": map[string]any{"tip": "origin"},
		})
	})

	_, err := client.FindIntersect(context.Background(), []wire.PointOrOrigin{wire.OriginPoint})
	require.Error(t, err)
	var notFound *IntersectionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestStartSyncResolvesTipAndFailsWhenOrigin(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		return reply("FindIntersect", rid, map[string]any{
			"IntersectionFound": map[string]any{"point": "origin", "tip": "origin"},
		})
	})

	_, err := client.StartSync(context.Background(), nil, 10, Handlers{}, false)
	require.Error(t, err)
	var tipIsOrigin *TipIsOriginError
	require.ErrorAs(t, err, &tipIsOrigin)
}

func TestStartSyncStreamsRollForward(t *testing.T) {
	var requestNextCount atomic.Int32
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		switch methodOf(req) {
		case "FindIntersect":
			return reply("FindIntersect", rid, map[string]any{
				"IntersectionFound": map[string]any{"point": "origin", "tip": "origin"},
			})
		case "RequestNext":
			n := requestNextCount.Add(1)
			if n > 1 {
				return nil // only answer the first priming message
			}
			return reply("RequestNext", rid, map[string]any{
				"RollForward": map[string]any{
					"block": map[string]any{"babbage": map[string]any{
						"header": map[string]any{"slot": 1, "blockHeight": 1, "blockHash": "deadbeef", "prevHash": "origin", "issuerVk": "x", "issuerVrf": "x"},
						"txs":    []any{},
					}},
					"tip": map[string]any{"slot": 1, "hash": "deadbeef", "blockNo": 1},
				},
			})
		}
		return nil
	})

	dispatched := make(chan struct{}, 1)
	handlers := Handlers{
		RollForward: func(block wire.Block, tip wire.TipOrOrigin, next func()) {
			dispatched <- struct{}{}
			next()
		},
		RollBackward: func(point wire.PointOrOrigin, tip wire.TipOrOrigin, next func()) { next() },
	}

	_, err := client.StartSync(context.Background(), []wire.PointOrOrigin{wire.OriginPoint}, 1, handlers, false)
	require.NoError(t, err)

	select {
	case <-dispatched:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for RollForward dispatch")
	}
}

func TestSequentialModeSerializesDispatch(t *testing.T) {
	var served atomic.Int32
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		switch methodOf(req) {
		case "FindIntersect":
			return reply("FindIntersect", rid, map[string]any{
				"IntersectionFound": map[string]any{"point": "origin", "tip": "origin"},
			})
		case "RequestNext":
			n := served.Add(1)
			if n > 2 {
				return nil
			}
			return reply("RequestNext", rid, map[string]any{
				"RollBackward": map[string]any{"point": "origin", "tip": "origin"},
			})
		}
		return nil
	})

	var active atomic.Int32
	var overlapped atomic.Bool
	order := make(chan int, 2)
	handlers := Handlers{
		RollForward: func(wire.Block, wire.TipOrOrigin, func()) {},
		RollBackward: func(point wire.PointOrOrigin, tip wire.TipOrOrigin, next func()) {
			if active.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(20 * time.Millisecond)
			order <- int(active.Load())
			active.Add(-1)
			next()
		},
	}

	_, err := client.StartSync(context.Background(), []wire.PointOrOrigin{wire.OriginPoint}, 2, handlers, true)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-order:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for sequential dispatch")
		}
	}
	assert.False(t, overlapped.Load())
}

func TestHandlerPanicDoesNotCrashDispatch(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		rid := requestID(req)
		switch methodOf(req) {
		case "FindIntersect":
			return reply("FindIntersect", rid, map[string]any{
				"IntersectionFound": map[string]any{"point": "origin", "tip": "origin"},
			})
		case "RequestNext":
			return reply("RequestNext", rid, map[string]any{
				"RollBackward": map[string]any{"point": "origin", "tip": "origin"},
			})
		}
		return nil
	})

	recovered := make(chan struct{}, 1)
	handlers := Handlers{
		RollForward: func(wire.Block, wire.TipOrOrigin, func()) {},
		RollBackward: func(point wire.PointOrOrigin, tip wire.TipOrOrigin, next func()) {
			defer func() { recovered <- struct{}{} }()
			panic("boom")
		},
	}

	_, err := client.StartSync(context.Background(), []wire.PointOrOrigin{wire.OriginPoint}, 1, handlers, false)
	require.NoError(t, err)

	select {
	case <-recovered:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was never invoked")
	}
}
