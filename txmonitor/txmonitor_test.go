package txmonitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/transport"
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

	return New(corr)
}

func TestAwaitAcquireTransitionsToAcquired(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		return reply("AwaitAcquire", requestID(req), map[string]any{
			"AwaitAcquired": map[string]any{"slot": 12345},
		})
	})

	slot, err := client.AwaitAcquire(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), slot)
	assert.Equal(t, Acquired, client.State())

	got, ok := client.AcquiredSlot()
	assert.True(t, ok)
	assert.Equal(t, uint64(12345), got)
}

func TestHasTxWithoutAcquireFails(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte { return nil })

	_, err := client.HasTx(context.Background(), "deadbeef")
	require.Error(t, err)
	var unacquired *UnacquiredError
	require.ErrorAs(t, err, &unacquired)
}

func TestHasTxAfterAcquire(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		switch methodOf(req) {
		case "AwaitAcquire":
			return reply("AwaitAcquire", requestID(req), map[string]any{
				"AwaitAcquired": map[string]any{"slot": 1},
			})
		case "HasTx":
			args := req["args"].(map[string]any)
			assert.Equal(t, "deadbeef", args["id"])
			return reply("HasTx", requestID(req), true)
		}
		return nil
	})

	_, err := client.AwaitAcquire(context.Background(), nil)
	require.NoError(t, err)

	present, err := client.HasTx(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestNextTxReturnsIDThenNull(t *testing.T) {
	var calls int
	client := newTestClient(t, func(req map[string]any) []byte {
		switch methodOf(req) {
		case "AwaitAcquire":
			return reply("AwaitAcquire", requestID(req), map[string]any{
				"AwaitAcquired": map[string]any{"slot": 1},
			})
		case "NextTx":
			calls++
			if calls == 1 {
				return reply("NextTx", requestID(req), "abc123")
			}
			return reply("NextTx", requestID(req), nil)
		}
		return nil
	})

	_, err := client.AwaitAcquire(context.Background(), nil)
	require.NoError(t, err)

	first, err := client.NextTx(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "abc123", first.TxID)
	assert.False(t, first.IsNull)

	second, err := client.NextTx(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.IsNull)
}

func TestSizeAndCapacity(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		switch methodOf(req) {
		case "AwaitAcquire":
			return reply("AwaitAcquire", requestID(req), map[string]any{
				"AwaitAcquired": map[string]any{"slot": 1},
			})
		case "SizeAndCapacity":
			return reply("SizeAndCapacity", requestID(req), map[string]any{
				"capacity": 1024, "currentSize": 512, "numberOfTxs": 3,
			})
		}
		return nil
	})

	_, err := client.AwaitAcquire(context.Background(), nil)
	require.NoError(t, err)

	sc, err := client.SizeAndCapacity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), sc.Capacity)
	assert.Equal(t, uint32(512), sc.CurrentSize)
	assert.Equal(t, uint32(3), sc.NumberOfTxs)
}

func TestReleaseTransitionsToIdle(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		switch methodOf(req) {
		case "AwaitAcquire":
			return reply("AwaitAcquire", requestID(req), map[string]any{
				"AwaitAcquired": map[string]any{"slot": 1},
			})
		case "ReleaseMempool":
			return reply("ReleaseMempool", requestID(req), "Released")
		}
		return nil
	})

	_, err := client.AwaitAcquire(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, client.Release(context.Background()))
	assert.Equal(t, Idle, client.State())

	_, ok := client.AcquiredSlot()
	assert.False(t, ok)
}

func TestReleaseWithoutAcquireIsError(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte { return nil })

	err := client.Release(context.Background())
	require.Error(t, err)
	var unacquired *UnacquiredError
	require.ErrorAs(t, err, &unacquired)
}
