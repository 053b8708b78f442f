package txsubmission

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

func TestSubmitTxSuccess(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		assert.Equal(t, "deadbeef", req["args"].(map[string]any)["submit"])
		return reply("SubmitTx", requestID(req), map[string]any{
			"SubmitSuccess": map[string]any{"txId": "abc123"},
		})
	})

	txID, err := client.SubmitTx(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "abc123", txID)
}

func TestSubmitTxRejectedPreservesOrder(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		return reply("SubmitTx", requestID(req), map[string]any{
			"SubmitFail": []any{
				map[string]any{"feeTooSmall": map[string]any{"minimumRequiredFee": 100}},
				map[string]any{"badInputs": map[string]any{"badInputs": []any{}}},
			},
		})
	})

	_, err := client.SubmitTx(context.Background(), "deadbeef")
	require.Error(t, err)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Len(t, rejected.Errors, 2)
	assert.Equal(t, wire.SubmitErrFeeTooSmall, rejected.Errors[0].Kind)
	assert.Equal(t, wire.SubmitErrBadInputs, rejected.Errors[1].Kind)
}

func TestSubmitTxUnrecognizedErrorFallsBackToUnknown(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		return reply("SubmitTx", requestID(req), map[string]any{
			"SubmitFail": []any{
				map[string]any{"somethingBrandNew": map[string]any{"detail": "x"}},
			},
		})
	})

	_, err := client.SubmitTx(context.Background(), "deadbeef")
	require.Error(t, err)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Len(t, rejected.Errors, 1)
	assert.Equal(t, wire.SubmitErrUnknown, rejected.Errors[0].Kind)
}

func TestEvaluateTxSuccess(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		args := req["args"].(map[string]any)
		assert.Equal(t, "deadbeef", args["evaluate"])
		return reply("EvaluateTx", requestID(req), map[string]any{
			"EvaluationResult": map[string]any{
				"spend:0": map[string]any{"memory": 1000, "steps": 2000},
			},
		})
	})

	budgets, err := client.EvaluateTx(context.Background(), "deadbeef", nil)
	require.NoError(t, err)
	require.Contains(t, budgets, wire.RedeemerPointer("spend:0"))
	assert.Equal(t, uint64(1000), budgets["spend:0"].Memory)
	assert.Equal(t, uint64(2000), budgets["spend:0"].Steps)
}

func TestEvaluateTxWithAdditionalUtxoSet(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		args := req["args"].(map[string]any)
		assert.NotNil(t, args["additionalUtxoSet"])
		return reply("EvaluateTx", requestID(req), map[string]any{
			"EvaluationResult": map[string]any{},
		})
	})

	extra := wire.Utxo{{
		TxIn:  wire.TxIn{TxID: "deadbeef", Index: 0},
		TxOut: wire.TxOut{Address: "addr1xyz"},
	}}
	budgets, err := client.EvaluateTx(context.Background(), "deadbeef", extra)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestEvaluateTxFailurePreservesOrder(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		return reply("EvaluateTx", requestID(req), map[string]any{
			"EvaluationFailure": []any{
				map[string]any{"incompatibleEra": map[string]any{"era": "byron"}},
				map[string]any{"notEnoughSynced": map[string]any{}},
			},
		})
	})

	_, err := client.EvaluateTx(context.Background(), "deadbeef", nil)
	require.Error(t, err)
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	require.Len(t, evalErr.Errors, 2)
	assert.Equal(t, wire.EvalErrIncompatibleEra, evalErr.Errors[0].Kind)
	assert.Equal(t, wire.EvalErrNotEnoughSynced, evalErr.Errors[1].Kind)
}

func TestEvaluateTxScriptFailuresDecode(t *testing.T) {
	client := newTestClient(t, func(req map[string]any) []byte {
		return reply("EvaluateTx", requestID(req), map[string]any{
			"EvaluationFailure": []any{
				map[string]any{"scriptFailures": map[string]any{
					"spend:0": []any{
						map[string]any{"validatorFailed": map[string]any{"error": "boom", "traces": []any{"t1"}}},
					},
				}},
			},
		})
	})

	_, err := client.EvaluateTx(context.Background(), "deadbeef", nil)
	require.Error(t, err)
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	require.Len(t, evalErr.Errors, 1)
	assert.Equal(t, wire.EvalErrScriptFailures, evalErr.Errors[0].Kind)

	var failures wire.ScriptFailures
	require.NoError(t, json.Unmarshal(evalErr.Errors[0].Raw, &failures))
	require.Contains(t, failures, wire.RedeemerPointer("spend:0"))
	assert.Equal(t, wire.ScriptFailureValidatorFailed, failures["spend:0"][0].Kind)
}
