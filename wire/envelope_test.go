package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestEnvelope(t *testing.T) {
	req := NewRequest(MethodFindIntersect, []Point{{Slot: 100, Hash: "abc"}}, Mirror{"requestId": "r-1"})

	assert.Equal(t, TypeRequest, req.Type)
	assert.Equal(t, ServiceName, req.ServiceName)
	assert.Equal(t, Version, req.Version)
	assert.Equal(t, MethodFindIntersect, req.MethodName)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"methodname":"FindIntersect"`)
	assert.Contains(t, string(data), `"type":"jsonwsp/request"`)
}

func TestParseInboundResponse(t *testing.T) {
	frame := []byte(`{
		"type": "jsonwsp/response",
		"version": "1.0",
		"servicename": "ogmios",
		"methodname": "FindIntersect",
		"result": {"IntersectionNotFound": {"tip": "origin"}},
		"reflection": {"requestId": "r-42"}
	}`)

	resp, fault, err := ParseInbound(frame)
	require.NoError(t, err)
	require.Nil(t, fault)
	require.NotNil(t, resp)
	assert.Equal(t, MethodFindIntersect, resp.MethodName)
	assert.Equal(t, "r-42", resp.Reflection.RequestID())
}

func TestParseInboundFault(t *testing.T) {
	frame := []byte(`{
		"type": "jsonwsp/fault",
		"version": "1.0",
		"servicename": "ogmios",
		"methodname": "SubmitTx",
		"fault": {"code": "client", "string": "malformed request"},
		"reflection": {"requestId": "r-7"}
	}`)

	resp, fault, err := ParseInbound(frame)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.NotNil(t, fault)
	assert.Equal(t, "client", fault.FaultDetail.Code)
	assert.Equal(t, "r-7", fault.Reflection.RequestID())
}

func TestParseInboundMalformed(t *testing.T) {
	_, _, err := ParseInbound([]byte(`{"type": "jsonwsp/something-else"}`))
	require.Error(t, err)
	var malformed *MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestReflectionRequestIDMissing(t *testing.T) {
	var r Reflection
	assert.Equal(t, "", r.RequestID())

	r = Reflection{"other": "value"}
	assert.Equal(t, "", r.RequestID())
}
