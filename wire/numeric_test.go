package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLovelaceRoundTrip(t *testing.T) {
	l := NewLovelace(123456789)
	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, "123456789", string(data))

	var decoded Lovelace
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0, l.Cmp(&decoded.Int))
}

func TestLovelaceRejectsNegative(t *testing.T) {
	var l Lovelace
	err := json.Unmarshal([]byte("-1"), &l)
	require.Error(t, err)
	var malformed *MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestLovelaceArbitraryPrecision(t *testing.T) {
	var l Lovelace
	huge := "184467440737095516160000"
	require.NoError(t, json.Unmarshal([]byte(huge), &l))
	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, huge, string(data))
}

func TestRatioRoundTrip(t *testing.T) {
	r := Ratio{Num: 3, Denom: 4}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `"3/4"`, string(data))

	var decoded Ratio
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestRatioRejectsZeroDenominator(t *testing.T) {
	var r Ratio
	err := json.Unmarshal([]byte(`"1/0"`), &r)
	require.Error(t, err)
}

func TestRatioRejectsMalformedString(t *testing.T) {
	var r Ratio
	err := json.Unmarshal([]byte(`"not-a-ratio"`), &r)
	require.Error(t, err)
}
