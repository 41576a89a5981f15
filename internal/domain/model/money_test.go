package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Money
	}{
		{"number", `12.5`, 1250},
		{"string", `"45.99"`, 4599},
		{"integer", `3`, 300},
		{"negative string", `"-0.25"`, -25},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMoney_UnmarshalJSON_Invalid(t *testing.T) {
	var m Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`"NaN"`), &m))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "12.05", Money(1205).String())
	assert.Equal(t, "-3.40", Money(-340).String())
}

func TestMoney_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: MustMoney("19.9")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":19.90}`, string(b))
}

func TestParseMoney_OutOfRange(t *testing.T) {
	for _, in := range []string{"1e30", "-1e30", "92233720368547758.08"} {
		_, err := ParseMoney(in)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "out of range")
	}

	m, err := ParseMoney("1000000000.25")
	require.NoError(t, err)
	assert.Equal(t, "1000000000.25", m.String())

	var decoded Money
	assert.Error(t, json.Unmarshal([]byte(`1e30`), &decoded))
}
