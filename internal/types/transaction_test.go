package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "4.50", want: "4.50"},
		{name: "thousands separator", input: "1,020.00", want: "1020.00"},
		{name: "dollar sign", input: "$23.4", want: "23.40"},
		{name: "negative", input: "-7.25", want: "-7.25"},
		{name: "rounds to cents", input: "0.005", want: "0.01"},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestAmountJSON(t *testing.T) {
	raw := RawTransaction{
		ID:          "1",
		Date:        "2024-02-01",
		Description: "EFTPOS PURCHASE STORE XYZ",
		Amount:      MustAmount("-23.4"),
		Type:        TransactionTypeDebit,
	}

	b, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","date":"2024-02-01","description":"EFTPOS PURCHASE STORE XYZ","amount":-23.40,"type":"debit"}`, string(b))
	assert.Contains(t, string(b), `"amount":-23.40`)

	var decoded RawTransaction
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "-23.40", decoded.Amount.String())
	assert.Nil(t, decoded.Balance)
}

func TestAmountNegAbs(t *testing.T) {
	a := MustAmount("12.30")
	assert.Equal(t, "-12.30", a.Neg().String())
	assert.Equal(t, "12.30", a.Neg().Abs().String())
}
