package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountJSONRoundsToTwoDecimals(t *testing.T) {
	out, err := json.Marshal(struct {
		Remaining Amount `json:"remaining"`
	}{Remaining: MustAmount("600")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"remaining":600.00}`, string(out))
	assert.Contains(t, string(out), "600.00")
}

func TestAmountUnmarshalAcceptsNumberAndString(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1000, "b": "400.5", "c": null}`), &payload))
	assert.Equal(t, "1000.00", payload.A.String())
	assert.Equal(t, "400.50", payload.B.String())
	assert.True(t, payload.C.IsZero())

	var bad struct {
		A Amount `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a": "ten"}`), &bad))
}

func TestParseLeadStatus(t *testing.T) {
	s, ok := ParseLeadStatus(" interested ")
	require.True(t, ok)
	assert.Equal(t, LeadInterested, s)

	_, ok = ParseLeadStatus("won")
	assert.False(t, ok)
}

func TestCanonicalPurpose(t *testing.T) {
	assert.Equal(t, "GEM REGISTRATION", CanonicalPurpose("gem registration"))
	assert.Equal(t, "custom", CanonicalPurpose(" custom "))
}

func TestPriorityDefault(t *testing.T) {
	assert.Equal(t, PriorityMedium, Priority("").OrDefault())
	assert.Equal(t, PriorityHigh, PriorityHigh.OrDefault())
	assert.False(t, Priority("Urgent").Valid())
}

func TestLeadInputValidation(t *testing.T) {
	val := NewValidator()

	valid := LeadInput{Company: "Acme", Contact: "9876543210", Email: "a@b.co", Status: LeadNew}
	require.NoError(t, val.Struct(valid))

	cases := map[string]LeadInput{
		"missing company": {Company: ""},
		"non-digit phone": {Company: "Acme", Contact: "98-76"},
		"long phone":      {Company: "Acme", Contact: "1234567890123456"},
		"bad email":       {Company: "Acme", Email: "not-an-email"},
		"unknown status":  {Company: "Acme", Status: "Won"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, val.Struct(in))
		})
	}
}
