package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadStatusCanonicalises(t *testing.T) {
	st, err := ParseLeadStatus("lost")
	require.NoError(t, err)
	assert.Equal(t, StatusLost, st)

	st, err = ParseLeadStatus(" QUALIFIED ")
	require.NoError(t, err)
	assert.Equal(t, StatusQualified, st)

	_, err = ParseLeadStatus("won")
	assert.Error(t, err)
}

func TestParseLeadSourceCanonicalises(t *testing.T) {
	src, err := ParseLeadSource("cold call")
	require.NoError(t, err)
	assert.Equal(t, SourceColdCall, src)

	_, err = ParseLeadSource("billboard")
	assert.Error(t, err)
}

func TestLeadPatchApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	lead := Lead{ID: "42", Name: "Rahul Sharma", Status: StatusNew, CreatedAt: created}

	status := StatusContacted
	name := "Rahul S."
	out := LeadPatch{Status: &status, Name: &name}.Apply(lead)

	assert.Equal(t, "42", out.ID)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, StatusContacted, out.Status)
	assert.Equal(t, "Rahul S.", out.Name)
	assert.Equal(t, StatusNew, lead.Status)
	assert.True(t, LeadPatch{}.IsEmpty())
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-09"`), &d))
	assert.Equal(t, Date{Year: 2026, Month: time.March, Day: 9}, d)

	require.NoError(t, json.Unmarshal([]byte(`"2026-03-09T18:30:00Z"`), &d))
	assert.Equal(t, "2026-03-09", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-09"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2026"`), &d))
}

func TestDateBefore(t *testing.T) {
	a := Date{Year: 2026, Month: time.January, Day: 31}
	b := Date{Year: 2026, Month: time.February, Day: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"phone": "Phone must be 10 digits.",
		"name":  "Name is required.",
	}}
	assert.Equal(t, "validation failed: name: Name is required.; phone: Phone must be 10 digits.", err.Error())
	assert.True(t, IsValidation(err))
	assert.False(t, IsNetwork(err))
}
