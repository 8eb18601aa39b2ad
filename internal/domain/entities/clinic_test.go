package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 3.0, RoundRating(3))
	assert.Equal(t, 4.3, RoundRating(4.333333))
	assert.Equal(t, 4.7, RoundRating(4.666666))
	assert.Equal(t, 0.0, RoundRating(0))
}

func TestRoundRating_Ties(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{2.25, 2.2}, // ratings 2,2,2,3
		{4.25, 4.2},
		{1.25, 1.2},
		{3.75, 3.8},
		{4.5, 4.5},
		// 2.85 is stored slightly above the tie and 2.65 slightly below
		{2.85, 2.9},
		{2.65, 2.6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundRating(tt.avg), "avg %v", tt.avg)
	}
}

func TestClinicPatch_Columns(t *testing.T) {
	phone := "123"
	patch := ClinicPatch{Phone: &phone}

	assert.Equal(t, map[string]string{"phone": "123"}, patch.Columns())
	assert.False(t, patch.IsEmpty())
	assert.True(t, ClinicPatch{}.IsEmpty())
}

func TestClinicPatch_EmptyStringIsPresent(t *testing.T) {
	var patch ClinicPatch
	require.NoError(t, json.Unmarshal([]byte(`{"website": ""}`), &patch))

	assert.Equal(t, map[string]string{"website": ""}, patch.Columns())
}

func TestClinicDetail_FlattensSummary(t *testing.T) {
	detail := ClinicDetail{
		ClinicSummary: ClinicSummary{ID: 7, Name: "Dental Care", Rating: 3, ReviewCount: 2},
		Reviews:       []ReviewView{},
	}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Dental Care", out["name"])
	assert.Equal(t, float64(2), out["reviewCount"])
	assert.Contains(t, out, "reviews")
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(0.5))
	assert.True(t, ValidRating(4.5))
}
