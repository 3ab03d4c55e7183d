package advisor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/fitrec/internal/catalog"
)

func TestMetricsComplete(t *testing.T) {
	assert.True(t, Metrics{Age: 25, Height: 170, Weight: 70}.Complete())
	assert.False(t, Metrics{Height: 170, Weight: 70}.Complete())
	assert.False(t, Metrics{}.Complete())
}

func TestResultMarshalEmptyLists(t *testing.T) {
	b, err := json.Marshal(Result{BMICategory: Normal})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, []any{}, out["endurance_workouts"])
	assert.Equal(t, []any{}, out["strength_workouts"])
	assert.NotContains(t, out, "data_driven")
}

func TestDecodeResult(t *testing.T) {
	raw := []byte(`{"bmi":31.2,"bmi_category":"Obesitas","age_category":"Tua","difficulty_level":"Easy","summary":"s",` +
		`"endurance_workouts":[{"name":"Brisk Walking","jenis":"endurance","target":"Jantung","kesulitan":"Easy","description":"d"}],` +
		`"strength_workouts":[],"note":"kept"}`)

	res, err := DecodeResult(raw)
	require.NoError(t, err)
	assert.Equal(t, Obese, res.BMICategory)
	require.Len(t, res.EnduranceWorkouts, 1)
	assert.Equal(t, catalog.Easy, res.EnduranceWorkouts[0].Kesulitan)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(b))
}

func TestDecodeResultRejects(t *testing.T) {
	cases := map[string]string{
		"not json":       `Warning: no data`,
		"missing fields": `{"bmi":20}`,
		"wrong type":     `{"bmi":"20","bmi_category":"Normal","age_category":"Muda","difficulty_level":"Easy","summary":"","endurance_workouts":[],"strength_workouts":[]}`,
		"empty category": `{"bmi":20,"bmi_category":"","age_category":"Muda","difficulty_level":"Easy","summary":"","endurance_workouts":[],"strength_workouts":[]}`,
		"bad record":     `{"bmi":20,"bmi_category":"Normal","age_category":"Muda","difficulty_level":"Easy","summary":"","endurance_workouts":[{"name":1}],"strength_workouts":[]}`,
	}
	for name, raw := range cases {
		_, err := DecodeResult([]byte(raw))
		assert.ErrorIs(t, err, ErrAdvisorFailed, name)
	}
}

func TestResultSchemaJSON(t *testing.T) {
	b, err := ResultSchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Contains(t, doc["required"], "strength_workouts")
	assert.NotContains(t, doc["required"], "data_driven")
}
