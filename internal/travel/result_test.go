package travel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(Ok([]Event{{Name: "Sunburn"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"name":"Sunburn","venue":"","category":""}]}`, string(b))

	b, err = json.Marshal(Fail[[]Event](errors.New("quota exceeded")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"quota exceeded"}`, string(b))

	var r Result[[]Event]
	require.NoError(t, json.Unmarshal(b, &r))
	assert.False(t, r.IsOK())
	assert.Equal(t, "quota exceeded", r.Message())
}

func TestZeroResultIsNotOK(t *testing.T) {
	var r Result[[]Place]
	assert.False(t, r.IsOK())
	assert.Equal(t, "no result", r.Message())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"no result"}`, string(b))
}

func TestResultUnmarshalRequiresTag(t *testing.T) {
	for _, in := range []string{`{}`, `null`, `{"other":1}`} {
		var r Result[[]Event]
		assert.Error(t, json.Unmarshal([]byte(in), &r), in)
		assert.False(t, r.IsOK(), in)
	}

	var r Result[[]Event]
	require.NoError(t, json.Unmarshal([]byte(`{"data":null}`), &r))
	assert.True(t, r.IsOK())
	assert.Empty(t, r.Value)
}

func TestFailNilError(t *testing.T) {
	r := Fail[int](nil)
	assert.False(t, r.IsOK())
	assert.NotEmpty(t, r.Message())
}

func TestPlanRoundTrip(t *testing.T) {
	results := okResults()
	results.Route = Fail[RouteSummary](errors.New("no route"))
	plan := Plan{TripID: "t1", Trip: testTrip(), Results: results, Summary: Merge(results)}

	b, err := json.Marshal(plan)
	require.NoError(t, err)

	var got Plan
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "no route", got.Results.Route.Message())
	assert.Equal(t, plan.Results.Flights.Value, got.Results.Flights.Value)
	assert.Equal(t, plan.Summary.Domains(), got.Summary.Domains())
}
