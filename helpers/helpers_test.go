package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sprintCSV = []byte(`Issue Key,Story Points,Time Spent Hours
PROJ-101,5,12.5
PROJ-102,3,
PROJ-103,8,16
`)

func TestParseNumericColumn(t *testing.T) {
	points, err := ParseNumericColumn(sprintCSV, "story_points")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 8}, points)

	hours, err := ParseNumericColumn(sprintCSV, "Time Spent Hours")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 16}, hours)
}

func TestParseNumericColumnErrors(t *testing.T) {
	_, err := ParseNumericColumn(sprintCSV, "priority")
	require.ErrorIs(t, err, ErrColumnNotFound)

	_, err = ParseNumericColumn(sprintCSV, "issue_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	_, err = ParseNumericColumn(nil, "x")
	require.Error(t, err)
}

func TestApplyJQ(t *testing.T) {
	doc := []byte(`{"queries":[{"metrics":["count"]},{"metrics":["sum__num"]}],"result_type":"full"}`)

	values, err := ApplyJQ(doc, ".queries[].metrics[0]")
	require.NoError(t, err)
	assert.Equal(t, []any{"count", "sum__num"}, values)

	values, err = ApplyJQ(doc, ".queries | length")
	require.NoError(t, err)
	assert.Equal(t, []any{2}, values)

	_, err = ApplyJQ(doc, ".queries[")
	require.Error(t, err)

	_, err = ApplyJQ([]byte(`{`), ".")
	require.Error(t, err)

	_, err = ApplyJQ(doc, ".result_type | error")
	require.Error(t, err)
}
