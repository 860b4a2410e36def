package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatasourceKey(t *testing.T) {
	tests := []struct {
		in   string
		want DatasourceKey
	}{
		{"7__table", DatasourceKey{ID: 7, Type: DatasourceTable}},
		{"12__saved_query", DatasourceKey{ID: 12, Type: DatasourceSavedQuery}},
		{"3__sl_table", DatasourceKey{ID: 3, Type: DatasourceSlTable}},
		{"42__query", DatasourceKey{ID: 42, Type: DatasourceQuery}},
		{"9__dataset", DatasourceKey{ID: 9, Type: DatasourceDataset}},
		// Unknown types resolve to table.
		{"5__druid", DatasourceKey{ID: 5, Type: DatasourceTable}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDatasourceKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDatasourceKeyMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"7",
		"7_table",  // single underscore
		"7__",      // nothing after the separator
		"__table",  // no id
		"abc__table",
		"7___table", // last "__" leaves "7_" as the id
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDatasourceKey(in)
			require.ErrorIs(t, err, ErrMalformedDatasource)
		})
	}
}

func TestDatasourceKeyString(t *testing.T) {
	key := DatasourceKey{ID: 7, Type: DatasourceSavedQuery}
	assert.Equal(t, "7__saved_query", key.String())

	parsed, err := ParseDatasourceKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}
