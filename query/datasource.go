package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDatasource is returned for datasource strings not of the form "<id>__<type>".
var ErrMalformedDatasource = errors.New("malformed datasource")

// DatasourceType names the kind of datasource a chart queries.
type DatasourceType string

const (
	DatasourceTable      DatasourceType = "table"
	DatasourceQuery      DatasourceType = "query"
	DatasourceDataset    DatasourceType = "dataset"
	DatasourceSlTable    DatasourceType = "sl_table"
	DatasourceSavedQuery DatasourceType = "saved_query"
)

var datasourceTypes = map[string]DatasourceType{
	string(DatasourceTable):      DatasourceTable,
	string(DatasourceQuery):      DatasourceQuery,
	string(DatasourceDataset):    DatasourceDataset,
	string(DatasourceSlTable):    DatasourceSlTable,
	string(DatasourceSavedQuery): DatasourceSavedQuery,
}

const datasourceSeparator = "__"

// DatasourceKey identifies a datasource.
type DatasourceKey struct {
	ID   int            `json:"id"`
	Type DatasourceType `json:"type"`
}

// ParseDatasourceKey parses "<id>__<type>", e.g. "7__table".
//
// The string is split on the last "__". The id must be a base-10 integer and
// the type must be non-empty; unknown type names resolve to table.
func ParseDatasourceKey(s string) (DatasourceKey, error) {
	i := strings.LastIndex(s, datasourceSeparator)
	if i < 0 {
		return DatasourceKey{}, fmt.Errorf("%w %q: missing %q separator", ErrMalformedDatasource, s, datasourceSeparator)
	}
	idPart, typePart := s[:i], s[i+len(datasourceSeparator):]

	id, err := strconv.Atoi(idPart)
	if err != nil {
		return DatasourceKey{}, fmt.Errorf("%w %q: id %q is not an integer", ErrMalformedDatasource, s, idPart)
	}
	if typePart == "" {
		return DatasourceKey{}, fmt.Errorf("%w %q: missing type after %q", ErrMalformedDatasource, s, datasourceSeparator)
	}

	typ, ok := datasourceTypes[typePart]
	if !ok {
		typ = DatasourceTable
	}
	return DatasourceKey{ID: id, Type: typ}, nil
}

// String returns the "<id>__<type>" form.
func (k DatasourceKey) String() string {
	return strconv.Itoa(k.ID) + datasourceSeparator + string(k.Type)
}
