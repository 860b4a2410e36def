package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// WIRE SCHEMA — JSON Schema of the serialized QueryContext
// ============================================================================
// The schema is reflected from the Go types so it cannot drift from what
// json.Marshal produces. The transport layer can check a payload with
// ValidateContext before sending it.
// ============================================================================

// ErrInvalidContext is returned when a serialized context fails validation.
var ErrInvalidContext = errors.New("invalid query context")

const contextSchemaURL = "query-context.json"

// ContextSchema returns the JSON Schema describing a serialized QueryContext.
func ContextSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return r.Reflect(&QueryContext{})
}

// JSONSchema describes the [column, ascending] tuple encoding.
func (OrderByClause) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array"}
}

// JSONSchema restricts result formats to the known values.
func (ResultFormat) JSONSchema() *jsonschema.Schema {
	return enumSchema(ResultFormatJSON, ResultFormatCSV, ResultFormatXLSX)
}

// JSONSchema restricts result types to the known values.
func (ResultType) JSONSchema() *jsonschema.Schema {
	return enumSchema(
		ResultTypeFull, ResultTypeSamples, ResultTypeQuery, ResultTypeResults,
		ResultTypeColumns, ResultTypeTimegrains, ResultTypePostProcessed, ResultTypeDrillDetail,
	)
}

// JSONSchema restricts datasource types to the known values.
func (DatasourceType) JSONSchema() *jsonschema.Schema {
	return enumSchema(DatasourceTable, DatasourceQuery, DatasourceDataset, DatasourceSlTable, DatasourceSavedQuery)
}

func enumSchema[T ~string](values ...T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

var compiledContextSchema = sync.OnceValues(func() (*validator.Schema, error) {
	raw, err := json.Marshal(ContextSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := validator.NewCompiler()
	if err := compiler.AddResource(contextSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(contextSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return compiled, nil
})

// ValidateContext checks a serialized QueryContext against ContextSchema.
func ValidateContext(data []byte) error {
	sch, err := compiledContextSchema()
	if err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidContext, err)
	}
	if err := sch.Validate(value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidContext, strings.Join(validationMessages(err), "; "))
	}
	return nil
}

// validationMessages flattens a validation error into "path: message" leaves.
func validationMessages(err error) []string {
	var verr *validator.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}
	var out []string
	collectLeaves(verr, &out)
	sort.Strings(out)
	return out
}

// printer renders validator messages in English.
var printer = message.NewPrinter(language.English)

func collectLeaves(err *validator.ValidationError, out *[]string) {
	if len(err.Causes) == 0 && err.ErrorKind != nil {
		path := "/" + strings.Join(err.InstanceLocation, "/")
		*out = append(*out, fmt.Sprintf("%s: %s", path, err.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}
