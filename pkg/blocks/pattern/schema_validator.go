package pattern

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/types"
)

// SchemaValidator gates its bound dict input behind a JSON Schema: on a
// passing input it returns the input unchanged, so a schema-validated
// sub-application invocation block only ever sees conforming data; on
// failure it returns an error naming every violation rather than letting
// invalid data reach the invocation.
type SchemaValidator struct {
	schemaLoader gojsonschema.JSONLoader
}

func (n *SchemaValidator) TypeName() string { return "SchemaValidator" }
func (n *SchemaValidator) IsInput() bool    { return false }
func (n *SchemaValidator) IsOutput() bool   { return false }

// Invoke validates the bound "value" input against the configured
// schema and passes it through unchanged on success.
func (n *SchemaValidator) Invoke(_ block.RunContext, bindings map[string]interface{}) (interface{}, error) {
	input := bindings["value"]

	inputBytes, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("SchemaValidator: failed to serialize input: %w", err)
	}

	result, err := gojsonschema.Validate(n.schemaLoader, gojsonschema.NewBytesLoader(inputBytes))
	if err != nil {
		return nil, fmt.Errorf("SchemaValidator: %w", err)
	}
	if result.Valid() {
		return input, nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return nil, fmt.Errorf("SchemaValidator: input failed schema validation: %s", strings.Join(msgs, "; "))
}

// RegisterSchemaValidator adds the SchemaValidator descriptor to reg.
func RegisterSchemaValidator(reg *registry.Registry) error {
	return reg.Register(registry.Descriptor{
		Name:     "SchemaValidator",
		Category: registry.CategoryBlock,
		Impl:     reflect.TypeOf(&SchemaValidator{}),
		Slots: []registry.Param{
			{Name: "schema", Type: types.Any},
		},
		Inports: []registry.Param{
			{Name: "value", Type: types.TypeDict},
		},
		Outport:    types.TypeDict,
		HasOutport: true,
		New:        newSchemaValidator,
	})
}

func newSchemaValidator(slots map[string]interface{}) (interface{}, error) {
	schema, ok := slots["schema"]
	if !ok {
		return nil, fmt.Errorf("SchemaValidator: slot %q is required", "schema")
	}
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("SchemaValidator: invalid schema: %w", err)
	}
	return &SchemaValidator{schemaLoader: gojsonschema.NewBytesLoader(schemaBytes)}, nil
}
