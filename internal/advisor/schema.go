package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resultSchemaURL = "schema://advisor-result.json"

// resultSchema is reflected from Result once and compiled for validation.
var resultSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := ResultSchemaJSON()
	if err != nil {
		return nil, err
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing result schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resultSchemaURL, parsed); err != nil {
		return nil, fmt.Errorf("adding result schema: %w", err)
	}
	sch, err := c.Compile(resultSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling result schema: %w", err)
	}
	return sch, nil
})

// ResultSchemaJSON returns the JSON Schema an advisor's output must satisfy.
// Extra properties are allowed and replayed to clients untouched.
func ResultSchemaJSON() ([]byte, error) {
	r := invopop.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	b, err := json.Marshal(r.Reflect(&Result{}))
	if err != nil {
		return nil, fmt.Errorf("marshaling result schema: %w", err)
	}
	return b, nil
}

func validateResult(raw []byte) error {
	sch, err := resultSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: output is not JSON: %w", ErrAdvisorFailed, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: output does not match schema: %w", ErrAdvisorFailed, err)
	}
	return nil
}
