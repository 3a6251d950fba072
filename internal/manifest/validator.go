// Where: internal/manifest/validator.go
// What: Shape validation for template documents.
// Why: Reject malformed templates before classification instead of mid-mutation.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

//go:embed schema/template.schema.json
var templateSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Validate checks that the parsed template has a Resources mapping of typed
// resources. Validation runs on the normalized document, after short-form
// intrinsic tags have been rewritten, so templates using !Ref and friends
// pass cleanly. It does not verify SAM semantics; the classifier tolerates
// anything that passes this shape check.
func Validate(t *Template) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	normalized, err := yamlv3.Marshal(t.raw)
	if err != nil {
		return fmt.Errorf("normalize template: %w", err)
	}
	jsonData, err := yaml.YAMLToJSON(normalized)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("template shape: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("template.schema.json", bytes.NewReader(templateSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("template.schema.json")
	})
	return compiledSchema, schemaErr
}
