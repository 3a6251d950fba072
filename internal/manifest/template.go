// Where: internal/manifest/template.go
// What: Parsed template model and the function classifier.
// Why: Give the injector an ordered, typed view over template resources.
package manifest

// FunctionResourceType marks a resource as a serverless function definition.
const FunctionResourceType = "AWS::Serverless::Function"

// Template is a decoded SAM/CloudFormation document. The raw map is shared
// with every Function descriptor produced by Classify, so layer mutations
// made through a descriptor are visible when the template is encoded again.
type Template struct {
	raw   map[string]any
	order []string
}

// Parse decodes the template content. It does not validate semantics beyond
// the document being a YAML mapping; see Validate for shape checking.
func Parse(content []byte) (*Template, error) {
	raw, order, err := decodeDocument(content)
	if err != nil {
		return nil, err
	}
	return &Template{raw: raw, order: order}, nil
}

// Raw exposes the decoded document for encoding and tests.
func (t *Template) Raw() map[string]any {
	return t.raw
}

// ResourceIDs returns the logical IDs of all resources in declaration order.
func (t *Template) ResourceIDs() []string {
	return t.order
}

// Resource returns the named resource mapping, or nil when absent.
func (t *Template) Resource(logicalID string) map[string]any {
	resources := asMap(t.raw["Resources"])
	if resources == nil {
		return nil
	}
	return asMap(resources[logicalID])
}

// Function describes one function resource selected by Classify. Properties
// aliases the template's own property mapping rather than copying it.
type Function struct {
	LogicalID  string
	Runtime    string
	Family     Family
	Properties map[string]any
}

// LayerName returns the layer short-name derived from the runtime string,
// e.g. Node12-x or Python38. ok is false for unsupported runtimes.
func (f *Function) LayerName() (string, bool) {
	return layerName(f.Family, f.Runtime)
}

// Layers returns the function's current plain-string layer references.
// Intrinsic references (e.g. {Ref: ...}) are left out; they are never
// candidates for dedup against constructed ARNs.
func (f *Function) Layers() []string {
	items := asSlice(f.Properties["Layers"])
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Classify selects every function resource from the template, in declaration
// order, and tags it with its runtime family. Non-function resources are
// skipped silently; unrecognized runtimes classify as FamilyUnsupported.
// Classification depends only on the runtime string.
func Classify(t *Template) []*Function {
	functions := make([]*Function, 0, len(t.order))
	for _, logicalID := range t.order {
		resource := t.Resource(logicalID)
		if resource == nil || asString(resource["Type"]) != FunctionResourceType {
			continue
		}
		props := asMap(resource["Properties"])
		if props == nil {
			// Keep classification total: a function without properties still
			// gets a descriptor, sharing a live map so the template sees any
			// later mutation.
			props = map[string]any{}
			resource["Properties"] = props
		}
		runtime := asString(props["Runtime"])
		functions = append(functions, &Function{
			LogicalID:  logicalID,
			Runtime:    runtime,
			Family:     classifyRuntime(runtime),
			Properties: props,
		})
	}
	return functions
}
