// Where: internal/injector/injector_test.go
// What: Tests for the layer applicator.
// Why: Pin idempotence, no-op guarantees, ordering, and ARN construction.
package injector

import (
	"reflect"
	"strings"
	"testing"

	"github.com/layerline/layerline/internal/manifest"
)

func intPtr(v int) *int { return &v }

func parseFunctions(t *testing.T, content string) ([]*manifest.Function, *manifest.Template) {
	t.Helper()
	tpl, err := manifest.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return manifest.Classify(tpl), tpl
}

const nodeOnlyTemplate = `
Resources:
  NodeFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: index.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: nodejs12.x
`

const mixedTemplate = `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: python3.8
  NodeFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: index.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: nodejs12.x
  GoFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: main
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: go1.x
`

func TestApplyCommercialNode(t *testing.T) {
	functions, _ := parseFunctions(t, nodeOnlyTemplate)

	messages := Apply("us-east-1", functions, Versions{Node: intPtr(25)})
	if len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}

	layers := functions[0].Layers()
	want := "arn:aws:lambda:us-east-1:752180062774:layer:Node12-x:25"
	if len(layers) != 1 || layers[0] != want {
		t.Fatalf("layers = %v, want [%s]", layers, want)
	}
}

func TestApplyGovCloudPython(t *testing.T) {
	functions, _ := parseFunctions(t, `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Role: arn:aws-us-gov:iam::111122223333:role/fn
      Runtime: python3.8
`)

	messages := Apply("us-gov-east-1", functions, Versions{Python: intPtr(21)})
	if len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}

	layers := functions[0].Layers()
	want := "arn:aws-us-gov:lambda:us-gov-east-1:254067382080:layer:Python38:21"
	if len(layers) != 1 || layers[0] != want {
		t.Fatalf("layers = %v, want [%s]", layers, want)
	}
}

func TestApplyMissingVersions(t *testing.T) {
	functions, _ := parseFunctions(t, mixedTemplate)

	messages := Apply("us-east-1", functions, Versions{})
	if len(messages) != 2 {
		t.Fatalf("expected 2 errors, got %v", messages)
	}
	// Errors follow function declaration order: PyFn then NodeFn.
	if !strings.Contains(messages[0], `"PyFn"`) || !strings.Contains(messages[0], "Python") {
		t.Fatalf("unexpected first error: %s", messages[0])
	}
	if !strings.Contains(messages[1], `"NodeFn"`) || !strings.Contains(messages[1], "Node") {
		t.Fatalf("unexpected second error: %s", messages[1])
	}

	for _, fn := range functions {
		if _, present := fn.Properties["Layers"]; present {
			t.Fatalf("function %s gained a layer list despite missing version", fn.LogicalID)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	functions, _ := parseFunctions(t, mixedTemplate)
	versions := Versions{Python: intPtr(3), Node: intPtr(7)}

	first := Apply("eu-west-1", functions, versions)
	snapshot := make([][]string, len(functions))
	for i, fn := range functions {
		snapshot[i] = fn.Layers()
	}

	second := Apply("eu-west-1", functions, versions)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("error lists differ between calls: %v vs %v", first, second)
	}
	for i, fn := range functions {
		if !reflect.DeepEqual(fn.Layers(), snapshot[i]) {
			t.Fatalf("function %s layers changed on second apply: %v", fn.LogicalID, fn.Layers())
		}
	}
}

func TestApplySkipsUnsupportedRuntime(t *testing.T) {
	functions, _ := parseFunctions(t, mixedTemplate)

	messages := Apply("us-east-1", functions, Versions{Python: intPtr(1), Node: intPtr(1)})
	if len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}

	goFn := functions[2]
	if goFn.LogicalID != "GoFn" {
		t.Fatalf("unexpected function order: %s", goFn.LogicalID)
	}
	if _, present := goFn.Properties["Layers"]; present {
		t.Fatalf("unsupported runtime was mutated: %v", goFn.Properties["Layers"])
	}
}

func TestApplySkipsUnsupportedRegion(t *testing.T) {
	functions, _ := parseFunctions(t, mixedTemplate)

	messages := Apply("mars-north-1", functions, Versions{Python: intPtr(1), Node: intPtr(1)})
	if len(messages) != 0 {
		t.Fatalf("expected no errors for unsupported region, got %v", messages)
	}
	for _, fn := range functions {
		if _, present := fn.Properties["Layers"]; present {
			t.Fatalf("function %s mutated in unsupported region", fn.LogicalID)
		}
	}
}

func TestApplyAppendsAfterExistingLayers(t *testing.T) {
	functions, _ := parseFunctions(t, `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: python3.8
      Layers:
        - arn:aws:lambda:us-east-1:111122223333:layer:First:1
        - arn:aws:lambda:us-east-1:111122223333:layer:Second:2
`)

	if messages := Apply("us-east-1", functions, Versions{Python: intPtr(9)}); len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}

	want := []string{
		"arn:aws:lambda:us-east-1:111122223333:layer:First:1",
		"arn:aws:lambda:us-east-1:111122223333:layer:Second:2",
		"arn:aws:lambda:us-east-1:752180062774:layer:Python38:9",
	}
	if got := functions[0].Layers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("layers = %v, want %v", got, want)
	}
}

func TestApplyDoesNotDuplicateExistingReference(t *testing.T) {
	functions, _ := parseFunctions(t, `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: python3.8
      Layers:
        - arn:aws:lambda:us-east-1:752180062774:layer:Python38:9
`)

	if messages := Apply("us-east-1", functions, Versions{Python: intPtr(9)}); len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}
	if got := functions[0].Layers(); len(got) != 1 {
		t.Fatalf("expected single layer entry, got %v", got)
	}
}

func TestApplyLeavesNonListLayersAlone(t *testing.T) {
	functions, _ := parseFunctions(t, `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Role: arn:aws:iam::111122223333:role/fn
      Runtime: python3.8
      Layers: !Ref LayerParam
`)

	if messages := Apply("us-east-1", functions, Versions{Python: intPtr(9)}); len(messages) != 0 {
		t.Fatalf("expected no errors, got %v", messages)
	}
	if _, ok := functions[0].Properties["Layers"].(map[string]any); !ok {
		t.Fatalf("intrinsic layer reference was clobbered: %v", functions[0].Properties["Layers"])
	}
}

func TestMissingVersionMessageUniqueness(t *testing.T) {
	a := MissingVersionMessage("Fn1", "Python", "python")
	b := MissingVersionMessage("Fn1", "Node", "node")
	c := MissingVersionMessage("Fn2", "Python", "python")
	if a == b || a == c || b == c {
		t.Fatalf("messages must differ per (key, family): %q %q %q", a, b, c)
	}
	if !strings.Contains(a, "Fn1") || !strings.Contains(a, "--python-layer-version") {
		t.Fatalf("message missing key or flag name: %s", a)
	}
}

func TestDescribeOutcomes(t *testing.T) {
	functions, _ := parseFunctions(t, mixedTemplate)
	versions := Versions{Node: intPtr(5)}

	if out := Describe("us-east-1", functions[0], versions); out.Kind != OutcomeMissingVersion {
		t.Fatalf("python without version: got %v", out.Kind)
	}
	if out := Describe("us-east-1", functions[1], versions); out.Kind != OutcomeInstrumented || out.LayerARN == "" {
		t.Fatalf("node with version: got %v", out)
	}
	if out := Describe("us-east-1", functions[2], versions); out.Kind != OutcomeSkippedRuntime {
		t.Fatalf("unsupported runtime: got %v", out.Kind)
	}
	if out := Describe("mars-north-1", functions[1], versions); out.Kind != OutcomeSkippedRegion {
		t.Fatalf("unsupported region: got %v", out.Kind)
	}
}
