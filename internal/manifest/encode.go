// Where: internal/manifest/encode.go
// What: Deterministic YAML encoding for mutated templates.
// Why: Keep section and resource ordering stable across rewrites.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Canonical top-level section order for emitted templates. Unknown sections
// sort after these, alphabetically (yaml.v3 sorts map keys on encode).
var sectionOrder = []string{
	"AWSTemplateFormatVersion",
	"Transform",
	"Description",
	"Metadata",
	"Parameters",
	"Mappings",
	"Conditions",
	"Globals",
	"Resources",
	"Outputs",
}

// Encode serializes the template back to YAML. Mapping keys are emitted in
// sorted order except the top-level sections and the Resources mapping, which
// keeps its original declaration order.
func Encode(t *Template) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(t.raw); err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	reorderTopLevel(&root)
	if resources := mappingValue(&root, "Resources"); resources != nil {
		reorderMapping(resources, t.order)
	}
	out, err := yaml.Marshal(&root)
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return out, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func reorderTopLevel(root *yaml.Node) {
	reorderMapping(root, sectionOrder)
}

// reorderMapping rearranges a mapping node's key/value pairs to follow the
// given key order; keys not listed keep their current relative order after
// the listed ones.
func reorderMapping(node *yaml.Node, order []string) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}
	type pair struct {
		key, value *yaml.Node
	}
	listed := make([]pair, len(order))
	var rest []pair
	for i := 0; i+1 < len(node.Content); i += 2 {
		p := pair{key: node.Content[i], value: node.Content[i+1]}
		if idx, ok := rank[p.key.Value]; ok {
			listed[idx] = p
		} else {
			rest = append(rest, p)
		}
	}
	content := make([]*yaml.Node, 0, len(node.Content))
	for _, p := range listed {
		if p.key != nil {
			content = append(content, p.key, p.value)
		}
	}
	for _, p := range rest {
		content = append(content, p.key, p.value)
	}
	node.Content = content
}
