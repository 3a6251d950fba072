// Where: internal/manifest/decode.go
// What: YAML decoding for SAM/CloudFormation templates.
// Why: Normalize short-form intrinsic tags and keep resource declaration order.
package manifest

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

func decodeDocument(content []byte) (map[string]any, []string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, nil, fmt.Errorf("decode template yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil, fmt.Errorf("empty template document")
	}
	root := node.Content[0]
	decoded, ok := decodeNode(root).(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("template root is not a mapping")
	}
	return decoded, resourceOrder(root), nil
}

// resourceOrder walks the raw document for the Resources mapping and returns
// its logical IDs in declaration order. Go maps do not keep insertion order,
// so the order is captured here before the node tree is discarded.
func resourceOrder(root *yaml.Node) []string {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "Resources" {
			continue
		}
		section := root.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(section.Content)/2)
		for j := 0; j+1 < len(section.Content); j += 2 {
			order = append(order, section.Content[j].Value)
		}
		return order
	}
	return nil
}

func decodeNode(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return decodeNode(node.Content[0])
	case yaml.MappingNode:
		m := map[string]any{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := asString(decodeNode(node.Content[i]))
			if key == "" {
				continue
			}
			m[key] = decodeNode(node.Content[i+1])
		}
		if node.Tag == "!Sub" {
			return map[string]any{"Fn::Sub": m}
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, decodeNode(item))
		}
		switch node.Tag {
		case "!Join":
			return map[string]any{"Fn::Join": out}
		case "!Sub":
			return map[string]any{"Fn::Sub": out}
		case "!GetAtt":
			return map[string]any{"Fn::GetAtt": out}
		case "!Select":
			return map[string]any{"Fn::Select": out}
		case "!Split":
			return map[string]any{"Fn::Split": out}
		}
		return out
	case yaml.ScalarNode:
		return decodeScalar(node)
	default:
		return nil
	}
}

func decodeScalar(node *yaml.Node) any {
	switch node.Tag {
	case "!!int":
		if value, err := strconv.Atoi(node.Value); err == nil {
			return value
		}
	case "!!float":
		if value, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return value
		}
	case "!!bool":
		if value, err := strconv.ParseBool(node.Value); err == nil {
			return value
		}
	case "!!null":
		return nil
	case "!Ref":
		return map[string]any{"Ref": node.Value}
	case "!Sub":
		return map[string]any{"Fn::Sub": node.Value}
	case "!GetAtt":
		return map[string]any{"Fn::GetAtt": node.Value}
	case "!ImportValue":
		return map[string]any{"Fn::ImportValue": node.Value}
	}
	return node.Value
}
