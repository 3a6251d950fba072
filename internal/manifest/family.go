// Where: internal/manifest/family.go
// What: Runtime family classification and layer short-name derivation.
// Why: Centralize the prefix and naming tables so adding a family is one change.
package manifest

import (
	"regexp"
	"strings"
)

// Family is the closed set of runtime families the injector knows how to
// instrument. Anything that does not classify cleanly is FamilyUnsupported.
type Family int

const (
	FamilyUnsupported Family = iota
	FamilyNode
	FamilyPython
)

const (
	nodePrefix   = "nodejs"
	pythonPrefix = "python"
)

// Runtime version suffixes we can derive a layer name from. A runtime whose
// suffix does not match is classified FamilyUnsupported rather than guessing.
var (
	nodeSuffixPattern   = regexp.MustCompile(`^\d+\.\w+$`)
	pythonSuffixPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// String returns the capitalized display form, e.g. "Python".
func (f Family) String() string {
	switch f {
	case FamilyNode:
		return "Node"
	case FamilyPython:
		return "Python"
	default:
		return "Unsupported"
	}
}

// Slug returns the lowercase form used to name configuration flags, e.g. the
// "python" in --python-layer-version.
func (f Family) Slug() string {
	switch f {
	case FamilyNode:
		return "node"
	case FamilyPython:
		return "python"
	default:
		return "unsupported"
	}
}

// classifyRuntime maps a raw runtime string to its family. Classification is
// pure prefix matching plus a shape check on the version suffix; it never
// inspects region or version configuration.
func classifyRuntime(runtime string) Family {
	switch {
	case strings.HasPrefix(runtime, nodePrefix):
		if nodeSuffixPattern.MatchString(strings.TrimPrefix(runtime, nodePrefix)) {
			return FamilyNode
		}
	case strings.HasPrefix(runtime, pythonPrefix):
		if pythonSuffixPattern.MatchString(strings.TrimPrefix(runtime, pythonPrefix)) {
			return FamilyPython
		}
	}
	return FamilyUnsupported
}

// layerName derives the layer short-name from a classified runtime string.
// nodejs12.x becomes Node12-x, python3.8 becomes Python38. Returns false when
// the runtime does not fit the family's expected shape.
func layerName(family Family, runtime string) (string, bool) {
	switch family {
	case FamilyNode:
		suffix := strings.TrimPrefix(runtime, nodePrefix)
		if !nodeSuffixPattern.MatchString(suffix) {
			return "", false
		}
		return "Node" + strings.ReplaceAll(suffix, ".", "-"), true
	case FamilyPython:
		suffix := strings.TrimPrefix(runtime, pythonPrefix)
		if !pythonSuffixPattern.MatchString(suffix) {
			return "", false
		}
		return "Python" + strings.ReplaceAll(suffix, ".", ""), true
	}
	return "", false
}
