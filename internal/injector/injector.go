// Where: internal/injector/injector.go
// What: Layer applicator for classified template functions.
// Why: Mutate layer lists exactly once per missing layer and collect errors by value.
package injector

import (
	"fmt"
	"strings"

	"github.com/layerline/layerline/internal/manifest"
	"github.com/layerline/layerline/internal/meta"
)

// Versions holds the optional per-family layer versions. A nil entry means
// the caller did not supply a version; absence is meaningful and drives the
// error path rather than any default.
type Versions struct {
	Python *int
	Node   *int
}

// For returns the version for a family, or nil when not supplied.
func (v Versions) For(family manifest.Family) *int {
	switch family {
	case manifest.FamilyPython:
		return v.Python
	case manifest.FamilyNode:
		return v.Node
	default:
		return nil
	}
}

// OutcomeKind classifies what Apply does (or would do) for one function.
type OutcomeKind int

const (
	// OutcomeInstrumented means a layer ARN is resolvable and will be added
	// unless already present.
	OutcomeInstrumented OutcomeKind = iota
	// OutcomeSkippedRuntime means the runtime family is unsupported. Not an
	// error: there is no agent layer to offer.
	OutcomeSkippedRuntime
	// OutcomeSkippedRegion means no partition publishes layers in the target
	// region. Not an error: the region is not yet supported.
	OutcomeSkippedRegion
	// OutcomeMissingVersion means the function needs a version the caller
	// did not supply. The only error case.
	OutcomeMissingVersion
)

// Outcome is the resolution for a single function, used by Apply and by
// summary reporting.
type Outcome struct {
	Kind     OutcomeKind
	LayerARN string
}

// Describe resolves a function against the region and supplied versions
// without mutating anything. Deterministic for the same inputs.
func Describe(region string, fn *manifest.Function, versions Versions) Outcome {
	if fn.Family == manifest.FamilyUnsupported {
		return Outcome{Kind: OutcomeSkippedRuntime}
	}
	partition, ok := PartitionFor(region)
	if !ok {
		return Outcome{Kind: OutcomeSkippedRegion}
	}
	version := versions.For(fn.Family)
	if version == nil {
		return Outcome{Kind: OutcomeMissingVersion}
	}
	name, ok := fn.LayerName()
	if !ok {
		// Classification guarantees a derivable name for supported families;
		// treat a descriptor that violates that as unsupported.
		return Outcome{Kind: OutcomeSkippedRuntime}
	}
	arn := fmt.Sprintf("arn:%s:lambda:%s:%s:layer:%s:%d",
		partition.ARNPartition, region, partition.AccountID, name, *version)
	return Outcome{Kind: OutcomeInstrumented, LayerARN: arn}
}

// Apply walks the functions in order and appends the resolved agent layer to
// each eligible function's Layers list, creating the list when absent and
// skipping insertion when the exact ARN is already present. The returned
// messages, in function order, cover only functions whose family version was
// not supplied; unsupported runtimes and regions are benign no-ops. Apply is
// idempotent and never fails by any channel other than the returned list.
func Apply(region string, functions []*manifest.Function, versions Versions) []string {
	messages := []string{}
	for _, fn := range functions {
		switch outcome := Describe(region, fn, versions); outcome.Kind {
		case OutcomeMissingVersion:
			messages = append(messages, MissingVersionMessage(fn.LogicalID, fn.Family.String(), fn.Family.Slug()))
		case OutcomeInstrumented:
			insertLayer(fn, outcome.LayerARN)
		}
	}
	return messages
}

// MissingVersionMessage formats the single error kind the applicator
// produces. Messages are unique per (function key, family) pair.
func MissingVersionMessage(key, fullName, shortName string) string {
	return fmt.Sprintf(
		"function %q uses a %s runtime but no %s layer version was supplied; pass --%s-layer-version or set %s_%s_LAYER_VERSION",
		key, fullName, fullName, shortName, meta.EnvPrefix, strings.ToUpper(shortName))
}

func insertLayer(fn *manifest.Function, arn string) {
	existing, present := fn.Properties["Layers"]
	layers, ok := existing.([]any)
	if present && !ok {
		// Layers exists but is not a list (e.g. an intrinsic). Leave it alone
		// rather than clobbering caller data.
		return
	}
	for _, item := range layers {
		if s, isString := item.(string); isString && s == arn {
			return
		}
	}
	fn.Properties["Layers"] = append(layers, arn)
}
