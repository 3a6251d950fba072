// Where: internal/app/instrument.go
// What: The instrument command.
// Why: Orchestrate load, classify, apply, and write for one template.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/layerline/layerline/internal/injector"
	"github.com/layerline/layerline/internal/manifest"
	"github.com/layerline/layerline/internal/report"
	"github.com/layerline/layerline/internal/ui"
)

func runInstrument(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Instrument
	console := ui.New(out)
	ctx := context.Background()

	if err := validateVersions(cmd); err != nil {
		return exitWithError(out, err)
	}

	content, err := deps.Loader.Read(ctx, cmd.Template)
	if err != nil {
		return exitWithError(out, err)
	}

	tpl, err := manifest.Parse(content)
	if err != nil {
		return exitWithError(out, err)
	}
	if err := manifest.Validate(tpl); err != nil {
		return exitWithError(out, err)
	}

	region, err := deps.RegionResolver(ctx, cmd.Region)
	if err != nil {
		return exitWithError(out, err)
	}

	outputPath, err := resolveOutputPath(cmd)
	if err != nil && !cmd.DryRun {
		return exitWithError(out, err)
	}

	functions := manifest.Classify(tpl)
	log.Debug().
		Str("template", cmd.Template).
		Str("region", region).
		Int("functions", len(functions)).
		Msg("classified template")

	versions := injector.Versions{
		Python: cmd.PythonLayerVersion,
		Node:   cmd.NodeLayerVersion,
	}
	warnings := injector.Apply(region, functions, versions)

	encoded, err := manifest.Encode(tpl)
	if err != nil {
		return exitWithError(out, err)
	}

	console.Header("🧩", "Instrumenting template:")
	console.Item("Template", cmd.Template)
	console.Item("Region", region)

	if cmd.DryRun {
		fmt.Fprint(out, string(encoded))
	} else {
		if err := deps.Writer.Write(outputPath, encoded); err != nil {
			return exitWithError(out, err)
		}
		console.Success(fmt.Sprintf("Wrote %s", outputPath))
	}

	summary := report.Build(region, functions, versions, warnings)
	rendered, err := report.Render(summary)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprint(out, rendered)

	for _, warning := range warnings {
		console.Warn(warning)
	}
	if len(warnings) > 0 && cmd.FailOnMissing {
		return 1
	}
	return 0
}

func validateVersions(cmd InstrumentCmd) error {
	if cmd.PythonLayerVersion != nil && *cmd.PythonLayerVersion < 1 {
		return fmt.Errorf("--python-layer-version must be a positive integer")
	}
	if cmd.NodeLayerVersion != nil && *cmd.NodeLayerVersion < 1 {
		return fmt.Errorf("--node-layer-version must be a positive integer")
	}
	return nil
}

// resolveOutputPath picks where the instrumented template goes. Rewriting in
// place only works for local inputs; remote templates need --output.
func resolveOutputPath(cmd InstrumentCmd) (string, error) {
	if cmd.Output != "" {
		return cmd.Output, nil
	}
	if strings.HasPrefix(cmd.Template, "s3://") {
		return "", fmt.Errorf("cannot rewrite a remote template in place; pass --output")
	}
	return cmd.Template, nil
}
