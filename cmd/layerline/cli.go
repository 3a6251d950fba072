// Where: cmd/layerline/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/layerline/layerline/internal/app"
	"github.com/layerline/layerline/internal/helpers"
)

var (
	newS3Client   = helpers.DefaultS3Client
	resolveRegion = helpers.ResolveRegion
)

// buildDependencies constructs the runtime dependencies required by the CLI.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:            os.Stdout,
		Loader:         helpers.TemplateLoader{NewS3: newS3Client},
		Writer:         helpers.TemplateWriter{},
		RegionResolver: resolveRegion,
	}
}
