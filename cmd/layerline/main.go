// Where: cmd/layerline/main.go
// What: CLI entrypoint.
// Why: Execute layerline commands with configured dependencies.
package main

import (
	"os"

	"github.com/layerline/layerline/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
