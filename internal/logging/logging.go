// Where: internal/logging/logging.go
// What: Diagnostic logger configuration.
// Why: Keep debug output on stderr and off by default so stdout stays scriptable.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets up the global zerolog logger. Verbose enables debug-level
// diagnostics; otherwise only warnings and errors are emitted.
func Configure(verbose bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}
