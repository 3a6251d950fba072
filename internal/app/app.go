// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/layerline/layerline/internal/logging"
	"github.com/layerline/layerline/internal/meta"
	"github.com/layerline/layerline/internal/version"
)

// TemplateLoader reads template content from a path or URI.
type TemplateLoader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// TemplateWriter persists instrumented template content.
type TemplateWriter interface {
	Write(path string, content []byte) error
}

// Dependencies holds all injected collaborators required for command
// execution. The structure enables swapping implementations in tests.
type Dependencies struct {
	Out            io.Writer
	Loader         TemplateLoader
	Writer         TemplateWriter
	RegionResolver func(ctx context.Context, explicit string) (string, error)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Verbose    bool          `short:"v" help:"Enable debug diagnostics"`
	EnvFile    string        `name:"env-file" help:"Path to .env file"`
	Instrument InstrumentCmd `cmd:"" help:"Inject observability layers into a template"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

// InstrumentCmd configures one instrumentation run.
type InstrumentCmd struct {
	Template           string `short:"t" required:"" help:"Template path or s3:// URI"`
	Region             string `short:"r" help:"Target deployment region (default: ambient AWS config)"`
	PythonLayerVersion *int   `name:"python-layer-version" env:"LAYERLINE_PYTHON_LAYER_VERSION" help:"Published Python layer version"`
	NodeLayerVersion   *int   `name:"node-layer-version" env:"LAYERLINE_NODE_LAYER_VERSION" help:"Published Node layer version"`
	Output             string `short:"o" help:"Write result here (default: rewrite input in place)"`
	DryRun             bool   `name:"dry-run" help:"Print the instrumented template instead of writing it"`
	FailOnMissing      bool   `name:"fail-on-missing" help:"Exit non-zero when a function lacks its layer version"`
}

type VersionCmd struct{}

// Run parses the arguments and dispatches to the requested command.
// Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	// Environment files must load before Kong resolves env-bound flags.
	if envFile := envFileArg(args); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Inject observability-agent layers into serverless templates."))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	logging.Configure(cli.Verbose)

	switch ctx.Command() {
	case "instrument":
		return runInstrument(cli, deps, out)
	case "version":
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

// envFileArg extracts the --env-file value from raw arguments, ahead of the
// real parse.
func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return value
		}
	}
	return ""
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
