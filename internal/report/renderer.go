// Where: internal/report/renderer.go
// What: Render the instrumentation summary shown after applying layers.
// Why: Give pipelines a readable account of what was and was not instrumented.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/layerline/layerline/internal/injector"
	"github.com/layerline/layerline/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	summaryOnce sync.Once
	summaryErr  error
	summaryTmpl *template.Template
)

// Row is one function's outcome in the summary.
type Row struct {
	LogicalID string
	Runtime   string
	Family    string
	Status    string
	Layer     string
}

// Summary aggregates per-function outcomes for one instrumentation run.
type Summary struct {
	Region       string
	Instrumented int
	Skipped      int
	Missing      int
	Rows         []Row
	Warnings     []string
}

// Build computes the summary for the given run. It relies on the same
// resolution logic the applicator uses, so the rows always agree with the
// mutation that was performed.
func Build(region string, functions []*manifest.Function, versions injector.Versions, warnings []string) Summary {
	summary := Summary{
		Region:   region,
		Rows:     make([]Row, 0, len(functions)),
		Warnings: warnings,
	}
	for _, fn := range functions {
		row := Row{
			LogicalID: fn.LogicalID,
			Runtime:   fn.Runtime,
			Family:    fn.Family.String(),
		}
		switch outcome := injector.Describe(region, fn, versions); outcome.Kind {
		case injector.OutcomeInstrumented:
			row.Status = "instrumented"
			row.Layer = outcome.LayerARN
			summary.Instrumented++
		case injector.OutcomeSkippedRuntime:
			row.Status = "skipped (unsupported runtime)"
			summary.Skipped++
		case injector.OutcomeSkippedRegion:
			row.Status = "skipped (region not covered)"
			summary.Skipped++
		case injector.OutcomeMissingVersion:
			row.Status = "missing layer version"
			summary.Missing++
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary
}

// Render formats the summary with the embedded template.
func Render(summary Summary) (string, error) {
	tmpl, err := loadTemplate()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

func loadTemplate() (*template.Template, error) {
	summaryOnce.Do(func() {
		summaryTmpl, summaryErr = template.New("summary.tmpl").
			Funcs(sprig.FuncMap()).
			ParseFS(templateFS, "templates/summary.tmpl")
	})
	if summaryErr != nil {
		return nil, fmt.Errorf("parse summary template: %w", summaryErr)
	}
	return summaryTmpl, nil
}
