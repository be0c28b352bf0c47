// Package output provides result formatting and export.
package output

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/tstromberg/gosortmark/internal/benchmark"
)

//go:embed template.html
var templateFS embed.FS

// Results holds all benchmark results for report output.
type Results struct {
	Timestamp   string
	Config      RunConfig
	Sort        []benchmark.SortResult
	Rankings    []Ranking
	MachineInfo MachineInfo
}

// RunConfig records how the run was measured.
type RunConfig struct {
	Samples  int
	Rounds   int
	Passes   bool
	CacheDir string
}

// MachineInfo holds information about the benchmark environment.
type MachineInfo struct {
	OS          string
	Arch        string
	NumCPU      int
	GoVersion   string
	CommandLine string
}

// Ranking represents a combination's place by cost per element.
type Ranking struct {
	Rank         int
	Name         string
	NsOp         float64
	NsPerElement float64
}

// WriteHTML writes benchmark results to an HTML file.
func WriteHTML(filename string, results Results, commandLine string) error {
	results.Timestamp = time.Now().Format("2006-01-02 15:04:05 MST")
	results.MachineInfo.CommandLine = commandLine

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return htmlTemplate.Execute(f, results)
}

var htmlTemplate = template.Must(template.New("template.html").Funcs(templateFuncs).ParseFS(templateFS, "template.html"))

var templateFuncs = template.FuncMap{
	"passNames": func() []string {
		names := make([]string, len(benchmark.Passes))
		for i, p := range benchmark.Passes {
			names[i] = p.String()
		}
		return names
	},
	"perElement": func(r benchmark.SortResult) float64 {
		return r.NsPerElement()
	},
	"hex": func(v uint64) string {
		return fmt.Sprintf("%016x", v)
	},
	"barWidth": func(v float64, rankings []Ranking) float64 {
		var top float64
		for _, r := range rankings {
			top = max(top, r.NsPerElement)
		}
		if top == 0 {
			return 0
		}
		return v / top * 100
	},
}
