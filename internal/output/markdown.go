package output

import (
	"fmt"
	"os"

	"github.com/tstromberg/gosortmark/internal/benchmark"
)

// WriteMarkdown writes benchmark results to a Markdown file.
func WriteMarkdown(filename string, results Results, commandLine string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := func(format string, args ...any) {
		fmt.Fprintf(f, format, args...)
	}

	w("# gosortmark Results\n\n")
	w("```\n")
	w("Command: %s\n", commandLine)
	w("Environment: %s/%s, %d CPUs, %s\n", results.MachineInfo.OS, results.MachineInfo.Arch, results.MachineInfo.NumCPU, results.MachineInfo.GoVersion)
	w("Samples: %d iterations x %d round(s), inputs in %s\n", results.Config.Samples, results.Config.Rounds, results.Config.CacheDir)
	w("```\n\n")

	if len(results.Sort) > 0 {
		w("## %s\n\n", benchmark.GroupName)
		writeSortMarkdown(w, results.Sort)
		if results.Config.Passes {
			w("### Per-pass breakdown\n\n")
			writePassMarkdown(w, results.Sort)
		}
	}

	if len(results.Rankings) > 0 {
		w("## Cost per Element\n\n")
		w("| Rank | Combination                     | ns/elem |\n")
		w("|------|---------------------------------|---------|\n")
		for _, r := range results.Rankings {
			w("| %4d | %-31s | %7.2f |\n", r.Rank, r.Name, r.NsPerElement)
		}
		w("\n")
	}

	return nil
}

func writeSortMarkdown(w func(string, ...any), data []benchmark.SortResult) {
	w("| Combination                     |    ns/op |      min |      max | ns/elem | allocs | fingerprint      |\n")
	w("|---------------------------------|----------|----------|----------|---------|--------|------------------|\n")
	for _, r := range data {
		w("| %-31s | %8.0f | %8.0f | %8.0f | %7.2f | %6d | %016x |\n",
			r.ID, r.NsOp, r.MinNsOp, r.MaxNsOp, r.NsPerElement(), r.AllocsOp, r.Fingerprint)
	}
	w("\n")
}

func writePassMarkdown(w func(string, ...any), data []benchmark.SortResult) {
	w("| Combination                     |")
	for _, p := range benchmark.Passes {
		w(" %10s |", p)
	}
	w("\n|---------------------------------|")
	for range benchmark.Passes {
		w("------------|")
	}
	w("\n")

	for _, r := range data {
		w("| %-31s |", r.ID)
		for _, p := range benchmark.Passes {
			w(" %10.0f |", r.PassNsOp[p.String()])
		}
		w("\n")
	}
	w("\n")
}
