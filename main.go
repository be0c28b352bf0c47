// gosortmark benchmarks Go's unstable sort over cached integer inputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/tstromberg/gosortmark/internal/benchmark"
	"github.com/tstromberg/gosortmark/internal/input"
	"github.com/tstromberg/gosortmark/internal/output"
)

// parseIntList parses a comma-separated string of integers with optional multiplier.
func parseIntList(list string, multiplier int) []int {
	var result []int
	for s := range strings.SplitSeq(list, ",") {
		s = strings.TrimSpace(s)
		var value int
		if _, err := fmt.Sscanf(s, "%d", &value); err == nil {
			result = append(result, value*multiplier)
		}
	}
	return result
}

// parseModuli parses a comma-separated list of non-zero 32-bit moduli.
func parseModuli(list string) ([]int32, error) {
	var moduli []int32
	for _, v := range parseIntList(list, 1) {
		if v == 0 || v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("invalid modulus %d", v)
		}
		moduli = append(moduli, int32(v))
	}
	if len(moduli) == 0 {
		return nil, fmt.Errorf("no moduli in %q", list)
	}
	return moduli, nil
}

// parseLengths parses a comma-separated list of non-negative lengths.
func parseLengths(list string) ([]int, error) {
	lengths := parseIntList(list, 1)
	for _, n := range lengths {
		if n < 0 {
			return nil, fmt.Errorf("invalid length %d", n)
		}
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("no lengths in %q", list)
	}
	return lengths, nil
}

func joinInts[T int | int32](vals []T) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprint(v)
	}
	return strings.Join(strs, ",")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// Registers -test.benchtime, which Run drives from -samples.
	testing.Init()

	showHelp := flag.Bool("help", false, "Show help message")
	lengths := flag.String("lengths", joinInts(benchmark.DefaultLengths), "Comma-separated input lengths")
	moduli := flag.String("moduli", joinInts(benchmark.DefaultModuli), "Comma-separated moduli bounding input values")
	samples := flag.Int("samples", benchmark.DefaultSamples, "Iterations per combination and round")
	rounds := flag.Int("rounds", 1, "Repeated measurements per combination")
	passes := flag.Bool("passes", false, "Also time each sort pass on its own")
	cacheDir := flag.String("cachedir", input.DefaultRoot, "Directory holding cached inputs")
	htmlOut := flag.String("html", "", "Output results to HTML file (e.g., results.html)")
	jsonOut := flag.String("json", "", "Output results to JSON file; a .zst suffix compresses it")
	outDir := flag.String("outdir", "", "Output directory for results (writes results.html, results.md and results.json)")
	openHTML := flag.Bool("open", false, "Open HTML report in web browser after generation")
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	lens, err := parseLengths(*lengths)
	if err != nil {
		fatal("%v", err)
	}
	mods, err := parseModuli(*moduli)
	if err != nil {
		fatal("%v", err)
	}
	if *samples <= 0 {
		fatal("-samples must be positive")
	}
	if *rounds <= 0 {
		fatal("-rounds must be positive")
	}

	combos := benchmark.Matrix(lens, mods)
	printHeader(combos, *samples, *rounds, *cacheDir)

	store := input.New(*cacheDir)
	sortResults, err := benchmark.Run(context.Background(), store, combos, benchmark.Config{
		Samples:  *samples,
		Rounds:   *rounds,
		Passes:   *passes,
		OnResult: printProgress,
	})
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println()

	printSortTable(sortResults)
	if *passes {
		printPassTable(sortResults)
	}

	results := output.Results{
		Config: output.RunConfig{
			Samples:  *samples,
			Rounds:   *rounds,
			Passes:   *passes,
			CacheDir: *cacheDir,
		},
		Sort:     sortResults,
		Rankings: output.ComputeRankings(sortResults),
	}
	printSummary(results.Rankings)

	commandLine := "gosortmark " + strings.Join(os.Args[1:], " ")
	results.MachineInfo = output.MachineInfo{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CommandLine: commandLine,
	}

	var htmlPath, mdPath, jsonPath string
	if *outDir != "" { //nolint:gocritic // ifElseChain: clearer than switch for exclusive conditions
		if err := os.MkdirAll(*outDir, 0o755); err != nil { //nolint:gosec // G301: 0755 is standard dir permission
			fatal("creating output directory: %v", err)
		}
		htmlPath = filepath.Join(*outDir, "gosortmark_results.html")
		mdPath = filepath.Join(*outDir, "gosortmark_results.md")
		jsonPath = filepath.Join(*outDir, "gosortmark_results.json")
	} else if *htmlOut != "" {
		htmlPath = *htmlOut
	} else {
		htmlPath = filepath.Join(os.TempDir(), "gosortmark_results.html")
	}
	if *jsonOut != "" {
		jsonPath = *jsonOut
	}

	if err := output.WriteHTML(htmlPath, results, commandLine); err != nil {
		fatal("writing HTML: %v", err)
	}
	fmt.Printf("Results: %s\n", htmlPath)

	if mdPath != "" {
		if err := output.WriteMarkdown(mdPath, results, commandLine); err != nil {
			fatal("writing Markdown: %v", err)
		}
		fmt.Printf("         %s\n", mdPath)
	}

	if jsonPath != "" {
		if err := output.WriteJSON(jsonPath, results, commandLine); err != nil {
			fatal("writing JSON: %v", err)
		}
		fmt.Printf("         %s\n", jsonPath)
	}

	if *openHTML {
		if err := openBrowser(htmlPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
		}
	}
}

func printUsage() {
	fmt.Println("gosortmark - Benchmark Go's unstable sort over cached inputs")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gosortmark                         Run the default 2x4 matrix (5000 samples each)")
	fmt.Println("  gosortmark -lengths 25 -moduli 5   Run a single combination")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -lengths <list>  Comma-separated input lengths (default: 25,500)")
	fmt.Println("  -moduli <list>   Comma-separated non-zero moduli (default: 5,10,100,1000)")
	fmt.Println("  -samples <n>     Iterations per combination and round (default: 5000)")
	fmt.Println("  -rounds <n>      Repeated measurements per combination (default: 1)")
	fmt.Println("  -passes          Also time the default, ascending and descending passes separately")
	fmt.Println("  -cachedir <dir>  Input cache directory (default: benches/input_data)")
	fmt.Println("  -outdir <dir>    Output directory for gosortmark_results.{html,md,json}")
	fmt.Println("  -html <file>     Output results to HTML file (default: temp dir)")
	fmt.Println("  -json <file>     Output results to JSON file (.zst compresses)")
	fmt.Println("  -open            Open HTML report in web browser after generation")
	fmt.Println()
	fmt.Println("Inputs are generated once per (length, modulus) pair and reused by every")
	fmt.Println("later run. Delete the cache directory to draw new inputs.")
}

const lineWidth = 80

func printHeader(combos []benchmark.Combination, samples, rounds int, cacheDir string) {
	fmt.Println("gosortmark")
	fmt.Println()
	fmt.Printf("  combinations: %d\n", len(combos))
	fmt.Printf("  samples:      %d x %d round(s)\n", samples, rounds)
	fmt.Printf("  cache:        %s\n", cacheDir)
	fmt.Println()

	header := fmt.Sprintf("%s: %s ", benchmark.GroupName, "copy + sort default/asc/desc (ns/op)")
	padding := max(lineWidth-len(header), 4)
	fmt.Printf("%s%s\n\n", header, strings.Repeat("─", padding))
}

func printProgress(r benchmark.SortResult) {
	fmt.Printf("  [%s] %.0f ns/op\n", r.ID, r.NsOp)
}

func printSortTable(results []benchmark.SortResult) {
	fmt.Println("  | Combination                     |    ns/op |      min |      max | ns/elem | allocs | input            |")
	fmt.Println("  |---------------------------------|----------|----------|----------|---------|--------|------------------|")
	for _, r := range results {
		fmt.Printf("  | %-31s | %8.0f | %8.0f | %8.0f | %7.2f | %6d | %016x |\n",
			r.ID, r.NsOp, r.MinNsOp, r.MaxNsOp, r.NsPerElement(), r.AllocsOp, r.Fingerprint)
	}
	fmt.Println()
}

func printPassTable(results []benchmark.SortResult) {
	fmt.Print("  | Combination                     |")
	for _, p := range benchmark.Passes {
		fmt.Printf(" %10s |", p)
	}
	fmt.Print("\n  |---------------------------------|")
	for range benchmark.Passes {
		fmt.Print("------------|")
	}
	fmt.Println()

	for _, r := range results {
		fmt.Printf("  | %-31s |", r.ID)
		for _, p := range benchmark.Passes {
			fmt.Printf(" %10.0f |", r.PassNsOp[p.String()])
		}
		fmt.Println()
	}
	fmt.Println()
}

func printSummary(rankings []output.Ranking) {
	if len(rankings) == 0 {
		return
	}

	winners, runnerUp := output.FormatWinners(output.Winners(rankings))
	fmt.Printf("  cheapest per element: %s (%.2f ns)", strings.Join(winners, "; "), rankings[0].NsPerElement)
	if runnerUp != nil {
		fmt.Printf(", next %s (%.2f ns)", runnerUp.Name, runnerUp.Score)
	}
	fmt.Println()

	last := rankings[len(rankings)-1]
	if last.Rank > 1 {
		fmt.Printf("  most expensive:       %s (%.2f ns)\n", last.Name, last.NsPerElement)
	}
	fmt.Println()
}

// openBrowser opens the specified path in the default web browser.
func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path) //nolint:noctx // trusted command, fire-and-forget
	case "linux":
		cmd = exec.Command("xdg-open", path) //nolint:noctx // trusted command, fire-and-forget
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path) //nolint:noctx // trusted command, fire-and-forget
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
