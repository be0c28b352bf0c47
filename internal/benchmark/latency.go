package benchmark

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"testing"

	"github.com/tstromberg/gosortmark/internal/input"
)

// GroupName labels every result produced by Run.
const GroupName = "sort_unstable"

// DefaultSamples is the iteration count per combination and round.
const DefaultSamples = 5000

// DefaultLengths and DefaultModuli form the standard 8-combination matrix.
var (
	DefaultLengths = []int{25, 500}
	DefaultModuli  = []int32{5, 10, 100, 1000}
)

// Combination is one (length, modulus) cell of the benchmark matrix.
type Combination struct {
	Len     int
	Modulus int32
}

// ID is the human-readable label used in reports.
func (c Combination) ID() string {
	return fmt.Sprintf("length: %d, modulus: %d", c.Len, c.Modulus)
}

// SubName is the label used for go test sub-benchmarks.
func (c Combination) SubName() string {
	return fmt.Sprintf("length=%d,modulus=%d", c.Len, c.Modulus)
}

// Matrix enumerates lengths in the outer loop and moduli in the inner loop.
func Matrix(lengths []int, moduli []int32) []Combination {
	combos := make([]Combination, 0, len(lengths)*len(moduli))
	for _, n := range lengths {
		for _, m := range moduli {
			combos = append(combos, Combination{Len: n, Modulus: m})
		}
	}
	return combos
}

// Source supplies the input dataset for a combination.
type Source interface {
	Obtain(ctx context.Context, n int, modulus int32) ([]int32, error)
}

// Config controls how each combination is measured.
type Config struct {
	Samples  int  // iterations per round (default DefaultSamples)
	Rounds   int  // repeated measurements per combination (default 1)
	Passes   bool // also time each pass on its own
	OnResult func(SortResult)
}

// SortResult holds timing results for one combination.
type SortResult struct {
	Name        string             `json:"name"`
	ID          string             `json:"id"`
	Len         int                `json:"len"`
	Modulus     int32              `json:"modulus"`
	NsOp        float64            `json:"nsOp"`    // mean across rounds
	MinNsOp     float64            `json:"minNsOp"` // fastest round
	MaxNsOp     float64            `json:"maxNsOp"` // slowest round
	AllocsOp    int64              `json:"allocsOp"`
	BytesOp     int64              `json:"bytesOp"`
	Iterations  int                `json:"iterations"`
	Rounds      int                `json:"rounds"`
	Fingerprint uint64             `json:"fingerprint"`
	PassNsOp    map[string]float64 `json:"passNsOp,omitempty"`
}

// NsPerElement is the mean cost of one pass divided by the input length.
func (r SortResult) NsPerElement() float64 {
	if r.Len == 0 {
		return 0
	}
	return r.NsOp / float64(len(Passes)) / float64(r.Len)
}

// Run benchmarks SortUnstable for every combination in order and stops at
// the first error. testing.Init must have been called in non-test binaries.
func Run(ctx context.Context, src Source, combos []Combination, cfg Config) ([]SortResult, error) {
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = 1
	}

	restore, err := setBenchtime(cfg.Samples)
	if err != nil {
		return nil, err
	}
	defer restore()

	results := make([]SortResult, 0, len(combos))
	for _, c := range combos {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		data, err := src.Obtain(ctx, c.Len, c.Modulus)
		if err != nil {
			return results, fmt.Errorf("obtain input (%s): %w", c.ID(), err)
		}

		r := measureCombination(c, data, cfg)
		if cfg.OnResult != nil {
			cfg.OnResult(r)
		}
		results = append(results, r)
	}
	return results, nil
}

func measureCombination(c Combination, data []int32, cfg Config) SortResult {
	scratch := make([]int32, len(data))

	r := SortResult{
		Name:        GroupName,
		ID:          c.ID(),
		Len:         c.Len,
		Modulus:     c.Modulus,
		MinNsOp:     math.Inf(1),
		Rounds:      cfg.Rounds,
		Fingerprint: input.Fingerprint(data),
	}

	var sum float64
	for range cfg.Rounds {
		br := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				SortUnstable(data, scratch)
			}
		})
		ns := nsPerOp(br)
		sum += ns
		r.MinNsOp = min(r.MinNsOp, ns)
		r.MaxNsOp = max(r.MaxNsOp, ns)
		r.AllocsOp = max(r.AllocsOp, br.AllocsPerOp())
		r.BytesOp = max(r.BytesOp, br.AllocedBytesPerOp())
		r.Iterations = br.N
	}
	r.NsOp = sum / float64(cfg.Rounds)

	if cfg.Passes {
		r.PassNsOp = make(map[string]float64, len(Passes))
		for _, p := range Passes {
			br := testing.Benchmark(func(b *testing.B) {
				for range b.N {
					p.Run(data, scratch)
				}
			})
			r.PassNsOp[p.String()] = nsPerOp(br)
		}
	}
	return r
}

// nsPerOp keeps sub-nanosecond precision that BenchmarkResult.NsPerOp truncates.
func nsPerOp(br testing.BenchmarkResult) float64 {
	if br.N == 0 {
		return 0
	}
	return float64(br.T.Nanoseconds()) / float64(br.N)
}

// setBenchtime pins testing.Benchmark to a fixed iteration count and
// returns a function restoring the previous setting.
func setBenchtime(samples int) (func(), error) {
	f := flag.Lookup("test.benchtime")
	if f == nil {
		return nil, errors.New("testing flags not registered; call testing.Init first")
	}
	prev := f.Value.String()
	if err := f.Value.Set(fmt.Sprintf("%dx", samples)); err != nil {
		return nil, fmt.Errorf("set benchtime: %w", err)
	}
	return func() {
		f.Value.Set(prev) //nolint:errcheck,gosec // restoring a value the flag already held
	}, nil
}
