package output

import (
	"math"
	"sort"

	"github.com/tstromberg/gosortmark/internal/benchmark"
)

// Round3 rounds to 3 decimal places for tie detection.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// WinnerEntry represents a ranked entry for winner display.
type WinnerEntry struct {
	Name  string
	Score float64
}

// FormatWinners returns winner names and the first runner-up for comparison.
// If multiple entries tie for first, all are returned as winners.
// Returns (winners, runnerUp) where runnerUp is nil if everyone ties or only one entry.
func FormatWinners(entries []WinnerEntry) (winners []string, runnerUp *WinnerEntry) {
	if len(entries) == 0 {
		return nil, nil
	}

	bestScore := Round3(entries[0].Score)
	for _, e := range entries {
		if Round3(e.Score) != bestScore {
			runnerUp = &WinnerEntry{Name: e.Name, Score: e.Score}
			break
		}
		winners = append(winners, e.Name)
	}

	return winners, runnerUp
}

// ComputeRankings orders combinations by cost per element, cheapest first.
// Entries equal to 3 decimal places share a rank and the next rank is
// skipped by the size of the tie.
func ComputeRankings(results []benchmark.SortResult) []Ranking {
	if len(results) == 0 {
		return nil
	}

	sorted := make([]benchmark.SortResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NsPerElement() < sorted[j].NsPerElement()
	})

	rankings := make([]Ranking, 0, len(sorted))
	rank := 0
	for i := 0; i < len(sorted); {
		base := Round3(sorted[i].NsPerElement())
		start := i
		for i < len(sorted) && Round3(sorted[i].NsPerElement()) == base {
			r := sorted[i]
			rankings = append(rankings, Ranking{
				Rank:         rank + 1,
				Name:         r.ID,
				NsOp:         r.NsOp,
				NsPerElement: r.NsPerElement(),
			})
			i++
		}
		rank += i - start
	}
	return rankings
}

// Winners converts rankings to winner entries, cheapest first.
func Winners(rankings []Ranking) []WinnerEntry {
	entries := make([]WinnerEntry, len(rankings))
	for i, r := range rankings {
		entries[i] = WinnerEntry{Name: r.Name, Score: r.NsPerElement}
	}
	return entries
}
