// Package report derives human-facing aggregate statistics from a comparison
// result.
//
// Summarize is pure and side-effect-free; it never mutates the result it
// reads. Per-pair tallies are kept in mapping order so a rendered report is
// stable across runs.
package report

import (
	"github.com/csvcompare/csvcompare/internal/compare"
	"github.com/csvcompare/csvcompare/internal/mapping"
)

// PairCount is the mismatch tally for one mapped column pair.
type PairCount struct {
	Pair  mapping.Pair
	Count int
}

// Summary aggregates one comparison result.
type Summary struct {
	TotalRowsCompared int
	MatchCount        int
	MismatchCount     int

	// MatchRate is MatchCount/TotalRowsCompared. HasMatchRate is false when
	// zero rows were compared; MatchRate is 0 and meaningless in that case.
	MatchRate    float64
	HasMatchRate bool

	// PerPairMismatches lists, per mapped pair in mapping order, the number
	// of rows where that pair differed.
	PerPairMismatches []PairCount

	UnmatchedLeft  int
	UnmatchedRight int

	// Identical means no mismatched rows and no unmatched rows on either
	// side: the two tables are indistinguishable under the mapping.
	Identical bool
}

// Summarize computes the aggregate view of a comparison result.
func Summarize(res *compare.Result) Summary {
	s := Summary{
		TotalRowsCompared: res.AlignedRowCount,
		UnmatchedLeft:     len(res.UnmatchedLeft),
		UnmatchedRight:    len(res.UnmatchedRight),
	}

	perPair := make([]PairCount, len(res.Mapping.Pairs))
	pairSlot := make(map[mapping.Pair]int, len(res.Mapping.Pairs))
	for i, p := range res.Mapping.Pairs {
		perPair[i] = PairCount{Pair: p}
		pairSlot[p] = i
	}

	for i := range res.Outcomes {
		out := &res.Outcomes[i]
		if out.Verdict != compare.VerdictMismatch {
			s.MatchCount++
			continue
		}
		s.MismatchCount++
		for _, d := range out.Diffs {
			if slot, ok := pairSlot[d.Pair]; ok {
				perPair[slot].Count++
			}
		}
	}
	s.PerPairMismatches = perPair

	if s.TotalRowsCompared > 0 {
		s.MatchRate = float64(s.MatchCount) / float64(s.TotalRowsCompared)
		s.HasMatchRate = true
	}
	s.Identical = s.MismatchCount == 0 && s.UnmatchedLeft == 0 && s.UnmatchedRight == 0
	return s
}
