package assembly

import (
	"math"
	"sort"

	"github.com/wulouis/transrate/contig"
)

// minORFBases is the shortest open reading frame that counts a contig as
// coding in the WithORF tally.
const minORFBases = 150

// Stats summarizes one assembly. Counts and sums are accumulated per contig
// and are mergeable across computation shards; the length quantiles, the
// duplicate count and the cutoff are filled in a final pass over the whole
// assembly and must not be read from a shard.
type Stats struct {
	// Contigs is the number of contigs in the assembly.
	Contigs int
	// TotalLength is the summed contig length in bases.
	TotalLength int
	// MinLength and MaxLength are the shortest and longest contig lengths.
	// Both are zero when Contigs is zero.
	MinLength int
	MaxLength int
	// Under200, Over1K and Over10K count contigs shorter than 200 bases and
	// longer than 1kb and 10kb.
	Under200 int
	Over1K   int
	Over10K  int
	// Bases is the summed base composition over all contigs.
	Bases contig.BaseComp
	// WithORF counts contigs whose longest open reading frame has at least
	// minORFBases bases.
	WithORF int
	// ORFFractionSum accumulates ORF length over contig length per contig.
	ORFFractionSum float64
	// Scored counts contigs whose good-pair proportion was supplied, so a
	// score could be reported for them. ScoreSum accumulates their scores
	// and Good counts those at or above the cutoff.
	Scored   int
	ScoreSum float64
	Good     int
	// Cutoff is the good/bad score threshold used for Good.
	Cutoff float64
	// Duplicates counts contigs whose exact sequence already occurred
	// earlier in the assembly.
	Duplicates int
	// N10..N90 are length quantiles: NXX is the length of the shortest
	// contig in the smallest set of longest contigs that together cover at
	// least XX percent of the assembly.
	N10 int
	N30 int
	N50 int
	N70 int
	N90 int
}

// addContig accumulates one contig into the shard stats. The caller must
// have forced the basic view it passes in.
func (s *Stats) addContig(c *contig.Contig, m contig.BasicMetrics, cutoff float64) {
	if s.Contigs == 0 || m.Length < s.MinLength {
		s.MinLength = m.Length
	}
	if m.Length > s.MaxLength {
		s.MaxLength = m.Length
	}
	s.Contigs++
	s.TotalLength += m.Length
	if m.Length < 200 {
		s.Under200++
	}
	if m.Length > 1000 {
		s.Over1K++
	}
	if m.Length > 10000 {
		s.Over10K++
	}
	for i, n := range c.BaseComposition() {
		s.Bases[i] += n
	}
	if m.ORFLength >= minORFBases {
		s.WithORF++
	}
	if m.Length > 0 {
		s.ORFFractionSum += float64(m.ORFLength) / float64(m.Length)
	}
	if _, ok := c.PGood(); ok {
		s.Scored++
		score := c.Score()
		s.ScoreSum += score
		if score >= cutoff {
			s.Good++
		}
	}
}

// Merge adds the mergeable field values of the two Stats objects and
// creates new Stats. Final-pass fields are taken from s unchanged.
func (s Stats) Merge(o Stats) Stats {
	if o.Contigs > 0 {
		if s.Contigs == 0 || o.MinLength < s.MinLength {
			s.MinLength = o.MinLength
		}
		if o.MaxLength > s.MaxLength {
			s.MaxLength = o.MaxLength
		}
	}
	s.Contigs += o.Contigs
	s.TotalLength += o.TotalLength
	s.Under200 += o.Under200
	s.Over1K += o.Over1K
	s.Over10K += o.Over10K
	for i, n := range o.Bases {
		s.Bases[i] += n
	}
	s.WithORF += o.WithORF
	s.ORFFractionSum += o.ORFFractionSum
	s.Scored += o.Scored
	s.ScoreSum += o.ScoreSum
	s.Good += o.Good
	return s
}

// Bad returns the number of scored contigs below the cutoff.
func (s Stats) Bad() int { return s.Scored - s.Good }

// GC returns the G+C fraction of all assembly bases, NaN for an empty
// assembly. The denominator includes N bases, matching the per-contig
// proportion.
func (s Stats) GC() float64 {
	if s.TotalLength == 0 {
		return math.NaN()
	}
	return float64(s.Bases.Count('G')+s.Bases.Count('C')) / float64(s.TotalLength)
}

// NCount returns the number of N bases in the assembly.
func (s Stats) NCount() int { return s.Bases.Count('N') }

// MeanScore returns the mean score over scored contigs, NaN when no contig
// was scored.
func (s Stats) MeanScore() float64 {
	if s.Scored == 0 {
		return math.NaN()
	}
	return s.ScoreSum / float64(s.Scored)
}

// MeanORFFraction returns the mean per-contig ORF length fraction, NaN for
// an empty assembly.
func (s Stats) MeanORFFraction() float64 {
	if s.Contigs == 0 {
		return math.NaN()
	}
	return s.ORFFractionSum / float64(s.Contigs)
}

// setLengthQuantiles fills N10..N90 from the full contig length multiset.
// The slice is sorted in place.
func (s *Stats) setLengthQuantiles(lengths []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	s.N10 = nxx(lengths, s.TotalLength, 10)
	s.N30 = nxx(lengths, s.TotalLength, 30)
	s.N50 = nxx(lengths, s.TotalLength, 50)
	s.N70 = nxx(lengths, s.TotalLength, 70)
	s.N90 = nxx(lengths, s.TotalLength, 90)
}

// nxx returns the length of the first contig, walking from longest to
// shortest, at which the cumulative length reaches pct percent of total.
func nxx(sorted []int, total, pct int) int {
	if total == 0 {
		return 0
	}
	cum := 0
	for _, l := range sorted {
		cum += l
		if cum*100 >= total*pct {
			return l
		}
	}
	return sorted[len(sorted)-1]
}
