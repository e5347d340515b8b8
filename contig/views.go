package contig

import "strings"

// NA is the marker reported for metrics that are unavailable because their
// inputs were never supplied.
const NA = "NA"

// Metric is a float metric that may not have been computed. OK reports
// whether Value is meaningful; report writers render !OK as NA.
type Metric struct {
	Value float64
	OK    bool
}

// IntMetric is an integer metric that may not have been computed.
type IntMetric struct {
	Value int
	OK    bool
}

// BasicMetrics is the view computable from the sequence alone.
type BasicMetrics struct {
	Name                 string
	Length               int
	PropGC               float64 // NaN for empty sequences
	GCSkew               float64 // NaN when no G or C
	ATSkew               float64 // NaN when no A or T
	CpGCount             int
	CpGRatio             float64 // NaN when no C or no G
	ORFLength            int
	LinguisticComplexity float64
}

// Basic computes the basic view with linguistic complexity at width k.
func (c *Contig) Basic(k int) BasicMetrics {
	return BasicMetrics{
		Name:                 c.name,
		Length:               c.length,
		PropGC:               c.GCProportion(),
		GCSkew:               c.GCSkew(),
		ATSkew:               c.ATSkew(),
		CpGCount:             c.CpGCount(),
		CpGRatio:             c.CpGRatio(),
		ORFLength:            c.ORFLength(),
		LinguisticComplexity: c.Complexity(k),
	}
}

// ReadMetrics is the read-based view. Coverage, PUnique and PNotSegmented
// have defaults and always carry real values. Everything else is available
// only once PGood has been supplied, and then only if its own input was
// supplied too.
type ReadMetrics struct {
	Coverage      float64
	PUnique       float64
	PNotSegmented float64

	PGood              Metric
	Score              Metric
	UncoveredBases     IntMetric
	PUncoveredBases    Metric
	PBasesCovered      Metric
	PSeqTrue           Metric
	LowUniquenessBases IntMetric
	InBridges          IntMetric
}

// ReadBased computes the read-based view. When PGood was never set, every
// field without an independent default reports unavailable; the caller can
// tell "not computed" from "computed as zero". Reading this view with PGood
// set computes and caches the score.
func (c *Contig) ReadBased() ReadMetrics {
	m := ReadMetrics{
		Coverage:      c.coverage,
		PUnique:       c.pUnique,
		PNotSegmented: c.pNotSegmented,
	}
	if !c.pGood.ok {
		return m
	}
	m.PGood = Metric{c.pGood.val, true}
	m.Score = Metric{c.Score(), true}
	m.UncoveredBases = IntMetric{c.uncovered.val, c.uncovered.ok}
	m.PUncoveredBases = Metric{c.pUncovered.val, c.pUncovered.ok}
	if c.pUncovered.ok {
		m.PBasesCovered = Metric{1 - c.pUncovered.val, true}
	}
	m.PSeqTrue = Metric{c.pSeqTrue.val, c.pSeqTrue.ok}
	m.LowUniquenessBases = IntMetric{c.lowUniqueness.val, c.lowUniqueness.ok}
	m.InBridges = IntMetric{c.inBridges.val, c.inBridges.ok}
	return m
}

// ComparativeMetrics is the reference-based view.
type ComparativeMetrics struct {
	HasCRB            bool
	ReferenceCoverage Metric
	// Hits is the semicolon-joined list of hit target identifiers, or NA
	// when no hit exists.
	Hits string
}

// Comparative computes the reference-based view.
func (c *Contig) Comparative() ComparativeMetrics {
	m := ComparativeMetrics{Hits: NA}
	if !c.hasCRB {
		return m
	}
	m.HasCRB = true
	m.ReferenceCoverage = Metric{c.refCoverage.val, c.refCoverage.ok}
	if len(c.hits) > 0 {
		targets := make([]string, len(c.hits))
		for i, h := range c.hits {
			targets[i] = h.Target
		}
		m.Hits = strings.Join(targets, ";")
	}
	return m
}
