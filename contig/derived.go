package contig

import "math"

// skew returns (x-y)/(x+y), or NaN when x+y is zero.
func skew(x, y int) float64 {
	if x+y == 0 {
		return math.NaN()
	}
	return float64(x-y) / float64(x+y)
}

// Proportion returns count(base)/length, or NaN for an empty sequence.
func (c *Contig) Proportion(base byte) float64 {
	if c.length == 0 {
		return math.NaN()
	}
	return float64(c.BaseComposition().Count(base)) / float64(c.length)
}

// GCProportion returns the fraction of G and C bases, NaN for an empty
// sequence.
func (c *Contig) GCProportion() float64 {
	if c.length == 0 {
		return math.NaN()
	}
	b := c.BaseComposition()
	return float64(b.Count('G')+b.Count('C')) / float64(c.length)
}

// GCSkew returns (G-C)/(G+C), or NaN when the contig has no G or C.
func (c *Contig) GCSkew() float64 {
	b := c.BaseComposition()
	return skew(b.Count('G'), b.Count('C'))
}

// ATSkew returns (A-T)/(A+T), or NaN when the contig has no A or T.
func (c *Contig) ATSkew() float64 {
	b := c.BaseComposition()
	return skew(b.Count('A'), b.Count('T'))
}

// CpGCount returns the number of CG plus GC adjacent pairs.
func (c *Contig) CpGCount() int {
	d := c.DibaseComposition()
	return d.Count('C', 'G') + d.Count('G', 'C')
}

// CpGRatio returns the observed/expected CpG ratio,
// cpg/(C*G) * (length-N). NaN when the contig has no C or no G.
func (c *Contig) CpGRatio() float64 {
	b := c.BaseComposition()
	cg := b.Count('C') * b.Count('G')
	if cg == 0 {
		return math.NaN()
	}
	return float64(c.CpGCount()) / float64(cg) * float64(c.length-b.Count('N'))
}
