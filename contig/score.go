package contig

import "math"

// ScoreFloor is the lower bound applied to every score component and to the
// combined score. It keeps one degenerate zero from collapsing the geometric
// mean, and makes the combined score distinguishable from "not computed".
const ScoreFloor = 0.01

// clampComponent pulls a score component into [ScoreFloor, 1]. NaN, unset
// and out-of-range inputs all land on the floor or the ceiling instead of
// poisoning the product.
func clampComponent(v float64) float64 {
	if math.IsNaN(v) || v < ScoreFloor {
		return ScoreFloor
	}
	if v > 1 {
		return 1
	}
	return v
}

// combineScore is the geometric mean of the five clamped components, floored
// at ScoreFloor.
func combineScore(pBasesCovered, pNotSegmented, pGood, pSeqTrue, pUnique float64) float64 {
	c0 := clampComponent(pBasesCovered)
	c1 := clampComponent(pNotSegmented)
	c2 := clampComponent(pGood)
	c3 := clampComponent(pSeqTrue)
	c4 := clampComponent(pUnique)
	if c0 == c1 && c1 == c2 && c2 == c3 && c3 == c4 {
		// The geometric mean of equal components is the component. Computing
		// it through Pow would round, and all-floor inputs must yield the
		// floor exactly.
		return c0
	}
	s := math.Pow(c0*c1*c2*c3*c4, 1.0/5.0)
	if math.IsNaN(s) || s < ScoreFloor {
		return ScoreFloor
	}
	return s
}

// Score returns the contig quality score in [ScoreFloor, 1], the geometric
// mean of the bases-covered proportion, the not-segmented probability, the
// good-pair proportion, the sequence-accuracy probability and the
// read-uniqueness probability. It is computed from the read-derived fields
// as they are on the first call and cached; later changes to those fields do
// not alter it.
func (c *Contig) Score() float64 {
	if !c.score.ok {
		pBasesCovered := math.NaN()
		if c.pUncovered.ok {
			pBasesCovered = 1 - c.pUncovered.val
		}
		pGood := math.NaN()
		if c.pGood.ok {
			pGood = c.pGood.val
		}
		pSeqTrue := math.NaN()
		if c.pSeqTrue.ok {
			pSeqTrue = c.pSeqTrue.val
		}
		c.score = optFloat{combineScore(pBasesCovered, c.pNotSegmented, pGood, pSeqTrue, c.pUnique), true}
	}
	return c.score.val
}
