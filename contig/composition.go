package contig

// baseIndex maps A, C, G, T to {0,1,2,3}. It maps N and everything else
// to 4. Sequences are normalized at construction, so during counting only
// capital ACGTN ever appears.
var baseIndex [256]uint8

func init() {
	for i := range baseIndex {
		baseIndex[i] = 4
	}
	baseIndex['a'] = 0
	baseIndex['A'] = 0
	baseIndex['c'] = 1
	baseIndex['C'] = 1
	baseIndex['g'] = 2
	baseIndex['G'] = 2
	baseIndex['t'] = 3
	baseIndex['T'] = 3
}

// baseSymbols lists the counted symbols in index order.
var baseSymbols = [5]byte{'A', 'C', 'G', 'T', 'N'}

// BaseComp counts the five base symbols, indexed A, C, G, T, N.
type BaseComp [5]int

// Count returns the count for one symbol, case-insensitively. Symbols
// outside the alphabet share the N bucket.
func (b BaseComp) Count(base byte) int { return b[baseIndex[base]] }

// Sum returns the total count, which equals the sequence length.
func (b BaseComp) Sum() int {
	n := 0
	for _, c := range b {
		n += c
	}
	return n
}

// DibaseComp counts the 25 ordered base pairs. Pair (x, y) is stored at
// index 5*baseIndex[x] + baseIndex[y].
type DibaseComp [25]int

// Count returns the count for the ordered pair (first, second).
func (d DibaseComp) Count(first, second byte) int {
	return d[5*baseIndex[first]+baseIndex[second]]
}

// Sum returns the total pair count, which equals length-1 for nonempty
// sequences and 0 otherwise.
func (d DibaseComp) Sum() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// countComposition counts bases and ordered adjacent pairs in one pass.
func countComposition(seq []byte) (BaseComp, DibaseComp) {
	var bases BaseComp
	var pairs DibaseComp
	if len(seq) == 0 {
		return bases, pairs
	}
	prev := baseIndex[seq[0]]
	bases[prev]++
	for _, ch := range seq[1:] {
		cur := baseIndex[ch]
		bases[cur]++
		pairs[5*prev+cur]++
		prev = cur
	}
	return bases, pairs
}

func (c *Contig) ensureComposition() {
	if c.compDone {
		return
	}
	c.needSeq("composition")
	c.baseComp, c.dibaseComp = countComposition(c.seq)
	c.compDone = true
}

// BaseComposition returns the cached base counts, computing them on first
// call together with the dibase counts.
func (c *Contig) BaseComposition() BaseComp {
	c.ensureComposition()
	return c.baseComp
}

// DibaseComposition returns the cached ordered pair counts.
func (c *Contig) DibaseComposition() DibaseComp {
	c.ensureComposition()
	return c.dibaseComp
}
