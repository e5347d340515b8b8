package contig

import (
	"github.com/grailbio/base/log"
)

// normBase folds every byte to the {A,C,G,T,N} alphabet. Lowercase bases are
// capitalized and anything outside the alphabet becomes N. IUPAC ambiguity
// codes occur in real assemblies, so out-of-alphabet bytes are folded rather
// than rejected.
var normBase [256]uint8

func init() {
	for i := range normBase {
		normBase[i] = 'N'
	}
	normBase['a'] = 'A'
	normBase['A'] = 'A'
	normBase['c'] = 'C'
	normBase['C'] = 'C'
	normBase['g'] = 'G'
	normBase['G'] = 'G'
	normBase['t'] = 'T'
	normBase['T'] = 'T'
}

// optFloat is a float64 that knows whether it has been set. The zero value
// is "unset".
type optFloat struct {
	val float64
	ok  bool
}

// optInt is an int that knows whether it has been set.
type optInt struct {
	val int
	ok  bool
}

// Hit is one reference-search result for a contig. TargetFrom and TargetTo
// are 1-based inclusive positions on the target sequence, as in tabular
// BLAST output.
type Hit struct {
	Target     string
	TargetFrom int
	TargetTo   int
}

// Contig holds one assembled sequence and the metrics computed for it.
//
// The sequence buffer passed to New is owned by the contig afterwards.
// Composition, ORF length, complexity and score are computed on first access
// and cached; the caches are never invalidated, so mutating a read-derived
// field after Score has been read does not change the returned score.
type Contig struct {
	name     string
	seq      []byte
	length   int
	released bool

	// Sequence-derived caches.
	baseComp   BaseComp
	dibaseComp DibaseComp
	compDone   bool
	orfLen     optInt
	complexity map[int]float64

	// Read-derived fields, set by the alignment-stats collaborator.
	coverage      float64
	pUnique       float64
	pNotSegmented float64
	uncovered     optInt
	pUncovered    optFloat
	pSeqTrue      optFloat
	lowUniqueness optInt
	inBridges     optInt
	pGood         optFloat

	// Reference-derived fields, set by the reference-search collaborator.
	hasCRB      bool
	refCoverage optFloat
	hits        []Hit

	score optFloat
}

// New creates a contig from a name and a raw sequence buffer, taking
// ownership of the buffer. The buffer is normalized in place: control bytes
// and whitespace (anything at or below 0x20, plus DEL) are squeezed out, and
// the remaining bytes are folded to {A,C,G,T,N} with lowercase capitalized
// and out-of-alphabet bytes folded to N. The caller must not use seq after
// New returns.
func New(name string, seq []byte) *Contig {
	j := 0
	for _, ch := range seq {
		if ch <= ' ' || ch == 0x7f {
			continue
		}
		seq[j] = normBase[ch]
		j++
	}
	return &Contig{
		name:          name,
		seq:           seq[:j],
		length:        j,
		pUnique:       1,
		pNotSegmented: 1,
	}
}

// Name returns the contig identifier.
func (c *Contig) Name() string { return c.name }

// Len returns the normalized sequence length. It stays valid after
// ReleaseSeq.
func (c *Contig) Len() int { return c.length }

// Seq returns the normalized sequence. Callers must not modify it. Returns
// nil after ReleaseSeq.
func (c *Contig) Seq() []byte {
	if c.released {
		return nil
	}
	return c.seq
}

// ReleaseSeq frees the sequence buffer. All sequence-derived metrics that
// will ever be needed must be forced before the call; accessing an uncached
// sequence-derived metric afterwards panics.
func (c *Contig) ReleaseSeq() {
	c.seq = nil
	c.released = true
}

func (c *Contig) needSeq(what string) {
	if c.released {
		log.Panicf("contig %s: %s requested after sequence release", c.name, what)
	}
}

// SetCoverage sets the mean per-base read coverage.
func (c *Contig) SetCoverage(v float64) { c.coverage = v }

// Coverage returns the mean per-base read coverage. Defaults to 0.
func (c *Contig) Coverage() float64 { return c.coverage }

// SetUncoveredBases records the number of bases with zero read coverage and
// derives the uncovered proportion from it. n is clamped into [0, Len].
func (c *Contig) SetUncoveredBases(n int) {
	if n < 0 {
		n = 0
	}
	if n > c.length {
		n = c.length
	}
	c.uncovered = optInt{n, true}
	c.pUncovered = optFloat{float64(n) / float64(c.length), true}
}

// UncoveredBases returns the uncovered-base count and whether it was set.
func (c *Contig) UncoveredBases() (int, bool) { return c.uncovered.val, c.uncovered.ok }

// SetPSeqTrue sets the probability that the contig sequence is accurate,
// derived from read edit distances.
func (c *Contig) SetPSeqTrue(v float64) { c.pSeqTrue = optFloat{v, true} }

// SetPUnique sets the probability that reads mapping here map uniquely.
// Defaults to 1 when never set.
func (c *Contig) SetPUnique(v float64) { c.pUnique = v }

// SetPNotSegmented sets the probability that read coverage is not segmented
// into disjoint islands. Defaults to 1 when never set.
func (c *Contig) SetPNotSegmented(v float64) { c.pNotSegmented = v }

// SetLowUniquenessBases sets the count of bases covered mostly by
// multi-mapping reads.
func (c *Contig) SetLowUniquenessBases(n int) { c.lowUniqueness = optInt{n, true} }

// SetInBridges sets the number of read pairs bridging this contig to
// another.
func (c *Contig) SetInBridges(n int) { c.inBridges = optInt{n, true} }

// SetPGood sets the proportion of mapped read pairs that are good (agreeing
// orientation and plausible insert). Until this is set the read-based view
// reports its dependent fields as unavailable.
func (c *Contig) SetPGood(v float64) { c.pGood = optFloat{v, true} }

// PGood returns the good-pair proportion and whether it was set.
func (c *Contig) PGood() (float64, bool) { return c.pGood.val, c.pGood.ok }

// AddHit appends one reference-search hit and marks the contig as having a
// reciprocal best hit. Hits keep their insertion order.
func (c *Contig) AddHit(h Hit) {
	c.hits = append(c.hits, h)
	c.hasCRB = true
}

// Hits returns the reference-search hits in insertion order. Callers must
// not modify the returned slice.
func (c *Contig) Hits() []Hit { return c.hits }

// HasCRB reports whether a reciprocal best hit was recorded.
func (c *Contig) HasCRB() bool { return c.hasCRB }

// SetReferenceCoverage sets the proportion of the best-matched reference
// sequence covered by this contig's hits.
func (c *Contig) SetReferenceCoverage(v float64) { c.refCoverage = optFloat{v, true} }
