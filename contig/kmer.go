package contig

import (
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
)

// Kmer is a compact encoding of a window over the five-symbol alphabet,
// three bits per symbol, newest symbol in the low bits. Windows containing
// N are valid: complexity counts every observed window, ambiguous or not.
type Kmer uint64

// MaxComplexityK is the widest window Kmer can hold.
const MaxComplexityK = 21

// DefaultComplexityK is the window width used by the basic metric view.
const DefaultComplexityK = 6

// kmerBits maps a base to its 3-bit code. N and out-of-alphabet bytes share
// code 4.
var kmerBits [256]uint8

func init() {
	for i := range kmerBits {
		kmerBits[i] = 4
	}
	kmerBits['a'] = 0
	kmerBits['A'] = 0
	kmerBits['c'] = 1
	kmerBits['C'] = 1
	kmerBits['g'] = 2
	kmerBits['G'] = 2
	kmerBits['t'] = 3
	kmerBits['T'] = 3
}

// kmerizer iterates over every width-k window of a sequence, maintaining the
// packed encoding incrementally. Usage: Reset, then Scan until false, with
// Get returning the current window.
type kmerizer struct {
	k    int
	mask Kmer // ^0 >> (64 - 3*k)

	seq []byte
	si  int // index one past the last symbol consumed
	cur Kmer
}

func newKmerizer(k int) *kmerizer {
	if k < 1 || k > MaxComplexityK {
		log.Panicf("kmerizer: width %d out of range [1,%d]", k, MaxComplexityK)
	}
	return &kmerizer{
		k:    k,
		mask: ^(^Kmer(0) << Kmer(3*k)),
	}
}

func (z *kmerizer) Reset(seq []byte) {
	z.seq = seq
	z.si = 0
	z.cur = 0
}

func (z *kmerizer) Scan() bool {
	if z.si == 0 {
		if len(z.seq) < z.k {
			return false
		}
		for _, ch := range z.seq[:z.k] {
			z.cur = (z.cur << 3) | Kmer(kmerBits[ch])
		}
		z.si = z.k
		return true
	}
	if z.si >= len(z.seq) {
		return false
	}
	z.cur = ((z.cur << 3) | Kmer(kmerBits[z.seq[z.si]])) & z.mask
	z.si++
	return true
}

func (z *kmerizer) Get() Kmer { return z.cur }

// emptySlot marks an unoccupied kmerSet slot. Valid kmers use at most 63
// bits, so the all-ones value can never collide.
const emptySlot = ^Kmer(0)

// kmerSet is a vanilla linear-probing presence set of packed kmers. It is
// sized up front for the number of windows in one sequence, so inserts never
// rehash.
type kmerSet struct {
	slots []Kmer
	mask  uint64
	n     int
}

func hashKmer(k Kmer) uint64 {
	return farm.Hash64WithSeed(nil, uint64(k))
}

// newKmerSet returns a set with capacity for n kmers at load factor <= 0.5.
func newKmerSet(n int) *kmerSet {
	size := uint64(16)
	for size < uint64(n)*2 {
		size <<= 1
	}
	s := &kmerSet{
		slots: make([]Kmer, size),
		mask:  size - 1,
	}
	for i := range s.slots {
		s.slots[i] = emptySlot
	}
	return s
}

// insert adds k and reports whether it was absent before the call.
func (s *kmerSet) insert(k Kmer) bool {
	i := hashKmer(k) & s.mask
	for {
		switch s.slots[i] {
		case emptySlot:
			s.slots[i] = k
			s.n++
			return true
		case k:
			return false
		}
		i = (i + 1) & s.mask
	}
}

// distinctKmers counts the distinct width-k windows of seq.
func distinctKmers(seq []byte, k int) int {
	if len(seq) < k {
		return 0
	}
	set := newKmerSet(len(seq) - k + 1)
	z := newKmerizer(k)
	z.Reset(seq)
	for z.Scan() {
		set.insert(z.Get())
	}
	return set.n
}

// Complexity returns the linguistic complexity at window width k: the number
// of distinct width-k windows divided by 4^k, the window count of the
// unambiguous alphabet. Windows containing N count as observed windows but
// do not widen the denominator. Returns 0 when the sequence is shorter
// than k. Cached per k. k must be in [1, MaxComplexityK].
func (c *Contig) Complexity(k int) float64 {
	if k < 1 || k > MaxComplexityK {
		log.Panicf("contig %s: complexity width %d out of range [1,%d]", c.name, k, MaxComplexityK)
	}
	if v, ok := c.complexity[k]; ok {
		return v
	}
	c.needSeq("complexity")
	v := float64(distinctKmers(c.seq, k)) / float64(uint64(1)<<uint(2*k))
	if c.complexity == nil {
		c.complexity = map[int]float64{}
	}
	c.complexity[k] = v
	return v
}
