package contig

// complementBase maps each base to its complement. N stays N, as does
// anything outside the alphabet.
var complementBase [256]uint8

func init() {
	for i := range complementBase {
		complementBase[i] = 'N'
	}
	complementBase['A'] = 'T'
	complementBase['T'] = 'A'
	complementBase['C'] = 'G'
	complementBase['G'] = 'C'
}

func reverseComplement(seq []byte) []byte {
	buf := make([]byte, len(seq))
	for i, ch := range seq {
		buf[len(seq)-1-i] = complementBase[ch]
	}
	return buf
}

func isStartCodon(c0, c1, c2 byte) bool {
	return c0 == 'A' && c1 == 'T' && c2 == 'G'
}

func isStopCodon(c0, c1, c2 byte) bool {
	if c0 != 'T' {
		return false
	}
	return (c1 == 'A' && (c2 == 'A' || c2 == 'G')) || (c1 == 'G' && c2 == 'A')
}

// longestRunInFrame scans non-overlapping codons starting at offset and
// returns the longest ATG-to-stop run in nucleotides, including both the
// start and the stop codon. Codons containing N neither start nor stop a
// run. Returns 0 when no complete run exists in this frame.
func longestRunInFrame(seq []byte, offset int) int {
	best := 0
	start := -1
	for i := offset; i+3 <= len(seq); i += 3 {
		c0, c1, c2 := seq[i], seq[i+1], seq[i+2]
		if start < 0 {
			if isStartCodon(c0, c1, c2) {
				start = i
			}
			continue
		}
		if isStopCodon(c0, c1, c2) {
			if n := i + 3 - start; n > best {
				best = n
			}
			start = -1
		}
	}
	return best
}

// longestORF returns the longest open reading frame across all six frames,
// three forward offsets and three on the reverse complement. Runs in linear
// time over the sequence.
func longestORF(seq []byte) int {
	if len(seq) < 3 {
		return 0
	}
	best := 0
	for offset := 0; offset < 3; offset++ {
		if n := longestRunInFrame(seq, offset); n > best {
			best = n
		}
	}
	rc := reverseComplement(seq)
	for offset := 0; offset < 3; offset++ {
		if n := longestRunInFrame(rc, offset); n > best {
			best = n
		}
	}
	return best
}

// ORFLength returns the cached longest ORF length in nucleotides. 0 for
// sequences shorter than one codon or without a complete start-to-stop run.
func (c *Contig) ORFLength() int {
	if !c.orfLen.ok {
		c.needSeq("ORF length")
		c.orfLen = optInt{longestORF(c.seq), true}
	}
	return c.orfLen.val
}
