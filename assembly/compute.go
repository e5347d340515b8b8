package assembly

import (
	"github.com/grailbio/base/traverse"
	"github.com/minio/highwayhash"
)

// seqDigest identifies a contig sequence for duplicate detection. Exact
// duplicates are found by digest equality alone; at 256 bits a collision is
// never expected in practice.
type seqDigest = [highwayhash.Size]uint8

// ComputeMetrics forces the sequence-derived metrics and the score of every
// contig, accumulates the assembly stats, and moves each sequence into the
// compressed store, releasing the contig's own buffer. Apply read stats and
// reference hits before calling; afterwards they no longer change scores.
//
// Contigs are partitioned across opts.Parallelism tasks. Each task owns a
// contiguous range of contig indices, so no two tasks touch the same contig
// or store slot.
func (a *Assembly) ComputeMetrics(opts Opts) (Stats, error) {
	opts, err := opts.normalize()
	if err != nil {
		return Stats{}, err
	}
	n := len(a.contigs)
	store := newSeqStore(n)
	digests := make([]seqDigest, n)
	lengths := make([]int, n)
	shards := make([]Stats, opts.Parallelism)
	zeroSeed := seqDigest{}
	err = traverse.Each(opts.Parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * n) / opts.Parallelism
		endIdx := ((jobIdx + 1) * n) / opts.Parallelism
		shard := &shards[jobIdx]
		for i := startIdx; i < endIdx; i++ {
			c := a.contigs[i]
			m := c.Basic(opts.ComplexityK)
			digests[i] = highwayhash.Sum(c.Seq(), zeroSeed[:])
			store.put(i, c.Seq())
			c.ReleaseSeq()
			lengths[i] = m.Length
			shard.addContig(c, m, opts.ScoreCutoff)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	for _, s := range shards {
		stats = stats.Merge(s)
	}
	stats.Cutoff = opts.ScoreCutoff
	stats.setLengthQuantiles(lengths)
	stats.Duplicates = countDuplicates(digests)

	a.store = store
	a.stats = stats
	a.opts = opts
	a.computed = true
	return stats, nil
}

// countDuplicates counts contigs whose sequence digest already occurred
// earlier in the assembly.
func countDuplicates(digests []seqDigest) int {
	seen := make(map[seqDigest]struct{}, len(digests))
	dups := 0
	for _, d := range digests {
		if _, found := seen[d]; found {
			dups++
			continue
		}
		seen[d] = struct{}{}
	}
	return dups
}
