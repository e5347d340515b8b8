// Package contig computes per-contig quality and composition metrics for
// assembled transcriptome sequences: base and dibase composition, GC and AT
// skew, CpG ratio, the longest open reading frame across six frames, k-mer
// linguistic complexity, and a geometric-mean quality score combining
// read-derived probabilities.
//
// A Contig is an independent unit of mutable state. It is not safe for
// concurrent use: metrics are computed lazily and cached on first access, so
// a contig must be confined to one goroutine at least until its metrics have
// been forced. Processing many contigs in parallel needs no locking as long
// as no single contig is shared.
package contig
