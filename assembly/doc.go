// Package assembly evaluates whole transcriptome assemblies. It loads
// contigs from FASTA, applies alignment summaries and reference-search hits
// to them, computes per-contig metrics and scores in parallel, and writes
// the tabular reports, the good/bad FASTA split and a reloadable snapshot.
package assembly
