/*
Transrate computes quality and composition metrics for de novo transcriptome
assemblies. Given an assembly FASTA, and optionally a per-contig read
alignment summary and a CRB-BLAST hit table, it scores every contig, writes
per-contig and whole-assembly TSV reports, splits the contigs into good and
bad FASTA files, and can persist the run as a snapshot for later inspection
with "transrate view".

Sample usage:
transrate assess \
    -assembly contigs.fa \
    -read-stats read_stats.tsv \
    -crb hits.tsv \
    -reference reference.fa \
    -out results/transrate \
    -snapshot results/transrate.rio
*/
package main
