package cmd

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/wulouis/transrate/assembly"
)

type assessFlags struct {
	assembly    *string
	readStats   *string
	crb         *string
	reference   *string
	out         *string
	format      *string
	cutoff      *float64
	complexityK *int
	snapshot    *string
	parallelism *int
}

func assess(flags assessFlags) error {
	ctx := vcontext.Background()
	format, err := assembly.ParseFormat(*flags.format)
	if err != nil {
		return err
	}
	a, err := assembly.Load(ctx, *flags.assembly)
	if err != nil {
		return err
	}
	log.Printf("%s: %d contigs", a.Name(), a.NumContigs())
	checksums := map[string]uint64{}
	record := func(path string) error {
		sum, err := assembly.FileChecksum(ctx, path)
		if err != nil {
			return err
		}
		checksums[path] = sum
		return nil
	}
	if err := record(*flags.assembly); err != nil {
		return err
	}
	if *flags.readStats != "" {
		if err := a.ApplyReadStats(ctx, *flags.readStats); err != nil {
			return err
		}
		if err := record(*flags.readStats); err != nil {
			return err
		}
	}
	if *flags.crb != "" {
		var lengths map[string]uint64
		if *flags.reference != "" {
			if lengths, err = assembly.TargetLengths(ctx, *flags.reference); err != nil {
				return err
			}
		}
		if err := a.ApplyCRB(ctx, *flags.crb, lengths); err != nil {
			return err
		}
		if err := record(*flags.crb); err != nil {
			return err
		}
	}
	stats, err := a.ComputeMetrics(assembly.Opts{
		ComplexityK: *flags.complexityK,
		ScoreCutoff: *flags.cutoff,
		Parallelism: *flags.parallelism,
	})
	if err != nil {
		return err
	}
	suffix := ""
	if format == assembly.FormatTSVBgz {
		suffix = ".gz"
	}
	if err := a.WriteContigsTSV(ctx, *flags.out+".contigs.tsv"+suffix, format); err != nil {
		return err
	}
	if err := a.WriteAssembliesTSV(ctx, *flags.out+".assemblies.tsv"+suffix, format); err != nil {
		return err
	}
	if stats.Scored > 0 {
		nGood, nBad, err := a.WriteGoodBad(ctx, *flags.out+".good.fa", *flags.out+".bad.fa")
		if err != nil {
			return err
		}
		log.Printf("%s: %d good and %d bad contigs at cutoff %v", a.Name(), nGood, nBad, stats.Cutoff)
	} else {
		log.Printf("%s: no contig was scored, skipping the good/bad split", a.Name())
	}
	if *flags.snapshot != "" {
		if err := a.WriteSnapshot(ctx, *flags.snapshot, checksums); err != nil {
			return err
		}
	}
	log.Printf("%s: n50 %d, mean score %v", a.Name(), stats.N50, stats.MeanScore())
	return nil
}
