package cmd

import (
	"fmt"
	"log"

	"github.com/grailbio/base/cmdutil"
	"github.com/wulouis/transrate/assembly"
	"v.io/x/lib/cmdline"
)

func newCmdAssess() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "assess",
		Short: "Compute quality metrics for a transcriptome assembly",
	}
	flags := assessFlags{
		assembly: cmd.Flags.String("assembly", "", "Assembly FASTA file, plain or gzipped. Required."),
		readStats: cmd.Flags.String("read-stats", "", `Per-contig read alignment summary TSV.
Enables the read-based metrics and the contig score.`),
		crb: cmd.Flags.String("crb", "", "CRB-BLAST hit table in BLAST outfmt 6. Enables the comparative metrics."),
		reference: cmd.Flags.String("reference", "", `Reference FASTA or .fai index for the CRB hit targets.
When set, per-contig reference coverage is computed from the hit table.`),
		out:         cmd.Flags.String("out", "transrate", "Output path prefix"),
		format:      cmd.Flags.String("format", "tsv", `Report format. Value is either "tsv" or "tsv-bgz".`),
		cutoff:      cmd.Flags.Float64("cutoff", assembly.DefaultOpts.ScoreCutoff, "Score at or above which a contig counts as good"),
		complexityK: cmd.Flags.Int("complexity-k", assembly.DefaultOpts.ComplexityK, "Word width for linguistic complexity"),
		snapshot:    cmd.Flags.String("snapshot", "", "If set, also write a reloadable snapshot to this path"),
		parallelism: cmd.Flags.Int("parallelism", 0, "Maximum number of concurrent metric computations. Zero means the number of CPUs."),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("assess takes no positional arguments, but got %v", argv)
		}
		if *flags.assembly == "" {
			return fmt.Errorf("assess requires -assembly")
		}
		return assess(flags)
	})
	return cmd
}

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Print the contents of a snapshot file",
		ArgsName: "path",
	}
	flags := viewFlags{
		stats:   cmd.Flags.Bool("stats", false, "Print only the assembly summary"),
		contigs: cmd.Flags.Bool("contigs", false, "Print only the per-contig metrics"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("view takes one snapshot path, but got %v", argv)
		}
		return view(env.Stdout, flags, argv[0])
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "checksum",
		Short:    "Print the seahash checksum of each file",
		ArgsName: "path...",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("checksum takes at least one path")
		}
		return checksum(env.Stdout, argv)
	})
	return cmd
}

func newCmdIndex() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "index",
		Short:    "Write a samtools faidx style index for a FASTA file",
		ArgsName: "path",
	}
	outFlag := cmd.Flags.String("out", "", "Index output path. By default the index goes to stdout.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("index takes one FASTA path, but got %v", argv)
		}
		return generateIndex(env.Stdout, argv[0], *outFlag)
	})
	return cmd
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "transrate",
			Short:    "Quality assessment for de novo transcriptome assemblies",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdAssess(),
				newCmdView(),
				newCmdChecksum(),
				newCmdIndex(),
			},
		})
}
