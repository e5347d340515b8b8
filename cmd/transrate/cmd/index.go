package cmd

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/wulouis/transrate/encoding/fasta"
)

// generateIndex indexes the FASTA file at fastaPath. The index is written to
// outPath, or to stdout when outPath is empty. The input must be
// uncompressed, a *.fai index stores byte offsets into it.
func generateIndex(stdout io.Writer, fastaPath, outPath string) (err error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, fastaPath)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	if outPath == "" {
		return fasta.GenerateIndex(stdout, in.Reader(ctx))
	}
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	return fasta.GenerateIndex(out.Writer(ctx), in.Reader(ctx))
}
