package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/vcontext"
	"github.com/wulouis/transrate/assembly"
)

func checksum(w io.Writer, paths []string) error {
	ctx := vcontext.Background()
	for _, path := range paths {
		sum, err := assembly.FileChecksum(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%016x\t%s\n", sum, path)
	}
	return nil
}
