package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func stringFlag(v string) *string    { return &v }
func intFlag(v int) *int             { return &v }
func float64Flag(v float64) *float64 { return &v }
func boolFlag(v bool) *bool          { return &v }

const readStatsHeader = "contig\tcoverage\tuncovered_bases\tp_seq_true\tp_unique\t" +
	"low_uniqueness_bases\tbridges\tp_good\tp_not_segmented\n"

func TestAssess(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	const fastaData = ">c1\nACGTACGTAC\n>c2\nAAAAAAAAAA\n"
	fastaPath := filepath.Join(tmpDir, "asm.fa")
	assert.NoError(t, ioutil.WriteFile(fastaPath, []byte(fastaData), 0644))
	const statsData = readStatsHeader + "c1\t10\t0\t1\t1\t0\t0\t1\t1\n"
	statsPath := filepath.Join(tmpDir, "reads.tsv")
	assert.NoError(t, ioutil.WriteFile(statsPath, []byte(statsData), 0644))
	out := filepath.Join(tmpDir, "tr")
	snapshotPath := filepath.Join(tmpDir, "tr.rio")

	flags := assessFlags{
		assembly:    stringFlag(fastaPath),
		readStats:   stringFlag(statsPath),
		crb:         stringFlag(""),
		reference:   stringFlag(""),
		out:         stringFlag(out),
		format:      stringFlag("tsv"),
		cutoff:      float64Flag(0.35),
		complexityK: intFlag(4),
		snapshot:    stringFlag(snapshotPath),
		parallelism: intFlag(1),
	}
	assert.NoError(t, assess(flags))

	contigs, err := ioutil.ReadFile(out + ".contigs.tsv")
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contigs), "\n"), "\n")
	assert.EQ(t, len(lines), 3)
	expect.True(t, strings.HasPrefix(lines[0], "contig_name\tlength\tprop_gc\t"))
	expect.True(t, strings.HasPrefix(lines[1], "c1\t10\t0.5\t"))
	expect.True(t, strings.HasPrefix(lines[2], "c2\t10\t0\t"))

	assemblies, err := ioutil.ReadFile(out + ".assemblies.tsv")
	assert.NoError(t, err)
	alines := strings.Split(strings.TrimRight(string(assemblies), "\n"), "\n")
	assert.EQ(t, len(alines), 2)
	expect.EQ(t, alines[1],
		"asm\t2\t20\t10\t10\t2\t0\t0\t0.25\t0\t0\t0\t10\t10\t10\t10\t10\t0\t1\t0\t0.35\t1")

	good, err := ioutil.ReadFile(out + ".good.fa")
	assert.NoError(t, err)
	expect.EQ(t, string(good), ">c1\nACGTACGTAC\n")
	bad, err := ioutil.ReadFile(out + ".bad.fa")
	assert.NoError(t, err)
	expect.EQ(t, string(bad), ">c2\nAAAAAAAAAA\n")

	var buf bytes.Buffer
	vflags := viewFlags{stats: boolFlag(false), contigs: boolFlag(false)}
	assert.NoError(t, view(&buf, vflags, snapshotPath))
	want := strings.Join([]string{
		"assembly\tasm",
		"n_contigs\t2",
		"total_length\t20",
		"smallest_contig\t10",
		"largest_contig\t10",
		"n_under_200\t2",
		"n_over_1k\t0",
		"n_over_10k\t0",
		"prop_gc\t0.25",
		"n_bases\t0",
		"n_with_orf\t0",
		"mean_orf_fraction\t0",
		"n90\t10",
		"n70\t10",
		"n50\t10",
		"n30\t10",
		"n10\t10",
		"n_duplicates\t0",
		"n_good\t1",
		"n_bad\t0",
		"cutoff\t0.35",
		"mean_score\t1",
		"complexity_k\t4",
		"input\t" + fastaPath + "\t" + fmt.Sprintf("%016x", seahash.Sum64([]byte(fastaData))),
		"input\t" + statsPath + "\t" + fmt.Sprintf("%016x", seahash.Sum64([]byte(statsData))),
		"c1\t10\t0.5\t0\t0.015625\t1\tNA",
		"c2\t10\t0\t0\t0.00390625\tNA\tNA",
	}, "\n") + "\n"
	expect.EQ(t, buf.String(), want)

	buf.Reset()
	vflags = viewFlags{stats: boolFlag(true), contigs: boolFlag(false)}
	assert.NoError(t, view(&buf, vflags, snapshotPath))
	expect.True(t, strings.Contains(buf.String(), "n_contigs\t2\n"))
	expect.False(t, strings.Contains(buf.String(), "c1\t10\t"))

	buf.Reset()
	vflags = viewFlags{stats: boolFlag(false), contigs: boolFlag(true)}
	assert.NoError(t, view(&buf, vflags, snapshotPath))
	expect.EQ(t, buf.String(),
		"c1\t10\t0.5\t0\t0.015625\t1\tNA\nc2\t10\t0\t0\t0.00390625\tNA\tNA\n")
}

func TestAssessSequenceOnly(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fastaPath := filepath.Join(tmpDir, "asm.fa")
	assert.NoError(t, ioutil.WriteFile(fastaPath, []byte(">c1\nACGTACGTAC\n"), 0644))
	out := filepath.Join(tmpDir, "tr")

	flags := assessFlags{
		assembly:    stringFlag(fastaPath),
		readStats:   stringFlag(""),
		crb:         stringFlag(""),
		reference:   stringFlag(""),
		out:         stringFlag(out),
		format:      stringFlag("tsv"),
		cutoff:      float64Flag(0.35),
		complexityK: intFlag(4),
		snapshot:    stringFlag(""),
		parallelism: intFlag(1),
	}
	assert.NoError(t, assess(flags))

	_, err := os.Stat(out + ".contigs.tsv")
	expect.NoError(t, err)
	_, err = os.Stat(out + ".assemblies.tsv")
	expect.NoError(t, err)
	// Nothing was scored, so there is no good/bad split.
	_, err = os.Stat(out + ".good.fa")
	expect.True(t, os.IsNotExist(err))
	_, err = os.Stat(out + ".bad.fa")
	expect.True(t, os.IsNotExist(err))
}

func TestAssessBgzFormat(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fastaPath := filepath.Join(tmpDir, "asm.fa")
	assert.NoError(t, ioutil.WriteFile(fastaPath, []byte(">c1\nACGTACGTAC\n"), 0644))
	out := filepath.Join(tmpDir, "tr")

	flags := assessFlags{
		assembly:    stringFlag(fastaPath),
		readStats:   stringFlag(""),
		crb:         stringFlag(""),
		reference:   stringFlag(""),
		out:         stringFlag(out),
		format:      stringFlag("tsv-bgz"),
		cutoff:      float64Flag(0.35),
		complexityK: intFlag(4),
		snapshot:    stringFlag(""),
		parallelism: intFlag(1),
	}
	assert.NoError(t, assess(flags))
	_, err := os.Stat(out + ".contigs.tsv.gz")
	expect.NoError(t, err)
	_, err = os.Stat(out + ".assemblies.tsv.gz")
	expect.NoError(t, err)
}

func TestAssessUnknownFormat(t *testing.T) {
	flags := assessFlags{
		assembly:    stringFlag("asm.fa"),
		readStats:   stringFlag(""),
		crb:         stringFlag(""),
		reference:   stringFlag(""),
		out:         stringFlag("tr"),
		format:      stringFlag("csv"),
		cutoff:      float64Flag(0.35),
		complexityK: intFlag(4),
		snapshot:    stringFlag(""),
		parallelism: intFlag(1),
	}
	err := assess(flags)
	expect.True(t, err != nil)
	expect.True(t, strings.Contains(err.Error(), "unknown format"))
}

func TestChecksum(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path1 := filepath.Join(tmpDir, "a.txt")
	path2 := filepath.Join(tmpDir, "b.txt")
	assert.NoError(t, ioutil.WriteFile(path1, []byte("first input\n"), 0644))
	assert.NoError(t, ioutil.WriteFile(path2, []byte("second input\n"), 0644))

	var buf bytes.Buffer
	assert.NoError(t, checksum(&buf, []string{path1, path2}))
	want := fmt.Sprintf("%016x\t%s\n%016x\t%s\n",
		seahash.Sum64([]byte("first input\n")), path1,
		seahash.Sum64([]byte("second input\n")), path2)
	expect.EQ(t, buf.String(), want)

	buf.Reset()
	err := checksum(&buf, []string{filepath.Join(tmpDir, "missing.txt")})
	expect.True(t, err != nil)
}

func TestGenerateIndex(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	fastaPath := filepath.Join(tmpDir, "ref.fa")
	assert.NoError(t, ioutil.WriteFile(fastaPath, []byte(">r1\nACGTACGT\nACG\n>r2\nTTTT\n"), 0644))
	const wantIndex = "r1\t11\t4\t8\t9\nr2\t4\t21\t4\t5\n"

	var buf bytes.Buffer
	assert.NoError(t, generateIndex(&buf, fastaPath, ""))
	expect.EQ(t, buf.String(), wantIndex)

	outPath := filepath.Join(tmpDir, "ref.fa.fai")
	buf.Reset()
	assert.NoError(t, generateIndex(&buf, fastaPath, outPath))
	expect.EQ(t, buf.Len(), 0)
	data, err := ioutil.ReadFile(outPath)
	assert.NoError(t, err)
	expect.EQ(t, string(data), wantIndex)
}
