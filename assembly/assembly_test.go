package assembly_test

import (
	"compress/gzip"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
	"github.com/wulouis/transrate/assembly"
	"github.com/wulouis/transrate/contig"
)

func writeFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "test_assembly.fa", ">tig1 first\nACGta\ncgNNx\n>tig2\nTTTT\n")
	a, err := assembly.Load(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, a.Name(), "test_assembly")
	expect.EQ(t, a.Path(), path)
	expect.EQ(t, a.NumContigs(), 2)
	expect.That(t, a.ContigNames(), h.ElementsAre("tig1", "tig2"))
	expect.EQ(t, string(a.Contig(0).Seq()), "ACGTACGNNN")
	expect.EQ(t, a.Contig(1).Len(), 4)

	c, found := a.ContigByName("tig2")
	expect.True(t, found)
	expect.EQ(t, string(c.Seq()), "TTTT")
	_, found = a.ContigByName("tig3")
	expect.False(t, found)

	_, computed := a.Stats()
	expect.False(t, computed)
}

func TestLoadGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := filepath.Join(tempDir, "test_assembly.fa.gz")
	out, err := os.Create(path)
	assert.NoError(t, err)
	zw := gzip.NewWriter(out)
	_, err = zw.Write([]byte(">tig1\nACGT\nACGT\n>tig2\nGGGG\n"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())
	assert.NoError(t, out.Close())

	a, err := assembly.Load(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, a.Name(), "test_assembly")
	expect.EQ(t, a.NumContigs(), 2)
	expect.EQ(t, string(a.Contig(0).Seq()), "ACGTACGT")
	expect.EQ(t, string(a.Contig(1).Seq()), "GGGG")
}

func TestLoadErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "dup.fa", ">a\nAC\n>a\nGT\n")
	_, err := assembly.Load(ctx, path)
	assert.Regexp(t, err, "duplicate contig name")

	path = writeFile(t, tempDir, "empty.fa", "")
	_, err = assembly.Load(ctx, path)
	assert.Regexp(t, err, "no contigs")

	path = writeFile(t, tempDir, "garbage.fa", "not fasta\n")
	_, err = assembly.Load(ctx, path)
	assert.Regexp(t, err, "invalid FASTA")
}

func TestNewDuplicateName(t *testing.T) {
	_, err := assembly.New("asm", []*contig.Contig{
		contig.New("x", []byte("ACGT")),
		contig.New("x", []byte("TTTT")),
	})
	assert.Regexp(t, err, "duplicate contig name")
}

const readStatsHeader = "contig\tcoverage\tuncovered_bases\tp_seq_true\tp_unique\tlow_uniqueness_bases\tbridges\tp_good\tp_not_segmented\n"

func readStatsAssembly(t *testing.T) *assembly.Assembly {
	a, err := assembly.New("rs", []*contig.Contig{
		contig.New("tig1", []byte("AAAAACCCCC")),
		contig.New("tig2", []byte("GGGGGTTTTT")),
	})
	assert.NoError(t, err)
	return a
}

func TestApplyReadStats(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "reads.tsv", readStatsHeader+
		"tig1\t7.5\t2\t0.9\t0.8\t3\t1\t0.75\t0.95\n"+
		"tig2\t1.5\t0\t1\t1\t0\t0\t-1\t1\n")
	a := readStatsAssembly(t)
	assert.NoError(t, a.ApplyReadStats(ctx, path))

	c, _ := a.ContigByName("tig1")
	m := c.ReadBased()
	expect.EQ(t, m.Coverage, 7.5)
	expect.EQ(t, m.PUnique, 0.8)
	expect.EQ(t, m.PNotSegmented, 0.95)
	expect.EQ(t, m.PGood, contig.Metric{Value: 0.75, OK: true})
	expect.EQ(t, m.UncoveredBases, contig.IntMetric{Value: 2, OK: true})
	expect.EQ(t, m.PUncoveredBases, contig.Metric{Value: 0.2, OK: true})
	expect.EQ(t, m.PBasesCovered, contig.Metric{Value: 0.8, OK: true})
	expect.EQ(t, m.PSeqTrue, contig.Metric{Value: 0.9, OK: true})
	expect.EQ(t, m.LowUniquenessBases, contig.IntMetric{Value: 3, OK: true})
	expect.EQ(t, m.InBridges, contig.IntMetric{Value: 1, OK: true})
	expect.True(t, m.Score.OK)

	// tig2's p_good is the unset sentinel: its coverage still applies but
	// the contig stays unscored.
	c, _ = a.ContigByName("tig2")
	m = c.ReadBased()
	expect.EQ(t, m.Coverage, 1.5)
	expect.False(t, m.PGood.OK)
	expect.False(t, m.Score.OK)
}

func TestApplyReadStatsUnknownContig(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "reads.tsv", readStatsHeader+
		"tigX\t1\t0\t1\t1\t0\t0\t0.5\t1\n")
	err := readStatsAssembly(t).ApplyReadStats(ctx, path)
	assert.Regexp(t, err, "unknown contig name")
	assert.Regexp(t, err, "did you mean tig1")
}

func crbAssembly(t *testing.T) *assembly.Assembly {
	a, err := assembly.New("crb", []*contig.Contig{
		contig.New("q1", []byte("ACGTACGTAC")),
		contig.New("q2", []byte("TTTTTTTTTT")),
	})
	assert.NoError(t, err)
	return a
}

const crbHits = "q1\tref9\t98.5\t50\t1\t0\t1\t50\t1\t50\t1e-50\t100.0\n" +
	"q1\tref9\t95.0\t60\t2\t0\t10\t69\t41\t100\t1e-40\t90.5\n" +
	"q1\tref2\t90.0\t10\t0\t0\t1\t10\t1\t10\t1e-10\t50.0\n" +
	"q2\tref2\t99.0\t30\t0\t0\t1\t30\t90\t61\t1e-30\t80.0\n"

func TestApplyCRB(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "hits.tsv", crbHits)
	a := crbAssembly(t)
	lengths := map[string]uint64{"ref9": 200, "ref2": 100}
	assert.NoError(t, a.ApplyCRB(ctx, path, lengths))

	// q1's two ref9 hits overlap: [1,50] and [41,100] union to 100 of 200
	// bases. The ref2 hit covers only 10 of 100, so ref9 is the best target.
	q1, _ := a.ContigByName("q1")
	expect.True(t, q1.HasCRB())
	expect.That(t, q1.Hits(), h.ElementsAre(
		contig.Hit{Target: "ref9", TargetFrom: 1, TargetTo: 50},
		contig.Hit{Target: "ref9", TargetFrom: 41, TargetTo: 100},
		contig.Hit{Target: "ref2", TargetFrom: 1, TargetTo: 10},
	))
	expect.EQ(t, q1.Comparative().ReferenceCoverage, contig.Metric{Value: 0.5, OK: true})
	expect.EQ(t, q1.Comparative().Hits, "ref9;ref9;ref2")

	// q2's hit is on the reverse strand, so target start and end arrive
	// swapped.
	q2, _ := a.ContigByName("q2")
	expect.That(t, q2.Hits(), h.ElementsAre(
		contig.Hit{Target: "ref2", TargetFrom: 61, TargetTo: 90},
	))
	expect.EQ(t, q2.Comparative().ReferenceCoverage, contig.Metric{Value: 0.3, OK: true})
}

func TestApplyCRBNoLengths(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "hits.tsv", crbHits)
	a := crbAssembly(t)
	assert.NoError(t, a.ApplyCRB(ctx, path, nil))

	q1, _ := a.ContigByName("q1")
	expect.True(t, q1.HasCRB())
	expect.EQ(t, len(q1.Hits()), 3)
	expect.False(t, q1.Comparative().ReferenceCoverage.OK)
}

func TestApplyCRBMissingTarget(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "hits.tsv", "q2\tref2\t99.0\t30\t0\t0\t1\t30\t61\t90\t1e-30\t80.0\n")
	err := crbAssembly(t).ApplyCRB(ctx, path, map[string]uint64{"ref9": 200})
	assert.Regexp(t, err, "missing from reference")
}

func TestApplyCRBUnknownContig(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "hits.tsv", "q9\tref2\t99.0\t30\t0\t0\t1\t30\t61\t90\t1e-30\t80.0\n")
	err := crbAssembly(t).ApplyCRB(ctx, path, nil)
	assert.Regexp(t, err, "unknown contig name")
	assert.Regexp(t, err, "did you mean q1")
}

func TestTargetLengthsFasta(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "ref.fa", ">a\nACGTA\n>b desc\nACGT\nACGT\n")
	lengths, err := assembly.TargetLengths(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, lengths, map[string]uint64{"a": 5, "b": 8})
}

func TestTargetLengthsIndex(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "ref.fa.fai", "chr1\t1000\t6\t60\t61\nchr2\t500\t1030\t60\t61\n")
	lengths, err := assembly.TargetLengths(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, lengths, map[string]uint64{"chr1": 1000, "chr2": 500})
}

func TestTargetLengthsDuplicate(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := writeFile(t, tempDir, "ref.fa", ">a\nACGTA\n>a\nACGT\n")
	_, err := assembly.TargetLengths(ctx, path)
	assert.Regexp(t, err, "duplicate reference name")
}

func TestFileChecksum(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	data := "checksum test data\nsecond line\n"
	path := writeFile(t, tempDir, "input.txt", data)
	sum, err := assembly.FileChecksum(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, sum, seahash.Sum64([]byte(data)))

	other := writeFile(t, tempDir, "other.txt", data+"extra\n")
	otherSum, err := assembly.FileChecksum(ctx, other)
	assert.NoError(t, err)
	expect.True(t, sum != otherSum)
}

func TestParseFormat(t *testing.T) {
	f, err := assembly.ParseFormat("tsv")
	assert.NoError(t, err)
	expect.EQ(t, f, assembly.FormatTSV)
	f, err = assembly.ParseFormat("tsv-bgz")
	assert.NoError(t, err)
	expect.EQ(t, f, assembly.FormatTSVBgz)
	_, err = assembly.ParseFormat("csv")
	assert.Regexp(t, err, "unknown format")
}
