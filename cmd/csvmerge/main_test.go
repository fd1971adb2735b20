package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/csvmerge/csvmerge/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultOptions mirrors the flag defaults registered in init.
func defaultOptions() options {
	return options{
		pattern:   "*.csv",
		delimiter: "auto",
		encoding:  "auto",
		mode:      "fast",
		how:       "union",
	}
}

func TestRunDefaultOmitsSourceColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "A;B\n1;2\n")

	o := defaultOptions()
	o.inputs = []string{filepath.Join(dir, "a.csv")}
	o.output = filepath.Join(dir, "merged.csv")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, o))

	data, err := os.ReadFile(o.output)
	require.NoError(t, err)
	assert.Equal(t, "\xef\xbb\xbfA;B\n1;2\n", string(data),
		"provenance tagging is opt-in on the command line")
	assert.NotContains(t, string(data), "_source_file")
}

func TestRunMergesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "A;B\n1;2\n")
	writeFile(t, filepath.Join(dir, "b.csv"), "A;B\n3;4\n")

	o := defaultOptions()
	o.inputs = []string{dir}
	o.output = filepath.Join(dir, "out", "merged.csv")
	o.addSource = true

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, o))

	data, err := os.ReadFile(o.output)
	require.NoError(t, err, "output parent directory should be created")

	want := "\xef\xbb\xbf" + // default output encoding carries a BOM
		"A;B;_source_file\n1;2;a.csv\n3;4;b.csv\n"
	assert.Equal(t, want, string(data))

	assert.Contains(t, stdout.String(), "merged 2 file(s)")
	assert.Contains(t, stdout.String(), "2 rows, 3 columns")
}

func TestRunExplicitDelimiterAndEncoding(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "A|B\n1|2\n")

	o := defaultOptions()
	o.inputs = []string{filepath.Join(dir, "a.csv")}
	o.output = filepath.Join(dir, "merged.csv")
	o.delimiter = "|"
	o.encoding = "utf-8"

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, o))

	data, err := os.ReadFile(o.output)
	require.NoError(t, err)
	assert.Equal(t, "A|B\n1|2\n", string(data), "explicit utf-8 output has no BOM")
}

func TestRunSmartUnionDedupe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "A,B\n1,2\n1,2\n")
	writeFile(t, filepath.Join(dir, "b.csv"), "A,C\n1,3\n")

	o := defaultOptions()
	o.inputs = []string{dir}
	o.output = filepath.Join(dir, "merged.csv")
	o.mode = "smart"
	o.how = "union"
	o.dedupe = true

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), &stdout, o))

	data, err := os.ReadFile(o.output)
	require.NoError(t, err)
	assert.Equal(t, "\xef\xbb\xbfA,B,C\n1,2,\n1,,3\n", string(data))
}

func TestRunFastModeSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "A,B\n1,2\n")
	writeFile(t, filepath.Join(dir, "b.csv"), "B,A\n3,4\n")

	o := defaultOptions()
	o.inputs = []string{dir}
	o.output = filepath.Join(dir, "merged.csv")

	err := run(context.Background(), &bytes.Buffer{}, o)
	require.Error(t, err)

	var mismatch *core.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "b.csv", mismatch.FileName)

	_, statErr := os.Stat(o.output)
	assert.True(t, os.IsNotExist(statErr), "no output should be written on failure")
}

func TestRunInvalidMode(t *testing.T) {
	o := defaultOptions()
	o.inputs = []string{"whatever.csv"}
	o.mode = "bogus"

	err := run(context.Background(), &bytes.Buffer{}, o)
	require.Error(t, err)

	var usage *core.UsageError
	assert.ErrorAs(t, err, &usage)
}
