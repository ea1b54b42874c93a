package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sif/tabular/datasource/file"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T) string {
	var b strings.Builder
	b.WriteString("vendor,distance,fare\n")
	for i := 0; i < 40; i++ {
		vendor := "a"
		if i%2 == 1 {
			vendor = "b"
		}
		fmt.Fprintf(&b, "%s,%d,%d\n", vendor, i, 2*i+i%2*10)
	}
	path := filepath.Join(t.TempDir(), "trips.csv")
	require.Nil(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCountToStdout(t *testing.T) {
	out, err := run(t, "count", writeInput(t), "--x", "vendor")
	require.Nil(t, err)
	require.Contains(t, out, "count_vendor")
	require.Contains(t, out, "[2 rows x")
}

func TestKSplitToFile(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "split.csv")
	_, err := run(t, "ksplit", input, "--k", "4", "--group-by", "vendor", "--seed", "7", "-o", output)
	require.Nil(t, err)
	f, err := file.Load(output, nil)
	require.Nil(t, err)
	require.Equal(t, 40, f.NumRows())
	require.True(t, f.HasColumn("_k_index"))
	counts, err := f.ValueCounts("_k_index")
	require.Nil(t, err)
	require.Len(t, counts, 4)
	for _, c := range counts {
		require.Equal(t, 10, c.Count)
	}
}

func TestRMSDToXLSX(t *testing.T) {
	output := filepath.Join(t.TempDir(), "rmsd.xlsx")
	_, err := run(t, "rmsd", writeInput(t), "--x", "fare", "--groups", "vendor,distance", "--parallelism", "2", "-o", output)
	require.Nil(t, err)
	f, err := file.Load(output, nil)
	require.Nil(t, err)
	require.Equal(t, 2, f.NumRows())
	groups, _ := f.Strings("group")
	require.ElementsMatch(t, []string{"vendor", "distance"}, groups)
}

func TestCommandErrors(t *testing.T) {
	input := writeInput(t)
	_, err := run(t, "count", input)
	require.NotNil(t, err)
	_, err = run(t, "count", input, "--x", "missing")
	require.NotNil(t, err)
	_, err = run(t, "count", input, "--x", "vendor", "--log-level", "loud")
	require.NotNil(t, err)
	_, err = run(t, "count", input, "--x", "vendor", "-o", filepath.Join(t.TempDir(), "out.parquet"))
	require.NotNil(t, err)
	_, err = run(t, "quantiles", filepath.Join(t.TempDir(), "none.dat"), "--col", "fare")
	require.NotNil(t, err)
}

func TestQuantilesAndOutliers(t *testing.T) {
	input := writeInput(t)
	out, err := run(t, "quantiles", input, "--col", "distance", "--n", "4")
	require.Nil(t, err)
	require.Contains(t, out, "q0: ")

	_, err = run(t, "outliers", input, "--col", "fare", "--group-by", "vendor")
	require.Nil(t, err)
	_, err = run(t, "corr", input, "--top", "1")
	require.Nil(t, err)
	_, err = run(t, "agg", input, "--x", "fare", "--group", "vendor")
	require.Nil(t, err)
}
