package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGroup writes m subject matrices over 4 nodes. Edge (0,1) gets weight
// hi+jitter; every other edge cycles through the same values in both groups.
func writeGroup(t *testing.T, m int, hi float64, noise []float64) string {
	t.Helper()
	dir := t.TempDir()
	for s := 0; s < m; s++ {
		var b strings.Builder
		for i := 0; i < 4; i++ {
			row := make([]string, 4)
			for j := 0; j < 4; j++ {
				a, c := min(i, j), max(i, j)
				v := 0.0
				switch {
				case a == c:
				case a == 0 && c == 1:
					v = hi + 0.1*float64(s%3)
				default:
					v = noise[(s+a+c)%len(noise)]
				}
				row[j] = fmt.Sprint(v)
			}
			b.WriteString(strings.Join(row, ",") + "\n")
		}
		name := filepath.Join(dir, fmt.Sprintf("sub%02d.csv", s))
		require.NoError(t, os.WriteFile(name, []byte(b.String()), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRun_WritesReport(t *testing.T) {
	gx := writeGroup(t, 5, 10, []float64{4, 5, 6, 5, 5})
	gy := writeGroup(t, 5, 1, []float64{5, 6, 4, 5, 5})
	dot := filepath.Join(t.TempDir(), "net.dot")

	stdout, stderr, err := execute(t, "run",
		"--group-x", gx, "--group-y", gy,
		"--permutations", "50", "--seed", "7", "--workers", "2",
		"--dot", dot, "--log-format", "json")
	require.NoError(t, err, stderr)

	var rep Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 4, rep.Nodes)
	assert.Equal(t, Group{Path: gx, Subjects: 5}, rep.GroupX)
	assert.Equal(t, uint64(7), rep.Parameters.Seed)
	assert.Equal(t, 50, rep.Parameters.Permutations)
	assert.Len(t, rep.NullDistribution, 50)

	require.Len(t, rep.Components, 1)
	comp := rep.Components[0]
	assert.Equal(t, 1, comp.Label)
	assert.Equal(t, [][2]int{{0, 1}}, comp.Edges)
	assert.GreaterOrEqual(t, comp.PValue, 0.0)
	assert.LessOrEqual(t, comp.PValue, 1.0)
	assert.Equal(t, comp.PValue < 0.05, comp.Significant)

	assert.Contains(t, stderr, `"msg":"permutations complete"`)
	_, err = os.Stat(dot)
	assert.NoError(t, err)
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	gx := writeGroup(t, 4, 10, []float64{4, 5, 6, 5})
	gy := writeGroup(t, 4, 1, []float64{5, 6, 4, 5})
	out := filepath.Join(t.TempDir(), "report.json")

	cfgPath := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"group_x: %s\ngroup_y: %s\npermutations: 20\nseed: 3\ntail: left\noutput: %s\n",
		gx, gy, out)), 0o644))

	stdout, stderr, err := execute(t, "run", "--config", cfgPath, "--tail", "right", "--permutations", "30")
	require.NoError(t, err, stderr)
	assert.Empty(t, stdout, "report goes to the configured output file")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep Report
	require.NoError(t, json.Unmarshal(b, &rep))
	assert.Equal(t, "right", rep.Parameters.Tail, "flag overrides file")
	assert.Equal(t, 30, rep.Parameters.Permutations, "flag overrides file")
	assert.Equal(t, uint64(3), rep.Parameters.Seed, "file value kept")
	assert.Len(t, rep.Components, 1)
}

func TestRun_Errors(t *testing.T) {
	gx := writeGroup(t, 3, 10, []float64{1, 2})

	tests := map[string][]string{
		"missing group":   {"run", "--group-x", gx},
		"bad tail":        {"run", "-x", gx, "-y", gx, "--tail", "up"},
		"bad log format":  {"run", "-x", gx, "-y", gx, "--log-format", "xml"},
		"empty directory": {"run", "-x", gx, "-y", t.TempDir()},
		"missing config":  {"run", "--config", filepath.Join(t.TempDir(), "none.yaml")},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "nbs dev\n", stdout)
}
