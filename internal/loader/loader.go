// Package loader reads per-subject connectivity matrices from text files.
//
// Each file holds one square matrix, one row per line. Values may be
// separated by commas, semicolons, tabs or spaces. Blank lines and lines
// starting with '#' are ignored.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Extensions lists the file suffixes ReadGroup picks up.
var Extensions = []string{".csv", ".tsv", ".txt"}

// ErrNoMatrices is returned by ReadGroup for a directory without matrix files.
var ErrNoMatrices = errors.New("loader: no matrix files found")

// ReadMatrix parses a single square matrix from path.
func ReadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open matrix: %w", err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, isSeparator)
		row := make([]float64, len(fields))
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("loader: %s:%d: column %d: %w", path, line, i+1, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("loader: %s:%d: %d columns, previous rows have %d", path, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}

	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("loader: %s: empty matrix", path)
	}
	if len(rows[0]) != n {
		return nil, fmt.Errorf("loader: %s: matrix is %dx%d, must be square", path, n, len(rows[0]))
	}
	data := make([]float64, 0, n*n)
	for _, r := range rows {
		data = append(data, r...)
	}
	return mat.NewDense(n, n, data), nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

// ReadGroup reads every matrix file in dir, in lexical file-name order.
// All matrices must have the same size.
func ReadGroup(dir string) ([]*mat.Dense, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: read group: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("loader: %s: %w", dir, ErrNoMatrices)
	}
	slices.Sort(names)

	out := make([]*mat.Dense, 0, len(names))
	for _, name := range names {
		m, err := ReadMatrix(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			want, _ := out[0].Dims()
			if got, _ := m.Dims(); got != want {
				return nil, fmt.Errorf("loader: %s is %dx%d, %s is %dx%d",
					name, got, got, names[0], want, want)
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// Matrices converts a group to the interface slice nbs.NewPopulation takes.
func Matrices(group []*mat.Dense) []mat.Matrix {
	out := make([]mat.Matrix, len(group))
	for i, m := range group {
		out[i] = m
	}
	return out
}
