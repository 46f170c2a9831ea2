// SPDX-License-Identifier: MIT

package data

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// commentPrefix starts a comment line in data tables.
const commentPrefix = "#"

// Row is one parsed table line: t, value and the combined uncertainty.
type Row struct {
	T     float64
	Y     float64
	Sigma float64
}

// ReadTable parses a whitespace-separated table.
//
// Each non-blank, non-comment line holds either
//
//	t  value  error
//	t  value  stat  sys
//
// and in the second form σ = √(stat² + sys²). Lines starting with '#' and
// blank lines are skipped.
//
// Errors:
//   - ErrColumnCount, ErrMalformedNumber, ErrNonPositiveSigma; all carry the
//     1-based line number.
func ReadTable(r io.Reader) ([]Row, error) {
	var rows []Row
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, commentPrefix) {
			continue
		}
		row, err := parseRow(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	return rows, nil
}

func parseRow(fields []string) (Row, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return Row{}, fmt.Errorf("%d columns: %w", len(fields), ErrColumnCount)
	}
	nums := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return Row{}, fmt.Errorf("column %d %q: %w", i+1, f, ErrMalformedNumber)
		}
		nums[i] = x
	}
	sigma := nums[2]
	if len(nums) == 4 {
		sigma = math.Hypot(nums[2], nums[3])
	}
	if !(sigma > 0) {
		return Row{}, fmt.Errorf("sigma=%g: %w", sigma, ErrNonPositiveSigma)
	}

	return Row{T: nums[0], Y: nums[1], Sigma: sigma}, nil
}

// WriteTable writes rows in the three-column form ReadTable accepts,
// preceded by a comment header when header is not empty.
func WriteTable(w io.Writer, header string, rows []Row) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		for _, h := range strings.Split(header, "\n") {
			if _, err := fmt.Fprintf(bw, "%s %s\n", commentPrefix, h); err != nil {
				return err
			}
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%.10g %.10g %.10g\n", r.T, r.Y, r.Sigma); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// readTableFile opens path and parses it with ReadTable.
func readTableFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// MesonSource names one meson table and the label shared by all its rows.
type MesonSource struct {
	Path         string `yaml:"path"`
	Charged      bool   `yaml:"charged"`
	CrossSection bool   `yaml:"cross_section"`
}

// NucleonSource names one nucleon table and the label shared by all its rows.
type NucleonSource struct {
	Path         string `yaml:"path"`
	Proton       bool   `yaml:"proton"`
	Electric     bool   `yaml:"electric"`
	CrossSection bool   `yaml:"cross_section"`
}

// FromRows labels every row with the same point built by label(t).
func FromRows[P Point](rows []Row, label func(t float64) P) Dataset[P] {
	d := Dataset[P]{
		Points: make([]P, len(rows)),
		Y:      make([]float64, len(rows)),
		Sigma:  make([]float64, len(rows)),
	}
	for i, r := range rows {
		d.Points[i] = label(r.T)
		d.Y[i] = r.Y
		d.Sigma[i] = r.Sigma
	}

	return d
}

// LoadMeson reads every source and merges the groups sorted by t.
func LoadMeson(sources ...MesonSource) (Dataset[MesonPoint], error) {
	groups := make([]Dataset[MesonPoint], 0, len(sources))
	for _, src := range sources {
		rows, err := readTableFile(src.Path)
		if err != nil {
			return Dataset[MesonPoint]{}, err
		}
		groups = append(groups, FromRows(rows, func(t float64) MesonPoint {
			return MesonPoint{T: t, Charged: src.Charged, CrossSection: src.CrossSection}
		}))
	}

	return MergeMeson(groups...), nil
}

// LoadNucleon reads every source and merges the groups sorted by t.
func LoadNucleon(sources ...NucleonSource) (Dataset[NucleonPoint], error) {
	groups := make([]Dataset[NucleonPoint], 0, len(sources))
	for _, src := range sources {
		rows, err := readTableFile(src.Path)
		if err != nil {
			return Dataset[NucleonPoint]{}, err
		}
		groups = append(groups, FromRows(rows, func(t float64) NucleonPoint {
			return NucleonPoint{T: t, Proton: src.Proton, Electric: src.Electric, CrossSection: src.CrossSection}
		}))
	}

	return MergeNucleon(groups...), nil
}
