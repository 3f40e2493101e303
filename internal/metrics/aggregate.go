package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Count is a named tally.
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GroupBy counts records per value of f. Groups appear in the order their
// first member appears in records.
func GroupBy(records []Record, f Field) []Count {
	index := make(map[string]int)
	var out []Count
	for _, r := range records {
		key := r.Value(f)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Count{Name: key})
		}
		out[i].Value++
	}
	return out
}

// ParetoEntry is one bar of a Pareto chart.
type ParetoEntry struct {
	Name          string `json:"name"`
	Value         int    `json:"value"`
	Cumulative    int    `json:"cumulative"`
	CumulativePct int    `json:"cumulativePct"`
}

// Pareto returns defect counts sorted descending with running totals. The
// percentage is rounded to the nearest integer, so the last entry is 100.
func Pareto(records []Record) []ParetoEntry {
	counts := GroupBy(records, FieldDefecto)
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Value > counts[j].Value })

	total := 0
	for _, c := range counts {
		total += c.Value
	}

	out := make([]ParetoEntry, 0, len(counts))
	cum := 0
	for _, c := range counts {
		cum += c.Value
		out = append(out, ParetoEntry{
			Name:          c.Name,
			Value:         c.Value,
			Cumulative:    cum,
			CumulativePct: int(math.Round(float64(cum) / float64(total) * 100)),
		})
	}
	return out
}

// MatrixRow holds the defect counts of one area.
type MatrixRow struct {
	Area   string         `json:"area"`
	Counts map[string]int `json:"counts"`
}

// Matrix is a defect by area cross tabulation. Every row has a count for
// every defect, zero when the pair never occurs.
type Matrix struct {
	Defects []string    `json:"defects"`
	Rows    []MatrixRow `json:"rows"`
}

func DefectAreaMatrix(records []Record) Matrix {
	m := Matrix{Defects: []string{}, Rows: []MatrixRow{}}
	for _, c := range GroupBy(records, FieldDefecto) {
		m.Defects = append(m.Defects, c.Name)
	}

	rowIndex := make(map[string]int)
	for _, r := range records {
		area := r.Value(FieldArea)
		i, ok := rowIndex[area]
		if !ok {
			i = len(m.Rows)
			rowIndex[area] = i
			counts := make(map[string]int, len(m.Defects))
			for _, d := range m.Defects {
				counts[d] = 0
			}
			m.Rows = append(m.Rows, MatrixRow{Area: area, Counts: counts})
		}
		m.Rows[i].Counts[r.Value(FieldDefecto)]++
	}
	return m
}

// Cell returns the count for an area and defect pair.
func (m Matrix) Cell(area, defect string) int {
	for _, row := range m.Rows {
		if row.Area == area {
			return row.Counts[defect]
		}
	}
	return 0
}

// MonthlyTrend counts records per calendar month, labelled "M/YYYY" and
// sorted chronologically. Records without a parseable date are skipped.
func MonthlyTrend(records []Record) []Count {
	type bucket struct {
		year, month int
		count       int
	}
	index := make(map[int]int)
	var buckets []bucket
	for _, r := range records {
		t, ok := ParseDate(r.Fecha)
		if !ok {
			continue
		}
		key := t.Year()*100 + int(t.Month())
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{year: t.Year(), month: int(t.Month())})
		}
		buckets[i].count++
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})

	out := make([]Count, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Count{Name: fmt.Sprintf("%d/%d", b.month, b.year), Value: b.count})
	}
	return out
}

// Quantity is the summed non-conforming quantity for one unit of measure.
type Quantity struct {
	Unit    string          `json:"unit"`
	Total   decimal.Decimal `json:"total"`
	Records int             `json:"records"`
}

// QuantityByUnit sums cantidad per unidad. Values that are not numbers are
// ignored; thousands separators are accepted.
func QuantityByUnit(records []Record) []Quantity {
	index := make(map[string]int)
	var out []Quantity
	for _, r := range records {
		raw := strings.ReplaceAll(strings.TrimSpace(r.Cantidad), ",", "")
		if raw == "" {
			continue
		}
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		unit := strings.TrimSpace(r.Unidad)
		if unit == "" {
			unit = Unspecified
		}
		i, ok := index[unit]
		if !ok {
			i = len(out)
			index[unit] = i
			out = append(out, Quantity{Unit: unit, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(qty)
		out[i].Records++
	}
	return out
}

// Distinct returns the number of different values of f, sentinel included.
func Distinct(records []Record, f Field) int {
	return len(GroupBy(records, f))
}
