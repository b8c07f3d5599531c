// SPDX-License-Identifier: MIT

package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/pibble/fit"
)

// SummaryRowJSON is the JSON form of one summary row.
type SummaryRowJSON struct {
	Key       map[string]string  `json:"key"`
	Mean      float64            `json:"mean"`
	Median    *float64           `json:"median,omitempty"`
	Intervals []fit.Interval     `json:"intervals"`
	Extra     map[string]float64 `json:"extra,omitempty"`
}

// SummaryJSON is the JSON form of one summary table.
type SummaryJSON struct {
	Parameter string           `json:"parameter"`
	Rows      []SummaryRowJSON `json:"rows"`
}

// keyCells renders the key columns of a row, preferring labels.
func keyCells(row fit.SummaryRow) []string {
	cells := make([]string, len(row.Index))
	for n, idx := range row.Index {
		if row.Labels != nil {
			cells[n] = row.Labels[n]
		} else {
			cells[n] = strconv.Itoa(idx)
		}
	}

	return cells
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// summaryJSON converts t for JSON output; NaN medians of long tables are omitted.
func summaryJSON(t *fit.SummaryTable) SummaryJSON {
	out := SummaryJSON{Parameter: string(t.Parameter), Rows: make([]SummaryRowJSON, len(t.Rows))}
	for n, row := range t.Rows {
		cells := keyCells(row)
		r := SummaryRowJSON{
			Key:       make(map[string]string, len(cells)),
			Mean:      row.Mean,
			Intervals: row.Intervals,
		}
		for c, name := range t.Columns {
			r.Key[name] = cells[c]
		}
		if !math.IsNaN(row.Median) {
			m := row.Median
			r.Median = &m
		}
		if len(t.ExtraNames) > 0 {
			r.Extra = make(map[string]float64, len(t.ExtraNames))
			for e, name := range t.ExtraNames {
				r.Extra[name] = row.Extra[e]
			}
		}
		out.Rows[n] = r
	}

	return out
}

// renderSummary draws t as a bordered text table.
func renderSummary(t *fit.SummaryTable) string {
	headers := append([]string(nil), t.Columns...)
	headers = append(headers, "mean")
	if !t.Long {
		headers = append(headers, "median")
	}
	var widths []fit.Interval
	if len(t.Rows) > 0 {
		widths = t.Rows[0].Intervals
	}
	if t.Long {
		headers = append(headers, "width", "lower", "upper")
	} else {
		for _, iv := range widths {
			w := strconv.FormatFloat(iv.Width*100, 'g', 4, 64)
			headers = append(headers, "p"+w+".lower", "p"+w+".upper")
		}
	}
	headers = append(headers, t.ExtraNames...)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, row := range t.Rows {
		cells := keyCells(row)
		cells = append(cells, formatValue(row.Mean))
		if !t.Long {
			cells = append(cells, formatValue(row.Median))
		}
		for _, iv := range row.Intervals {
			if t.Long {
				cells = append(cells, formatValue(iv.Width))
			}
			cells = append(cells, formatValue(iv.Lower), formatValue(iv.Upper))
		}
		for _, v := range row.Extra {
			cells = append(cells, formatValue(v))
		}
		tbl.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(string(t.Parameter))
	b.WriteString("\n")
	b.WriteString(tbl.String())
	b.WriteString("\n")

	return b.String()
}
