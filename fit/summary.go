// SPDX-License-Identifier: MIT

package fit

// Interval is one credible interval of a summary row.
type Interval struct {
	Width float64 // nominal mass, e.g. 0.95
	Lower float64
	Upper float64
}

// SummaryRow is one group of a summary table. Index holds the values of the
// key columns in SummaryTable.Columns order (-1 marks a dropped axis never
// emitted); Labels is set when names were requested.
type SummaryRow struct {
	Index     []int
	Labels    []string
	Mean      float64
	Median    float64
	Intervals []Interval
	Extra     []float64 // values of SummaryTable.ExtraNames, in order
}

// SummaryTable holds the per-group reductions of one parameter.
//   - Columns names the key columns kept for this parameter (all-missing
//     key columns are dropped).
//   - Long marks the gathered layout: each row then carries exactly one
//     interval and Median is unset (NaN).
//   - Levels holds, per key column, the level ordering when factors were
//     requested.
type SummaryTable struct {
	Parameter  Parameter
	Columns    []string
	Long       bool
	ExtraNames []string
	Levels     map[string][]string
	Rows       []SummaryRow
}

// Summary returns the cached summary tables keyed by parameter. The map is a
// copy; the tables are shared.
func (f *Fit) Summary() map[Parameter]*SummaryTable {
	out := make(map[Parameter]*SummaryTable, len(f.summary))
	for k, v := range f.summary {
		out[k] = v
	}

	return out
}

// CachedSummary returns the cached tables for pars when every one of them is
// present in the cache.
func (f *Fit) CachedSummary(pars []Parameter) (map[Parameter]*SummaryTable, bool) {
	if len(pars) == 0 || len(f.summary) == 0 {
		return nil, false
	}
	out := make(map[Parameter]*SummaryTable, len(pars))
	for _, p := range pars {
		t, ok := f.summary[p]
		if !ok {
			return nil, false
		}
		out[p] = t
	}

	return out, true
}

// WithSummary returns a fit whose cache additionally holds tables. Existing
// entries for the same parameters are replaced.
func (f *Fit) WithSummary(tables map[Parameter]*SummaryTable) *Fit {
	out := f.clone()
	if out.summary == nil {
		out.summary = make(map[Parameter]*SummaryTable, len(tables))
	}
	for k, v := range tables {
		out.summary[k] = v
	}

	return out
}
