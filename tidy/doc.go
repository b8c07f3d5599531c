// Package tidy flattens posterior draws into long-format records and reduces
// them to per-group summaries.
//
// Samples emits one Record per (coordinate[, second coordinate], sample or
// covariate, iteration) for every parameter present in a fit. Summarize groups
// those records by every key column, reduces each group with a Reducer
// (default: mean, median and 50/80/95/99% intervals) and caches the tables on
// the returned fit, so a second call with the same parameters is a lookup.
//
//	tables, f, err := tidy.Summarize(f, tidy.WithPars(fit.ParamLambda), tidy.WithUseNames())
//	for _, row := range tables[fit.ParamLambda].Rows {
//		fmt.Println(row.Labels, row.Mean, row.Intervals[2])
//	}
package tidy
