package aggregation

import "nightshift/model"

// Count は条件に一致する件数を返します。
func Count[T any](all []T, pred func(T) bool) int {
	n := 0
	for _, v := range all {
		if pred(v) {
			n++
		}
	}
	return n
}

// Sum adds up a numeric projection over all records.
func Sum[T any](all []T, f func(T) float64) float64 {
	total := 0.0
	for _, v := range all {
		total += f(v)
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean[N ~int | ~float64](values []N) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += float64(v)
	}
	return total / float64(len(values))
}

// EntityAverage is the mean of one record's measures; records without
// measures average 0.
func EntityAverage[T any, N ~int | ~float64](rec T, measures func(T) []N) float64 {
	return Mean(measures(rec))
}

// AverageOfAverages は各レコードの平均値をさらに平均します。
// Every record weighs the same regardless of how many measures it has.
func AverageOfAverages[T any, N ~int | ~float64](all []T, measures func(T) []N) float64 {
	if len(all) == 0 {
		return 0
	}
	return Sum(all, func(rec T) float64 { return EntityAverage(rec, measures) }) / float64(len(all))
}

// HistoryTotal sums quantity x cost over every nested history entry.
func HistoryTotal[T any, H any](all []T, entries func(T) []H, value func(H) float64) float64 {
	total := 0.0
	for _, rec := range all {
		for _, h := range entries(rec) {
			total += value(h)
		}
	}
	return total
}

// Distribution counts records per category key in first-seen key order.
// Empty keys are skipped.
func Distribution[T any](all []T, keys func(T) []string) []model.CategoryCount {
	out := []model.CategoryCount{}
	index := make(map[string]int)
	for _, rec := range all {
		for _, k := range keys(rec) {
			if k == "" {
				continue
			}
			if i, ok := index[k]; ok {
				out[i].Count++
				continue
			}
			index[k] = len(out)
			out = append(out, model.CategoryCount{Key: k, Count: 1})
		}
	}
	return out
}
