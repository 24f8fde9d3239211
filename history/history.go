package history

import (
	"sort"

	"nightshift/aggregation"
	"nightshift/model"
)

// SortNewestFirst returns a copy of entries ordered by date, newest first.
// Entries without a readable date sort as the epoch.
func SortNewestFirst[H any](entries []H, date func(H) string) []H {
	out := make([]H, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return model.ParseTime(date(out[i])).After(model.ParseTime(date(out[j])))
	})
	return out
}

// UpdatesNewestFirst は品目の数量変動履歴を新しい順に並べます。
func UpdatesNewestFirst(it model.Item) []model.UpdateHistory {
	return SortNewestFirst(it.UpdateHistory, func(h model.UpdateHistory) string { return h.Date })
}

// ReviewsNewestFirst は評価履歴を新しい順に並べます。
func ReviewsNewestFirst(e model.Employee) []model.PerformanceReview {
	return SortNewestFirst(e.Performance, func(r model.PerformanceReview) string { return r.ReviewDate })
}

// OrdersNewestFirst は得意先の注文を新しい順に並べます。
func OrdersNewestFirst(c model.Customer) []model.CustomerOrder {
	return SortNewestFirst(c.Orders, func(o model.CustomerOrder) string { return o.OrderDate })
}

// Replenishments returns the item's REPLENISHMENT entries, newest first.
func Replenishments(it model.Item) []model.UpdateHistory {
	out := []model.UpdateHistory{}
	for _, h := range UpdatesNewestFirst(it) {
		if h.UpdateType == model.UpdateReplenishment {
			out = append(out, h)
		}
	}
	return out
}

// ItemHistoryTotal は品目の全履歴の金額合計です。
func ItemHistoryTotal(it model.Item) float64 {
	return aggregation.HistoryTotal([]model.Item{it}, func(i model.Item) []model.UpdateHistory { return i.UpdateHistory }, aggregation.UpdateValue)
}
