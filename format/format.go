package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"nightshift/model"
)

// Rupee は金額表示の通貨記号です。
const Rupee = "₹"

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Thousands renders a value as whole thousands, e.g. 52000 -> "₹52K".
func Thousands(v float64) string {
	return printer().Sprintf("%s%dK", Rupee, int64(math.Round(v/1000)))
}

// Money renders a value with two decimals and digit grouping.
func Money(v float64) string {
	return Rupee + printer().Sprintf("%.2f", v)
}

// Number renders an integer with digit grouping.
func Number(n int) string {
	return printer().Sprintf("%d", n)
}

// Rating renders an average with one decimal, or "N/A" when there is none.
func Rating(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return printer().Sprintf("%.1f", v)
}

// Percent は 0-100 の値を整数の%表記にします。
func Percent(v float64) string {
	return printer().Sprintf("%d%%", int64(math.Round(v)))
}

// YearsOfService counts whole 365-day years since hireDate. Unreadable dates give 0.
func YearsOfService(hireDate string, now time.Time) int {
	hired := model.ParseTime(hireDate)
	if hired.Equal(model.Epoch) || now.Before(hired) {
		return 0
	}
	return int(now.Sub(hired).Hours() / 24 / 365)
}

// Date は日付文字列を "02 Jan 2006" 形式にします。
func Date(s string) string {
	t := model.ParseTime(s)
	if t.Equal(model.Epoch) {
		return "N/A"
	}
	return t.Format("02 Jan 2006")
}
