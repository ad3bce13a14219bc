package domain

// DefaultSplitCount is the split count of a new expense entry.
const DefaultSplitCount = 2

// SplitCounts lists the split counts a user can pick.
var SplitCounts = []int{1, 2, 3, 4, 5}

// ExpenseEntry is one recorded expense.
// Day is the label of the itinerary day it belongs to; it is not checked
// against the schedule, so entries can outlive a removed day.
type ExpenseEntry struct {
	ID         int64  `json:"id" yaml:"id"`
	Day        string `json:"date" yaml:"date"`
	Item       string `json:"item" yaml:"item"`
	Amount     Amount `json:"thb" yaml:"amount"`
	Currency   string `json:"currency" yaml:"currency"`
	SplitCount int    `json:"splitCount" yaml:"split_count"`
	Note       string `json:"note" yaml:"note"`
	Photo      string `json:"img,omitempty" yaml:"img,omitempty"`
}

// EffectiveCurrency returns the entry's currency, or DefaultCurrency if unset.
func (e ExpenseEntry) EffectiveCurrency() string {
	if e.Currency == "" {
		return DefaultCurrency
	}
	return e.Currency
}

// EachShare is the per-person share of the entry rounded half-up to an
// integer. A split count below 1 counts as 1. 100 split 3 ways is 33.
func (e ExpenseEntry) EachShare() int64 {
	n := e.SplitCount
	if n < 1 {
		n = 1
	}
	return roundHalfUp(float64(e.Amount) / float64(n))
}

// TotalsByCurrency sums entries per currency, in the order each currency is
// first seen. Amounts in different currencies are never added together.
func TotalsByCurrency(entries []ExpenseEntry) []CurrencyTotal {
	var totals []CurrencyTotal
	index := make(map[string]int)
	for _, e := range entries {
		sym := e.EffectiveCurrency()
		i, ok := index[sym]
		if !ok {
			i = len(totals)
			index[sym] = i
			totals = append(totals, CurrencyTotal{Symbol: sym})
		}
		totals[i].Amount += e.Amount
	}
	return totals
}

// DaySummary is the expense view of one itinerary day.
type DaySummary struct {
	Day     string          `json:"day"`
	Entries []ExpenseEntry  `json:"entries"`
	Totals  []CurrencyTotal `json:"totals"`
}

// SummarizeByDay builds a summary for every label in days, in that order.
// Entries keep their list order within a day.
func SummarizeByDay(days []string, entries []ExpenseEntry) []DaySummary {
	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		in := []ExpenseEntry{}
		for _, e := range entries {
			if e.Day == day {
				in = append(in, e)
			}
		}
		totals := TotalsByCurrency(in)
		if totals == nil {
			totals = []CurrencyTotal{}
		}
		out = append(out, DaySummary{Day: day, Entries: in, Totals: totals})
	}
	return out
}
