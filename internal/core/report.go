package core

import "sort"

// The aggregation functions in this file are pure: they never mutate their
// input and never fail. Empty inputs produce zero totals and empty slices,
// which are valid results, not errors.

// FilterByMonth returns the transactions whose date falls in the given
// calendar month and year, preserving input order.
func FilterByMonth(transactions []Transaction, year, month int) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if t.Date.InMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByYear returns the transactions whose date falls in the given
// year, preserving input order.
func FilterByYear(transactions []Transaction, year int) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if t.Date.Year == year {
			out = append(out, t)
		}
	}
	return out
}

// SumByType sums the amounts of the transactions matching the given type.
func SumByType(transactions []Transaction, typ Type) Money {
	var cents int64
	for _, t := range transactions {
		if t.Type == typ {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// Balance returns entries minus exits. The result may be negative.
func Balance(transactions []Transaction) Money {
	entries := SumByType(transactions, Entry)
	exits := SumByType(transactions, Exit)
	return Money{Cents: entries.Cents - exits.Cents}
}

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   Money    `json:"amountCents"`
}

// SumByCategory groups the transactions of the given type by category and
// sums each group, sorted descending by total. Ties keep the order in
// which the categories were first encountered in the input.
func SumByCategory(transactions []Transaction, typ Type) []CategoryAmount {
	totals := make(map[Category]int64)
	var order []Category
	for _, t := range transactions {
		if t.Type != typ {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount.Cents
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryAmount{Category: c, Amount: Money{Cents: totals[c]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// MonthSummary aggregates one calendar month.
type MonthSummary struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Entries Money `json:"entriesCents"`
	Exits   Money `json:"exitsCents"`
	Balance Money `json:"balanceCents"`
}

// MonthlySeriesDefault is the number of months trend displays show.
const MonthlySeriesDefault = 6

// MonthlySeries builds count consecutive month summaries ending at the
// given month inclusive, oldest first. count must be positive; anything
// else yields an empty series.
func MonthlySeries(transactions []Transaction, endYear, endMonth, count int) []MonthSummary {
	if count < 1 {
		return nil
	}
	end := Date{Year: endYear, Month: endMonth, Day: 1}
	out := make([]MonthSummary, 0, count)
	for i := count - 1; i >= 0; i-- {
		d := end.AddMonths(-i)
		monthly := FilterByMonth(transactions, d.Year, d.Month)
		entries := SumByType(monthly, Entry)
		exits := SumByType(monthly, Exit)
		out = append(out, MonthSummary{
			Year:    d.Year,
			Month:   d.Month,
			Entries: entries,
			Exits:   exits,
			Balance: Money{Cents: entries.Cents - exits.Cents},
		})
	}
	return out
}
