package core

import "testing"

func tx(id, desc string, cents int64, date Date, typ Type, cat Category) Transaction {
	return Transaction{
		ID:          id,
		Description: desc,
		Amount:      Money{Cents: cents},
		Date:        date,
		Type:        typ,
		Category:    cat,
	}
}

func sample() []Transaction {
	return []Transaction{
		tx("1", "Palheta / Sup.GPS", 3690, NewDate(2024, 2, 16), Exit, Transport),
		tx("2", "Prest. Casa", 80000, NewDate(2024, 2, 12), Exit, Rent),
		tx("3", "Salário", 484770, NewDate(2025, 5, 5), Entry, Salary),
		tx("4", "iFood - Restaurante", 4290, NewDate(2025, 5, 20), Exit, Food),
	}
}

func TestFilterByMonth(t *testing.T) {
	ts := sample()
	got := FilterByMonth(ts, 2024, 2)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("got %v", got)
	}
	// Idempotent
	again := FilterByMonth(got, 2024, 2)
	if len(again) != len(got) {
		t.Fatalf("filter not idempotent: %d vs %d", len(again), len(got))
	}
	if got := FilterByMonth(ts, 2024, 3); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
	if got := FilterByMonth(nil, 2024, 2); len(got) != 0 {
		t.Fatalf("expected empty for nil input")
	}
}

func TestFilterByYear(t *testing.T) {
	ts := sample()
	if got := FilterByYear(ts, 2025); len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got := FilterByYear(ts, 1999); len(got) != 0 {
		t.Fatalf("expected empty")
	}
}

func TestSumByTypeAndBalance(t *testing.T) {
	ts := sample()
	if got := SumByType(ts, Entry); got.Cents != 484770 {
		t.Fatalf("entries = %d", got.Cents)
	}
	if got := SumByType(ts, Exit); got.Cents != 87980 {
		t.Fatalf("exits = %d", got.Cents)
	}
	want := SumByType(ts, Entry).Cents - SumByType(ts, Exit).Cents
	if got := Balance(ts); got.Cents != want {
		t.Fatalf("balance = %d, want %d", got.Cents, want)
	}
	if got := Balance(nil); got.Cents != 0 {
		t.Fatalf("empty balance = %d", got.Cents)
	}
}

// Dashboard scenario: month filter, balance and formatting of May 2025.
func TestMonthOverviewScenario(t *testing.T) {
	may := FilterByMonth(sample(), 2025, 5)
	if len(may) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(may))
	}
	balance := Balance(may)
	if balance.Cents != 480480 {
		t.Fatalf("balance = %d, want 480480", balance.Cents)
	}
	if got := FormatBRL(balance.Cents); got != "4.804,80" {
		t.Fatalf("formatted balance = %q", got)
	}
}

func TestSumByCategory(t *testing.T) {
	if got := SumByCategory(nil, Exit); len(got) != 0 {
		t.Fatalf("expected empty mapping")
	}

	// Uniform category collapses to one entry with the full total.
	uniform := []Transaction{
		tx("1", "a", 100, NewDate(2025, 1, 1), Exit, Food),
		tx("2", "b", 250, NewDate(2025, 1, 2), Exit, Food),
	}
	got := SumByCategory(uniform, Exit)
	if len(got) != 1 || got[0].Category != Food || got[0].Amount.Cents != 350 {
		t.Fatalf("got %v", got)
	}

	// Descending by total; entries of the other type are excluded.
	mixed := []Transaction{
		tx("1", "salary", 500000, NewDate(2025, 1, 1), Entry, Salary),
		tx("2", "rent", 80000, NewDate(2025, 1, 2), Exit, Rent),
		tx("3", "food", 5000, NewDate(2025, 1, 3), Exit, Food),
		tx("4", "more food", 90000, NewDate(2025, 1, 4), Exit, Food),
	}
	got = SumByCategory(mixed, Exit)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != Food || got[0].Amount.Cents != 95000 {
		t.Fatalf("got %v", got[0])
	}
	if got[1].Category != Rent || got[1].Amount.Cents != 80000 {
		t.Fatalf("got %v", got[1])
	}

	// Ties keep first-encountered order.
	tied := []Transaction{
		tx("1", "a", 100, NewDate(2025, 1, 1), Exit, Bills),
		tx("2", "b", 100, NewDate(2025, 1, 2), Exit, Transport),
	}
	got = SumByCategory(tied, Exit)
	if got[0].Category != Bills || got[1].Category != Transport {
		t.Fatalf("tie order broken: %v", got)
	}
}

func TestMonthlySeries(t *testing.T) {
	ts := sample()
	series := MonthlySeries(ts, 2025, 5, MonthlySeriesDefault)
	if len(series) != 6 {
		t.Fatalf("expected 6 months, got %d", len(series))
	}
	first, last := series[0], series[5]
	if first.Year != 2024 || first.Month != 12 {
		t.Fatalf("series starts at %d-%d", first.Year, first.Month)
	}
	if last.Year != 2025 || last.Month != 5 {
		t.Fatalf("series ends at %d-%d", last.Year, last.Month)
	}
	if last.Entries.Cents != 484770 || last.Exits.Cents != 4290 || last.Balance.Cents != 480480 {
		t.Fatalf("may summary: %+v", last)
	}
	for _, s := range series[:5] {
		if s.Entries.Cents != 0 || s.Exits.Cents != 0 {
			t.Fatalf("expected empty month %d-%d, got %+v", s.Year, s.Month, s)
		}
	}

	if got := MonthlySeries(ts, 2025, 5, 0); got != nil {
		t.Fatalf("count 0 should yield nil")
	}
	if got := MonthlySeries(ts, 2025, 5, 1); len(got) != 1 || got[0].Month != 5 {
		t.Fatalf("count 1: %v", got)
	}
}
