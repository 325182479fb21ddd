package core

import (
	"errors"
	"fmt"
	"testing"
)

func draft(desc string, cents int64, date Date, count int) Draft {
	return Draft{
		Description: desc,
		Amount:      Money{Cents: cents},
		Date:        date,
		Type:        Exit,
		Category:    Shopping,
		Installment: Installment,
		Count:       count,
	}
}

func fixedDraft(desc string, cents int64, date Date, count int) Draft {
	d := draft(desc, cents, date, count)
	d.Installment = Fixed
	return d
}

func TestExpandSingle(t *testing.T) {
	d := draft("Mercado", 1500, NewDate(2024, 3, 10), 1)
	got, err := d.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.Description != "Mercado" {
		t.Fatalf("description modified: %q", r.Description)
	}
	if r.InstallmentsCount != 0 {
		t.Fatalf("standalone record carries count %d", r.InstallmentsCount)
	}
	if r.Date != NewDate(2024, 3, 10) {
		t.Fatalf("date = %v", r.Date)
	}
}

func TestExpandClampsFebruary(t *testing.T) {
	d := draft("Seguro", 10000, NewDate(2024, 1, 31), 3)
	got, err := d.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	wantDates := []Date{
		NewDate(2024, 1, 31),
		NewDate(2024, 2, 29), // leap year clamp
		NewDate(2024, 3, 31),
	}
	for i, r := range got {
		if r.Date != wantDates[i] {
			t.Fatalf("record %d date = %v, want %v", i, r.Date, wantDates[i])
		}
		wantDesc := fmt.Sprintf("Seguro (%d/3)", i+1)
		if r.Description != wantDesc {
			t.Fatalf("record %d description = %q, want %q", i, r.Description, wantDesc)
		}
	}
}

func TestExpandSeries(t *testing.T) {
	d := draft("Notebook", 30000, NewDate(2024, 1, 15), 4)
	got, err := d.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 records, got %d", len(got))
	}
	for i, r := range got {
		want := NewDate(2024, 1+i, 15)
		if r.Date != want {
			t.Fatalf("record %d date = %v, want %v", i, r.Date, want)
		}
		if r.Amount.Cents != 30000 {
			t.Fatalf("record %d amount = %d", i, r.Amount.Cents)
		}
		wantDesc := fmt.Sprintf("Notebook (%d/4)", i+1)
		if r.Description != wantDesc {
			t.Fatalf("record %d description = %q", i, r.Description)
		}
		if r.InstallmentsCount != 4 {
			t.Fatalf("record %d count = %d", i, r.InstallmentsCount)
		}
		if r.Type != Exit || r.Category != Shopping || r.Installment != Installment {
			t.Fatalf("record %d lost shared fields: %+v", i, r)
		}
	}
}

func TestExpandRejects(t *testing.T) {
	cases := []struct {
		name string
		d    Draft
		want error
	}{
		{"zero count", draft("x", 100, NewDate(2024, 1, 1), 0), ErrInvalidInstallments},
		{"negative count", draft("x", 100, NewDate(2024, 1, 1), -3), ErrInvalidInstallments},
		{"zero amount", draft("x", 0, NewDate(2024, 1, 1), 2), ErrInvalidAmount},
		{"negative amount", draft("x", -100, NewDate(2024, 1, 1), 2), ErrInvalidAmount},
		{"empty description", draft("", 100, NewDate(2024, 1, 1), 2), ErrEmptyDescription},
		{"blank description", draft("   ", 100, NewDate(2024, 1, 1), 2), ErrEmptyDescription},
		{"fixed series", fixedDraft("x", 100, NewDate(2024, 1, 1), 3), ErrInvalidInstallments},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.d.Expand()
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if len(got) != 0 {
				t.Fatalf("rejected draft produced %d records", len(got))
			}
		})
	}
}

func TestExpandDefaults(t *testing.T) {
	d := Draft{
		Description: "Luz",
		Amount:      Money{Cents: 12000},
		Date:        NewDate(2024, 6, 1),
		Type:        Exit,
		Category:    Bills,
		Count:       1,
	}
	got, err := d.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got[0].Installment != Fixed || got[0].Repetition != RepeatNone {
		t.Fatalf("defaults not applied: %+v", got[0])
	}

	d.Description = "Geladeira"
	d.Count = 3
	got, err = d.Expand()
	if err != nil {
		t.Fatalf("expand series: %v", err)
	}
	for i, r := range got {
		if r.Installment != Installment {
			t.Fatalf("record %d installment type = %q, want %q", i, r.Installment, Installment)
		}
	}
}
