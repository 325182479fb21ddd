package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/helderruiz/controle-mensal/internal/core"
	"github.com/helderruiz/controle-mensal/internal/events"
	applog "github.com/helderruiz/controle-mensal/internal/log"
)

type fakeSource struct {
	items   []core.Transaction
	found   bool
	version int64
	loadErr error
}

func (f *fakeSource) Load(context.Context) ([]core.Transaction, bool, error) {
	return f.items, f.found, f.loadErr
}

func (f *fakeSource) Version(context.Context) (int64, error) {
	return f.version, nil
}

type fakeSheet struct {
	writes  [][]core.Transaction
	failAll bool
}

func (f *fakeSheet) ReplaceAll(_ context.Context, items []core.Transaction) error {
	if f.failAll {
		return errors.New("sheet unavailable")
	}
	f.writes = append(f.writes, items)
	return nil
}

func testLogger() *applog.Logger {
	return applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func sampleItems() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Description: "Salário", Amount: core.Money{Cents: 484770}, Date: core.NewDate(2025, 5, 5), Type: core.Entry, Category: core.Salary},
		{ID: "2", Description: "iFood", Amount: core.Money{Cents: 4290}, Date: core.NewDate(2025, 5, 20), Type: core.Exit, Category: core.Food},
	}
}

func TestHandleLedgerChangedExportsSnapshot(t *testing.T) {
	source := &fakeSource{items: sampleItems(), found: true, version: 3}
	sheet := &fakeSheet{}
	w := NewWorker(source, sheet, testLogger())

	msg := events.NewLedgerChangedMessage("transactions", 3)
	if err := w.HandleLedgerChanged(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sheet.writes) != 1 || len(sheet.writes[0]) != 2 {
		t.Fatalf("writes = %+v", sheet.writes)
	}
	if w.ExportedVersion() != 3 {
		t.Fatalf("exported version = %d", w.ExportedVersion())
	}
}

func TestHandleLedgerChangedMissingSnapshot(t *testing.T) {
	source := &fakeSource{found: false}
	sheet := &fakeSheet{}
	w := NewWorker(source, sheet, testLogger())

	if err := w.HandleLedgerChanged(context.Background(), events.NewLedgerChangedMessage("transactions", 1)); err != nil {
		t.Fatalf("missing snapshot must not error: %v", err)
	}
	if len(sheet.writes) != 0 {
		t.Fatalf("nothing should be written, got %d writes", len(sheet.writes))
	}
}

func TestHandleLedgerChangedSheetFailure(t *testing.T) {
	source := &fakeSource{items: sampleItems(), found: true, version: 2}
	sheet := &fakeSheet{failAll: true}
	w := NewWorker(source, sheet, testLogger())

	if err := w.HandleLedgerChanged(context.Background(), events.NewLedgerChangedMessage("transactions", 2)); err == nil {
		t.Fatal("expected error when sheet write fails")
	}
	if w.ExportedVersion() != 0 {
		t.Fatalf("failed export must not advance version, got %d", w.ExportedVersion())
	}
}

func TestReconcileSkipsWhenUpToDate(t *testing.T) {
	source := &fakeSource{items: sampleItems(), found: true, version: 5}
	sheet := &fakeSheet{}
	w := NewWorker(source, sheet, testLogger())

	if err := w.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(sheet.writes) != 1 {
		t.Fatalf("first reconcile should export, writes = %d", len(sheet.writes))
	}

	if err := w.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(sheet.writes) != 1 {
		t.Fatalf("unchanged version must not re-export, writes = %d", len(sheet.writes))
	}

	source.version = 6
	if err := w.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(sheet.writes) != 2 {
		t.Fatalf("version bump should export, writes = %d", len(sheet.writes))
	}
}

func TestTransactionRowSignsExits(t *testing.T) {
	row := transactionRow(core.Transaction{
		Description: "iFood",
		Amount:      core.Money{Cents: 4290},
		Date:        core.NewDate(2025, 5, 20),
		Type:        core.Exit,
		Category:    core.Food,
	})
	if row[0] != "2025-05-20" {
		t.Fatalf("date cell = %v", row[0])
	}
	if row[2] != -42.90 {
		t.Fatalf("amount cell = %v", row[2])
	}
	if row[4] != "Alimentação" {
		t.Fatalf("category cell = %v", row[4])
	}

	entry := transactionRow(core.Transaction{
		Description: "Salário",
		Amount:      core.Money{Cents: 484770},
		Date:        core.NewDate(2025, 5, 5),
		Type:        core.Entry,
		Category:    core.Salary,
	})
	if entry[2] != 4847.70 {
		t.Fatalf("entry amount cell = %v", entry[2])
	}
}
