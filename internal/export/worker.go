package export

import (
	"context"
	"fmt"
	"sync"

	"github.com/helderruiz/controle-mensal/internal/events"
	"github.com/helderruiz/controle-mensal/internal/log"
)

// Worker keeps the spreadsheet in step with the persisted ledger. Change
// messages trigger an export; Reconcile is the backstop for lost messages.
type Worker struct {
	source SnapshotSource
	sheet  SheetWriter
	logger *log.Logger

	mu              sync.Mutex
	exportedVersion int64
}

func NewWorker(source SnapshotSource, sheet SheetWriter, logger *log.Logger) *Worker {
	return &Worker{
		source: source,
		sheet:  sheet,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleLedgerChanged processes one change message. The message only says
// the ledger moved; the worker always exports the current snapshot, so
// out-of-order deliveries cannot regress the sheet.
func (w *Worker) HandleLedgerChanged(ctx context.Context, msg *events.LedgerChangedMessage) error {
	w.logger.InfoContext(ctx, "Processing ledger change",
		log.FieldKey, msg.Key, log.FieldVersion, msg.Version)
	return w.export(ctx)
}

// Reconcile exports when the persisted version moved past the last export.
func (w *Worker) Reconcile(ctx context.Context) error {
	version, err := w.source.Version(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot version: %w", err)
	}

	w.mu.Lock()
	upToDate := version == w.exportedVersion
	w.mu.Unlock()
	if upToDate {
		w.logger.DebugContext(ctx, "Reconcile skipped, sheet up to date", log.FieldVersion, version)
		return nil
	}

	w.logger.InfoContext(ctx, "Reconcile export", log.FieldVersion, version)
	return w.export(ctx)
}

func (w *Worker) export(ctx context.Context) error {
	version, err := w.source.Version(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot version: %w", err)
	}
	items, found, err := w.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		w.logger.WarnContext(ctx, "No snapshot to export yet")
		return nil
	}

	if err := w.sheet.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("replace sheet contents: %w", err)
	}

	w.mu.Lock()
	w.exportedVersion = version
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Ledger exported",
		log.FieldCount, len(items), log.FieldVersion, version, log.FieldOperation, log.OpExport)
	return nil
}

// ExportedVersion reports the snapshot version of the last successful
// export.
func (w *Worker) ExportedVersion() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exportedVersion
}
