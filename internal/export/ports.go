// Package export mirrors the ledger to an external spreadsheet. The sheet
// is a read model: every export rewrites it from the current snapshot.
package export

import (
	"context"

	"github.com/helderruiz/controle-mensal/internal/core"
)

// SheetWriter replaces the spreadsheet contents with the given records.
type SheetWriter interface {
	ReplaceAll(ctx context.Context, items []core.Transaction) error
}

// SnapshotSource is the persisted ledger the worker exports from.
type SnapshotSource interface {
	Load(ctx context.Context) ([]core.Transaction, bool, error)
	Version(ctx context.Context) (int64, error)
}
