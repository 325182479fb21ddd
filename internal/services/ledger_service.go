// Package services orchestrates the domain: draft expansion into the
// store, change notification, and cached report aggregation.
package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/helderruiz/controle-mensal/internal/core"
	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/storage"
	"github.com/helderruiz/controle-mensal/internal/store"
)

// Publisher notifies the export worker that the ledger changed. It is
// optional; the ledger works without one.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, key string, version int64) error
}

// LedgerService runs every transaction mutation: validation and
// installment expansion, the store write, and the change notification.
type LedgerService struct {
	store     *store.Store
	publisher Publisher
	logger    *log.Logger
	version   atomic.Int64
}

func NewLedgerService(s *store.Store, publisher Publisher, logger *log.Logger) *LedgerService {
	return &LedgerService{
		store:     s,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// CreateFromDraft expands the draft and inserts the whole batch as one
// operation. The draft is rejected before any record is produced; there
// are no partial batches.
func (s *LedgerService) CreateFromDraft(ctx context.Context, draft core.Draft) ([]core.Transaction, error) {
	batch, err := draft.Expand()
	if err != nil {
		return nil, fmt.Errorf("expand draft: %w", err)
	}

	added, err := s.store.Add(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("add batch: %w", err)
	}

	s.logger.InfoContext(ctx, "Draft expanded and stored",
		log.FieldTxDesc, draft.Description,
		log.FieldAmountCents, draft.Amount.Cents,
		log.FieldCount, len(added))

	s.notifyChanged(ctx)
	return added, nil
}

// Update replaces a record wholesale by id. An unknown id comes back as
// store.NotFound, not an error; the caller decides whether to surface it.
func (s *LedgerService) Update(ctx context.Context, id string, record core.Transaction) (store.UpdateResult, error) {
	res, err := s.store.Update(ctx, id, record)
	if err != nil {
		return res, fmt.Errorf("update transaction: %w", err)
	}
	if res == store.Updated {
		s.notifyChanged(ctx)
	}
	return res, nil
}

// Delete removes a record by id; unknown ids are a no-op.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	before := s.store.Len()
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if s.store.Len() != before {
		s.notifyChanged(ctx)
	}
	return nil
}

// All returns a snapshot of the ledger, newest first.
func (s *LedgerService) All() []core.Transaction {
	return s.store.All()
}

func (s *LedgerService) notifyChanged(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	version := s.version.Add(1)
	if err := s.publisher.PublishLedgerChanged(ctx, storage.SnapshotKey, version); err != nil {
		// The mutation already succeeded locally; a lost notification
		// only delays the export worker until its next reconcile.
		s.logger.ErrorContext(ctx, "Failed to publish ledger change",
			log.FieldVersion, version, log.FieldError, err.Error())
	}
}
