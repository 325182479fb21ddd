package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/helderruiz/controle-mensal/internal/core"
	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/store"
)

// draftRequest is the creation payload. The amount is carried either as a
// decimal string ("129,90" or "129.90") or as integer cents; the string
// wins when both are present. installmentsCount of zero means a standalone
// record.
type draftRequest struct {
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	AmountCents       int64  `json:"amountCents"`
	Date              string `json:"date"`
	Type              string `json:"type"`
	Category          string `json:"category"`
	Repetition        string `json:"repetition"`
	InstallmentType   string `json:"installmentType"`
	InstallmentsCount int    `json:"installmentsCount"`
}

func (req draftRequest) amount() (core.Money, error) {
	if v := strings.TrimSpace(req.Amount); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			return core.Money{}, err
		}
		return core.Money{Cents: cents}, nil
	}
	return core.Money{Cents: req.AmountCents}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items := s.ledger.All()
	year, month, ok := parseYearMonth(r)
	switch {
	case !ok:
		// unfiltered
	case year == 0:
		writeError(w, http.StatusBadRequest, "month filter requires a year")
		return
	case month == 0:
		items = core.FilterByYear(items, year)
	case month < 1 || month > 12:
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	default:
		items = core.FilterByMonth(items, year, month)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": toTransactionDTOs(items),
	})
}

func (s *Server) handleCreateTransactions(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date: expected YYYY-MM-DD")
		return
	}

	amount, err := req.amount()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	count := req.InstallmentsCount
	if count == 0 {
		count = 1
	}
	draft := core.Draft{
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		Date:        date,
		Type:        core.Type(req.Type),
		Category:    core.Category(req.Category),
		Repetition:  core.Repetition(req.Repetition),
		Installment: core.InstallmentType(req.InstallmentType),
		Count:       count,
	}

	added, err := s.ledger.CreateFromDraft(r.Context(), draft)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction creation failed", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not store transactions")
		return
	}

	s.metrics.transactionsCreated.Add(int64(len(added)))
	s.reports.Invalidate()
	writeJSON(w, http.StatusCreated, map[string]any{
		"transactions": toTransactionDTOs(added),
	})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date: expected YYYY-MM-DD")
		return
	}

	amount, err := req.amount()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	record := core.Transaction{
		Description:       strings.TrimSpace(req.Description),
		Amount:            amount,
		Date:              date,
		Type:              core.Type(req.Type),
		Category:          core.Category(req.Category),
		Repetition:        core.Repetition(req.Repetition),
		Installment:       core.InstallmentType(req.InstallmentType),
		InstallmentsCount: req.InstallmentsCount,
	}
	if err := record.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.ledger.Update(r.Context(), id, record)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction update failed",
			log.FieldTxID, id, log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not update transaction")
		return
	}
	if res == store.NotFound {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	record.ID = id
	s.reports.Invalidate()
	writeJSON(w, http.StatusOK, toTransactionDTO(record))
}

// handleDeleteTransaction removes a record. Deleting an unknown id is a
// no-op and still answers 204.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.Delete(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction delete failed",
			log.FieldTxID, id, log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}
	s.reports.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrInvalidType) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrInvalidInstallments)
}
