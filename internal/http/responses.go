package http

import (
	"encoding/json"
	"net/http"

	"github.com/helderruiz/controle-mensal/internal/core"
	"github.com/helderruiz/controle-mensal/internal/services"
)

// transactionDTO is the wire shape of a ledger record, amounts carried as
// cents plus a pre-rendered BRL display string.
type transactionDTO struct {
	ID                string `json:"id"`
	Description       string `json:"description"`
	AmountCents       int64  `json:"amountCents"`
	AmountDisplay     string `json:"amountDisplay"`
	Date              string `json:"date"`
	Type              string `json:"type"`
	TypeLabel         string `json:"typeLabel"`
	Category          string `json:"category"`
	CategoryLabel     string `json:"categoryLabel"`
	CategoryIcon      string `json:"categoryIcon"`
	CategoryColor     string `json:"categoryColor"`
	Repetition        string `json:"repetition,omitempty"`
	InstallmentType   string `json:"installmentType,omitempty"`
	InstallmentsCount int    `json:"installmentsCount,omitempty"`
}

type categoryAmountDTO struct {
	Category      string `json:"category"`
	Label         string `json:"label"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	AmountCents   int64  `json:"amountCents"`
	AmountDisplay string `json:"amountDisplay"`
}

type monthSummaryDTO struct {
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	EntriesCents   int64  `json:"entriesCents"`
	ExitsCents     int64  `json:"exitsCents"`
	BalanceCents   int64  `json:"balanceCents"`
	BalanceDisplay string `json:"balanceDisplay"`
}

type monthOverviewDTO struct {
	Year           int                 `json:"year"`
	Month          int                 `json:"month"`
	EntriesCents   int64               `json:"entriesCents"`
	EntriesDisplay string              `json:"entriesDisplay"`
	ExitsCents     int64               `json:"exitsCents"`
	ExitsDisplay   string              `json:"exitsDisplay"`
	BalanceCents   int64               `json:"balanceCents"`
	BalanceDisplay string              `json:"balanceDisplay"`
	Categories     []categoryAmountDTO `json:"categories"`
	Recent         []transactionDTO    `json:"recent"`
}

type annualReportDTO struct {
	Year           int                 `json:"year"`
	Series         []monthSummaryDTO   `json:"series"`
	EntriesCents   int64               `json:"entriesCents"`
	EntriesDisplay string              `json:"entriesDisplay"`
	ExitsCents     int64               `json:"exitsCents"`
	ExitsDisplay   string              `json:"exitsDisplay"`
	BalanceCents   int64               `json:"balanceCents"`
	BalanceDisplay string              `json:"balanceDisplay"`
	Categories     []categoryAmountDTO `json:"categories"`
}

func toTransactionDTO(t core.Transaction) transactionDTO {
	meta := t.Category.Meta()
	return transactionDTO{
		ID:                t.ID,
		Description:       t.Description,
		AmountCents:       t.Amount.Cents,
		AmountDisplay:     core.FormatBRL(t.Amount.Cents),
		Date:              t.Date.String(),
		Type:              string(t.Type),
		TypeLabel:         t.Type.Label(),
		Category:          string(t.Category),
		CategoryLabel:     meta.Label,
		CategoryIcon:      meta.Icon,
		CategoryColor:     meta.Color,
		Repetition:        string(t.Repetition),
		InstallmentType:   string(t.Installment),
		InstallmentsCount: t.InstallmentsCount,
	}
}

func toTransactionDTOs(items []core.Transaction) []transactionDTO {
	dtos := make([]transactionDTO, 0, len(items))
	for _, t := range items {
		dtos = append(dtos, toTransactionDTO(t))
	}
	return dtos
}

func toCategoryDTOs(rows []core.CategoryAmount) []categoryAmountDTO {
	dtos := make([]categoryAmountDTO, 0, len(rows))
	for _, row := range rows {
		meta := row.Category.Meta()
		dtos = append(dtos, categoryAmountDTO{
			Category:      string(row.Category),
			Label:         meta.Label,
			Icon:          meta.Icon,
			Color:         meta.Color,
			AmountCents:   row.Amount.Cents,
			AmountDisplay: core.FormatBRL(row.Amount.Cents),
		})
	}
	return dtos
}

func toOverviewDTO(ov services.MonthOverview) monthOverviewDTO {
	return monthOverviewDTO{
		Year:           ov.Year,
		Month:          ov.Month,
		EntriesCents:   ov.Entries.Cents,
		EntriesDisplay: core.FormatBRL(ov.Entries.Cents),
		ExitsCents:     ov.Exits.Cents,
		ExitsDisplay:   core.FormatBRL(ov.Exits.Cents),
		BalanceCents:   ov.Balance.Cents,
		BalanceDisplay: core.FormatBRL(ov.Balance.Cents),
		Categories:     toCategoryDTOs(ov.Categories),
		Recent:         toTransactionDTOs(ov.Recent),
	}
}

func toAnnualDTO(report services.AnnualReport) annualReportDTO {
	series := make([]monthSummaryDTO, 0, len(report.Series))
	for _, m := range report.Series {
		series = append(series, monthSummaryDTO{
			Year:           m.Year,
			Month:          m.Month,
			EntriesCents:   m.Entries.Cents,
			ExitsCents:     m.Exits.Cents,
			BalanceCents:   m.Balance.Cents,
			BalanceDisplay: core.FormatBRL(m.Balance.Cents),
		})
	}
	return annualReportDTO{
		Year:           report.Year,
		Series:         series,
		EntriesCents:   report.Entries.Cents,
		EntriesDisplay: core.FormatBRL(report.Entries.Cents),
		ExitsCents:     report.Exits.Cents,
		ExitsDisplay:   core.FormatBRL(report.Exits.Cents),
		BalanceCents:   report.Balance.Cents,
		BalanceDisplay: core.FormatBRL(report.Balance.Cents),
		Categories:     toCategoryDTOs(report.Categories),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
