package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseYearMonth extracts year and month from query parameters. ok is
// false when neither was provided.
func parseYearMonth(r *http.Request) (year, month int, ok bool) {
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
			ok = true
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
			ok = true
		}
	}
	return year, month, ok
}

// yearMonthOrNow is parseYearMonth with the current date filling the gaps.
func yearMonthOrNow(r *http.Request) (int, int) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if y, m, ok := parseYearMonth(r); ok {
		if y != 0 {
			year = y
		}
		if m != 0 {
			month = m
		}
	}
	return year, month
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthOrNow(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}
	writeJSON(w, http.StatusOK, toOverviewDTO(s.reports.MonthOverview(r.Context(), year, month)))
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	s.handleDashboard(w, r)
}

func (s *Server) handleAnnualReport(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthOrNow(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}
	writeJSON(w, http.StatusOK, toAnnualDTO(s.reports.Annual(r.Context(), year, month)))
}
