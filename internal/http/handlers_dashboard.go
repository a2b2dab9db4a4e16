package http

import (
	"net/http"

	applog "saldo/internal/log"
)

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.dashboard.Summary(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, applog.OpSummary, err)
		return
	}
	OK(result).Write(w)
}

// handleDashboardMonthly serves ?year=&month= with a 0-based month. Missing
// values default to the current month.
func (s *Server) handleDashboardMonthly(w http.ResponseWriter, r *http.Request) {
	params, err := ParseMonthParams(r.URL.Query())
	if err != nil {
		writeError(w, r, applog.OpMonthly, err)
		return
	}
	result, err := s.dashboard.Monthly(r.Context(), ownerID(r), params.Year, params.MonthIndex)
	if err != nil {
		writeError(w, r, applog.OpMonthly, err)
		return
	}
	OK(result).Write(w)
}

func (s *Server) handleDashboardYearly(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r.URL.Query(), "year")
	if err != nil {
		writeError(w, r, applog.OpYearly, err)
		return
	}
	result, err := s.dashboard.Yearly(r.Context(), ownerID(r), year)
	if err != nil {
		writeError(w, r, applog.OpYearly, err)
		return
	}
	OK(result).Write(w)
}
