package http

import (
	"net/http"
	"strings"

	"homeledger/internal/core"
)

// handleQuickReport computes the anonymous budget snapshot. When the
// request carries an email address the rendered report is queued for
// delivery, but the response never waits on the broker.
func (s *Server) handleQuickReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in core.QuickReportInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	report := s.reports.QuickReport(r.Context(), in)
	if s.metrics != nil {
		s.metrics.QuickReportComputed()
	}
	writeJSON(w, http.StatusOK, report)
}
