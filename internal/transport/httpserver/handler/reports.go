package handler

import (
	"net/http"

	reportsdomain "kasmoni-app-go/internal/domain/reports"
)

type paymentLogResponse struct {
	Items []reportsdomain.PaymentLogEntry `json:"items"`
	Total int64                           `json:"total"`
}

func (h *Handlers) ReportsDashboard(w http.ResponseWriter, r *http.Request) {
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	stats, err := h.Reports.Dashboard(r.Context(), payMonth)
	if err != nil {
		h.log.InternalError("reports.dashboard: build failed", err, "month", payMonth)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) ReportsFinancialSummary(w http.ResponseWriter, r *http.Request) {
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	summary, err := h.Reports.FinancialSummary(r.Context(), payMonth)
	if err != nil {
		h.log.InternalError("reports.summary: build failed", err, "month", payMonth)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) ReportsPaymentLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	entries, total, err := h.Reports.PaymentLog(r.Context(), reportsdomain.LogFilter{
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.log.InternalError("reports.log: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, paymentLogResponse{Items: entries, Total: total})
}
