package handler

import (
	"errors"
	"net/http"
	"time"

	groupsdomain "kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
	slotsdomain "kasmoni-app-go/internal/domain/slots"
	"github.com/shopspring/decimal"
)

type createPaymentRequest struct {
	MemberID        int64           `json:"member_id"`
	GroupID         int64           `json:"group_id"`
	Slot            string          `json:"slot"`
	PaymentDate     string          `json:"payment_date"`
	PaymentMonth    month.Month     `json:"payment_month"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	SenderBankID    *int64          `json:"sender_bank_id"`
	ReceiverBankID  *int64          `json:"receiver_bank_id"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	FineAmount      decimal.Decimal `json:"fine_amount"`
	IsLatePayment   bool            `json:"is_late_payment"`
	PaymentDeadline string          `json:"payment_deadline"`
}

type updatePaymentRequest struct {
	PaymentDate     string          `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	SenderBankID    *int64          `json:"sender_bank_id"`
	ReceiverBankID  *int64          `json:"receiver_bank_id"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	FineAmount      decimal.Decimal `json:"fine_amount"`
	IsLatePayment   bool            `json:"is_late_payment"`
	PaymentDeadline string          `json:"payment_deadline"`
}

type updatePaymentStatusRequest struct {
	Status string `json:"status"`
}

type batchPaymentRequest struct {
	MemberID       int64       `json:"member_id"`
	PaymentDate    string      `json:"payment_date"`
	PaymentMonth   month.Month `json:"payment_month"`
	PaymentMethod  string      `json:"payment_method"`
	SenderBankID   *int64      `json:"sender_bank_id"`
	ReceiverBankID *int64      `json:"receiver_bank_id"`
	Status         string      `json:"status"`
	Notes          string      `json:"notes"`
	Combinations   []string    `json:"combinations"`
}

type paymentResponse struct {
	ID              int64           `json:"id"`
	MemberID        int64           `json:"member_id"`
	GroupID         int64           `json:"group_id"`
	SlotID          int64           `json:"slot_id"`
	PaymentDate     string          `json:"payment_date"`
	PaymentMonth    month.Month     `json:"payment_month"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	SenderBankID    *int64          `json:"sender_bank_id,omitempty"`
	ReceiverBankID  *int64          `json:"receiver_bank_id,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	FineAmount      decimal.Decimal `json:"fine_amount"`
	IsLatePayment   bool            `json:"is_late_payment"`
	PaymentDeadline *string         `json:"payment_deadline,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type paymentListResponse struct {
	Items []paymentResponse `json:"items"`
	Total int64             `json:"total"`
}

type duplicateCheckResponse struct {
	Known     bool `json:"known"`
	Duplicate bool `json:"duplicate"`
}

func toPaymentResponse(payment paymentsdomain.Payment) paymentResponse {
	resp := paymentResponse{
		ID:             payment.ID,
		MemberID:       payment.MemberID,
		GroupID:        payment.GroupID,
		SlotID:         payment.SlotID,
		PaymentDate:    payment.PaymentDate.Format("2006-01-02"),
		PaymentMonth:   payment.PaymentMonth,
		Amount:         payment.Amount,
		PaymentMethod:  string(payment.PaymentMethod),
		SenderBankID:   payment.SenderBankID,
		ReceiverBankID: payment.ReceiverBankID,
		Status:         string(payment.Status),
		Notes:          payment.Notes,
		FineAmount:     payment.FineAmount,
		IsLatePayment:  payment.IsLatePayment,
		CreatedAt:      payment.CreatedAt,
		UpdatedAt:      payment.UpdatedAt,
	}
	if payment.PaymentDeadline != nil {
		formatted := payment.PaymentDeadline.Format("2006-01-02")
		resp.PaymentDeadline = &formatted
	}
	return resp
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	groupID, err := parseOptionalID(query.Get("group_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}
	memberID, err := parseOptionalID(query.Get("member_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}
	payMonth, err := parseMonthParam(query.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}
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

	payments, total, err := h.Payments.List(r.Context(), paymentsdomain.ListFilter{
		GroupID:      groupID,
		MemberID:     memberID,
		PaymentMonth: payMonth,
		Status:       paymentsdomain.Status(query.Get("status")),
		Method:       paymentsdomain.Method(query.Get("method")),
		From:         from,
		To:           to,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.log.InternalError("payments.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]paymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, toPaymentResponse(payment))
	}
	writeJSON(w, http.StatusOK, paymentListResponse{Items: items, Total: total})
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	slotRef, err := slotsdomain.ParseRef(req.Slot)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	paymentDate, err := parseDateRequired(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment date")
		return
	}
	paymentDeadline, err := parseDateParam(req.PaymentDeadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment deadline")
		return
	}

	payment, err := h.Payments.Create(r.Context(), paymentsdomain.CreatePaymentInput{
		MemberID:        req.MemberID,
		GroupID:         req.GroupID,
		Slot:            slotRef,
		PaymentDate:     paymentDate,
		PaymentMonth:    req.PaymentMonth,
		Amount:          req.Amount,
		PaymentMethod:   paymentsdomain.Method(req.PaymentMethod),
		SenderBankID:    req.SenderBankID,
		ReceiverBankID:  req.ReceiverBankID,
		Status:          paymentsdomain.Status(req.Status),
		Notes:           req.Notes,
		FineAmount:      req.FineAmount,
		IsLatePayment:   req.IsLatePayment,
		PaymentDeadline: paymentDeadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsdomain.ErrDuplicatePayment):
			writeError(w, http.StatusConflict, "duplicate_payment", "payment already exists for this slot")
		case errors.Is(err, paymentsdomain.ErrGroupInactive):
			writeError(w, http.StatusBadRequest, "group_inactive", "group is not active for the payment month")
		case errors.Is(err, paymentsdomain.ErrBankRequired):
			writeError(w, http.StatusBadRequest, "bank_required", "sender and receiver bank are required for bank transfers")
		case errors.Is(err, groupsdomain.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, slotsdomain.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, "slot_not_found", "payment slot not found")
		default:
			h.log.BusinessError("payments.create: create failed", err, "member_id", req.MemberID, "group_id", req.GroupID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return
	}

	h.recordActivity(r.Context(), "payment.create", "payment", payment.ID, payment.PaymentMonth.String())
	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment id")
		return
	}

	payment, err := h.Payments.Get(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, paymentsdomain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
			return
		}
		h.log.InternalError("payments.get: get failed", err, "payment_id", paymentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment id")
		return
	}

	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	paymentDate, err := parseDateRequired(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment date")
		return
	}
	paymentDeadline, err := parseDateParam(req.PaymentDeadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment deadline")
		return
	}

	payment, err := h.Payments.Update(r.Context(), paymentsdomain.UpdatePaymentInput{
		ID:              paymentID,
		PaymentDate:     paymentDate,
		Amount:          req.Amount,
		PaymentMethod:   paymentsdomain.Method(req.PaymentMethod),
		SenderBankID:    req.SenderBankID,
		ReceiverBankID:  req.ReceiverBankID,
		Status:          paymentsdomain.Status(req.Status),
		Notes:           req.Notes,
		FineAmount:      req.FineAmount,
		IsLatePayment:   req.IsLatePayment,
		PaymentDeadline: paymentDeadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsdomain.ErrPaymentNotFound):
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
		case errors.Is(err, paymentsdomain.ErrBankRequired):
			writeError(w, http.StatusBadRequest, "bank_required", "sender and receiver bank are required for bank transfers")
		default:
			h.log.BusinessError("payments.update: update failed", err, "payment_id", paymentID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return
	}

	h.recordActivity(r.Context(), "payment.update", "payment", payment.ID, string(payment.Status))
	writeJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *Handlers) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment id")
		return
	}

	var req updatePaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	payment, err := h.Payments.UpdateStatus(r.Context(), paymentID, paymentsdomain.Status(req.Status))
	if err != nil {
		if errors.Is(err, paymentsdomain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
			return
		}
		h.log.BusinessError("payments.status: update failed", err, "payment_id", paymentID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "payment.status", "payment", payment.ID, string(payment.Status))
	writeJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *Handlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment id")
		return
	}

	if err := h.Payments.Delete(r.Context(), paymentID); err != nil {
		if errors.Is(err, paymentsdomain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
			return
		}
		h.log.InternalError("payments.delete: delete failed", err, "payment_id", paymentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.recordActivity(r.Context(), "payment.delete", "payment", paymentID, "")
	w.WriteHeader(http.StatusNoContent)
}

// CreatePaymentBatch records one payment per selected combination of the
// multi-group workflow and reports a per-item outcome.
func (h *Handlers) CreatePaymentBatch(w http.ResponseWriter, r *http.Request) {
	var req batchPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	paymentDate, err := parseDateRequired(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment date")
		return
	}

	items := make([]paymentsdomain.BatchItem, 0, len(req.Combinations))
	for _, value := range req.Combinations {
		ref, err := slotsdomain.ParseRef(value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		groupID, _, monthDate, ok := ref.Composite()
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_request", "combinations must use the composite form value")
			return
		}
		items = append(items, paymentsdomain.BatchItem{GroupID: groupID, MonthDate: monthDate})
	}

	result, err := h.Payments.CreateBatch(r.Context(), paymentsdomain.BatchInput{
		MemberID:       req.MemberID,
		PaymentDate:    paymentDate,
		PaymentMonth:   req.PaymentMonth,
		PaymentMethod:  paymentsdomain.Method(req.PaymentMethod),
		SenderBankID:   req.SenderBankID,
		ReceiverBankID: req.ReceiverBankID,
		Status:         paymentsdomain.Status(req.Status),
		Notes:          req.Notes,
		Items:          items,
	})
	if err != nil {
		h.log.BusinessError("payments.batch: batch failed", err, "member_id", req.MemberID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "payment.batch", "payment_batch", req.MemberID, result.BatchID)
	writeJSON(w, http.StatusOK, result)
}

// CheckDuplicatePayment backs the live duplicate warning in the payment form.
func (h *Handlers) CheckDuplicatePayment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	memberID, err := parseOptionalID(query.Get("member_id"))
	if err != nil || memberID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}
	groupID, err := parseOptionalID(query.Get("group_id"))
	if err != nil || groupID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}
	slotRef, err := slotsdomain.ParseRef(query.Get("slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	payMonth, err := parseMonthRequired(query.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	check := h.Payments.CheckDuplicate(r.Context(), *memberID, *groupID, slotRef, payMonth)
	writeJSON(w, http.StatusOK, duplicateCheckResponse{Known: check.Known, Duplicate: check.Duplicate})
}
