package handler

import (
	"errors"
	"net/http"
	"time"

	banksdomain "kasmoni-app-go/internal/domain/banks"
)

type bankRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
}

type bankResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type bankListResponse struct {
	Items []bankResponse `json:"items"`
}

func toBankResponse(bank banksdomain.Bank) bankResponse {
	return bankResponse{
		ID:        bank.ID,
		Name:      bank.Name,
		ShortCode: bank.ShortCode,
		CreatedAt: bank.CreatedAt,
	}
}

func (h *Handlers) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.Banks.List(r.Context())
	if err != nil {
		h.log.InternalError("banks.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]bankResponse, 0, len(banks))
	for _, bank := range banks {
		items = append(items, toBankResponse(bank))
	}
	writeJSON(w, http.StatusOK, bankListResponse{Items: items})
}

func (h *Handlers) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	bank, err := h.Banks.Create(r.Context(), banksdomain.CreateBankInput{
		Name:      req.Name,
		ShortCode: req.ShortCode,
	})
	if err != nil {
		if errors.Is(err, banksdomain.ErrBankNameTaken) {
			writeError(w, http.StatusConflict, "bank_name_taken", "bank name already exists")
			return
		}
		h.log.BusinessError("banks.create: create failed", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "bank.create", "bank", bank.ID, bank.Name)
	writeJSON(w, http.StatusCreated, toBankResponse(*bank))
}

func (h *Handlers) GetBank(w http.ResponseWriter, r *http.Request) {
	bankID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid bank id")
		return
	}

	bank, err := h.Banks.Get(r.Context(), bankID)
	if err != nil {
		if errors.Is(err, banksdomain.ErrBankNotFound) {
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
			return
		}
		h.log.InternalError("banks.get: get failed", err, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toBankResponse(*bank))
}

func (h *Handlers) DeleteBank(w http.ResponseWriter, r *http.Request) {
	bankID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid bank id")
		return
	}

	if err := h.Banks.Delete(r.Context(), bankID); err != nil {
		switch {
		case errors.Is(err, banksdomain.ErrBankNotFound):
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
		case errors.Is(err, banksdomain.ErrBankInUse):
			writeError(w, http.StatusConflict, "bank_in_use", "bank is referenced by payments")
		default:
			h.log.InternalError("banks.delete: delete failed", err, "bank_id", bankID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.recordActivity(r.Context(), "bank.delete", "bank", bankID, "")
	w.WriteHeader(http.StatusNoContent)
}
