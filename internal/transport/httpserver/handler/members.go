package handler

import (
	"errors"
	"net/http"
	"time"

	groupsdomain "kasmoni-app-go/internal/domain/groups"
	membersdomain "kasmoni-app-go/internal/domain/members"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
)

type memberRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankID        *int64 `json:"bank_id"`
	AccountNumber string `json:"account_number"`
}

type memberResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	BankID        *int64    `json:"bank_id,omitempty"`
	AccountNumber string    `json:"account_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type memberListResponse struct {
	Items []memberResponse `json:"items"`
	Total int64            `json:"total"`
}

type combinationListResponse struct {
	Items []paymentsdomain.Combination `json:"items"`
}

func toMemberResponse(member membersdomain.Member) memberResponse {
	return memberResponse{
		ID:            member.ID,
		FirstName:     member.FirstName,
		LastName:      member.LastName,
		FullName:      member.FullName(),
		Phone:         member.Phone,
		Email:         member.Email,
		BankID:        member.BankID,
		AccountNumber: member.AccountNumber,
		CreatedAt:     member.CreatedAt,
		UpdatedAt:     member.UpdatedAt,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
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

	members, total, err := h.Members.List(r.Context(), membersdomain.ListFilter{
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.log.InternalError("members.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]memberResponse, 0, len(members))
	for _, member := range members {
		items = append(items, toMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, memberListResponse{Items: items, Total: total})
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Members.Create(r.Context(), membersdomain.CreateMemberInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		BankID:        req.BankID,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		h.log.BusinessError("members.create: create failed", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "member.create", "member", member.ID, member.FullName())
	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}

	member, err := h.Members.Get(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get: get failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}

	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Members.Update(r.Context(), membersdomain.UpdateMemberInput{
		ID:            memberID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		BankID:        req.BankID,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.BusinessError("members.update: update failed", err, "member_id", memberID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "member.update", "member", member.ID, member.FullName())
	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}

	if err := h.Members.Delete(r.Context(), memberID); err != nil {
		switch {
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, membersdomain.ErrMemberInUse):
			writeError(w, http.StatusConflict, "member_in_use", "member has assignments or payments")
		default:
			h.log.InternalError("members.delete: delete failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.recordActivity(r.Context(), "member.delete", "member", memberID, "")
	w.WriteHeader(http.StatusNoContent)
}

// ListPayableMembers is the first step of the member-first workflow: members
// holding at least one assignment in a group active for the payment month.
func (h *Handlers) ListPayableMembers(w http.ResponseWriter, r *http.Request) {
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	activeGroups, err := h.Groups.ListActiveForMonth(r.Context(), payMonth)
	if err != nil {
		h.log.InternalError("members.payable: list active groups failed", err, "month", payMonth)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	seen := make(map[int64]struct{})
	items := make([]memberResponse, 0)
	for _, group := range activeGroups {
		memberIDs, err := h.Schedule.MemberIDsOfGroup(r.Context(), group.ID)
		if err != nil {
			h.log.InternalError("members.payable: list member ids failed", err, "group_id", group.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		for _, memberID := range memberIDs {
			if _, ok := seen[memberID]; ok {
				continue
			}
			seen[memberID] = struct{}{}

			member, err := h.Members.Get(r.Context(), memberID)
			if err != nil {
				if errors.Is(err, membersdomain.ErrMemberNotFound) {
					continue
				}
				h.log.InternalError("members.payable: get member failed", err, "member_id", memberID)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			items = append(items, toMemberResponse(*member))
		}
	}

	writeJSON(w, http.StatusOK, memberListResponse{Items: items, Total: int64(len(items))})
}

// ListMemberGroups is the second step of the member-first workflow: the active
// groups the member is scheduled in for the payment month.
func (h *Handlers) ListMemberGroups(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	assignments, err := h.Schedule.ListByMember(r.Context(), memberID)
	if err != nil {
		h.log.InternalError("members.groups: list assignments failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	seen := make(map[int64]struct{})
	items := make([]groupResponse, 0)
	for _, assignment := range assignments {
		if _, ok := seen[assignment.GroupID]; ok {
			continue
		}
		seen[assignment.GroupID] = struct{}{}

		group, err := h.Groups.Get(r.Context(), assignment.GroupID)
		if err != nil {
			if errors.Is(err, groupsdomain.ErrGroupNotFound) {
				continue
			}
			h.log.InternalError("members.groups: get group failed", err, "group_id", assignment.GroupID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if !group.ActiveForMonth(payMonth) {
			continue
		}
		items = append(items, toGroupResponse(*group))
	}

	writeJSON(w, http.StatusOK, groupListResponse{Items: items})
}

// ListMemberCombinations feeds the multi-group workflow with every payable
// (group, month) pairing for the member, paid ones flagged.
func (h *Handlers) ListMemberCombinations(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	combos, err := h.Payments.Combinations(r.Context(), memberID, payMonth)
	if err != nil {
		h.log.InternalError("members.combinations: list failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, combinationListResponse{Items: combos})
}
