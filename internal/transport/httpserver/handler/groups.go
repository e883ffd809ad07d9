package handler

import (
	"errors"
	"net/http"
	"time"

	groupsdomain "kasmoni-app-go/internal/domain/groups"
	membersdomain "kasmoni-app-go/internal/domain/members"
	"github.com/shopspring/decimal"
)

type groupRequest struct {
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
}

type groupResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartDate     *string         `json:"start_date,omitempty"`
	EndDate       *string         `json:"end_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type groupListResponse struct {
	Items []groupResponse `json:"items"`
}

func toGroupResponse(group groupsdomain.Group) groupResponse {
	resp := groupResponse{
		ID:            group.ID,
		Name:          group.Name,
		MonthlyAmount: group.MonthlyAmount,
		CreatedAt:     group.CreatedAt,
		UpdatedAt:     group.UpdatedAt,
	}
	if group.StartDate != nil {
		formatted := group.StartDate.Format("2006-01-02")
		resp.StartDate = &formatted
	}
	if group.EndDate != nil {
		formatted := group.EndDate.Format("2006-01-02")
		resp.EndDate = &formatted
	}
	return resp
}

func (req groupRequest) dates() (*time.Time, *time.Time, error) {
	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		return nil, nil, err
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		return nil, nil, err
	}
	return startDate, endDate, nil
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.log.InternalError("groups.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		items = append(items, toGroupResponse(group))
	}
	writeJSON(w, http.StatusOK, groupListResponse{Items: items})
}

// ListActiveGroups is the first step of the group-first payment workflow: only
// groups whose window covers the requested payment month are offered.
func (h *Handlers) ListActiveGroups(w http.ResponseWriter, r *http.Request) {
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	groups, err := h.Groups.ListActiveForMonth(r.Context(), payMonth)
	if err != nil {
		h.log.InternalError("groups.active: list failed", err, "month", payMonth)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		items = append(items, toGroupResponse(group))
	}
	writeJSON(w, http.StatusOK, groupListResponse{Items: items})
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, endDate, err := req.dates()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	group, err := h.Groups.Create(r.Context(), groupsdomain.CreateGroupInput{
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		h.log.BusinessError("groups.create: create failed", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "group.create", "group", group.ID, group.Name)
	writeJSON(w, http.StatusCreated, toGroupResponse(*group))
}

func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}

	group, err := h.Groups.Get(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, groupsdomain.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.get: get failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(*group))
}

func (h *Handlers) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, endDate, err := req.dates()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	group, err := h.Groups.Update(r.Context(), groupsdomain.UpdateGroupInput{
		ID:            groupID,
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		if errors.Is(err, groupsdomain.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.BusinessError("groups.update: update failed", err, "group_id", groupID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "group.update", "group", group.ID, group.Name)
	writeJSON(w, http.StatusOK, toGroupResponse(*group))
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}

	if err := h.Groups.Delete(r.Context(), groupID); err != nil {
		switch {
		case errors.Is(err, groupsdomain.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, groupsdomain.ErrGroupHasPayments):
			writeError(w, http.StatusConflict, "group_in_use", "group has payments")
		default:
			h.log.InternalError("groups.delete: delete failed", err, "group_id", groupID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	h.recordActivity(r.Context(), "group.delete", "group", groupID, "")
	w.WriteHeader(http.StatusNoContent)
}

// ListGroupMembers is the second step of the group-first workflow: the members
// scheduled anywhere in the chosen group.
func (h *Handlers) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}

	if _, err := h.Groups.Get(r.Context(), groupID); err != nil {
		if errors.Is(err, groupsdomain.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.members: get group failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	memberIDs, err := h.Schedule.MemberIDsOfGroup(r.Context(), groupID)
	if err != nil {
		h.log.InternalError("groups.members: list member ids failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]memberResponse, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		member, err := h.Members.Get(r.Context(), memberID)
		if err != nil {
			if errors.Is(err, membersdomain.ErrMemberNotFound) {
				continue
			}
			h.log.InternalError("groups.members: get member failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		items = append(items, toMemberResponse(*member))
	}

	writeJSON(w, http.StatusOK, memberListResponse{Items: items, Total: int64(len(items))})
}

// ListOpenSlots is the final step of the group-first and member-first workflows:
// the member's assigned months in the group that have no payment yet for the
// requested payment month.
func (h *Handlers) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid group id")
		return
	}
	memberID, err := parseID(r, "member_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member id")
		return
	}
	payMonth, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	open, err := h.Payments.OpenSlots(r.Context(), groupID, memberID, payMonth)
	if err != nil {
		h.log.InternalError("groups.open-slots: list failed", err, "group_id", groupID, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, combinationListResponse{Items: open})
}
