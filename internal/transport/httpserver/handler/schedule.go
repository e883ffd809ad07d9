package handler

import (
	"errors"
	"net/http"
	"time"

	groupsdomain "kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	scheduledomain "kasmoni-app-go/internal/domain/schedule"
)

type assignRequest struct {
	GroupID   int64       `json:"group_id"`
	MemberID  int64       `json:"member_id"`
	MonthDate month.Month `json:"month_date"`
}

type assignmentResponse struct {
	ID        int64       `json:"id"`
	GroupID   int64       `json:"group_id"`
	MemberID  int64       `json:"member_id"`
	MonthDate month.Month `json:"month_date"`
	CreatedAt time.Time   `json:"created_at"`
}

type assignmentListResponse struct {
	Items []assignmentResponse `json:"items"`
}

func toAssignmentResponse(assignment scheduledomain.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:        assignment.ID,
		GroupID:   assignment.GroupID,
		MemberID:  assignment.MemberID,
		MonthDate: assignment.MonthDate,
		CreatedAt: assignment.CreatedAt,
	}
}

func (h *Handlers) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.GroupID <= 0 || req.MemberID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "group and member are required")
		return
	}

	assignment, err := h.Schedule.Assign(r.Context(), scheduledomain.AssignInput{
		GroupID:   req.GroupID,
		MemberID:  req.MemberID,
		MonthDate: req.MonthDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, groupsdomain.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, scheduledomain.ErrAssignmentExists):
			writeError(w, http.StatusConflict, "assignment_exists", "member already assigned for this month")
		default:
			h.log.BusinessError("schedule.assign: assign failed", err, "group_id", req.GroupID, "member_id", req.MemberID)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return
	}

	h.recordActivity(r.Context(), "assignment.create", "assignment", assignment.ID, assignment.MonthDate.String())
	writeJSON(w, http.StatusCreated, toAssignmentResponse(*assignment))
}

func (h *Handlers) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid assignment id")
		return
	}

	if err := h.Schedule.Unassign(r.Context(), assignmentID); err != nil {
		if errors.Is(err, scheduledomain.ErrAssignmentNotFound) {
			writeError(w, http.StatusNotFound, "assignment_not_found", "assignment not found")
			return
		}
		h.log.InternalError("schedule.unassign: delete failed", err, "assignment_id", assignmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.recordActivity(r.Context(), "assignment.delete", "assignment", assignmentID, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
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

	var assignments []scheduledomain.Assignment
	switch {
	case groupID != nil && memberID != nil:
		assignments, err = h.Schedule.ListByGroupAndMember(r.Context(), *groupID, *memberID)
	case groupID != nil:
		assignments, err = h.Schedule.ListByGroup(r.Context(), *groupID)
	case memberID != nil:
		assignments, err = h.Schedule.ListByMember(r.Context(), *memberID)
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "group_id or member_id is required")
		return
	}
	if err != nil {
		h.log.InternalError("schedule.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]assignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, toAssignmentResponse(assignment))
	}
	writeJSON(w, http.StatusOK, assignmentListResponse{Items: items})
}
