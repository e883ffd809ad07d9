package handler

import (
	"net/http"
	"time"

	activitydomain "kasmoni-app-go/internal/domain/activity"
)

type activityEntryResponse struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type activityListResponse struct {
	Items []activityEntryResponse `json:"items"`
	Total int64                   `json:"total"`
}

func (h *Handlers) ListActivity(w http.ResponseWriter, r *http.Request) {
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

	entries, total, err := h.Activity.List(r.Context(), activitydomain.ListFilter{
		EntityType: query.Get("entity_type"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.log.InternalError("activity.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]activityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, activityEntryResponse{
			ID:         entry.ID,
			Actor:      entry.Actor,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Detail:     entry.Detail,
			CreatedAt:  entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, activityListResponse{Items: items, Total: total})
}
