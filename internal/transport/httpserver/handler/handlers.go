package handler

import (
	"context"
	"net/http"
	"strconv"

	activitydomain "kasmoni-app-go/internal/domain/activity"
	banksdomain "kasmoni-app-go/internal/domain/banks"
	groupsdomain "kasmoni-app-go/internal/domain/groups"
	membersdomain "kasmoni-app-go/internal/domain/members"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
	reportsdomain "kasmoni-app-go/internal/domain/reports"
	scheduledomain "kasmoni-app-go/internal/domain/schedule"
	slotsdomain "kasmoni-app-go/internal/domain/slots"
	usersdomain "kasmoni-app-go/internal/domain/users"
	"kasmoni-app-go/internal/transport/httpserver/middleware"
	"kasmoni-app-go/pkg/logger"
)

type Handlers struct {
	Groups   *groupsdomain.Service
	Members  *membersdomain.Service
	Banks    *banksdomain.Service
	Schedule *scheduledomain.Service
	Slots    *slotsdomain.Service
	Payments *paymentsdomain.Service
	Reports  *reportsdomain.Service
	Activity *activitydomain.Service
	Users    *usersdomain.Service
	log      logger.Logger
}

func New(
	groups *groupsdomain.Service,
	members *membersdomain.Service,
	banks *banksdomain.Service,
	schedule *scheduledomain.Service,
	slots *slotsdomain.Service,
	payments *paymentsdomain.Service,
	reports *reportsdomain.Service,
	activity *activitydomain.Service,
	users *usersdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Groups:   groups,
		Members:  members,
		Banks:    banks,
		Schedule: schedule,
		Slots:    slots,
		Payments: payments,
		Reports:  reports,
		Activity: activity,
		Users:    users,
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordActivity writes an audit entry attributed to the request's user.
func (h *Handlers) recordActivity(ctx context.Context, action, entityType string, entityID int64, detail string) {
	actor := ""
	if user, ok := middleware.UserFromContext(ctx); ok {
		actor = user.Email
	}
	h.Activity.Record(ctx, activitydomain.RecordInput{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   strconv.FormatInt(entityID, 10),
		Detail:     detail,
	})
}
