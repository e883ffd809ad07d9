package slots

import (
	"fmt"
	"strconv"
	"strings"

	"kasmoni-app-go/internal/domain/month"
)

// Ref identifies a slot either by the id of an existing row or by the composite
// (group, member, month) triple of a slot that has not been materialized yet.
type Ref struct {
	slotID    int64
	groupID   int64
	memberID  int64
	monthDate month.Month
	composite bool
}

func RefFromID(slotID int64) Ref {
	return Ref{slotID: slotID}
}

func RefFromComposite(groupID, memberID int64, monthDate month.Month) Ref {
	return Ref{
		groupID:   groupID,
		memberID:  memberID,
		monthDate: monthDate,
		composite: true,
	}
}

func (r Ref) IsComposite() bool {
	return r.composite
}

func (r Ref) SlotID() (int64, bool) {
	if r.composite {
		return 0, false
	}
	return r.slotID, true
}

func (r Ref) Composite() (groupID, memberID int64, monthDate month.Month, ok bool) {
	if !r.composite {
		return 0, 0, month.Month{}, false
	}
	return r.groupID, r.memberID, r.monthDate, true
}

// FormValue renders the composite identity in the underscore-joined form the
// payment form carries before a slot row exists: "{groupId}_{memberId}_{monthDate}".
func FormValue(groupID, memberID int64, monthDate month.Month) string {
	return fmt.Sprintf("%d_%d_%s", groupID, memberID, monthDate)
}

// ParseRef reads a form slot value: either a bare numeric slot id or an
// underscore-joined composite value.
func ParseRef(value string) (Ref, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Ref{}, fmt.Errorf("slot is required")
	}

	if !strings.Contains(value, "_") {
		slotID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid slot id %q", value)
		}
		return RefFromID(slotID), nil
	}

	parts := strings.SplitN(value, "_", 3)
	if len(parts) != 3 {
		return Ref{}, fmt.Errorf("invalid slot value %q", value)
	}

	groupID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid group id in slot value %q", value)
	}
	memberID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid member id in slot value %q", value)
	}
	monthDate, err := month.Parse(parts[2])
	if err != nil {
		return Ref{}, fmt.Errorf("invalid month in slot value %q", value)
	}

	return RefFromComposite(groupID, memberID, monthDate), nil
}

// SlotKey is the map key used to test whether a (group, member, month) slot has
// any payment: "{groupId}-{memberId}-{monthDate}".
func SlotKey(groupID, memberID int64, monthDate month.Month) string {
	return fmt.Sprintf("%d-%d-%s", groupID, memberID, monthDate)
}

// PaymentKey is the set key used in bulk selection to skip combinations that
// already have a payment: "{memberId}-{groupId}-{slotId}".
func PaymentKey(memberID, groupID, slotID int64) string {
	return fmt.Sprintf("%d-%d-%d", memberID, groupID, slotID)
}
