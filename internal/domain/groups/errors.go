package groups

import "errors"

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupHasPayments = errors.New("group has payments")
	ErrInvalidDateRange = errors.New("start date is after end date")
)
