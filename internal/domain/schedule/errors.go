package schedule

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentExists   = errors.New("member already assigned for this month")
)
