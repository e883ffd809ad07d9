package members

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInUse    = errors.New("member has assignments or payments")
)
