package slots

import "errors"

var (
	ErrSlotNotFound = errors.New("payment slot not found")
	ErrSlotExists   = errors.New("payment slot already exists")
)
