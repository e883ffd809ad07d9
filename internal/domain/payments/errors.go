package payments

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("payment already exists for this slot")
	ErrGroupInactive    = errors.New("group is not active for the payment month")
	ErrBankRequired     = errors.New("sender and receiver bank are required for bank transfers")
)
