package banks

import "errors"

var (
	ErrBankNotFound  = errors.New("bank not found")
	ErrBankNameTaken = errors.New("bank name already exists")
	ErrBankInUse     = errors.New("bank is referenced by payments")
)
