package asset

import (
	"errors"
	"fmt"
)

// Errors returned by the package. Returned errors wrap one of these
// values together with the operands involved, test them with [errors.Is].
var (
	ErrFormat         = errors.New("invalid format")
	ErrRange          = errors.New("amount out of range")
	ErrOverflow       = fmt.Errorf("%w: overflow", ErrRange)
	ErrUnderflow      = fmt.Errorf("%w: underflow", ErrRange)
	ErrSymbolMismatch = errors.New("symbol mismatch")
	ErrOwnerMismatch  = errors.New("owner mismatch")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidSymbol  = errors.New("invalid symbol")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// rangeErr picks the overflow or underflow error by the sign
// of the value that did not fit.
func rangeErr(sign int) error {
	if sign < 0 {
		return ErrUnderflow
	}
	return ErrOverflow
}
