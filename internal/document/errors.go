package document

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks an out-of-range argument from a caller that was
// required to clamp first. It never occurs in normal editing flows.
var ErrContractViolation = errors.New("document: contract violation")

// ContractError describes a contract violation.
type ContractError struct {
	Op    string
	Index int
	Limit int
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("document: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Limit)
}

// Unwrap lets errors.Is match ErrContractViolation.
func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}
