package genetic

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDomain is matched by every EmptyDomainError
	ErrEmptyDomain = errors.New("empty candidate domain")
	// ErrInvariantViolation is matched by every InvariantViolationError
	ErrInvariantViolation = errors.New("invariant violation")
)

// EmptyDomainError reports a gene constructed without candidates
type EmptyDomainError struct {
	// Slot is the gene position when known, -1 otherwise
	Slot int
}

func (e *EmptyDomainError) Error() string {
	if e.Slot < 0 {
		return "gene has an empty candidate domain"
	}
	return fmt.Sprintf("gene %d has an empty candidate domain", e.Slot)
}

func (e *EmptyDomainError) Is(target error) bool {
	return target == ErrEmptyDomain
}

// InvariantViolationError reports inputs that break a structural precondition
// of an operator, such as a chromosome too short to cut or parents from different lineages
type InvariantViolationError struct {
	Op     string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}

func invariantf(op, format string, args ...any) error {
	return &InvariantViolationError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
