package validator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailure matches every rejected submission.
	ErrValidationFailure = errors.New("block failed proof-of-work validation")
	// ErrStaleTemplate matches rejections where the block timestamp fell
	// outside the freshness window or too far in the future.
	ErrStaleTemplate = errors.New("block template is stale")
)

// ValidationError itemizes the checks a block failed.
type ValidationError struct {
	Index  uint64
	Failed []Check
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, c := range e.Failed {
		if c.Detail == "" {
			parts = append(parts, c.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", c.Name, c.Detail))
	}
	return fmt.Sprintf("block %d rejected: %s", e.Index, strings.Join(parts, "; "))
}

// Is matches ErrValidationFailure always and ErrStaleTemplate when the
// freshness check failed.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidationFailure:
		return true
	case ErrStaleTemplate:
		return e.failed(CheckFreshness)
	}
	return false
}

func (e *ValidationError) failed(name string) bool {
	for _, c := range e.Failed {
		if c.Name == name {
			return true
		}
	}
	return false
}
