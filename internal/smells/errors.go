package smells

import (
	"errors"
	"fmt"

	"smell-bot/internal/model"
)

// ErrInvalidArgument indicates a nil method or nil batch was provided
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateBatch checks the batch and all its elements for nil
func ValidateBatch(methods []*model.MethodFact) error {
	if methods == nil {
		return fmt.Errorf("%w: methods must not be nil", ErrInvalidArgument)
	}
	for i, method := range methods {
		if method == nil {
			return fmt.Errorf("%w: method at index %d is nil", ErrInvalidArgument, i)
		}
	}
	return nil
}
