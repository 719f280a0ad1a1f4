package smells

import (
	"smell-bot/internal/model"
)

// Detector is the capability shared by all batch smell detectors
type Detector interface {
	// Name returns the unique identifier for this detector
	Name() string

	// SmellType returns the tag this detector appends on violation
	SmellType() model.CodeSmellName

	// Detect evaluates every method against the threshold and appends
	// SmellType to each violating method. It must fail with
	// ErrInvalidArgument before mutating anything if the batch or any
	// element is nil.
	Detect(methods []*model.MethodFact, threshold int) error
}

// Binding pairs a detector with the threshold it is evaluated against
type Binding struct {
	Detector  Detector
	Threshold int
}
