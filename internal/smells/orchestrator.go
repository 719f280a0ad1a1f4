package smells

import (
	"fmt"

	"smell-bot/internal/model"

	"go.uber.org/zap"
)

// Orchestrator runs a fixed, ordered set of detectors over method facts.
// It keeps no state between calls; the only side effect of a call is the
// tags appended to the facts passed in.
type Orchestrator struct {
	bindings []Binding
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator that runs the bindings in the given order
func NewOrchestrator(logger *zap.Logger, bindings ...Binding) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, b := range bindings {
		logger.Debug("Registered smell detector",
			zap.String("detector", b.Detector.Name()),
			zap.String("smell_type", string(b.Detector.SmellType())),
			zap.Int("threshold", b.Threshold))
	}
	return &Orchestrator{
		bindings: append([]Binding(nil), bindings...),
		logger:   logger,
	}
}

// Detect runs detection for a single method
func (o *Orchestrator) Detect(method *model.MethodFact) error {
	if method == nil {
		return fmt.Errorf("%w: method must not be nil", ErrInvalidArgument)
	}
	return o.DetectAll([]*model.MethodFact{method})
}

// DetectAll runs every detector once over the whole batch, in registration order
func (o *Orchestrator) DetectAll(methods []*model.MethodFact) error {
	if err := ValidateBatch(methods); err != nil {
		return err
	}

	for _, b := range o.bindings {
		o.logger.Debug("Running smell detector",
			zap.String("detector", b.Detector.Name()),
			zap.Int("threshold", b.Threshold),
			zap.Int("methods", len(methods)))

		if err := b.Detector.Detect(methods, b.Threshold); err != nil {
			return fmt.Errorf("detector %s failed: %w", b.Detector.Name(), err)
		}
	}

	return nil
}

// Get retrieves a detector by name
func (o *Orchestrator) Get(name string) (Detector, error) {
	for _, b := range o.bindings {
		if b.Detector.Name() == name {
			return b.Detector, nil
		}
	}
	return nil, fmt.Errorf("detector not found: %s", name)
}

// Bindings returns the registered detectors with their thresholds, in run order
func (o *Orchestrator) Bindings() []Binding {
	return append([]Binding(nil), o.bindings...)
}

// Thresholds returns the threshold bound to each smell type
func (o *Orchestrator) Thresholds() map[model.CodeSmellName]int {
	thresholds := make(map[model.CodeSmellName]int, len(o.bindings))
	for _, b := range o.bindings {
		thresholds[b.Detector.SmellType()] = b.Threshold
	}
	return thresholds
}
