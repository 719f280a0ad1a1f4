package bloaters

import (
	"smell-bot/internal/model"
	"smell-bot/internal/smells"
)

// LongParameterListDetector tags methods that declare more parameters than the threshold
type LongParameterListDetector struct{}

// NewLongParameterListDetector creates a new long parameter list detector
func NewLongParameterListDetector() *LongParameterListDetector {
	return &LongParameterListDetector{}
}

func (d *LongParameterListDetector) Name() string {
	return "long_parameter_list_detector"
}

func (d *LongParameterListDetector) SmellType() model.CodeSmellName {
	return model.LongParameterMethod
}

// Detect appends LONG_PARAMETER_METHOD to every method with more than threshold parameters
func (d *LongParameterListDetector) Detect(methods []*model.MethodFact, threshold int) error {
	if err := smells.ValidateBatch(methods); err != nil {
		return err
	}

	for _, method := range methods {
		if exceeds(method.ParameterCount(), threshold) {
			method.AddCodeSmell(model.LongParameterMethod)
		}
	}

	return nil
}
