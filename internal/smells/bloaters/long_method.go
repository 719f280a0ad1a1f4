package bloaters

import (
	"smell-bot/internal/model"
	"smell-bot/internal/smells"
)

// LongMethodDetector tags methods whose effective body length exceeds the threshold
type LongMethodDetector struct{}

// NewLongMethodDetector creates a new long method detector
func NewLongMethodDetector() *LongMethodDetector {
	return &LongMethodDetector{}
}

func (d *LongMethodDetector) Name() string {
	return "long_method_detector"
}

func (d *LongMethodDetector) SmellType() model.CodeSmellName {
	return model.LongMethod
}

// Detect appends LONG_METHOD to every method with more than threshold effective body lines
func (d *LongMethodDetector) Detect(methods []*model.MethodFact, threshold int) error {
	if err := smells.ValidateBatch(methods); err != nil {
		return err
	}

	for _, method := range methods {
		if exceeds(EffectiveLineCount(method.Body), threshold) {
			method.AddCodeSmell(model.LongMethod)
		}
	}

	return nil
}
