package bloaters

import (
	"smell-bot/internal/model"
	"smell-bot/internal/smells"

	"go.uber.org/zap"
)

// NewOrchestrator creates the bloater orchestrator. Long method detection
// always runs before long parameter list detection so that methods with both
// smells are tagged [LONG_METHOD, LONG_PARAMETER_METHOD].
func NewOrchestrator(logger *zap.Logger, thresholds model.Thresholds) *smells.Orchestrator {
	return smells.NewOrchestrator(logger,
		smells.Binding{Detector: NewLongMethodDetector(), Threshold: thresholds.LongMethod},
		smells.Binding{Detector: NewLongParameterListDetector(), Threshold: thresholds.LongParameter},
	)
}

// DefaultThresholds returns the default bloater thresholds
func DefaultThresholds() model.Thresholds {
	return model.Thresholds{
		LongMethod:    DefaultLongMethodThreshold,
		LongParameter: DefaultLongParameterThreshold,
	}
}
