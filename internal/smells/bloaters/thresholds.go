package bloaters

// Default bloater thresholds
const (
	// Maximum effective body lines before a method is long
	DefaultLongMethodThreshold = 10

	// Maximum parameters before a parameter list is long
	DefaultLongParameterThreshold = 4
)

// exceeds implements the inclusive ceiling shared by all bloater rules:
// a value equal to the threshold is not a violation.
func exceeds(value, threshold int) bool {
	return value > threshold
}
