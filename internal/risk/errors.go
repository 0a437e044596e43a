package risk

import "errors"

// ErrUnrecognizedRiskLevel is returned when a verdict carries a risk level
// outside Low, Medium, High.
var ErrUnrecognizedRiskLevel = errors.New("unrecognized risk level")
