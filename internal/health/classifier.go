package health

// Tolerance bands applied to the declared normal range. Each bound is scaled
// on its own, not by the width of the range.
const (
	criticalLowFactor  = 0.9
	criticalHighFactor = 1.1
	warningLowFactor   = 0.95
	warningHighFactor  = 1.05
)

// Classify maps a measurement to a status using the tolerance bands around
// [rangeMin, rangeMax]. Values exactly on a band edge fall into the milder status.
func Classify(value, rangeMin, rangeMax float64) MetricStatus {
	if value < rangeMin*criticalLowFactor || value > rangeMax*criticalHighFactor {
		return StatusCritical
	}
	if value < rangeMin*warningLowFactor || value > rangeMax*warningHighFactor {
		return StatusWarning
	}
	return StatusNormal
}
