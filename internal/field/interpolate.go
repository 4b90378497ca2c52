package field

// Interpolate returns where the iso level 1 falls between two samples a and b,
// as a fraction of the way from a to b. It is ±Inf or NaN when a == b.
func Interpolate(a, b float64) float64 {
	return (1 - a) / (b - a)
}
