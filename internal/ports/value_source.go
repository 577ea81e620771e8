package ports

// ValueSource supplies bounded values for the simulated metric endpoints.
// The production implementation is pseudo-random; tests inject a fixed seed.
type ValueSource interface {
	// Integer in [min, max], inclusive on both ends.
	IntBetween(min, max int) int
	// Float in [min, max).
	FloatBetween(min, max float64) float64
	// One of the given choices.
	Pick(choices ...string) string
}
