package solver

// Config holds the tunables and constants the solver's caller provides
// (spec.md §6 "Configuration"). Beta/BetaSplitImpulse/Slop are named as
// constants in the spec but kept as Config fields (with DefaultConfig
// providing the spec's values) so callers and tests can override them
// without a package-level global, following Go idiom over C++'s static
// const members.
type Config struct {
	// RestitutionVelocityThreshold gates whether a contact point receives a
	// restitution bias: below this relative normal speed, a contact is
	// treated as resting and bounces are suppressed (spec.md §4.1 step 3).
	RestitutionVelocityThreshold float64

	// SplitImpulseActive switches on the second, independent velocity field
	// used only for positional correction (spec.md §4.3 step 3, step 8).
	SplitImpulseActive bool

	// Beta is the Baumgarte stabilization factor used when split impulse is
	// inactive.
	Beta float64

	// BetaSplitImpulse is the Baumgarte factor used when split impulse is
	// active.
	BetaSplitImpulse float64

	// Slop is the allowable penetration depth below which no position bias
	// is applied, to avoid jitter on persistent contacts.
	Slop float64
}

// DefaultConfig returns the constants named in spec.md §6.
func DefaultConfig() Config {
	return Config{
		RestitutionVelocityThreshold: 1.0,
		SplitImpulseActive:           true,
		Beta:                         0.2,
		BetaSplitImpulse:             0.2,
		Slop:                         0.01,
	}
}

// beta returns the Baumgarte factor that applies given whether split impulse
// is active (spec.md §4.3: "β = 0.2 (Baumgarte) or β_split = 0.2 (when split
// mode is active...)").
func (c Config) beta() float64 {
	if c.SplitImpulseActive {
		return c.BetaSplitImpulse
	}
	return c.Beta
}
