package recurrence

// Limits bounds occurrence generation. The values are product choices, not
// derived constraints, so they stay configurable instead of being hard-coded
// in the expansion loop.
type Limits struct {
	// MaxOccurrences aborts generation when a rule would emit more dates
	// than this. Hitting it means the rule is misconfigured: no realistic
	// duration/cadence combination reaches it.
	MaxOccurrences int

	// DefaultDurationMonths is applied when a rule omits its duration.
	DefaultDurationMonths int
}

// DefaultLimits matches the behaviour of the shipped application.
var DefaultLimits = Limits{
	MaxOccurrences:        1000,
	DefaultDurationMonths: 12,
}
