package retrieve

import "github.com/jviciana84/prod-sub002/pkg/normalize"

// Strategy names reported in domain.Comparables.Strategy.
const (
	StrategyExactVariant = "exact_variant"
	StrategyVersionToken = "version_token"
	StrategyNone         = "none"
)

// Strategy is one way of turning a vehicle's model variants into search
// terms. Strategies are tried in order; the first one that finds listings
// wins.
type Strategy struct {
	Name string
	// Applies reports whether the strategy has anything to search for.
	Applies func(variants []string) bool
	// Terms returns the search terms in the order they should be tried.
	Terms func(variants []string) []string
}

// DefaultStrategies tries each normalized variant of the model text first,
// then falls back to bare engine-version tokens such as "320d".
func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name:    StrategyExactVariant,
			Applies: func(variants []string) bool { return len(variants) > 0 },
			Terms:   func(variants []string) []string { return variants },
		},
		{
			Name: StrategyVersionToken,
			Applies: func(variants []string) bool {
				return len(normalize.VersionTokens(variants)) > 0
			},
			Terms: normalize.VersionTokens,
		},
	}
}
