package stats

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: converting an implied probability to American odds and back
// through decimal odds recovers a consistent net-odds value, and the sign
// convention holds (underdogs positive, favorites negative).
func TestProperty_OddsConversionsAreConsistent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("American odds sign follows the pricing branch", prop.ForAll(
		func(probability float64) bool {
			calc := NewCalculator(probability)
			american, err := calc.ImpliedProbabilityToAmerican(probability)
			if err != nil {
				return false
			}
			if probability < 0.5 {
				return american > 0
			}
			return american < 0
		},
		gen.Float64Range(0.01, 0.99),
	))

	properties.Property("Net odds equal decimal odds minus one", prop.ForAll(
		func(probability float64) bool {
			calc := NewCalculator(probability)
			american, err := calc.ImpliedProbabilityToAmerican(probability)
			if err != nil {
				return false
			}
			decimal, err := calc.AmericanToDecimal(american)
			if err != nil {
				return false
			}
			net, err := calc.AmericanToNet(american)
			if err != nil {
				return false
			}
			return math.Abs(net-(decimal-1)) < 1e-12
		},
		gen.Float64Range(0.01, 0.99),
	))

	properties.Property("Kelly fraction stays within [0, 1)", prop.ForAll(
		func(probability float64) bool {
			calc := NewCalculator(probability)
			if _, err := calc.ImpliedProbabilityToAmerican(probability); err != nil {
				return false
			}
			size, err := calc.KellyCriterion()
			if err != nil {
				return false
			}
			return size >= 0 && size < 1
		},
		gen.Float64Range(0.01, 0.99),
	))

	properties.TestingRun(t)
}
