// Package stats provides betting statistics: odds conversions, expected
// value, and Kelly criterion stake sizing.
package stats

import (
	"fmt"

	apperrors "kalshi-trader/internal/errors"
)

// Calculator computes betting statistics around a single current-odds value.
//
// Derived values (American odds, expected value, optimal bet size) are cached
// on the instance after each call and start out uncomputed; accessing them
// before the corresponding computation fails with ErrUninitialized. A single
// Calculator is not safe for concurrent use.
type Calculator struct {
	currentOdds float64 // win probability, expected domain [0, 1]

	americanOdds   float64
	hasAmerican    bool
	expectedValue  float64
	hasEV          bool
	optimalBetSize float64
	hasBetSize     bool
}

// NewCalculator creates a calculator for the given current odds, expressed as
// an implied win probability in [0, 1]. The range is the caller's
// responsibility and is not validated here.
func NewCalculator(currentOdds float64) *Calculator {
	return &Calculator{currentOdds: currentOdds}
}

// CurrentOdds returns the probability the calculator was built with.
func (c *Calculator) CurrentOdds() float64 {
	return c.currentOdds
}

// ImpliedProbabilityToAmerican converts an implied probability to American
// odds and caches the result as the instance's current American odds.
//
// Probabilities below 0.5 take the underdog branch (positive odds); the rest
// take the favorite branch (negative odds). Degenerate probabilities 0 and 1
// divide by zero and fail with a domain error.
func (c *Calculator) ImpliedProbabilityToAmerican(probability float64) (float64, error) {
	var american float64
	if probability < 0.5 {
		if probability == 0 {
			return 0, apperrors.NewDomainError("implied_probability_to_american", "probability 0 has no odds representation")
		}
		american = (100 / probability) - 100
	} else {
		if probability == 1 {
			return 0, apperrors.NewDomainError("implied_probability_to_american", "probability 1 has no odds representation")
		}
		american = -(100 * probability) / (1 - probability)
	}
	c.americanOdds = american
	c.hasAmerican = true
	return american, nil
}

// AmericanToDecimal converts American odds to decimal odds.
// American odds of exactly zero are undefined and fail with a domain error.
func (c *Calculator) AmericanToDecimal(americanOdds float64) (float64, error) {
	if americanOdds > 0 {
		return 1 + americanOdds/100, nil
	}
	if americanOdds == 0 {
		return 0, apperrors.NewDomainError("american_to_decimal", "american odds of 0 are undefined")
	}
	return 1 + 100/(-americanOdds), nil
}

// AmericanToNet converts American odds to net odds, the profit multiple per
// unit stake on a win. Pure; nothing is cached.
func (c *Calculator) AmericanToNet(americanOdds float64) (float64, error) {
	decimal, err := c.AmericanToDecimal(americanOdds)
	if err != nil {
		return 0, err
	}
	return decimal - 1, nil
}

// ExpectedValue computes the expected profit of staking stake at the given
// American odds with the given win probability, and caches it.
//
// The probability range is not validated; the documented domain is [0, 1].
func (c *Calculator) ExpectedValue(probability, americanOdds, stake float64) (float64, error) {
	net, err := c.AmericanToNet(americanOdds)
	if err != nil {
		return 0, err
	}
	ev := probability*net*stake - (1-probability)*stake
	c.expectedValue = ev
	c.hasEV = true
	return ev, nil
}

// KellyCriterion computes the optimal fraction of bankroll to stake, using
// the instance's current odds as win probability and its cached American
// odds. The fraction is floored at zero: a negative Kelly stake means the
// edge is gone and the signal is "don't bet".
//
// ImpliedProbabilityToAmerican must have been called first, otherwise the
// cached odds are uncomputed and this fails with ErrUninitialized.
func (c *Calculator) KellyCriterion() (float64, error) {
	if !c.hasAmerican {
		return 0, fmt.Errorf("kelly_criterion: american odds not computed: %w", apperrors.ErrUninitialized)
	}
	probWin := c.currentOdds
	probLoss := 1 - probWin
	net, err := c.AmericanToNet(c.americanOdds)
	if err != nil {
		return 0, err
	}
	if net == 0 {
		return 0, apperrors.NewDomainError("kelly_criterion", "net odds of 0 admit no stake sizing")
	}
	size := (net*probWin - probLoss) / net
	if size < 0 {
		size = 0
	}
	c.optimalBetSize = size
	c.hasBetSize = true
	return size, nil
}

// AmericanOdds returns the cached American odds from the last conversion.
func (c *Calculator) AmericanOdds() (float64, error) {
	if !c.hasAmerican {
		return 0, fmt.Errorf("american odds: %w", apperrors.ErrUninitialized)
	}
	return c.americanOdds, nil
}

// LastExpectedValue returns the cached result of the last ExpectedValue call.
func (c *Calculator) LastExpectedValue() (float64, error) {
	if !c.hasEV {
		return 0, fmt.Errorf("expected value: %w", apperrors.ErrUninitialized)
	}
	return c.expectedValue, nil
}

// OptimalBetSize returns the cached result of the last KellyCriterion call.
func (c *Calculator) OptimalBetSize() (float64, error) {
	if !c.hasBetSize {
		return 0, fmt.Errorf("optimal bet size: %w", apperrors.ErrUninitialized)
	}
	return c.optimalBetSize, nil
}
