package services

import (
	"fmt"
	"math/rand"
)

// CookingTimeEstimator produces the cooking time of a freshly created order line
type CookingTimeEstimator interface {
	Estimate() int
}

// EstimatorFunc adapts a plain function to CookingTimeEstimator
type EstimatorFunc func() int

func (f EstimatorFunc) Estimate() int { return f() }

// RandomEstimator draws a uniformly distributed estimate from [Min, Max]
type RandomEstimator struct {
	Min int
	Max int
}

// NewRandomEstimator validates the bounds and returns an estimator over them
func NewRandomEstimator(min, max int) (*RandomEstimator, error) {
	if min < 0 || min > max {
		return nil, fmt.Errorf("%w: cooking time range [%d, %d] is invalid", ErrInvalidRequest, min, max)
	}
	return &RandomEstimator{Min: min, Max: max}, nil
}

func (e *RandomEstimator) Estimate() int {
	return e.Min + rand.Intn(e.Max-e.Min+1)
}
