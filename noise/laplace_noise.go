//
// Copyright 2024 The MatMech Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package noise

import (
	"fmt"
	"math"

	"github.com/linearquery/matmech/checks"
	"github.com/linearquery/matmech/rand"
)

// granularityParam determines the resolution of the numerical noise that is
// being generated relative to the L_1 sensitivity and privacy parameter
// epsilon. Larger values result in more fine grained noise, but increase the
// chance of sampling inaccuracies due to overflows.
//
// This parameter should be a power of 2.
var granularityParam = math.Exp2(40)

type laplace struct{}

// Laplace returns a Noise instance that adds zero-mean Laplace noise of
// scale l1Sensitivity/ε to its input.
//
// The Laplace noise is based on a geometric sampling mechanism over a
// discrete grid, which is robust against unintentional privacy leaks due to
// artifacts of floating point arithmetic and draws all of its randomness
// from a cryptographically secure source.
func Laplace() Noise {
	return laplace{}
}

// AddNoiseFloat64 adds Laplace noise to the specified float64 x so that the
// output is ε-differentially private given the L_1 sensitivity of the query.
func (laplace) AddNoiseFloat64(x float64, epsilon, l1Sensitivity float64) (float64, error) {
	if err := checkArgsLaplace(epsilon, l1Sensitivity); err != nil {
		return 0, fmt.Errorf("AddNoiseFloat64: %w", err)
	}
	return addLaplaceFloat64(x, epsilon, l1Sensitivity), nil
}

// AddNoiseFloat64Slice adds independent Laplace noise to every coordinate of
// xs so that the released vector is ε-differentially private given the L_1
// sensitivity of the vector-valued query.
func (laplace) AddNoiseFloat64Slice(xs []float64, epsilon, l1Sensitivity float64) ([]float64, error) {
	if err := checkArgsLaplace(epsilon, l1Sensitivity); err != nil {
		return nil, fmt.Errorf("AddNoiseFloat64Slice: %w", err)
	}
	noised := make([]float64, len(xs))
	for i, x := range xs {
		noised[i] = addLaplaceFloat64(x, epsilon, l1Sensitivity)
	}
	return noised, nil
}

func (laplace) String() string {
	return "Laplace Noise"
}

func checkArgsLaplace(epsilon, l1Sensitivity float64) error {
	if err := checks.CheckEpsilonVeryStrict(epsilon); err != nil {
		return err
	}
	return checks.CheckSensitivity(l1Sensitivity)
}

// addLaplaceFloat64 adds Laplace noise scaled to the given epsilon and
// l1Sensitivity to the specified float64. A sensitivity of 0 degenerates the
// noise distribution to a point mass at 0, so x is returned unchanged.
func addLaplaceFloat64(x, epsilon, l1Sensitivity float64) float64 {
	if l1Sensitivity == 0 {
		return x
	}
	granularity := ceilPowerOfTwo((l1Sensitivity / epsilon) / granularityParam)
	sample := twoSidedGeometric(granularity * epsilon / (l1Sensitivity + granularity))
	return roundToMultipleOfPowerOfTwo(x, granularity) + float64(sample)*granularity
}

// geometric draws a sample drawn from a geometric distribution with
// parameter
//
//	p = 1 - e^-λ.
//
// More precisely, it returns the number of Bernoulli trials until the first
// success where the success probability is p = 1 - e^-λ. The returned sample
// is truncated to the max int64 value.
//
// Note that to ensure that a truncation happens with probability less than
// 10⁻⁶, λ must be greater than 2⁻⁵⁹.
func geometric(lambda float64) int64 {
	// Return truncated sample in the case that the sample exceeds the max int64.
	if rand.Uniform() > -1.0*math.Expm1(-1.0*lambda*math.MaxInt64) {
		return math.MaxInt64
	}

	// Perform a binary search for the sample in the interval from 1 to max
	// int64. Each iteration splits the interval in two and randomly keeps
	// either the left or the right subinterval depending on the respective
	// probability of the sample being contained in them. The search ends once
	// the interval only contains a single sample.
	var left int64 = 0              // exclusive bound
	var right int64 = math.MaxInt64 // inclusive bound

	for left+1 < right {
		// Compute a midpoint that divides the probability mass of the current
		// interval approximately evenly between the left and right subinterval.
		// The resulting midpoint will be less or equal to the arithmetic mean
		// of the interval. This reduces the expected number of iterations of
		// the binary search compared to a search that uses the arithmetic mean
		// as a midpoint. The speed up is more pronounced the higher the
		// success probability p is.
		mid := left - int64(math.Floor((math.Log(0.5)+math.Log1p(math.Exp(lambda*float64(left-right))))/lambda))
		// Ensure that mid is contained in the search interval. This is a
		// safeguard to account for potential mathematical inaccuracies due to
		// finite precision arithmetic.
		if mid <= left {
			mid = left + 1
		} else if mid >= right {
			mid = right - 1
		}

		// Probability that the sample is at most mid, i.e.,
		//   q = Pr[X ≤ mid | left < X ≤ right]
		// where X denotes the sample. The value of q should be approximately
		// one half.
		q := math.Expm1(lambda*float64(left-mid)) / math.Expm1(lambda*float64(left-right))
		if rand.Uniform() <= q {
			right = mid
		} else {
			left = mid
		}
	}
	return right
}

// twoSidedGeometric draws a sample from a geometric distribution that is
// mirrored at 0. The non-negative part of the distribution's PDF matches
// the PDF of a geometric distribution of parameter p = 1 - e^-λ that is
// shifted to the left by 1 and scaled accordingly.
func twoSidedGeometric(lambda float64) int64 {
	var sample int64 = 0
	var sign int64 = -1
	// Keep a sample of 0 only if the sign is positive. Otherwise, the
	// probability of 0 would be twice as high as it should be.
	for sample == 0 && sign == -1 {
		sample = geometric(lambda) - 1
		sign = int64(rand.Sign())
	}
	return sample * sign
}
