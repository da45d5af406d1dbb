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

// Package matmech implements the matrix mechanism for answering workloads of
// linear counting queries over a fixed discrete domain under ε-differential
// privacy: a strategy query set is measured under calibrated Laplace noise,
// a least-squares estimate of the data vector is reconstructed from the
// noisy measurements, and the workload answers are read off the estimate.
package matmech

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/linearquery/matmech/checks"
	"github.com/linearquery/matmech/noise"
)

// Mechanism answers a fixed workload of linear queries through a fixed
// strategy under ε-differential privacy. Each call to Answer spends the full
// budget ε on one noisy measurement of the strategy queries; the
// least-squares reconstruction is deterministic post-processing and consumes
// no additional budget.
//
// A Mechanism is immutable after construction and safe for concurrent use.
type Mechanism struct {
	epsilon             float64
	workload            *mat.Dense
	strategy            *mat.Dense
	pinvStrategy        *mat.Dense
	strategySensitivity float64
	domainSize          int
	noise               noise.Noise
}

// MechanismOptions contains the options necessary to initialize a Mechanism.
type MechanismOptions struct {
	Epsilon  float64    // Privacy budget ε spent by each call to Answer. Required.
	Workload mat.Matrix // Queries whose accurate answers are wanted. Required.
	Strategy mat.Matrix // Queries measured under noise; must share the workload's domain. Required.
	Noise    noise.Noise // Noise distribution. Defaults to Laplace noise.
}

// NewMechanism returns a Mechanism answering the given workload through the
// given strategy. The input matrices are copied, so later modification of
// the originals does not affect the mechanism.
func NewMechanism(opt *MechanismOptions) (*Mechanism, error) {
	if opt == nil {
		opt = &MechanismOptions{} // Prevents panicking due to a nil pointer dereference.
	}
	if err := checkWorkloadStrategyShapes(opt.Workload, opt.Strategy); err != nil {
		return nil, fmt.Errorf("NewMechanism: %w", err)
	}
	// Answer draws noise, so the sampler's stricter lower bound on ε
	// applies and is enforced up front.
	if err := checks.CheckEpsilonVeryStrict(opt.Epsilon); err != nil {
		return nil, fmt.Errorf("NewMechanism: %w", err)
	}
	n := opt.Noise
	if n == nil {
		n = noise.Laplace()
	}
	strategy := mat.DenseCopyOf(opt.Strategy)
	sensitivity, err := L1Sensitivity(strategy)
	if err != nil {
		return nil, fmt.Errorf("NewMechanism: %w", err)
	}
	pinvStrategy, err := pseudoInverse(strategy)
	if err != nil {
		return nil, fmt.Errorf("NewMechanism: %w", err)
	}
	_, cols := strategy.Dims()
	return &Mechanism{
		epsilon:             opt.Epsilon,
		workload:            mat.DenseCopyOf(opt.Workload),
		strategy:            strategy,
		pinvStrategy:        pinvStrategy,
		strategySensitivity: sensitivity,
		domainSize:          cols,
		noise:               n,
	}, nil
}

// Answer measures the strategy queries on the data vector x under noise,
// reconstructs a least-squares estimate of x from the noisy measurements,
// and returns the workload answers computed on the estimate. The release is
// ε-differentially private.
func (m *Mechanism) Answer(x []float64) ([]float64, error) {
	if err := checks.CheckVectorLen(len(x), m.domainSize); err != nil {
		return nil, fmt.Errorf("Answer: %w", err)
	}
	strategyRows, _ := m.strategy.Dims()
	var measurements mat.VecDense
	measurements.MulVec(m.strategy, mat.NewVecDense(len(x), x))
	raw := make([]float64, strategyRows)
	for i := range raw {
		raw[i] = measurements.AtVec(i)
	}
	noisy, err := m.noise.AddNoiseFloat64Slice(raw, m.epsilon, m.strategySensitivity)
	if err != nil {
		return nil, fmt.Errorf("Answer: %w", err)
	}

	// x̂ = pinv(A)·y is the least-squares estimate minimizing ‖A·x̂ - y‖₂.
	var estimate mat.VecDense
	estimate.MulVec(m.pinvStrategy, mat.NewVecDense(len(noisy), noisy))

	var answers mat.VecDense
	answers.MulVec(m.workload, &estimate)
	workloadRows, _ := m.workload.Dims()
	out := make([]float64, workloadRows)
	for i := range out {
		out[i] = answers.AtVec(i)
	}
	return out, nil
}

// ExpectedTotalError returns the expected total squared error of the answers
// produced by this mechanism, equal to
// TotalError(workload, strategy, epsilon).
func (m *Mechanism) ExpectedTotalError() float64 {
	var reconstruction mat.Dense
	reconstruction.Mul(m.workload, m.pinvStrategy)
	frobenius := mat.Norm(&reconstruction, 2)
	scale := m.strategySensitivity / m.epsilon
	return 2 * scale * scale * frobenius * frobenius
}

// Answer runs the matrix mechanism once: it measures the strategy a on the
// data vector x under Laplace noise with privacy budget ε and returns the
// reconstructed answers to the workload w. Callers answering several data
// vectors with the same workload and strategy should construct a Mechanism
// instead to reuse the pseudo-inverse.
func Answer(x []float64, w, a mat.Matrix, epsilon float64) ([]float64, error) {
	m, err := NewMechanism(&MechanismOptions{
		Epsilon:  epsilon,
		Workload: w,
		Strategy: a,
	})
	if err != nil {
		return nil, err
	}
	return m.Answer(x)
}

// LaplaceMechanism answers the workload w on the data vector x directly,
// adding Laplace noise calibrated to the workload's own sensitivity and the
// privacy budget ε. This is the baseline the matrix mechanism improves on
// whenever a strategy with lower total error exists.
func LaplaceMechanism(w mat.Matrix, x []float64, epsilon float64) ([]float64, error) {
	if w == nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w: workload matrix is nil", checks.ErrInvalidParameter)
	}
	rows, cols := w.Dims()
	if err := checks.CheckMatrixNonEmpty(rows, cols, "Workload"); err != nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w", err)
	}
	if err := checks.CheckVectorLen(len(x), cols); err != nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w", err)
	}
	if err := checks.CheckEpsilonVeryStrict(epsilon); err != nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w", err)
	}
	sensitivity, err := L1Sensitivity(w)
	if err != nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w", err)
	}
	var answers mat.VecDense
	answers.MulVec(w, mat.NewVecDense(len(x), x))
	raw := make([]float64, rows)
	for i := range raw {
		raw[i] = answers.AtVec(i)
	}
	noisy, err := noise.Laplace().AddNoiseFloat64Slice(raw, epsilon, sensitivity)
	if err != nil {
		return nil, fmt.Errorf("LaplaceMechanism: %w", err)
	}
	return noisy, nil
}
