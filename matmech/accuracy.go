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

package matmech

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/linearquery/matmech/checks"
)

// TotalError returns the expected total squared error of answering the
// workload w through the strategy a under the Laplace mechanism with privacy
// budget ε:
//
//	2 · (L1Sensitivity(a)/ε)² · ‖w·pinv(a)‖_F²
//
// Independent Laplace noise of scale L1Sensitivity(a)/ε on each strategy
// measurement has variance 2·(L1Sensitivity(a)/ε)² per coordinate, and the
// reconstruction map w·pinv(a) propagates it linearly.
//
// If a does not have full column rank within the pseudo-inverse tolerance,
// TotalError returns +Inf with a nil error: a strategy that cannot
// reconstruct every domain cell has unbounded error, and the sentinel keeps
// it comparable when ranking candidate strategies.
func TotalError(w, a mat.Matrix, epsilon float64) (float64, error) {
	if err := checkWorkloadStrategyShapes(w, a); err != nil {
		return 0, fmt.Errorf("TotalError: %w", err)
	}
	if err := checks.CheckEpsilonStrict(epsilon); err != nil {
		return 0, fmt.Errorf("TotalError: %w", err)
	}
	sensitivity, err := L1Sensitivity(a)
	if err != nil {
		return 0, fmt.Errorf("TotalError: %w", err)
	}
	pinvA, err := pseudoInverse(a)
	if err != nil {
		if errors.Is(err, checks.ErrSingularStrategy) {
			return math.Inf(1), nil
		}
		return 0, fmt.Errorf("TotalError: %w", err)
	}
	var reconstruction mat.Dense
	reconstruction.Mul(w, pinvA)
	frobenius := mat.Norm(&reconstruction, 2)
	scale := sensitivity / epsilon
	return 2 * scale * scale * frobenius * frobenius, nil
}

// LaplaceTotalError returns the expected total squared error of answering
// the m-row workload w directly under the Laplace mechanism with privacy
// budget ε, i.e. with the workload itself as the strategy:
//
//	2 · (L1Sensitivity(w)/ε)² · m
func LaplaceTotalError(w mat.Matrix, epsilon float64) (float64, error) {
	if err := checks.CheckEpsilonStrict(epsilon); err != nil {
		return 0, fmt.Errorf("LaplaceTotalError: %w", err)
	}
	sensitivity, err := L1Sensitivity(w)
	if err != nil {
		return 0, fmt.Errorf("LaplaceTotalError: %w", err)
	}
	rows, _ := w.Dims()
	scale := sensitivity / epsilon
	return 2 * scale * scale * float64(rows), nil
}

func checkWorkloadStrategyShapes(w, a mat.Matrix) error {
	if w == nil {
		return fmt.Errorf("%w: workload matrix is nil", checks.ErrInvalidParameter)
	}
	if a == nil {
		return fmt.Errorf("%w: strategy matrix is nil", checks.ErrInvalidParameter)
	}
	wRows, wCols := w.Dims()
	if err := checks.CheckMatrixNonEmpty(wRows, wCols, "Workload"); err != nil {
		return err
	}
	aRows, aCols := a.Dims()
	if err := checks.CheckMatrixNonEmpty(aRows, aCols, "Strategy"); err != nil {
		return err
	}
	return checks.CheckColumnsMatch("Workload", wCols, "Strategy", aCols)
}
