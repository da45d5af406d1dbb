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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/linearquery/matmech/checks"
)

// machineEpsilon is the difference between 1 and the next larger float64.
var machineEpsilon = math.Nextafter(1, 2) - 1

// pseudoInverse returns the Moore-Penrose pseudo-inverse of the k×n matrix a,
// computed from a thin singular value decomposition. Singular values below
//
//	max(k, n) · machineEpsilon · σ_max
//
// are treated as zero, the standard relative cutoff for rank determination.
// The least-squares reconstruction of the domain vector is only unique and
// unbiased when a has full column rank, so pseudoInverse reports any matrix
// of rank below n as singular via an error wrapping
// checks.ErrSingularStrategy.
func pseudoInverse(a mat.Matrix) (*mat.Dense, error) {
	rows, cols := a.Dims()
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: singular value decomposition did not converge", checks.ErrSingularStrategy)
	}
	// Singular values are returned in descending order.
	values := svd.Values(nil)
	maxDim := rows
	if cols > maxDim {
		maxDim = cols
	}
	tolerance := float64(maxDim) * machineEpsilon * values[0]
	rank := 0
	for _, sigma := range values {
		if sigma > tolerance {
			rank++
		}
	}
	if rank < cols {
		return nil, fmt.Errorf("%w: rank within tolerance is %d, need full column rank %d", checks.ErrSingularStrategy, rank, cols)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// pinv(a) = V · Σ⁻¹ · Uᵀ. Full column rank leaves min(k, n) = n singular
	// values, all above the cutoff. The product V·Σ⁻¹ is formed by scaling
	// the columns of V.
	scaled := mat.NewDense(cols, len(values), nil)
	for j, sigma := range values {
		inv := 1 / sigma
		for i := 0; i < cols; i++ {
			scaled.Set(i, j, v.At(i, j)*inv)
		}
	}
	var pinv mat.Dense
	pinv.Mul(scaled, u.T())
	return &pinv, nil
}
