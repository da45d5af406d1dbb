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

// L1Sensitivity returns the L_1 global sensitivity of the query matrix m,
// i.e. the maximum absolute column sum. When every record contributes a unit
// count to exactly one domain cell, this is the largest amount the answer
// vector m·x can change when a single record is added, removed or changed.
func L1Sensitivity(m mat.Matrix) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("L1Sensitivity: %w: matrix is nil", checks.ErrInvalidParameter)
	}
	rows, cols := m.Dims()
	if err := checks.CheckMatrixNonEmpty(rows, cols); err != nil {
		return 0, fmt.Errorf("L1Sensitivity: %w", err)
	}
	var maxColSum float64
	for j := 0; j < cols; j++ {
		var colSum float64
		for i := 0; i < rows; i++ {
			colSum += math.Abs(m.At(i, j))
		}
		if colSum > maxColSum {
			maxColSum = colSum
		}
	}
	return maxColSum, nil
}
