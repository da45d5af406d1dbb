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

	"gonum.org/v1/gonum/mat"

	"github.com/linearquery/matmech/checks"
)

// CDFWorkload returns the n×n lower-triangular all-ones workload whose row i
// sums the cells 0..i, i.e. the cumulative distribution of the data vector.
func CDFWorkload(n int) (*mat.Dense, error) {
	if err := checks.CheckDomainSize(n); err != nil {
		return nil, fmt.Errorf("CDFWorkload: %w", err)
	}
	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			w.Set(i, j, 1)
		}
	}
	return w, nil
}

// AllRangesWorkload returns the workload containing one range-sum query per
// contiguous range [i, j] of the domain, n·(n+1)/2 rows in total, ordered by
// start cell and then by range length.
func AllRangesWorkload(n int) (*mat.Dense, error) {
	if err := checks.CheckDomainSize(n); err != nil {
		return nil, fmt.Errorf("AllRangesWorkload: %w", err)
	}
	w := mat.NewDense(n*(n+1)/2, n, nil)
	row := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			for cell := i; cell <= j; cell++ {
				w.Set(row, cell, 1)
			}
			row++
		}
	}
	return w, nil
}
