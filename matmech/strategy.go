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

// IdentityStrategy returns the n×n identity strategy: one counting query per
// domain cell.
func IdentityStrategy(n int) (*mat.Dense, error) {
	if err := checks.CheckDomainSize(n); err != nil {
		return nil, fmt.Errorf("IdentityStrategy: %w", err)
	}
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}
	return a, nil
}

// HierarchicalStrategy returns the range-tree strategy over a domain of size
// n. The root query sums the full domain; each tree level consumes the next
// branching factor from factors and splits its range into that many equal
// sub-ranges, emitting one range-sum query per node. Recursion stops when the
// factor list is exhausted or a range narrows to a single cell. Rows are
// ordered root first, each subtree's rows following in range order.
//
// For n a power of two and an all-2s schedule covering every level, this is
// the classic binary range-tree strategy with 2n-1 rows.
//
// HierarchicalStrategy returns an error wrapping checks.ErrUnevenSplit if a
// factor does not evenly divide the range it is asked to split.
func HierarchicalStrategy(n int, factors []int) (*mat.Dense, error) {
	if err := checks.CheckDomainSize(n); err != nil {
		return nil, fmt.Errorf("HierarchicalStrategy: %w", err)
	}
	for _, b := range factors {
		if err := checks.CheckBranchingFactor(b); err != nil {
			return nil, fmt.Errorf("HierarchicalStrategy: %w", err)
		}
	}
	rows, err := rangeTreeRows(n, 0, n-1, factors)
	if err != nil {
		return nil, fmt.Errorf("HierarchicalStrategy: %w", err)
	}
	a := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		a.SetRow(i, row)
	}
	return a, nil
}

// rangeTreeRows emits the interval indicator row for [start, end] followed by
// the rows of each sub-range's subtree in range order. Each recursion level
// consumes one branching factor; sibling subtrees share the same remaining
// factor list.
func rangeTreeRows(n, start, end int, factors []int) ([][]float64, error) {
	row := make([]float64, n)
	for i := start; i <= end; i++ {
		row[i] = 1
	}
	rows := [][]float64{row}
	if len(factors) == 0 || start == end {
		return rows, nil
	}
	b := factors[0]
	width := end - start + 1
	if width%b != 0 {
		return nil, fmt.Errorf("%w: range [%d, %d] has width %d, branching factor is %d", checks.ErrUnevenSplit, start, end, width, b)
	}
	inc := width / b
	for childStart := start; childStart <= end; childStart += inc {
		childRows, err := rangeTreeRows(n, childStart, childStart+inc-1, factors[1:])
		if err != nil {
			return nil, err
		}
		rows = append(rows, childRows...)
	}
	return rows, nil
}
