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

// Package checks contains parameter checks shared by the differentially
// private query answering primitives.
package checks

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// Error kinds signaled by the checks in this package and by the packages
// built on top of it. Callers match them via errors.Is; the concrete error
// values carry the offending parameter in their message.
var (
	// ErrInvalidParameter indicates a parameter outside its legal range,
	// e.g. a nonpositive epsilon or a negative sensitivity.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch indicates matrices or vectors whose shapes do
	// not agree on a shared domain size.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnevenSplit indicates a branching factor that does not evenly
	// divide the range it is asked to decompose.
	ErrUnevenSplit = errors.New("branching factor does not evenly divide range")

	// ErrSingularStrategy indicates a strategy matrix whose pseudo-inverse
	// is ill-conditioned beyond the configured tolerance.
	ErrSingularStrategy = errors.New("singular strategy matrix")
)

const epsilonName = "Epsilon"

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckEpsilonVeryStrict returns an error if ε is +∞ or less than 2⁻⁵⁰.
// The geometric Laplace sampler needs this lower bound to keep the
// probability of sampling inaccuracies due to truncation negligible, so
// every code path that actually draws noise uses this check.
func CheckEpsilonVeryStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon < math.Exp2(-50.0) || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%w: %s is %f, must be at least 2^-50 and finite", ErrInvalidParameter, epsName, epsilon)
	}
	return nil
}

// CheckEpsilonStrict returns an error if ε is nonpositive or +∞.
func CheckEpsilonStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%w: %s is %f, must be strictly positive and finite", ErrInvalidParameter, epsName, epsilon)
	}
	return nil
}

// CheckSensitivity returns an error if the L_1 sensitivity is negative, NaN
// or +∞. A sensitivity of zero is legal and means the answer never changes
// under a single-record change, so no noise is required.
func CheckSensitivity(l1Sensitivity float64) error {
	if l1Sensitivity < 0 || math.IsInf(l1Sensitivity, 0) || math.IsNaN(l1Sensitivity) {
		return fmt.Errorf("%w: L1Sensitivity is %f, must be nonnegative and finite", ErrInvalidParameter, l1Sensitivity)
	}
	if l1Sensitivity == 0 {
		log.Warningf("L1Sensitivity is 0: the queries are constant under record changes and no noise will be added")
	}
	return nil
}

// CheckDomainSize returns an error if the domain size is not positive.
func CheckDomainSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: domain size is %d, must be at least 1", ErrInvalidParameter, n)
	}
	return nil
}

// CheckBranchingFactor returns an error if branchingFactor is less than 2.
func CheckBranchingFactor(branchingFactor int) error {
	if branchingFactor < 2 {
		return fmt.Errorf("%w: branching factor is %d, must be at least 2", ErrInvalidParameter, branchingFactor)
	}
	return nil
}

// CheckMatrixNonEmpty returns an error if a matrix of the given shape has no
// entries.
func CheckMatrixNonEmpty(rows, cols int, name ...string) error {
	matName, err := verifyName("Matrix", name)
	if err != nil {
		return err
	}
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %s is %dx%d, must have at least one row and one column", ErrInvalidParameter, matName, rows, cols)
	}
	return nil
}

// CheckVectorLen returns an error if a vector's length disagrees with the
// number of domain cells expected by the matrices it is multiplied with.
func CheckVectorLen(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: data vector has length %d, matrices expect %d domain cells", ErrDimensionMismatch, got, want)
	}
	return nil
}

// CheckColumnsMatch returns an error if two matrices sharing a domain have a
// different number of columns.
func CheckColumnsMatch(aName string, aCols int, bName string, bCols int) error {
	if aCols != bCols {
		return fmt.Errorf("%w: %s has %d columns, %s has %d, they must share the same domain", ErrDimensionMismatch, aName, aCols, bName, bCols)
	}
	return nil
}
