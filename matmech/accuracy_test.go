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
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/linearquery/matmech/checks"
)

func TestTotalErrorReferenceValues(t *testing.T) {
	// CDF workload over a domain of size 4 at ε=1. The strategies beat
	// direct Laplace answering of the workload (128.0) by a wide margin.
	w, err := CDFWorkload(4)
	if err != nil {
		t.Fatalf("CDFWorkload(4): got err %v", err)
	}
	identity, err := IdentityStrategy(4)
	if err != nil {
		t.Fatalf("IdentityStrategy(4): got err %v", err)
	}
	hierarchical, err := HierarchicalStrategy(4, []int{2, 2, 2})
	if err != nil {
		t.Fatalf("HierarchicalStrategy(4, [2 2 2]): got err %v", err)
	}

	identityError, err := TotalError(w, identity, 1)
	if err != nil {
		t.Fatalf("TotalError(w, identity, 1): got err %v", err)
	}
	if !nearEqual(identityError, 20.0, 1e-9) {
		t.Errorf("TotalError(w, identity, 1) = %f, want 20.0", identityError)
	}

	hierarchicalError, err := TotalError(w, hierarchical, 1)
	if err != nil {
		t.Fatalf("TotalError(w, hierarchical, 1): got err %v", err)
	}
	if !nearEqual(hierarchicalError, 324.0/7.0, 1e-9) {
		t.Errorf("TotalError(w, hierarchical, 1) = %f, want %f", hierarchicalError, 324.0/7.0)
	}

	laplaceError, err := LaplaceTotalError(w, 1)
	if err != nil {
		t.Fatalf("LaplaceTotalError(w, 1): got err %v", err)
	}
	if laplaceError != 128.0 {
		t.Errorf("LaplaceTotalError(w, 1) = %f, want 128.0", laplaceError)
	}

	if identityError >= laplaceError {
		t.Errorf("identity strategy error %f is not below the direct Laplace error %f", identityError, laplaceError)
	}
	if hierarchicalError >= laplaceError {
		t.Errorf("hierarchical strategy error %f is not below the direct Laplace error %f", hierarchicalError, laplaceError)
	}
}

func TestTotalErrorSelfStrategyMatchesLaplace(t *testing.T) {
	// Measuring the workload itself as the strategy reproduces the direct
	// Laplace baseline when the workload has full column rank.
	w, err := CDFWorkload(8)
	if err != nil {
		t.Fatalf("CDFWorkload(8): got err %v", err)
	}
	selfError, err := TotalError(w, w, 0.5)
	if err != nil {
		t.Fatalf("TotalError(w, w, 0.5): got err %v", err)
	}
	laplaceError, err := LaplaceTotalError(w, 0.5)
	if err != nil {
		t.Fatalf("LaplaceTotalError(w, 0.5): got err %v", err)
	}
	if !nearEqual(selfError, laplaceError, 1e-6) {
		t.Errorf("TotalError(w, w) = %f, want the Laplace baseline %f", selfError, laplaceError)
	}
}

func TestTotalErrorEpsilonScaling(t *testing.T) {
	w, err := CDFWorkload(8)
	if err != nil {
		t.Fatalf("CDFWorkload(8): got err %v", err)
	}
	a, err := HierarchicalStrategy(8, []int{2, 2, 2, 2})
	if err != nil {
		t.Fatalf("HierarchicalStrategy(8, all-2s): got err %v", err)
	}
	epsilons := []float64{0.25, 0.5, 1, 2, 4}
	var prev float64 = math.Inf(1)
	base, err := TotalError(w, a, 1)
	if err != nil {
		t.Fatalf("TotalError: got err %v", err)
	}
	for _, epsilon := range epsilons {
		total, err := TotalError(w, a, epsilon)
		if err != nil {
			t.Fatalf("TotalError(w, a, %f): got err %v", epsilon, err)
		}
		if total >= prev {
			t.Errorf("TotalError(w, a, %f) = %f, want strictly below %f: error must decrease in epsilon", epsilon, total, prev)
		}
		prev = total
		if !nearEqual(total*epsilon*epsilon, base, 1e-6*base) {
			t.Errorf("TotalError(w, a, %f)·ε² = %f, want %f: error must scale as 1/ε²", epsilon, total*epsilon*epsilon, base)
		}
	}
}

func TestTotalErrorSingularStrategyIsInf(t *testing.T) {
	w, err := CDFWorkload(4)
	if err != nil {
		t.Fatalf("CDFWorkload(4): got err %v", err)
	}
	for _, tc := range []struct {
		desc string
		a    mat.Matrix
	}{
		{"all-zero strategy",
			mat.NewDense(4, 4, nil)},
		{"strategy never measuring the last cell",
			mat.NewDense(4, 4, []float64{
				1, 0, 0, 0,
				0, 1, 0, 0,
				0, 0, 1, 0,
				0, 0, 0, 0,
			})},
		{"strategy with a duplicated row",
			mat.NewDense(4, 4, []float64{
				1, 1, 0, 0,
				1, 1, 0, 0,
				0, 0, 1, 0,
				0, 0, 0, 1,
			})},
		{"fewer measurements than domain cells",
			mat.NewDense(2, 4, []float64{
				1, 1, 0, 0,
				0, 0, 1, 1,
			})},
	} {
		total, err := TotalError(w, tc.a, 1)
		if err != nil {
			t.Fatalf("TotalError: when %s got err %v, want the +Inf sentinel with nil error", tc.desc, err)
		}
		if !math.IsInf(total, 1) {
			t.Errorf("TotalError: when %s got %f, want +Inf", tc.desc, total)
		}
	}
}

func TestTotalErrorArgChecks(t *testing.T) {
	w, err := CDFWorkload(4)
	if err != nil {
		t.Fatalf("CDFWorkload(4): got err %v", err)
	}
	a, err := IdentityStrategy(4)
	if err != nil {
		t.Fatalf("IdentityStrategy(4): got err %v", err)
	}
	for _, tc := range []struct {
		desc     string
		w, a     mat.Matrix
		epsilon  float64
		wantKind error
	}{
		{"nil workload", nil, a, 1, checks.ErrInvalidParameter},
		{"nil strategy", w, nil, 1, checks.ErrInvalidParameter},
		{"zero epsilon", w, a, 0, checks.ErrInvalidParameter},
		{"negative epsilon", w, a, -1, checks.ErrInvalidParameter},
		{"column mismatch", w, mat.NewDense(3, 3, nil), 1, checks.ErrDimensionMismatch},
	} {
		_, err := TotalError(tc.w, tc.a, tc.epsilon)
		if !errors.Is(err, tc.wantKind) {
			t.Errorf("TotalError: when %s got %v, want %v", tc.desc, err, tc.wantKind)
		}
	}
}

func TestLaplaceTotalErrorArgChecks(t *testing.T) {
	w, err := CDFWorkload(4)
	if err != nil {
		t.Fatalf("CDFWorkload(4): got err %v", err)
	}
	if _, err := LaplaceTotalError(w, 0); !errors.Is(err, checks.ErrInvalidParameter) {
		t.Errorf("LaplaceTotalError(w, 0) got %v, want ErrInvalidParameter", err)
	}
	if _, err := LaplaceTotalError(nil, 1); !errors.Is(err, checks.ErrInvalidParameter) {
		t.Errorf("LaplaceTotalError(nil, 1) got %v, want ErrInvalidParameter", err)
	}
}
