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

package stattestutils

import (
	"math"
	"testing"
)

func TestSampleMean(t *testing.T) {
	for _, tc := range []struct {
		values []float64
		want   float64
	}{
		{nil, 0.0},
		{[]float64{7.0}, 7.0},
		{[]float64{1.0, 2.0, 3.0}, 2.0},
		{[]float64{-1.0, 1.0}, 0.0},
	} {
		if got := SampleMean(tc.values); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("SampleMean(%v) = %f, want %f", tc.values, got, tc.want)
		}
	}
}

func TestSampleVariance(t *testing.T) {
	for _, tc := range []struct {
		values []float64
		want   float64
	}{
		{nil, 0.0},
		{[]float64{7.0}, 0.0},
		{[]float64{1.0, 3.0}, 1.0},
		{[]float64{2.0, 4.0, 6.0}, 8.0 / 3.0},
	} {
		if got := SampleVariance(tc.values); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("SampleVariance(%v) = %f, want %f", tc.values, got, tc.want)
		}
	}
}
