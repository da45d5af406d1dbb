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
	"math"

	"github.com/linearquery/matmech/noise"
)

// noNoise returns the true measurements unchanged. It stands in for a noise
// distribution of scale 0 in tests of the deterministic parts of the
// mechanism.
type noNoise struct {
	noise.Noise
}

func (noNoise) AddNoiseFloat64(x float64, _, _ float64) (float64, error) {
	return x, nil
}

func (noNoise) AddNoiseFloat64Slice(xs []float64, _, _ float64) ([]float64, error) {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out, nil
}

func nearEqual(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}
