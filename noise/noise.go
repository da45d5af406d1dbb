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

// Package noise contains methods to generate and add noise to query answers.
package noise

import (
	log "github.com/golang/glog"
)

// Kind is an enum type. Its values are the supported noise distribution
// types for the query answering mechanisms.
type Kind int

// Noise distributions used to achieve differential privacy.
const (
	LaplaceNoise Kind = iota
	Unrecognised
)

// ToNoise converts a Kind into a Noise instance.
func ToNoise(k Kind) Noise {
	switch k {
	case LaplaceNoise:
		return Laplace()
	case Unrecognised:
		log.Warningf("ToNoise: Unrecognised noise specified, returning nil")
	default:
		log.Warningf("ToNoise: unknown kind (%v) specified, returning nil", k)
	}
	return nil
}

// ToKind converts a Noise instance into a Kind.
func ToKind(n Noise) Kind {
	switch n {
	case Laplace():
		return LaplaceNoise
	case nil:
		log.Warningf("ToKind: nil noise specified, returning Unrecognised")
	default:
		log.Warningf("ToKind: unknown Noise (%v) specified, returning Unrecognised", n)
	}
	return Unrecognised
}

// Noise is an interface for primitives that add noise to query answers to
// make them differentially private.
type Noise interface {
	// AddNoiseFloat64 adds noise to the specified float64 x so that the
	// output is ε-differentially private given the L_1 sensitivity of the
	// query.
	AddNoiseFloat64(x float64, epsilon, l1Sensitivity float64) (float64, error)

	// AddNoiseFloat64Slice adds independent identically distributed noise
	// to every coordinate of xs so that the released vector is
	// ε-differentially private given the L_1 sensitivity of the
	// vector-valued query. The input slice is not modified.
	AddNoiseFloat64Slice(xs []float64, epsilon, l1Sensitivity float64) ([]float64, error)
}
