// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthesize builds pseudo data at the given points. Each value is the
// prediction smeared by Gaussian noise of relative width relNoise:
//
//	y = ŷ·(1 + relNoise·z),  σ = relNoise·|ŷ|,  z ~ N(0, 1)
//
// A zero prediction gets σ = relNoise so the dataset stays valid. relNoise == 0
// yields noiseless data with σ = 1. The same seed gives the same dataset.
//
// Errors:
//   - ErrInvalidNoise.
func Synthesize[P Point](points []P, predict func(p P) float64, relNoise float64, seed uint64) (Dataset[P], error) {
	if relNoise < 0 || math.IsNaN(relNoise) || math.IsInf(relNoise, 0) {
		return Dataset[P]{}, fmt.Errorf("relNoise=%g: %w", relNoise, ErrInvalidNoise)
	}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: exprand.NewSource(seed)}
	d := Dataset[P]{
		Points: append([]P(nil), points...),
		Y:      make([]float64, len(points)),
		Sigma:  make([]float64, len(points)),
	}
	for i, p := range points {
		yhat := predict(p)
		if relNoise == 0 {
			d.Y[i], d.Sigma[i] = yhat, 1

			continue
		}
		d.Y[i] = yhat * (1 + relNoise*noise.Rand())
		d.Sigma[i] = relNoise * math.Abs(yhat)
		if d.Sigma[i] == 0 {
			d.Sigma[i] = relNoise
		}
	}

	return d, nil
}
