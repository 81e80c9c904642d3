// SPDX-License-Identifier: MIT

package ltgl_test

import (
	"fmt"
	"math"

	"github.com/veronicatozzo/regain/ltgl"
	"github.com/veronicatozzo/regain/tensor"
)

// ExampleSolveCovariance fits three identical identity covariances: the
// sparse component recovers the identity and the latent part vanishes.
func ExampleSolveCovariance() {
	s, _ := tensor.NewStack(3, 3)
	for t := 0; t < 3; t++ {
		for i := 0; i < 3; i++ {
			_ = s.Set(t, i, i, 1)
		}
	}

	cfg := ltgl.DefaultConfig()
	cfg.Alpha, cfg.Tau, cfg.Beta, cfg.Eta = 0.1, 0.1, 0.1, 0.1
	cfg.MaxIter = 200

	res, err := ltgl.SolveCovariance(s, []float64{50, 50, 50}, cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	k, _ := res.Precision.At(1, 0, 0)
	l, _ := res.Latent.At(1, 0, 0)
	fmt.Println(res.Status)
	fmt.Printf("K[1](0,0)=%.2f |L[1](0,0)|=%.2f\n", k, math.Abs(l))
	// Output:
	// converged
	// K[1](0,0)=1.00 |L[1](0,0)|=0.00
}
